package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/ronibhakta1/opds2-lenny/internal/catalog"
	"github.com/ronibhakta1/opds2-lenny/internal/config"
	"github.com/ronibhakta1/opds2-lenny/internal/lenny"
	"github.com/ronibhakta1/opds2-lenny/internal/opds"
	"github.com/ronibhakta1/opds2-lenny/internal/openlibrary"
	"github.com/ronibhakta1/opds2-lenny/internal/server"
)

// CLI represents the complete command structure for the opds2-lenny application
type CLI struct {
	// Global flags
	BaseURL   string `help:"Public base URL prefixed to feed and item links"`
	Encrypted bool   `help:"Emit borrow/return acquisition links instead of open-access read links"`

	// Storage flags
	CatalogDBFile string `help:"Path to catalog SQLite database file" default:"./catalog.db"`
	CacheDBFile   string `help:"Path to Open Library response cache database file" default:"./cache.db"`

	Serve  ServeCmd  `cmd:"" help:"Serve the Lenny OPDS catalog over HTTP"`
	Search SearchCmd `cmd:"" help:"Search Open Library and print the resulting OPDS feed"`
}

// ServeCmd represents the serve command
type ServeCmd struct {
	Listen string `help:"Address for the HTTP server to listen on" default:":8080"`
}

// SearchCmd represents the search command
type SearchCmd struct {
	Query  string  `arg:"" help:"Search query"`
	Limit  int     `help:"Results per page" default:"20"`
	Offset int     `help:"Pagination offset" default:"0"`
	IDs    []int64 `name:"ids" help:"Lenny item ids assigned to results by position (skips the catalog lookup)"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	// Create CLI instance
	var cli CLI

	// Parse command line with Kong
	ctx := kong.Parse(&cli,
		kong.Name("opds2-lenny"),
		kong.Description("Adapt Open Library metadata into OPDS 2.0 feeds for the Lenny platform."),
		kong.UsageOnError(),
	)

	// Update global config based on parsed flags
	updateGlobalConfig(&cli)

	// Execute the selected command
	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("baseurl", "")
	viper.SetDefault("encrypted", false)
	viper.SetDefault("listen", ":8080")

	// Storage defaults
	viper.SetDefault("catalog.dbfile", "./catalog.db")
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("openlibrary.url", "https://openlibrary.org")

	// Enable environment variable support
	viper.AutomaticEnv()
	// Bind specific environment variables to config keys
	if err := viper.BindEnv("baseurl", "LENNY_BASE_URL"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
			os.Exit(0)
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	// Update config based on CLI flags
	if cli.BaseURL != "" {
		config.SetBaseURL(cli.BaseURL)
	}
	if cli.Encrypted {
		config.SetEncrypted(true)
	}

	// Update storage config
	viper.Set("catalog.dbfile", cli.CatalogDBFile)
	viper.Set("cache.dbfile", cli.CacheDBFile)
	config.CatalogDBFile = cli.CatalogDBFile
	config.CacheDBFile = cli.CacheDBFile
}

func initLogging() {
	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}

// buildClient constructs the Open Library client from global config.
// A cache that fails to open downgrades to uncached operation.
func buildClient() *openlibrary.Client {
	opts := []openlibrary.Option{
		openlibrary.WithBaseURL(config.OpenLibraryURL),
	}

	cache, err := openlibrary.NewSearchCache(config.CacheDBFile, 0)
	if err != nil {
		slog.Warn("Open Library cache unavailable, continuing without it", "error", err)
	} else {
		opts = append(opts, openlibrary.WithCache(cache))
	}

	return openlibrary.NewClient(opts...)
}

func openCatalog() (*catalog.SQLiteStore, error) {
	store := catalog.NewSQLiteStore(config.CatalogDBFile)
	if err := store.Connect(); err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return store, nil
}

// Run methods for each command

func (s *ServeCmd) Run() error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	srv := server.New(buildClient(), store, config.BaseURL, config.Encrypted)

	slog.Info("Serving OPDS catalog", "listen", s.Listen, "baseurl", config.BaseURL, "encrypted", config.Encrypted)
	return http.ListenAndServe(s.Listen, srv.Router())
}

func (s *SearchCmd) Run() error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return runSearch(context.Background(), buildClient(), store, s, os.Stdout)
}

// runSearch performs the search, correlates results with Lenny ids (either
// the positional --ids list or the local catalog) and prints the feed.
func runSearch(ctx context.Context, searcher lenny.Searcher, store catalog.Store, cmd *SearchCmd, out io.Writer) error {
	resp, err := searcher.Search(ctx, cmd.Query, cmd.Limit, cmd.Offset)
	if err != nil {
		return fmt.Errorf("upstream search failed: %w", err)
	}

	var ids opds.IDSlice
	if len(cmd.IDs) > 0 {
		ids = opds.IDSlice(cmd.IDs)
	} else {
		keys := make([]string, 0, len(resp.Docs))
		for _, doc := range resp.Docs {
			keys = append(keys, doc.Key)
		}

		idsByKey, err := store.IDsForKeys(keys)
		if err != nil {
			return fmt.Errorf("catalog lookup failed: %w", err)
		}

		for _, key := range keys {
			id, ok := idsByKey[key]
			if !ok {
				return fmt.Errorf("work %s is not in the local catalog", key)
			}
			ids = append(ids, id)
		}
	}

	provider := lenny.NewProvider(searcher)
	records, total, err := provider.Adapt(resp, resp.NumFound, ids, config.Encrypted, config.BaseURL)
	if err != nil {
		return err
	}

	feed, err := lenny.AssembleFeed(records, total, cmd.Limit, cmd.Offset, config.BaseURL)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(feed)
}
