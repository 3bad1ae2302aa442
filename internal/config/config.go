package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// BaseURL is the public base URL prefixed to every feed and item link
	BaseURL string
	// Encrypted selects borrow/return acquisition links for the whole deployment
	Encrypted bool
	// ListenAddr is the address the HTTP server binds to
	ListenAddr string
	// CatalogDBFile is the path to the local catalog SQLite database
	CatalogDBFile string
	// CacheDBFile is the path to the Open Library response cache database
	CacheDBFile string
	// OpenLibraryURL is the Open Library API endpoint
	OpenLibraryURL string
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("baseurl", "")
	viper.SetDefault("encrypted", false)
	viper.SetDefault("listen", ":8080")
	viper.SetDefault("catalog.dbfile", "./catalog.db")
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("openlibrary.url", "https://openlibrary.org")

	// Get values from viper
	BaseURL = viper.GetString("baseurl")
	Encrypted = viper.GetBool("encrypted")
	ListenAddr = viper.GetString("listen")
	CatalogDBFile = viper.GetString("catalog.dbfile")
	CacheDBFile = viper.GetString("cache.dbfile")
	OpenLibraryURL = viper.GetString("openlibrary.url")
}

// SetBaseURL sets the public base URL
func SetBaseURL(baseURL string) {
	BaseURL = baseURL
}

// SetEncrypted sets the deployment-wide encryption flag
func SetEncrypted(encrypted bool) {
	Encrypted = encrypted
}
