package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ronibhakta1/opds2-lenny/internal/lenny"
	"github.com/ronibhakta1/opds2-lenny/internal/opds"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// handleFeed serves GET /v1/api/opds: search the upstream provider, look
// the results up in the local catalog, and respond with an OPDS 2.0 feed.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	limit, err := intParam(r, "limit", defaultLimit)
	if err != nil || limit < 1 || limit > maxLimit {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("limit must be an integer between 1 and %d", maxLimit))
		return
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil || offset < 0 {
		writeError(w, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}

	resp, err := s.searcher.Search(r.Context(), query, limit, offset)
	if err != nil {
		slog.Error("upstream search failed", "query", query, "error", err)
		writeError(w, http.StatusBadGateway, "upstream search failed")
		return
	}

	keys := make([]string, 0, len(resp.Docs))
	for _, doc := range resp.Docs {
		keys = append(keys, doc.Key)
	}

	idsByKey, err := s.store.IDsForKeys(keys)
	if err != nil {
		slog.Error("catalog lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "catalog lookup failed")
		return
	}

	ids := make(opds.IDSlice, 0, len(keys))
	for _, key := range keys {
		id, ok := idsByKey[key]
		if !ok {
			writeError(w, http.StatusBadGateway, fmt.Sprintf("work %s is not in the local catalog", key))
			return
		}
		ids = append(ids, id)
	}

	records, total, err := s.provider.Adapt(resp, resp.NumFound, ids, s.encrypted, s.baseURL)
	if err != nil {
		slog.Error("record adaptation failed", "error", err)
		writeError(w, http.StatusBadGateway, "upstream results could not be correlated with the catalog")
		return
	}

	feed, err := lenny.AssembleFeed(records, total, limit, offset, s.baseURL)
	if err != nil {
		slog.Error("feed assembly failed", "error", err)
		writeError(w, http.StatusInternalServerError, "feed assembly failed")
		return
	}

	w.Header().Set("Content-Type", opds.TypeFeed)
	if err := json.NewEncoder(w).Encode(feed); err != nil {
		slog.Error("feed encoding failed", "error", err)
	}
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
