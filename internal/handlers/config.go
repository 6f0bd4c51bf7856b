package handlers

import (
	"log/slog"
	"net/http"

	"musubi/internal/models"
	"musubi/internal/store"
)

// Config handles the site configuration endpoints.
type Config struct {
	configs *store.SiteConfigStore
}

// NewConfig creates a new Config handler group.
func NewConfig(configs *store.SiteConfigStore) *Config {
	return &Config{configs: configs}
}

// Get returns the site configuration, creating defaults on first read.
// Public.
func (c *Config) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := c.configs.Get(r.Context())
	if err != nil {
		slog.Error("site config load failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load site config")
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

// Put replaces the entire site configuration. Session-gated.
func (c *Config) Put(w http.ResponseWriter, r *http.Request) {
	var cfg models.SiteConfig
	if err := decodeJSON(r, &cfg); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := c.configs.Replace(r.Context(), &cfg); err != nil {
		slog.Error("site config replace failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update site config")
		return
	}
	respondJSON(w, http.StatusOK, &cfg)
}
