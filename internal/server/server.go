// Package server implements the avatar HTTP service.
//
// The service exposes a single avatar endpoint plus a health check. Avatars
// are generated on demand and cached as rendered bytes, keyed by seed and
// the effective generator configuration, so per-request overrides never
// poison each other's entries.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/boradatti/gummygrid/pkg/cache"
	"github.com/boradatti/gummygrid/pkg/errors"
	"github.com/boradatti/gummygrid/pkg/gummygrid"
	"github.com/boradatti/gummygrid/pkg/observability"
)

// Options configures the server.
type Options struct {
	// BaseConfig is the generator configuration before per-request overrides.
	BaseConfig gummygrid.Config

	// Cache stores rendered avatars. Nil disables caching.
	Cache cache.Cache

	// CacheTTL bounds the lifetime of cached avatars. Zero means no expiry.
	CacheTTL time.Duration

	// Logger receives request logs. Nil falls back to the default logger.
	Logger *log.Logger
}

// Server handles avatar requests.
type Server struct {
	base   gummygrid.Config
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	logger *log.Logger
}

// New creates a Server from opts.
func New(opts Options) *Server {
	c := opts.Cache
	if c == nil {
		c = cache.NewNullCache()
	}
	l := opts.Logger
	if l == nil {
		l = log.Default()
	}
	return &Server{
		base:   opts.BaseConfig,
		cache:  c,
		keyer:  cache.NewDefaultKeyer(),
		ttl:    opts.CacheTTL,
		logger: l,
	}
}

// Router builds the HTTP routing table with request-ID and logging
// middleware applied to every route.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/v1/avatar/{seed}", s.handleAvatar)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleAvatar renders the avatar for the seed path segment. Optional query
// parameters override the base configuration:
//
//	rows, cols  grid dimensions
//	salt        seed salt
//	size        cell size in user units
func (s *Server) handleAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	seed := chi.URLParam(r, "seed")

	cfg, err := s.requestConfig(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	key := s.keyer.AvatarKey(seed, configHash(cfg))
	if data, ok := s.cacheGet(ctx, key); ok {
		s.writeSVG(w, data)
		return
	}

	gen, err := gummygrid.New(cfg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	svg, err := gen.BuildFrom(ctx, seed)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.cacheSet(ctx, key, svg.Bytes())
	s.writeSVG(w, svg.Bytes())
}

// requestConfig overlays query-parameter overrides onto the base config.
func (s *Server) requestConfig(r *http.Request) (gummygrid.Config, error) {
	cfg := s.base
	q := r.URL.Query()

	gridCfg := gummygrid.GridConfig{}
	if cfg.Grid != nil {
		gridCfg = *cfg.Grid
	}
	styleCfg := gummygrid.StyleConfig{}
	if cfg.Style != nil {
		styleCfg = *cfg.Style
	}
	changedGrid, changedStyle := false, false

	if v := q.Get("rows"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return cfg, errors.New(errors.ErrCodeInvalidDimensions, "invalid rows parameter %q", v)
		}
		gridCfg.Rows = n
		changedGrid = true
	}
	if v := q.Get("cols"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return cfg, errors.New(errors.ErrCodeInvalidDimensions, "invalid cols parameter %q", v)
		}
		gridCfg.Columns = n
		changedGrid = true
	}
	if v := q.Get("salt"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return cfg, errors.New(errors.ErrCodeInvalidConfig, "invalid salt parameter %q", v)
		}
		cfg.Salt = int32(n)
	}
	if v := q.Get("size"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return cfg, errors.New(errors.ErrCodeInvalidConfig, "invalid size parameter %q", v)
		}
		styleCfg.CellSize = &f
		changedStyle = true
	}

	if changedGrid {
		cfg.Grid = &gridCfg
	}
	if changedStyle {
		cfg.Style = &styleCfg
	}
	return cfg, nil
}

func (s *Server) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache get failed", "error", err)
		return nil, false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, "avatar")
		return data, true
	}
	observability.Cache().OnCacheMiss(ctx, "avatar")
	return nil, false
}

func (s *Server) cacheSet(ctx context.Context, key string, data []byte) {
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("cache set failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "avatar", len(data))
}

func (s *Server) writeSVG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}

// writeError maps structured error codes to HTTP statuses and emits a JSON
// body with the user-facing message and the request ID for correlation.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidDimensions, errors.ErrCodeInvalidRounding,
		errors.ErrCodeInvalidConfig, errors.ErrCodeEmptyColorArray,
		errors.ErrCodeLockedColorMismatch, errors.ErrCodeWeightMismatch:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	}

	s.logger.Error("request failed", "error", err, "request_id", requestIDFromContext(r.Context()))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":      errors.UserMessage(err),
		"request_id": requestIDFromContext(r.Context()),
	})
}

// configHash fingerprints the effective configuration for cache keying.
// JSON field order is deterministic for a fixed struct, so equal configs
// always hash alike.
func configHash(cfg gummygrid.Config) string {
	data, _ := json.Marshal(cfg)
	return cache.Hash(data)
}
