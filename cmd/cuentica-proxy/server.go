package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/cuentica-client/pkg/cache"
	"github.com/Sternrassler/cuentica-client/pkg/client"
	"github.com/Sternrassler/cuentica-client/pkg/metrics"
)

// CacheHeader reports whether a proxied response came from the cache.
const CacheHeader = "X-Cache"

// server holds the handler dependencies.
type server struct {
	api    *client.Client
	logger zerolog.Logger
}

// newRouter builds the HTTP router.
func newRouter(api *client.Client, logger zerolog.Logger) http.Handler {
	s := &server{api: api, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)

	r.Get("/health", s.health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/ratelimit", s.rateLimit)

	r.Route("/cache", func(r chi.Router) {
		r.Get("/stats", s.cacheStats)
		r.Delete("/", s.clearCache)
		r.Delete("/{prefix}", s.invalidateCache)
	})

	r.Get("/api/*", s.proxy)

	return r
}

func (s *server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("Proxy request")
	})
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *server) rateLimit(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.api.RateLimitState())
}

func (s *server) cacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.api.CacheStats())
}

func (s *server) clearCache(w http.ResponseWriter, r *http.Request) {
	s.api.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) invalidateCache(w http.ResponseWriter, r *http.Request) {
	prefix, ok := cache.ParsePrefix(chi.URLParam(r, "prefix"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Message: "unknown cache prefix " + strconv.Quote(chi.URLParam(r, "prefix")),
			Class:   string(client.ErrorClassClient),
		})
		return
	}

	removed := s.api.InvalidateCache(prefix)
	writeJSON(w, http.StatusOK, map[string]any{
		"prefix":  prefix,
		"removed": removed,
	})
}

// proxy forwards a GET to the API through the cache. Collection paths keep
// their pagination headers.
func (s *server) proxy(w http.ResponseWriter, r *http.Request) {
	path := "/" + strings.Trim(chi.URLParam(r, "*"), "/")
	opts := client.RequestOptions{
		Path:  path,
		Query: queryFrom(r),
	}

	var (
		raw    json.RawMessage
		cached bool
		err    error
	)
	if isCollection(path) {
		var info client.PaginationInfo
		info, cached, err = s.api.PaginatedRequest(r.Context(), opts, &raw)
		if err == nil {
			setPaginationHeaders(w.Header(), info)
		}
	} else {
		cached, err = s.api.CachedRequest(r.Context(), opts, &raw)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	if cached {
		w.Header().Set(CacheHeader, "HIT")
	} else {
		w.Header().Set(CacheHeader, "MISS")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// isCollection reports whether path lists a paginated resource.
func isCollection(path string) bool {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	return len(segments) == 1 && segments[0] != string(cache.PrefixCompany) && segments[0] != ""
}

func queryFrom(r *http.Request) client.Query {
	values := r.URL.Query()
	if len(values) == 0 {
		return nil
	}
	q := make(client.Query, len(values))
	for k, v := range values {
		q[k] = v[0]
	}
	return q
}

func setPaginationHeaders(h http.Header, info client.PaginationInfo) {
	h.Set(client.HeaderPage, strconv.Itoa(info.CurrentPage))
	h.Set(client.HeaderTotalPages, strconv.Itoa(info.TotalPages))
	h.Set(client.HeaderTotalCount, strconv.Itoa(info.TotalItems))
	h.Set(client.HeaderPerPage, strconv.Itoa(info.ItemsPerPage))
}

type errorBody struct {
	Message string          `json:"message"`
	Class   string          `json:"class"`
	Code    string          `json:"code,omitempty"`
	Details json.RawMessage `json:"details,omitempty"`
}

// writeError maps a typed client error to a proxy response.
func (s *server) writeError(w http.ResponseWriter, err error) {
	var (
		rlErr  *client.RateLimitError
		apiErr *client.APIError
		netErr *client.NetworkError
	)

	status := http.StatusBadGateway
	body := errorBody{Message: err.Error(), Class: string(client.ClassOf(err))}

	switch {
	case errors.As(err, &rlErr):
		status = http.StatusTooManyRequests
		if rlErr.RetryAfterSeconds != nil {
			w.Header().Set("Retry-After", strconv.Itoa(*rlErr.RetryAfterSeconds))
		}
	case errors.As(err, &apiErr):
		status = apiErr.StatusCode
		body.Message = apiErr.Message
		body.Code = apiErr.Code
		body.Details = apiErr.Details
	case errors.As(err, &netErr) && netErr.Timeout():
		status = http.StatusGatewayTimeout
	}

	s.logger.Warn().
		Err(err).
		Int("status", status).
		Str("error_class", body.Class).
		Msg("Proxied request failed")

	writeJSON(w, status, map[string]errorBody{"error": body})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
