// Package server provides the thin HTTP layer over the extraction core:
// routing, input validation, per-caller rate limiting, and JSON shaping.
// All extraction logic lives in the extract package.
package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"ytextract/extract"
)

// Extractor is the part of the core the server depends on.
type Extractor interface {
	Extract(ctx context.Context, url string) extract.Composite
}

// Server handles the HTTP API.
type Server struct {
	router         *mux.Router
	extractor      Extractor
	limiter        *callerLimiter
	requestTimeout time.Duration
	stop           chan struct{}
}

// New creates a server around the given extractor. callerRPM is the
// per-caller-IP request budget per minute; requestTimeout bounds one whole
// extraction call.
func New(extractor Extractor, callerRPM int, requestTimeout time.Duration) *Server {
	s := &Server{
		router:         mux.NewRouter(),
		extractor:      extractor,
		limiter:        newCallerLimiter(callerRPM),
		requestTimeout: requestTimeout,
		stop:           make(chan struct{}),
	}
	s.routes()
	go s.limiter.pruneLoop(s.stop)
	return s
}

func (s *Server) routes() {
	s.router.Use(s.requestLogging, s.cors)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.rateLimit)
	api.HandleFunc("/extract", s.handleExtract).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/thumbnail/{videoID}", s.handleThumbnail).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close stops background work.
func (s *Server) Close() {
	close(s.stop)
}

// extractRequest is the POST /api/extract body.
type extractRequest struct {
	URL string `json:"url"`
}

// handleExtract validates the URL and runs the extraction under the request
// timeout. Input validation is the only error class surfaced to callers;
// everything past it always yields a well-formed record.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "no URL provided")
		return
	}
	if !strings.Contains(req.URL, "youtube.com") && !strings.Contains(req.URL, "youtu.be") {
		writeError(w, http.StatusBadRequest, "invalid YouTube URL")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	result := s.extractor.Extract(ctx, req.URL)
	writeJSON(w, http.StatusOK, result)
}

// handleThumbnail streams the first available thumbnail tier as a jpeg
// attachment.
func (s *Server) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	videoID := mux.Vars(r)["videoID"]

	client := &http.Client{Timeout: 10 * time.Second}
	for _, candidate := range extract.ThumbnailURLs(videoID) {
		req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, candidate, nil)
		if err != nil {
			continue
		}
		resp, err := client.Do(req)
		if err != nil {
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			continue
		}

		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("Content-Disposition", `attachment; filename="`+videoID+`_thumbnail.jpg"`)
		_, err = io.Copy(w, resp.Body)
		resp.Body.Close()
		if err != nil {
			log.Printf("server: stream thumbnail for %s: %v", videoID, err)
		}
		return
	}

	writeError(w, http.StatusNotFound, "thumbnail not found")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "ytextract is running",
	})
}

// cors allows any origin and short-circuits preflight requests before they
// reach the rate limiter.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimit rejects callers over their per-IP budget.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(clientIP(r)) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogging tags each request with an ID and logs its outcome.
func (s *Server) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("server: %s %s %s ip=%s took=%v",
			requestID[:8], r.Method, r.URL.Path, clientIP(r), time.Since(start))
	})
}

// clientIP extracts the caller address, honoring X-Forwarded-For from a
// fronting proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
