// Package server provides the HTTP REST API for resume analysis.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/matchly/internal/classify"
	"github.com/jonathan/matchly/internal/db"
	"github.com/jonathan/matchly/internal/fetch"
	"github.com/jonathan/matchly/internal/ingestion"
	"github.com/jonathan/matchly/internal/matching"
	"github.com/jonathan/matchly/internal/pipeline"
	"github.com/jonathan/matchly/internal/server/ratelimit"
)

// DefaultMaxJDChars caps job description text accepted by the API
const DefaultMaxJDChars = 100000

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	analyzer    *pipeline.Analyzer
	matcher     *matching.Matcher
	classifier  *classify.Classifier
	store       db.Store
	rateLimiter *ratelimit.Limiter
	validator   *validator.Validate
	logger      *zap.Logger

	maxUploadBytes int64
	maxJDChars     int
	threshold      float64
	fetchOptions   fetch.PostingOptions
}

// Config holds server configuration
type Config struct {
	Port           int
	MaxUploadBytes int64
	MaxJDChars     int
	// Threshold is the partial-match threshold for POST /match when the request omits one
	Threshold float64
	// RateLimit nil loads the RATE_LIMIT_* environment configuration
	RateLimit    *ratelimit.Config
	FetchOptions fetch.PostingOptions
}

// Deps are the components the handlers call into. Store may be nil to disable history.
type Deps struct {
	Analyzer *pipeline.Analyzer
	Matcher  *matching.Matcher
	Store    db.Store
	Logger   *zap.Logger
}

// New creates a new server instance
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Analyzer == nil || deps.Matcher == nil {
		return nil, errors.New("server requires an analyzer and a matcher")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = ingestion.DefaultMaxUploadBytes
	}
	if cfg.MaxJDChars <= 0 {
		cfg.MaxJDChars = DefaultMaxJDChars
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = matching.DefaultThreshold
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}
	if cfg.FetchOptions.Logger == nil {
		cfg.FetchOptions.Logger = logger
	}

	s := &Server{
		analyzer:       deps.Analyzer,
		matcher:        deps.Matcher,
		classifier:     classify.New(),
		store:          deps.Store,
		rateLimiter:    ratelimit.NewLimiter(cfg.RateLimit),
		validator:      validator.New(),
		logger:         logger,
		maxUploadBytes: cfg.MaxUploadBytes,
		maxJDChars:     cfg.MaxJDChars,
		threshold:      cfg.Threshold,
		fetchOptions:   cfg.FetchOptions,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /analyze/text", s.handleAnalyzeText)
	mux.HandleFunc("POST /match", s.handleMatch)
	mux.HandleFunc("POST /normalize", s.handleNormalize)
	mux.HandleFunc("POST /classify", s.handleClassify)
	mux.HandleFunc("GET /analyses", s.handleListAnalyses)
	mux.HandleFunc("GET /analyses/{id}", s.handleGetAnalysis)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // URL fetches may render in a browser
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close releases the rate limiter and the analysis store
func (s *Server) Close() {
	s.rateLimiter.Stop()
	if s.store != nil {
		s.store.Close()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logs
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("error encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps err to a status code and writes it; 5xx errors are logged
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}

	var rejection *pipeline.RejectionError
	if errors.As(err, &rejection) {
		s.jsonResponse(w, status, map[string]any{
			"error":  rejection.Error(),
			"scores": rejection.Scores,
		})
		return
	}
	if status == http.StatusInternalServerError {
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier from the request.
// X-Forwarded-For is ignored because no trusted proxy list exists.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", s.extractClientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
