// Package server exposes the engine over an HTTP JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-engine/internal/logger"
	"github.com/jonathan/resume-engine/internal/matching"
	"github.com/jonathan/resume-engine/internal/metrics"
	"github.com/jonathan/resume-engine/internal/parsing"
	"github.com/jonathan/resume-engine/internal/pipeline"
	"github.com/jonathan/resume-engine/internal/profile"
	"github.com/jonathan/resume-engine/internal/ranking"
	"github.com/jonathan/resume-engine/internal/server/ratelimit"
	"github.com/jonathan/resume-engine/internal/skills"
)

// HeaderRequestID carries the request ID in both directions
const HeaderRequestID = "X-Request-ID"

const (
	maxBodyBytes    = 4 << 20
	shutdownTimeout = 30 * time.Second
)

type ctxKey struct{}

// Deps are the engine components the handlers call
type Deps struct {
	Extractor     *parsing.Extractor
	Builder       *profile.Builder
	Canonicalizer *skills.Canonicalizer
	Analyzer      *matching.Analyzer
	Scorer        *ranking.Scorer
	QueryParser   *ranking.QueryParser
	Processor     *pipeline.Processor
	Metrics       *metrics.Recorder
	Log           *zap.Logger
}

// Config holds server configuration
type Config struct {
	Port             int
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	RateLimit        *ratelimit.Config
	BatchConcurrency int
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	deps        Deps
	log         *zap.Logger
	validate    *validator.Validate
	rateLimiter *ratelimit.Limiter
	concurrency int
}

// New creates a server. Missing optional components fall back to seed-taxonomy defaults.
func New(cfg Config, deps Deps) *Server {
	if deps.Canonicalizer == nil {
		deps.Canonicalizer = skills.NewCanonicalizer(nil)
	}
	if deps.Builder == nil {
		deps.Builder = profile.NewBuilder(deps.Canonicalizer, nil)
	}
	if deps.Analyzer == nil {
		deps.Analyzer = matching.NewAnalyzer(deps.Canonicalizer)
	}
	if deps.Scorer == nil {
		deps.Scorer = ranking.NewScorer(deps.Canonicalizer.Taxonomy())
	}
	if deps.QueryParser == nil {
		deps.QueryParser = ranking.NewQueryParser(nil, deps.Canonicalizer.Taxonomy(), deps.Log, deps.Metrics)
	}
	if deps.Processor == nil && deps.Extractor != nil {
		deps.Processor = pipeline.NewProcessor(deps.Extractor, deps.Builder, deps.Analyzer, deps.Log, deps.Metrics)
	}

	s := &Server{
		deps:        deps,
		log:         logger.OrNop(deps.Log),
		validate:    validator.New(),
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		concurrency: cfg.BatchConcurrency,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/resumes/parse", s.handleParseResume)
	mux.HandleFunc("POST /v1/match", s.handleMatch)
	mux.HandleFunc("POST /v1/rank", s.handleRank)
	mux.HandleFunc("POST /v1/search/parse", s.handleParseSearch)
	mux.HandleFunc("POST /v1/batch", s.handleBatch)
	mux.HandleFunc("POST /v1/batch/stream", s.handleBatchStream)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", deps.Metrics.Handler())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRequestID(s.withLogging(s.withRateLimit(s.withCORS(mux)))),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.rateLimiter.Stop()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// RequestID returns the request ID stored by the request ID middleware
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// withRequestID propagates or assigns X-Request-ID
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+HeaderRequestID)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients over their token budget
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !allowed {
			seconds := int(info.RetryAfter.Round(time.Second).Seconds())
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			s.log.Info("rate limit exceeded",
				zap.String(logger.FieldRequestID, RequestID(r.Context())),
				zap.String("client", clientID(r)),
				zap.String("path", r.URL.Path))
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs every request with its status and duration
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String(logger.FieldRequestID, RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps streaming responses working through the recorder
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// clientID identifies the caller by remote IP
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// decode reads a JSON body into dst and validates it
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var reqErr *matching.RequirementError
		if errors.As(err, &reqErr) {
			return reqErr
		}
		return &ErrValidation{Message: "invalid request body: " + err.Error()}
	}
	return s.validate.Struct(dst)
}

// fail writes err with its mapped status
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String(logger.FieldRequestID, RequestID(r.Context())),
			zap.Error(err))
	}
	s.errorResponse(w, status, validationMessage(err))
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn("failed to encode response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
