package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	applog "fintrack/internal/log"
	"fintrack/internal/store"
)

// ownerHandler is a handler that has already passed principal extraction.
type ownerHandler func(w http.ResponseWriter, r *http.Request, owner store.Principal)

const ownerHeader = "X-Owner-ID"

// owned wraps a data route with the full middleware stack: request id,
// logging, rate limiting, security headers and principal extraction. The
// request-scoped logger travels in the context for handlers to pick up.
func (s *Server) owned(next ownerHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)

		requestID := generateRequestID()
		logger := s.logger.With(applog.FieldRequestID, requestID)
		ctx := applog.NewContext(r.Context(), logger)
		r = r.WithContext(ctx)

		logger.InfoContext(ctx, "Request started",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, clientIP)

		owner := store.Principal(strings.TrimSpace(r.Header.Get(ownerHeader)))

		// Mutations are throttled per principal; unauthenticated probes
		// fall back to the client IP.
		limitKey := string(owner)
		if limitKey == "" {
			limitKey = clientIP
		}
		if isMutation(r.Method) && !s.rateLimiter.allow(limitKey, s.metrics) {
			logger.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldOwner, string(owner),
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded"))
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		if owner == "" {
			writeError(rw, http.StatusUnauthorized, fmt.Errorf("missing %s header", ownerHeader))
		} else {
			next(rw, r, owner)
		}

		logger.InfoContext(ctx, "Request completed",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldOwner, string(owner),
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds())
	}
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		return true
	}
	return false
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
