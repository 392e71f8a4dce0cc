// Package http exposes the engine as a JSON API. Every data route is
// scoped by the X-Owner-ID header; there is no session state on the
// server. Report reads go through an LRU cache keyed per principal, and
// every write for a principal drops that principal's cached reports.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/cache"
	applog "fintrack/internal/log"
	"fintrack/internal/reports"
	"fintrack/internal/services"
	"fintrack/internal/store"
)

// Services bundles the application services the API serves.
type Services struct {
	Ledger   *services.LedgerService
	Reports  *services.ReportService
	Goals    *services.GoalService
	Import   *services.ImportService
	Balances *services.BalanceService
	Store    store.Store
}

type Server struct {
	http.Server
	svc         Services
	logger      *applog.Logger
	rateLimiter *rateLimiter
	metrics     *securityMetrics

	// Generated reports cached per principal, keyed "<owner>/<type>/<range>".
	reportCache  *cache.LRUCache[reports.Report]
	cacheManager *cache.Manager
	shutdownOnce sync.Once
}

// NewServer wires routes and the report cache, returning a ready-to-run
// http.Server.
func NewServer(addr string, svc Services, cacheSize int, cacheTTL time.Duration) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		svc:          svc,
		logger: applog.New(applog.Config{
			Component: applog.ComponentHTTP,
			Handler:   slog.Default().Handler(),
		}),
		rateLimiter:  newRateLimiter(),
		metrics:      &securityMetrics{},
		reportCache:  cache.NewLRUCache[reports.Report](cacheSize, cacheTTL),
		cacheManager: cache.NewManager(),
	}
	s.cacheManager.Register(s.reportCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /transactions", s.owned(s.handleCreateTransaction))
	mux.HandleFunc("GET /transactions", s.owned(s.handleListTransactions))
	mux.HandleFunc("GET /transactions/{id}", s.owned(s.handleGetTransaction))
	mux.HandleFunc("PUT /transactions/{id}", s.owned(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /transactions/{id}", s.owned(s.handleDeleteTransaction))

	mux.HandleFunc("POST /cards", s.owned(s.handleCreateCard))
	mux.HandleFunc("GET /cards", s.owned(s.handleListCards))
	mux.HandleFunc("GET /cards/{id}", s.owned(s.handleGetCard))
	mux.HandleFunc("PUT /cards/{id}", s.owned(s.handleUpdateCard))
	mux.HandleFunc("DELETE /cards/{id}", s.owned(s.handleDeleteCard))

	mux.HandleFunc("POST /items", s.owned(s.handleCreateItem))
	mux.HandleFunc("GET /items", s.owned(s.handleListItems))
	mux.HandleFunc("GET /items/{id}", s.owned(s.handleGetItem))
	mux.HandleFunc("PUT /items/{id}", s.owned(s.handleUpdateItem))
	mux.HandleFunc("DELETE /items/{id}", s.owned(s.handleDeleteItem))

	mux.HandleFunc("PUT /goals", s.owned(s.handleSetGoal))
	mux.HandleFunc("GET /goals", s.owned(s.handleListGoals))
	mux.HandleFunc("DELETE /goals/{category}/{year}/{month}", s.owned(s.handleDeleteGoal))

	mux.HandleFunc("GET /reports/{type}", s.owned(s.handleReport))
	mux.HandleFunc("GET /reports/{type}/csv", s.owned(s.handleReportCSV))

	mux.HandleFunc("POST /import", s.owned(s.handleImport))

	return s
}

// Shutdown stops the cleanup goroutines before draining the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// invalidateReports drops every cached report for the principal. Called
// after each write; cheaper than tracking which report shapes a given
// write can stale.
func (s *Server) invalidateReports(owner store.Principal) {
	s.reportCache.DeletePrefix(string(owner) + "/")
}

func reportCacheKey(owner store.Principal, typ reports.ReportType, start, end string) string {
	return string(owner) + "/" + string(typ) + "/" + start + ".." + end
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
