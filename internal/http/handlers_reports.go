package http

import (
	"net/http"

	"fintrack/internal/csvio"
	applog "fintrack/internal/log"
	"fintrack/internal/reports"
	"fintrack/internal/store"
)

// getReport resolves one report for the principal, consulting the cache
// first. The range is part of the key, so distinct windows never collide.
func (s *Server) getReport(r *http.Request, owner store.Principal) (reports.Report, error) {
	typ, err := reports.Parse(r.PathValue("type"))
	if err != nil {
		return nil, err
	}
	start, end, err := parseRange(r)
	if err != nil {
		return nil, err
	}

	key := reportCacheKey(owner, typ, start.Format(), end.Format())
	if cached, ok := s.reportCache.Get(key); ok {
		applog.FromContext(r.Context()).DebugContext(r.Context(), "Report cache hit",
			"owner", owner, "report_type", typ)
		return cached, nil
	}

	report, err := s.svc.Reports.Generate(r.Context(), owner, typ, start, end)
	if err != nil {
		return nil, err
	}

	s.reportCache.Set(key, report)
	return report, nil
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	report, err := s.getReport(r, owner)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Report generation failed",
			"owner", owner, "report_type", r.PathValue("type"), "error", err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleReportCSV(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	report, err := s.getReport(r, owner)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Report generation failed",
			"owner", owner, "report_type", r.PathValue("type"), "error", err)
		writeDomainError(w, err)
		return
	}

	text, err := csvio.Export(report)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		`attachment; filename="`+string(report.Type())+`.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}
