package http

import (
	"fmt"
	"io"
	"net/http"

	applog "fintrack/internal/log"
	"fintrack/internal/store"
)

// handleImport accepts a raw CSV body and loads it row by row. The
// response always reports per-row outcomes; only an unreadable body or a
// missing header fails the request as a whole.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return
	}

	result, err := s.svc.Import.Import(r.Context(), owner, string(body))
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Import failed", "owner", owner, "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.invalidateReports(owner)
	writeJSON(w, http.StatusOK, result)
}
