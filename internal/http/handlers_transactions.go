package http

import (
	"net/http"

	applog "fintrack/internal/log"
	"fintrack/internal/store"
)

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	var payload transactionJSON
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	created, err := s.svc.Ledger.CreateTransaction(r.Context(), owner, payload.toCore())
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Create transaction failed", "owner", owner, "error", err)
		writeDomainError(w, err)
		return
	}

	s.invalidateReports(owner)
	writeJSON(w, http.StatusCreated, transactionToJSON(created))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	txns, err := s.svc.Ledger.ListTransactions(r.Context(), owner)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "List transactions failed", "owner", owner, "error", err)
		writeDomainError(w, err)
		return
	}

	out := make([]transactionJSON, 0, len(txns))
	for _, t := range txns {
		out = append(out, transactionToJSON(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	t, err := s.svc.Ledger.GetTransaction(r.Context(), owner, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionToJSON(t))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	var payload transactionJSON
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	payload.ID = r.PathValue("id")

	updated, err := s.svc.Ledger.UpdateTransaction(r.Context(), owner, payload.toCore())
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Update transaction failed",
			"owner", owner, "transaction_id", payload.ID, "error", err)
		writeDomainError(w, err)
		return
	}

	s.invalidateReports(owner)
	writeJSON(w, http.StatusOK, transactionToJSON(updated))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	id := r.PathValue("id")
	if err := s.svc.Ledger.DeleteTransaction(r.Context(), owner, id); err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateReports(owner)
	w.WriteHeader(http.StatusNoContent)
}
