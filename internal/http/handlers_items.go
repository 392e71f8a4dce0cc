package http

import (
	"net/http"

	"github.com/google/uuid"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/store"
)

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	var payload itemJSON
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	item := payload.toCore()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	// A new loan starts at its initial amount; payments are replayed from
	// the ledger afterwards.
	if item.Category == core.ItemLoan && item.Amount.IsZero() {
		item.Amount = item.InitialAmount
	}
	if err := item.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if err := s.svc.Store.CreateItem(r.Context(), owner, item); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Create item failed", "owner", owner, "error", err)
		writeDomainError(w, err)
		return
	}

	if item.Category == core.ItemLoan {
		var err error
		if item, err = s.svc.Balances.RecomputeLoan(r.Context(), owner, item.ID); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	s.invalidateReports(owner)
	writeJSON(w, http.StatusCreated, itemToJSON(item))
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	items, err := s.svc.Store.ListItems(r.Context(), owner)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]itemJSON, 0, len(items))
	for _, i := range items {
		out = append(out, itemToJSON(i))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	item, err := s.svc.Store.GetItem(r.Context(), owner, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemToJSON(item))
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	var payload itemJSON
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	item := payload.toCore()
	item.ID = r.PathValue("id")
	if err := item.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if err := s.svc.Store.UpdateItem(r.Context(), owner, item); err != nil {
		writeDomainError(w, err)
		return
	}

	if item.Category == core.ItemLoan {
		var err error
		if item, err = s.svc.Balances.RecomputeLoan(r.Context(), owner, item.ID); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	s.invalidateReports(owner)
	writeJSON(w, http.StatusOK, itemToJSON(item))
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	if err := s.svc.Store.DeleteItem(r.Context(), owner, r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateReports(owner)
	w.WriteHeader(http.StatusNoContent)
}
