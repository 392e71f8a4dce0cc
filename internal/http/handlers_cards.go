package http

import (
	"net/http"

	"github.com/google/uuid"

	applog "fintrack/internal/log"
	"fintrack/internal/store"
)

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	var payload cardJSON
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	card := payload.toCore()
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	if err := card.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.svc.Store.CreateCard(r.Context(), owner, card); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Create card failed", "owner", owner, "error", err)
		writeDomainError(w, err)
		return
	}

	// Seed the derived balance so a card created with history or a
	// starting balance does not read zero until the first event lands.
	card, err := s.svc.Balances.RecomputeCard(r.Context(), owner, card.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateReports(owner)
	writeJSON(w, http.StatusCreated, cardToJSON(card))
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	cards, err := s.svc.Store.ListCards(r.Context(), owner)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]cardJSON, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardToJSON(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	card, err := s.svc.Store.GetCard(r.Context(), owner, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cardToJSON(card))
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	var payload cardJSON
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	card := payload.toCore()
	card.ID = r.PathValue("id")
	if err := card.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.svc.Store.UpdateCard(r.Context(), owner, card); err != nil {
		writeDomainError(w, err)
		return
	}

	card, err := s.svc.Balances.RecomputeCard(r.Context(), owner, card.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateReports(owner)
	writeJSON(w, http.StatusOK, cardToJSON(card))
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	if err := s.svc.Store.DeleteCard(r.Context(), owner, r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateReports(owner)
	w.WriteHeader(http.StatusNoContent)
}
