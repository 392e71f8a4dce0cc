package http

import (
	"net/http"
	"strconv"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/store"
)

func (s *Server) handleSetGoal(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	var payload goalJSON
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	goal := payload.toCore()
	if err := goal.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if err := s.svc.Goals.SetGoal(r.Context(), owner, goal); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Set goal failed",
			"owner", owner, "category", goal.Category, "error", err)
		writeDomainError(w, err)
		return
	}

	s.invalidateReports(owner)
	writeJSON(w, http.StatusOK, goalToJSON(goal))
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	year, err := parseYear(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	goals, err := s.svc.Goals.ListGoals(r.Context(), owner, year)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]goalJSON, 0, len(goals))
	for _, g := range goals {
		out = append(out, goalToJSON(g))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request, owner store.Principal) {
	category := core.Category(r.PathValue("category"))
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	month, err := strconv.Atoi(r.PathValue("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.svc.Goals.DeleteGoal(r.Context(), owner, category, year, month); err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateReports(owner)
	w.WriteHeader(http.StatusNoContent)
}
