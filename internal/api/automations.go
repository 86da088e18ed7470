package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/plain-automation/internal/rules"
	"github.com/nerrad567/plain-automation/internal/translator"
)

// handleListAutomations returns all automations in the flat rule model.
func (s *Server) handleListAutomations(w http.ResponseWriter, r *http.Request) {
	automations, err := s.rules.List(r.Context())
	if err != nil {
		s.logger.Error("listing automations", "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"automations": automations,
		"count":       len(automations),
	})
}

// handleCreateAutomation creates a new automation from a flat rule.
func (s *Server) handleCreateAutomation(w http.ResponseWriter, r *http.Request) {
	var model translator.Automation
	if err := json.NewDecoder(r.Body).Decode(&model); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	result, err := s.rules.Create(r.Context(), model)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// handleGetAutomation returns a single automation by identifier.
func (s *Server) handleGetAutomation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !rules.ValidID(id) {
		writeBadRequest(w, "invalid automation id")
		return
	}

	automation, err := s.rules.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, automation)
}

// handleUpdateAutomation replaces an existing automation. The
// identifier in the path is authoritative; renaming the automation
// changes its alias but never its file.
func (s *Server) handleUpdateAutomation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !rules.ValidID(id) {
		writeBadRequest(w, "invalid automation id")
		return
	}

	var model translator.Automation
	if err := json.NewDecoder(r.Body).Decode(&model); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	result, err := s.rules.Update(r.Context(), id, model)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleDeleteAutomation removes an automation file.
func (s *Server) handleDeleteAutomation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !rules.ValidID(id) {
		writeBadRequest(w, "invalid automation id")
		return
	}

	result, err := s.rules.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleReload triggers a manual Home Assistant automation reload.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.rules.Reload(r.Context()); err != nil {
		s.logger.Error("manual reload failed", "error", err)
		writeError(w, http.StatusBadGateway, ErrCodeUnavailable, "automation reload failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "reloaded"})
}
