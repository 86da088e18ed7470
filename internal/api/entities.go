package api

import (
	"net/http"
)

// handleListEntities proxies the Home Assistant entity registry so the
// UI can offer pickers for lights, switches, and sensors. Returns 503
// when no Home Assistant connection is configured.
func (s *Server) handleListEntities(w http.ResponseWriter, r *http.Request) {
	if s.hass == nil || !s.hass.Configured() {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "home assistant integration is not configured")
		return
	}

	domain := r.URL.Query().Get("domain")

	entities, err := s.hass.ListEntities(r.Context(), domain)
	if err != nil {
		s.logger.Error("listing entities", "error", err, "domain", domain)
		writeError(w, http.StatusBadGateway, ErrCodeUnavailable, "failed to fetch entities from home assistant")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entities": entities,
		"count":    len(entities),
	})
}
