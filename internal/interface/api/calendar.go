package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

func (s *Server) handleGetCalendarSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settingsRepo.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if settings == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"calendar_url": "", "last_synced": nil})
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

type calendarSettingsRequest struct {
	CalendarURL string `json:"calendar_url"`
}

func (s *Server) handleSaveCalendarSettings(w http.ResponseWriter, r *http.Request) {
	var req calendarSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	req.CalendarURL = strings.TrimSpace(req.CalendarURL)
	if req.CalendarURL == "" {
		writeError(w, http.StatusBadRequest, "calendar_url is required")
		return
	}

	settings, err := s.settingsRepo.Save(r.Context(), req.CalendarURL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// requestFeedURL reads an optional {calendar_url} body. An empty or absent
// body means "use the stored settings".
func requestFeedURL(r *http.Request) string {
	var req calendarSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return ""
	}
	return strings.TrimSpace(req.CalendarURL)
}

func (s *Server) handleCalendarSync(w http.ResponseWriter, r *http.Request) {
	result, err := s.calendarSync.Sync(r.Context(), requestFeedURL(r))
	if err != nil {
		if strings.Contains(err.Error(), "no calendar URL configured") {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCalendarPreview(w http.ResponseWriter, r *http.Request) {
	result, err := s.calendarSync.Preview(r.Context(), requestFeedURL(r))
	if err != nil {
		if strings.Contains(err.Error(), "no calendar URL configured") {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}
