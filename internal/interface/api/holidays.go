package api

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func (s *Server) handleListHolidays(w http.ResponseWriter, r *http.Request) {
	year := 0
	if v := r.URL.Query().Get("year"); v != "" {
		var err error
		year, err = strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
	}

	holidays, err := s.holidays.List(r.Context(), year,
		r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, holidays)
}

type fetchHolidaysRequest struct {
	Year int `json:"year"`
}

func (s *Server) handleFetchHolidays(w http.ResponseWriter, r *http.Request) {
	var req fetchHolidaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Year < 2000 || req.Year > 2100 {
		writeError(w, http.StatusBadRequest, "year must be between 2000 and 2100")
		return
	}

	stored, err := s.holidays.FetchYear(r.Context(), req.Year)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"year":   req.Year,
		"stored": stored,
	})
}
