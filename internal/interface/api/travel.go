package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"homeops-service/internal/domain/entity"
)

func (s *Server) handleListTravel(w http.ResponseWriter, r *http.Request) {
	filter := entity.TravelFilter{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if v := r.URL.Query().Get("member_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid member_id")
			return
		}
		memberID := uint(id)
		filter.MemberID = &memberID
	}

	travels, err := s.travelRepo.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, travels)
}

func (s *Server) handleGetTravel(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid travel id")
		return
	}

	travel, err := s.travelRepo.GetByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "travel record not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, travel)
}

func (s *Server) handleCreateTravel(w http.ResponseWriter, r *http.Request) {
	var travel entity.Travel
	if err := json.NewDecoder(r.Body).Decode(&travel); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if travel.MemberID == 0 || travel.Destination == "" || travel.DepartureDate == "" {
		writeError(w, http.StatusBadRequest, "member_id, destination, and departure_date are required")
		return
	}
	if travel.Source == "" {
		travel.Source = entity.SourceManual
	}

	if err := s.travelRepo.Create(r.Context(), &travel); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, travel)
}

func (s *Server) handleUpdateTravel(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid travel id")
		return
	}

	existing, err := s.travelRepo.GetByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "travel record not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var req entity.Travel
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if req.MemberID != 0 {
		existing.MemberID = req.MemberID
	}
	if req.Destination != "" {
		existing.Destination = req.Destination
	}
	if req.DepartureDate != "" {
		existing.DepartureDate = req.DepartureDate
	}
	if req.DepartureTime != "" {
		existing.DepartureTime = req.DepartureTime
	}
	if req.ReturnDate != "" {
		existing.ReturnDate = req.ReturnDate
	}
	if req.ReturnTime != "" {
		existing.ReturnTime = req.ReturnTime
	}
	if req.FlightNumber != "" {
		existing.FlightNumber = req.FlightNumber
	}
	if req.Airline != "" {
		existing.Airline = req.Airline
	}
	if req.ConfirmationCode != "" {
		existing.ConfirmationCode = req.ConfirmationCode
	}
	if req.Notes != "" {
		existing.Notes = req.Notes
	}
	if req.Source != "" {
		existing.Source = req.Source
	}

	if err := s.travelRepo.Update(r.Context(), existing); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

func (s *Server) handleDeleteTravel(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid travel id")
		return
	}

	if err := s.travelRepo.Delete(r.Context(), id); err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "travel record not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
