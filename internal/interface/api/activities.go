package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"homeops-service/internal/domain/entity"
)

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	var memberID *uint
	if v := r.URL.Query().Get("member_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid member_id")
			return
		}
		u := uint(id)
		memberID = &u
	}

	activities, err := s.activityRepo.List(r.Context(), memberID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

func (s *Server) handleGetActivity(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	activity, err := s.activityRepo.GetByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "activity not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	instances, err := s.activityRepo.ListInstances(r.Context(), id, 10)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"activity":  activity,
		"instances": instances,
	})
}

func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	var activity entity.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if activity.MemberID == 0 || activity.Name == "" {
		writeError(w, http.StatusBadRequest, "member_id and name are required")
		return
	}

	if err := s.activityRepo.Create(r.Context(), &activity); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	existing, err := s.activityRepo.GetByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "activity not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var req entity.Activity
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if req.MemberID != 0 {
		existing.MemberID = req.MemberID
	}
	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Type != "" {
		existing.Type = req.Type
	}
	if req.Location != "" {
		existing.Location = req.Location
	}
	if req.Instructor != "" {
		existing.Instructor = req.Instructor
	}
	if req.Notes != "" {
		existing.Notes = req.Notes
	}
	if req.Color != "" {
		existing.Color = req.Color
	}

	if err := s.activityRepo.Update(r.Context(), existing); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	if err := s.activityRepo.Delete(r.Context(), id); err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "activity not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListActivityInstances(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	instances, err := s.activityRepo.ListInstances(r.Context(), id, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, instances)
}

func (s *Server) handleCreateActivityInstance(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	var instance entity.ActivityInstance
	if err := json.NewDecoder(r.Body).Decode(&instance); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if instance.Date == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}
	instance.ActivityID = id
	if instance.Status == "" {
		instance.Status = entity.InstanceScheduled
	}
	if instance.Source == "" {
		instance.Source = entity.SourceManual
	}

	if err := s.activityRepo.CreateInstance(r.Context(), &instance); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, instance)
}
