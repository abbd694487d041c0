package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"homeops-service/internal/domain/entity"
	"homeops-service/internal/domain/repository"
	"homeops-service/internal/usecase"
)

const dateLayout = "2006-01-02"

// weekStartParam resolves the Monday-anchored target week from query params:
// an explicit week_start wins, otherwise week_offset (in weeks) from today.
func weekStartParam(r *http.Request) string {
	if v := r.URL.Query().Get("week_start"); v != "" {
		return v
	}
	offset := 0
	if v := r.URL.Query().Get("week_offset"); v != "" {
		offset, _ = strconv.Atoi(v)
	}
	return usecase.WeekStart(time.Now(), offset)
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	filter := repository.QuestionFilter{
		Category: r.URL.Query().Get("category"),
	}
	if v := r.URL.Query().Get("active"); v != "" {
		active := v == "true"
		filter.Active = &active
	}

	questions, err := s.surveyRepo.ListQuestions(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (s *Server) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var q entity.SurveyQuestion
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if q.QuestionText == "" {
		writeError(w, http.StatusBadRequest, "question_text is required")
		return
	}
	if q.QuestionType == "" {
		q.QuestionType = "text"
	}
	q.Active = true

	if err := s.surveyRepo.CreateQuestion(r.Context(), &q); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (s *Server) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid question id")
		return
	}

	existing, err := s.surveyRepo.GetQuestion(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "question not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var req struct {
		QuestionText      *string `json:"question_text"`
		QuestionType      *string `json:"question_type"`
		Options           *string `json:"options"`
		Category          *string `json:"category"`
		Priority          *int    `json:"priority"`
		Recurring         *bool   `json:"recurring"`
		RecurrencePattern *string `json:"recurrence_pattern"`
		Active            *bool   `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if req.QuestionText != nil {
		existing.QuestionText = *req.QuestionText
	}
	if req.QuestionType != nil {
		existing.QuestionType = *req.QuestionType
	}
	if req.Options != nil {
		existing.Options = *req.Options
	}
	if req.Category != nil {
		existing.Category = *req.Category
	}
	if req.Priority != nil {
		existing.Priority = *req.Priority
	}
	if req.Recurring != nil {
		existing.Recurring = *req.Recurring
	}
	if req.RecurrencePattern != nil {
		existing.RecurrencePattern = *req.RecurrencePattern
	}
	if req.Active != nil {
		existing.Active = *req.Active
	}

	if err := s.surveyRepo.UpdateQuestion(r.Context(), existing); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid question id")
		return
	}

	if err := s.surveyRepo.DeleteQuestion(r.Context(), id); err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "question not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleListPending generates the week's pending rows on demand, then lists
// whatever is still unanswered.
func (s *Server) handleListPending(w http.ResponseWriter, r *http.Request) {
	weekStart := weekStartParam(r)

	if err := s.surveyRepo.GeneratePending(r.Context(), weekStart); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	pending, err := s.surveyRepo.ListPending(r.Context(), weekStart)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"week_start": weekStart,
		"pending":    pending,
	})
}

type responseRequest struct {
	QuestionID    uint   `json:"question_id"`
	ResponseText  string `json:"response_text"`
	WeekStartDate string `json:"week_start_date"`
}

// submitResponse stores one answer, marks its pending row answered, and runs
// free-text parsing when the question is the catch-all "other" category.
func (s *Server) submitResponse(r *http.Request, req responseRequest) (*entity.SurveyResponse, []entity.ParsedItem, error) {
	ctx := r.Context()
	if req.WeekStartDate == "" {
		req.WeekStartDate = usecase.WeekStart(time.Now(), 0)
	}

	response := entity.SurveyResponse{
		QuestionID:    req.QuestionID,
		ResponseText:  req.ResponseText,
		ResponseDate:  time.Now().Format(dateLayout),
		WeekStartDate: req.WeekStartDate,
	}
	if err := s.surveyRepo.CreateResponse(ctx, &response); err != nil {
		return nil, nil, err
	}

	if err := s.surveyRepo.MarkAnswered(ctx, req.QuestionID, req.WeekStartDate); err != nil {
		s.logger.Warn("Failed to mark pending survey answered", "questionID", req.QuestionID, "error", err)
	}

	var parsed []entity.ParsedItem
	question, err := s.surveyRepo.GetQuestion(ctx, req.QuestionID)
	if err == nil && question.Category == entity.CategoryOther && req.ResponseText != "" {
		parsed, err = s.responseParser.ParseResponse(ctx, req.ResponseText, req.WeekStartDate)
		if err != nil {
			s.logger.Warn("Failed to parse survey response", "questionID", req.QuestionID, "error", err)
			parsed = nil
		}
	}
	return &response, parsed, nil
}

func (s *Server) handleSubmitResponse(w http.ResponseWriter, r *http.Request) {
	var req responseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.QuestionID == 0 {
		writeError(w, http.StatusBadRequest, "question_id is required")
		return
	}

	response, parsed, err := s.submitResponse(r, req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	payload := map[string]interface{}{"response": response}
	if parsed != nil {
		payload["parsed_items"] = parsed
	}
	writeJSON(w, http.StatusCreated, payload)
}

type bulkResponsesRequest struct {
	WeekStartDate string            `json:"week_start_date"`
	Responses     []responseRequest `json:"responses"`
}

func (s *Server) handleSubmitBulkResponses(w http.ResponseWriter, r *http.Request) {
	var req bulkResponsesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if len(req.Responses) == 0 {
		writeError(w, http.StatusBadRequest, "no responses provided")
		return
	}

	submitted := 0
	errs := []string{}
	parsedItems := []entity.ParsedItem{}
	for _, item := range req.Responses {
		if item.WeekStartDate == "" {
			item.WeekStartDate = req.WeekStartDate
		}
		if item.QuestionID == 0 {
			continue
		}
		_, parsed, err := s.submitResponse(r, item)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		submitted++
		parsedItems = append(parsedItems, parsed...)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"submitted":    submitted,
		"errors":       errs,
		"parsed_items": parsedItems,
	})
}

func (s *Server) handleListResponses(w http.ResponseWriter, r *http.Request) {
	filter := repository.ResponseFilter{
		WeekStartDate: r.URL.Query().Get("week_start"),
	}
	if v := r.URL.Query().Get("question_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid question_id")
			return
		}
		qid := uint(id)
		filter.QuestionID = &qid
	}

	responses, err := s.surveyRepo.ListResponses(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, responses)
}

func (s *Server) handleSkipPending(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid pending survey id")
		return
	}

	pending, err := s.surveyRepo.SkipPending(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "pending survey not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

type parseResponseRequest struct {
	ResponseText  string `json:"response_text"`
	WeekStartDate string `json:"week_start_date"`
}

func (s *Server) handleParseResponse(w http.ResponseWriter, r *http.Request) {
	var req parseResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.ResponseText == "" {
		writeError(w, http.StatusBadRequest, "response_text is required")
		return
	}
	if req.WeekStartDate == "" {
		req.WeekStartDate = usecase.WeekStart(time.Now(), 0)
	}

	items, err := s.responseParser.ParseResponse(r.Context(), req.ResponseText, req.WeekStartDate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"week_start":   req.WeekStartDate,
		"parsed_items": items,
	})
}

func (s *Server) handleSurveyStatus(w http.ResponseWriter, r *http.Request) {
	weekStart := weekStartParam(r)

	status, err := s.surveyRepo.StatusCounts(r.Context(), weekStart)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, status)
}
