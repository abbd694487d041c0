package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"homeops-service/internal/domain/entity"
)

const maxUploadSize = 20 << 20 // 20 MB

type parseItineraryRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// handleParseItinerary extracts candidate flights from pasted text. Zero
// extracted flights is a client error so the UI can tell the user nothing was
// recognized.
func (s *Server) handleParseItinerary(w http.ResponseWriter, r *http.Request) {
	var req parseItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if req.Source == "" {
		req.Source = "paste"
	}

	flights, err := s.itinerary.ParseItinerary(r.Context(), req.Text, req.Source)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(flights) == 0 {
		writeError(w, http.StatusBadRequest, "no flight information found in text")
		return
	}

	needsReview := false
	for _, f := range flights {
		if f.NeedsMemberAssignment {
			needsReview = true
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"flights":      flights,
		"message":      fmt.Sprintf("Found %d flight(s)", len(flights)),
		"needs_review": needsReview,
	})
}

type confirmFlightsRequest struct {
	Flights []entity.CandidateFlight `json:"flights"`
}

func (s *Server) handleConfirmFlights(w http.ResponseWriter, r *http.Request) {
	var req confirmFlightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if len(req.Flights) == 0 {
		writeError(w, http.StatusBadRequest, "no flights to confirm")
		return
	}

	result, err := s.itinerary.ConfirmFlights(r.Context(), req.Flights)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// saveUpload writes a multipart upload to a uuid-named temp file under the
// upload dir. Callers must remove the file when done.
func (s *Server) saveUpload(r *http.Request, field string) (string, string, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return "", "", fmt.Errorf("invalid multipart form: %w", err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return "", "", fmt.Errorf("missing %q file field: %w", field, err)
	}
	defer file.Close()

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", "", err
	}

	path := filepath.Join(s.uploadDir, uuid.New().String()+filepath.Ext(header.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", "", err
	}
	return path, header.Filename, nil
}

func (s *Server) handleIngestPDF(w http.ResponseWriter, r *http.Request) {
	path, filename, err := s.saveUpload(r, "file")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer os.Remove(path)

	result, err := s.itinerary.IngestPDF(r.Context(), path, filename)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleIngestImage(w http.ResponseWriter, r *http.Request) {
	path, filename, err := s.saveUpload(r, "file")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer os.Remove(path)

	result, err := s.itinerary.IngestImage(r.Context(), path, filename)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type ingestEmailRequest struct {
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (s *Server) handleIngestEmail(w http.ResponseWriter, r *http.Request) {
	var req ingestEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Subject == "" && req.Body == "" {
		writeError(w, http.StatusBadRequest, "subject or body is required")
		return
	}

	result, err := s.itinerary.IngestEmail(r.Context(), req.From, req.Subject, req.Body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleIngestHistory(w http.ResponseWriter, r *http.Request) {
	sourceType := r.URL.Query().Get("source_type")
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	documents, err := s.documentRepo.List(r.Context(), sourceType, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, documents)
}
