// Package api provides the REST surface for household ingestion and planning.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"homeops-service/internal/domain/repository"
	"homeops-service/internal/usecase"
	"homeops-service/pkg/logger"
)

// Server wires the REST handlers to repositories and usecases.
type Server struct {
	memberRepo   repository.MemberRepository
	travelRepo   repository.TravelRepository
	activityRepo repository.ActivityRepository
	surveyRepo   repository.SurveyRepository
	documentRepo repository.DocumentRepository
	settingsRepo repository.CalendarSettingsRepository

	itinerary      *usecase.ItineraryUsecase
	calendarSync   *usecase.CalendarSyncUsecase
	responseParser *usecase.ResponseParserUsecase
	holidays       *usecase.HolidayUsecase

	uploadDir string
	logger    logger.Logger
}

// Config holds handler configuration.
type Config struct {
	UploadDir string
}

// NewServer creates the REST server
func NewServer(
	memberRepo repository.MemberRepository,
	travelRepo repository.TravelRepository,
	activityRepo repository.ActivityRepository,
	surveyRepo repository.SurveyRepository,
	documentRepo repository.DocumentRepository,
	settingsRepo repository.CalendarSettingsRepository,
	itinerary *usecase.ItineraryUsecase,
	calendarSync *usecase.CalendarSyncUsecase,
	responseParser *usecase.ResponseParserUsecase,
	holidays *usecase.HolidayUsecase,
	cfg Config,
	logger logger.Logger,
) *Server {
	return &Server{
		memberRepo:     memberRepo,
		travelRepo:     travelRepo,
		activityRepo:   activityRepo,
		surveyRepo:     surveyRepo,
		documentRepo:   documentRepo,
		settingsRepo:   settingsRepo,
		itinerary:      itinerary,
		calendarSync:   calendarSync,
		responseParser: responseParser,
		holidays:       holidays,
		uploadDir:      cfg.UploadDir,
		logger:         logger,
	}
}

// Router returns the configured chi router.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/members", func(r chi.Router) {
			r.Get("/", s.handleListMembers)
			r.Post("/", s.handleCreateMember)
			r.Get("/{id}", s.handleGetMember)
			r.Put("/{id}", s.handleUpdateMember)
			r.Delete("/{id}", s.handleDeleteMember)
			r.Get("/{id}/travel", s.handleMemberTravel)
			r.Get("/{id}/activities", s.handleMemberActivities)
		})

		r.Route("/travel", func(r chi.Router) {
			r.Get("/", s.handleListTravel)
			r.Post("/", s.handleCreateTravel)
			r.Get("/{id}", s.handleGetTravel)
			r.Put("/{id}", s.handleUpdateTravel)
			r.Delete("/{id}", s.handleDeleteTravel)
		})

		r.Route("/activities", func(r chi.Router) {
			r.Get("/", s.handleListActivities)
			r.Post("/", s.handleCreateActivity)
			r.Get("/{id}", s.handleGetActivity)
			r.Put("/{id}", s.handleUpdateActivity)
			r.Delete("/{id}", s.handleDeleteActivity)
			r.Get("/{id}/instances", s.handleListActivityInstances)
			r.Post("/{id}/instances", s.handleCreateActivityInstance)
		})

		r.Route("/ingest", func(r chi.Router) {
			r.Post("/flight-itinerary", s.handleParseItinerary)
			r.Post("/flight-itinerary/confirm", s.handleConfirmFlights)
			r.Post("/pdf", s.handleIngestPDF)
			r.Post("/image", s.handleIngestImage)
			r.Post("/email", s.handleIngestEmail)
			r.Get("/history", s.handleIngestHistory)
		})

		r.Route("/calendar", func(r chi.Router) {
			r.Get("/settings", s.handleGetCalendarSettings)
			r.Post("/settings", s.handleSaveCalendarSettings)
			r.Post("/sync", s.handleCalendarSync)
			r.Post("/preview", s.handleCalendarPreview)
		})

		r.Route("/survey", func(r chi.Router) {
			r.Get("/questions", s.handleListQuestions)
			r.Post("/questions", s.handleCreateQuestion)
			r.Put("/questions/{id}", s.handleUpdateQuestion)
			r.Delete("/questions/{id}", s.handleDeleteQuestion)
			r.Get("/pending", s.handleListPending)
			r.Post("/responses", s.handleSubmitResponse)
			r.Post("/responses/bulk", s.handleSubmitBulkResponses)
			r.Get("/responses", s.handleListResponses)
			r.Post("/skip/{id}", s.handleSkipPending)
			r.Post("/parse-response", s.handleParseResponse)
			r.Get("/status", s.handleSurveyStatus)
		})

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", s.handleListHolidays)
			r.Post("/fetch", s.handleFetchHolidays)
		})
	})

	return r
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Helper functions.

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func uintParam(r *http.Request, name string) (uint, error) {
	v, err := strconv.ParseUint(chi.URLParam(r, name), 10, 32)
	return uint(v), err
}
