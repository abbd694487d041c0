package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"homeops-service/internal/domain/entity"
	"homeops-service/internal/domain/repository"
	"homeops-service/pkg/logger"
	"homeops-service/pkg/metrics"
	"homeops-service/pkg/textparse"
)

// TextExtractor pulls plain text out of an uploaded file.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// IngestResult is the payload returned for a PDF, image, or email ingestion.
type IngestResult struct {
	Flights     []entity.CandidateFlight `json:"flights"`
	Activities  []textparse.ActivityHint `json:"activities"`
	Dates       []string                 `json:"dates"`
	TextPreview string                   `json:"text_preview,omitempty"`
	Duplicate   bool                     `json:"duplicate"`
}

// ConfirmResult summarizes a batch flight confirmation.
type ConfirmResult struct {
	Created []entity.Travel `json:"created"`
	Skipped int             `json:"skipped"`
	Errors  []string        `json:"errors"`
}

// ItineraryUsecase turns pasted or uploaded itinerary content into reviewed
// candidate flights and, on confirmation, travel records.
type ItineraryUsecase struct {
	memberRepo   repository.MemberRepository
	travelRepo   repository.TravelRepository
	documentRepo repository.DocumentRepository
	pdfExtractor TextExtractor
	ocrExtractor TextExtractor
	logger       logger.Logger
	metrics      *metrics.Metrics
}

// NewItineraryUsecase creates a new itinerary usecase
func NewItineraryUsecase(
	memberRepo repository.MemberRepository,
	travelRepo repository.TravelRepository,
	documentRepo repository.DocumentRepository,
	pdfExtractor TextExtractor,
	ocrExtractor TextExtractor,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *ItineraryUsecase {
	return &ItineraryUsecase{
		memberRepo:   memberRepo,
		travelRepo:   travelRepo,
		documentRepo: documentRepo,
		pdfExtractor: pdfExtractor,
		ocrExtractor: ocrExtractor,
		logger:       logger,
		metrics:      metrics,
	}
}

// ContentHash returns the dedup key for a piece of ingested text.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// ParseItinerary extracts candidate flights from pasted free text and matches
// traveler names against the roster. The raw text is archived keyed by content
// hash; re-pasting the same itinerary does not duplicate the archive entry.
func (u *ItineraryUsecase) ParseItinerary(ctx context.Context, text, sourceType string) ([]entity.CandidateFlight, error) {
	start := time.Now()
	defer func() {
		u.metrics.ParseTime.Observe(time.Since(start).Seconds())
	}()

	flights := textparse.ExtractFlights(text)
	u.metrics.FlightsExtracted.Add(float64(len(flights)))

	members, err := u.memberRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	candidates := make([]entity.CandidateFlight, 0, len(flights))
	for _, f := range flights {
		candidate := entity.CandidateFlight{
			Airline:          f.Airline,
			AirlineCode:      f.AirlineCode,
			FlightNumber:     f.FlightNumber,
			DepartureDate:    f.DepartureDate,
			DepartureTime:    f.DepartureTime,
			ReturnDate:       f.ReturnDate,
			ConfirmationCode: f.ConfirmationCode,
			TravelerName:     f.TravelerName,
			Origin:           f.Origin,
			Destination:      f.Destination,
		}
		if member := MatchMember(members, f.TravelerName); member != nil {
			id := member.ID
			candidate.MemberID = &id
			candidate.MemberName = member.Name
		} else {
			candidate.NeedsMemberAssignment = true
		}
		candidates = append(candidates, candidate)
	}

	u.archive(ctx, &entity.IngestedDocument{
		SourceType:  sourceType,
		ContentHash: ContentHash(text),
		ExtractedData: map[string]interface{}{
			"flightCount": len(candidates),
		},
	})

	u.logger.Info("Parsed itinerary text", "flights", len(candidates), "source", sourceType)
	return candidates, nil
}

// ConfirmFlights persists reviewed candidates as travel records. Candidates
// still lacking a member are skipped; per-candidate store errors are collected
// so one failure does not discard the rest of the batch.
func (u *ItineraryUsecase) ConfirmFlights(ctx context.Context, candidates []entity.CandidateFlight) (*ConfirmResult, error) {
	result := &ConfirmResult{
		Created: []entity.Travel{},
		Errors:  []string{},
	}

	for _, c := range candidates {
		if c.MemberID == nil {
			result.Skipped++
			continue
		}

		destination := c.Destination
		if destination == "" {
			destination = "Travel"
		}

		travel := entity.Travel{
			MemberID:         *c.MemberID,
			Destination:      destination,
			DepartureDate:    c.DepartureDate,
			DepartureTime:    c.DepartureTime,
			ReturnDate:       c.ReturnDate,
			FlightNumber:     c.FlightNumber,
			Airline:          c.Airline,
			ConfirmationCode: c.ConfirmationCode,
			Notes:            c.Notes,
			Source:           entity.SourceItinerary,
		}
		if err := u.travelRepo.Create(ctx, &travel); err != nil {
			u.logger.Error("Failed to create travel record", "flight", c.FlightNumber, "error", err)
			u.metrics.ErrorsCount.WithLabelValues("confirm_flights").Inc()
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", c.FlightNumber, err))
			continue
		}

		u.metrics.TripsImported.Inc()
		result.Created = append(result.Created, travel)
	}

	u.logger.Info("Confirmed flights", "created", len(result.Created), "skipped", result.Skipped)
	return result, nil
}

// IngestPDF extracts text from an uploaded PDF and parses it for flights,
// activity hints, and dates. The first 2000 characters of raw text are
// returned so a human can sanity-check the extraction.
func (u *ItineraryUsecase) IngestPDF(ctx context.Context, path, filename string) (*IngestResult, error) {
	text, err := u.pdfExtractor.ExtractText(ctx, path)
	if err != nil {
		u.metrics.ErrorsCount.WithLabelValues("ingest_pdf").Inc()
		return nil, fmt.Errorf("failed to extract PDF text: %w", err)
	}

	result, err := u.ingestText(ctx, text, "pdf", filename, "application/pdf", "")
	if err != nil {
		return nil, err
	}

	preview := text
	if len(preview) > 2000 {
		preview = preview[:2000]
	}
	result.TextPreview = preview
	return result, nil
}

// IngestImage OCRs an uploaded image and parses the recognized text.
func (u *ItineraryUsecase) IngestImage(ctx context.Context, path, filename string) (*IngestResult, error) {
	text, err := u.ocrExtractor.ExtractText(ctx, path)
	if err != nil {
		u.metrics.ErrorsCount.WithLabelValues("ingest_image").Inc()
		return nil, fmt.Errorf("failed to OCR image: %w", err)
	}
	return u.ingestText(ctx, text, "image", filename, "image", "")
}

// IngestEmail parses a forwarded email, treating subject and body as one text.
func (u *ItineraryUsecase) IngestEmail(ctx context.Context, from, subject, body string) (*IngestResult, error) {
	text := subject + "\n" + body
	note := fmt.Sprintf("From: %s Subject: %s", from, subject)
	return u.ingestText(ctx, text, "email", "", "", note)
}

func (u *ItineraryUsecase) ingestText(ctx context.Context, text, sourceType, filename, fileType, notes string) (*IngestResult, error) {
	start := time.Now()
	defer func() {
		u.metrics.ParseTime.Observe(time.Since(start).Seconds())
	}()

	flights := textparse.ExtractFlights(text)
	u.metrics.FlightsExtracted.Add(float64(len(flights)))
	activities := textparse.ExtractActivities(text)
	dates := textparse.ExtractDates(text)

	members, err := u.memberRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	candidates := make([]entity.CandidateFlight, 0, len(flights))
	for _, f := range flights {
		candidate := entity.CandidateFlight{
			Airline:          f.Airline,
			AirlineCode:      f.AirlineCode,
			FlightNumber:     f.FlightNumber,
			DepartureDate:    f.DepartureDate,
			DepartureTime:    f.DepartureTime,
			ReturnDate:       f.ReturnDate,
			ConfirmationCode: f.ConfirmationCode,
			TravelerName:     f.TravelerName,
			Origin:           f.Origin,
			Destination:      f.Destination,
		}
		if member := MatchMember(members, f.TravelerName); member != nil {
			id := member.ID
			candidate.MemberID = &id
			candidate.MemberName = member.Name
		} else {
			candidate.NeedsMemberAssignment = true
		}
		candidates = append(candidates, candidate)
	}

	doc := &entity.IngestedDocument{
		Filename:    filename,
		FileType:    fileType,
		SourceType:  sourceType,
		Notes:       notes,
		ContentHash: ContentHash(text),
		ExtractedData: map[string]interface{}{
			"flightCount":   len(candidates),
			"activityCount": len(activities),
			"dateCount":     len(dates),
		},
	}
	inserted := u.archive(ctx, doc)

	u.logger.Info("Ingested document",
		"source", sourceType, "filename", filename,
		"flights", len(candidates), "activities", len(activities), "dates", len(dates))

	return &IngestResult{
		Flights:    candidates,
		Activities: activities,
		Dates:      dates,
		Duplicate:  !inserted,
	}, nil
}

// archive is best-effort: a failed archive write never fails the ingestion.
func (u *ItineraryUsecase) archive(ctx context.Context, doc *entity.IngestedDocument) bool {
	inserted, err := u.documentRepo.InsertIfNew(ctx, doc)
	if err != nil {
		u.logger.Warn("Failed to archive ingested document", "error", err)
		u.metrics.ErrorsCount.WithLabelValues("archive_document").Inc()
		return true
	}
	if inserted {
		u.metrics.DocumentsIngested.Inc()
	}
	return inserted
}
