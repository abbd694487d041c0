package usecase

import (
	"context"
	"fmt"
	"strings"

	"homeops-service/internal/domain/entity"
	"homeops-service/internal/domain/repository"
	"homeops-service/pkg/logger"
	"homeops-service/pkg/metrics"
)

// FeedFetcher retrieves timed events from an iCalendar feed URL.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]entity.FeedEvent, error)
}

// CalendarSyncUsecase imports travel records from a configured iCalendar feed.
type CalendarSyncUsecase struct {
	settingsRepo repository.CalendarSettingsRepository
	memberRepo   repository.MemberRepository
	travelRepo   repository.TravelRepository
	fetcher      FeedFetcher
	logger       logger.Logger
	metrics      *metrics.Metrics
}

// NewCalendarSyncUsecase creates a new calendar sync usecase
func NewCalendarSyncUsecase(
	settingsRepo repository.CalendarSettingsRepository,
	memberRepo repository.MemberRepository,
	travelRepo repository.TravelRepository,
	fetcher FeedFetcher,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *CalendarSyncUsecase {
	return &CalendarSyncUsecase{
		settingsRepo: settingsRepo,
		memberRepo:   memberRepo,
		travelRepo:   travelRepo,
		fetcher:      fetcher,
		logger:       logger,
		metrics:      metrics,
	}
}

const dateLayout = "2006-01-02"

// parsedEvent is one feed event resolved against the roster.
type parsedEvent struct {
	summary       string
	member        *entity.FamilyMember
	destination   string
	departureDate string
	returnDate    string
}

// resolveEvent applies the traveler heuristic to one feed event. A nil member
// means the event names nobody in the household.
func (u *CalendarSyncUsecase) resolveEvent(event entity.FeedEvent, members []entity.FamilyMember) parsedEvent {
	p := parsedEvent{summary: event.Summary}

	// First word is usually the traveler ("Ivan Paris"); fall back to
	// scanning the whole summary for any member name.
	firstWord := event.Summary
	if idx := strings.IndexAny(event.Summary, " \t"); idx > 0 {
		firstWord = event.Summary[:idx]
	}
	member := MatchMember(members, firstWord)
	if member == nil {
		member = MatchMember(members, event.Summary)
	}
	if member == nil {
		return p
	}
	p.member = member

	p.departureDate = event.Start.Format(dateLayout)
	if event.End.IsZero() {
		p.returnDate = p.departureDate
	} else {
		p.returnDate = event.End.Format(dateLayout)
	}

	// Everything but the member name is the destination.
	destination := event.Summary
	lowered := strings.ToLower(destination)
	name := strings.ToLower(member.Name)
	if idx := strings.Index(lowered, name); idx >= 0 {
		destination = destination[:idx] + destination[idx+len(name):]
	}
	destination = strings.Trim(destination, " -–:,\t")
	if destination == "" {
		destination = "Travel"
	}
	p.destination = destination

	return p
}

// feedURL resolves which feed to read: an explicit request URL wins,
// otherwise the stored settings.
func (u *CalendarSyncUsecase) feedURL(ctx context.Context, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	settings, err := u.settingsRepo.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load calendar settings: %w", err)
	}
	if settings == nil || settings.CalendarURL == "" {
		return "", fmt.Errorf("no calendar URL configured")
	}
	return settings.CalendarURL, nil
}

// Sync fetches the feed (url argument, or the configured settings when empty)
// and imports each matched event as a travel record. Events already present
// under the (member, departure, destination) natural key are skipped, so
// repeated syncs are idempotent. Per-event failures are collected in the
// result; only a missing URL or an unreachable feed fails the sync outright.
func (u *CalendarSyncUsecase) Sync(ctx context.Context, url string) (*entity.SyncResult, error) {
	feed, err := u.feedURL(ctx, url)
	if err != nil {
		return nil, err
	}

	events, err := u.fetcher.Fetch(ctx, feed)
	if err != nil {
		u.metrics.ErrorsCount.WithLabelValues("calendar_fetch").Inc()
		return nil, fmt.Errorf("failed to fetch calendar feed: %w", err)
	}

	members, err := u.memberRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	result := &entity.SyncResult{
		Errors: []string{},
		Trips:  []entity.TripSummary{},
	}

	for _, event := range events {
		// Every event counts as parsed; dateless ones are skipped silently
		// and summaryless ones fall through to the (failing) member match.
		result.Parsed++
		if event.Start.IsZero() {
			result.Skipped++
			continue
		}

		parsed := u.resolveEvent(event, members)
		if parsed.member == nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("no member match: %s", event.Summary))
			continue
		}

		exists, err := u.travelRepo.ExistsTrip(ctx, parsed.member.ID, parsed.departureDate, parsed.destination)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", event.Summary, err))
			continue
		}
		if exists {
			result.Skipped++
			continue
		}

		travel := entity.Travel{
			MemberID:      parsed.member.ID,
			Destination:   parsed.destination,
			DepartureDate: parsed.departureDate,
			ReturnDate:    parsed.returnDate,
			Notes:         fmt.Sprintf("Imported from calendar: %s", event.Summary),
			Source:        entity.SourceCalendar,
		}
		if err := u.travelRepo.Create(ctx, &travel); err != nil {
			u.logger.Error("Failed to import calendar event", "summary", event.Summary, "error", err)
			u.metrics.ErrorsCount.WithLabelValues("calendar_import").Inc()
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", event.Summary, err))
			continue
		}

		u.metrics.TripsImported.Inc()
		result.Imported++
		result.Trips = append(result.Trips, entity.TripSummary{
			Member:      parsed.member.Name,
			Destination: parsed.destination,
			Departure:   parsed.departureDate,
			Return:      parsed.returnDate,
		})
	}

	// Best-effort stamp; a failure here must not fail a completed sync.
	if err := u.settingsRepo.TouchLastSynced(ctx); err != nil {
		u.logger.Warn("Failed to update last_synced", "error", err)
	}

	u.logger.Info("Calendar sync finished",
		"parsed", result.Parsed, "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

// Preview runs the sync resolution without writing anything, reporting what a
// real sync would do with each event.
func (u *CalendarSyncUsecase) Preview(ctx context.Context, url string) (*entity.PreviewResult, error) {
	feed, err := u.feedURL(ctx, url)
	if err != nil {
		return nil, err
	}

	events, err := u.fetcher.Fetch(ctx, feed)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar feed: %w", err)
	}

	members, err := u.memberRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	result := &entity.PreviewResult{
		Events: []entity.PreviewEvent{},
	}

	for _, event := range events {
		if event.Start.IsZero() {
			continue
		}
		result.TotalEvents++

		parsed := u.resolveEvent(event, members)
		preview := entity.PreviewEvent{
			Original:      event.Summary,
			Destination:   parsed.destination,
			DepartureDate: parsed.departureDate,
			ReturnDate:    parsed.returnDate,
		}
		if parsed.member != nil {
			preview.MatchedMember = parsed.member.Name
			exists, err := u.travelRepo.ExistsTrip(ctx, parsed.member.ID, parsed.departureDate, parsed.destination)
			if err == nil && !exists {
				preview.WillImport = true
				result.WillImport++
			}
		}
		result.Events = append(result.Events, preview)
	}

	return result, nil
}
