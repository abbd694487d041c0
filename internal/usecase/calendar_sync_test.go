package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeops-service/internal/domain/entity"
	"homeops-service/pkg/logger"
)

func newCalendarSync(settings *fakeSettingsRepo, members *fakeMemberRepo, travel *fakeTravelRepo, fetcher *fakeFeedFetcher) *CalendarSyncUsecase {
	return NewCalendarSyncUsecase(settings, members, travel, fetcher, logger.NewNoop(), testMetrics)
}

func feedSettings() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: &entity.CalendarSettings{ID: 1, CalendarURL: "https://example.com/feed.ics"}}
}

func TestSyncImportsMatchedEvent(t *testing.T) {
	travel := &fakeTravelRepo{}
	settings := feedSettings()
	fetcher := &fakeFeedFetcher{events: []entity.FeedEvent{
		{
			Summary: "Ivan Paris",
			Start:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			End:     time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		},
	}}

	uc := newCalendarSync(settings, household(), travel, fetcher)
	result, err := uc.Sync(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Parsed)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, travel.records, 1)

	got := travel.records[0]
	assert.Equal(t, uint(1), got.MemberID)
	assert.Equal(t, "Paris", got.Destination)
	assert.Equal(t, "2025-03-10", got.DepartureDate)
	assert.Equal(t, "2025-03-14", got.ReturnDate)
	assert.Equal(t, entity.SourceCalendar, got.Source)
	assert.Equal(t, 1, settings.touched)
}

func TestSyncSecondRunImportsNothing(t *testing.T) {
	travel := &fakeTravelRepo{}
	fetcher := &fakeFeedFetcher{events: []entity.FeedEvent{
		{Summary: "Ivan Paris", Start: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{Summary: "Sara Denver", Start: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)},
	}}

	uc := newCalendarSync(feedSettings(), household(), travel, fetcher)

	first, err := uc.Sync(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, first.Imported)

	second, err := uc.Sync(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 2, second.Skipped)
	assert.Len(t, travel.records, 2)
}

func TestSyncUnmatchedEventRecorded(t *testing.T) {
	travel := &fakeTravelRepo{}
	fetcher := &fakeFeedFetcher{events: []entity.FeedEvent{
		{Summary: "Dentist appointment", Start: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
	}}

	uc := newCalendarSync(feedSettings(), household(), travel, fetcher)
	result, err := uc.Sync(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Parsed)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "no member match")
	assert.Empty(t, travel.records)
}

func TestSyncCountsDatelessAndSummarylessEvents(t *testing.T) {
	travel := &fakeTravelRepo{}
	fetcher := &fakeFeedFetcher{events: []entity.FeedEvent{
		{Summary: "", Start: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{Summary: "Ivan Paris"},
	}}

	uc := newCalendarSync(feedSettings(), household(), travel, fetcher)
	result, err := uc.Sync(context.Background(), "")
	require.NoError(t, err)

	// Both events count as parsed: the dateless one is skipped silently, the
	// summaryless one is skipped with a no-match error.
	assert.Equal(t, 2, result.Parsed)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, 0, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "no member match")
	assert.Empty(t, travel.records)
}

func TestSyncURLOverridesStoredSettings(t *testing.T) {
	travel := &fakeTravelRepo{}
	fetcher := &fakeFeedFetcher{events: []entity.FeedEvent{
		{Summary: "Ivan Paris", Start: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
	}}

	// Nothing stored; the per-request URL alone drives the sync.
	uc := newCalendarSync(&fakeSettingsRepo{}, household(), travel, fetcher)
	result, err := uc.Sync(context.Background(), "https://other.example.com/feed.ics")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, "https://other.example.com/feed.ics", fetcher.lastURL)
	assert.Len(t, travel.records, 1)
}

func TestSyncEndDefaultsToStart(t *testing.T) {
	travel := &fakeTravelRepo{}
	fetcher := &fakeFeedFetcher{events: []entity.FeedEvent{
		{Summary: "Marnie Chicago", Start: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
	}}

	uc := newCalendarSync(feedSettings(), household(), travel, fetcher)
	_, err := uc.Sync(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, travel.records, 1)
	assert.Equal(t, "2025-05-01", travel.records[0].ReturnDate)
}

func TestSyncDestinationDefaultsToTravel(t *testing.T) {
	travel := &fakeTravelRepo{}
	fetcher := &fakeFeedFetcher{events: []entity.FeedEvent{
		{Summary: "Ivan", Start: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
	}}

	uc := newCalendarSync(feedSettings(), household(), travel, fetcher)
	_, err := uc.Sync(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, travel.records, 1)
	assert.Equal(t, "Travel", travel.records[0].Destination)
}

func TestSyncNoURLConfigured(t *testing.T) {
	uc := newCalendarSync(&fakeSettingsRepo{}, household(), &fakeTravelRepo{}, &fakeFeedFetcher{})

	_, err := uc.Sync(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no calendar URL configured")
}

func TestSyncFetchErrorFailsRequest(t *testing.T) {
	fetcher := &fakeFeedFetcher{err: errors.New("connection refused")}
	uc := newCalendarSync(feedSettings(), household(), &fakeTravelRepo{}, fetcher)

	_, err := uc.Sync(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch calendar feed")
}

func TestSyncStoreErrorRecordedPerEvent(t *testing.T) {
	travel := &fakeTravelRepo{createErr: errors.New("disk full")}
	fetcher := &fakeFeedFetcher{events: []entity.FeedEvent{
		{Summary: "Ivan Paris", Start: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
	}}

	uc := newCalendarSync(feedSettings(), household(), travel, fetcher)
	result, err := uc.Sync(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "disk full")
}

func TestPreviewWritesNothing(t *testing.T) {
	travel := &fakeTravelRepo{}
	fetcher := &fakeFeedFetcher{events: []entity.FeedEvent{
		{Summary: "Ivan Paris", Start: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{Summary: "Dentist appointment", Start: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)},
		{Summary: "No date yet"},
	}}

	uc := newCalendarSync(feedSettings(), household(), travel, fetcher)
	result, err := uc.Preview(context.Background(), "")
	require.NoError(t, err)

	// The dateless event is excluded from the preview entirely.
	assert.Equal(t, 2, result.TotalEvents)
	assert.Equal(t, 1, result.WillImport)
	assert.Empty(t, travel.records)

	require.Len(t, result.Events, 2)
	assert.True(t, result.Events[0].WillImport)
	assert.Equal(t, "Ivan", result.Events[0].MatchedMember)
	assert.False(t, result.Events[1].WillImport)
	assert.Empty(t, result.Events[1].MatchedMember)
}
