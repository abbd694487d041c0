package calendarfeed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"homeops-service/internal/domain/entity"

	ics "github.com/arran4/golang-ical"
)

// HTTPFetcher downloads and parses an iCalendar feed over HTTP.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a feed fetcher with a bounded request timeout
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the feed and returns its timed events. Events without a
// parseable start are dropped rather than failing the feed.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]entity.FeedEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar feed returned status %d", resp.StatusCode)
	}

	cal, err := ics.ParseCalendar(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar feed: %w", err)
	}

	events := make([]entity.FeedEvent, 0, len(cal.Events()))
	for _, e := range cal.Events() {
		summary := ""
		if prop := e.GetProperty(ics.ComponentPropertySummary); prop != nil {
			summary = prop.Value
		}

		start, err := e.GetStartAt()
		if err != nil {
			start, err = e.GetAllDayStartAt()
			if err != nil {
				continue
			}
		}

		end, err := e.GetEndAt()
		if err != nil {
			end, err = e.GetAllDayEndAt()
			if err != nil {
				end = time.Time{}
			}
		}

		events = append(events, entity.FeedEvent{
			Summary: summary,
			Start:   start,
			End:     end,
		})
	}
	return events, nil
}
