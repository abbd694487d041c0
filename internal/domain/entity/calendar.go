package entity

import "time"

// CalendarSettings is the singleton feed configuration row.
type CalendarSettings struct {
	ID          uint       `json:"id"`
	CalendarURL string     `json:"calendar_url"`
	LastSynced  *time.Time `json:"last_synced,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FeedEvent is a read-only timed event from an iCalendar feed.
type FeedEvent struct {
	Summary string
	Start   time.Time
	End     time.Time
}

// TripSummary describes one trip imported during a calendar sync.
type TripSummary struct {
	Member      string `json:"member"`
	Destination string `json:"destination"`
	Departure   string `json:"departure"`
	Return      string `json:"return"`
}

// SyncResult is the structured summary a calendar sync always returns, so a
// human can reconcile partial results.
type SyncResult struct {
	Parsed   int           `json:"parsed"`
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []string      `json:"errors"`
	Trips    []TripSummary `json:"trips"`
}

// PreviewEvent is the dry-run report for one feed event.
type PreviewEvent struct {
	Original      string `json:"original"`
	MatchedMember string `json:"matched_member,omitempty"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
	WillImport    bool   `json:"will_import"`
}

// PreviewResult summarizes a dry-run sync.
type PreviewResult struct {
	TotalEvents int            `json:"total_events"`
	WillImport  int            `json:"will_import"`
	Events      []PreviewEvent `json:"events"`
}
