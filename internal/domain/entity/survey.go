package entity

import "time"

// Pending survey statuses
const (
	SurveyPending  = "pending"
	SurveyAnswered = "answered"
	SurveySkipped  = "skipped"
)

// CategoryOther marks the free-form "anything else" question whose answers
// are run through the free-text response parser on submission.
const CategoryOther = "other"

// SurveyQuestion is a weekly planning question.
type SurveyQuestion struct {
	ID                uint      `json:"id"`
	QuestionText      string    `json:"question_text"`
	QuestionType      string    `json:"question_type"`
	Options           string    `json:"options,omitempty"`
	Category          string    `json:"category"`
	Priority          int       `json:"priority"`
	Recurring         bool      `json:"recurring"`
	RecurrencePattern string    `json:"recurrence_pattern,omitempty"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
}

// PendingSurvey tracks whether a recurring question has been answered for a
// given Monday-anchored week.
type PendingSurvey struct {
	ID           uint       `json:"id"`
	QuestionID   uint       `json:"question_id"`
	ForWeekStart string     `json:"for_week_start"`
	Status       string     `json:"status"`
	AnsweredAt   *time.Time `json:"answered_at,omitempty"`
	QuestionText string     `json:"question_text,omitempty"`
	QuestionType string     `json:"question_type,omitempty"`
	Options      string     `json:"options,omitempty"`
	Category     string     `json:"category,omitempty"`
}

// SurveyResponse is a submitted answer for one question and week.
type SurveyResponse struct {
	ID            uint   `json:"id"`
	QuestionID    uint   `json:"question_id"`
	ResponseText  string `json:"response_text"`
	ResponseDate  string `json:"response_date"`
	WeekStartDate string `json:"week_start_date"`
	QuestionText  string `json:"question_text,omitempty"`
	Category      string `json:"category,omitempty"`
}

// SurveyStatus summarizes weekly completion for the dashboard.
type SurveyStatus struct {
	WeekStart      string `json:"week_start"`
	PendingCount   int64  `json:"pending_count"`
	AnsweredCount  int64  `json:"answered_count"`
	SkippedCount   int64  `json:"skipped_count"`
	TotalCount     int64  `json:"total_count"`
	CompletionRate int    `json:"completion_rate"`
}

// ParsedItem is one classified clause from a free-text survey response.
// Type is travel, activity, or note.
type ParsedItem struct {
	Type    string `json:"type"`
	Member  string `json:"member,omitempty"`
	Details string `json:"details"`
	Date    string `json:"date,omitempty"`
	Line    string `json:"line"`
	Error   string `json:"error,omitempty"`
}
