package entity

import "time"

// Activity instance statuses
const (
	InstanceScheduled = "scheduled"
	InstanceCancelled = "cancelled"
)

// Activity is a recurring activity owned by one member. Matching during
// ingestion is by (member_id, case-insensitive name) equality only.
type Activity struct {
	ID         uint      `json:"id"`
	MemberID   uint      `json:"member_id"`
	MemberName string    `json:"member_name,omitempty"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Location   string    `json:"location,omitempty"`
	Instructor string    `json:"instructor,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Color      string    `json:"color"`
	CreatedAt  time.Time `json:"created_at"`
}

// ActivityInstance is a single dated occurrence of an activity.
type ActivityInstance struct {
	ID         uint      `json:"id"`
	ActivityID uint      `json:"activity_id"`
	Date       string    `json:"date"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"created_at"`
}
