package entity

import "time"

// Travel record sources
const (
	SourceManual    = "manual"
	SourceItinerary = "itinerary"
	SourceCalendar  = "calendar"
	SourceSurvey    = "survey"
)

// Travel is a durable trip record for one member. Dates are canonical
// YYYY-MM-DD strings; an empty string means the field is unset.
type Travel struct {
	ID               uint      `json:"id"`
	MemberID         uint      `json:"member_id"`
	MemberName       string    `json:"member_name,omitempty"`
	MemberColor      string    `json:"member_color,omitempty"`
	Destination      string    `json:"destination"`
	DepartureDate    string    `json:"departure_date"`
	DepartureTime    string    `json:"departure_time,omitempty"`
	ReturnDate       string    `json:"return_date,omitempty"`
	ReturnTime       string    `json:"return_time,omitempty"`
	FlightNumber     string    `json:"flight_number,omitempty"`
	Airline          string    `json:"airline,omitempty"`
	ConfirmationCode string    `json:"confirmation_code,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	Source           string    `json:"source"`
	CreatedAt        time.Time `json:"created_at"`
}

// TravelFilter narrows travel listings.
type TravelFilter struct {
	StartDate string
	EndDate   string
	MemberID  *uint
}

// CandidateFlight is an ephemeral extraction result awaiting confirmation.
// MemberID is nil when the traveler name could not be matched, in which case
// NeedsMemberAssignment is set and a human must assign the member before the
// candidate can become a Travel record.
type CandidateFlight struct {
	Airline               string `json:"airline"`
	AirlineCode           string `json:"airline_code"`
	FlightNumber          string `json:"flight_number"`
	DepartureDate         string `json:"departure_date"`
	DepartureTime         string `json:"departure_time"`
	ReturnDate            string `json:"return_date"`
	ConfirmationCode      string `json:"confirmation_code"`
	TravelerName          string `json:"traveler_name"`
	Origin                string `json:"origin"`
	Destination           string `json:"destination"`
	Notes                 string `json:"notes,omitempty"`
	MemberID              *uint  `json:"member_id"`
	MemberName            string `json:"member_name"`
	NeedsMemberAssignment bool   `json:"needs_member_assignment"`
}
