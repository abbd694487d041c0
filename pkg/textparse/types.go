package textparse

// Flight is a candidate flight extracted from free text. All fields are raw
// best-guess values; dates are normalized to YYYY-MM-DD where parseable and
// empty where not. Callers are expected to review before persisting.
type Flight struct {
	Airline          string `json:"airline"`
	AirlineCode      string `json:"airline_code"`
	FlightNumber     string `json:"flight_number"`
	DepartureDate    string `json:"departure_date"`
	ReturnDate       string `json:"return_date"`
	DepartureTime    string `json:"departure_time"`
	ConfirmationCode string `json:"confirmation_code"`
	TravelerName     string `json:"traveler_name"`
	Origin           string `json:"origin"`
	Destination      string `json:"destination"`
}

// ActivityHint is an advisory recurring-activity candidate: a matched keyword
// paired positionally with the nearest day-of-week and time-range tokens.
type ActivityHint struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	Day       string `json:"day"`
	TimeRange string `json:"time_range"`
}
