package entity

// Holiday is a federal holiday fetched from the public holidays API.
type Holiday struct {
	ID           uint   `json:"id"`
	Date         string `json:"date"`
	Name         string `json:"name"`
	Year         int    `json:"year"`
	ObservedDate string `json:"observed_date"`
}
