package textparse

import (
	"reflect"
	"testing"
)

func TestExtractFlightsSingle(t *testing.T) {
	text := "AA 1234 on 03/15/2025, Passenger: John Smith, Confirmation: ABC123"

	flights := ExtractFlights(text)
	if len(flights) != 1 {
		t.Fatalf("got %d flights, want 1", len(flights))
	}

	f := flights[0]
	if f.AirlineCode != "AA" {
		t.Errorf("AirlineCode = %q, want %q", f.AirlineCode, "AA")
	}
	if f.Airline != "American Airlines" {
		t.Errorf("Airline = %q, want %q", f.Airline, "American Airlines")
	}
	if f.FlightNumber != "AA1234" {
		t.Errorf("FlightNumber = %q, want %q", f.FlightNumber, "AA1234")
	}
	if f.DepartureDate != "2025-03-15" {
		t.Errorf("DepartureDate = %q, want %q", f.DepartureDate, "2025-03-15")
	}
	if f.ReturnDate != "" {
		t.Errorf("ReturnDate = %q, want empty", f.ReturnDate)
	}
	if f.ConfirmationCode != "ABC123" {
		t.Errorf("ConfirmationCode = %q, want %q", f.ConfirmationCode, "ABC123")
	}
	if f.TravelerName != "John Smith" {
		t.Errorf("TravelerName = %q, want %q", f.TravelerName, "John Smith")
	}
}

func TestExtractFlightsRoundTrip(t *testing.T) {
	text := `Outbound: DL 456 departing 06/01/2025 at 9:30 AM
Return: DL 457 on 06/08/2025 at 5:15 PM
Record Locator: XYZ789`

	flights := ExtractFlights(text)
	if len(flights) != 2 {
		t.Fatalf("got %d flights, want 2", len(flights))
	}

	if flights[0].DepartureDate != "2025-06-01" {
		t.Errorf("flight 0 DepartureDate = %q, want 2025-06-01", flights[0].DepartureDate)
	}
	if flights[0].ReturnDate != "2025-06-08" {
		t.Errorf("flight 0 ReturnDate = %q, want 2025-06-08", flights[0].ReturnDate)
	}
	if flights[0].DepartureTime != "9:30 AM" {
		t.Errorf("flight 0 DepartureTime = %q, want 9:30 AM", flights[0].DepartureTime)
	}

	// The first confirmation code is broadcast to every flight.
	for i, f := range flights {
		if f.ConfirmationCode != "XYZ789" {
			t.Errorf("flight %d ConfirmationCode = %q, want XYZ789", i, f.ConfirmationCode)
		}
	}
}

func TestExtractFlightsLiteralFlightToken(t *testing.T) {
	flights := ExtractFlights("Flight 88 departs 01/02/2026")
	if len(flights) != 1 {
		t.Fatalf("got %d flights, want 1", len(flights))
	}
	if flights[0].FlightNumber != "UNKNOWN88" {
		t.Errorf("FlightNumber = %q, want UNKNOWN88", flights[0].FlightNumber)
	}
}

func TestExtractFlightsNoFlightNumber(t *testing.T) {
	// Dates and names without a flight number must not produce candidates.
	flights := ExtractFlights("Passenger: Jane Doe traveling 03/15/2025")
	if len(flights) != 0 {
		t.Errorf("got %d flights, want 0", len(flights))
	}
}

func TestExtractFlightsGarbage(t *testing.T) {
	inputs := []string{
		"",
		"%%%###!!!",
		"\x00\x01\x02",
		"aa dl ua with no numbers",
	}
	for _, in := range inputs {
		if got := ExtractFlights(in); len(got) != 0 {
			t.Errorf("ExtractFlights(%q) = %v, want empty", in, got)
		}
	}
}

func TestExtractFlightsDeterministic(t *testing.T) {
	text := `UA 99 on 04/01/2025 returning 04/05/2025, Traveler: Ada Lovelace
Confirmation: QWERTY1, tennis Monday 4:00 PM - 5:00 PM`

	first := ExtractFlights(text)
	for i := 0; i < 10; i++ {
		if got := ExtractFlights(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
}
