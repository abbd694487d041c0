package textparse

import "strings"

// ExtractFlights scans free text for flight itineraries and returns zero or
// more candidate flights. When no flight-number pattern is present the result
// is empty even if dates or names appear elsewhere in the text.
//
// Association is positional: the i-th flight number is paired with the 2i-th
// and 2i+1-th date occurrences as departure/return and the 2i-th time as the
// departure time. The first confirmation code and first passenger name found
// are applied to every flight. This assumes itinerary order and is a best
// guess; callers must surface results for review rather than trust them.
func ExtractFlights(text string) []Flight {
	flights := []Flight{}

	numberMatches := flightNumberPattern.FindAllStringSubmatch(text, -1)
	if len(numberMatches) == 0 {
		return flights
	}

	dates := collectDateMatches(text)
	times := timePattern.FindAllString(text, -1)
	cities := cityPattern.FindAllStringSubmatch(text, -1)

	confirmation := ""
	if m := confirmationPattern.FindStringSubmatch(text); m != nil {
		confirmation = m[1]
	}

	traveler := ""
	if m := nameLabeledPattern.FindStringSubmatch(text); m != nil {
		traveler = m[1]
	} else if m := nameHonorificPattern.FindStringSubmatch(text); m != nil {
		traveler = m[1]
	}

	origin, destination := "", ""
	if len(cities) > 0 {
		origin = cities[0][1]
	}
	if len(cities) > 1 {
		destination = cities[1][1]
	}

	for i, m := range numberMatches {
		code, number := m[1], m[2]
		if code == "" {
			// Matched the literal "Flight N" form.
			code = "Unknown"
			number = m[3]
		}
		upperCode := strings.ToUpper(code)

		flight := Flight{
			Airline:          AirlineName(code),
			AirlineCode:      upperCode,
			FlightNumber:     upperCode + number,
			ConfirmationCode: confirmation,
			TravelerName:     traveler,
			Origin:           origin,
			Destination:      destination,
		}
		if len(dates) > i*2 {
			flight.DepartureDate = NormalizeDate(dates[i*2])
		}
		if len(dates) > i*2+1 {
			flight.ReturnDate = NormalizeDate(dates[i*2+1])
		}
		if len(times) > i*2 {
			flight.DepartureTime = times[i*2]
		}

		flights = append(flights, flight)
	}

	return flights
}
