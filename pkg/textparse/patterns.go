// Package textparse provides the shared regex patterns and extractors used to
// pull flight itineraries, activity schedules, and dates out of unstructured
// text (pasted emails, PDF text, OCR output).
package textparse

import (
	"regexp"
	"strings"
)

// airlineCodes is the fixed vocabulary of two-letter carrier codes recognized
// in flight numbers.
var airlineCodes = []string{
	"AA", "DL", "UA", "WN", "B6", "AS", "NK", "F9", "G4", "SY", "BA", "AF", "LH",
}

// airlineNames maps carrier codes to display names. Unknown codes pass
// through unchanged.
var airlineNames = map[string]string{
	"AA": "American Airlines",
	"DL": "Delta Air Lines",
	"UA": "United Airlines",
	"WN": "Southwest Airlines",
	"B6": "JetBlue",
	"AS": "Alaska Airlines",
	"NK": "Spirit Airlines",
	"F9": "Frontier Airlines",
	"G4": "Allegiant Air",
	"SY": "Sun Country Airlines",
	"BA": "British Airways",
	"AF": "Air France",
	"LH": "Lufthansa",
}

// Core patterns shared by the extractors.
var (
	// flightNumberPattern matches "AA 1234", "DL1234", or the literal "Flight 1234".
	flightNumberPattern = regexp.MustCompile(
		`(?i)\b(` + strings.Join(airlineCodes, "|") + `)\s*(\d{1,4})\b|(?i)\bFLIGHT\s*(\d{1,4})\b`)

	// Three alternative date grammars, applied in this order.
	dateNumericPattern  = regexp.MustCompile(`(\d{1,2})[/\-](\d{1,2})[/\-](\d{2,4})`)                // 3/15/2025, 03-15-25
	dateWrittenPattern  = regexp.MustCompile(`(?i)\b([A-Za-z]+)\s+(\d{1,2}),?\s*(\d{4})\b`)          // January 15, 2024
	dateEuropeanPattern = regexp.MustCompile(`(?i)\b(\d{1,2})\s+([A-Za-z]+)\s+(\d{4})\b`)            // 15 January 2024

	// timePattern matches H:MM with optional meridiem.
	timePattern = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*(AM|PM)?\b`)

	// timeRangePattern matches "4:00 PM - 5:30 PM", "4:00-5:30", "4:00 to 5:30".
	timeRangePattern = regexp.MustCompile(
		`(?i)(\d{1,2}):(\d{2})\s*(AM|PM)?\s*(?:-|to|\x{2013})\s*(\d{1,2}):(\d{2})\s*(AM|PM)?`)

	// confirmationPattern matches a 5-8 char locator near a booking keyword.
	confirmationPattern = regexp.MustCompile(
		`(?i)(?:Confirmation|PNR|Booking|Record Locator)[:\s]*([A-Z0-9]{5,8})`)

	// Name patterns: labeled names and honorifics, applied in this order.
	nameLabeledPattern   = regexp.MustCompile(`(?i)(?:Passenger|Traveler|Name)[:\s]*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)
	nameHonorificPattern = regexp.MustCompile(`(?i)(?:Mr\.|Mrs\.|Ms\.)\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)

	// cityPattern matches a city or airport token following a travel preposition.
	cityPattern = regexp.MustCompile(
		`(?i)(?:from|to|departing|arriving|depart|arrive)[:\s]*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?(?:,\s*[A-Z]{2})?|\b[A-Z]{3}\b)`)

	dayOfWeekPattern = regexp.MustCompile(`(?i)\b(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)\b`)
)

// activityKeyword binds a keyword pattern to its activity category. Held in a
// slice so extraction order is deterministic.
type activityKeyword struct {
	category string
	pattern  *regexp.Regexp
}

var activityKeywords = []activityKeyword{
	{"climbing", regexp.MustCompile(`(?i)climbing|rock\s*climbing|bouldering`)},
	{"tennis", regexp.MustCompile(`(?i)tennis|tennis\s*lesson`)},
	{"basketball", regexp.MustCompile(`(?i)basketball|hoops|b-ball`)},
	{"soccer", regexp.MustCompile(`(?i)soccer|football`)},
	{"swimming", regexp.MustCompile(`(?i)swimming|swim\s*class`)},
	{"music", regexp.MustCompile(`(?i)music|piano|guitar|violin|lesson`)},
	{"dance", regexp.MustCompile(`(?i)dance|ballet|hip\s*hop`)},
	{"art", regexp.MustCompile(`(?i)\bart\b|painting|drawing`)},
	{"tutoring", regexp.MustCompile(`(?i)tutoring|tutor`)},
}

// AirlineName resolves a carrier code to its display name. Codes outside the
// lookup table are returned unchanged.
func AirlineName(code string) string {
	if name, ok := airlineNames[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}
