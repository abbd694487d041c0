package textparse

// ExtractActivities scans free text for activity keywords and pairs each
// occurrence positionally with the day-of-week and time-range tokens found in
// the text. Pairing is by index within each category, not by proximity, so
// output is advisory only.
func ExtractActivities(text string) []ActivityHint {
	hints := []ActivityHint{}

	days := dayOfWeekPattern.FindAllString(text, -1)
	timeRanges := timeRangePattern.FindAllString(text, -1)

	for _, kw := range activityKeywords {
		for i, match := range kw.pattern.FindAllString(text, -1) {
			hint := ActivityHint{
				Type: kw.category,
				Name: match,
			}
			if i < len(days) {
				hint.Day = days[i]
			}
			if i < len(timeRanges) {
				hint.TimeRange = timeRanges[i]
			}
			hints = append(hints, hint)
		}
	}

	return hints
}
