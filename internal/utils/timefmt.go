package utils

import "time"

// FormatReportedDate renders a stored date string for display. The ingestion
// job writes RFC 3339, but old rows carry other shapes; anything unparseable
// comes back as "Unknown time" instead of erroring.
func FormatReportedDate(raw string) string {
	if raw == "" {
		return "Unknown time"
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
		"1/2/2006 3:04 PM",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2, 2006 3:04 PM")
		}
	}
	return "Unknown time"
}
