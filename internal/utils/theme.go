package utils

// Theme is the display badge for an incident type.
type Theme struct {
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

var incidentThemes = map[string]Theme{
	"Larceny":               {"💰", "yellow"},
	"Theft":                 {"💰", "yellow"},
	"Fraud":                 {"💳", "yellow"},
	"Lost or Stolen":        {"🔎", "purple"},
	"Accident/Property":     {"💥", "orange"},
	"Vehicle Accident":      {"🚗", "orange"},
	"Hit and Run":           {"🚙", "orange"},
	"Hit and Run/Property":  {"💥", "orange"},
	"Disabled Vehicle":      {"🚘", "orange"},
	"Vehicle Lockout":       {"🔑", "orange"},
	"Traffic Stop":          {"🛑", "orange"},
	"Crash":                 {"💥", "orange"},
	"Parking Violation":     {"🅿️", "orange"},
	"Illegal Parking":       {"🚫", "orange"},
	"Suspicious Person":     {"👤", "blue"},
	"Suspicious Vehicle":    {"🚗", "blue"},
	"Investigate":           {"🔍", "blue"},
	"Follow Up":             {"📝", "blue"},
	"BOLO":                  {"👁️", "blue"},
	"Loitering":             {"🚷", "blue"},
	"Loitering/Trespassing": {"⛔", "blue"},
	"Damage to Property":    {"🏚️", "red"},
	"Vandalism":             {"🏚️", "red"},
	"Welfare Check":         {"🏥", "green"},
	"Injured/Ill Subject":   {"🤕", "green"},
	"Injured Subject":       {"🤕", "green"},
	"Assault":               {"👊", "red"},
	"Burglary":              {"🏠", "red"},
	"Robbery":               {"💰", "red"},
	"Stolen Vehicle":        {"🚗", "red"},
	"Drug Related":          {"💊", "purple"},
	"Missing Person":        {"❓", "purple"},
	"Noise Complaint":       {"📢", "blue"},
	"Escort":                {"🚶", "green"},
	"Assist Other Agency":   {"🤝", "green"},
	"Elevator Entrapment":   {"🛗", "green"},
	"Fire Alarm":            {"🔥", "red"},
	"Indecent Exposure":     {"🚨", "red"},
}

var defaultTheme = Theme{"🚨", "gray"}

// ThemeFor returns the badge for an incident type, falling back to the
// generic siren badge for types the table does not know.
func ThemeFor(incidentType string) Theme {
	if t, ok := incidentThemes[incidentType]; ok {
		return t
	}
	return defaultTheme
}
