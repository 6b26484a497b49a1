package utils

import "testing"

func TestFormatReportedDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2025-08-01T14:30:00Z", "Aug 1, 2025 2:30 PM"},
		{"2025-08-01 14:30:00", "Aug 1, 2025 2:30 PM"},
		{"2025-08-01", "Aug 1, 2025 12:00 AM"},
		{"", "Unknown time"},
		{"not a date", "Unknown time"},
		{"13/45/9999", "Unknown time"},
	}

	for _, tt := range tests {
		if got := FormatReportedDate(tt.raw); got != tt.want {
			t.Errorf("FormatReportedDate(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
