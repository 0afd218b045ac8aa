package utils

import "testing"

func TestValidateMonthYear(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2024-01", true},
		{"2024-12", true},
		{"1999-06", true},
		{"2024-00", false},
		{"2024-13", false},
		{"2024-1", false},
		{"24-01", false},
		{"2024/01", false},
		{"202401", false},
		{"", false},
		{"2024-01-15", false},
	}

	for _, tt := range tests {
		if got := ValidateMonthYear(tt.input); got != tt.want {
			t.Errorf("ValidateMonthYear(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"+436601234567", true},
		{"+43 660 1234567", true},
		{"0660-1234567", false}, // leading zero
		{"+1 (555) 123-4567", true},
		{"12345", true},
		{"abc", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidatePhone(tt.input); got != tt.want {
			t.Errorf("ValidatePhone(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
