package models

import "testing"

func TestStatusNormalization(t *testing.T) {
	tests := []struct {
		input     string
		cancelled bool
		done      bool
		open      bool
		canonical string
	}{
		{"open", false, false, true, "open"},
		{"offen", false, false, true, "open"},
		{"done", false, true, false, "done"},
		{"erledigt", false, true, false, "done"},
		{"Erledigt", false, true, false, "done"},
		{"cancelled", true, false, false, "cancelled"},
		{"canceled", true, false, false, "cancelled"},
		{"storniert", true, false, false, "cancelled"},
		{"STORNIERT", true, false, false, "cancelled"},
		{"  done  ", false, true, false, "done"},
		{"weird", false, false, false, "weird"},
	}

	for _, tt := range tests {
		if got := IsCancelledStatus(tt.input); got != tt.cancelled {
			t.Errorf("IsCancelledStatus(%q) = %v, want %v", tt.input, got, tt.cancelled)
		}
		if got := IsDoneStatus(tt.input); got != tt.done {
			t.Errorf("IsDoneStatus(%q) = %v, want %v", tt.input, got, tt.done)
		}
		if got := IsOpenStatus(tt.input); got != tt.open {
			t.Errorf("IsOpenStatus(%q) = %v, want %v", tt.input, got, tt.open)
		}
		if got := CanonicalStatus(tt.input); got != tt.canonical {
			t.Errorf("CanonicalStatus(%q) = %q, want %q", tt.input, got, tt.canonical)
		}
	}
}
