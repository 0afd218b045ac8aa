package models

import "strings"

// Canonical job statuses. Older rows may carry German or misspelled
// variants ("storniert", "canceled", "erledigt", "offen"), so all status
// checks go through the normalizers below instead of raw comparison.
const (
	JobStatusOpen      = "open"
	JobStatusDone      = "done"
	JobStatusCancelled = "cancelled"
)

func NormalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func IsCancelledStatus(status string) bool {
	switch NormalizeStatus(status) {
	case "cancelled", "canceled", "storniert":
		return true
	}
	return false
}

func IsDoneStatus(status string) bool {
	switch NormalizeStatus(status) {
	case "done", "erledigt":
		return true
	}
	return false
}

func IsOpenStatus(status string) bool {
	switch NormalizeStatus(status) {
	case "open", "offen":
		return true
	}
	return false
}

// CanonicalStatus maps any known variant to its canonical form. Unknown
// values pass through normalized so they stay visible in the UI.
func CanonicalStatus(status string) string {
	switch {
	case IsCancelledStatus(status):
		return JobStatusCancelled
	case IsDoneStatus(status):
		return JobStatusDone
	case IsOpenStatus(status):
		return JobStatusOpen
	}
	return NormalizeStatus(status)
}
