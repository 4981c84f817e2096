package config

import "time"

const (
	// Tracking IDs
	TrackingIDPrefix   = "TRK"
	TrackingIDMin      = 100000
	TrackingIDSpan     = 900000
	TrackingIDAttempts = 10

	// Sessions
	SessionTTL = 72 * time.Hour

	// Status change confirmation shown by clients before auto-dismiss
	StatusConfirmationTTL = 5 * time.Second

	// Complaint statuses
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
	StatusRejected   = "rejected"

	// Roles
	RoleStudent = "student"
	RoleAdmin   = "admin"

	// Redis
	SessionKeyPrefix = "session:"
	EventChannel     = "complaints:events"
)

// Statuses lists every valid complaint status. Order matters for dashboards.
var Statuses = []string{StatusPending, StatusInProgress, StatusResolved, StatusRejected}

// Categories lists every valid complaint category.
var Categories = []string{
	"academics",
	"faculty",
	"infrastructure",
	"hostel",
	"canteen",
	"transport",
	"other",
}

// IsValidStatus reports whether s is one of the four complaint statuses.
func IsValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsValidCategory reports whether c is a known complaint category.
func IsValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}
