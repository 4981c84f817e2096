package complaint

import (
	"strings"

	"campusvoice/backend/internal/models"
)

// Filter holds the three independent list predicates. The zero value matches
// everything.
type Filter struct {
	Query    string // case-insensitive substring of title, description or tracking ID
	Category string // exact match, "" means any
	Status   string // exact match, "" means any
}

// Matches reports whether a single complaint satisfies all three predicates.
func (f Filter) Matches(c *models.Complaint) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(c.Title), q) &&
			!strings.Contains(strings.ToLower(c.Description), q) &&
			!strings.Contains(strings.ToLower(c.TrackingID), q) {
			return false
		}
	}

	if f.Category != "" && c.Category != f.Category {
		return false
	}

	if f.Status != "" && c.Status != f.Status {
		return false
	}

	return true
}

// Apply returns the subsequence of complaints matching the filter, preserving
// the order of the input. It never mutates its input and takes no shortcuts:
// the list is walked in full on every call.
func Apply(complaints []models.Complaint, f Filter) []models.Complaint {
	filtered := make([]models.Complaint, 0, len(complaints))
	for i := range complaints {
		if f.Matches(&complaints[i]) {
			filtered = append(filtered, complaints[i])
		}
	}
	return filtered
}
