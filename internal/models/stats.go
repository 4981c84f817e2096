package models

// ComplaintStats holds aggregate counts for the admin dashboard. It is
// derived from the complaint collection on demand and never stored.
type ComplaintStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Rejected   int `json:"rejected"`

	// ByCategory backs the category distribution chart.
	ByCategory map[string]int `json:"byCategory,omitempty"`
}
