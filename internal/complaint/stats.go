package complaint

import (
	"campusvoice/backend/internal/config"
	"campusvoice/backend/internal/models"
)

// ComputeStats derives aggregate counts from the complaint collection. The
// four status buckets are exhaustive and exclusive, so they always sum to
// Total. Counts are recomputed from scratch on every call.
func ComputeStats(complaints []models.Complaint) models.ComplaintStats {
	stats := models.ComplaintStats{
		Total:      len(complaints),
		ByCategory: make(map[string]int),
	}

	for i := range complaints {
		switch complaints[i].Status {
		case config.StatusPending:
			stats.Pending++
		case config.StatusInProgress:
			stats.InProgress++
		case config.StatusResolved:
			stats.Resolved++
		case config.StatusRejected:
			stats.Rejected++
		}
		stats.ByCategory[complaints[i].Category]++
	}

	return stats
}
