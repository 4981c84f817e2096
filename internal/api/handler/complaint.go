package handler

import (
	"net/http"

	"campusvoice/backend/internal/complaint"
	"campusvoice/backend/internal/config"

	"github.com/gin-gonic/gin"
)

type createComplaintRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	IsAnonymous bool     `json:"isAnonymous"`
	Attachments []string `json:"attachments"`
}

// CreateComplaint handles POST /api/complaints.
func (h *Handler) CreateComplaint(c *gin.Context) {
	var req createComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Complaints.Submit(sessionFromContext(c), complaint.SubmitInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		IsAnonymous: req.IsAnonymous,
		Attachments: req.Attachments,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"complaint": created})
}

// ListComplaints handles GET /api/complaints?q=&category=&status=.
// Admins see every complaint, students only their own; the filter applies on
// top of that scope.
func (h *Handler) ListComplaints(c *gin.Context) {
	f := complaint.Filter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
	}

	complaints, err := h.Complaints.List(sessionFromContext(c), f)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"complaints": complaints, "total": len(complaints)})
}

// GetComplaint handles GET /api/complaints/:id, responses included.
func (h *Handler) GetComplaint(c *gin.Context) {
	found, err := h.Complaints.Get(sessionFromContext(c), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"complaint": found})
}

// TrackComplaint handles GET /api/complaints/track/:trackingId. Public: this
// is the lookup for the tracking ID handed out at submission.
func (h *Handler) TrackComplaint(c *gin.Context) {
	found, err := h.Complaints.Track(c.Param("trackingId"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"complaint": found})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /api/complaints/:id/status. Admin only; any of
// the four statuses may be set from any other.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Complaints.UpdateStatus(sessionFromContext(c), c.Param("id"), req.Status)
	if err != nil {
		h.renderError(c, err)
		return
	}

	// confirmationTtlMs tells the client how long to show the confirmation
	// before auto-dismissing it.
	c.JSON(http.StatusOK, gin.H{
		"complaint":         updated,
		"confirmationTtlMs": config.StatusConfirmationTTL.Milliseconds(),
	})
}

type addResponseRequest struct {
	Message string `json:"message" binding:"required"`
}

// AddResponse handles POST /api/complaints/:id/responses.
func (h *Handler) AddResponse(c *gin.Context) {
	var req addResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.Complaints.AddResponse(sessionFromContext(c), c.Param("id"), req.Message)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"response": resp})
}

// Stats handles GET /api/complaints/stats. Admin only.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.Complaints.Stats(sessionFromContext(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
