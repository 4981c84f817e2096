package handler

import (
	"errors"
	"net/http"

	"campusvoice/backend/internal/complaint"
	"campusvoice/backend/internal/livefeed"
	"campusvoice/backend/internal/logger"
	"campusvoice/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler carries the dependencies shared by all HTTP endpoints.
type Handler struct {
	Complaints *complaint.Service
	Storage    storage.Storage
	Hub        *livefeed.Hub
	Log        *logger.Logger
}

func NewHandler(svc *complaint.Service, s storage.Storage, hub *livefeed.Hub, log *logger.Logger) *Handler {
	return &Handler{
		Complaints: svc,
		Storage:    s,
		Hub:        hub,
		Log:        log,
	}
}

// renderError maps domain errors to HTTP responses. Every failure leaves
// state untouched; the client is expected to correct and resubmit.
func (h *Handler) renderError(c *gin.Context, err error) {
	var (
		vErr  *complaint.ValidationError
		aErr  *complaint.AuthorizationError
		nfErr *complaint.NotFoundError
	)

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
	case errors.As(err, &aErr):
		c.JSON(http.StatusForbidden, gin.H{"error": aErr.Error()})
	case errors.As(err, &nfErr):
		c.JSON(http.StatusNotFound, gin.H{"error": nfErr.Error()})
	default:
		h.Log.WithField("path", c.Request.URL.Path).Errorf("unhandled error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
