package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/response"
)

type referenceService interface {
	Subjects(ctx context.Context) ([]models.Subject, error)
	Neighborhoods(ctx context.Context) ([]models.Neighborhood, error)
}

// ReferenceHandler serves static lookup lists.
type ReferenceHandler struct {
	service referenceService
}

// NewReferenceHandler constructs the handler.
func NewReferenceHandler(service referenceService) *ReferenceHandler {
	return &ReferenceHandler{service: service}
}

// Subjects godoc
// @Summary List subjects
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *ReferenceHandler) Subjects(c *gin.Context) {
	subjects, err := h.service.Subjects(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subjects)
}

// Neighborhoods godoc
// @Summary List neighborhoods
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /neighborhoods [get]
func (h *ReferenceHandler) Neighborhoods(c *gin.Context) {
	neighborhoods, err := h.service.Neighborhoods(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, neighborhoods)
}
