package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/dto"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/scheduling"
	appErrors "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/errors"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/response"
)

type availabilityService interface {
	Location() *time.Location
	List(ctx context.Context, teacherID string) ([]models.AvailabilityRule, error)
	Create(ctx context.Context, actor models.Actor, req dto.CreateAvailabilityRequest) (*models.AvailabilityRule, error)
	Delete(ctx context.Context, actor models.Actor, id string) error
	CheckCoverage(ctx context.Context, teacherID string, interval scheduling.Interval) (bool, error)
}

type overlapFinder interface {
	FindOverlapping(ctx context.Context, q dto.OverlapQuery) ([]models.BookingRef, error)
}

// AvailabilityHandler exposes tutors' weekly availability.
type AvailabilityHandler struct {
	service  availabilityService
	bookings overlapFinder
}

// NewAvailabilityHandler constructs the handler.
func NewAvailabilityHandler(service availabilityService, bookings overlapFinder) *AvailabilityHandler {
	return &AvailabilityHandler{service: service, bookings: bookings}
}

// List godoc
// @Summary List a tutor's availability
// @Tags Availability
// @Produce json
// @Param id path string true "Tutor ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/availability [get]
func (h *AvailabilityHandler) List(c *gin.Context) {
	rules, err := h.service.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rules, map[string]interface{}{"timezone": h.service.Location().String()})
}

// Check godoc
// @Summary Check a slot against a tutor's availability
// @Description Reports whether the slot falls inside the tutor's weekly rules and how many active bookings it overlaps
// @Tags Availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tutor ID"
// @Param starts_at query string true "Start (RFC3339)"
// @Param ends_at query string true "End (RFC3339)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /teachers/{id}/availability/check [get]
func (h *AvailabilityHandler) Check(c *gin.Context) {
	var query dto.CoverageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	interval, err := scheduling.ParseInterval(query.StartsAt, query.EndsAt)
	if err != nil {
		response.Error(c, err)
		return
	}

	teacherID := c.Param("id")
	ctx := c.Request.Context()
	covered, err := h.service.CheckCoverage(ctx, teacherID, interval)
	if err != nil {
		response.Error(c, err)
		return
	}
	conflicts, err := h.bookings.FindOverlapping(ctx, dto.OverlapQuery{TeacherID: teacherID, StartsAt: interval.Start, EndsAt: interval.End})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.CoverageResponse{
		TeacherID: teacherID,
		StartsAt:  interval.Start,
		EndsAt:    interval.End,
		Covered:   covered,
		Conflicts: len(conflicts),
		Available: covered && len(conflicts) == 0,
		Timezone:  h.service.Location().String(),
	})
}

// Create godoc
// @Summary Declare a weekly availability window
// @Tags Availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateAvailabilityRequest true "Window"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /availability [post]
func (h *AvailabilityHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateAvailabilityRequest
	if !bindJSON(c, &req, "invalid availability payload") {
		return
	}

	rule, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rule)
}

// Delete godoc
// @Summary Remove an availability window
// @Tags Availability
// @Security BearerAuth
// @Param id path string true "Availability ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /availability/{id} [delete]
func (h *AvailabilityHandler) Delete(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
