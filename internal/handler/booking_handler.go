package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/dto"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/scheduling"
	appErrors "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/errors"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/export"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/response"
)

type bookingService interface {
	Create(ctx context.Context, actor models.Actor, req dto.CreateBookingRequest) (*dto.BookingResult, error)
	List(ctx context.Context, actor models.Actor, status models.BookingStatus) ([]models.Booking, error)
	Get(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, actor models.Actor, id string, to models.BookingStatus) (*models.Booking, error)
	AttachSubjects(ctx context.Context, actor models.Actor, id string, req dto.AttachSubjectsRequest) (*models.Booking, error)
	Export(ctx context.Context, actor models.Actor, format export.Format) (*export.File, error)
}

// BookingHandler exposes booking creation and lifecycle endpoints.
type BookingHandler struct {
	service bookingService
}

// NewBookingHandler constructs the handler.
func NewBookingHandler(service bookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create godoc
// @Summary Request a booking
// @Description Reserves a slot with a tutor. meta.outside_availability flags slots outside the tutor's weekly rules.
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateBookingRequest true "Booking"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateBookingRequest
	if !bindJSON(c, &req, "invalid booking payload") {
		return
	}

	result, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result.Booking, map[string]interface{}{
		"outside_availability": result.OutsideAvailability,
		"subjects_attached":    result.SubjectsAttached,
	})
}

// List godoc
// @Summary List my bookings
// @Tags Bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Envelope
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	bookings, err := h.service.List(c.Request.Context(), actor, models.BookingStatus(c.Query("status")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, bookings, map[string]interface{}{"count": len(bookings)})
}

// Get godoc
// @Summary Get a booking
// @Description meta.allowed_transitions lists the statuses the caller may move the booking to.
// @Tags Bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	booking, err := h.service.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	next := scheduling.NextStatuses(actor, scheduling.ParticipantsOf(booking), booking.Status)
	if next == nil {
		next = []models.BookingStatus{}
	}
	response.OK(c, booking, map[string]interface{}{"allowed_transitions": next})
}

// UpdateStatus godoc
// @Summary Change a booking's status
// @Description Tutors confirm, participants cancel, admins complete.
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param payload body dto.UpdateBookingStatusRequest true "Target status"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.UpdateBookingStatusRequest
	if !bindJSON(c, &req, "invalid status payload") {
		return
	}

	booking, err := h.service.UpdateStatus(c.Request.Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, booking)
}

// AttachSubjects godoc
// @Summary Tag a booking with subjects
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param payload body dto.AttachSubjectsRequest true "Subjects"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /bookings/{id}/subjects [post]
func (h *BookingHandler) AttachSubjects(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.AttachSubjectsRequest
	if !bindJSON(c, &req, "invalid subjects payload") {
		return
	}

	booking, err := h.service.AttachSubjects(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, booking)
}

// Export godoc
// @Summary Download my bookings
// @Tags Bookings
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /bookings/export [get]
func (h *BookingHandler) Export(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}

	file, err := h.service.Export(c.Request.Context(), actor, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Name, file.ContentType, file.Body)
}
