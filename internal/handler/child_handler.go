package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/dto"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/response"
)

type childService interface {
	List(ctx context.Context, actor models.Actor) ([]models.Child, error)
	Create(ctx context.Context, actor models.Actor, req dto.ChildRequest) (*models.Child, error)
	Update(ctx context.Context, actor models.Actor, id string, req dto.ChildRequest) (*models.Child, error)
	Delete(ctx context.Context, actor models.Actor, id string) error
}

// ChildHandler lets parents manage their children.
type ChildHandler struct {
	service childService
}

// NewChildHandler constructs the handler.
func NewChildHandler(service childService) *ChildHandler {
	return &ChildHandler{service: service}
}

// List godoc
// @Summary List my children
// @Tags Children
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /children [get]
func (h *ChildHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	children, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, children)
}

// Create godoc
// @Summary Add a child
// @Tags Children
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ChildRequest true "Child"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /children [post]
func (h *ChildHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.ChildRequest
	if !bindJSON(c, &req, "invalid child payload") {
		return
	}
	child, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, child)
}

// Update godoc
// @Summary Update a child
// @Tags Children
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Child ID"
// @Param payload body dto.ChildRequest true "Child"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /children/{id} [patch]
func (h *ChildHandler) Update(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.ChildRequest
	if !bindJSON(c, &req, "invalid child payload") {
		return
	}
	child, err := h.service.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, child)
}

// Delete godoc
// @Summary Remove a child
// @Tags Children
// @Security BearerAuth
// @Param id path string true "Child ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /children/{id} [delete]
func (h *ChildHandler) Delete(c *gin.Context) {
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
