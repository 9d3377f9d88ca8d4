package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/dto"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
	appErrors "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/errors"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/response"
)

type teacherProfileService interface {
	Get(ctx context.Context, teacherID string) (*models.TeacherProfile, error)
	Save(ctx context.Context, actor models.Actor, req dto.SaveTeacherProfileRequest) (*models.TeacherProfile, error)
	Search(ctx context.Context, query dto.TeacherSearchQuery) ([]models.TeacherProfile, error)
}

// TeacherProfileHandler exposes the tutor directory.
type TeacherProfileHandler struct {
	service teacherProfileService
}

// NewTeacherProfileHandler constructs the handler.
func NewTeacherProfileHandler(service teacherProfileService) *TeacherProfileHandler {
	return &TeacherProfileHandler{service: service}
}

// Search godoc
// @Summary Search tutors
// @Description Lists tutors teaching a subject in a neighborhood, optionally filtered by level and maximum hourly rate.
// @Tags Teachers
// @Produce json
// @Param subject_id query int false "Subject ID"
// @Param neighborhood_id query int false "Neighborhood ID"
// @Param level query string false "college or lycee"
// @Param max_rate query int false "Maximum hourly rate"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /teachers [get]
func (h *TeacherProfileHandler) Search(c *gin.Context) {
	var query dto.TeacherSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid search filters"))
		return
	}
	profiles, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, profiles, map[string]interface{}{"count": len(profiles)})
}

// Get godoc
// @Summary Get a tutor's profile
// @Tags Teachers
// @Produce json
// @Param id path string true "Tutor ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teachers/{id} [get]
func (h *TeacherProfileHandler) Get(c *gin.Context) {
	profile, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, profile)
}

// Save godoc
// @Summary Create or replace my tutor profile
// @Tags Teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SaveTeacherProfileRequest true "Profile"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /teacher-profile [put]
func (h *TeacherProfileHandler) Save(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.SaveTeacherProfileRequest
	if !bindJSON(c, &req, "invalid profile payload") {
		return
	}
	profile, err := h.service.Save(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, profile)
}
