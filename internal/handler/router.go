package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/middleware"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
)

type tokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// Handlers groups every HTTP handler mounted by RegisterRoutes.
type Handlers struct {
	Auth         *AuthHandler
	Availability *AvailabilityHandler
	Bookings     *BookingHandler
	Reviews      *ReviewHandler
	Messages     *MessageHandler
	Reference    *ReferenceHandler
	Profiles     *TeacherProfileHandler
	Children     *ChildHandler
	Events       *EventHandler
	Metrics      *MetricsHandler
}

// RegisterRoutes mounts the API under prefix and the operational endpoints
// at the root.
func RegisterRoutes(router *gin.Engine, prefix string, auth tokenValidator, h Handlers) {
	router.GET("/health", h.Metrics.Health)
	router.GET("/ready", h.Metrics.Ready)
	router.GET("/metrics", h.Metrics.Prometheus)

	api := router.Group(prefix)
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/subjects", h.Reference.Subjects)
	api.GET("/neighborhoods", h.Reference.Neighborhoods)
	api.GET("/teachers", h.Profiles.Search)
	api.GET("/teachers/:id", h.Profiles.Get)
	api.GET("/teachers/:id/availability", h.Availability.List)
	api.GET("/teachers/:id/reviews", h.Reviews.List)
	api.GET("/teachers/:id/rating", h.Reviews.Rating)

	api.GET("/events", middleware.StreamJWT(auth), h.Events.Stream)

	secured := api.Group("", middleware.JWT(auth))
	secured.GET("/auth/me", h.Auth.Me)
	secured.GET("/teachers/:id/availability/check", h.Availability.Check)

	secured.PUT("/teacher-profile", middleware.RequireRoles(models.RoleTeacher), h.Profiles.Save)
	secured.POST("/availability", middleware.RequireRoles(models.RoleTeacher), h.Availability.Create)
	secured.DELETE("/availability/:id", middleware.RequireRoles(models.RoleTeacher), h.Availability.Delete)

	parents := secured.Group("", middleware.RequireRoles(models.RoleParent))
	parents.GET("/children", h.Children.List)
	parents.POST("/children", h.Children.Create)
	parents.PATCH("/children/:id", h.Children.Update)
	parents.DELETE("/children/:id", h.Children.Delete)

	secured.POST("/bookings", middleware.RequireRoles(models.RoleParent), h.Bookings.Create)
	secured.GET("/bookings", h.Bookings.List)
	secured.GET("/bookings/export", h.Bookings.Export)
	secured.GET("/bookings/:id", h.Bookings.Get)
	secured.PATCH("/bookings/:id/status", h.Bookings.UpdateStatus)
	secured.POST("/bookings/:id/subjects", h.Bookings.AttachSubjects)
	secured.GET("/bookings/:id/messages", h.Messages.List)
	secured.POST("/bookings/:id/messages", h.Messages.Send)
	secured.POST("/bookings/:id/review", middleware.RequireRoles(models.RoleParent), h.Reviews.Create)
}
