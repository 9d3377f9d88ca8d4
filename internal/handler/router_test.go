package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/dto"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
	appErrors "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/errors"
)

type fakeTokens map[string]models.Actor

func (f fakeTokens) ValidateToken(token string) (*models.JWTClaims, error) {
	actor, ok := f[token]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return &models.JWTClaims{UserID: actor.ID, Role: actor.Role}, nil
}

type fakeAuthService struct{}

func (fakeAuthService) Register(context.Context, models.RegisterRequest) (*models.LoginResponse, error) {
	return &models.LoginResponse{AccessToken: "token"}, nil
}

func (fakeAuthService) Login(context.Context, models.LoginRequest) (*models.LoginResponse, error) {
	return &models.LoginResponse{AccessToken: "token"}, nil
}

func (fakeAuthService) Me(_ context.Context, actor models.Actor) (*models.UserInfo, error) {
	return &models.UserInfo{ID: actor.ID, Role: actor.Role}, nil
}

type fakeReferenceService struct{}

func (fakeReferenceService) Subjects(context.Context) ([]models.Subject, error) {
	return []models.Subject{{ID: 1, Name: "Mathématiques"}}, nil
}

func (fakeReferenceService) Neighborhoods(context.Context) ([]models.Neighborhood, error) {
	return []models.Neighborhood{}, nil
}

type fakeReviewService struct{}

func (fakeReviewService) Create(_ context.Context, actor models.Actor, bookingID string, req dto.CreateReviewRequest) (*models.Review, error) {
	return &models.Review{BookingID: bookingID, ParentID: actor.ID, Rating: req.Rating}, nil
}

func (fakeReviewService) ListByTeacher(context.Context, string) ([]models.Review, error) {
	return []models.Review{}, nil
}

func (fakeReviewService) Rating(_ context.Context, teacherID string) (*models.RatingSummary, error) {
	return &models.RatingSummary{TeacherID: teacherID}, nil
}

type fakeMessageService struct{}

func (fakeMessageService) List(context.Context, models.Actor, string) ([]models.Message, error) {
	return []models.Message{}, nil
}

func (fakeMessageService) Send(_ context.Context, actor models.Actor, bookingID string, req dto.SendMessageRequest) (*models.Message, error) {
	return &models.Message{BookingID: bookingID, SenderID: actor.ID, Body: req.Body}, nil
}

func newTestAPI() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	tokens := fakeTokens{
		"parent":  *parentActor,
		"teacher": *teacherActor,
	}
	RegisterRoutes(router, "/api/v1", tokens, Handlers{
		Auth:         NewAuthHandler(fakeAuthService{}),
		Availability: NewAvailabilityHandler(&fakeAvailabilityService{}, fakeOverlapFinder{}),
		Bookings:     NewBookingHandler(&fakeBookingService{createResult: &dto.BookingResult{Booking: &models.Booking{ID: "b-1"}}}),
		Reviews:      NewReviewHandler(fakeReviewService{}),
		Messages:     NewMessageHandler(fakeMessageService{}),
		Reference:    NewReferenceHandler(fakeReferenceService{}),
		Profiles:     NewTeacherProfileHandler(&fakeProfileService{}),
		Children:     NewChildHandler(fakeChildService{}),
		Events:       NewEventHandler(nil, 0, nil),
		Metrics: NewMetricsHandler(nil, map[string]ReadinessCheck{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		}),
	})
	return router
}

func call(router *gin.Engine, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRoutesAccessControl(t *testing.T) {
	router := newTestAPI()
	booking := `{"teacher_id":"11111111-1111-1111-1111-111111111111","starts_at":"2024-06-03T08:00:00Z","ends_at":"2024-06-03T09:00:00Z"}`

	tests := []struct {
		name   string
		method string
		target string
		token  string
		body   string
		want   int
	}{
		{"public subjects", http.MethodGet, "/api/v1/subjects", "", "", http.StatusOK},
		{"public rating", http.MethodGet, "/api/v1/teachers/t-1/rating", "", "", http.StatusOK},
		{"public tutor search", http.MethodGet, "/api/v1/teachers?subject_id=1&neighborhood_id=2", "", "", http.StatusOK},
		{"public tutor profile", http.MethodGet, "/api/v1/teachers/t-1", "", "", http.StatusOK},
		{"parent cannot edit a tutor profile", http.MethodPut, "/api/v1/teacher-profile", "parent", `{"levels":["lycee"]}`, http.StatusForbidden},
		{"tutor edits profile", http.MethodPut, "/api/v1/teacher-profile", "teacher", `{"levels":["lycee"]}`, http.StatusOK},
		{"parent lists children", http.MethodGet, "/api/v1/children", "parent", "", http.StatusOK},
		{"tutor has no children", http.MethodGet, "/api/v1/children", "teacher", "", http.StatusForbidden},
		{"children need token", http.MethodPost, "/api/v1/children", "", `{"full_name":"Inès","level":"college"}`, http.StatusUnauthorized},
		{"public availability", http.MethodGet, "/api/v1/teachers/t-1/availability", "", "", http.StatusOK},
		{"check needs token", http.MethodGet, "/api/v1/teachers/t-1/availability/check", "", "", http.StatusUnauthorized},
		{"me", http.MethodGet, "/api/v1/auth/me", "parent", "", http.StatusOK},
		{"bookings need token", http.MethodGet, "/api/v1/bookings", "", "", http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/api/v1/bookings", "forged", "", http.StatusUnauthorized},
		{"export is not an id", http.MethodGet, "/api/v1/bookings/export", "parent", "", http.StatusOK},
		{"parent books", http.MethodPost, "/api/v1/bookings", "parent", booking, http.StatusCreated},
		{"tutor cannot book", http.MethodPost, "/api/v1/bookings", "teacher", booking, http.StatusForbidden},
		{"parent cannot declare availability", http.MethodPost, "/api/v1/availability", "parent", `{"weekday":1,"start_time":"08:00","end_time":"10:00"}`, http.StatusForbidden},
		{"tutor declares availability", http.MethodPost, "/api/v1/availability", "teacher", `{"weekday":1,"start_time":"08:00","end_time":"10:00"}`, http.StatusCreated},
		{"tutor cannot review", http.MethodPost, "/api/v1/bookings/b-1/review", "teacher", `{"rating":5}`, http.StatusForbidden},
		{"parent reviews", http.MethodPost, "/api/v1/bookings/b-1/review", "parent", `{"rating":5}`, http.StatusCreated},
		{"messages", http.MethodPost, "/api/v1/bookings/b-1/messages", "teacher", `{"body":"ok"}`, http.StatusCreated},
		{"events disabled", http.MethodGet, "/api/v1/events?access_token=parent", "", "", http.StatusServiceUnavailable},
		{"health", http.MethodGet, "/health", "", "", http.StatusOK},
		{"ready reports failing dependency", http.MethodGet, "/ready", "", "", http.StatusServiceUnavailable},
		{"metrics without registry", http.MethodGet, "/metrics", "", "", http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := call(router, tc.method, tc.target, tc.token, tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}
