package service

import (
	"context"
	"math"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/dto"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/repository"
	appErrors "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/errors"
)

type reviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ExistsForBooking(ctx context.Context, parentID, bookingID string) (bool, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Review, error)
	Summary(ctx context.Context, teacherID string) (*models.RatingSummary, error)
}

type bookingFinder interface {
	FindByID(ctx context.Context, id string) (*models.Booking, error)
}

// ReviewService lets parents rate tutors after a completed lesson.
type ReviewService struct {
	repo      reviewRepository
	bookings  bookingFinder
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReviewService constructs the service. cache may be nil.
func NewReviewService(repo reviewRepository, bookings bookingFinder, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ReviewService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewService{repo: repo, bookings: bookings, cache: cache, validator: validate, logger: logger}
}

// Create records the calling parent's review of one of their completed bookings.
func (s *ReviewService) Create(ctx context.Context, actor models.Actor, bookingID string, req dto.CreateReviewRequest) (*models.Review, error) {
	if actor.Role != models.RoleParent {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only parents can leave reviews")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailure(err, "invalid review payload")
	}

	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, lookupFailure(err, "booking")
	}
	if booking.ParentID != actor.ID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "not your booking")
	}
	if booking.Status != models.BookingCompleted {
		return nil, appErrors.Clone(appErrors.ErrReviewNotAllowed, "")
	}

	exists, err := s.repo.ExistsForBooking(ctx, actor.ID, booking.ID)
	if err != nil {
		return nil, storeFailure(err, "failed to check existing review")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrAlreadyReviewed, "")
	}

	review := &models.Review{
		BookingID: booking.ID,
		ParentID:  actor.ID,
		TeacherID: booking.TeacherID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrAlreadyReviewed, "")
		}
		return nil, storeFailure(err, "failed to save review")
	}

	s.cache.Invalidate(ctx, ratingCacheKey(booking.TeacherID))
	s.logger.Info("review created", zap.String("booking_id", booking.ID), zap.String("teacher_id", booking.TeacherID), zap.Int("rating", req.Rating))
	return review, nil
}

// ListByTeacher returns a tutor's reviews.
func (s *ReviewService) ListByTeacher(ctx context.Context, teacherID string) ([]models.Review, error) {
	reviews, err := s.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, storeFailure(err, "failed to list reviews")
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

// Rating returns the tutor's average rounded to one decimal.
func (s *ReviewService) Rating(ctx context.Context, teacherID string) (*models.RatingSummary, error) {
	key := ratingCacheKey(teacherID)
	var cached models.RatingSummary
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	summary, err := s.repo.Summary(ctx, teacherID)
	if err != nil {
		return nil, storeFailure(err, "failed to compute rating")
	}
	summary.Average = math.Round(summary.Average*10) / 10

	s.cache.Set(ctx, key, summary, 0)
	return summary, nil
}
