package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/dto"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/scheduling"
	appErrors "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/errors"
)

type availabilityRepository interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.AvailabilityRule, error)
	Create(ctx context.Context, rule *models.AvailabilityRule) error
	Delete(ctx context.Context, id, teacherID string) error
}

// AvailabilityService manages tutors' weekly rules and answers coverage
// questions against them.
type AvailabilityService struct {
	repo      availabilityRepository
	validator *validator.Validate
	location  *time.Location
	logger    *zap.Logger
}

// NewAvailabilityService constructs the service. Coverage is evaluated in loc.
func NewAvailabilityService(repo availabilityRepository, validate *validator.Validate, loc *time.Location, logger *zap.Logger) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{repo: repo, validator: validate, location: loc, logger: logger}
}

// Location returns the zone rules are expressed in.
func (s *AvailabilityService) Location() *time.Location {
	return s.location
}

// List returns a tutor's rules.
func (s *AvailabilityService) List(ctx context.Context, teacherID string) ([]models.AvailabilityRule, error) {
	rules, err := s.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, storeFailure(err, "failed to list availability")
	}
	if rules == nil {
		rules = []models.AvailabilityRule{}
	}
	return rules, nil
}

// Create adds a rule for the calling tutor.
func (s *AvailabilityService) Create(ctx context.Context, actor models.Actor, req dto.CreateAvailabilityRequest) (*models.AvailabilityRule, error) {
	if actor.Role != models.RoleTeacher {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only tutors declare availability")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailure(err, "invalid availability payload")
	}

	start, err := scheduling.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, validationFailure(err, "start_time must be HH:MM")
	}
	end, err := scheduling.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, validationFailure(err, "end_time must be HH:MM")
	}
	if start >= end {
		return nil, appErrors.Clone(appErrors.ErrInvalidInterval, "end_time must be after start_time")
	}

	// Postgres TIME accepts 24:00:00, so a window may run to midnight.
	rule := &models.AvailabilityRule{
		TeacherID: actor.ID,
		Weekday:   *req.Weekday,
		StartTime: start.String(),
		EndTime:   end.String(),
	}
	if err := s.repo.Create(ctx, rule); err != nil {
		return nil, storeFailure(err, "failed to create availability")
	}
	s.logger.Info("availability added",
		zap.String("teacher_id", actor.ID),
		zap.Int("weekday", rule.Weekday),
		zap.String("start", rule.StartTime),
		zap.String("end", rule.EndTime),
	)
	return rule, nil
}

// Delete removes one of the calling tutor's rules.
func (s *AvailabilityService) Delete(ctx context.Context, actor models.Actor, id string) error {
	if actor.Role != models.RoleTeacher {
		return appErrors.Clone(appErrors.ErrForbidden, "only tutors manage availability")
	}
	if err := s.repo.Delete(ctx, id, actor.ID); err != nil {
		return lookupFailure(err, "availability")
	}
	s.logger.Info("availability removed", zap.String("teacher_id", actor.ID), zap.String("availability_id", id))
	return nil
}

// Windows loads and parses a tutor's rules, skipping rows that do not parse.
func (s *AvailabilityService) Windows(ctx context.Context, teacherID string) ([]scheduling.Window, error) {
	rules, err := s.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, storeFailure(err, "failed to load availability")
	}
	windows, skipped := scheduling.ParseWindows(rules)
	if skipped > 0 {
		s.logger.Warn("skipped malformed availability rules", zap.String("teacher_id", teacherID), zap.Int("count", skipped))
	}
	return windows, nil
}

// CheckCoverage reports whether the tutor's rules cover interval.
func (s *AvailabilityService) CheckCoverage(ctx context.Context, teacherID string, interval scheduling.Interval) (bool, error) {
	windows, err := s.Windows(ctx, teacherID)
	if err != nil {
		return false, err
	}
	return scheduling.CoversInterval(windows, interval, s.location), nil
}
