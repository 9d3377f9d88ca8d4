package service

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/dto"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/repository"
	appErrors "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/errors"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

type teacherProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.TeacherProfile, error)
	Save(ctx context.Context, profile *models.TeacherProfile, subjectIDs, neighborhoodIDs []int64) error
	Search(ctx context.Context, filter models.TeacherSearchFilter) ([]models.TeacherProfile, error)
}

type referenceLookup interface {
	Subjects(ctx context.Context) ([]models.Subject, error)
	Neighborhoods(ctx context.Context) ([]models.Neighborhood, error)
}

// TeacherProfileService manages tutor listings and the directory search
// parents use to find a tutor.
type TeacherProfileService struct {
	repo      teacherProfileRepository
	reference referenceLookup
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherProfileService constructs the service. cache may be nil.
func NewTeacherProfileService(repo teacherProfileRepository, reference referenceLookup, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *TeacherProfileService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherProfileService{repo: repo, reference: reference, cache: cache, validator: validate, logger: logger}
}

// Get returns a tutor's listing.
func (s *TeacherProfileService) Get(ctx context.Context, teacherID string) (*models.TeacherProfile, error) {
	key := profileCacheKey(teacherID)
	var cached models.TeacherProfile
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}
	profile, err := s.repo.FindByUserID(ctx, teacherID)
	if err != nil {
		return nil, lookupFailure(err, "teacher profile")
	}
	s.cache.Set(ctx, key, profile, 0)
	return profile, nil
}

// Save creates or replaces the calling tutor's listing.
func (s *TeacherProfileService) Save(ctx context.Context, actor models.Actor, req dto.SaveTeacherProfileRequest) (*models.TeacherProfile, error) {
	if actor.Role != models.RoleTeacher {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only tutors have a profile")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailure(err, "invalid profile payload")
	}
	if err := s.checkReferences(ctx, req.SubjectIDs, req.NeighborhoodIDs); err != nil {
		return nil, err
	}

	profile := &models.TeacherProfile{
		UserID:     actor.ID,
		Bio:        req.Bio,
		HourlyRate: req.HourlyRate,
		Levels:     pq.StringArray(req.Levels),
		Address:    req.Address,
	}
	if err := s.repo.Save(ctx, profile, req.SubjectIDs, req.NeighborhoodIDs); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unknown subject or neighborhood")
		}
		return nil, storeFailure(err, "failed to save teacher profile")
	}
	s.cache.Invalidate(ctx, profileCacheKey(actor.ID))
	s.logger.Info("teacher profile saved",
		zap.String("teacher_id", actor.ID),
		zap.Int("subjects", len(req.SubjectIDs)),
		zap.Int("neighborhoods", len(req.NeighborhoodIDs)),
	)

	saved, err := s.repo.FindByUserID(ctx, actor.ID)
	if err != nil {
		return nil, lookupFailure(err, "teacher profile")
	}
	return saved, nil
}

// Search lists tutors matching the query.
func (s *TeacherProfileService) Search(ctx context.Context, query dto.TeacherSearchQuery) ([]models.TeacherProfile, error) {
	filter := models.TeacherSearchFilter{
		SubjectID:      query.SubjectID,
		NeighborhoodID: query.NeighborhoodID,
		MaxRate:        query.MaxRate,
		Limit:          query.Limit,
		Offset:         query.Offset,
	}
	switch models.Level(query.Level) {
	case "":
	case models.LevelCollege, models.LevelLycee:
		filter.Level = models.Level(query.Level)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "level must be college or lycee")
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultSearchLimit
	}
	if filter.Limit > maxSearchLimit {
		filter.Limit = maxSearchLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	profiles, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, storeFailure(err, "failed to search tutors")
	}
	if profiles == nil {
		profiles = []models.TeacherProfile{}
	}
	return profiles, nil
}

func (s *TeacherProfileService) checkReferences(ctx context.Context, subjectIDs, neighborhoodIDs []int64) error {
	if len(subjectIDs) > 0 {
		subjects, err := s.reference.Subjects(ctx)
		if err != nil {
			return err
		}
		known := make(map[int64]struct{}, len(subjects))
		for _, subject := range subjects {
			known[subject.ID] = struct{}{}
		}
		for _, id := range subjectIDs {
			if _, ok := known[id]; !ok {
				return appErrors.Clone(appErrors.ErrValidation, "unknown subject "+strconv.FormatInt(id, 10))
			}
		}
	}
	if len(neighborhoodIDs) > 0 {
		neighborhoods, err := s.reference.Neighborhoods(ctx)
		if err != nil {
			return err
		}
		known := make(map[int64]struct{}, len(neighborhoods))
		for _, neighborhood := range neighborhoods {
			known[neighborhood.ID] = struct{}{}
		}
		for _, id := range neighborhoodIDs {
			if _, ok := known[id]; !ok {
				return appErrors.Clone(appErrors.ErrValidation, "unknown neighborhood "+strconv.FormatInt(id, 10))
			}
		}
	}
	return nil
}
