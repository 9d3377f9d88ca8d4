package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/dto"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
	appErrors "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/errors"
)

type childRepository interface {
	ListByParent(ctx context.Context, parentID string) ([]models.Child, error)
	FindByID(ctx context.Context, id string) (*models.Child, error)
	Create(ctx context.Context, child *models.Child) error
	Update(ctx context.Context, child *models.Child) error
	Delete(ctx context.Context, id, parentID string) error
}

// ChildService manages the children a parent books lessons for.
type ChildService struct {
	repo      childRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewChildService constructs the service.
func NewChildService(repo childRepository, validate *validator.Validate, logger *zap.Logger) *ChildService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChildService{repo: repo, validator: validate, logger: logger}
}

// List returns the calling parent's children.
func (s *ChildService) List(ctx context.Context, actor models.Actor) ([]models.Child, error) {
	if actor.Role != models.RoleParent {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only parents manage children")
	}
	children, err := s.repo.ListByParent(ctx, actor.ID)
	if err != nil {
		return nil, storeFailure(err, "failed to list children")
	}
	if children == nil {
		children = []models.Child{}
	}
	return children, nil
}

// Create adds a child to the calling parent's account.
func (s *ChildService) Create(ctx context.Context, actor models.Actor, req dto.ChildRequest) (*models.Child, error) {
	if actor.Role != models.RoleParent {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only parents manage children")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailure(err, "invalid child payload")
	}
	child := &models.Child{ParentID: actor.ID, FullName: req.FullName, Level: models.Level(req.Level)}
	if err := s.repo.Create(ctx, child); err != nil {
		return nil, storeFailure(err, "failed to create child")
	}
	s.logger.Info("child added", zap.String("parent_id", actor.ID), zap.String("child_id", child.ID))
	return child, nil
}

// Update renames a child or changes its level.
func (s *ChildService) Update(ctx context.Context, actor models.Actor, id string, req dto.ChildRequest) (*models.Child, error) {
	if _, err := s.Owned(ctx, actor, id); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailure(err, "invalid child payload")
	}
	child := &models.Child{ID: id, ParentID: actor.ID, FullName: req.FullName, Level: models.Level(req.Level)}
	if err := s.repo.Update(ctx, child); err != nil {
		return nil, lookupFailure(err, "child")
	}
	return s.Owned(ctx, actor, id)
}

// Delete removes one of the calling parent's children. Past bookings keep
// their slot and lose the child reference.
func (s *ChildService) Delete(ctx context.Context, actor models.Actor, id string) error {
	if _, err := s.Owned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, actor.ID); err != nil {
		return lookupFailure(err, "child")
	}
	s.logger.Info("child removed", zap.String("parent_id", actor.ID), zap.String("child_id", id))
	return nil
}

// Owned loads a child and checks that it belongs to the calling parent.
func (s *ChildService) Owned(ctx context.Context, actor models.Actor, id string) (*models.Child, error) {
	if actor.Role != models.RoleParent {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only parents manage children")
	}
	child, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupFailure(err, "child")
	}
	if child.ParentID != actor.ID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "child belongs to another parent")
	}
	return child, nil
}
