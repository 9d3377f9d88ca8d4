package service

import (
	"context"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
)

type referenceRepository interface {
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	ListNeighborhoods(ctx context.Context) ([]models.Neighborhood, error)
}

// ReferenceService serves the subject and neighborhood lists through the cache.
type ReferenceService struct {
	repo  referenceRepository
	cache *CacheService
}

// NewReferenceService constructs the service. cache may be nil.
func NewReferenceService(repo referenceRepository, cache *CacheService) *ReferenceService {
	return &ReferenceService{repo: repo, cache: cache}
}

// Subjects lists every subject.
func (s *ReferenceService) Subjects(ctx context.Context) ([]models.Subject, error) {
	var subjects []models.Subject
	if s.cache.Get(ctx, cacheKeySubjects, &subjects) {
		return subjects, nil
	}
	subjects, err := s.repo.ListSubjects(ctx)
	if err != nil {
		return nil, storeFailure(err, "failed to list subjects")
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}
	s.cache.Set(ctx, cacheKeySubjects, subjects, 0)
	return subjects, nil
}

// Neighborhoods lists every neighborhood.
func (s *ReferenceService) Neighborhoods(ctx context.Context) ([]models.Neighborhood, error) {
	var neighborhoods []models.Neighborhood
	if s.cache.Get(ctx, cacheKeyNeighborhoods, &neighborhoods) {
		return neighborhoods, nil
	}
	neighborhoods, err := s.repo.ListNeighborhoods(ctx)
	if err != nil {
		return nil, storeFailure(err, "failed to list neighborhoods")
	}
	if neighborhoods == nil {
		neighborhoods = []models.Neighborhood{}
	}
	s.cache.Set(ctx, cacheKeyNeighborhoods, neighborhoods, 0)
	return neighborhoods, nil
}
