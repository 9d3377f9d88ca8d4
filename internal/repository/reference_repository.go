package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
)

// ReferenceRepository reads the subject and neighborhood lookup tables.
type ReferenceRepository struct {
	db *sqlx.DB
}

// NewReferenceRepository constructs the repository.
func NewReferenceRepository(db *sqlx.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// ListSubjects returns every subject sorted by name.
func (r *ReferenceRepository) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, `SELECT id, name FROM subjects ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// ListNeighborhoods returns every neighborhood sorted by name.
func (r *ReferenceRepository) ListNeighborhoods(ctx context.Context) ([]models.Neighborhood, error) {
	var neighborhoods []models.Neighborhood
	if err := r.db.SelectContext(ctx, &neighborhoods, `SELECT id, name FROM neighborhoods ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list neighborhoods: %w", err)
	}
	return neighborhoods, nil
}
