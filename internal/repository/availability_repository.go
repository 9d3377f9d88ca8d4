package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
)

// TIME columns are read back as text so that rules round-trip as "HH:MM:SS".
const availabilityColumns = `id, teacher_id, weekday, start_time::text AS start_time, end_time::text AS end_time, created_at`

// AvailabilityRepository persists tutors' weekly availability rules.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository constructs the repository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ListByTeacher returns the tutor's rules ordered by weekday then start time.
func (r *AvailabilityRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.AvailabilityRule, error) {
	const query = `SELECT ` + availabilityColumns + ` FROM availabilities WHERE teacher_id = $1 ORDER BY weekday, start_time`
	var rules []models.AvailabilityRule
	if err := r.db.SelectContext(ctx, &rules, query, teacherID); err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	return rules, nil
}

// FindByID returns a rule or sql.ErrNoRows.
func (r *AvailabilityRepository) FindByID(ctx context.Context, id string) (*models.AvailabilityRule, error) {
	const query = `SELECT ` + availabilityColumns + ` FROM availabilities WHERE id = $1`
	var rule models.AvailabilityRule
	if err := r.db.GetContext(ctx, &rule, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find availability: %w", err)
	}
	return &rule, nil
}

// Create inserts a rule.
func (r *AvailabilityRepository) Create(ctx context.Context, rule *models.AvailabilityRule) error {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO availabilities (id, teacher_id, weekday, start_time, end_time, created_at) VALUES (:id, :teacher_id, :weekday, :start_time, :end_time, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, rule); err != nil {
		return fmt.Errorf("create availability: %w", err)
	}
	return nil
}

// Delete removes a rule owned by the tutor, returning sql.ErrNoRows when
// nothing matched.
func (r *AvailabilityRepository) Delete(ctx context.Context, id, teacherID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM availabilities WHERE id = $1 AND teacher_id = $2`, id, teacherID)
	if err != nil {
		return fmt.Errorf("delete availability: %w", err)
	}
	return expectOneRow(res, "delete availability")
}
