package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
)

// ReviewRepository persists parent reviews of tutors.
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository constructs the repository.
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a review. A second review of the same booking by the same
// parent fails with a unique violation.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO reviews (id, booking_id, parent_id, teacher_id, rating, comment, created_at) VALUES (:id, :booking_id, :parent_id, :teacher_id, :rating, :comment, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, review); err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// ExistsForBooking reports whether the parent already reviewed the booking.
func (r *ReviewRepository) ExistsForBooking(ctx context.Context, parentID, bookingID string) (bool, error) {
	var exists bool
	const query = `SELECT EXISTS (SELECT 1 FROM reviews WHERE parent_id = $1 AND booking_id = $2)`
	if err := r.db.GetContext(ctx, &exists, query, parentID, bookingID); err != nil {
		return false, fmt.Errorf("check review exists: %w", err)
	}
	return exists, nil
}

// ListByTeacher returns a tutor's reviews, newest first.
func (r *ReviewRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.Review, error) {
	const query = `SELECT id, booking_id, parent_id, teacher_id, rating, comment, created_at FROM reviews WHERE teacher_id = $1 ORDER BY created_at DESC`
	var reviews []models.Review
	if err := r.db.SelectContext(ctx, &reviews, query, teacherID); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// Summary aggregates the tutor's ratings. Average is 0 without reviews.
func (r *ReviewRepository) Summary(ctx context.Context, teacherID string) (*models.RatingSummary, error) {
	const query = `SELECT COALESCE(AVG(rating), 0)::float8 AS average, COUNT(*) AS count FROM reviews WHERE teacher_id = $1`
	summary := models.RatingSummary{TeacherID: teacherID}
	if err := r.db.GetContext(ctx, &summary, query, teacherID); err != nil {
		return nil, fmt.Errorf("summarise reviews: %w", err)
	}
	return &summary, nil
}
