package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
)

const bookingColumns = `id, parent_id, teacher_id, child_id, subject_id, neighborhood_id, starts_at, ends_at, note, status, created_at, updated_at`

// BookingRepository persists bookings and their subject tags.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository constructs the repository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// LockTeacher serialises booking writes for a tutor until tx ends.
func (r *BookingRepository) LockTeacher(ctx context.Context, tx *sqlx.Tx, teacherID string) error {
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, teacherID); err != nil {
		return fmt.Errorf("lock teacher calendar: %w", err)
	}
	return nil
}

// FindOverlapping lists bookings of the tutor in one of statuses that share
// an instant with [start, end).
func (r *BookingRepository) FindOverlapping(ctx context.Context, teacherID string, start, end time.Time, statuses []models.BookingStatus) ([]models.BookingRef, error) {
	return findOverlapping(ctx, r.db, teacherID, start, end, statuses)
}

// FindOverlappingTx is FindOverlapping inside tx.
func (r *BookingRepository) FindOverlappingTx(ctx context.Context, tx *sqlx.Tx, teacherID string, start, end time.Time, statuses []models.BookingStatus) ([]models.BookingRef, error) {
	return findOverlapping(ctx, tx, teacherID, start, end, statuses)
}

func findOverlapping(ctx context.Context, q sqlx.QueryerContext, teacherID string, start, end time.Time, statuses []models.BookingStatus) ([]models.BookingRef, error) {
	if len(statuses) == 0 {
		statuses = models.ActiveBookingStatuses
	}
	raw := make([]string, len(statuses))
	for i, s := range statuses {
		raw[i] = string(s)
	}

	const query = `SELECT id, starts_at, ends_at, status FROM bookings
WHERE teacher_id = $1 AND starts_at < $3 AND ends_at > $2 AND status = ANY($4)
ORDER BY starts_at`
	var refs []models.BookingRef
	if err := sqlx.SelectContext(ctx, q, &refs, query, teacherID, start, end, pq.Array(raw)); err != nil {
		return nil, fmt.Errorf("find overlapping bookings: %w", err)
	}
	return refs, nil
}

// CreateWithTx inserts a booking inside tx.
func (r *BookingRepository) CreateWithTx(ctx context.Context, tx *sqlx.Tx, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = booking.CreatedAt
	if booking.Status == "" {
		booking.Status = models.BookingPending
	}

	const query = `INSERT INTO bookings (` + bookingColumns + `) VALUES (:id, :parent_id, :teacher_id, :child_id, :subject_id, :neighborhood_id, :starts_at, :ends_at, :note, :status, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, booking); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

const subjectSavepoint = "booking_subjects"

// AttachSubjectsWithTx tags a booking inside a savepoint so that a failure
// only discards the tags and leaves tx usable.
func (r *BookingRepository) AttachSubjectsWithTx(ctx context.Context, tx *sqlx.Tx, bookingID string, subjectIDs []int64) error {
	if len(subjectIDs) == 0 {
		return nil
	}
	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+subjectSavepoint); err != nil {
		return fmt.Errorf("savepoint booking subjects: %w", err)
	}
	if err := attachSubjects(ctx, tx, bookingID, subjectIDs); err != nil {
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+subjectSavepoint); rbErr != nil {
			return fmt.Errorf("rollback booking subjects: %v (after %w)", rbErr, err)
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+subjectSavepoint); err != nil {
		return fmt.Errorf("release booking subjects: %w", err)
	}
	return nil
}

// AttachSubjects adds subject tags to an existing booking. Tags already
// present are kept.
func (r *BookingRepository) AttachSubjects(ctx context.Context, bookingID string, subjectIDs []int64) error {
	if len(subjectIDs) == 0 {
		return nil
	}
	return attachSubjects(ctx, r.db, bookingID, subjectIDs)
}

func attachSubjects(ctx context.Context, exec sqlx.ExecerContext, bookingID string, subjectIDs []int64) error {
	const query = `INSERT INTO booking_subjects (booking_id, subject_id)
SELECT $1, unnest($2::bigint[])
ON CONFLICT DO NOTHING`
	if _, err := exec.ExecContext(ctx, query, bookingID, pq.Array(subjectIDs)); err != nil {
		return fmt.Errorf("attach booking subjects: %w", err)
	}
	return nil
}

// SubjectIDs lists the subject tags of a booking.
func (r *BookingRepository) SubjectIDs(ctx context.Context, bookingID string) ([]int64, error) {
	const query = `SELECT subject_id FROM booking_subjects WHERE booking_id = $1 ORDER BY subject_id`
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, bookingID); err != nil {
		return nil, fmt.Errorf("list booking subjects: %w", err)
	}
	return ids, nil
}

// FindByID returns a booking or sql.ErrNoRows.
func (r *BookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	var booking models.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return &booking, nil
}

// List returns bookings matching filter, most recent slot first.
func (r *BookingRepository) List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	var conditions []string
	var args []interface{}

	if filter.ParentID != "" {
		args = append(args, filter.ParentID)
		conditions = append(conditions, fmt.Sprintf("parent_id = $%d", len(args)))
	}
	if filter.TeacherID != "" {
		args = append(args, filter.TeacherID)
		conditions = append(conditions, fmt.Sprintf("teacher_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY starts_at DESC"

	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus moves a booking from one status to another. It reports false
// when the row was not in the expected status any more.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, at time.Time) (bool, error) {
	const query = `UPDATE bookings SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, query, id, string(from), string(to), at)
	if err != nil {
		return false, fmt.Errorf("update booking status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update booking status rows: %w", err)
	}
	return affected == 1, nil
}

// ListDueForCompletion returns confirmed bookings that ended before cutoff.
func (r *BookingRepository) ListDueForCompletion(ctx context.Context, cutoff time.Time, limit int) ([]models.Booking, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE status = 'confirmed' AND ends_at < $1 ORDER BY ends_at LIMIT $2`
	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, cutoff, limit); err != nil {
		return nil, fmt.Errorf("list bookings due for completion: %w", err)
	}
	return bookings, nil
}

// Touch bumps updated_at so that listeners sorting by activity see the booking.
func (r *BookingRepository) Touch(ctx context.Context, id string, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE bookings SET updated_at = $2 WHERE id = $1`, id, at); err != nil {
		return fmt.Errorf("touch booking: %w", err)
	}
	return nil
}
