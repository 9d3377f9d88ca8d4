package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
)

const profileColumns = `p.user_id, u.full_name, p.bio, p.hourly_rate, p.levels, p.address, p.created_at, p.updated_at`

// TeacherProfileRepository persists tutor listings and the subjects and
// neighborhoods they cover.
type TeacherProfileRepository struct {
	db *sqlx.DB
}

// NewTeacherProfileRepository constructs the repository.
func NewTeacherProfileRepository(db *sqlx.DB) *TeacherProfileRepository {
	return &TeacherProfileRepository{db: db}
}

// FindByUserID returns a tutor's profile with its relations, or sql.ErrNoRows.
func (r *TeacherProfileRepository) FindByUserID(ctx context.Context, userID string) (*models.TeacherProfile, error) {
	const query = `SELECT ` + profileColumns + ` FROM teacher_profiles p JOIN users u ON u.id = p.user_id WHERE p.user_id = $1`
	var profile models.TeacherProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find teacher profile: %w", err)
	}
	profiles := []models.TeacherProfile{profile}
	if err := r.loadRelations(ctx, profiles); err != nil {
		return nil, err
	}
	return &profiles[0], nil
}

// Save upserts the profile and replaces its subject and neighborhood sets in
// one transaction.
func (r *TeacherProfileRepository) Save(ctx context.Context, profile *models.TeacherProfile, subjectIDs, neighborhoodIDs []int64) (err error) {
	now := time.Now().UTC()
	profile.UpdatedAt = now
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	if profile.Levels == nil {
		profile.Levels = pq.StringArray{}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save teacher profile: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const upsert = `INSERT INTO teacher_profiles (user_id, bio, hourly_rate, levels, address, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (user_id) DO UPDATE SET bio = EXCLUDED.bio, hourly_rate = EXCLUDED.hourly_rate, levels = EXCLUDED.levels, address = EXCLUDED.address, updated_at = EXCLUDED.updated_at`
	if _, err = tx.ExecContext(ctx, upsert, profile.UserID, profile.Bio, profile.HourlyRate, profile.Levels, profile.Address, profile.CreatedAt, profile.UpdatedAt); err != nil {
		return fmt.Errorf("upsert teacher profile: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM teacher_subjects WHERE teacher_id = $1`, profile.UserID); err != nil {
		return fmt.Errorf("clear teacher subjects: %w", err)
	}
	if len(subjectIDs) > 0 {
		const query = `INSERT INTO teacher_subjects (teacher_id, subject_id) SELECT $1, unnest($2::bigint[])`
		if _, err = tx.ExecContext(ctx, query, profile.UserID, pq.Array(subjectIDs)); err != nil {
			return fmt.Errorf("insert teacher subjects: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM teacher_neighborhoods WHERE teacher_id = $1`, profile.UserID); err != nil {
		return fmt.Errorf("clear teacher neighborhoods: %w", err)
	}
	if len(neighborhoodIDs) > 0 {
		const query = `INSERT INTO teacher_neighborhoods (teacher_id, neighborhood_id) SELECT $1, unnest($2::bigint[])`
		if _, err = tx.ExecContext(ctx, query, profile.UserID, pq.Array(neighborhoodIDs)); err != nil {
			return fmt.Errorf("insert teacher neighborhoods: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit teacher profile: %w", err)
	}
	return nil
}

// Search lists active tutors matching filter, ordered by name.
func (r *TeacherProfileRepository) Search(ctx context.Context, filter models.TeacherSearchFilter) ([]models.TeacherProfile, error) {
	conditions := []string{"u.active", "u.role = 'TEACHER'"}
	var args []interface{}

	if filter.SubjectID != nil {
		args = append(args, *filter.SubjectID)
		conditions = append(conditions, fmt.Sprintf("EXISTS (SELECT 1 FROM teacher_subjects ts WHERE ts.teacher_id = p.user_id AND ts.subject_id = $%d)", len(args)))
	}
	if filter.NeighborhoodID != nil {
		args = append(args, *filter.NeighborhoodID)
		conditions = append(conditions, fmt.Sprintf("EXISTS (SELECT 1 FROM teacher_neighborhoods tn WHERE tn.teacher_id = p.user_id AND tn.neighborhood_id = $%d)", len(args)))
	}
	if filter.Level != "" {
		args = append(args, string(filter.Level))
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(p.levels)", len(args)))
	}
	if filter.MaxRate != nil {
		args = append(args, *filter.MaxRate)
		conditions = append(conditions, fmt.Sprintf("p.hourly_rate <= $%d", len(args)))
	}

	query := `SELECT ` + profileColumns + ` FROM teacher_profiles p JOIN users u ON u.id = p.user_id WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY u.full_name, p.user_id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	var profiles []models.TeacherProfile
	if err := r.db.SelectContext(ctx, &profiles, query, args...); err != nil {
		return nil, fmt.Errorf("search teacher profiles: %w", err)
	}
	if err := r.loadRelations(ctx, profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

type profileSubjectRow struct {
	TeacherID string `db:"teacher_id"`
	ID        int64  `db:"id"`
	Name      string `db:"name"`
}

func (r *TeacherProfileRepository) loadRelations(ctx context.Context, profiles []models.TeacherProfile) error {
	if len(profiles) == 0 {
		return nil
	}
	ids := make([]string, len(profiles))
	index := make(map[string]int, len(profiles))
	for i := range profiles {
		ids[i] = profiles[i].UserID
		index[profiles[i].UserID] = i
		profiles[i].Subjects = []models.Subject{}
		profiles[i].Neighborhoods = []models.Neighborhood{}
	}

	var subjects []profileSubjectRow
	const subjectQuery = `SELECT ts.teacher_id, s.id, s.name FROM teacher_subjects ts JOIN subjects s ON s.id = ts.subject_id WHERE ts.teacher_id = ANY($1) ORDER BY s.name`
	if err := r.db.SelectContext(ctx, &subjects, subjectQuery, pq.Array(ids)); err != nil {
		return fmt.Errorf("load teacher subjects: %w", err)
	}
	for _, row := range subjects {
		i := index[row.TeacherID]
		profiles[i].Subjects = append(profiles[i].Subjects, models.Subject{ID: row.ID, Name: row.Name})
	}

	var neighborhoods []profileSubjectRow
	const neighborhoodQuery = `SELECT tn.teacher_id, n.id, n.name FROM teacher_neighborhoods tn JOIN neighborhoods n ON n.id = tn.neighborhood_id WHERE tn.teacher_id = ANY($1) ORDER BY n.name`
	if err := r.db.SelectContext(ctx, &neighborhoods, neighborhoodQuery, pq.Array(ids)); err != nil {
		return fmt.Errorf("load teacher neighborhoods: %w", err)
	}
	for _, row := range neighborhoods {
		i := index[row.TeacherID]
		profiles[i].Neighborhoods = append(profiles[i].Neighborhoods, models.Neighborhood{ID: row.ID, Name: row.Name})
	}
	return nil
}
