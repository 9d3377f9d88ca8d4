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

const childColumns = `id, parent_id, full_name, level, created_at`

// ChildRepository persists the children managed by parent accounts.
type ChildRepository struct {
	db *sqlx.DB
}

// NewChildRepository constructs the repository.
func NewChildRepository(db *sqlx.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

// ListByParent returns a parent's children by name.
func (r *ChildRepository) ListByParent(ctx context.Context, parentID string) ([]models.Child, error) {
	const query = `SELECT ` + childColumns + ` FROM children WHERE parent_id = $1 ORDER BY full_name`
	var children []models.Child
	if err := r.db.SelectContext(ctx, &children, query, parentID); err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	return children, nil
}

// FindByID returns a child or sql.ErrNoRows.
func (r *ChildRepository) FindByID(ctx context.Context, id string) (*models.Child, error) {
	const query = `SELECT ` + childColumns + ` FROM children WHERE id = $1`
	var child models.Child
	if err := r.db.GetContext(ctx, &child, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find child: %w", err)
	}
	return &child, nil
}

// Create inserts a child, assigning an ID when missing.
func (r *ChildRepository) Create(ctx context.Context, child *models.Child) error {
	if child.ID == "" {
		child.ID = uuid.NewString()
	}
	if child.CreatedAt.IsZero() {
		child.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO children (id, parent_id, full_name, level, created_at) VALUES (:id, :parent_id, :full_name, :level, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, child); err != nil {
		return fmt.Errorf("create child: %w", err)
	}
	return nil
}

// Update rewrites a child owned by parentID. It returns sql.ErrNoRows when
// no such child belongs to the parent.
func (r *ChildRepository) Update(ctx context.Context, child *models.Child) error {
	const query = `UPDATE children SET full_name = $3, level = $4 WHERE id = $1 AND parent_id = $2`
	res, err := r.db.ExecContext(ctx, query, child.ID, child.ParentID, child.FullName, string(child.Level))
	if err != nil {
		return fmt.Errorf("update child: %w", err)
	}
	return expectOneRow(res, "update child")
}

// Delete removes a child owned by parentID, or returns sql.ErrNoRows.
func (r *ChildRepository) Delete(ctx context.Context, id, parentID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM children WHERE id = $1 AND parent_id = $2`, id, parentID)
	if err != nil {
		return fmt.Errorf("delete child: %w", err)
	}
	return expectOneRow(res, "delete child")
}

// expectOneRow turns a write that matched nothing into sql.ErrNoRows.
func expectOneRow(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows: %w", op, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
