package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
)

func TestReviewSummary(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReviewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(AVG(rating), 0)::float8 AS average, COUNT(*) AS count FROM reviews WHERE teacher_id = $1")).
		WithArgs("t-1").
		WillReturnRows(sqlmock.NewRows([]string{"average", "count"}).AddRow(4.333333, 3))

	summary, err := repo.Summary(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Equal(t, "t-1", summary.TeacherID)
	assert.Equal(t, 3, summary.Count)
	assert.InDelta(t, 4.333, summary.Average, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewExistsAndCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReviewRepository(db)

	mock.ExpectQuery("SELECT EXISTS").WithArgs("p-1", "b-1").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO reviews").WillReturnResult(sqlmock.NewResult(1, 1))

	exists, err := repo.ExistsForBooking(context.Background(), "p-1", "b-1")
	require.NoError(t, err)
	assert.False(t, exists)

	review := &models.Review{BookingID: "b-1", ParentID: "p-1", TeacherID: "t-1", Rating: 5}
	require.NoError(t, repo.Create(context.Background(), review))
	assert.NotEmpty(t, review.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListReviewsByTeacher(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReviewRepository(db)

	now := time.Now()
	mock.ExpectQuery("FROM reviews WHERE teacher_id = \\$1 ORDER BY created_at DESC").
		WithArgs("t-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "parent_id", "teacher_id", "rating", "comment", "created_at"}).
			AddRow("r-1", "b-1", "p-1", "t-1", 4, "Très bien", now))

	reviews, err := repo.ListByTeacher(context.Background(), "t-1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.NotNil(t, reviews[0].Comment)
	assert.Equal(t, "Très bien", *reviews[0].Comment)
	assert.NoError(t, mock.ExpectationsWereMet())
}
