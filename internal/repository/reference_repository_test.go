package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListReferenceData(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReferenceRepository(db)

	mock.ExpectQuery("SELECT id, name FROM subjects ORDER BY name").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "Mathématiques").AddRow(int64(2), "Physique"))
	mock.ExpectQuery("SELECT id, name FROM neighborhoods ORDER BY name").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "Akwa"))

	subjects, err := repo.ListSubjects(context.Background())
	require.NoError(t, err)
	assert.Len(t, subjects, 2)

	neighborhoods, err := repo.ListNeighborhoods(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Akwa", neighborhoods[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
