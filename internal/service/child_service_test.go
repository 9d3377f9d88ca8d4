package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/dto"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
	appErrors "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/errors"
)

func TestChildLifecycle(t *testing.T) {
	repo := newMemChildRepo()
	svc := NewChildService(repo, nil, nil)
	ctx := context.Background()

	empty, err := svc.List(ctx, parentA)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	child, err := svc.Create(ctx, parentA, dto.ChildRequest{FullName: "Inès Diop", Level: "college"})
	require.NoError(t, err)
	assert.Equal(t, parentOne, child.ParentID)

	updated, err := svc.Update(ctx, parentA, child.ID, dto.ChildRequest{FullName: "Inès Diop", Level: "lycee"})
	require.NoError(t, err)
	assert.Equal(t, models.LevelLycee, updated.Level)

	listed, err := svc.List(ctx, parentA)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	require.NoError(t, svc.Delete(ctx, parentA, child.ID))
	_, err = svc.Owned(ctx, parentA, child.ID)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound), "got %v", err)
}

func TestChildAccessRules(t *testing.T) {
	repo := newMemChildRepo()
	repo.put(models.Child{ID: "c-9", ParentID: parentTwo, FullName: "Malick", Level: models.LevelLycee})
	svc := NewChildService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.List(ctx, tutor)
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	_, err = svc.Create(ctx, parentA, dto.ChildRequest{FullName: "X", Level: "primaire"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation), "got %v", err)

	_, err = svc.Update(ctx, parentA, "c-9", dto.ChildRequest{FullName: "Malick", Level: "college"})
	assert.True(t, errors.Is(err, appErrors.ErrForbidden), "got %v", err)

	err = svc.Delete(ctx, parentA, "c-9")
	assert.True(t, errors.Is(err, appErrors.ErrForbidden), "got %v", err)
	assert.Contains(t, repo.children, "c-9")
}
