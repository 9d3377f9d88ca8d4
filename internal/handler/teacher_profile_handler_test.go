package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/dto"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
	appErrors "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/errors"
)

type fakeProfileService struct {
	lastQuery dto.TeacherSearchQuery
	lastSave  dto.SaveTeacherProfileRequest
}

func (f *fakeProfileService) Get(_ context.Context, teacherID string) (*models.TeacherProfile, error) {
	if teacherID == "missing" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher profile not found")
	}
	return &models.TeacherProfile{UserID: teacherID, FullName: "Awa Ngo"}, nil
}

func (f *fakeProfileService) Save(_ context.Context, actor models.Actor, req dto.SaveTeacherProfileRequest) (*models.TeacherProfile, error) {
	f.lastSave = req
	return &models.TeacherProfile{UserID: actor.ID, HourlyRate: req.HourlyRate}, nil
}

func (f *fakeProfileService) Search(_ context.Context, query dto.TeacherSearchQuery) ([]models.TeacherProfile, error) {
	f.lastQuery = query
	return []models.TeacherProfile{{UserID: "t-1"}, {UserID: "t-2"}}, nil
}

func TestTeacherSearchBindsFilters(t *testing.T) {
	svc := &fakeProfileService{}
	handler := NewTeacherProfileHandler(svc)

	c, rec := newContext(http.MethodGet, "/teachers?subject_id=1&neighborhood_id=3&level=lycee&max_rate=5000&limit=10", nil, nil)
	handler.Search(c)

	requireStatus(t, rec, http.StatusOK)
	require.NotNil(t, svc.lastQuery.SubjectID)
	require.NotNil(t, svc.lastQuery.NeighborhoodID)
	require.NotNil(t, svc.lastQuery.MaxRate)
	assert.Equal(t, int64(1), *svc.lastQuery.SubjectID)
	assert.Equal(t, int64(3), *svc.lastQuery.NeighborhoodID)
	assert.Equal(t, int64(5000), *svc.lastQuery.MaxRate)
	assert.Equal(t, "lycee", svc.lastQuery.Level)
	assert.Equal(t, 10, svc.lastQuery.Limit)
	assert.Equal(t, float64(2), decodeEnvelope(t, rec).Meta["count"])
}

func TestTeacherSearchRejectsMalformedFilter(t *testing.T) {
	handler := NewTeacherProfileHandler(&fakeProfileService{})

	c, rec := newContext(http.MethodGet, "/teachers?subject_id=maths", nil, nil)
	handler.Search(c)

	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, appErrors.ErrValidation.Code, decodeEnvelope(t, rec).Error.Code)
}

func TestTeacherProfileGetAndSave(t *testing.T) {
	svc := &fakeProfileService{}
	handler := NewTeacherProfileHandler(svc)

	c, rec := newContext(http.MethodGet, "/teachers/missing", nil, nil)
	c.AddParam("id", "missing")
	handler.Get(c)
	requireStatus(t, rec, http.StatusNotFound)

	c, rec = newContext(http.MethodPut, "/teacher-profile", map[string]interface{}{
		"hourly_rate": 4000,
		"levels":      []string{"lycee"},
		"subject_ids": []int64{1, 2},
	}, teacherActor)
	handler.Save(c)
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, []int64{1, 2}, svc.lastSave.SubjectIDs)

	var profile models.TeacherProfile
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &profile))
	assert.Equal(t, teacherActor.ID, profile.UserID)
}
