package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/dto"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/scheduling"
	appErrors "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/errors"
)

type fakeAvailabilityService struct {
	covered      bool
	lastInterval scheduling.Interval
}

func (f *fakeAvailabilityService) Location() *time.Location { return time.UTC }

func (f *fakeAvailabilityService) List(_ context.Context, teacherID string) ([]models.AvailabilityRule, error) {
	return []models.AvailabilityRule{{ID: "a-1", TeacherID: teacherID, Weekday: 1, StartTime: "08:00:00", EndTime: "10:00:00"}}, nil
}

func (f *fakeAvailabilityService) Create(_ context.Context, actor models.Actor, req dto.CreateAvailabilityRequest) (*models.AvailabilityRule, error) {
	return &models.AvailabilityRule{ID: "a-2", TeacherID: actor.ID, Weekday: *req.Weekday, StartTime: req.StartTime, EndTime: req.EndTime}, nil
}

func (f *fakeAvailabilityService) Delete(_ context.Context, _ models.Actor, id string) error {
	if id != "a-1" {
		return appErrors.Clone(appErrors.ErrNotFound, "availability not found")
	}
	return nil
}

func (f *fakeAvailabilityService) CheckCoverage(_ context.Context, _ string, interval scheduling.Interval) (bool, error) {
	f.lastInterval = interval
	return f.covered, nil
}

type fakeOverlapFinder struct {
	refs []models.BookingRef
}

func (f fakeOverlapFinder) FindOverlapping(context.Context, dto.OverlapQuery) ([]models.BookingRef, error) {
	return f.refs, nil
}

func TestAvailabilityCheck(t *testing.T) {
	svc := &fakeAvailabilityService{covered: true}
	handler := NewAvailabilityHandler(svc, fakeOverlapFinder{refs: []models.BookingRef{{ID: "b-1"}}})
	c, rec := newContext(http.MethodGet, "/teachers/t-1/availability/check?starts_at=2024-06-03T08:00:00Z&ends_at=2024-06-03T09:00:00Z", nil, parentActor)
	c.AddParam("id", "t-1")

	handler.Check(c)

	requireStatus(t, rec, http.StatusOK)
	var res dto.CoverageResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &res))
	assert.True(t, res.Covered)
	assert.Equal(t, 1, res.Conflicts)
	assert.False(t, res.Available)
	assert.Equal(t, "UTC", res.Timezone)
	assert.Equal(t, time.Hour, svc.lastInterval.Duration())
}

func TestAvailabilityCheckValidatesInterval(t *testing.T) {
	handler := NewAvailabilityHandler(&fakeAvailabilityService{}, fakeOverlapFinder{})

	c, rec := newContext(http.MethodGet, "/teachers/t-1/availability/check?starts_at=2024-06-03T08:00:00Z", nil, parentActor)
	handler.Check(c)
	requireStatus(t, rec, http.StatusBadRequest)

	assert.Equal(t, appErrors.ErrInvalidInterval.Code, decodeEnvelope(t, rec).Error.Code)

	c, rec = newContext(http.MethodGet, "/teachers/t-1/availability/check?starts_at=monday&ends_at=2024-06-03T08:00:00Z", nil, parentActor)
	handler.Check(c)
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, appErrors.ErrInvalidInterval.Code, decodeEnvelope(t, rec).Error.Code)

	c, rec = newContext(http.MethodGet, "/teachers/t-1/availability/check?starts_at=2024-06-03T09:00:00Z&ends_at=2024-06-03T08:00:00Z", nil, parentActor)
	handler.Check(c)
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, appErrors.ErrInvalidInterval.Code, decodeEnvelope(t, rec).Error.Code)
}

func TestAvailabilityCreateAndDelete(t *testing.T) {
	handler := NewAvailabilityHandler(&fakeAvailabilityService{}, fakeOverlapFinder{})

	c, rec := newContext(http.MethodPost, "/availability", map[string]interface{}{"weekday": 1, "start_time": "08:00", "end_time": "10:00"}, teacherActor)
	handler.Create(c)
	requireStatus(t, rec, http.StatusCreated)

	c, rec = newContext(http.MethodDelete, "/availability/a-9", nil, teacherActor)
	c.AddParam("id", "a-9")
	handler.Delete(c)
	requireStatus(t, rec, http.StatusNotFound)

	c, _ = newContext(http.MethodDelete, "/availability/a-1", nil, teacherActor)
	c.AddParam("id", "a-1")
	handler.Delete(c)
	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
}

func TestAvailabilityListIncludesTimezone(t *testing.T) {
	handler := NewAvailabilityHandler(&fakeAvailabilityService{}, fakeOverlapFinder{})
	c, rec := newContext(http.MethodGet, "/teachers/t-1/availability", nil, nil)
	c.AddParam("id", "t-1")

	handler.List(c)

	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "UTC", decodeEnvelope(t, rec).Meta["timezone"])
}
