package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/scheduling"
)

type memBookingRepo struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]*models.Booking
	subjects map[string][]int64

	lockErr     error
	overlapErr  error
	createErr   error
	tagErr      error
	staleUpdate bool
	locked      []string
	touched     []string
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: map[string]*models.Booking{}, subjects: map[string][]int64{}}
}

func (r *memBookingRepo) put(b models.Booking) *models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := b
	r.bookings[b.ID] = &stored
	return &stored
}

func (r *memBookingRepo) LockTeacher(_ context.Context, _ *sqlx.Tx, teacherID string) error {
	r.locked = append(r.locked, teacherID)
	return r.lockErr
}

func (r *memBookingRepo) FindOverlapping(_ context.Context, teacherID string, start, end time.Time, statuses []models.BookingStatus) ([]models.BookingRef, error) {
	if r.overlapErr != nil {
		return nil, r.overlapErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	want := scheduling.Interval{Start: start, End: end}
	var refs []models.BookingRef
	for _, b := range r.bookings {
		if b.TeacherID != teacherID || !statusIn(b.Status, statuses) {
			continue
		}
		if want.Overlaps(scheduling.Interval{Start: b.StartsAt, End: b.EndsAt}) {
			refs = append(refs, models.BookingRef{ID: b.ID, StartsAt: b.StartsAt, EndsAt: b.EndsAt, Status: b.Status})
		}
	}
	return refs, nil
}

func (r *memBookingRepo) FindOverlappingTx(ctx context.Context, _ *sqlx.Tx, teacherID string, start, end time.Time, statuses []models.BookingStatus) ([]models.BookingRef, error) {
	return r.FindOverlapping(ctx, teacherID, start, end, statuses)
}

func (r *memBookingRepo) CreateWithTx(_ context.Context, _ *sqlx.Tx, booking *models.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	r.seq++
	booking.ID = fmt.Sprintf("b-%d", r.seq)
	booking.UpdatedAt = booking.CreatedAt
	r.mu.Unlock()
	r.put(*booking)
	return nil
}

func (r *memBookingRepo) AttachSubjectsWithTx(ctx context.Context, _ *sqlx.Tx, bookingID string, subjectIDs []int64) error {
	if r.tagErr != nil {
		return r.tagErr
	}
	return r.AttachSubjects(ctx, bookingID, subjectIDs)
}

func (r *memBookingRepo) AttachSubjects(_ context.Context, bookingID string, subjectIDs []int64) error {
	if r.tagErr != nil {
		return r.tagErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subjects[bookingID] = uniqueIDs(append(r.subjects[bookingID], subjectIDs...))
	return nil
}

func (r *memBookingRepo) SubjectIDs(_ context.Context, bookingID string) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.subjects[bookingID], nil
}

func (r *memBookingRepo) FindByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	stored := *b
	return &stored, nil
}

func (r *memBookingRepo) List(_ context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if filter.ParentID != "" && b.ParentID != filter.ParentID {
			continue
		}
		if filter.TeacherID != "" && b.TeacherID != filter.TeacherID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *memBookingRepo) UpdateStatus(_ context.Context, id string, from, to models.BookingStatus, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from || r.staleUpdate {
		return false, nil
	}
	b.Status = to
	b.UpdatedAt = at
	return true, nil
}

func (r *memBookingRepo) ListDueForCompletion(_ context.Context, cutoff time.Time, _ int) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status == models.BookingConfirmed && b.EndsAt.Before(cutoff) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) Touch(_ context.Context, id string, _ time.Time) error {
	r.touched = append(r.touched, id)
	return nil
}

func (r *memBookingRepo) status(id string) models.BookingStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookings[id].Status
}

func statusIn(s models.BookingStatus, set []models.BookingStatus) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}

type memAvailabilityRepo struct {
	rules   []models.AvailabilityRule
	listErr error
}

func (r *memAvailabilityRepo) ListByTeacher(_ context.Context, teacherID string) ([]models.AvailabilityRule, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []models.AvailabilityRule
	for _, rule := range r.rules {
		if rule.TeacherID == teacherID {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *memAvailabilityRepo) Create(_ context.Context, rule *models.AvailabilityRule) error {
	rule.ID = fmt.Sprintf("a-%d", len(r.rules)+1)
	r.rules = append(r.rules, *rule)
	return nil
}

func (r *memAvailabilityRepo) Delete(_ context.Context, id, teacherID string) error {
	for i, rule := range r.rules {
		if rule.ID == id && rule.TeacherID == teacherID {
			r.rules = append(r.rules[:i], r.rules[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type memUsers struct {
	users map[string]*models.User
	calls int
}

func (u *memUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	u.calls++
	user, ok := u.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

type memChildRepo struct {
	seq      int
	children map[string]*models.Child
}

func newMemChildRepo() *memChildRepo {
	return &memChildRepo{children: map[string]*models.Child{}}
}

func (r *memChildRepo) put(c models.Child) {
	stored := c
	r.children[c.ID] = &stored
}

func (r *memChildRepo) ListByParent(_ context.Context, parentID string) ([]models.Child, error) {
	var out []models.Child
	for _, c := range r.children {
		if c.ParentID == parentID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memChildRepo) FindByID(_ context.Context, id string) (*models.Child, error) {
	c, ok := r.children[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *c
	return &copied, nil
}

func (r *memChildRepo) Create(_ context.Context, child *models.Child) error {
	r.seq++
	child.ID = fmt.Sprintf("c-%d", r.seq)
	r.put(*child)
	return nil
}

func (r *memChildRepo) Update(_ context.Context, child *models.Child) error {
	current, ok := r.children[child.ID]
	if !ok || current.ParentID != child.ParentID {
		return sql.ErrNoRows
	}
	current.FullName = child.FullName
	current.Level = child.Level
	return nil
}

func (r *memChildRepo) Delete(_ context.Context, id, parentID string) error {
	current, ok := r.children[id]
	if !ok || current.ParentID != parentID {
		return sql.ErrNoRows
	}
	delete(r.children, id)
	return nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []models.ChangeEvent
}

func (n *recordingNotifier) Notify(_ context.Context, event models.ChangeEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) types() []models.ChangeEventType {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]models.ChangeEventType, len(n.events))
	for i, e := range n.events {
		out[i] = e.Type
	}
	return out
}

func newTxMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}
