package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/dto"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
	appErrors "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/errors"
)

type memMessageRepo struct {
	messages []models.Message
}

func (r *memMessageRepo) ListByBooking(_ context.Context, bookingID string) ([]models.Message, error) {
	var out []models.Message
	for _, m := range r.messages {
		if m.BookingID == bookingID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMessageRepo) Create(_ context.Context, msg *models.Message) error {
	msg.ID = "m-1"
	msg.CreatedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r.messages = append(r.messages, *msg)
	return nil
}

func TestMessageSend(t *testing.T) {
	bookings := newMemBookingRepo()
	bookings.put(models.Booking{ID: "b-1", ParentID: parentOne, TeacherID: tutorID, Status: models.BookingPending})
	repo := &memMessageRepo{}
	notifier := &recordingNotifier{}
	svc := NewMessageService(repo, bookings, notifier, nil, nil)
	ctx := context.Background()

	msg, err := svc.Send(ctx, tutor, "b-1", dto.SendMessageRequest{Body: "  Bonjour, à lundi  "})
	require.NoError(t, err)
	assert.Equal(t, "Bonjour, à lundi", msg.Body)
	assert.Equal(t, tutorID, msg.SenderID)
	assert.Equal(t, []string{"b-1"}, bookings.touched)
	assert.Equal(t, []models.ChangeEventType{models.EventMessageCreated}, notifier.types())

	_, err = svc.Send(ctx, parentA, "b-1", dto.SendMessageRequest{Body: "   "})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.Send(ctx, parentB, "b-1", dto.SendMessageRequest{Body: "hello"})
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	thread, err := svc.List(ctx, parentA, "b-1")
	require.NoError(t, err)
	assert.Len(t, thread, 1)

	_, err = svc.List(ctx, parentA, "missing")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}
