package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/dto"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
	appErrors "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/errors"
)

type messageRepository interface {
	ListByBooking(ctx context.Context, bookingID string) ([]models.Message, error)
	Create(ctx context.Context, msg *models.Message) error
}

type bookingToucher interface {
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	Touch(ctx context.Context, id string, at time.Time) error
}

// MessageService manages the conversation attached to each booking.
type MessageService struct {
	repo      messageRepository
	bookings  bookingToucher
	notifier  ChangeNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMessageService constructs the service.
func NewMessageService(repo messageRepository, bookings bookingToucher, notifier ChangeNotifier, validate *validator.Validate, logger *zap.Logger) *MessageService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{repo: repo, bookings: bookings, notifier: notifier, validator: validate, logger: logger}
}

// List returns the thread of a booking the actor takes part in.
func (s *MessageService) List(ctx context.Context, actor models.Actor, bookingID string) ([]models.Message, error) {
	if _, err := s.participantBooking(ctx, actor, bookingID); err != nil {
		return nil, err
	}
	messages, err := s.repo.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, storeFailure(err, "failed to list messages")
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}

// Send appends a message and bumps the booking's activity timestamp.
func (s *MessageService) Send(ctx context.Context, actor models.Actor, bookingID string, req dto.SendMessageRequest) (*models.Message, error) {
	req.Body = strings.TrimSpace(req.Body)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailure(err, "invalid message payload")
	}
	booking, err := s.participantBooking(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{BookingID: booking.ID, SenderID: actor.ID, Body: req.Body}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, storeFailure(err, "failed to send message")
	}

	if err := s.bookings.Touch(ctx, booking.ID, msg.CreatedAt); err != nil {
		s.logger.Warn("failed to touch booking after message", zap.String("booking_id", booking.ID), zap.Error(err))
	}
	s.notifier.Notify(ctx, models.ChangeEventFor(models.EventMessageCreated, booking))
	return msg, nil
}

func (s *MessageService) participantBooking(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, lookupFailure(err, "booking")
	}
	if !booking.IsParticipant(actor.ID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "not a participant of this booking")
	}
	return booking, nil
}
