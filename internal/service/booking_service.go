package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/dto"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/repository"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/scheduling"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/config"
	appErrors "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/errors"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/export"
)

type bookingRepository interface {
	LockTeacher(ctx context.Context, tx *sqlx.Tx, teacherID string) error
	FindOverlapping(ctx context.Context, teacherID string, start, end time.Time, statuses []models.BookingStatus) ([]models.BookingRef, error)
	FindOverlappingTx(ctx context.Context, tx *sqlx.Tx, teacherID string, start, end time.Time, statuses []models.BookingStatus) ([]models.BookingRef, error)
	CreateWithTx(ctx context.Context, tx *sqlx.Tx, booking *models.Booking) error
	AttachSubjectsWithTx(ctx context.Context, tx *sqlx.Tx, bookingID string, subjectIDs []int64) error
	AttachSubjects(ctx context.Context, bookingID string, subjectIDs []int64) error
	SubjectIDs(ctx context.Context, bookingID string) ([]int64, error)
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, at time.Time) (bool, error)
	ListDueForCompletion(ctx context.Context, cutoff time.Time, limit int) ([]models.Booking, error)
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type coverageChecker interface {
	CheckCoverage(ctx context.Context, teacherID string, interval scheduling.Interval) (bool, error)
}

type userDirectory interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type childOwnership interface {
	Owned(ctx context.Context, actor models.Actor, id string) (*models.Child, error)
}

// ChangeNotifier receives booking change events. Delivery is best effort.
type ChangeNotifier interface {
	Notify(ctx context.Context, event models.ChangeEvent)
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, models.ChangeEvent) {}

// BookingServiceConfig tunes booking rules.
type BookingServiceConfig struct {
	AvailabilityPolicy string
	Location           *time.Location
	CompletionGrace    time.Duration
}

// BookingService creates bookings without double-booking a tutor and moves
// them through their lifecycle.
type BookingService struct {
	repo      bookingRepository
	tx        txProvider
	coverage  coverageChecker
	users     userDirectory
	children  childOwnership
	notifier  ChangeNotifier
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       BookingServiceConfig
	now       func() time.Time
}

// NewBookingService wires the booking use cases.
func NewBookingService(
	repo bookingRepository,
	tx txProvider,
	coverage coverageChecker,
	users userDirectory,
	children childOwnership,
	notifier ChangeNotifier,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg BookingServiceConfig,
) *BookingService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.AvailabilityPolicy != config.AvailabilityStrict {
		cfg.AvailabilityPolicy = config.AvailabilityAdvisory
	}
	return &BookingService{
		repo:      repo,
		tx:        tx,
		coverage:  coverage,
		users:     users,
		children:  children,
		notifier:  notifier,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create reserves a slot with a tutor on behalf of the calling parent. The
// overlap check and the insert run under a per-tutor lock in one
// transaction; subject tagging may fail without undoing the booking.
func (s *BookingService) Create(ctx context.Context, actor models.Actor, req dto.CreateBookingRequest) (result *dto.BookingResult, err error) {
	if actor.Role != models.RoleParent {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only parents can request bookings")
	}

	interval, err := scheduling.ParseInterval(req.StartsAt, req.EndsAt)
	if err != nil {
		s.metrics.RecordBookingAttempt(OutcomeInvalidInterval)
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailure(err, "invalid booking payload")
	}
	if req.TeacherID == actor.ID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cannot book yourself")
	}

	if err := s.ensureTeacher(ctx, req.TeacherID); err != nil {
		return nil, err
	}
	if req.ChildID != nil {
		if err := s.ensureChild(ctx, actor, *req.ChildID); err != nil {
			return nil, err
		}
	}

	covered, err := s.coverage.CheckCoverage(ctx, req.TeacherID, interval)
	if err != nil {
		return nil, err
	}
	if !covered && s.cfg.AvailabilityPolicy == config.AvailabilityStrict {
		s.metrics.RecordBookingAttempt(OutcomeOutsideAvailability)
		return nil, appErrors.Clone(appErrors.ErrOutsideAvailability, "")
	}

	booking := &models.Booking{
		ParentID:       actor.ID,
		TeacherID:      req.TeacherID,
		ChildID:        req.ChildID,
		SubjectID:      req.SubjectID,
		NeighborhoodID: req.NeighborhoodID,
		StartsAt:       interval.Start.UTC(),
		EndsAt:         interval.End.UTC(),
		Note:           req.Note,
		Status:         models.BookingPending,
		CreatedAt:      s.now(),
	}
	subjectIDs := uniqueIDs(req.SubjectIDs)

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storeFailure(err, "failed to start booking transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.repo.LockTeacher(ctx, tx, booking.TeacherID); err != nil {
		return nil, storeFailure(err, "failed to lock tutor calendar")
	}

	overlapping, err := s.repo.FindOverlappingTx(ctx, tx, booking.TeacherID, booking.StartsAt, booking.EndsAt, models.ActiveBookingStatuses)
	if err != nil {
		return nil, storeFailure(err, "failed to check overlapping bookings")
	}
	if len(overlapping) > 0 {
		s.metrics.RecordBookingAttempt(OutcomeConflict)
		s.logger.Info("booking rejected, slot taken",
			zap.String("teacher_id", booking.TeacherID),
			zap.Time("starts_at", booking.StartsAt),
			zap.String("conflicts_with", overlapping[0].ID),
		)
		err = appErrors.Clone(appErrors.ErrBookingConflict, "")
		return nil, err
	}

	if err = s.repo.CreateWithTx(ctx, tx, booking); err != nil {
		return nil, s.insertFailure(err)
	}

	attached := true
	if len(subjectIDs) > 0 {
		if tagErr := s.repo.AttachSubjectsWithTx(ctx, tx, booking.ID, subjectIDs); tagErr != nil {
			attached = false
			s.metrics.RecordUntaggedBooking()
			s.logger.Warn("booking created without subject tags",
				zap.String("booking_id", booking.ID),
				zap.Int64s("subject_ids", subjectIDs),
				zap.Error(tagErr),
			)
		} else {
			booking.SubjectIDs = subjectIDs
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, s.insertFailure(err)
	}

	s.metrics.RecordBookingAttempt(OutcomeCreated)
	s.notifier.Notify(ctx, models.ChangeEventFor(models.EventBookingCreated, booking))
	s.logger.Info("booking created",
		zap.String("booking_id", booking.ID),
		zap.String("parent_id", booking.ParentID),
		zap.String("teacher_id", booking.TeacherID),
		zap.Time("starts_at", booking.StartsAt),
		zap.Duration("duration", interval.Duration()),
		zap.Bool("covered", covered),
	)

	return &dto.BookingResult{Booking: booking, OutsideAvailability: !covered, SubjectsAttached: attached}, nil
}

func (s *BookingService) insertFailure(err error) error {
	switch {
	case repository.IsExclusionViolation(err):
		s.metrics.RecordBookingAttempt(OutcomeConflict)
		return appErrors.Wrap(err, appErrors.ErrBookingConflict.Code, appErrors.ErrBookingConflict.Status, appErrors.ErrBookingConflict.Message)
	case repository.IsForeignKeyViolation(err):
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unknown subject, neighborhood or child")
	}
	s.metrics.RecordBookingAttempt(OutcomeError)
	return storeFailure(err, "failed to create booking")
}

func (s *BookingService) ensureChild(ctx context.Context, actor models.Actor, childID string) error {
	if _, err := s.children.Owned(ctx, actor, childID); err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrValidation, "unknown child")
		}
		return err
	}
	return nil
}

func (s *BookingService) ensureTeacher(ctx context.Context, teacherID string) error {
	user, err := s.users.FindByID(ctx, teacherID)
	if err != nil {
		return lookupFailure(err, "tutor")
	}
	if user.Role != models.RoleTeacher || !user.Active {
		return appErrors.Clone(appErrors.ErrNotFound, "tutor not found")
	}
	return nil
}

// FindOverlapping lists the tutor's bookings in the given statuses that
// overlap the query interval. Statuses default to pending and confirmed.
func (s *BookingService) FindOverlapping(ctx context.Context, q dto.OverlapQuery) ([]models.BookingRef, error) {
	interval, err := scheduling.NewInterval(q.StartsAt, q.EndsAt)
	if err != nil {
		return nil, err
	}
	statuses := q.Statuses
	if len(statuses) == 0 {
		statuses = models.ActiveBookingStatuses
	}
	refs, err := s.repo.FindOverlapping(ctx, q.TeacherID, interval.Start, interval.End, statuses)
	if err != nil {
		return nil, storeFailure(err, "failed to check overlapping bookings")
	}
	if refs == nil {
		refs = []models.BookingRef{}
	}
	return refs, nil
}

// UpdateStatus applies a status transition requested by actor.
func (s *BookingService) UpdateStatus(ctx context.Context, actor models.Actor, id string, to models.BookingStatus) (*models.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupFailure(err, "booking")
	}
	if err := s.transition(ctx, actor, booking, to); err != nil {
		return nil, err
	}
	return booking, nil
}

// Confirm accepts a pending booking as its tutor.
func (s *BookingService) Confirm(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	return s.UpdateStatus(ctx, actor, id, models.BookingConfirmed)
}

// Cancel withdraws a pending or confirmed booking.
func (s *BookingService) Cancel(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	return s.UpdateStatus(ctx, actor, id, models.BookingCancelled)
}

// Complete marks a confirmed booking as held.
func (s *BookingService) Complete(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	return s.UpdateStatus(ctx, actor, id, models.BookingCompleted)
}

func (s *BookingService) transition(ctx context.Context, actor models.Actor, booking *models.Booking, to models.BookingStatus) error {
	from := booking.Status
	if err := scheduling.CheckTransition(actor, scheduling.ParticipantsOf(booking), from, to); err != nil {
		s.logger.Info("booking transition refused",
			zap.String("booking_id", booking.ID),
			zap.String("actor_id", actor.ID),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return err
	}

	at := s.now()
	ok, err := s.repo.UpdateStatus(ctx, booking.ID, from, to, at)
	if err != nil {
		return storeFailure(err, "failed to update booking status")
	}
	if !ok {
		return appErrors.Clone(appErrors.ErrForbiddenTransition, "booking changed concurrently, reload and retry")
	}

	booking.Status = to
	booking.UpdatedAt = at
	s.metrics.RecordTransition(from, to)
	s.notifier.Notify(ctx, models.ChangeEventFor(models.EventBookingStatusChanged, booking))
	s.logger.Info("booking status changed",
		zap.String("booking_id", booking.ID),
		zap.String("actor_id", actor.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return nil
}

// AttachSubjects tags an existing booking. Unknown subjects are rejected.
func (s *BookingService) AttachSubjects(ctx context.Context, actor models.Actor, id string, req dto.AttachSubjectsRequest) (*models.Booking, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailure(err, "invalid subjects payload")
	}
	booking, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !booking.IsParticipant(actor.ID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only participants can tag a booking")
	}

	if err := s.repo.AttachSubjects(ctx, booking.ID, uniqueIDs(req.SubjectIDs)); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unknown subject")
		}
		return nil, storeFailure(err, "failed to attach subjects")
	}

	ids, err := s.repo.SubjectIDs(ctx, booking.ID)
	if err != nil {
		return nil, storeFailure(err, "failed to load booking subjects")
	}
	booking.SubjectIDs = ids
	s.notifier.Notify(ctx, models.ChangeEventFor(models.EventBookingSubjectsAttached, booking))
	return booking, nil
}

// Get returns a booking visible to actor, with its subject tags.
func (s *BookingService) Get(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupFailure(err, "booking")
	}
	if !booking.IsParticipant(actor.ID) && !actor.IsAdmin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "not a participant of this booking")
	}
	ids, err := s.repo.SubjectIDs(ctx, booking.ID)
	if err != nil {
		return nil, storeFailure(err, "failed to load booking subjects")
	}
	booking.SubjectIDs = ids
	return booking, nil
}

// List returns the bookings actor takes part in; admins see all.
func (s *BookingService) List(ctx context.Context, actor models.Actor, status models.BookingStatus) ([]models.Booking, error) {
	if status != "" && !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown booking status")
	}
	filter := models.BookingFilter{Status: status}
	switch actor.Role {
	case models.RoleParent:
		filter.ParentID = actor.ID
	case models.RoleTeacher:
		filter.TeacherID = actor.ID
	case models.RoleAdmin:
	default:
		return nil, appErrors.Clone(appErrors.ErrForbidden, "")
	}

	bookings, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storeFailure(err, "failed to list bookings")
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

// Export renders the actor's bookings as a downloadable file.
func (s *BookingService) Export(ctx context.Context, actor models.Actor, format export.Format) (*export.File, error) {
	bookings, err := s.List(ctx, actor, "")
	if err != nil {
		return nil, err
	}

	data := export.Dataset{
		Title:   fmt.Sprintf("Réservations (%s)", s.cfg.Location.String()),
		Headers: []string{"Réservation", "Début", "Fin", "Statut", "Parent", "Tuteur", "Matière", "Quartier", "Note"},
		Rows:    make([][]string, 0, len(bookings)),
	}
	for _, b := range bookings {
		data.Rows = append(data.Rows, []string{
			b.ID,
			b.StartsAt.In(s.cfg.Location).Format("2006-01-02 15:04"),
			b.EndsAt.In(s.cfg.Location).Format("2006-01-02 15:04"),
			string(b.Status),
			b.ParentID,
			b.TeacherID,
			optionalID(b.SubjectID),
			optionalID(b.NeighborhoodID),
			optionalString(b.Note),
		})
	}

	file, err := export.Render(format, "bookings-"+s.now().Format("20060102"), data)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render export")
	}
	return file, nil
}

// CompleteDue marks confirmed bookings that ended more than the grace
// period ago as completed, returning how many were moved.
func (s *BookingService) CompleteDue(ctx context.Context, limit int) (int, error) {
	cutoff := s.now().Add(-s.cfg.CompletionGrace)
	due, err := s.repo.ListDueForCompletion(ctx, cutoff, limit)
	if err != nil {
		return 0, storeFailure(err, "failed to list bookings due for completion")
	}

	completed := 0
	for i := range due {
		if err := s.transition(ctx, models.SystemActor, &due[i], models.BookingCompleted); err != nil {
			if errors.Is(err, appErrors.ErrForbiddenTransition) {
				continue
			}
			s.logger.Warn("auto-complete failed", zap.String("booking_id", due[i].ID), zap.Error(err))
			continue
		}
		completed++
	}
	return completed, nil
}

func uniqueIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func optionalID(id *int64) string {
	if id == nil {
		return ""
	}
	return fmt.Sprintf("%d", *id)
}

func optionalString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
