package service

import (
	"context"
	"errors"
	reservationserrors "roombook/internal/reservations/errors"
	"roombook/internal/reservations/notifier"
	"roombook/internal/reservations/repository"
	"roombook/pkg/clock"
	"roombook/pkg/config"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/logger"
	"roombook/pkg/model"
	"roombook/pkg/sanitizer"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	unlockTimeout       = 5 * time.Second
	notificationTimeout = 5 * time.Second

	notifyConfirmation = "confirmation"
	notifyCancellation = "cancellation"
)

// ReservationService books, lists and cancels room reservations.
//
// BookRoom and Book return a nil error with a false/nil result when the room
// is already taken for the interval. CancelBooking returns false for an
// unknown booking id. Every other failure is an *apperrors.AppError whose
// cause is one of the sentinels in internal/reservations/errors.
type ReservationService interface {
	BookRoom(ctx context.Context, roomID string, start, end time.Time) (bool, error)
	Book(ctx context.Context, roomID string, start, end time.Time) (*model.Booking, error)
	GetAvailableRooms(ctx context.Context, start, end time.Time) ([]*model.Room, error)
	CancelBooking(ctx context.Context, bookingID string) (bool, error)
}

type IDGenerator func() string

type Option func(*reservationService)

func WithIDGenerator(gen IDGenerator) Option {
	return func(s *reservationService) {
		if gen != nil {
			s.newID = gen
		}
	}
}

type reservationService struct {
	repo     repository.RoomRepository
	locker   repository.RoomLocker
	notifier notifier.Notifier
	clock    clock.Clock
	newID    IDGenerator
	cfg      *config.Config
}

func NewReservationService(
	repo repository.RoomRepository,
	locker repository.RoomLocker,
	notifier notifier.Notifier,
	clk clock.Clock,
	cfg *config.Config,
	opts ...Option,
) ReservationService {
	if locker == nil {
		locker = repository.NewMemoryRoomLocker()
	}
	if clk == nil {
		clk = clock.NewSystemClock()
	}
	cfg = withDefaultLogger(cfg)

	s := &reservationService{
		repo:     repo,
		locker:   locker,
		notifier: notifier,
		clock:    clk,
		newID:    uuid.NewString,
		cfg:      cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// withDefaultLogger returns cfg, or a copy of it carrying a discard logger
// when none is set.
func withDefaultLogger(cfg *config.Config) *config.Config {
	if cfg != nil && cfg.Log != nil {
		return cfg
	}
	out := &config.Config{}
	if cfg != nil {
		*out = *cfg
	}
	out.Log = logger.Discard()
	return out
}

func (s *reservationService) BookRoom(ctx context.Context, roomID string, start, end time.Time) (bool, error) {
	booking, err := s.Book(ctx, roomID, start, end)
	if err != nil {
		return false, err
	}
	return booking != nil, nil
}

func (s *reservationService) Book(ctx context.Context, roomID string, start, end time.Time) (*model.Booking, error) {
	roomID = sanitizer.SanitizeRoomID(roomID)

	if roomID == "" || start.IsZero() || end.IsZero() {
		return nil, apperrors.InvalidInput("room_id, start_time and end_time are required").
			WithCause(reservationserrors.ErrMissingInput)
	}
	if err := validateInterval(start, end); err != nil {
		return nil, err
	}
	if now := s.clock.Now(); start.Before(now) {
		return nil, apperrors.TemporalViolation("Cannot book a room in the past").
			WithDetails(map[string]any{
				"start_time": start,
				"now":        now,
			}).
			WithCause(reservationserrors.ErrBookingInPast)
	}

	unlock, err := s.lockRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	defer s.unlockRoom(ctx, unlock, roomID)

	room, err := s.repo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrRoomNotFound) {
			return nil, apperrors.NotFoundWithID("Room", roomID).WithCause(err)
		}
		s.cfg.Log.Error("Failed to load room",
			"room_id", roomID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to load room", err)
	}

	if !room.IsAvailable(start, end) {
		s.cfg.Log.Info("Room not available for requested interval",
			"room_id", roomID,
			"start_time", start,
			"end_time", end,
		)
		return nil, nil
	}

	booking := model.NewBooking(s.newID(), room.ID, start, end)
	room.AddBooking(booking)

	if err := s.repo.Save(ctx, room); err != nil {
		s.cfg.Log.Error("Failed to save booking",
			"booking_id", booking.ID,
			"room_id", room.ID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to save booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"booking_id", booking.ID,
		"room_id", room.ID,
		"start_time", start,
		"end_time", end,
	)

	s.notify(ctx, notifyConfirmation, booking)

	return &booking, nil
}

// GetAvailableRooms accepts intervals in the past.
func (s *reservationService) GetAvailableRooms(ctx context.Context, start, end time.Time) ([]*model.Room, error) {
	if start.IsZero() || end.IsZero() {
		return nil, apperrors.InvalidInput("start_time and end_time are required").
			WithCause(reservationserrors.ErrMissingInput)
	}
	if err := validateInterval(start, end); err != nil {
		return nil, err
	}

	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list rooms", "error", err)
		return nil, apperrors.Internal("Failed to list rooms", err)
	}

	available := make([]*model.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.IsAvailable(start, end) {
			available = append(available, room)
		}
	}

	return available, nil
}

func (s *reservationService) CancelBooking(ctx context.Context, bookingID string) (bool, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return false, apperrors.InvalidInput("booking_id is required").
			WithCause(reservationserrors.ErrMissingInput)
	}

	owner, booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		s.cfg.Log.Error("Failed to look up booking",
			"booking_id", bookingID,
			"error", err,
		)
		return false, apperrors.Internal("Failed to look up booking", err)
	}
	if owner == nil {
		return false, nil
	}

	if err := s.ensureCancellable(booking); err != nil {
		return false, err
	}

	unlock, err := s.lockRoom(ctx, owner.ID)
	if err != nil {
		return false, err
	}
	defer s.unlockRoom(ctx, unlock, owner.ID)

	// Reload under the lock: another request may have cancelled it meanwhile.
	room, err := s.repo.FindByID(ctx, owner.ID)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrRoomNotFound) {
			return false, nil
		}
		s.cfg.Log.Error("Failed to load room",
			"room_id", owner.ID,
			"error", err,
		)
		return false, apperrors.Internal("Failed to load room", err)
	}

	booking, ok := room.FindBooking(bookingID)
	if !ok {
		return false, nil
	}
	if err := s.ensureCancellable(booking); err != nil {
		return false, err
	}

	room.RemoveBooking(bookingID)

	if err := s.repo.Save(ctx, room); err != nil {
		s.cfg.Log.Error("Failed to save cancellation",
			"booking_id", bookingID,
			"room_id", room.ID,
			"error", err,
		)
		return false, apperrors.Internal("Failed to cancel booking", err)
	}

	s.cfg.Log.Info("Booking cancelled successfully",
		"booking_id", bookingID,
		"room_id", room.ID,
	)

	s.notify(ctx, notifyCancellation, booking)

	return true, nil
}

func (s *reservationService) findBooking(ctx context.Context, bookingID string) (*model.Room, model.Booking, error) {
	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, model.Booking{}, err
	}
	for _, room := range rooms {
		if booking, ok := room.FindBooking(bookingID); ok {
			return room, booking, nil
		}
	}
	return nil, model.Booking{}, nil
}

// ensureCancellable rejects bookings whose window has begun.
func (s *reservationService) ensureCancellable(booking model.Booking) error {
	now := s.clock.Now()
	if booking.StartTime.After(now) {
		return nil
	}
	return apperrors.BookingStarted("Cannot cancel a booking that has already started").
		WithDetails(map[string]any{
			"booking_id": booking.ID,
			"start_time": booking.StartTime,
			"now":        now,
		}).
		WithCause(reservationserrors.ErrBookingStarted)
}

func validateInterval(start, end time.Time) error {
	if end.After(start) {
		return nil
	}
	return apperrors.InvalidInterval("end_time must be after start_time").
		WithDetails(map[string]any{
			"start_time": start,
			"end_time":   end,
		}).
		WithCause(reservationserrors.ErrInvalidInterval)
}

func (s *reservationService) lockRoom(ctx context.Context, roomID string) (repository.Unlock, error) {
	unlock, err := s.locker.Lock(ctx, roomID)
	if err == nil {
		return unlock, nil
	}

	if errors.Is(err, reservationserrors.ErrRoomLocked) || errors.Is(err, context.DeadlineExceeded) {
		s.cfg.Log.Warn("Room is locked by another request",
			"room_id", roomID,
			"error", err,
		)
		return nil, apperrors.Conflict("Room is being modified by another request, please retry").
			WithDetails(map[string]any{"room_id": roomID}).
			WithCause(err)
	}

	s.cfg.Log.Error("Failed to lock room",
		"room_id", roomID,
		"error", err,
	)
	return nil, apperrors.Internal("Failed to lock room", err)
}

// unlockRoom releases even when the request context is already done.
func (s *reservationService) unlockRoom(ctx context.Context, unlock repository.Unlock, roomID string) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), unlockTimeout)
	defer cancel()

	if err := unlock(releaseCtx); err != nil {
		s.cfg.Log.Warn("Failed to release room lock",
			"room_id", roomID,
			"error", err,
		)
	}
}

// notify never fails the caller: the booking is already committed.
func (s *reservationService) notify(ctx context.Context, kind string, booking model.Booking) {
	if s.notifier == nil {
		return
	}

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notificationTimeout)
	defer cancel()

	var err error
	switch kind {
	case notifyConfirmation:
		err = s.notifier.SendBookingConfirmation(notifyCtx, booking)
	case notifyCancellation:
		err = s.notifier.SendCancellationConfirmation(notifyCtx, booking)
	}
	if err != nil {
		s.cfg.Log.Warn("Failed to send notification",
			"kind", kind,
			"booking_id", booking.ID,
			"room_id", booking.RoomID,
			"error", err,
		)
	}
}
