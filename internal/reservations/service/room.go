package service

import (
	"context"
	"errors"
	"fmt"
	reservationserrors "roombook/internal/reservations/errors"
	"roombook/internal/reservations/repository"
	"roombook/internal/reservations/validator"
	"roombook/pkg/clock"
	"roombook/pkg/config"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/model"
	"roombook/pkg/sanitizer"
)

// RoomService is the room registry.
type RoomService interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	List(ctx context.Context) ([]*model.Room, error)
	Seed(ctx context.Context, rooms []config.SeedRoom) error
}

type roomService struct {
	repo      repository.RoomRepository
	validator *validator.RoomValidator
	clock     clock.Clock
	cfg       *config.Config
}

func NewRoomService(
	repo repository.RoomRepository,
	validator *validator.RoomValidator,
	clk clock.Clock,
	cfg *config.Config,
) RoomService {
	if clk == nil {
		clk = clock.NewSystemClock()
	}
	return &roomService{
		repo:      repo,
		validator: validator,
		clock:     clk,
		cfg:       withDefaultLogger(cfg),
	}
}

func (s *roomService) Create(ctx context.Context, room *model.Room) error {
	if room == nil {
		return apperrors.InvalidInput("Room cannot be empty")
	}

	s.sanitize(room)
	if room.Bookings == nil {
		room.Bookings = []model.Booking{}
	}
	if room.CreatedAt.IsZero() {
		room.CreatedAt = s.clock.Now()
	}

	if err := s.validator.ValidateRoom(room); err != nil {
		s.cfg.Log.Warn("Room validation failed",
			"room_id", room.ID,
			"name", room.Name,
			"error", err,
		)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperrors.Validation("Room validation failed", verrs.Details())
		}
		return apperrors.Validation("Room validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	existing, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to check for duplicate rooms", "error", err)
		return apperrors.Internal("Failed to create room", err)
	}
	for _, other := range existing {
		if s.isDuplicate(room, other) {
			return apperrors.Conflict(fmt.Sprintf(
				"Room with similar details already exists (id: %s)",
				other.ID,
			)).WithCause(reservationserrors.ErrRoomExists)
		}
	}

	if err := s.repo.Create(ctx, room); err != nil {
		if errors.Is(err, reservationserrors.ErrRoomExists) {
			return apperrors.Conflict(fmt.Sprintf("Room %s already exists", room.ID)).WithCause(err)
		}
		s.cfg.Log.Error("Failed to create room",
			"room_id", room.ID,
			"error", err,
		)
		return apperrors.Internal("Failed to create room", err)
	}

	s.cfg.Log.Info("Room created successfully",
		"room_id", room.ID,
		"name", room.Name,
	)

	return nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	id = sanitizer.SanitizeRoomID(id)
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty").
			WithCause(reservationserrors.ErrMissingInput)
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrRoomNotFound) {
			return nil, apperrors.NotFoundWithID("Room", id).WithCause(err)
		}
		s.cfg.Log.Error("Failed to get room by ID",
			"room_id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}

	return room, nil
}

func (s *roomService) List(ctx context.Context) ([]*model.Room, error) {
	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list rooms", "error", err)
		return nil, apperrors.Internal("Failed to list rooms", err)
	}
	return rooms, nil
}

// Seed registers the given rooms, skipping ones that already exist so that
// restarting with the same seed is harmless.
func (s *roomService) Seed(ctx context.Context, rooms []config.SeedRoom) error {
	created := 0
	for _, seed := range rooms {
		err := s.Create(ctx, model.NewRoom(seed.ID, seed.Name))
		if err == nil {
			created++
			continue
		}
		if apperrors.HasCode(err, apperrors.CodeConflict) {
			s.cfg.Log.Debug("Seed room already exists", "room_id", seed.ID)
			continue
		}
		return fmt.Errorf("failed to seed room %s: %w", seed.ID, err)
	}

	s.cfg.Log.Info("Rooms seeded",
		"requested", len(rooms),
		"created", created,
	)
	return nil
}

func (s *roomService) sanitize(room *model.Room) {
	room.ID = sanitizer.SanitizeRoomID(room.ID)
	room.Name = sanitizer.NormalizeName(room.Name)
}

func (s *roomService) isDuplicate(room, other *model.Room) bool {
	if room.ID == other.ID {
		return true
	}
	return sanitizer.NormalizeNameForComparison(room.Name) == sanitizer.NormalizeNameForComparison(other.Name)
}
