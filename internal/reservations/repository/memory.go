package repository

import (
	"context"
	"fmt"
	reservationserrors "roombook/internal/reservations/errors"
	"roombook/pkg/model"
	"sync"
	"time"
)

// MemoryRoomRepository owns its rooms and only ever hands out clones.
// Listing order is insertion order.
type MemoryRoomRepository struct {
	mu    sync.RWMutex
	order []string
	rooms map[string]*model.Room
}

func NewMemoryRoomRepository(rooms ...*model.Room) *MemoryRoomRepository {
	r := &MemoryRoomRepository{
		rooms: make(map[string]*model.Room),
	}
	for _, room := range rooms {
		r.put(room)
	}
	return r
}

func (r *MemoryRoomRepository) put(room *model.Room) {
	if _, exists := r.rooms[room.ID]; !exists {
		r.order = append(r.order, room.ID)
	}
	r.rooms[room.ID] = room.Clone()
}

func (r *MemoryRoomRepository) Create(ctx context.Context, room *model.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[room.ID]; exists {
		return fmt.Errorf("%w: %s", reservationserrors.ErrRoomExists, room.ID)
	}
	if room.CreatedAt.IsZero() {
		room.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	if room.Bookings == nil {
		room.Bookings = []model.Booking{}
	}
	r.put(room)
	return nil
}

func (r *MemoryRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, reservationserrors.ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (r *MemoryRoomRepository) FindAll(ctx context.Context) ([]*model.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]*model.Room, 0, len(r.order))
	for _, id := range r.order {
		rooms = append(rooms, r.rooms[id].Clone())
	}
	return rooms, nil
}

func (r *MemoryRoomRepository) Save(ctx context.Context, room *model.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(room)
	return nil
}
