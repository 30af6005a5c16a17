package service

import (
	"context"
	"roombook/internal/reservations/repository"
	"roombook/pkg/config"
	"roombook/pkg/logger"
	"roombook/pkg/model"
	"strconv"
	"sync"
	"testing"
	"time"
)

// ────────────────────────────────────────────────
// Mocks shared by the service tests
// ────────────────────────────────────────────────

type mockRoomRepository struct {
	createFunc   func(ctx context.Context, room *model.Room) error
	findByIDFunc func(ctx context.Context, id string) (*model.Room, error)
	findAllFunc  func(ctx context.Context) ([]*model.Room, error)
	saveFunc     func(ctx context.Context, room *model.Room) error

	mu        sync.Mutex
	saveCalls int
}

func (m *mockRoomRepository) Create(ctx context.Context, room *model.Room) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, room)
	}
	return nil
}

func (m *mockRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockRoomRepository) FindAll(ctx context.Context) ([]*model.Room, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.Room{}, nil
}

func (m *mockRoomRepository) Save(ctx context.Context, room *model.Room) error {
	m.mu.Lock()
	m.saveCalls++
	m.mu.Unlock()
	if m.saveFunc != nil {
		return m.saveFunc(ctx, room)
	}
	return nil
}

func (m *mockRoomRepository) saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveCalls
}

// failingRepository fails the test on any access.
func failingRepository(t *testing.T) *mockRoomRepository {
	t.Helper()
	return &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			t.Errorf("unexpected FindByID(%q)", id)
			return nil, nil
		},
		findAllFunc: func(ctx context.Context) ([]*model.Room, error) {
			t.Error("unexpected FindAll()")
			return nil, nil
		},
		saveFunc: func(ctx context.Context, room *model.Room) error {
			t.Error("unexpected Save()")
			return nil
		},
	}
}

type mockNotifier struct {
	err error

	mu            sync.Mutex
	confirmations []model.Booking
	cancellations []model.Booking
}

func (m *mockNotifier) SendBookingConfirmation(ctx context.Context, booking model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmations = append(m.confirmations, booking)
	return m.err
}

func (m *mockNotifier) SendCancellationConfirmation(ctx context.Context, booking model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancellations = append(m.cancellations, booking)
	return m.err
}

func (m *mockNotifier) counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.confirmations), len(m.cancellations)
}

type mockRoomLocker struct {
	lockFunc func(ctx context.Context, roomID string) (repository.Unlock, error)

	mu       sync.Mutex
	locks    []string
	unlocked int
}

func (m *mockRoomLocker) Lock(ctx context.Context, roomID string) (repository.Unlock, error) {
	if m.lockFunc != nil {
		if unlock, err := m.lockFunc(ctx, roomID); err != nil || unlock != nil {
			return unlock, err
		}
	}
	m.mu.Lock()
	m.locks = append(m.locks, roomID)
	m.mu.Unlock()
	return func(context.Context) error {
		m.mu.Lock()
		m.unlocked++
		m.mu.Unlock()
		return nil
	}, nil
}

// ────────────────────────────────────────────────
// Fixtures
// ────────────────────────────────────────────────

var testNow = time.Date(2030, time.January, 10, 12, 0, 0, 0, time.UTC)

const day = 24 * time.Hour

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "info",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
	}
}

func sequentialIDs() IDGenerator {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return strconv.Itoa(n)
	}
}

func roomWithBookings(id, name string, bookings ...model.Booking) *model.Room {
	room := model.NewRoom(id, name)
	for _, b := range bookings {
		room.AddBooking(b)
	}
	return room
}
