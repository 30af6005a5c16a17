package repository

import (
	"context"
	"fmt"
	reservationserrors "roombook/internal/reservations/errors"
	"roombook/pkg/config"
	"roombook/pkg/model"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	RoomLocksCollectionName = "Room_locks"
)

// Unlock releases a lock obtained from RoomLocker. Calling it more than once
// is safe.
type Unlock func(ctx context.Context) error

// RoomLocker grants one writer per room at a time.
type RoomLocker interface {
	Lock(ctx context.Context, roomID string) (Unlock, error)
}

// MemoryRoomLocker serializes writers within a single process. Lock blocks
// until the room is free or ctx is done.
type MemoryRoomLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func NewMemoryRoomLocker() *MemoryRoomLocker {
	return &MemoryRoomLocker{
		slots: make(map[string]chan struct{}),
	}
}

func (l *MemoryRoomLocker) slot(roomID string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[roomID]
	if !ok {
		s = make(chan struct{}, 1)
		l.slots[roomID] = s
	}
	return s
}

func (l *MemoryRoomLocker) Lock(ctx context.Context, roomID string) (Unlock, error) {
	s := l.slot(roomID)

	select {
	case s <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() { <-s })
		return nil
	}, nil
}

type mongoRoomLockRepository struct {
	collection *mongo.Collection
	ttl        time.Duration
	now        func() time.Time
	newToken   func() string
}

func NewMongoRoomLockRepository(cfg *config.Config) RoomLocker {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomLockRepository{
		collection: db.Collection(RoomLocksCollectionName),
		ttl:        cfg.RoomLockTTL,
		now:        func() time.Time { return time.Now().UTC() },
		newToken:   uuid.NewString,
	}
}

func lockID(roomID string) string {
	return fmt.Sprintf("room_lock_%s", roomID)
}

// unlockFilter matches the lock only while it is still held under token.
func unlockFilter(id, token string) bson.M {
	return bson.M{"_id": id, "token": token}
}

// Lock inserts the lock document. A live lock held by someone else yields
// ErrRoomLocked; an expired one the TTL monitor has not reaped yet is
// removed and the insert retried once.
func (r *mongoRoomLockRepository) Lock(ctx context.Context, roomID string) (Unlock, error) {
	id := lockID(roomID)
	token := r.newToken()

	err := r.insert(ctx, id, roomID, token)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		if _, delErr := r.collection.DeleteOne(ctx, bson.M{"_id": id, "expires_at": bson.M{"$lte": r.now()}}); delErr != nil {
			return nil, fmt.Errorf("failed to clear expired room lock: %w", delErr)
		}
		err = r.insert(ctx, id, roomID, token)
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %s", reservationserrors.ErrRoomLocked, roomID)
		}
		return nil, fmt.Errorf("failed to acquire room lock: %w", err)
	}

	var once sync.Once
	return func(ctx context.Context) error {
		var releaseErr error
		once.Do(func() {
			_, releaseErr = r.collection.DeleteOne(ctx, unlockFilter(id, token))
		})
		return releaseErr
	}, nil
}

func (r *mongoRoomLockRepository) insert(ctx context.Context, id, roomID, token string) error {
	now := r.now()
	lock := &model.RoomLock{
		ID:        id,
		RoomID:    roomID,
		Token:     token,
		ExpiresAt: now.Add(r.ttl),
		CreatedAt: now,
	}
	_, err := r.collection.InsertOne(ctx, lock)
	return err
}
