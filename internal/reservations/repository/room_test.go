package repository

import (
	"context"
	"roombook/pkg/model"
	"testing"
	"time"
)

func TestWithTimeout(t *testing.T) {
	tests := []struct {
		name        string
		parent      time.Duration
		timeout     time.Duration
		wantAtMost  time.Duration
		wantAtLeast time.Duration
	}{
		{"no parent deadline", 0, time.Second, time.Second, 900 * time.Millisecond},
		{"shorter parent deadline wins", 100 * time.Millisecond, time.Second, 100 * time.Millisecond, 0},
		{"shorter timeout wins", time.Hour, time.Second, time.Second, 900 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent := context.Background()
			if tt.parent > 0 {
				var cancel context.CancelFunc
				parent, cancel = context.WithTimeout(parent, tt.parent)
				defer cancel()
			}

			ctx, cancel := withTimeout(parent, tt.timeout)
			defer cancel()

			deadline, ok := ctx.Deadline()
			if !ok {
				t.Fatal("expected a deadline")
			}
			remaining := time.Until(deadline)
			if remaining > tt.wantAtMost {
				t.Errorf("remaining %s exceeds %s", remaining, tt.wantAtMost)
			}
			if remaining < tt.wantAtLeast {
				t.Errorf("remaining %s below %s", remaining, tt.wantAtLeast)
			}
		})
	}
}

func TestLockID(t *testing.T) {
	if got := lockID("101"); got != "room_lock_101" {
		t.Errorf("lockID = %q", got)
	}
}

func TestUnlockFilter(t *testing.T) {
	holder := model.RoomLock{ID: lockID("101"), RoomID: "101", Token: "token-b"}

	tests := []struct {
		name      string
		token     string
		wantMatch bool
	}{
		{"current holder", "token-b", true},
		{"expired previous holder", "token-a", false},
		{"empty token", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := unlockFilter(lockID("101"), tt.token)
			if filter["_id"] != holder.ID {
				t.Errorf("_id = %v, want %q", filter["_id"], holder.ID)
			}
			if got := filter["token"] == holder.Token; got != tt.wantMatch {
				t.Errorf("filter %v matches holder = %v, want %v", filter, got, tt.wantMatch)
			}
		})
	}
}
