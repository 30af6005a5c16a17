package model

import (
	"time"
)

// Room owns its bookings exclusively. It carries no temporal policy: checks
// such as "not in the past" belong to the reservation service.
type Room struct {
	ID        string    `json:"id" bson:"_id" validate:"required,max=64"`
	Name      string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Bookings  []Booking `json:"bookings" bson:"bookings"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

func NewRoom(id, name string) *Room {
	return &Room{
		ID:       id,
		Name:     name,
		Bookings: []Booking{},
	}
}

// IsAvailable reports whether no held booking overlaps [start, end).
func (r *Room) IsAvailable(start, end time.Time) bool {
	for _, b := range r.Bookings {
		if b.Overlaps(start, end) {
			return false
		}
	}
	return true
}

// AddBooking inserts unconditionally. Callers check IsAvailable first.
func (r *Room) AddBooking(b Booking) {
	r.Bookings = append(r.Bookings, b)
}

func (r *Room) RemoveBooking(id string) bool {
	for i, b := range r.Bookings {
		if b.ID == id {
			r.Bookings = append(r.Bookings[:i], r.Bookings[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Room) HasBooking(id string) bool {
	_, ok := r.FindBooking(id)
	return ok
}

func (r *Room) FindBooking(id string) (Booking, bool) {
	for _, b := range r.Bookings {
		if b.ID == id {
			return b, true
		}
	}
	return Booking{}, false
}

// Clone returns a deep copy so a stored room is never shared with callers.
func (r *Room) Clone() *Room {
	if r == nil {
		return nil
	}
	c := *r
	c.Bookings = make([]Booking, len(r.Bookings))
	copy(c.Bookings, r.Bookings)
	return &c
}
