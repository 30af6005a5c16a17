package model

import (
	"time"
)

// Booking reserves one room for the half-open interval [StartTime, EndTime).
// Bookings are passed by value and never modified once created.
type Booking struct {
	ID        string    `json:"id" bson:"id" validate:"required"`
	RoomID    string    `json:"room_id" bson:"room_id" validate:"required"`
	StartTime time.Time `json:"start_time" bson:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
}

func NewBooking(id, roomID string, start, end time.Time) Booking {
	return Booking{
		ID:        id,
		RoomID:    roomID,
		StartTime: start,
		EndTime:   end,
	}
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching intervals do not overlap, and an empty interval overlaps nothing.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	if !aStart.Before(aEnd) || !bStart.Before(bEnd) {
		return false
	}
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func (b Booking) Overlaps(start, end time.Time) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}
