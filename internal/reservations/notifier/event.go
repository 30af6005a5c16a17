package notifier

import (
	"fmt"
	"roombook/pkg/model"
	"time"
)

const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"

	SchemaVersion = "1"
)

// BookingEvent is the payload published for every notification.
type BookingEvent struct {
	Type       string    `json:"type" validate:"required,oneof=booking.confirmed booking.cancelled"`
	BookingID  string    `json:"booking_id" validate:"required"`
	RoomID     string    `json:"room_id" validate:"required"`
	StartTime  time.Time `json:"start_time" validate:"required"`
	EndTime    time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType string, booking model.Booking, occurredAt time.Time) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		StartTime:  booking.StartTime,
		EndTime:    booking.EndTime,
		OccurredAt: occurredAt,
	}
}

func (e BookingEvent) Booking() model.Booking {
	return model.NewBooking(e.BookingID, e.RoomID, e.StartTime, e.EndTime)
}

// Subject is the human readable headline of the notification.
func (e BookingEvent) Subject() string {
	switch e.Type {
	case EventBookingConfirmed:
		return fmt.Sprintf("Room %s booked from %s to %s", e.RoomID, e.StartTime.Format(time.RFC3339), e.EndTime.Format(time.RFC3339))
	case EventBookingCancelled:
		return fmt.Sprintf("Booking %s for room %s cancelled", e.BookingID, e.RoomID)
	default:
		return fmt.Sprintf("Booking %s updated", e.BookingID)
	}
}
