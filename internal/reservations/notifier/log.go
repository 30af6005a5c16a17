package notifier

import (
	"context"
	"roombook/pkg/logger"
	"roombook/pkg/model"
	"time"
)

// LogNotifier delivers notifications as structured log entries.
type LogNotifier struct {
	log *logger.Logger
	now func() time.Time
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{
		log: log.Component("notifier"),
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (n *LogNotifier) SendBookingConfirmation(ctx context.Context, booking model.Booking) error {
	return n.Deliver(ctx, NewBookingEvent(EventBookingConfirmed, booking, n.now()))
}

func (n *LogNotifier) SendCancellationConfirmation(ctx context.Context, booking model.Booking) error {
	return n.Deliver(ctx, NewBookingEvent(EventBookingCancelled, booking, n.now()))
}

func (n *LogNotifier) Deliver(ctx context.Context, event BookingEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.log.Info("Notification delivered",
		"event_type", event.Type,
		"booking_id", event.BookingID,
		"room_id", event.RoomID,
		"subject", event.Subject(),
	)
	return nil
}
