package worker

import (
	"context"
	"roombook/internal/reservations/notifier"
	"roombook/pkg/kafka"
	"roombook/pkg/logger"
)

// Deliverer hands a decoded event to the delivery channel.
type Deliverer interface {
	Deliver(ctx context.Context, event notifier.BookingEvent) error
}

// EventValidator rejects events that cannot be delivered.
type EventValidator interface {
	ValidateEvent(event *notifier.BookingEvent) error
}

// NewEventHandler decodes booking events and delivers them. Undecodable or
// invalid events are permanent failures and go straight to the DLQ; delivery
// errors are retried by the consumer.
func NewEventHandler(validator EventValidator, deliverer Deliverer, log *logger.Logger) kafka.MessageHandler {
	log = log.Component("notification-worker")

	return func(ctx context.Context, msg kafka.Message) error {
		var event notifier.BookingEvent
		if err := msg.DecodeValue(&event); err != nil {
			return kafka.NewPermanentError("failed to decode booking event", err)
		}

		if headerType := msg.GetEventType(); headerType != "" && headerType != event.Type {
			log.Warn("Event type header does not match payload",
				"header", headerType,
				"payload", event.Type,
				"event_id", msg.GetEventID(),
			)
		}

		if err := validator.ValidateEvent(&event); err != nil {
			return kafka.NewPermanentError("invalid booking event", err)
		}

		if err := deliverer.Deliver(ctx, event); err != nil {
			return kafka.NewTransientError("failed to deliver notification", err)
		}

		log.Debug("Booking event handled",
			"event_id", msg.GetEventID(),
			"event_type", event.Type,
			"booking_id", event.BookingID,
		)
		return nil
	}
}
