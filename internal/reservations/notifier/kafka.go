package notifier

import (
	"context"
	"fmt"
	"roombook/pkg/kafka"
	"roombook/pkg/model"
	"time"
)

// Publisher is the slice of kafka.Producer the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaNotifier publishes booking events keyed by room id, so events for
// one room stay ordered within a partition.
type KafkaNotifier struct {
	publisher Publisher
	source    string
	now       func() time.Time
}

func NewKafkaNotifier(publisher Publisher, source string) *KafkaNotifier {
	return &KafkaNotifier{
		publisher: publisher,
		source:    source,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (n *KafkaNotifier) SendBookingConfirmation(ctx context.Context, booking model.Booking) error {
	return n.publish(ctx, NewBookingEvent(EventBookingConfirmed, booking, n.now()))
}

func (n *KafkaNotifier) SendCancellationConfirmation(ctx context.Context, booking model.Booking) error {
	return n.publish(ctx, NewBookingEvent(EventBookingCancelled, booking, n.now()))
}

func (n *KafkaNotifier) publish(ctx context.Context, event BookingEvent) error {
	msg := kafka.NewMessage().
		WithKey(event.RoomID).
		WithValue(event).
		WithEventType(event.Type).
		WithCorrelationID(event.BookingID).
		WithSchemaVersion(SchemaVersion).
		WithSource(n.source).
		Build()

	if err := n.publisher.Publish(ctx, msg); err != nil {
		return fmt.Errorf("%w: %s for booking %s: %v", ErrNotificationFailed, event.Type, event.BookingID, err)
	}
	return nil
}
