package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"roombook/pkg/logger"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestMessageBuilder(t *testing.T) {
	msg := NewMessage().
		WithKey("room-1").
		WithValue(map[string]string{"booking_id": "b-1"}).
		WithEventType("booking.confirmed").
		WithCorrelationID("b-1").
		WithSchemaVersion("1").
		WithSource("reservations").
		Build()

	if msg.Key != "room-1" {
		t.Errorf("Key = %q, want room-1", msg.Key)
	}
	if msg.GetEventID() == "" {
		t.Error("expected generated event id")
	}
	if msg.GetEventType() != "booking.confirmed" {
		t.Errorf("event type = %q", msg.GetEventType())
	}
	if msg.GetCorrelationID() != "b-1" {
		t.Errorf("correlation id = %q", msg.GetCorrelationID())
	}
	if _, ok := msg.GetHeader(HeaderTimestamp); !ok {
		t.Error("expected timestamp header")
	}

	var decoded map[string]string
	if err := msg.DecodeValue(&decoded); err != nil {
		t.Fatalf("DecodeValue() error = %v", err)
	}
	if decoded["booking_id"] != "b-1" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestMessageBuilder_UnencodableValue(t *testing.T) {
	msg := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	if len(msg.Value) != 0 {
		t.Errorf("expected empty value, got %q", msg.Value)
	}
}

func TestMessage_RetryCount(t *testing.T) {
	var msg Message
	if got := msg.GetRetryCount(); got != 0 {
		t.Fatalf("GetRetryCount() = %d, want 0", got)
	}
	for i := 0; i < 12; i++ {
		msg.IncrementRetryCount()
	}
	if got := msg.GetRetryCount(); got != 12 {
		t.Errorf("GetRetryCount() = %d, want 12", got)
	}

	msg.Headers[HeaderRetryCount] = "garbage"
	if got := msg.GetRetryCount(); got != 0 {
		t.Errorf("GetRetryCount() with bad header = %d, want 0", got)
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ErrorTypeUnknown},
		{"explicit transient", NewTransientError("x", nil), ErrorTypeTransient},
		{"wrapped permanent", errors.Join(errors.New("ctx"), NewPermanentError("bad", nil)), ErrorTypePermanent},
		{"timeout text", errors.New("i/o Timeout while writing"), ErrorTypeTransient},
		{"connection refused", errors.New("dial tcp: connection refused"), ErrorTypeTransient},
		{"schema mismatch", errors.New("schema mismatch on field"), ErrorTypePermanent},
		{"unknown defaults to permanent", errors.New("boom"), ErrorTypePermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.want {
				t.Errorf("ClassifyError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldRetry(t *testing.T) {
	transient := NewTransientError("flaky", nil)
	if !ShouldRetry(transient, 0, 3) {
		t.Error("expected retry for transient error under limit")
	}
	if ShouldRetry(transient, 3, 3) {
		t.Error("expected no retry at limit")
	}
	if ShouldRetry(NewPermanentError("bad", nil), 0, 3) {
		t.Error("expected no retry for permanent error")
	}
	if ShouldRetry(nil, 0, 3) {
		t.Error("expected no retry for nil error")
	}
}

func newTestProducer(w, dlq *fakeWriter) *Producer {
	p := &Producer{
		writer: w,
		topic:  "bookings.events",
		log:    logger.Discard(),
	}
	if dlq != nil {
		p.dlqWriter = dlq
		p.dlqTopic = "bookings.events.dlq"
	}
	return p
}

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newTestProducer(w, nil)

	var seen []string
	p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
		seen = append(seen, "outer:"+msg.Topic)
		return next(ctx, msg)
	})
	p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
		seen = append(seen, "inner")
		return next(ctx, msg)
	})

	msg := NewMessage().WithKey("room-1").WithValue("hello").WithEventType("booking.confirmed").Build()
	if err := p.Publish(context.Background(), msg); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if len(w.messages) != 1 {
		t.Fatalf("expected 1 written message, got %d", len(w.messages))
	}
	if string(w.messages[0].Key) != "room-1" {
		t.Errorf("key = %q", w.messages[0].Key)
	}
	if header(w.messages[0], HeaderEventType) != "booking.confirmed" {
		t.Errorf("missing event type header")
	}
	if strings.Join(seen, ",") != "outer:bookings.events,inner" {
		t.Errorf("middleware order = %v", seen)
	}
}

func TestProducer_PublishRejectsInvalid(t *testing.T) {
	p := newTestProducer(&fakeWriter{}, nil)

	if err := p.Publish(context.Background(), Message{Value: []byte("x")}); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("expected ErrEmptyKey, got %v", err)
	}
	if err := p.Publish(context.Background(), Message{Key: "k"}); !errors.Is(err, ErrEmptyValue) {
		t.Errorf("expected ErrEmptyValue, got %v", err)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := p.Publish(context.Background(), Message{Key: "k", Value: []byte("v")}); !errors.Is(err, ErrProducerClosed) {
		t.Errorf("expected ErrProducerClosed, got %v", err)
	}
}

func TestProducer_FailedWriteGoesToDLQ(t *testing.T) {
	writeErr := errors.New("leader not available")
	w := &fakeWriter{err: writeErr}
	dlq := &fakeWriter{}
	p := newTestProducer(w, dlq)

	msg := Message{Key: "room-1", Value: []byte(`{}`)}
	err := p.Publish(context.Background(), msg)
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected original error, got %v", err)
	}
	if len(dlq.messages) != 1 {
		t.Fatalf("expected 1 DLQ message, got %d", len(dlq.messages))
	}
	got := dlq.messages[0]
	if header(got, HeaderOriginalTopic) != "bookings.events" {
		t.Errorf("original-topic = %q", header(got, HeaderOriginalTopic))
	}
	if header(got, "dlq-error") != writeErr.Error() {
		t.Errorf("dlq-error = %q", header(got, "dlq-error"))
	}
}

func newTestConsumer(handler MessageHandler, dlq *fakeWriter, maxRetries int) *Consumer {
	c := &Consumer{
		topic:      "bookings.events",
		groupID:    "booking-notifications",
		maxRetries: maxRetries,
		handler:    handler,
		log:        logger.Discard(),
	}
	if dlq != nil {
		c.dlqWriter = dlq
		c.dlqTopic = "bookings.events.dlq"
	}
	return c
}

func TestConsumer_RetriesTransientThenSucceeds(t *testing.T) {
	calls := 0
	handler := func(ctx context.Context, msg Message) error {
		calls++
		if calls < 3 {
			return NewTransientError("broker hiccup", nil)
		}
		return nil
	}
	dlq := &fakeWriter{}
	c := newTestConsumer(handler, dlq, 3)

	if err := c.processMessage(context.Background(), Message{Key: "k", Headers: map[string]string{}}); err != nil {
		t.Fatalf("processMessage() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("handler called %d times, want 3", calls)
	}
	if len(dlq.messages) != 0 {
		t.Errorf("expected no DLQ messages, got %d", len(dlq.messages))
	}
}

func TestConsumer_PermanentErrorGoesToDLQ(t *testing.T) {
	calls := 0
	handler := func(ctx context.Context, msg Message) error {
		calls++
		return NewPermanentError("invalid message", nil)
	}
	dlq := &fakeWriter{}
	c := newTestConsumer(handler, dlq, 3)

	msg := Message{Key: "k", Value: []byte("{"), Headers: nil}
	if err := c.processMessage(context.Background(), msg); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
	if len(dlq.messages) != 1 {
		t.Fatalf("expected 1 DLQ message, got %d", len(dlq.messages))
	}
	if header(dlq.messages[0], "dlq-consumer-group") != "booking-notifications" {
		t.Errorf("missing consumer group header")
	}
}

func TestConsumer_ExhaustedRetriesGoToDLQ(t *testing.T) {
	calls := 0
	handler := func(ctx context.Context, msg Message) error {
		calls++
		return NewTransientError("timeout", nil)
	}
	dlq := &fakeWriter{}
	c := newTestConsumer(handler, dlq, 2)

	if err := c.processMessage(context.Background(), Message{Key: "k"}); err == nil {
		t.Fatal("expected error")
	}
	if calls != 3 {
		t.Errorf("handler called %d times, want 3", calls)
	}
	if header(dlq.messages[0], HeaderRetryCount) != "2" {
		t.Errorf("retry-count = %q, want 2", header(dlq.messages[0], HeaderRetryCount))
	}
}

func TestConsumer_MiddlewareWrapsHandler(t *testing.T) {
	var order []string
	handler := func(ctx context.Context, msg Message) error {
		order = append(order, "handler")
		return nil
	}
	c := newTestConsumer(handler, nil, 0)
	c.Use(func(ctx context.Context, msg Message, next MessageHandler) error {
		order = append(order, "mw")
		return next(ctx, msg)
	})

	if err := c.processMessage(context.Background(), Message{}); err != nil {
		t.Fatalf("processMessage() error = %v", err)
	}
	if strings.Join(order, ",") != "mw,handler" {
		t.Errorf("order = %v", order)
	}
}
