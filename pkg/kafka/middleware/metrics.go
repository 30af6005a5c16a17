package kafka_middleware

import (
	"context"
	"sync/atomic"
	"time"

	"roombook/pkg/kafka"
	"roombook/pkg/logger"
)

// Metrics counts Kafka operations. The zero value is ready to use.
type Metrics struct {
	published       atomic.Int64
	publishFailed   atomic.Int64
	publishDuration atomic.Int64 // nanoseconds

	consumed        atomic.Int64
	consumeFailed   atomic.Int64
	consumeDuration atomic.Int64 // nanoseconds
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	MessagesPublished       int64         `json:"messages_published"`
	MessagesPublishedFailed int64         `json:"messages_published_failed"`
	AvgPublishDuration      time.Duration `json:"avg_publish_duration"`
	MessagesConsumed        int64         `json:"messages_consumed"`
	MessagesConsumedFailed  int64         `json:"messages_consumed_failed"`
	AvgConsumeDuration      time.Duration `json:"avg_consume_duration"`
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) Reset() {
	m.published.Store(0)
	m.publishFailed.Store(0)
	m.publishDuration.Store(0)
	m.consumed.Store(0)
	m.consumeFailed.Store(0)
	m.consumeDuration.Store(0)
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		MessagesPublished:       m.published.Load(),
		MessagesPublishedFailed: m.publishFailed.Load(),
		MessagesConsumed:        m.consumed.Load(),
		MessagesConsumedFailed:  m.consumeFailed.Load(),
	}
	if s.MessagesPublished > 0 {
		s.AvgPublishDuration = time.Duration(m.publishDuration.Load() / s.MessagesPublished)
	}
	if s.MessagesConsumed > 0 {
		s.AvgConsumeDuration = time.Duration(m.consumeDuration.Load() / s.MessagesConsumed)
	}
	return s
}

// Log writes the current counters at INFO.
func (m *Metrics) Log(log *logger.Logger) {
	s := m.Snapshot()
	log.Info("Kafka metrics",
		"messages_published", s.MessagesPublished,
		"messages_published_failed", s.MessagesPublishedFailed,
		"avg_publish_duration", s.AvgPublishDuration,
		"messages_consumed", s.MessagesConsumed,
		"messages_consumed_failed", s.MessagesConsumedFailed,
		"avg_consume_duration", s.AvgConsumeDuration,
	)
}

// ProducerMiddleware counts successful and failed publishes.
func (m *Metrics) ProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		if err != nil {
			m.publishFailed.Add(1)
			return err
		}
		m.published.Add(1)
		m.publishDuration.Add(int64(time.Since(start)))
		return nil
	}
}

// ConsumerMiddleware counts every handler attempt, retries included.
func (m *Metrics) ConsumerMiddleware() kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)
		if err != nil {
			m.consumeFailed.Add(1)
			return err
		}
		m.consumed.Add(1)
		m.consumeDuration.Add(int64(time.Since(start)))
		return nil
	}
}
