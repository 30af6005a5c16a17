package notifier

import (
	"context"
	"errors"
	"roombook/pkg/model"
)

var ErrNotificationFailed = errors.New("notification delivery failed")

// Notifier delivers booking confirmations and cancellations. Failures wrap
// ErrNotificationFailed and never undo the booking change that triggered them.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, booking model.Booking) error
	SendCancellationConfirmation(ctx context.Context, booking model.Booking) error
}
