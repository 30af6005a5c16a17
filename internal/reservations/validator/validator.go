package validator

import (
	"errors"
	"fmt"
	"roombook/internal/reservations/notifier"
	"roombook/pkg/logger"
	"roombook/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed: %d error(s)", len(v))
}

// Details flattens the errors into the AppError details shape.
func (v ValidationErrors) Details() map[string]any {
	fields := make(map[string]any, len(v))
	for _, e := range v {
		fields[e.Field] = e.Message
	}
	return map[string]any{"fields": fields}
}

type RoomValidator struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewRoomValidator(log *logger.Logger) *RoomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	return &RoomValidator{
		validate: v,
		log:      log,
	}
}

// ValidateRoom checks a room about to be registered. New rooms start empty.
func (v *RoomValidator) ValidateRoom(room *model.Room) error {
	if room == nil {
		return ValidationErrors{{Field: "room", Message: "is required"}}
	}
	if err := v.check(room); err != nil {
		return err
	}

	if len(room.Bookings) > 0 {
		return ValidationErrors{{Field: "bookings", Message: "must be empty when registering a room"}}
	}

	return nil
}

// ValidateEvent checks a booking event read back from the bus.
func (v *RoomValidator) ValidateEvent(event *notifier.BookingEvent) error {
	if event == nil {
		return ValidationErrors{{Field: "event", Message: "is required"}}
	}
	return v.check(event)
}

func (v *RoomValidator) check(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			translated := translateValidationErrors(validationErrs)
			v.log.Debug("Validation failed", "errors", translated)
			return translated
		}
		return err
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message(err),
		})
	}

	return validationErrors
}

func message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", err.Param())
	case "gtfield":
		return fmt.Sprintf("must be after %s", err.Param())
	default:
		return fmt.Sprintf("failed %s validation", err.Tag())
	}
}
