package errors

import "errors"

var (
	ErrRoomNotFound = errors.New("room not found")

	ErrRoomExists = errors.New("room already exists")

	ErrMissingInput = errors.New("required input is missing")

	ErrInvalidInterval = errors.New("end time must be after start time")

	ErrBookingInPast = errors.New("booking start is in the past")

	ErrBookingStarted = errors.New("booking has already started")

	ErrRoomLocked = errors.New("room is locked by another request")
)
