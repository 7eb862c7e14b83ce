package store

import "errors"

// ErrBookingNotFound is returned when no booking exists for a reference.
var ErrBookingNotFound = errors.New("booking not found")
