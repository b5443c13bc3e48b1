package domain

import "errors"

var (
	ErrVenueNotInitialized = errors.New("venue is not initialized")
	ErrSessionExpired      = errors.New("session has already started")
	ErrInsufficientSeats   = errors.New("not enough available seats")
	ErrInvalidQuantity     = errors.New("ticket quantity must be positive")
	ErrInvalidSeatCount    = errors.New("total seats must be greater than zero")
	ErrInvalidPrice        = errors.New("ticket price must be greater than zero")
	ErrNegativePrice       = errors.New("ticket price cannot be negative")
	ErrMissingStartTime    = errors.New("session start time is required")
	ErrSeatsBelowSold      = errors.New("total seats cannot drop below tickets already sold")
	ErrSeatsOutOfRange     = errors.New("available seats out of range")
	ErrRescheduleEarlier   = errors.New("session cannot be moved to an earlier start time")
	ErrSessionRequired     = errors.New("session is required")
	ErrSessionNotInVenue   = errors.New("session does not belong to this venue")
)
