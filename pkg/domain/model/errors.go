package model

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrInvalidInput is returned for out-of-range or malformed values
	ErrInvalidInput = goerr.New("invalid input")

	ErrMissingField      = goerr.New("required field is missing")
	ErrPasswordMismatch  = goerr.New("password confirmation does not match")
	ErrPasswordTooShort  = goerr.New("password is too short")
	ErrInsufficientStock = goerr.New("insufficient stock")
	ErrInvalidDateRange  = goerr.New("invalid date range")

	// ErrInvalidTransition is returned when a status change is not allowed from the current status
	ErrInvalidTransition = goerr.New("invalid status transition")

	// ErrRemoteUnavailable wraps failures of the record store, object storage and notification endpoints
	ErrRemoteUnavailable = goerr.New("remote service unavailable")

	ErrUnauthorized  = goerr.New("unauthorized")
	ErrForbidden     = goerr.New("forbidden")
	ErrNotFound      = goerr.New("not found")
	ErrAlreadyExists = goerr.New("already exists")
)

// Context keys for error values
const (
	FieldKey       = "field"
	KindKey        = "kind"
	ValueKey       = "value"
	IDKey          = "id"
	FromStatusKey  = "from"
	ToStatusKey    = "to"
	RequestedKey   = "requested"
	AvailableKey   = "available"
	ProbabilityKey = "probability"
	SeverityKey    = "severity"
	LaborHoursKey  = "labor_hours"
	EventKey       = "event"
	BucketKey      = "bucket"
	PathKey        = "path"
	EmailKey       = "email"
	UserIDKey      = "user_id"
)
