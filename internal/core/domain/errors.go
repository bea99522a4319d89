package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Enumeration errors
var (
	ErrInvalidBloodType  = errors.New("invalid blood type")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidUnitStatus = errors.New("invalid blood unit status")
	ErrInvalidTransition = errors.New("illegal status transition")
	ErrInvalidTimeSlot   = errors.New("invalid time slot")
)
