package model

import "errors"

// Sentinel errors returned by the repositories. The API layer maps
// these to HTTP statuses; anything else is reported as a generic
// internal error without the store detail.
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventFull         = errors.New("event is full")
	ErrAlreadyRegistered = errors.New("already registered for this event")
)
