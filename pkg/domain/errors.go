package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionHalted is returned when advancing a session whose program already halted.
var ErrSessionHalted = errors.New("session already halted")

// ErrProgramNotFound is returned when a library program ID is unknown.
var ErrProgramNotFound = errors.New("program not found")

// ErrInvalidSessionID is returned for empty or path-like session IDs.
var ErrInvalidSessionID = errors.New("invalid session id")

// ErrSessionFailed is returned when advancing a session that previously failed.
var ErrSessionFailed = errors.New("session failed")
