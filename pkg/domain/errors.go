package domain

import "errors"

// ErrCommandNotFound is returned when an id does not resolve to a registered command.
var ErrCommandNotFound = errors.New("command not found")

// ErrDuplicateCommand is returned when a source yields the same command id twice.
var ErrDuplicateCommand = errors.New("duplicate command id")

// ErrDuplicateFlow is returned when a source yields the same flow name twice.
var ErrDuplicateFlow = errors.New("duplicate flow name")

// ErrInvalidDescriptor is returned for descriptors missing an id or a factory.
var ErrInvalidDescriptor = errors.New("invalid command descriptor")

// ErrContextBusy is returned when a dispatch gives up waiting for an execution
// context that another dispatch is still using.
var ErrContextBusy = errors.New("execution context busy")
