package data

import (
	"errors"
)

var (
	// ErrInvalidStrategy is returned for an unknown load balancing strategy.
	ErrInvalidStrategy = errors.New("invalid load balancing strategy")

	// ErrNoAvailableSlaves is returned when no slave connection is available.
	ErrNoAvailableSlaves = errors.New("no available slaves")
)
