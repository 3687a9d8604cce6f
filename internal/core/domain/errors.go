package domain

import "errors"

var (
	// ErrInvalidArgument covers missing or malformed caller input:
	// nil doctor ID, zero date, non-positive duration.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSourceUnavailable wraps read failures of the external data
	// layer. Retry policy is the caller's decision.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrSlotTaken signals a booking conflict: the requested start is
	// no longer free at write time.
	ErrSlotTaken = errors.New("slot already taken")

	// ErrRateLimited signals that the booking edge rejected the
	// request before touching storage.
	ErrRateLimited = errors.New("rate limited")
)
