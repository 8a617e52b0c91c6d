package exception

import "errors"

var (
	ErrBookCapacityExceeded = errors.New("book: price level capacity exceeded")
	ErrUnknownVenue         = errors.New("book: unknown venue")
	ErrInvalidSide          = errors.New("book: invalid side")
)
