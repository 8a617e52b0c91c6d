package exception

import "errors"

var (
	ErrSubscriberClosed = errors.New("bus: subscriber closed")
)
