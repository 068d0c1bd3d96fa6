package notification

import "errors"

var (
	ErrServiceStopped = errors.New("notification service stopped")
)
