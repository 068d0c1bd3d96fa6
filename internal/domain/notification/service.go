package notification

import (
	"context"
)

// Service defines the notification service interface
type Service interface {
	// Publish queues the event for delivery; it never blocks on slow streams.
	Publish(ctx context.Context, req PublishRequest) error

	// SSE subscription
	Subscribe(ctx context.Context, userID string) (<-chan SSEEvent, func())

	// Lifecycle
	Stop()
}
