package notification

import "time"

// PublishRequest fans one event out to every recipient.
type PublishRequest struct {
	CompanyID    string
	RecipientIDs []string
	ActorID      string
	Type         EventType
	HolidayID    string
	Message      string
}

// EventResponse is the data payload of an SSE message.
type EventResponse struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	HolidayID string    `json:"holiday_id"`
	ActorID   string    `json:"actor_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// SSEEvent represents a Server-Sent Event
type SSEEvent struct {
	Event string        `json:"event"`
	Data  EventResponse `json:"data"`
}

// StreamTokenResponse is returned by POST /events/token.
type StreamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}
