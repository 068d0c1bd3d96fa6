package notification

import (
	"time"
)

// EventType names a holiday workflow event on the stream.
type EventType string

const (
	TypeHolidayRequested       EventType = "holiday_requested"
	TypeHolidayEditRequested   EventType = "holiday_edit_requested"
	TypeHolidayDeleteRequested EventType = "holiday_delete_requested"
	TypeHolidayApproved        EventType = "holiday_approved"
	TypeHolidayDeclined        EventType = "holiday_declined"
	TypeHolidayUpdated         EventType = "holiday_updated"
	TypeHolidayDeleted         EventType = "holiday_deleted"
)

// Event is one delivery to one recipient.
type Event struct {
	ID          string
	CompanyID   string
	RecipientID string
	ActorID     string
	Type        EventType
	HolidayID   string
	Message     string
	CreatedAt   time.Time
}
