package events

import (
	"time"

	"github.com/tenderdesk/procurement-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventItemSubmitted     EventType = "item_submitted"
	EventItemStatusChanged EventType = "item_status_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role   domain.Role `json:"role"`
	UserID *int64      `json:"user_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ItemID    int64       `json:"item_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ItemSubmittedPayload payload.
type ItemSubmittedPayload struct {
	OwnerID  int64     `json:"owner_id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Total    int64     `json:"total"`
	DueDate  time.Time `json:"due_date"`
}

// ItemStatusChangedPayload payload.
type ItemStatusChangedPayload struct {
	OwnerID   int64             `json:"owner_id"`
	OldStatus domain.ItemStatus `json:"old_status"`
	NewStatus domain.ItemStatus `json:"new_status"`
}
