package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TicketCreated       = "ticket.created"
	TicketStatusChanged = "ticket.status_changed"
)

func NewTicketCreated(ticketID, actorID string) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      TicketCreated,
		Timestamp: time.Now(),
		Data: map[string]any{
			"ticket_id": ticketID,
			"actor_id":  actorID,
		},
	}
}

func NewTicketStatusChanged(ticketID, actorID, oldStatus, newStatus string) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      TicketStatusChanged,
		Timestamp: time.Now(),
		Data: map[string]any{
			"ticket_id":  ticketID,
			"actor_id":   actorID,
			"old_status": oldStatus,
			"new_status": newStatus,
		},
	}
}
