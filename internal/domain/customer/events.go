package customer

import "time"

const (
	EventSaved   = "customer.saved"
	EventDeleted = "customer.deleted"
)

// SavedEvent is emitted after a customer has been stored.
type SavedEvent struct {
	CustomerID string
	Name       string
	OccurredAt time.Time
}

func (SavedEvent) EventName() string { return EventSaved }

func NewSavedEvent(c Customer) SavedEvent {
	return SavedEvent{
		CustomerID: c.ID,
		Name:       c.Name,
		OccurredAt: time.Now().UTC(),
	}
}

// DeletedEvent is emitted after a customer has been removed.
type DeletedEvent struct {
	CustomerID string
	Name       string
	OccurredAt time.Time
}

func (DeletedEvent) EventName() string { return EventDeleted }

func NewDeletedEvent(c Customer) DeletedEvent {
	return DeletedEvent{
		CustomerID: c.ID,
		Name:       c.Name,
		OccurredAt: time.Now().UTC(),
	}
}
