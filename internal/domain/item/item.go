package item

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the current status of a listed item
type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// Item represents a piece of furniture listed for bidding
type Item struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Image         string    `json:"image"`
	StartingPrice float64   `json:"starting_price"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsActive returns true if the item is still open for bidding
func (i *Item) IsActive() bool {
	return i.Status == StatusActive
}

// IsClosed returns true if the item has been closed by the admin
func (i *Item) IsClosed() bool {
	return i.Status == StatusClosed
}

// CanBid returns true if a bid can be placed on this item
func (i *Item) CanBid() bool {
	return i.Status == StatusActive
}

// Close marks the item as closed. Closing a closed item is a no-op.
func (i *Item) Close() {
	if i.Status == StatusClosed {
		return
	}
	i.Status = StatusClosed
	i.UpdatedAt = time.Now()
}

// Reopen marks the item as active again
func (i *Item) Reopen() {
	if i.Status == StatusActive {
		return
	}
	i.Status = StatusActive
	i.UpdatedAt = time.Now()
}
