package bid

import (
	"time"

	"github.com/google/uuid"
)

// Bid represents a monetary offer against a listed item.
// Bids are append-only: once accepted they are never mutated or deleted.
type Bid struct {
	ID          uuid.UUID `json:"id"`
	ItemID      uuid.UUID `json:"item_id"`
	BidderName  string    `json:"bidder_name"`
	BidderEmail string    `json:"bidder_email"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsValid returns true if the bid amount is valid (greater than 0)
func (b *Bid) IsValid() bool {
	return b.Amount > 0
}

// Beats returns true if the bid strictly exceeds the given amount.
// Equal amounts never beat each other.
func (b *Bid) Beats(amount float64) bool {
	return b.Amount > amount
}
