package shared

import (
	"time"

	"github.com/google/uuid"
)

// ItemImage represents one photo attached to a listed item.
// The image with the lowest (sort_order, created_at) is the item's cover.
type ItemImage struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"item_id"`
	Filename  string    `json:"filename"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}
