package outbound

import (
	"context"

	"nofa-store-service/internal/domain/bid"
	"nofa-store-service/internal/domain/item"
	"nofa-store-service/internal/domain/shared"

	"github.com/google/uuid"
)

// ItemRepository defines the interface for item data operations
type ItemRepository interface {
	// Create creates a new item
	Create(ctx context.Context, item *item.Item) error

	// GetByID retrieves an item by ID
	GetByID(ctx context.Context, id uuid.UUID) (*item.Item, error)

	// List retrieves items ordered by created timestamp descending.
	// When activeOnly is true, closed items are excluded.
	List(ctx context.Context, activeOnly bool) ([]*item.Item, error)

	// Update updates an item's listing fields and status
	Update(ctx context.Context, item *item.Item) error

	// SetStatus updates only the item status; setting the current
	// status again is a no-op
	SetStatus(ctx context.Context, id uuid.UUID, status item.Status) error
}

// BidRepository defines the interface for bid data operations
type BidRepository interface {
	// Place appends a bid after re-validating, inside one transaction
	// holding the item row, that the item is active and the amount
	// still beats the highest accepted bid (or the starting price).
	Place(ctx context.Context, bid *bid.Bid) error

	// GetByID retrieves a bid by ID
	GetByID(ctx context.Context, id uuid.UUID) (*bid.Bid, error)

	// GetByItemID retrieves all bids for an item, highest amount
	// first, earliest first among equal amounts
	GetByItemID(ctx context.Context, itemID uuid.UUID) ([]*bid.Bid, error)

	// GetHighestBid retrieves the highest bid for an item, or
	// shared.ErrNoBidsFound when the item has no bids yet
	GetHighestBid(ctx context.Context, itemID uuid.UUID) (*bid.Bid, error)

	// HighestAmounts returns the highest bid amount per item for the
	// given items; items without bids are absent from the map
	HighestAmounts(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]float64, error)
}

// ImageRepository defines the interface for item photo operations
type ImageRepository interface {
	// Add attaches a photo to an item
	Add(ctx context.Context, image *shared.ItemImage) error

	// GetByID retrieves a photo by ID
	GetByID(ctx context.Context, id uuid.UUID) (*shared.ItemImage, error)

	// ListByItemID retrieves an item's photos in display order
	ListByItemID(ctx context.Context, itemID uuid.UUID) ([]*shared.ItemImage, error)

	// Delete removes a photo record
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByItemIDs returns the number of photos per item
	CountByItemIDs(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]int, error)
}
