package inbound

import (
	"context"

	"nofa-store-service/internal/domain/bid"
	"nofa-store-service/internal/domain/item"
	"nofa-store-service/internal/domain/shared"

	"github.com/google/uuid"
)

// ItemFilter selects which listings a query returns
type ItemFilter string

const (
	FilterActive ItemFilter = "active"
	FilterAll    ItemFilter = "all"
)

// ItemSummary is the listing view of an item: the item itself plus
// the derived highest bid (nil when no bids yet) and its photo count.
type ItemSummary struct {
	Item       *item.Item `json:"item"`
	HighestBid *float64   `json:"highest_bid,omitempty"`
	ImageCount int        `json:"image_count"`
}

// ItemDetail is the single-item view: item, its full bid history
// (highest first), the derived highest amount and all photos.
type ItemDetail struct {
	Item       *item.Item          `json:"item"`
	Bids       []*bid.Bid          `json:"bids"`
	HighestBid *float64            `json:"highest_bid,omitempty"`
	Images     []*shared.ItemImage `json:"images"`
}

// ItemService defines the interface for item management operations
type ItemService interface {
	// CreateItem lists a new item for bidding
	CreateItem(ctx context.Context, req CreateItemRequest) (*item.Item, error)

	// GetItem retrieves an item by ID
	GetItem(ctx context.Context, itemID uuid.UUID) (*item.Item, error)

	// GetItemDetail retrieves an item with its bids and images
	GetItemDetail(ctx context.Context, itemID uuid.UUID) (*ItemDetail, error)

	// ListItems retrieves listing summaries, newest first
	ListItems(ctx context.Context, filter ItemFilter) ([]*ItemSummary, error)

	// CloseItem closes an item for bidding; closing twice is a no-op
	CloseItem(ctx context.Context, itemID uuid.UUID) error

	// UpdateItem updates an item's listing fields
	UpdateItem(ctx context.Context, req UpdateItemRequest) (*item.Item, error)

	// AddItemImage attaches a photo to an item
	AddItemImage(ctx context.Context, itemID uuid.UUID, filename string) (*shared.ItemImage, error)

	// RemoveItemImage detaches a photo from its item
	RemoveItemImage(ctx context.Context, imageID uuid.UUID) error
}

// BidService defines the interface for bid operations
type BidService interface {
	// PlaceBid places a new bid on an item
	PlaceBid(ctx context.Context, req PlaceBidRequest) (*bid.Bid, error)

	// GetBids retrieves all bids for an item, highest first
	GetBids(ctx context.Context, itemID uuid.UUID) ([]*bid.Bid, error)

	// GetHighestBid retrieves the highest bid for an item
	GetHighestBid(ctx context.Context, itemID uuid.UUID) (*bid.Bid, error)
}

// request to create an item
type CreateItemRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Image         string   `json:"image"`
	StartingPrice float64  `json:"starting_price"`
	Images        []string `json:"images,omitempty"`
}

// request to update an item
type UpdateItemRequest struct {
	ItemID        uuid.UUID `json:"item_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	StartingPrice float64   `json:"starting_price"`
	Closed        bool      `json:"closed"`
}

// request to place a bid
type PlaceBidRequest struct {
	ItemID      uuid.UUID `json:"item_id"`
	BidderName  string    `json:"bidder_name"`
	BidderEmail string    `json:"bidder_email"`
	Amount      float64   `json:"amount"`
}
