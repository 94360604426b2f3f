package app

import (
	"context"
	"strings"
	"time"

	"nofa-store-service/internal/domain/bid"
	"nofa-store-service/internal/domain/shared"
	"nofa-store-service/internal/ports/inbound"
	"nofa-store-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BidService implements the bid ledger use cases
type BidService struct {
	bidRepo  outbound.BidRepository
	itemRepo outbound.ItemRepository
	notifier outbound.Notifier
	logger   zerolog.Logger
}

type BidServiceParams struct {
	BidRepo  outbound.BidRepository
	ItemRepo outbound.ItemRepository
	Notifier outbound.Notifier
	Logger   zerolog.Logger
}

// NewBidService creates a new bid service
func NewBidService(params BidServiceParams) *BidService {
	return &BidService{
		bidRepo:  params.BidRepo,
		itemRepo: params.ItemRepo,
		notifier: params.Notifier,
		logger:   params.Logger.With().Str("component", "bid_service").Logger(),
	}
}

// PlaceBid places a new bid on an item. The bid is accepted only if the
// item exists, is still active, and the amount strictly exceeds the
// current highest accepted bid (starting price when there are none).
// Admin notification is best-effort and never affects the outcome.
func (s *BidService) PlaceBid(ctx context.Context, req inbound.PlaceBidRequest) (*bid.Bid, error) {
	s.logger.Info().
		Str("item_id", req.ItemID.String()).
		Str("bidder", req.BidderEmail).
		Float64("amount", req.Amount).
		Msg("Attempting to place bid")

	// Validate item exists and is still open for bidding
	it, err := s.itemRepo.GetByID(ctx, req.ItemID)
	if err != nil {
		s.logger.Warn().Err(err).Str("item_id", req.ItemID.String()).Msg("Item not found")
		return nil, err
	}

	if !it.CanBid() {
		s.logger.Warn().Str("item_id", req.ItemID.String()).Msg("Item closed, bid rejected")
		return nil, shared.ErrItemClosed
	}

	// Validate bidder contact
	if strings.TrimSpace(req.BidderName) == "" {
		return nil, shared.ErrBidderNameRequired
	}
	if strings.TrimSpace(req.BidderEmail) == "" {
		return nil, shared.ErrBidderEmailRequired
	}

	// Validate bid amount
	if req.Amount <= 0 {
		s.logger.Warn().Float64("amount", req.Amount).Msg("Invalid bid amount (must be > 0)")
		return nil, shared.ErrBidAmountInvalid
	}

	// Get current highest bid
	highestBid, err := s.bidRepo.GetHighestBid(ctx, req.ItemID)
	if err != nil && err != shared.ErrNoBidsFound {
		s.logger.Error().Err(err).Str("item_id", req.ItemID.String()).Msg("Failed to get highest bid")
		return nil, err
	}

	// Validate bid is strictly higher than current highest bid
	if highestBid != nil && req.Amount <= highestBid.Amount {
		s.logger.Warn().
			Str("item_id", req.ItemID.String()).
			Float64("current_highest_bid", highestBid.Amount).
			Float64("new_bid_amount", req.Amount).
			Msg("Bid amount too low (must be higher than current highest bid)")
		return nil, shared.ErrBidAmountTooLow
	}

	// Validate bid is higher than starting price if no previous bids
	if highestBid == nil && req.Amount <= it.StartingPrice {
		s.logger.Warn().
			Str("item_id", req.ItemID.String()).
			Float64("starting_price", it.StartingPrice).
			Float64("new_bid_amount", req.Amount).
			Msg("Bid amount below starting price")
		return nil, shared.ErrBidAmountBelowStarting
	}

	newBid := &bid.Bid{
		ID:          uuid.New(),
		ItemID:      req.ItemID,
		BidderName:  strings.TrimSpace(req.BidderName),
		BidderEmail: strings.TrimSpace(req.BidderEmail),
		Amount:      req.Amount,
		CreatedAt:   time.Now(),
	}

	// The repository re-checks status and highest bid while holding the
	// item row, so two concurrent bids can never both pass the validation
	// above against the same stale highest value.
	if err := s.bidRepo.Place(ctx, newBid); err != nil {
		s.logger.Error().Err(err).Str("bid_id", newBid.ID.String()).Msg("Failed to place bid")
		return nil, err
	}

	// Notify the admin after the bid has committed. Failure is logged
	// inside the notifier and must never reach the bidder.
	if s.notifier != nil {
		if err := s.notifier.NotifyNewBid(ctx, it, newBid); err != nil {
			s.logger.Error().Err(err).Str("bid_id", newBid.ID.String()).Msg("Failed to hand bid to notifier")
		}
	}

	s.logger.Info().
		Str("bid_id", newBid.ID.String()).
		Str("item_id", newBid.ItemID.String()).
		Str("bidder", newBid.BidderEmail).
		Float64("amount", newBid.Amount).
		Msg("Bid placed")

	return newBid, nil
}

// GetBids retrieves all bids for an item, highest first
func (s *BidService) GetBids(ctx context.Context, itemID uuid.UUID) ([]*bid.Bid, error) {
	return s.bidRepo.GetByItemID(ctx, itemID)
}

// GetHighestBid retrieves the highest bid for an item
func (s *BidService) GetHighestBid(ctx context.Context, itemID uuid.UUID) (*bid.Bid, error) {
	return s.bidRepo.GetHighestBid(ctx, itemID)
}
