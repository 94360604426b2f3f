package app

import (
	"context"
	"strings"
	"time"

	"nofa-store-service/internal/domain/item"
	"nofa-store-service/internal/domain/shared"
	"nofa-store-service/internal/ports/inbound"
	"nofa-store-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ItemService implements the item management use cases
type ItemService struct {
	itemRepo  outbound.ItemRepository
	bidRepo   outbound.BidRepository
	imageRepo outbound.ImageRepository
	logger    zerolog.Logger
}

type ItemServiceParams struct {
	ItemRepo  outbound.ItemRepository
	BidRepo   outbound.BidRepository
	ImageRepo outbound.ImageRepository
	Logger    zerolog.Logger
}

// NewItemService creates a new item service
func NewItemService(params ItemServiceParams) *ItemService {
	return &ItemService{
		itemRepo:  params.ItemRepo,
		bidRepo:   params.BidRepo,
		imageRepo: params.ImageRepo,
		logger:    params.Logger.With().Str("component", "item_service").Logger(),
	}
}

// CreateItem lists a new item for bidding
func (s *ItemService) CreateItem(ctx context.Context, req inbound.CreateItemRequest) (*item.Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		s.logger.Warn().Msg("Rejected item without a name")
		return nil, shared.ErrItemNameRequired
	}
	if req.StartingPrice <= 0 {
		s.logger.Warn().Float64("starting_price", req.StartingPrice).Msg("Rejected item with invalid starting price")
		return nil, shared.ErrInvalidStartingPrice
	}

	now := time.Now()
	newItem := &item.Item{
		ID:            uuid.New(),
		Name:          name,
		Description:   strings.TrimSpace(req.Description),
		Image:         req.Image,
		StartingPrice: req.StartingPrice,
		Status:        item.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// The first photo becomes the cover when no explicit cover was given
	images := req.Images
	if req.Image != "" {
		images = append([]string{req.Image}, images...)
	} else if len(images) > 0 {
		newItem.Image = images[0]
	}

	if err := s.itemRepo.Create(ctx, newItem); err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("Failed to create item")
		return nil, err
	}

	for idx, filename := range images {
		img := &shared.ItemImage{
			ID:        uuid.New(),
			ItemID:    newItem.ID,
			Filename:  filename,
			SortOrder: idx,
			CreatedAt: now,
		}
		if err := s.imageRepo.Add(ctx, img); err != nil {
			s.logger.Error().Err(err).Str("item_id", newItem.ID.String()).Str("filename", filename).Msg("Failed to attach image")
			return nil, err
		}
	}

	s.logger.Info().
		Str("item_id", newItem.ID.String()).
		Str("name", newItem.Name).
		Float64("starting_price", newItem.StartingPrice).
		Int("images", len(images)).
		Msg("Item listed")

	return newItem, nil
}

// GetItem retrieves an item by ID
func (s *ItemService) GetItem(ctx context.Context, itemID uuid.UUID) (*item.Item, error) {
	return s.itemRepo.GetByID(ctx, itemID)
}

// GetItemDetail retrieves an item together with its bids and images
func (s *ItemService) GetItemDetail(ctx context.Context, itemID uuid.UUID) (*inbound.ItemDetail, error) {
	it, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	bids, err := s.bidRepo.GetByItemID(ctx, itemID)
	if err != nil {
		s.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("Failed to load bids for item")
		return nil, err
	}

	images, err := s.imageRepo.ListByItemID(ctx, itemID)
	if err != nil {
		s.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("Failed to load images for item")
		return nil, err
	}

	detail := &inbound.ItemDetail{
		Item:   it,
		Bids:   bids,
		Images: images,
	}
	if len(bids) > 0 {
		// Bids come back highest first
		highest := bids[0].Amount
		detail.HighestBid = &highest
	}

	return detail, nil
}

// ListItems retrieves listing summaries, newest first
func (s *ItemService) ListItems(ctx context.Context, filter inbound.ItemFilter) ([]*inbound.ItemSummary, error) {
	items, err := s.itemRepo.List(ctx, filter != inbound.FilterAll)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list items")
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}

	highest, err := s.bidRepo.HighestAmounts(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load highest bids")
		return nil, err
	}

	counts, err := s.imageRepo.CountByItemIDs(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to count item images")
		return nil, err
	}

	summaries := make([]*inbound.ItemSummary, 0, len(items))
	for _, it := range items {
		summary := &inbound.ItemSummary{
			Item:       it,
			ImageCount: counts[it.ID],
		}
		if amount, ok := highest[it.ID]; ok {
			amount := amount
			summary.HighestBid = &amount
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// CloseItem closes an item for bidding. Closing a closed item is a no-op.
func (s *ItemService) CloseItem(ctx context.Context, itemID uuid.UUID) error {
	it, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}

	if it.IsClosed() {
		s.logger.Info().Str("item_id", itemID.String()).Msg("Item already closed")
		return nil
	}

	if err := s.itemRepo.SetStatus(ctx, itemID, item.StatusClosed); err != nil {
		s.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("Failed to close item")
		return err
	}

	s.logger.Info().Str("item_id", itemID.String()).Str("name", it.Name).Msg("Item closed")
	return nil
}

// UpdateItem updates an item's listing fields
func (s *ItemService) UpdateItem(ctx context.Context, req inbound.UpdateItemRequest) (*item.Item, error) {
	it, err := s.itemRepo.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, shared.ErrItemNameRequired
	}
	if req.StartingPrice <= 0 {
		return nil, shared.ErrInvalidStartingPrice
	}

	it.Name = name
	it.Description = strings.TrimSpace(req.Description)
	it.StartingPrice = req.StartingPrice
	if req.Closed {
		it.Close()
	} else {
		it.Reopen()
	}
	it.UpdatedAt = time.Now()

	if err := s.itemRepo.Update(ctx, it); err != nil {
		s.logger.Error().Err(err).Str("item_id", it.ID.String()).Msg("Failed to update item")
		return nil, err
	}

	s.logger.Info().Str("item_id", it.ID.String()).Str("name", it.Name).Msg("Item updated")
	return it, nil
}

// AddItemImage attaches a photo to an item and refreshes its cover
func (s *ItemService) AddItemImage(ctx context.Context, itemID uuid.UUID, filename string) (*shared.ItemImage, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, shared.ErrImageFilenameRequired
	}

	it, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	existing, err := s.imageRepo.ListByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	nextOrder := 0
	for _, img := range existing {
		if img.SortOrder >= nextOrder {
			nextOrder = img.SortOrder + 1
		}
	}

	img := &shared.ItemImage{
		ID:        uuid.New(),
		ItemID:    itemID,
		Filename:  filename,
		SortOrder: nextOrder,
		CreatedAt: time.Now(),
	}
	if err := s.imageRepo.Add(ctx, img); err != nil {
		s.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("Failed to add image")
		return nil, err
	}

	if err := s.refreshCover(ctx, it); err != nil {
		return nil, err
	}

	s.logger.Info().Str("item_id", itemID.String()).Str("filename", filename).Msg("Image added")
	return img, nil
}

// RemoveItemImage detaches a photo and re-derives the item's cover
func (s *ItemService) RemoveItemImage(ctx context.Context, imageID uuid.UUID) error {
	img, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}

	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		s.logger.Error().Err(err).Str("image_id", imageID.String()).Msg("Failed to delete image")
		return err
	}

	it, err := s.itemRepo.GetByID(ctx, img.ItemID)
	if err != nil {
		return err
	}
	if err := s.refreshCover(ctx, it); err != nil {
		return err
	}

	s.logger.Info().Str("image_id", imageID.String()).Str("item_id", img.ItemID.String()).Msg("Image removed")
	return nil
}

// refreshCover mirrors the first remaining photo onto Item.Image
func (s *ItemService) refreshCover(ctx context.Context, it *item.Item) error {
	images, err := s.imageRepo.ListByItemID(ctx, it.ID)
	if err != nil {
		return err
	}

	cover := ""
	if len(images) > 0 {
		cover = images[0].Filename
	}
	if cover == it.Image {
		return nil
	}

	it.Image = cover
	it.UpdatedAt = time.Now()
	return s.itemRepo.Update(ctx, it)
}
