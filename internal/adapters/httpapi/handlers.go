package httpapi

import (
	"net/http"

	"nofa-store-service/internal/domain/bid"
	"nofa-store-service/internal/domain/shared"
	"nofa-store-service/internal/ports/inbound"
	"nofa-store-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handler exposes the shop over JSON endpoints
type Handler struct {
	itemService inbound.ItemService
	bidService  inbound.BidService
	notifier    outbound.Notifier
	logger      zerolog.Logger
}

type HandlerParams struct {
	ItemService inbound.ItemService
	BidService  inbound.BidService
	Notifier    outbound.Notifier
	Logger      zerolog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		itemService: params.ItemService,
		bidService:  params.BidService,
		notifier:    params.Notifier,
		logger:      params.Logger.With().Str("component", "http_handler").Logger(),
	}
}

type placeBidRequest struct {
	BidderName  string  `json:"bidder_name"`
	BidderEmail string  `json:"bidder_email"`
	Amount      float64 `json:"amount"`
}

type adminItemView struct {
	Item *inbound.ItemSummary `json:"item"`
	Bids []*bid.Bid           `json:"bids"`
}

// ListItems handles GET /items?filter=active|all
func (h *Handler) ListItems(c echo.Context) error {
	filter := inbound.FilterActive
	if c.QueryParam("filter") == string(inbound.FilterAll) {
		filter = inbound.FilterAll
	}

	summaries, err := h.itemService.ListItems(c.Request().Context(), filter)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, summaries)
}

// GetItem handles GET /items/:id
func (h *Handler) GetItem(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.respondError(c, shared.ErrItemNotFound)
	}

	detail, err := h.itemService.GetItemDetail(c.Request().Context(), itemID)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, detail)
}

// PlaceBid handles POST /items/:id/bids
func (h *Handler) PlaceBid(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.respondError(c, shared.ErrItemNotFound)
	}

	var req placeBidRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to bind bid request")
		return h.respondError(c, shared.ErrInvalidRequest)
	}

	placed, err := h.bidService.PlaceBid(c.Request().Context(), inbound.PlaceBidRequest{
		ItemID:      itemID,
		BidderName:  req.BidderName,
		BidderEmail: req.BidderEmail,
		Amount:      req.Amount,
	})
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, placed)
}

// AdminListItems handles GET /admin/items: every item with its bids
func (h *Handler) AdminListItems(c echo.Context) error {
	ctx := c.Request().Context()

	summaries, err := h.itemService.ListItems(ctx, inbound.FilterAll)
	if err != nil {
		return h.respondError(c, err)
	}

	views := make([]*adminItemView, 0, len(summaries))
	for _, summary := range summaries {
		bids, err := h.bidService.GetBids(ctx, summary.Item.ID)
		if err != nil {
			return h.respondError(c, err)
		}
		views = append(views, &adminItemView{Item: summary, Bids: bids})
	}

	return c.JSON(http.StatusOK, views)
}

// CreateItem handles POST /admin/items
func (h *Handler) CreateItem(c echo.Context) error {
	var req inbound.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to bind create item request")
		return h.respondError(c, shared.ErrInvalidRequest)
	}

	created, err := h.itemService.CreateItem(c.Request().Context(), req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}

// CloseItem handles POST /admin/items/:id/close
func (h *Handler) CloseItem(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.respondError(c, shared.ErrItemNotFound)
	}

	if err := h.itemService.CloseItem(c.Request().Context(), itemID); err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "closed"})
}

// UpdateItem handles PUT /admin/items/:id
func (h *Handler) UpdateItem(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.respondError(c, shared.ErrItemNotFound)
	}

	var req inbound.UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to bind update item request")
		return h.respondError(c, shared.ErrInvalidRequest)
	}
	req.ItemID = itemID

	updated, err := h.itemService.UpdateItem(c.Request().Context(), req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, updated)
}

type addImageRequest struct {
	Filename string `json:"filename"`
}

// AddItemImage handles POST /admin/items/:id/images
func (h *Handler) AddItemImage(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.respondError(c, shared.ErrItemNotFound)
	}

	var req addImageRequest
	if err := c.Bind(&req); err != nil {
		return h.respondError(c, shared.ErrInvalidRequest)
	}

	image, err := h.itemService.AddItemImage(c.Request().Context(), itemID, req.Filename)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, image)
}

// RemoveItemImage handles DELETE /admin/images/:id
func (h *Handler) RemoveItemImage(c echo.Context) error {
	imageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.respondError(c, shared.ErrImageNotFound)
	}

	if err := h.itemService.RemoveItemImage(c.Request().Context(), imageID); err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

// TestEmail handles GET /admin/test-email: reports the mail settings
// snapshot and the outcome of one real delivery attempt
func (h *Handler) TestEmail(c echo.Context) error {
	settings := h.notifier.Settings()

	response := map[string]interface{}{
		"settings":   settings,
		"configured": settings.Complete(),
	}

	if err := h.notifier.SendTest(c.Request().Context()); err != nil {
		response["sent"] = false
		response["error"] = err.Error()
		return c.JSON(http.StatusInternalServerError, response)
	}

	response["sent"] = true
	return c.JSON(http.StatusOK, response)
}

// Health handles GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "nofa-store"})
}

func (h *Handler) respondError(c echo.Context, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", c.Path()).Msg("Unexpected error")
	}
	return c.JSON(status, errorBody(err, status))
}
