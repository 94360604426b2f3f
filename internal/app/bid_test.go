package app

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"nofa-store-service/internal/domain/item"
	"nofa-store-service/internal/domain/shared"
	"nofa-store-service/internal/ports/inbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBidFixture(t *testing.T) (*BidService, *ItemService, *fakeItemRepo, *fakeBidRepo, *fakeNotifier) {
	t.Helper()

	itemRepo := newFakeItemRepo()
	bidRepo := newFakeBidRepo(itemRepo)
	imageRepo := newFakeImageRepo()
	notifier := &fakeNotifier{}

	itemService := NewItemService(ItemServiceParams{
		ItemRepo:  itemRepo,
		BidRepo:   bidRepo,
		ImageRepo: imageRepo,
		Logger:    zerolog.Nop(),
	})
	bidService := NewBidService(BidServiceParams{
		BidRepo:  bidRepo,
		ItemRepo: itemRepo,
		Notifier: notifier,
		Logger:   zerolog.Nop(),
	})

	return bidService, itemService, itemRepo, bidRepo, notifier
}

func listItem(t *testing.T, itemService *ItemService, startingPrice float64) *item.Item {
	t.Helper()
	it, err := itemService.CreateItem(context.Background(), inbound.CreateItemRequest{
		Name:          "Oak dresser",
		Description:   "Restored 1960s oak dresser",
		StartingPrice: startingPrice,
	})
	require.NoError(t, err)
	return it
}

func placeBid(svc *BidService, itemID uuid.UUID, amount float64) error {
	_, err := svc.PlaceBid(context.Background(), inbound.PlaceBidRequest{
		ItemID:      itemID,
		BidderName:  "Jo",
		BidderEmail: "jo@example.com",
		Amount:      amount,
	})
	return err
}

func TestPlaceBidUnknownItem(t *testing.T) {
	bidService, _, _, bidRepo, _ := newBidFixture(t)

	err := placeBid(bidService, uuid.New(), 50)
	assert.ErrorIs(t, err, shared.ErrItemNotFound)
	assert.Equal(t, 0, bidRepo.count())
}

func TestPlaceBidOnClosedItem(t *testing.T) {
	bidService, itemService, _, bidRepo, _ := newBidFixture(t)
	it := listItem(t, itemService, 100)

	require.NoError(t, itemService.CloseItem(context.Background(), it.ID))

	// Rejected regardless of amount
	for _, amount := range []float64{50, 150, 1_000_000} {
		err := placeBid(bidService, it.ID, amount)
		assert.ErrorIs(t, err, shared.ErrItemClosed)
	}
	assert.Equal(t, 0, bidRepo.count())
}

func TestPlaceBidValidation(t *testing.T) {
	bidService, itemService, _, bidRepo, _ := newBidFixture(t)
	it := listItem(t, itemService, 100)

	_, err := bidService.PlaceBid(context.Background(), inbound.PlaceBidRequest{
		ItemID: it.ID, BidderName: "", BidderEmail: "jo@example.com", Amount: 150,
	})
	assert.ErrorIs(t, err, shared.ErrBidderNameRequired)

	_, err = bidService.PlaceBid(context.Background(), inbound.PlaceBidRequest{
		ItemID: it.ID, BidderName: "Jo", BidderEmail: "", Amount: 150,
	})
	assert.ErrorIs(t, err, shared.ErrBidderEmailRequired)

	_, err = bidService.PlaceBid(context.Background(), inbound.PlaceBidRequest{
		ItemID: it.ID, BidderName: "Jo", BidderEmail: "jo@example.com", Amount: -5,
	})
	assert.ErrorIs(t, err, shared.ErrBidAmountInvalid)

	assert.Equal(t, 0, bidRepo.count())
}

func TestHighestBidNoneWithoutBids(t *testing.T) {
	bidService, itemService, _, _, _ := newBidFixture(t)
	it := listItem(t, itemService, 100)

	_, err := bidService.GetHighestBid(context.Background(), it.ID)
	assert.ErrorIs(t, err, shared.ErrNoBidsFound)

	// Minimum acceptable next bid strictly exceeds the starting price
	err = placeBid(bidService, it.ID, 100)
	assert.ErrorIs(t, err, shared.ErrBidAmountBelowStarting)

	err = placeBid(bidService, it.ID, 100.01)
	assert.NoError(t, err)
}

func TestBidScenario(t *testing.T) {
	// Item at 100: bid 100 rejected, 150 accepted, 120 rejected, 200 accepted
	bidService, itemService, _, bidRepo, _ := newBidFixture(t)
	it := listItem(t, itemService, 100)
	ctx := context.Background()

	err := placeBid(bidService, it.ID, 100)
	assert.ErrorIs(t, err, shared.ErrBidAmountBelowStarting)

	require.NoError(t, placeBid(bidService, it.ID, 150))
	highest, err := bidService.GetHighestBid(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, highest.Amount)

	err = placeBid(bidService, it.ID, 120)
	assert.ErrorIs(t, err, shared.ErrBidAmountTooLow)
	assert.Equal(t, 1, bidRepo.count())

	require.NoError(t, placeBid(bidService, it.ID, 200))
	highest, err = bidService.GetHighestBid(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 200.0, highest.Amount)
}

func TestAcceptedBidsStrictlyIncreasing(t *testing.T) {
	bidService, itemService, _, bidRepo, _ := newBidFixture(t)
	it := listItem(t, itemService, 10)

	amounts := []float64{15, 15, 20, 18, 20, 25.5, 25.5, 30}
	var accepted []float64
	for _, amount := range amounts {
		if err := placeBid(bidService, it.ID, amount); err == nil {
			accepted = append(accepted, amount)
		}
	}

	assert.Equal(t, []float64{15, 20, 25.5, 30}, accepted)
	assert.Equal(t, len(accepted), bidRepo.count())
	for i := 1; i < len(accepted); i++ {
		assert.Greater(t, accepted[i], accepted[i-1])
	}
}

func TestConcurrentBidsSerialize(t *testing.T) {
	// Bids fired concurrently at one item must never both validate
	// against the same stale highest value: the accepted ledger forms
	// a strictly increasing chain regardless of interleaving.
	bidService, itemService, _, bidRepo, _ := newBidFixture(t)
	it := listItem(t, itemService, 100)

	const bidders = 50
	var wg sync.WaitGroup
	var acceptedCount int64
	for i := 0; i < bidders; i++ {
		wg.Add(1)
		go func(amount float64) {
			defer wg.Done()
			err := placeBid(bidService, it.ID, amount)
			if err == nil {
				atomic.AddInt64(&acceptedCount, 1)
			} else {
				assert.ErrorIs(t, err, shared.ErrBidAmountTooLow)
			}
		}(float64(101 + i))
	}
	wg.Wait()

	accepted := bidRepo.amounts()
	require.Equal(t, int(acceptedCount), len(accepted))
	require.NotEmpty(t, accepted)
	for i := 1; i < len(accepted); i++ {
		assert.Greater(t, accepted[i], accepted[i-1])
	}

	// The final highest bid is the last accepted one
	highest, err := bidService.GetHighestBid(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Equal(t, accepted[len(accepted)-1], highest.Amount)
}

func TestEqualAmountsRejected(t *testing.T) {
	bidService, itemService, _, _, _ := newBidFixture(t)
	it := listItem(t, itemService, 100)

	require.NoError(t, placeBid(bidService, it.ID, 150))
	err := placeBid(bidService, it.ID, 150)
	assert.ErrorIs(t, err, shared.ErrBidAmountTooLow)
}

func TestNotifierFailureDoesNotAffectBid(t *testing.T) {
	bidService, itemService, _, bidRepo, notifier := newBidFixture(t)
	it := listItem(t, itemService, 100)
	notifier.fail = true

	placed, err := bidService.PlaceBid(context.Background(), inbound.PlaceBidRequest{
		ItemID:      it.ID,
		BidderName:  "Jo",
		BidderEmail: "jo@example.com",
		Amount:      150,
	})
	require.NoError(t, err)
	require.NotNil(t, placed)

	// The bid was recorded and the notifier was invoked exactly once
	assert.Equal(t, 1, bidRepo.count())
	assert.Equal(t, []uuid.UUID{placed.ID}, notifier.notified)

	highest, err := bidService.GetHighestBid(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, highest.ID)
}

func TestNotifierInvokedOnAcceptedBidsOnly(t *testing.T) {
	bidService, itemService, _, _, notifier := newBidFixture(t)
	it := listItem(t, itemService, 100)

	_ = placeBid(bidService, it.ID, 50) // rejected
	require.NoError(t, placeBid(bidService, it.ID, 150))
	_ = placeBid(bidService, it.ID, 150) // rejected, equal

	assert.Len(t, notifier.notified, 1)
}

func TestGetBidsHighestFirst(t *testing.T) {
	bidService, itemService, _, _, _ := newBidFixture(t)
	it := listItem(t, itemService, 10)

	for _, amount := range []float64{20, 30, 40} {
		require.NoError(t, placeBid(bidService, it.ID, amount))
	}

	bids, err := bidService.GetBids(context.Background(), it.ID)
	require.NoError(t, err)
	require.Len(t, bids, 3)
	assert.Equal(t, 40.0, bids[0].Amount)
	assert.Equal(t, 30.0, bids[1].Amount)
	assert.Equal(t, 20.0, bids[2].Amount)
}
