package app

import (
	"context"
	"sync"

	"nofa-store-service/internal/domain/bid"
	"nofa-store-service/internal/domain/item"
	"nofa-store-service/internal/domain/shared"

	"github.com/google/uuid"
)

// In-memory fakes behind the outbound ports. The bid fake reproduces the
// repository contract: Place re-validates status and highest bid under a
// lock before appending.

type fakeItemRepo struct {
	mu    sync.Mutex
	items []*item.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{}
}

func (r *fakeItemRepo) Create(ctx context.Context, it *item.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *it
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, shared.ErrItemNotFound
}

func (r *fakeItemRepo) List(ctx context.Context, activeOnly bool) ([]*item.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*item.Item
	// Newest first
	for i := len(r.items) - 1; i >= 0; i-- {
		it := r.items[i]
		if activeOnly && !it.IsActive() {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeItemRepo) Update(ctx context.Context, it *item.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.items {
		if existing.ID == it.ID {
			cp := *it
			r.items[i] = &cp
			return nil
		}
	}
	return shared.ErrItemNotFound
}

func (r *fakeItemRepo) SetStatus(ctx context.Context, id uuid.UUID, status item.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.ID == id {
			it.Status = status
			return nil
		}
	}
	return shared.ErrItemNotFound
}

type fakeBidRepo struct {
	mu    sync.Mutex
	items *fakeItemRepo
	bids  []*bid.Bid
}

func newFakeBidRepo(items *fakeItemRepo) *fakeBidRepo {
	return &fakeBidRepo{items: items}
}

func (r *fakeBidRepo) Place(ctx context.Context, newBid *bid.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, err := r.items.GetByID(ctx, newBid.ItemID)
	if err != nil {
		return err
	}
	if !it.CanBid() {
		return shared.ErrItemClosed
	}

	currentHigh := it.StartingPrice
	for _, b := range r.bids {
		if b.ItemID == newBid.ItemID && b.Amount > currentHigh {
			currentHigh = b.Amount
		}
	}
	if newBid.Amount <= currentHigh {
		return shared.ErrBidAmountTooLow
	}

	cp := *newBid
	r.bids = append(r.bids, &cp)
	return nil
}

func (r *fakeBidRepo) GetByID(ctx context.Context, id uuid.UUID) (*bid.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bids {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, shared.ErrNoBidsFound
}

func (r *fakeBidRepo) GetByItemID(ctx context.Context, itemID uuid.UUID) ([]*bid.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bid.Bid
	for _, b := range r.bids {
		if b.ItemID == itemID {
			cp := *b
			out = append(out, &cp)
		}
	}
	// Highest first
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Amount > out[i].Amount {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *fakeBidRepo) GetHighestBid(ctx context.Context, itemID uuid.UUID) (*bid.Bid, error) {
	bids, _ := r.GetByItemID(ctx, itemID)
	if len(bids) == 0 {
		return nil, shared.ErrNoBidsFound
	}
	return bids[0], nil
}

func (r *fakeBidRepo) HighestAmounts(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	out := make(map[uuid.UUID]float64)
	for _, id := range itemIDs {
		if b, err := r.GetHighestBid(ctx, id); err == nil {
			out[id] = b.Amount
		}
	}
	return out, nil
}

func (r *fakeBidRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bids)
}

// amounts returns accepted bid amounts in insertion order
func (r *fakeBidRepo) amounts() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, len(r.bids))
	for i, b := range r.bids {
		out[i] = b.Amount
	}
	return out
}

type fakeImageRepo struct {
	mu     sync.Mutex
	images []*shared.ItemImage
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{}
}

func (r *fakeImageRepo) Add(ctx context.Context, image *shared.ItemImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *image
	r.images = append(r.images, &cp)
	return nil
}

func (r *fakeImageRepo) GetByID(ctx context.Context, id uuid.UUID) (*shared.ItemImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, img := range r.images {
		if img.ID == id {
			cp := *img
			return &cp, nil
		}
	}
	return nil, shared.ErrImageNotFound
}

func (r *fakeImageRepo) ListByItemID(ctx context.Context, itemID uuid.UUID) ([]*shared.ItemImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*shared.ItemImage
	for _, img := range r.images {
		if img.ItemID == itemID {
			cp := *img
			out = append(out, &cp)
		}
	}
	// Display order
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].SortOrder < out[i].SortOrder {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *fakeImageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, img := range r.images {
		if img.ID == id {
			r.images = append(r.images[:i], r.images[i+1:]...)
			return nil
		}
	}
	return shared.ErrImageNotFound
}

func (r *fakeImageRepo) CountByItemIDs(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	out := make(map[uuid.UUID]int)
	for _, img := range r.images {
		if wanted[img.ItemID] {
			out[img.ItemID]++
		}
	}
	return out, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	fail     bool
	notified []uuid.UUID
}

func (n *fakeNotifier) NotifyNewBid(ctx context.Context, it *item.Item, b *bid.Bid) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notified = append(n.notified, b.ID)
	if n.fail {
		return shared.ErrMailerSendFailed
	}
	return nil
}

func (n *fakeNotifier) SendTest(ctx context.Context) error {
	if n.fail {
		return shared.ErrMailerSendFailed
	}
	return nil
}

func (n *fakeNotifier) Settings() shared.MailSettings {
	return shared.MailSettings{}
}
