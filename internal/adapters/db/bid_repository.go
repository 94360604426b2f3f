package db

import (
	"context"
	"database/sql"
	"fmt"

	"nofa-store-service/internal/domain/bid"
	"nofa-store-service/internal/domain/item"
	"nofa-store-service/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// BidRepository implements the bid repository interface
type BidRepository struct {
	conn *Connection
}

// NewBidRepository creates a new bid repository
func NewBidRepository(conn *Connection) *BidRepository {
	return &BidRepository{conn: conn}
}

/*
Place appends a bid while holding the item row.
 1. Lock the item row with SELECT ... FOR UPDATE
 2. Re-check the item is still active
 3. Re-check the amount beats the highest accepted bid (or the
    starting price when the item has none)
 4. Insert the bid

Concurrent bids on the same item serialize on the row lock, so two
bids can never both validate against the same stale highest value.
*/
func (r *BidRepository) Place(ctx context.Context, newBid *bid.Bid) error {
	return r.conn.ExecuteTransaction(ctx, func(tx *sql.Tx) error {
		itemQuery := `
			SELECT starting_price, status
			FROM items
			WHERE id = $1
			FOR UPDATE
		`

		var startingPrice float64
		var status string
		err := tx.QueryRowContext(ctx, itemQuery, newBid.ItemID).Scan(&startingPrice, &status)
		if err != nil {
			if err == sql.ErrNoRows {
				return shared.ErrItemNotFound
			}
			return fmt.Errorf("failed to lock item for bid: %w", err)
		}

		if status != string(item.StatusActive) {
			return shared.ErrItemClosed
		}

		highestQuery := `
			SELECT COALESCE(MAX(amount), $2)
			FROM bids
			WHERE item_id = $1
		`

		var currentHigh float64
		if err := tx.QueryRowContext(ctx, highestQuery, newBid.ItemID, startingPrice).Scan(&currentHigh); err != nil {
			return fmt.Errorf("failed to get current highest bid: %w", err)
		}

		if newBid.Amount <= currentHigh {
			return shared.ErrBidAmountTooLow
		}

		insertQuery := `
			INSERT INTO bids (id, item_id, bidder_name, bidder_email, amount, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`

		_, err = tx.ExecContext(ctx, insertQuery,
			newBid.ID,
			newBid.ItemID,
			newBid.BidderName,
			newBid.BidderEmail,
			newBid.Amount,
			newBid.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bid: %w", err)
		}

		return nil
	})
}

// GetByID retrieves a bid by ID
func (r *BidRepository) GetByID(ctx context.Context, id uuid.UUID) (*bid.Bid, error) {
	query := `
		SELECT id, item_id, bidder_name, bidder_email, amount, created_at
		FROM bids
		WHERE id = $1
	`

	var b bid.Bid
	err := r.conn.GetDB().QueryRowContext(ctx, query, id).Scan(
		&b.ID,
		&b.ItemID,
		&b.BidderName,
		&b.BidderEmail,
		&b.Amount,
		&b.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrNoBidsFound
		}
		return nil, fmt.Errorf("failed to get bid: %w", err)
	}

	return &b, nil
}

// GetByItemID retrieves all bids for an item, highest amount first,
// earliest first among equal amounts
func (r *BidRepository) GetByItemID(ctx context.Context, itemID uuid.UUID) ([]*bid.Bid, error) {
	query := `
		SELECT id, item_id, bidder_name, bidder_email, amount, created_at
		FROM bids
		WHERE item_id = $1
		ORDER BY amount DESC, created_at ASC
	`

	rows, err := r.conn.GetDB().QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bids: %w", err)
	}
	defer rows.Close()

	var bids []*bid.Bid
	for rows.Next() {
		var b bid.Bid
		err := rows.Scan(
			&b.ID,
			&b.ItemID,
			&b.BidderName,
			&b.BidderEmail,
			&b.Amount,
			&b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bid: %w", err)
		}
		bids = append(bids, &b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bids: %w", err)
	}

	return bids, nil
}

// GetHighestBid retrieves the highest bid for an item
func (r *BidRepository) GetHighestBid(ctx context.Context, itemID uuid.UUID) (*bid.Bid, error) {
	query := `
		SELECT id, item_id, bidder_name, bidder_email, amount, created_at
		FROM bids
		WHERE item_id = $1
		ORDER BY amount DESC, created_at ASC
		LIMIT 1
	`

	var b bid.Bid
	err := r.conn.GetDB().QueryRowContext(ctx, query, itemID).Scan(
		&b.ID,
		&b.ItemID,
		&b.BidderName,
		&b.BidderEmail,
		&b.Amount,
		&b.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrNoBidsFound
		}
		return nil, fmt.Errorf("failed to get highest bid: %w", err)
	}

	return &b, nil
}

// HighestAmounts returns the highest bid amount per item for the given
// items; items without bids are absent from the result
func (r *BidRepository) HighestAmounts(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	result := make(map[uuid.UUID]float64, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT item_id, MAX(amount)
		FROM bids
		WHERE item_id = ANY($1)
		GROUP BY item_id
	`

	rows, err := r.conn.GetDB().QueryContext(ctx, query, pq.Array(itemIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get highest amounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var itemID uuid.UUID
		var amount float64
		if err := rows.Scan(&itemID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan highest amount: %w", err)
		}
		result[itemID] = amount
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating highest amounts: %w", err)
	}

	return result, nil
}
