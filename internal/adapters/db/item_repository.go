package db

import (
	"context"
	"database/sql"
	"fmt"

	"nofa-store-service/internal/domain/item"
	"nofa-store-service/internal/domain/shared"

	"github.com/google/uuid"
)

// ItemRepository implements the item repository interface
type ItemRepository struct {
	conn *Connection
}

// NewItemRepository creates a new item repository
func NewItemRepository(conn *Connection) *ItemRepository {
	return &ItemRepository{conn: conn}
}

// Create creates a new item
func (r *ItemRepository) Create(ctx context.Context, it *item.Item) error {
	query := `
		INSERT INTO items (id, name, description, image, starting_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.conn.GetDB().ExecContext(ctx, query,
		it.ID,
		it.Name,
		it.Description,
		it.Image,
		it.StartingPrice,
		it.Status,
		it.CreatedAt,
		it.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

// GetByID retrieves an item by ID
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	query := `
		SELECT id, name, description, image, starting_price, status, created_at, updated_at
		FROM items
		WHERE id = $1
	`

	var it item.Item
	err := r.conn.GetDB().QueryRowContext(ctx, query, id).Scan(
		&it.ID,
		&it.Name,
		&it.Description,
		&it.Image,
		&it.StartingPrice,
		&it.Status,
		&it.CreatedAt,
		&it.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &it, nil
}

// List retrieves items ordered by created timestamp descending
func (r *ItemRepository) List(ctx context.Context, activeOnly bool) ([]*item.Item, error) {
	query := `
		SELECT id, name, description, image, starting_price, status, created_at, updated_at
		FROM items
	`
	var args []interface{}
	if activeOnly {
		query += " WHERE status = $1"
		args = append(args, item.StatusActive)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.conn.GetDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*item.Item
	for rows.Next() {
		var it item.Item
		err := rows.Scan(
			&it.ID,
			&it.Name,
			&it.Description,
			&it.Image,
			&it.StartingPrice,
			&it.Status,
			&it.CreatedAt,
			&it.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, &it)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// Update updates an item's listing fields and status
func (r *ItemRepository) Update(ctx context.Context, it *item.Item) error {
	query := `
		UPDATE items
		SET name = $2, description = $3, image = $4, starting_price = $5, status = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.conn.GetDB().ExecContext(ctx, query,
		it.ID,
		it.Name,
		it.Description,
		it.Image,
		it.StartingPrice,
		it.Status,
		it.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return shared.ErrItemNotFound
	}

	return nil
}

// SetStatus updates only the item status. Setting the current status
// again affects zero rows and is treated as a no-op, not an error.
func (r *ItemRepository) SetStatus(ctx context.Context, id uuid.UUID, status item.Status) error {
	query := `
		UPDATE items
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.conn.GetDB().ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to set item status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return shared.ErrItemNotFound
	}

	return nil
}
