package db

import (
	"context"
	"database/sql"
	"fmt"

	"nofa-store-service/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ImageRepository implements the item photo repository interface
type ImageRepository struct {
	conn *Connection
}

// NewImageRepository creates a new image repository
func NewImageRepository(conn *Connection) *ImageRepository {
	return &ImageRepository{conn: conn}
}

// Add attaches a photo to an item
func (r *ImageRepository) Add(ctx context.Context, image *shared.ItemImage) error {
	query := `
		INSERT INTO item_images (id, item_id, filename, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.conn.GetDB().ExecContext(ctx, query,
		image.ID,
		image.ItemID,
		image.Filename,
		image.SortOrder,
		image.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to add image: %w", err)
	}

	return nil
}

// GetByID retrieves a photo by ID
func (r *ImageRepository) GetByID(ctx context.Context, id uuid.UUID) (*shared.ItemImage, error) {
	query := `
		SELECT id, item_id, filename, sort_order, created_at
		FROM item_images
		WHERE id = $1
	`

	var image shared.ItemImage
	err := r.conn.GetDB().QueryRowContext(ctx, query, id).Scan(
		&image.ID,
		&image.ItemID,
		&image.Filename,
		&image.SortOrder,
		&image.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	return &image, nil
}

// ListByItemID retrieves an item's photos in display order
func (r *ImageRepository) ListByItemID(ctx context.Context, itemID uuid.UUID) ([]*shared.ItemImage, error) {
	query := `
		SELECT id, item_id, filename, sort_order, created_at
		FROM item_images
		WHERE item_id = $1
		ORDER BY sort_order ASC, created_at ASC
	`

	rows, err := r.conn.GetDB().QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	var images []*shared.ItemImage
	for rows.Next() {
		var image shared.ItemImage
		err := rows.Scan(
			&image.ID,
			&image.ItemID,
			&image.Filename,
			&image.SortOrder,
			&image.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, &image)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating images: %w", err)
	}

	return images, nil
}

// Delete removes a photo record
func (r *ImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM item_images WHERE id = $1`

	result, err := r.conn.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return shared.ErrImageNotFound
	}

	return nil
}

// CountByItemIDs returns the number of photos per item
func (r *ImageRepository) CountByItemIDs(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	result := make(map[uuid.UUID]int, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT item_id, COUNT(*)
		FROM item_images
		WHERE item_id = ANY($1)
		GROUP BY item_id
	`

	rows, err := r.conn.GetDB().QueryContext(ctx, query, pq.Array(itemIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to count images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var itemID uuid.UUID
		var count int
		if err := rows.Scan(&itemID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan image count: %w", err)
		}
		result[itemID] = count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating image counts: %w", err)
	}

	return result, nil
}
