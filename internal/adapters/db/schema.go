package db

import (
	"context"
	"fmt"
)

// Schema statements run at startup. Items are never deleted, only
// closed, so bids carry a plain foreign key without cascade.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS items (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		starting_price DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bids (
		id UUID PRIMARY KEY,
		item_id UUID NOT NULL REFERENCES items(id),
		bidder_name TEXT NOT NULL,
		bidder_email TEXT NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS item_images (
		id UUID PRIMARY KEY,
		item_id UUID NOT NULL REFERENCES items(id),
		filename TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bids_item_id ON bids(item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_item_images_item_id ON item_images(item_id)`,
}

// EnsureSchema creates the shop tables when they do not exist yet
func (client *Connection) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := client.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
