package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

const itemColumns = `id, name, description, available, owner_id, request_id, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*models.Item, error) {
	var item models.Item
	var requestID sql.NullInt64
	var createdAt, updatedAt string
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Available,
		&item.OwnerID, &requestID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if requestID.Valid {
		item.RequestID = &requestID.Int64
	}
	if item.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if item.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts an item after verifying the owner and, when set, the
// originating request exist. Checks and insert share one transaction.
func (db *DB) CreateItem(ctx context.Context, item *models.Item) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		var ownerExists bool
		err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, item.OwnerID).Scan(&ownerExists)
		if err != nil {
			return fmt.Errorf("failed to check owner: %w", err)
		}
		if !ownerExists {
			return domain.ErrUserNotFound
		}

		var requestID sql.NullInt64
		if item.RequestID != nil {
			var requestExists bool
			err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM requests WHERE id = ?)`, *item.RequestID).Scan(&requestExists)
			if err != nil {
				return fmt.Errorf("failed to check request: %w", err)
			}
			if !requestExists {
				return domain.ErrRequestNotFound
			}
			requestID = sql.NullInt64{Int64: *item.RequestID, Valid: true}
		}

		query := `INSERT INTO items (name, description, available, owner_id, request_id, created_at, updated_at)
                  VALUES (?, ?, ?, ?, ?, ?, ?)`
		result, err := tx.ExecContext(ctx, query,
			item.Name, item.Description, item.Available, item.OwnerID, requestID,
			formatTime(item.CreatedAt), formatTime(item.UpdatedAt))
		if err != nil {
			return fmt.Errorf("failed to create item: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		item.ID = id
		return nil
	})
}

func (db *DB) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`
	item, err := scanItem(db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, domain.ErrItemNotFound)
	}
	return item, nil
}

// UpdateItem applies a partial update. Only existence is checked here; the
// ownership rule lives in the service.
func (db *DB) UpdateItem(ctx context.Context, id int64, patch models.ItemPatch, now time.Time) (*models.Item, error) {
	var updated *models.Item
	err := db.inTx(ctx, func(tx *sql.Tx) error {
		query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`
		item, err := scanItem(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			return notFound(err, domain.ErrItemNotFound)
		}

		if patch.Name != nil && *patch.Name != "" {
			item.Name = *patch.Name
		}
		if patch.Description != nil && *patch.Description != "" {
			item.Description = *patch.Description
		}
		if patch.Available != nil {
			item.Available = *patch.Available
		}
		item.UpdatedAt = now

		_, err = tx.ExecContext(ctx,
			`UPDATE items SET name = ?, description = ?, available = ?, updated_at = ? WHERE id = ?`,
			item.Name, item.Description, item.Available, formatTime(now), id)
		if err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (db *DB) GetItemsByOwner(ctx context.Context, ownerID int64) ([]models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = ? ORDER BY id`
	return db.queryItems(ctx, query, ownerID)
}

// SearchItems matches name or description case-insensitively and returns
// available items only. Blank text yields an empty result.
func (db *DB) SearchItems(ctx context.Context, text string, page models.Page) ([]models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []models.Item{}, nil
	}
	page = page.Normalize()
	pattern := "%" + strings.ToLower(text) + "%"
	query := `SELECT ` + itemColumns + ` FROM items
              WHERE available = 1 AND (lower(name) LIKE ? OR lower(description) LIKE ?)
              ORDER BY id LIMIT ? OFFSET ?`
	items, err := db.queryItems(ctx, query, pattern, pattern, page.Size, page.From)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

// GetItemsByRequestIDs groups the items created to fulfill each request.
func (db *DB) GetItemsByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]models.Item, error) {
	result := make(map[int64][]models.Item)
	if len(requestIDs) == 0 {
		return result, nil
	}

	placeholders := strings.Repeat("?,", len(requestIDs)-1) + "?"
	args := make([]any, len(requestIDs))
	for i, id := range requestIDs {
		args[i] = id
	}

	query := `SELECT ` + itemColumns + ` FROM items WHERE request_id IN (` + placeholders + `) ORDER BY id`
	items, err := db.queryItems(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		result[*item.RequestID] = append(result[*item.RequestID], item)
	}
	return result, nil
}

func (db *DB) queryItems(ctx context.Context, query string, args ...any) ([]models.Item, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
