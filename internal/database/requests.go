package database

import (
	"context"
	"fmt"

	"shareit/internal/domain"
	"shareit/internal/models"
)

const requestColumns = `id, requester_id, description, created_at`

func scanRequest(row interface{ Scan(...any) error }) (*models.ItemRequest, error) {
	var r models.ItemRequest
	var createdAt string
	err := row.Scan(&r.ID, &r.RequesterID, &r.Description, &createdAt)
	if err != nil {
		return nil, err
	}
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &r, nil
}

func (db *DB) CreateRequest(ctx context.Context, request *models.ItemRequest) error {
	query := `INSERT INTO requests (requester_id, description, created_at) VALUES (?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		request.RequesterID, request.Description, formatTime(request.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	request.ID = id
	return nil
}

func (db *DB) GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = ?`
	request, err := scanRequest(db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, domain.ErrRequestNotFound)
	}
	return request, nil
}

// RequestsByRequester returns the user's own requests, newest first.
func (db *DB) RequestsByRequester(ctx context.Context, requesterID int64) ([]models.ItemRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE requester_id = ? ORDER BY created_at DESC, id DESC`
	return db.queryRequests(ctx, query, requesterID)
}

// RequestsExcludingRequester returns everyone else's requests, newest first.
func (db *DB) RequestsExcludingRequester(ctx context.Context, requesterID int64, page models.Page) ([]models.ItemRequest, error) {
	page = page.Normalize()
	query := `SELECT ` + requestColumns + ` FROM requests WHERE requester_id != ?
              ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	return db.queryRequests(ctx, query, requesterID, page.Size, page.From)
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...any) ([]models.ItemRequest, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []models.ItemRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, *r)
	}
	return requests, rows.Err()
}
