package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/models"
)

const commentColumns = `c.id, c.item_id, c.author_id, u.name, c.text, c.created_at`

const commentFrom = ` FROM comments c JOIN users u ON u.id = c.author_id`

func scanComment(row interface{ Scan(...any) error }) (*models.Comment, error) {
	var c models.Comment
	var createdAt string
	err := row.Scan(&c.ID, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Text, &createdAt)
	if err != nil {
		return nil, err
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateComment persists a comment after checking, in the same transaction,
// that the item and author exist and the author holds at least one booking of
// the item finished strictly before the comment timestamp.
func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		var itemExists bool
		err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM items WHERE id = ?)`, comment.ItemID).Scan(&itemExists)
		if err != nil {
			return fmt.Errorf("failed to check item: %w", err)
		}
		if !itemExists {
			return domain.ErrItemNotFound
		}

		var authorName string
		err = tx.QueryRowContext(ctx, `SELECT name FROM users WHERE id = ?`, comment.AuthorID).Scan(&authorName)
		if err != nil {
			return notFound(err, domain.ErrUserNotFound)
		}

		var reviewable bool
		err = tx.QueryRowContext(ctx, `
            SELECT EXISTS(
                SELECT 1 FROM bookings
                WHERE item_id = ? AND booker_id = ? AND end_at < ?
            )`, comment.ItemID, comment.AuthorID, formatTime(comment.CreatedAt)).Scan(&reviewable)
		if err != nil {
			return fmt.Errorf("failed to check finished bookings: %w", err)
		}
		if !reviewable {
			return domain.ErrNotReviewable
		}

		result, err := tx.ExecContext(ctx,
			`INSERT INTO comments (item_id, author_id, text, created_at) VALUES (?, ?, ?, ?)`,
			comment.ItemID, comment.AuthorID, comment.Text, formatTime(comment.CreatedAt))
		if err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		comment.ID = id
		comment.AuthorName = authorName
		return nil
	})
}

// CommentsForItem returns the item's comments, most recent first.
func (db *DB) CommentsForItem(ctx context.Context, itemID int64) ([]models.Comment, error) {
	query := `SELECT ` + commentColumns + commentFrom + ` WHERE c.item_id = ? ORDER BY c.created_at DESC, c.id DESC`
	return db.queryComments(ctx, query, itemID)
}

// CommentsForItems groups comments of the given items, most recent first.
func (db *DB) CommentsForItems(ctx context.Context, itemIDs []int64) (map[int64][]models.Comment, error) {
	result := make(map[int64][]models.Comment)
	if len(itemIDs) == 0 {
		return result, nil
	}

	placeholders := strings.Repeat("?,", len(itemIDs)-1) + "?"
	args := make([]any, len(itemIDs))
	for i, id := range itemIDs {
		args[i] = id
	}

	query := `SELECT ` + commentColumns + commentFrom +
		` WHERE c.item_id IN (` + placeholders + `) ORDER BY c.created_at DESC, c.id DESC`
	comments, err := db.queryComments(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		result[c.ItemID] = append(result[c.ItemID], c)
	}
	return result, nil
}

func (db *DB) queryComments(ctx context.Context, query string, args ...any) ([]models.Comment, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}
