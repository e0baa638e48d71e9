package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

const userColumns = `id, name, email, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var user models.User
	var createdAt, updatedAt string
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if user.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (name, email, created_at, updated_at) VALUES (?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		user.Name, user.Email, formatTime(user.CreatedAt), formatTime(user.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	user.ID = id
	return nil
}

func (db *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	user, err := scanUser(db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return user, nil
}

func (db *DB) GetAllUsers(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// UpdateUser applies a partial update inside one transaction so the existence
// check and the write are atomic.
func (db *DB) UpdateUser(ctx context.Context, id int64, patch models.UserPatch, now time.Time) (*models.User, error) {
	var updated *models.User
	err := db.inTx(ctx, func(tx *sql.Tx) error {
		query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
		user, err := scanUser(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			return notFound(err, domain.ErrUserNotFound)
		}

		if patch.Name != nil && *patch.Name != "" {
			user.Name = *patch.Name
		}
		if patch.Email != nil && *patch.Email != "" {
			user.Email = *patch.Email
		}
		user.UpdatedAt = now

		_, err = tx.ExecContext(ctx,
			`UPDATE users SET name = ?, email = ?, updated_at = ? WHERE id = ?`,
			user.Name, user.Email, formatTime(now), id)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateEmail
			}
			return fmt.Errorf("failed to update user: %w", err)
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteUser removes a user. Users still owning items or holding undecided or
// approved bookings cannot be deleted.
func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, id).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if !exists {
			return domain.ErrUserNotFound
		}

		var blocked bool
		err = tx.QueryRowContext(ctx, `
            SELECT EXISTS(SELECT 1 FROM items WHERE owner_id = ?)
                OR EXISTS(SELECT 1 FROM bookings WHERE booker_id = ? AND status IN (?, ?))`,
			id, id, models.StatusWaiting, models.StatusApproved).Scan(&blocked)
		if err != nil {
			return fmt.Errorf("failed to check user records: %w", err)
		}
		if blocked {
			return domain.ErrUserHasRecords
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}

func (db *DB) UserExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}
