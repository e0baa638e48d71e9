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

// bookingColumns joins items and users so every booking carries the item
// name, the item owner and the booker name.
const bookingColumns = `b.id, b.item_id, i.name, i.owner_id, b.booker_id, u.name,
       b.start_at, b.end_at, b.status, b.created_at, b.updated_at`

const bookingFrom = ` FROM bookings b
       JOIN items i ON i.id = b.item_id
       JOIN users u ON u.id = b.booker_id`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	var b models.Booking
	var status, startAt, endAt, createdAt, updatedAt string
	err := row.Scan(&b.ID, &b.ItemID, &b.ItemName, &b.OwnerID, &b.BookerID, &b.BookerName,
		&startAt, &endAt, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if b.Status, err = models.ParseBookingStatus(status); err != nil {
		return nil, err
	}
	if b.Start, err = parseTime(startAt); err != nil {
		return nil, err
	}
	if b.End, err = parseTime(endAt); err != nil {
		return nil, err
	}
	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// filterPredicate resolves one filter variant to a declarative SQL condition
// over the bookings alias "b", independent of the booker/owner scope it is
// combined with. CURRENT is inclusive at both boundaries, PAST at the end
// boundary.
func filterPredicate(filter models.BookingFilter, now time.Time) (string, []any) {
	ts := formatTime(now)
	switch filter {
	case models.FilterCurrent:
		return "b.start_at <= ? AND b.end_at >= ?", []any{ts, ts}
	case models.FilterFuture:
		return "b.start_at > ?", []any{ts}
	case models.FilterPast:
		return "b.end_at <= ?", []any{ts}
	case models.FilterWaiting:
		return "b.status = ?", []any{models.StatusWaiting}
	case models.FilterRejected:
		return "b.status = ?", []any{models.StatusRejected}
	default: // ALL
		return "1 = 1", nil
	}
}

// CreateBooking persists a new WAITING booking. Item and booker existence,
// item availability and the self-booking ban are checked in the same
// transaction as the insert.
func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		var available bool
		var ownerID int64
		var itemName string
		err := tx.QueryRowContext(ctx,
			`SELECT available, owner_id, name FROM items WHERE id = ?`, booking.ItemID).
			Scan(&available, &ownerID, &itemName)
		if err != nil {
			return notFound(err, domain.ErrItemNotFound)
		}

		var bookerName string
		err = tx.QueryRowContext(ctx, `SELECT name FROM users WHERE id = ?`, booking.BookerID).Scan(&bookerName)
		if err != nil {
			return notFound(err, domain.ErrUserNotFound)
		}

		if ownerID == booking.BookerID {
			return domain.ErrAccessDenied
		}
		if !available {
			return domain.ErrItemUnavailable
		}

		query := `INSERT INTO bookings (item_id, booker_id, start_at, end_at, status, created_at, updated_at)
                  VALUES (?, ?, ?, ?, ?, ?, ?)`
		result, err := tx.ExecContext(ctx, query,
			booking.ItemID, booking.BookerID,
			formatTime(booking.Start), formatTime(booking.End),
			models.StatusWaiting,
			formatTime(booking.CreatedAt), formatTime(booking.UpdatedAt))
		if err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		booking.ID = id
		booking.Status = models.StatusWaiting
		booking.ItemName = itemName
		booking.OwnerID = ownerID
		booking.BookerName = bookerName
		return nil
	})
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingFrom + ` WHERE b.id = ?`
	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}
	return booking, nil
}

// DecideBooking is the only status mutation path. It verifies inside one
// transaction that the booking exists, the actor owns the booked item and the
// status is still WAITING, then settles it as APPROVED or REJECTED.
func (db *DB) DecideBooking(ctx context.Context, bookingID, ownerID int64, approve bool, now time.Time) (*models.Booking, error) {
	var decided *models.Booking
	err := db.inTx(ctx, func(tx *sql.Tx) error {
		query := `SELECT ` + bookingColumns + bookingFrom + ` WHERE b.id = ?`
		booking, err := scanBooking(tx.QueryRowContext(ctx, query, bookingID))
		if err != nil {
			return notFound(err, domain.ErrBookingNotFound)
		}

		if booking.OwnerID != ownerID {
			return domain.ErrAccessDenied
		}
		if booking.Status != models.StatusWaiting {
			return domain.ErrAlreadyDecided
		}

		status := models.StatusRejected
		if approve {
			status = models.StatusApproved
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`,
			status, formatTime(now), bookingID)
		if err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		booking.Status = status
		booking.UpdatedAt = now
		decided = booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decided, nil
}

// ListBookerBookings returns the actor's bookings as booker, scoped by the
// temporal filter, ordered by start descending.
func (db *DB) ListBookerBookings(ctx context.Context, bookerID int64, filter models.BookingFilter, now time.Time, page models.Page) ([]models.Booking, error) {
	return db.listBookings(ctx, "b.booker_id = ?", bookerID, filter, now, page)
}

// ListOwnerBookings returns bookings of items the actor owns.
func (db *DB) ListOwnerBookings(ctx context.Context, ownerID int64, filter models.BookingFilter, now time.Time, page models.Page) ([]models.Booking, error) {
	return db.listBookings(ctx, "i.owner_id = ?", ownerID, filter, now, page)
}

func (db *DB) listBookings(ctx context.Context, scope string, actorID int64, filter models.BookingFilter, now time.Time, page models.Page) ([]models.Booking, error) {
	page = page.Normalize()
	predicate, predicateArgs := filterPredicate(filter, now)

	query := `SELECT ` + bookingColumns + bookingFrom +
		` WHERE ` + scope + ` AND ` + predicate +
		` ORDER BY b.start_at DESC LIMIT ? OFFSET ?`

	args := append([]any{actorID}, predicateArgs...)
	args = append(args, page.Size, page.From)
	return db.queryBookings(ctx, query, args...)
}

// ApprovedBookingsForItems returns the APPROVED bookings of the given items,
// grouped by item, sorted by start ascending. These are the candidates for
// last/next booking annotation.
func (db *DB) ApprovedBookingsForItems(ctx context.Context, itemIDs []int64) (map[int64][]models.Booking, error) {
	result := make(map[int64][]models.Booking)
	if len(itemIDs) == 0 {
		return result, nil
	}

	placeholders := strings.Repeat("?,", len(itemIDs)-1) + "?"
	args := make([]any, 0, len(itemIDs)+1)
	for _, id := range itemIDs {
		args = append(args, id)
	}
	args = append(args, models.StatusApproved)

	query := `SELECT ` + bookingColumns + bookingFrom +
		` WHERE b.item_id IN (` + placeholders + `) AND b.status = ? ORDER BY b.start_at ASC`
	bookings, err := db.queryBookings(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		result[b.ItemID] = append(result[b.ItemID], b)
	}
	return result, nil
}

// ItemBookingsForOwner returns all bookings of an item when ownerID actually
// owns it, and nothing otherwise. Keeps last/next annotations owner-only.
func (db *DB) ItemBookingsForOwner(ctx context.Context, itemID, ownerID int64) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingFrom +
		` WHERE b.item_id = ? AND i.owner_id = ? AND b.status = ? ORDER BY b.start_at ASC`
	return db.queryBookings(ctx, query, itemID, ownerID, models.StatusApproved)
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
