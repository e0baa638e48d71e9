package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

// Clock abstracts the server clock so temporal rules can be tested against a
// frozen time. Every operation reads it once and passes the value down.
type Clock interface {
	Now() time.Time
}

// Repository is the persistence surface of the core service. One relational
// store implements all of it; state-changing methods run their checks and the
// write inside a single transaction.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch, now time.Time) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	UserExists(ctx context.Context, id int64) (bool, error)

	// Items
	CreateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, id int64, patch models.ItemPatch, now time.Time) (*models.Item, error)
	GetItemsByOwner(ctx context.Context, ownerID int64) ([]models.Item, error)
	SearchItems(ctx context.Context, text string, page models.Page) ([]models.Item, error)
	GetItemsByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]models.Item, error)

	// Bookings
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	DecideBooking(ctx context.Context, bookingID, ownerID int64, approve bool, now time.Time) (*models.Booking, error)
	ListBookerBookings(ctx context.Context, bookerID int64, filter models.BookingFilter, now time.Time, page models.Page) ([]models.Booking, error)
	ListOwnerBookings(ctx context.Context, ownerID int64, filter models.BookingFilter, now time.Time, page models.Page) ([]models.Booking, error)
	ApprovedBookingsForItems(ctx context.Context, itemIDs []int64) (map[int64][]models.Booking, error)
	ItemBookingsForOwner(ctx context.Context, itemID, ownerID int64) ([]models.Booking, error)

	// Comments
	CreateComment(ctx context.Context, comment *models.Comment) error
	CommentsForItem(ctx context.Context, itemID int64) ([]models.Comment, error)
	CommentsForItems(ctx context.Context, itemIDs []int64) (map[int64][]models.Comment, error)

	// Requests
	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error)
	RequestsByRequester(ctx context.Context, requesterID int64) ([]models.ItemRequest, error)
	RequestsExcludingRequester(ctx context.Context, requesterID int64, page models.Page) ([]models.ItemRequest, error)
}

// EventPublisher fans domain events out to in-process subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// RateLimiter answers whether a caller may proceed within the current window.
type RateLimiter interface {
	Allow(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}
