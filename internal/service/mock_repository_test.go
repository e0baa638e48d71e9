package service

import (
	"context"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock of the domain.Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockRepository) UpdateUser(ctx context.Context, id int64, patch models.UserPatch, now time.Time) (*models.User, error) {
	args := m.Called(ctx, id, patch, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) UserExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) CreateItem(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockRepository) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockRepository) UpdateItem(ctx context.Context, id int64, patch models.ItemPatch, now time.Time) (*models.Item, error) {
	args := m.Called(ctx, id, patch, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockRepository) GetItemsByOwner(ctx context.Context, ownerID int64) ([]models.Item, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockRepository) SearchItems(ctx context.Context, text string, page models.Page) ([]models.Item, error) {
	args := m.Called(ctx, text, page)
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockRepository) GetItemsByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]models.Item, error) {
	args := m.Called(ctx, requestIDs)
	return args.Get(0).(map[int64][]models.Item), args.Error(1)
}

func (m *MockRepository) CreateBooking(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockRepository) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockRepository) DecideBooking(ctx context.Context, bookingID, ownerID int64, approve bool, now time.Time) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, ownerID, approve, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockRepository) ListBookerBookings(ctx context.Context, bookerID int64, filter models.BookingFilter, now time.Time, page models.Page) ([]models.Booking, error) {
	args := m.Called(ctx, bookerID, filter, now, page)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockRepository) ListOwnerBookings(ctx context.Context, ownerID int64, filter models.BookingFilter, now time.Time, page models.Page) ([]models.Booking, error) {
	args := m.Called(ctx, ownerID, filter, now, page)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockRepository) ApprovedBookingsForItems(ctx context.Context, itemIDs []int64) (map[int64][]models.Booking, error) {
	args := m.Called(ctx, itemIDs)
	return args.Get(0).(map[int64][]models.Booking), args.Error(1)
}

func (m *MockRepository) ItemBookingsForOwner(ctx context.Context, itemID, ownerID int64) ([]models.Booking, error) {
	args := m.Called(ctx, itemID, ownerID)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockRepository) CommentsForItem(ctx context.Context, itemID int64) ([]models.Comment, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockRepository) CommentsForItems(ctx context.Context, itemIDs []int64) (map[int64][]models.Comment, error) {
	args := m.Called(ctx, itemIDs)
	return args.Get(0).(map[int64][]models.Comment), args.Error(1)
}

func (m *MockRepository) CreateRequest(ctx context.Context, request *models.ItemRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRepository) GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ItemRequest), args.Error(1)
}

func (m *MockRepository) RequestsByRequester(ctx context.Context, requesterID int64) ([]models.ItemRequest, error) {
	args := m.Called(ctx, requesterID)
	return args.Get(0).([]models.ItemRequest), args.Error(1)
}

func (m *MockRepository) RequestsExcludingRequester(ctx context.Context, requesterID int64, page models.Page) ([]models.ItemRequest, error) {
	args := m.Called(ctx, requesterID, page)
	return args.Get(0).([]models.ItemRequest), args.Error(1)
}
