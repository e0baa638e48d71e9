package service

import (
	"context"
	"time"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	repo     domain.Repository
	clock    domain.Clock
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(repo domain.Repository, clock domain.Clock, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, clock: clock, eventBus: eventBus, logger: logger}
}

// Create places a WAITING booking of an item for the acting user. The time
// range must be strictly ordered; ownership, availability and existence
// checks happen atomically in the store.
func (s *BookingService) Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*models.Booking, error) {
	if !start.Before(end) {
		return nil, domain.ErrInvalidRange
	}

	now := s.clock.Now()
	booking := &models.Booking{
		ItemID:    itemID,
		BookerID:  bookerID,
		Start:     start,
		End:       end,
		Status:    models.StatusWaiting,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.publishEvent(events.EventBookingCreated, booking)
	return booking, nil
}

// Decide approves or rejects a WAITING booking. Only the item owner may call
// it, and only once per booking.
func (s *BookingService) Decide(ctx context.Context, ownerID, bookingID int64, approve bool) (*models.Booking, error) {
	booking, err := s.repo.DecideBooking(ctx, bookingID, ownerID, approve, s.clock.Now())
	if err != nil {
		return nil, err
	}

	eventType := events.EventBookingRejected
	if approve {
		eventType = events.EventBookingApproved
	}
	s.publishEvent(eventType, booking)
	return booking, nil
}

// Get returns a booking to its booker or the item owner only.
func (s *BookingService) Get(ctx context.Context, actorID, bookingID int64) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.BookerID != actorID && booking.OwnerID != actorID {
		return nil, domain.ErrAccessDenied
	}
	return booking, nil
}

// ListForBooker returns the actor's bookings scoped by filter, newest start
// first.
func (s *BookingService) ListForBooker(ctx context.Context, bookerID int64, filter models.BookingFilter, page models.Page) ([]models.Booking, error) {
	if err := s.requireUser(ctx, bookerID); err != nil {
		return nil, err
	}
	return s.repo.ListBookerBookings(ctx, bookerID, filter, s.clock.Now(), page)
}

// ListForOwner returns bookings of the actor's items scoped by filter.
func (s *BookingService) ListForOwner(ctx context.Context, ownerID int64, filter models.BookingFilter, page models.Page) ([]models.Booking, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListOwnerBookings(ctx, ownerID, filter, s.clock.Now(), page)
}

func (s *BookingService) requireUser(ctx context.Context, id int64) error {
	exists, err := s.repo.UserExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		ItemName:  booking.ItemName,
		BookerID:  booking.BookerID,
		OwnerID:   booking.OwnerID,
		Status:    string(booking.Status),
		Start:     booking.Start,
		End:       booking.End,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
