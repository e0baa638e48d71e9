package service

import (
	"context"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo     domain.Repository
	clock    domain.Clock
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewItemService(repo domain.Repository, clock domain.Clock, eventBus domain.EventPublisher, logger *zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, clock: clock, eventBus: eventBus, logger: logger}
}

// Add lists a new item for the acting user, optionally bound to the request
// it fulfills.
func (s *ItemService) Add(ctx context.Context, ownerID int64, name, description string, available bool, requestID *int64) (*models.Item, error) {
	now := s.clock.Now()
	item := &models.Item{
		Name:        name,
		Description: description,
		Available:   available,
		OwnerID:     ownerID,
		RequestID:   requestID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item listed")
	return item, nil
}

// Update applies a partial update; only the owner may change an item.
func (s *ItemService) Update(ctx context.Context, actorID, itemID int64, patch models.ItemPatch) (*models.Item, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != actorID {
		return nil, domain.ErrAccessDenied
	}
	return s.repo.UpdateItem(ctx, itemID, patch, s.clock.Now())
}

// Get returns the annotated item view. The last/next booking annotations are
// populated only when the caller owns the item; comments are visible to
// everyone.
func (s *ItemService) Get(ctx context.Context, actorID, itemID int64) (*models.ItemView, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.repo.ItemBookingsForOwner(ctx, itemID, actorID)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.CommentsForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	view := models.AnnotateItem(*item, candidates, comments, s.clock.Now())
	return &view, nil
}

// GetAll returns the actor's own items as annotated views, sorted by id.
func (s *ItemService) GetAll(ctx context.Context, ownerID int64) ([]models.ItemView, error) {
	exists, err := s.repo.UserExists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrUserNotFound
	}

	items, err := s.repo.GetItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]int64, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}

	bookings, err := s.repo.ApprovedBookingsForItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.CommentsForItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	views := make([]models.ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, models.AnnotateItem(item, bookings[item.ID], comments[item.ID], now))
	}
	return views, nil
}

// Search returns available items whose name or description matches the text.
func (s *ItemService) Search(ctx context.Context, text string, page models.Page) ([]models.Item, error) {
	return s.repo.SearchItems(ctx, text, page)
}

// AddComment lets a past booker review an item. Eligibility (a booking of the
// item finished before now) is enforced atomically in the store.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error) {
	comment := &models.Comment{
		ItemID:    itemID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		payload := events.CommentEventPayload{
			CommentID: comment.ID,
			ItemID:    comment.ItemID,
			AuthorID:  comment.AuthorID,
			Created:   comment.CreatedAt,
		}
		if err := s.eventBus.PublishJSON(events.EventCommentAdded, payload); err != nil {
			s.logger.Error().Err(err).Int64("comment_id", comment.ID).Msg("publish event error")
		}
	}
	return comment, nil
}
