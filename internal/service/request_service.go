package service

import (
	"context"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	repo   domain.Repository
	clock  domain.Clock
	logger *zerolog.Logger
}

func NewRequestService(repo domain.Repository, clock domain.Clock, logger *zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, clock: clock, logger: logger}
}

// Create posts a request for an item not yet listed.
func (s *RequestService) Create(ctx context.Context, requesterID int64, description string) (*models.ItemRequest, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	request := &models.ItemRequest{
		RequesterID: requesterID,
		Description: description,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// ListOwn returns the actor's requests, newest first, each annotated with the
// items created to fulfill it.
func (s *RequestService) ListOwn(ctx context.Context, requesterID int64) ([]models.RequestView, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.RequestsByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, requests)
}

// ListOthers returns other users' requests, newest first, annotated.
func (s *RequestService) ListOthers(ctx context.Context, requesterID int64, page models.Page) ([]models.RequestView, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.RequestsExcludingRequester(ctx, requesterID, page)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, requests)
}

// Get returns a single annotated request.
func (s *RequestService) Get(ctx context.Context, actorID, requestID int64) (*models.RequestView, error) {
	if err := s.requireUser(ctx, actorID); err != nil {
		return nil, err
	}

	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	views, err := s.annotate(ctx, []models.ItemRequest{*request})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *RequestService) annotate(ctx context.Context, requests []models.ItemRequest) ([]models.RequestView, error) {
	ids := make([]int64, len(requests))
	for i, r := range requests {
		ids[i] = r.ID
	}

	items, err := s.repo.GetItemsByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.RequestView, 0, len(requests))
	for _, r := range requests {
		view := models.RequestView{ItemRequest: r, Items: items[r.ID]}
		if view.Items == nil {
			view.Items = []models.Item{}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *RequestService) requireUser(ctx context.Context, id int64) error {
	exists, err := s.repo.UserExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrUserNotFound
	}
	return nil
}
