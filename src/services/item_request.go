package services

import (
	"context"

	"shareit/src/models"
	"shareit/src/store"
	"shareit/src/types"
)

type ItemRequestService struct {
	store store.Store
	now   Clock
}

func NewItemRequestService(st store.Store, now Clock) *ItemRequestService {
	return &ItemRequestService{store: st, now: now}
}

func (s *ItemRequestService) Create(ctx context.Context, userID uint, body types.CreateItemRequestRequestBody) (types.APIResponseItemRequest, error) {
	if isBlank(body.Description) {
		return types.APIResponseItemRequest{}, types.NewValidationError("Description must not be blank")
	}
	request := models.ItemRequest{
		Description: body.Description,
		RequestorID: userID,
		Created:     s.now(),
	}
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		if _, err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		return tx.CreateItemRequest(ctx, &request)
	})
	if err != nil {
		return types.APIResponseItemRequest{}, err
	}
	return request.ToResponse(nil), nil
}

// ListOwn returns the caller's requests, newest first.
func (s *ItemRequestService) ListOwn(ctx context.Context, userID uint) ([]types.APIResponseItemRequest, error) {
	if _, err := requireUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	requests, err := s.store.ListItemRequestsByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

// ListAll returns the requests of everyone but userID. Zero means no caller.
func (s *ItemRequestService) ListAll(ctx context.Context, userID uint) ([]types.APIResponseItemRequest, error) {
	if userID != 0 {
		if _, err := requireUser(ctx, s.store, userID); err != nil {
			return nil, err
		}
	}
	requests, err := s.store.ListItemRequests(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

func (s *ItemRequestService) Get(ctx context.Context, requestID uint) (types.APIResponseItemRequest, error) {
	request, err := s.store.GetItemRequest(ctx, requestID)
	if err != nil {
		return types.APIResponseItemRequest{}, notFound(err, "Item request with id=%d not found", requestID)
	}
	res, err := s.withItems(ctx, []models.ItemRequest{*request})
	if err != nil {
		return types.APIResponseItemRequest{}, err
	}
	return res[0], nil
}

func (s *ItemRequestService) withItems(ctx context.Context, requests []models.ItemRequest) ([]types.APIResponseItemRequest, error) {
	res := make([]types.APIResponseItemRequest, 0, len(requests))
	if len(requests) == 0 {
		return res, nil
	}
	ids := make([]uint, 0, len(requests))
	for i := range requests {
		ids = append(ids, requests[i].ID)
	}
	items, err := s.store.ListItemsByRequests(ctx, ids...)
	if err != nil {
		return nil, err
	}
	byRequest := make(map[uint][]models.Item, len(requests))
	for _, item := range items {
		if item.RequestID != nil {
			byRequest[*item.RequestID] = append(byRequest[*item.RequestID], item)
		}
	}
	for i := range requests {
		res = append(res, requests[i].ToResponse(byRequest[requests[i].ID]))
	}
	return res, nil
}
