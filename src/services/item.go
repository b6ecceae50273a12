package services

import (
	"context"
	"errors"

	"shareit/src/lib"
	"shareit/src/models"
	"shareit/src/store"
	"shareit/src/types"
)

type ItemService struct {
	store store.Store
	now   Clock
}

func NewItemService(st store.Store, now Clock) *ItemService {
	return &ItemService{store: st, now: now}
}

func (s *ItemService) Create(ctx context.Context, userID uint, body types.ItemRequestBody) (types.APIResponseItem, error) {
	if body.Name == nil || isBlank(*body.Name) {
		return types.APIResponseItem{}, types.NewValidationError("Name must not be blank")
	}
	if body.Description == nil || isBlank(*body.Description) {
		return types.APIResponseItem{}, types.NewValidationError("Description must not be blank")
	}
	if body.Available == nil {
		return types.APIResponseItem{}, types.NewValidationError("Available must be set")
	}
	item := models.Item{
		Name:        *body.Name,
		Description: *body.Description,
		Available:   *body.Available,
		OwnerID:     userID,
		RequestID:   body.RequestID,
	}
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		if _, err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		if body.RequestID != nil {
			if _, err := tx.GetItemRequest(ctx, *body.RequestID); err != nil {
				return notFound(err, "Item request with id=%d not found", *body.RequestID)
			}
		}
		return tx.CreateItem(ctx, &item)
	})
	if err != nil {
		return types.APIResponseItem{}, err
	}
	return item.ToResponse(), nil
}

// Update changes the fields present in body. Only the owner sees the item.
func (s *ItemService) Update(ctx context.Context, userID, itemID uint, body types.ItemRequestBody) (types.APIResponseItem, error) {
	var updated *models.Item
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		if _, err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		item, err := requireItem(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if item.OwnerID != userID {
			return types.NewNotFoundError("Item with id=%d not found for user %d", itemID, userID)
		}
		if body.Name != nil && !isBlank(*body.Name) {
			item.Name = *body.Name
		}
		if body.Description != nil && !isBlank(*body.Description) {
			item.Description = *body.Description
		}
		if body.Available != nil {
			item.Available = *body.Available
		}
		if err := tx.UpdateItem(ctx, item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return types.APIResponseItem{}, err
	}
	res, err := s.render(ctx, []models.Item{*updated}, userID)
	if err != nil {
		return types.APIResponseItem{}, err
	}
	return res[0], nil
}

func (s *ItemService) Get(ctx context.Context, userID, itemID uint) (types.APIResponseItem, error) {
	if _, err := requireUser(ctx, s.store, userID); err != nil {
		return types.APIResponseItem{}, err
	}
	item, err := requireItem(ctx, s.store, itemID)
	if err != nil {
		return types.APIResponseItem{}, err
	}
	res, err := s.render(ctx, []models.Item{*item}, userID)
	if err != nil {
		return types.APIResponseItem{}, err
	}
	return res[0], nil
}

func (s *ItemService) ListByOwner(ctx context.Context, userID uint) ([]types.APIResponseItem, error) {
	if _, err := requireUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	items, err := s.store.ListItemsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, items, userID)
}

// Search returns available items whose name or description contains text. Blank text finds nothing.
func (s *ItemService) Search(ctx context.Context, userID uint, text string) ([]types.APIResponseItem, error) {
	if _, err := requireUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	res := []types.APIResponseItem{}
	if isBlank(text) {
		return res, nil
	}
	items, err := s.store.SearchItems(ctx, text)
	if err != nil {
		return nil, err
	}
	for i := range items {
		res = append(res, items[i].ToResponse())
	}
	return res, nil
}

// CreateComment is allowed to anyone whose booking of the item has already ended.
func (s *ItemService) CreateComment(ctx context.Context, userID, itemID uint, body types.CreateCommentRequestBody) (types.APIResponseComment, error) {
	if isBlank(body.Text) {
		return types.APIResponseComment{}, types.NewValidationError("Text must not be blank")
	}
	now := s.now()
	comment := models.Comment{
		Text:     body.Text,
		ItemID:   itemID,
		AuthorID: userID,
		Created:  now,
	}
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		author, err := requireUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		if _, err := requireItem(ctx, tx, itemID); err != nil {
			return err
		}
		rented, err := tx.HasPastBooking(ctx, itemID, userID, now)
		if err != nil {
			return err
		}
		if !rented {
			return types.NewValidationError("User %d has not rented item %d", userID, itemID)
		}
		if err := tx.CreateComment(ctx, &comment); err != nil {
			return err
		}
		comment.Author = author
		return nil
	})
	if err != nil {
		return types.APIResponseComment{}, err
	}
	lib.IncCommentCreated()
	return comment.ToResponse(), nil
}

// render attaches comments to every item, and last/next bookings to the items viewerID owns.
func (s *ItemService) render(ctx context.Context, items []models.Item, viewerID uint) ([]types.APIResponseItem, error) {
	res := make([]types.APIResponseItem, 0, len(items))
	if len(items) == 0 {
		return res, nil
	}
	ids := make([]uint, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].ID)
	}
	comments, err := s.store.ListComments(ctx, ids...)
	if err != nil {
		return nil, err
	}
	byItem := make(map[uint][]types.APIResponseComment, len(items))
	for i := range comments {
		byItem[comments[i].ItemID] = append(byItem[comments[i].ItemID], comments[i].ToResponse())
	}

	now := s.now()
	for i := range items {
		r := items[i].ToResponse()
		if c, ok := byItem[items[i].ID]; ok {
			r.Comments = c
		}
		if items[i].OwnerID == viewerID {
			if r.LastBooking, err = s.shortBooking(s.store.LastBooking(ctx, items[i].ID, now)); err != nil {
				return nil, err
			}
			if r.NextBooking, err = s.shortBooking(s.store.NextBooking(ctx, items[i].ID, now)); err != nil {
				return nil, err
			}
		}
		res = append(res, r)
	}
	return res, nil
}

func (s *ItemService) shortBooking(b *models.Booking, err error) (*types.APIResponseBookingShort, error) {
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b.ToShortResponse(), nil
}
