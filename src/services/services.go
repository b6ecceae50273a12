// Package services holds the ShareIt business rules on top of a store.Store.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"shareit/src/lib"
	"shareit/src/models"
	"shareit/src/store"
	"shareit/src/types"
)

type Clock func() time.Time

type Services struct {
	Users    *UserService
	Items    *ItemService
	Bookings *BookingService
	Requests *ItemRequestService
}

// New wires every service to the same store. A nil clock means time.Now.
func New(st store.Store, cache *lib.UserCache, now Clock) *Services {
	if now == nil {
		now = time.Now
	}
	return &Services{
		Users:    NewUserService(st, cache),
		Items:    NewItemService(st, now),
		Bookings: NewBookingService(st, now),
		Requests: NewItemRequestService(st, now),
	}
}

func requireUser(ctx context.Context, st store.Store, id uint) (*models.User, error) {
	user, err := st.GetUser(ctx, id)
	if err != nil {
		return nil, notFound(err, "User with id=%d not found", id)
	}
	return user, nil
}

func requireItem(ctx context.Context, st store.Store, id uint) (*models.Item, error) {
	item, err := st.GetItem(ctx, id)
	if err != nil {
		return nil, notFound(err, "Item with id=%d not found", id)
	}
	return item, nil
}

// notFound turns a missing record into a NotFound error and passes anything else through.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, store.ErrRecordNotFound) {
		return types.NewNotFoundError(format, args...)
	}
	return err
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
