// Package store is the persistence port of the ShareIt server.
package store

import (
	"context"
	"errors"
	"time"

	"shareit/src/models"
	"shareit/src/types"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
)

// BookingFilter selects bookings for the booker and owner listings.
// Exactly one of BookerID or OwnerID is expected to be set.
type BookingFilter struct {
	BookerID uint
	OwnerID  uint
	State    types.BookingState
	Now      time.Time
}

// Store is implemented by GormStore and MemoryStore.
// Getters return ErrRecordNotFound when nothing matches.
// Bookings come back with Item and Booker loaded, comments with Author.
type Store interface {
	// Transaction runs fn against a store bound to a single transaction.
	Transaction(ctx context.Context, fn func(tx Store) error) error

	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id uint) error

	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id uint) (*models.Item, error)
	ListItemsByOwner(ctx context.Context, ownerID uint) ([]models.Item, error)
	SearchItems(ctx context.Context, text string) ([]models.Item, error)
	ListItemsByRequests(ctx context.Context, requestIDs ...uint) ([]models.Item, error)

	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	// DecideBooking moves a WAITING booking to status. It reports false
	// when the booking was no longer WAITING.
	DecideBooking(ctx context.Context, id uint, status types.BookingStatus) (bool, error)
	ListBookings(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	// LastBooking is the approved booking of the item that ended most recently before now.
	LastBooking(ctx context.Context, itemID uint, now time.Time) (*models.Booking, error)
	// NextBooking is the earliest approved booking of the item starting after now.
	NextBooking(ctx context.Context, itemID uint, now time.Time) (*models.Booking, error)
	HasPastBooking(ctx context.Context, itemID, bookerID uint, now time.Time) (bool, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	ListComments(ctx context.Context, itemIDs ...uint) ([]models.Comment, error)

	CreateItemRequest(ctx context.Context, request *models.ItemRequest) error
	GetItemRequest(ctx context.Context, id uint) (*models.ItemRequest, error)
	ListItemRequestsByRequestor(ctx context.Context, requestorID uint) ([]models.ItemRequest, error)
	// ListItemRequests returns every request not posted by excludeRequestorID (0 keeps all).
	ListItemRequests(ctx context.Context, excludeRequestorID uint) ([]models.ItemRequest, error)
}
