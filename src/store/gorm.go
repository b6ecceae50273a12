package store

import (
	"context"
	"errors"
	"time"

	"shareit/src/models"
	"shareit/src/models/scopes"
	"shareit/src/types"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrDuplicateKey
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	return translateError(s.db.WithContext(ctx).Create(user).Error)
}

func (s *GormStore) UpdateUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{"name": user.Name, "email": user.Email}).
		Error
	return translateError(err)
}

func (s *GormStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Scopes(scopes.WithID(id)).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (s *GormStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("id asc").Find(&users).Error
	return users, translateError(err)
}

// DeleteUser relies on ON DELETE CASCADE for items, bookings, comments and requests.
func (s *GormStore) DeleteUser(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *GormStore) CreateItem(ctx context.Context, item *models.Item) error {
	return translateError(s.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error)
}

func (s *GormStore) UpdateItem(ctx context.Context, item *models.Item) error {
	err := s.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"name":        item.Name,
			"description": item.Description,
			"available":   item.Available,
		}).
		Error
	return translateError(err)
}

func (s *GormStore) GetItem(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := s.db.WithContext(ctx).Scopes(scopes.WithID(id)).First(&item).Error; err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

func (s *GormStore) ListItemsByOwner(ctx context.Context, ownerID uint) ([]models.Item, error) {
	var items []models.Item
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id asc").
		Find(&items).
		Error
	return items, translateError(err)
}

func (s *GormStore) SearchItems(ctx context.Context, text string) ([]models.Item, error) {
	var items []models.Item
	err := s.db.WithContext(ctx).
		Model(&models.Item{}).
		Scopes(scopes.AvailableItems, scopes.MatchingText(text)).
		Order("items.id asc").
		Find(&items).
		Error
	return items, translateError(err)
}

func (s *GormStore) ListItemsByRequests(ctx context.Context, requestIDs ...uint) ([]models.Item, error) {
	var items []models.Item
	if len(requestIDs) == 0 {
		return items, nil
	}
	err := s.db.WithContext(ctx).
		Where("request_id IN (?)", requestIDs).
		Order("id asc").
		Find(&items).
		Error
	return items, translateError(err)
}

func (s *GormStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return translateError(s.db.WithContext(ctx).Omit(clause.Associations).Create(booking).Error)
}

func (s *GormStore) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		Where("bookings.id = ?", id).
		First(&booking).
		Error
	if err != nil {
		return nil, translateError(err)
	}
	return &booking, nil
}

func (s *GormStore) DecideBooking(ctx context.Context, id uint, status types.BookingStatus) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Scopes(scopes.WithWaitingStatus).
		Update("status", status)
	if res.Error != nil {
		return false, translateError(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *GormStore) ListBookings(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	q := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Preload("Item").
		Preload("Booker")
	if filter.BookerID != 0 {
		q = q.Scopes(scopes.WithBooker(filter.BookerID))
	}
	if filter.OwnerID != 0 {
		q = q.Scopes(scopes.WithItemOwner(filter.OwnerID))
	}
	var bookings []models.Booking
	err := q.
		Scopes(scopes.WithBookingState(filter.State, filter.Now), scopes.OrderByStartDesc).
		Find(&bookings).
		Error
	return bookings, translateError(err)
}

func (s *GormStore) LastBooking(ctx context.Context, itemID uint, now time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Scopes(scopes.WithApprovedStatus).
		Where("bookings.item_id = ? AND bookings.end_date < ?", itemID, now).
		Order("bookings.end_date desc").
		First(&booking).
		Error
	if err != nil {
		return nil, translateError(err)
	}
	return &booking, nil
}

func (s *GormStore) NextBooking(ctx context.Context, itemID uint, now time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Scopes(scopes.WithApprovedStatus).
		Where("bookings.item_id = ? AND bookings.start_date > ?", itemID, now).
		Order("bookings.start_date asc").
		First(&booking).
		Error
	if err != nil {
		return nil, translateError(err)
	}
	return &booking, nil
}

func (s *GormStore) HasPastBooking(ctx context.Context, itemID, bookerID uint, now time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("bookings.item_id = ? AND bookings.booker_id = ? AND bookings.end_date < ?", itemID, bookerID, now).
		Count(&count).
		Error
	if err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

func (s *GormStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	return translateError(s.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error)
}

func (s *GormStore) ListComments(ctx context.Context, itemIDs ...uint) ([]models.Comment, error) {
	var comments []models.Comment
	if len(itemIDs) == 0 {
		return comments, nil
	}
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("item_id IN (?)", itemIDs).
		Order("created asc").
		Find(&comments).
		Error
	return comments, translateError(err)
}

func (s *GormStore) CreateItemRequest(ctx context.Context, request *models.ItemRequest) error {
	return translateError(s.db.WithContext(ctx).Omit(clause.Associations).Create(request).Error)
}

func (s *GormStore) GetItemRequest(ctx context.Context, id uint) (*models.ItemRequest, error) {
	var request models.ItemRequest
	if err := s.db.WithContext(ctx).Scopes(scopes.WithID(id)).First(&request).Error; err != nil {
		return nil, translateError(err)
	}
	return &request, nil
}

func (s *GormStore) ListItemRequestsByRequestor(ctx context.Context, requestorID uint) ([]models.ItemRequest, error) {
	var requests []models.ItemRequest
	err := s.db.WithContext(ctx).
		Where("requestor_id = ?", requestorID).
		Order("created desc").
		Find(&requests).
		Error
	return requests, translateError(err)
}

func (s *GormStore) ListItemRequests(ctx context.Context, excludeRequestorID uint) ([]models.ItemRequest, error) {
	q := s.db.WithContext(ctx).Model(&models.ItemRequest{})
	if excludeRequestorID != 0 {
		q = q.Where("requestor_id <> ?", excludeRequestorID)
	}
	var requests []models.ItemRequest
	err := q.Order("created desc").Find(&requests).Error
	return requests, translateError(err)
}
