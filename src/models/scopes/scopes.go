package scopes

import (
	"strings"
	"time"

	"shareit/src/types"

	"gorm.io/gorm"
)

func WithID(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

func WithWaitingStatus(db *gorm.DB) *gorm.DB {
	return db.Where("bookings.status = ?", types.BOOKING_WAITING)
}

func WithApprovedStatus(db *gorm.DB) *gorm.DB {
	return db.Where("bookings.status = ?", types.BOOKING_APPROVED)
}

func WithBooker(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("bookings.booker_id = ?", id)
	}
}

func WithItemOwner(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Select("bookings.*").
			Joins("JOIN items ON items.id = bookings.item_id").
			Where("items.owner_id = ?", id)
	}
}

// WithBookingState filters bookings by state relative to now.
// CURRENT is every booking that has not ended yet.
func WithBookingState(state types.BookingState, now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch state {
		case types.BOOKING_STATE_CURRENT:
			return db.Where("bookings.end_date > ?", now)
		case types.BOOKING_STATE_PAST:
			return db.Where("bookings.end_date < ?", now)
		case types.BOOKING_STATE_FUTURE:
			return db.Where("bookings.start_date > ?", now)
		case types.BOOKING_STATE_WAITING:
			return WithWaitingStatus(db)
		case types.BOOKING_STATE_REJECTED:
			return db.Where("bookings.status = ?", types.BOOKING_REJECTED)
		}
		return db
	}
}

func OrderByStartDesc(db *gorm.DB) *gorm.DB {
	return db.Order("bookings.start_date desc")
}

func AvailableItems(db *gorm.DB) *gorm.DB {
	return db.Where("items.available = ?", true)
}

// MatchingText is a case-insensitive substring match on name or description.
func MatchingText(text string) func(db *gorm.DB) *gorm.DB {
	pattern := "%" + escapeLike(strings.ToLower(text)) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(items.name) LIKE ? OR LOWER(items.description) LIKE ?", pattern, pattern)
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
