package services

import (
	"context"
	"log"

	"shareit/src/lib"
	"shareit/src/models"
	"shareit/src/store"
	"shareit/src/types"
)

type BookingService struct {
	store store.Store
	now   Clock
}

func NewBookingService(st store.Store, now Clock) *BookingService {
	return &BookingService{store: st, now: now}
}

// Create books itemID for userID. The owner of the item gets NotFound.
func (s *BookingService) Create(ctx context.Context, userID uint, body types.CreateBookingRequestBody) (types.APIResponseBooking, error) {
	var booking models.Booking
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		booker, err := requireUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		item, err := requireItem(ctx, tx, body.ItemID)
		if err != nil {
			return err
		}
		if item.OwnerID == userID {
			return types.NewNotFoundError("Owner of item %d may not book it", item.ID)
		}
		if !item.Available {
			return types.NewValidationError("Item %d is unavailable", item.ID)
		}
		if body.Start.IsZero() || body.End.IsZero() {
			return types.NewValidationError("Booking start and end must be set")
		}
		if !body.Start.Before(body.End.Time) {
			return types.NewValidationError("Booking start must be before its end")
		}
		booking = models.Booking{
			Start:    body.Start.Time,
			End:      body.End.Time,
			ItemID:   item.ID,
			BookerID: booker.ID,
			Status:   types.BOOKING_WAITING,
		}
		if err := tx.CreateBooking(ctx, &booking); err != nil {
			return err
		}
		booking.Item = item
		booking.Booker = booker
		return nil
	})
	if err != nil {
		return types.APIResponseBooking{}, err
	}
	lib.IncBookingCreated()
	log.Printf("[booking] %d created for item %d by user %d\n", booking.ID, booking.ItemID, booking.BookerID)
	return booking.ToResponse(), nil
}

// Decide approves or rejects a WAITING booking. Decisions are final.
func (s *BookingService) Decide(ctx context.Context, userID, bookingID uint, approved bool) (types.APIResponseBooking, error) {
	status := types.BOOKING_REJECTED
	if approved {
		status = types.BOOKING_APPROVED
	}
	var booking *models.Booking
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		if _, err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		b, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return notFound(err, "Booking with id=%d not found", bookingID)
		}
		if b.Status != types.BOOKING_WAITING {
			return types.NewValidationError("Booking %d has already been decided", bookingID)
		}
		if b.Item == nil || b.Item.OwnerID != userID {
			return types.NewValidationError("Only the owner of the item may decide on booking %d", bookingID)
		}
		decided, err := tx.DecideBooking(ctx, bookingID, status)
		if err != nil {
			return err
		}
		if !decided {
			return types.NewValidationError("Booking %d has already been decided", bookingID)
		}
		b.Status = status
		booking = b
		return nil
	})
	if err != nil {
		return types.APIResponseBooking{}, err
	}
	lib.IncBookingDecision(status)
	log.Printf("[booking] %d %s by user %d\n", bookingID, status, userID)
	return booking.ToResponse(), nil
}

// Get is visible to the booker and the item owner only.
func (s *BookingService) Get(ctx context.Context, userID, bookingID uint) (types.APIResponseBooking, error) {
	if _, err := requireUser(ctx, s.store, userID); err != nil {
		return types.APIResponseBooking{}, err
	}
	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return types.APIResponseBooking{}, notFound(err, "Booking with id=%d not found", bookingID)
	}
	isOwner := booking.Item != nil && booking.Item.OwnerID == userID
	if booking.BookerID != userID && !isOwner {
		return types.APIResponseBooking{}, types.NewValidationError("User %d may not view booking %d", userID, bookingID)
	}
	return booking.ToResponse(), nil
}

func (s *BookingService) ListByBooker(ctx context.Context, userID uint, state string) ([]types.APIResponseBooking, error) {
	return s.list(ctx, userID, state, func(f *store.BookingFilter) { f.BookerID = userID })
}

func (s *BookingService) ListByOwner(ctx context.Context, userID uint, state string) ([]types.APIResponseBooking, error) {
	return s.list(ctx, userID, state, func(f *store.BookingFilter) { f.OwnerID = userID })
}

func (s *BookingService) list(ctx context.Context, userID uint, state string, scope func(f *store.BookingFilter)) ([]types.APIResponseBooking, error) {
	if _, err := requireUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	st, err := types.ParseBookingState(state)
	if err != nil {
		return nil, err
	}
	filter := store.BookingFilter{State: st, Now: s.now()}
	scope(&filter)
	bookings, err := s.store.ListBookings(ctx, filter)
	if err != nil {
		return nil, err
	}
	res := make([]types.APIResponseBooking, 0, len(bookings))
	for i := range bookings {
		res = append(res, bookings[i].ToResponse())
	}
	return res, nil
}
