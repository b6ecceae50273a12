package services

import (
	"context"
	"testing"
	"time"

	"shareit/src/models"
	"shareit/src/store"
	"shareit/src/types"

	"github.com/stretchr/testify/suite"
)

type ServicesTestSuite struct {
	suite.Suite
	ctx   context.Context
	now   time.Time
	store *store.MemoryStore
	svc   *Services
}

func TestServicesTestSuite(t *testing.T) {
	suite.Run(t, new(ServicesTestSuite))
}

func (s *ServicesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.Local)
	s.store = store.NewMemoryStore()
	s.svc = New(s.store, nil, func() time.Time { return s.now })
}

func (s *ServicesTestSuite) user(name, email string) uint {
	u, err := s.svc.Users.Create(s.ctx, types.CreateUserRequestBody{Name: name, Email: email})
	s.Require().NoError(err)
	return u.ID
}

func (s *ServicesTestSuite) item(ownerID uint, name string, available bool) uint {
	desc := name + " for rent"
	it, err := s.svc.Items.Create(s.ctx, ownerID, types.ItemRequestBody{
		Name:        &name,
		Description: &desc,
		Available:   &available,
	})
	s.Require().NoError(err)
	return it.ID
}

// rawBooking bypasses the service so bookings can start in the past.
func (s *ServicesTestSuite) rawBooking(bookerID, itemID uint, start, end time.Time, status types.BookingStatus) uint {
	b := models.Booking{Start: start, End: end, ItemID: itemID, BookerID: bookerID, Status: status}
	s.Require().NoError(s.store.CreateBooking(s.ctx, &b))
	return b.ID
}

func (s *ServicesTestSuite) bookingBody(itemID uint, start, end time.Time) types.CreateBookingRequestBody {
	return types.CreateBookingRequestBody{
		ItemID: itemID,
		Start:  types.NewLocalDateTime(start),
		End:    types.NewLocalDateTime(end),
	}
}

func (s *ServicesTestSuite) TestCreateBookingRejectsBadInterval() {
	owner := s.user("Owner", "owner@example.com")
	booker := s.user("Booker", "booker@example.com")
	item := s.item(owner, "Drill", true)

	start := s.now.Add(time.Hour)
	for _, end := range []time.Time{start, start.Add(-time.Minute), start.Add(-48 * time.Hour)} {
		_, err := s.svc.Bookings.Create(s.ctx, booker, s.bookingBody(item, start, end))
		s.ErrorIs(err, types.ErrValidation)
	}

	_, err := s.svc.Bookings.Create(s.ctx, booker, types.CreateBookingRequestBody{ItemID: item})
	s.ErrorIs(err, types.ErrValidation)
}

func (s *ServicesTestSuite) TestOwnerCannotBookOwnItem() {
	owner := s.user("Owner", "owner@example.com")
	available := s.item(owner, "Drill", true)
	unavailable := s.item(owner, "Saw", false)

	_, err := s.svc.Bookings.Create(s.ctx, owner, s.bookingBody(available, s.now.Add(time.Hour), s.now.Add(2*time.Hour)))
	s.ErrorIs(err, types.ErrNotFound)

	// Reported as NotFound even when availability and interval are also wrong.
	_, err = s.svc.Bookings.Create(s.ctx, owner, s.bookingBody(unavailable, s.now.Add(2*time.Hour), s.now.Add(time.Hour)))
	s.ErrorIs(err, types.ErrNotFound)
}

func (s *ServicesTestSuite) TestCreateBookingOnUnavailableItem() {
	owner := s.user("Owner", "owner@example.com")
	booker := s.user("Booker", "booker@example.com")
	item := s.item(owner, "Saw", false)

	_, err := s.svc.Bookings.Create(s.ctx, booker, s.bookingBody(item, s.now.Add(time.Hour), s.now.Add(2*time.Hour)))
	s.ErrorIs(err, types.ErrValidation)
}

func (s *ServicesTestSuite) TestCreateBookingMissingReferences() {
	owner := s.user("Owner", "owner@example.com")
	item := s.item(owner, "Drill", true)

	_, err := s.svc.Bookings.Create(s.ctx, 999, s.bookingBody(item, s.now.Add(time.Hour), s.now.Add(2*time.Hour)))
	s.ErrorIs(err, types.ErrNotFound)

	_, err = s.svc.Bookings.Create(s.ctx, owner, s.bookingBody(999, s.now.Add(time.Hour), s.now.Add(2*time.Hour)))
	s.ErrorIs(err, types.ErrNotFound)
}

func (s *ServicesTestSuite) TestBookingScenario() {
	a := s.user("A", "a@example.com")
	b := s.user("B", "b@example.com")
	c := s.user("C", "c@example.com")
	item := s.item(a, "Drill", true)

	b1, err := s.svc.Bookings.Create(s.ctx, b, s.bookingBody(item, s.now.Add(time.Hour), s.now.Add(2*time.Hour)))
	s.Require().NoError(err)
	s.Equal(types.BOOKING_WAITING, b1.Status)
	s.Equal(b, b1.Booker.ID)
	s.Equal(item, b1.Item.ID)

	approved, err := s.svc.Bookings.Decide(s.ctx, a, b1.ID, true)
	s.Require().NoError(err)
	s.Equal(types.BOOKING_APPROVED, approved.Status)

	got, err := s.svc.Bookings.Get(s.ctx, b, b1.ID)
	s.Require().NoError(err)
	s.Equal(types.BOOKING_APPROVED, got.Status)

	_, err = s.svc.Bookings.Get(s.ctx, a, b1.ID)
	s.NoError(err)

	_, err = s.svc.Bookings.Get(s.ctx, c, b1.ID)
	s.ErrorIs(err, types.ErrValidation)

	_, err = s.svc.Bookings.Get(s.ctx, c, 999)
	s.ErrorIs(err, types.ErrNotFound)
}

func (s *ServicesTestSuite) TestDecideOnlyOnce() {
	owner := s.user("Owner", "owner@example.com")
	booker := s.user("Booker", "booker@example.com")
	item := s.item(owner, "Drill", true)
	booking, err := s.svc.Bookings.Create(s.ctx, booker, s.bookingBody(item, s.now.Add(time.Hour), s.now.Add(2*time.Hour)))
	s.Require().NoError(err)

	rejected, err := s.svc.Bookings.Decide(s.ctx, owner, booking.ID, false)
	s.Require().NoError(err)
	s.Equal(types.BOOKING_REJECTED, rejected.Status)

	_, err = s.svc.Bookings.Decide(s.ctx, owner, booking.ID, true)
	s.ErrorIs(err, types.ErrValidation)
	_, err = s.svc.Bookings.Decide(s.ctx, owner, booking.ID, false)
	s.ErrorIs(err, types.ErrValidation)

	stored, err := s.store.GetBooking(s.ctx, booking.ID)
	s.Require().NoError(err)
	s.Equal(types.BOOKING_REJECTED, stored.Status)

	_, err = s.svc.Bookings.Decide(s.ctx, owner, 999, true)
	s.ErrorIs(err, types.ErrNotFound)
}

func (s *ServicesTestSuite) TestDecideByNonOwner() {
	owner := s.user("Owner", "owner@example.com")
	booker := s.user("Booker", "booker@example.com")
	other := s.user("Other", "other@example.com")
	item := s.item(owner, "Drill", true)
	booking, err := s.svc.Bookings.Create(s.ctx, booker, s.bookingBody(item, s.now.Add(time.Hour), s.now.Add(2*time.Hour)))
	s.Require().NoError(err)

	_, err = s.svc.Bookings.Decide(s.ctx, booker, booking.ID, true)
	s.ErrorIs(err, types.ErrValidation)
	_, err = s.svc.Bookings.Decide(s.ctx, other, booking.ID, true)
	s.ErrorIs(err, types.ErrValidation)

	stored, err := s.store.GetBooking(s.ctx, booking.ID)
	s.Require().NoError(err)
	s.Equal(types.BOOKING_WAITING, stored.Status)
}

func (s *ServicesTestSuite) TestListBookingsByState() {
	owner := s.user("Owner", "owner@example.com")
	booker := s.user("Booker", "booker@example.com")
	item := s.item(owner, "Drill", true)
	h := time.Hour

	past := s.rawBooking(booker, item, s.now.Add(-10*h), s.now.Add(-9*h), types.BOOKING_APPROVED)
	current := s.rawBooking(booker, item, s.now.Add(-h), s.now.Add(h), types.BOOKING_APPROVED)
	future := s.rawBooking(booker, item, s.now.Add(5*h), s.now.Add(6*h), types.BOOKING_WAITING)
	rejected := s.rawBooking(booker, item, s.now.Add(8*h), s.now.Add(9*h), types.BOOKING_REJECTED)

	ids := func(res []types.APIResponseBooking) []uint {
		out := []uint{}
		for _, b := range res {
			out = append(out, b.ID)
		}
		return out
	}

	cases := map[string][]uint{
		"":         {rejected, future, current, past},
		"ALL":      {rejected, future, current, past},
		"all":      {rejected, future, current, past},
		"CURRENT":  {rejected, future, current},
		"PAST":     {past},
		"FUTURE":   {rejected, future},
		"WAITING":  {future},
		"rejected": {rejected},
	}
	for state, want := range cases {
		byBooker, err := s.svc.Bookings.ListByBooker(s.ctx, booker, state)
		s.Require().NoError(err, state)
		s.Equal(want, ids(byBooker), state)

		byOwner, err := s.svc.Bookings.ListByOwner(s.ctx, owner, state)
		s.Require().NoError(err, state)
		s.Equal(want, ids(byOwner), state)
	}

	none, err := s.svc.Bookings.ListByOwner(s.ctx, booker, "ALL")
	s.Require().NoError(err)
	s.Empty(none)

	_, err = s.svc.Bookings.ListByBooker(s.ctx, booker, "UNSUPPORTED_STATUS")
	s.ErrorIs(err, types.ErrIllegalArgument)
	_, err = s.svc.Bookings.ListByOwner(s.ctx, owner, "SOON")
	s.ErrorIs(err, types.ErrIllegalArgument)

	_, err = s.svc.Bookings.ListByBooker(s.ctx, 999, "ALL")
	s.ErrorIs(err, types.ErrNotFound)

	// An unknown user wins over an unknown state.
	_, err = s.svc.Bookings.ListByBooker(s.ctx, 999, "SOON")
	s.ErrorIs(err, types.ErrNotFound)
	_, err = s.svc.Bookings.ListByOwner(s.ctx, 999, "SOON")
	s.ErrorIs(err, types.ErrNotFound)
}

func (s *ServicesTestSuite) TestCommentRequiresPastBooking() {
	owner := s.user("Owner", "owner@example.com")
	booker := s.user("Booker", "booker@example.com")
	stranger := s.user("Stranger", "stranger@example.com")
	item := s.item(owner, "Drill", true)
	body := types.CreateCommentRequestBody{Text: "Works great"}

	_, err := s.svc.Items.CreateComment(s.ctx, stranger, item, body)
	s.ErrorIs(err, types.ErrValidation)

	s.rawBooking(booker, item, s.now.Add(time.Hour), s.now.Add(2*time.Hour), types.BOOKING_APPROVED)
	_, err = s.svc.Items.CreateComment(s.ctx, booker, item, body)
	s.ErrorIs(err, types.ErrValidation)

	// Any status qualifies once the booking has ended.
	s.rawBooking(booker, item, s.now.Add(-3*time.Hour), s.now.Add(-2*time.Hour), types.BOOKING_REJECTED)
	comment, err := s.svc.Items.CreateComment(s.ctx, booker, item, body)
	s.Require().NoError(err)
	s.Equal("Booker", comment.AuthorName)
	s.Equal(item, comment.ItemID)
	s.True(comment.Created.Equal(s.now))

	_, err = s.svc.Items.CreateComment(s.ctx, booker, item, types.CreateCommentRequestBody{Text: "  "})
	s.ErrorIs(err, types.ErrValidation)
	_, err = s.svc.Items.CreateComment(s.ctx, booker, 999, body)
	s.ErrorIs(err, types.ErrNotFound)
	_, err = s.svc.Items.CreateComment(s.ctx, 999, item, body)
	s.ErrorIs(err, types.ErrNotFound)

	got, err := s.svc.Items.Get(s.ctx, stranger, item)
	s.Require().NoError(err)
	s.Len(got.Comments, 1)
	s.Equal("Works great", got.Comments[0].Text)
}

func (s *ServicesTestSuite) TestDuplicateEmail() {
	first := s.user("First", "same@example.com")
	_, err := s.svc.Users.Create(s.ctx, types.CreateUserRequestBody{Name: "Second", Email: "same@example.com"})
	s.ErrorIs(err, types.ErrDuplicatedData)

	second := s.user("Second", "second@example.com")
	taken := "same@example.com"
	_, err = s.svc.Users.Update(s.ctx, second, types.UpdateUserRequestBody{Email: &taken})
	s.ErrorIs(err, types.ErrDuplicatedData)

	// Keeping one's own email is fine.
	name := "First Renamed"
	updated, err := s.svc.Users.Update(s.ctx, first, types.UpdateUserRequestBody{Name: &name, Email: &taken})
	s.Require().NoError(err)
	s.Equal("First Renamed", updated.Name)
	s.Equal("same@example.com", updated.Email)
}

func (s *ServicesTestSuite) TestUserLifecycle() {
	_, err := s.svc.Users.Create(s.ctx, types.CreateUserRequestBody{Name: " ", Email: "x@example.com"})
	s.ErrorIs(err, types.ErrValidation)
	_, err = s.svc.Users.Create(s.ctx, types.CreateUserRequestBody{Name: "X"})
	s.ErrorIs(err, types.ErrValidation)

	id := s.user("Ann", "ann@example.com")
	email := "ann.new@example.com"
	blank := ""
	updated, err := s.svc.Users.Update(s.ctx, id, types.UpdateUserRequestBody{Name: &blank, Email: &email})
	s.Require().NoError(err)
	s.Equal("Ann", updated.Name)
	s.Equal(email, updated.Email)

	got, err := s.svc.Users.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(updated, got)

	users, err := s.svc.Users.List(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 1)

	s.Require().NoError(s.svc.Users.Delete(s.ctx, id))
	_, err = s.svc.Users.Get(s.ctx, id)
	s.ErrorIs(err, types.ErrNotFound)
	s.ErrorIs(s.svc.Users.Delete(s.ctx, id), types.ErrNotFound)
	_, err = s.svc.Users.Update(s.ctx, id, types.UpdateUserRequestBody{Email: &email})
	s.ErrorIs(err, types.ErrNotFound)
}

func (s *ServicesTestSuite) TestDeleteUserCascades() {
	owner := s.user("Owner", "owner@example.com")
	booker := s.user("Booker", "booker@example.com")
	item := s.item(owner, "Drill", true)
	booking := s.rawBooking(booker, item, s.now.Add(-2*time.Hour), s.now.Add(-time.Hour), types.BOOKING_APPROVED)
	_, err := s.svc.Items.CreateComment(s.ctx, booker, item, types.CreateCommentRequestBody{Text: "ok"})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Users.Delete(s.ctx, owner))

	_, err = s.store.GetItem(s.ctx, item)
	s.ErrorIs(err, store.ErrRecordNotFound)
	_, err = s.store.GetBooking(s.ctx, booking)
	s.ErrorIs(err, store.ErrRecordNotFound)
	comments, err := s.store.ListComments(s.ctx, item)
	s.Require().NoError(err)
	s.Empty(comments)

	_, err = s.svc.Users.Get(s.ctx, booker)
	s.NoError(err)
}

func (s *ServicesTestSuite) TestSearch() {
	owner := s.user("Owner", "owner@example.com")
	s.item(owner, "Cordless Drill", true)
	s.item(owner, "Drill bits", false)
	s.item(owner, "Ladder", true)

	for _, text := range []string{"", "   "} {
		res, err := s.svc.Items.Search(s.ctx, owner, text)
		s.Require().NoError(err)
		s.NotNil(res)
		s.Empty(res)
	}

	res, err := s.svc.Items.Search(s.ctx, owner, "dRiLL")
	s.Require().NoError(err)
	s.Require().Len(res, 1)
	s.Equal("Cordless Drill", res[0].Name)

	res, err = s.svc.Items.Search(s.ctx, owner, "FOR RENT")
	s.Require().NoError(err)
	s.Len(res, 2)
}

func (s *ServicesTestSuite) TestItemEnrichmentIsOwnerOnly() {
	owner := s.user("Owner", "owner@example.com")
	booker := s.user("Booker", "booker@example.com")
	item := s.item(owner, "Drill", true)
	h := time.Hour

	s.rawBooking(booker, item, s.now.Add(-20*h), s.now.Add(-19*h), types.BOOKING_APPROVED)
	last := s.rawBooking(booker, item, s.now.Add(-10*h), s.now.Add(-9*h), types.BOOKING_APPROVED)
	s.rawBooking(booker, item, s.now.Add(-5*h), s.now.Add(-4*h), types.BOOKING_REJECTED)
	s.rawBooking(booker, item, s.now.Add(2*h), s.now.Add(3*h), types.BOOKING_WAITING)
	next := s.rawBooking(booker, item, s.now.Add(4*h), s.now.Add(5*h), types.BOOKING_APPROVED)
	s.rawBooking(booker, item, s.now.Add(8*h), s.now.Add(9*h), types.BOOKING_APPROVED)

	asOwner, err := s.svc.Items.Get(s.ctx, owner, item)
	s.Require().NoError(err)
	s.Require().NotNil(asOwner.LastBooking)
	s.Require().NotNil(asOwner.NextBooking)
	s.Equal(last, asOwner.LastBooking.ID)
	s.Equal(next, asOwner.NextBooking.ID)
	s.Equal(booker, asOwner.NextBooking.BookerID)

	asBooker, err := s.svc.Items.Get(s.ctx, booker, item)
	s.Require().NoError(err)
	s.Nil(asBooker.LastBooking)
	s.Nil(asBooker.NextBooking)

	owned, err := s.svc.Items.ListByOwner(s.ctx, owner)
	s.Require().NoError(err)
	s.Require().Len(owned, 1)
	s.Equal(last, owned[0].LastBooking.ID)

	_, err = s.svc.Items.Get(s.ctx, owner, 999)
	s.ErrorIs(err, types.ErrNotFound)
}

func (s *ServicesTestSuite) TestItemCreateAndUpdate() {
	owner := s.user("Owner", "owner@example.com")
	other := s.user("Other", "other@example.com")

	name := "Drill"
	_, err := s.svc.Items.Create(s.ctx, owner, types.ItemRequestBody{Name: &name})
	s.ErrorIs(err, types.ErrValidation)

	desc := "Powerful"
	_, err = s.svc.Items.Create(s.ctx, owner, types.ItemRequestBody{Name: &name, Description: &desc})
	s.ErrorIs(err, types.ErrValidation)

	yes := true
	_, err = s.svc.Items.Create(s.ctx, 999, types.ItemRequestBody{Name: &name, Description: &desc, Available: &yes})
	s.ErrorIs(err, types.ErrNotFound)

	missing := uint(999)
	_, err = s.svc.Items.Create(s.ctx, owner, types.ItemRequestBody{Name: &name, Description: &desc, Available: &yes, RequestID: &missing})
	s.ErrorIs(err, types.ErrNotFound)

	item := s.item(owner, "Drill", true)

	no := false
	newName := "Hammer drill"
	_, err = s.svc.Items.Update(s.ctx, other, item, types.ItemRequestBody{Available: &no})
	s.ErrorIs(err, types.ErrNotFound)
	_, err = s.svc.Items.Update(s.ctx, owner, 999, types.ItemRequestBody{Available: &no})
	s.ErrorIs(err, types.ErrNotFound)

	updated, err := s.svc.Items.Update(s.ctx, owner, item, types.ItemRequestBody{Name: &newName, Available: &no})
	s.Require().NoError(err)
	s.Equal("Hammer drill", updated.Name)
	s.Equal("Drill for rent", updated.Description)
	s.False(updated.Available)
	s.Equal(owner, updated.OwnerID)
}

func (s *ServicesTestSuite) TestItemRequests() {
	alice := s.user("Alice", "alice@example.com")
	bob := s.user("Bob", "bob@example.com")

	_, err := s.svc.Requests.Create(s.ctx, alice, types.CreateItemRequestRequestBody{Description: " "})
	s.ErrorIs(err, types.ErrValidation)
	_, err = s.svc.Requests.Create(s.ctx, 999, types.CreateItemRequestRequestBody{Description: "Need a tent"})
	s.ErrorIs(err, types.ErrNotFound)

	first, err := s.svc.Requests.Create(s.ctx, alice, types.CreateItemRequestRequestBody{Description: "Need a tent"})
	s.Require().NoError(err)
	s.Empty(first.Items)
	s.Equal(alice, first.RequestorID)

	s.now = s.now.Add(time.Minute)
	second, err := s.svc.Requests.Create(s.ctx, alice, types.CreateItemRequestRequestBody{Description: "Need a kayak"})
	s.Require().NoError(err)

	name, desc, yes := "Tent", "Two person tent", true
	reqID := first.ID
	tent, err := s.svc.Items.Create(s.ctx, bob, types.ItemRequestBody{Name: &name, Description: &desc, Available: &yes, RequestID: &reqID})
	s.Require().NoError(err)
	s.Require().NotNil(tent.RequestID)
	s.Equal(first.ID, *tent.RequestID)

	own, err := s.svc.Requests.ListOwn(s.ctx, alice)
	s.Require().NoError(err)
	s.Require().Len(own, 2)
	s.Equal(second.ID, own[0].ID)
	s.Equal(first.ID, own[1].ID)
	s.Require().Len(own[1].Items, 1)
	s.Equal(tent.ID, own[1].Items[0].ID)
	s.Equal(first.ID, own[1].Items[0].RequestID)

	fromBob, err := s.svc.Requests.ListAll(s.ctx, bob)
	s.Require().NoError(err)
	s.Len(fromBob, 2)
	fromAlice, err := s.svc.Requests.ListAll(s.ctx, alice)
	s.Require().NoError(err)
	s.Empty(fromAlice)
	anonymous, err := s.svc.Requests.ListAll(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(anonymous, 2)

	got, err := s.svc.Requests.Get(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Equal("Need a tent", got.Description)
	s.Len(got.Items, 1)

	_, err = s.svc.Requests.Get(s.ctx, 999)
	s.ErrorIs(err, types.ErrNotFound)
}
