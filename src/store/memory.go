package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"shareit/src/models"
	"shareit/src/types"
)

// MemoryStore keeps everything in process. Writes and transactions are
// serialized; a failed transaction restores the state it started from.
type MemoryStore struct {
	state *memoryState
	inTx  bool
}

type memoryState struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users    map[uint]models.User
	items    map[uint]models.Item
	bookings map[uint]models.Booking
	comments map[uint]models.Comment
	requests map[uint]models.ItemRequest
	seq      map[string]uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: &memoryState{
		users:    map[uint]models.User{},
		items:    map[uint]models.Item{},
		bookings: map[uint]models.Booking{},
		comments: map[uint]models.Comment{},
		requests: map[uint]models.ItemRequest{},
		seq:      map[string]uint{},
	}}
}

func (st *memoryState) next(table string) uint {
	st.seq[table]++
	return st.seq[table]
}

func (st *memoryState) snapshot() *memoryState {
	return &memoryState{
		users:    cloneMap(st.users),
		items:    cloneMap(st.items),
		bookings: cloneMap(st.bookings),
		comments: cloneMap(st.comments),
		requests: cloneMap(st.requests),
		seq:      cloneMap(st.seq),
	}
}

func (st *memoryState) restore(snap *memoryState) {
	st.users = snap.users
	st.items = snap.items
	st.bookings = snap.bookings
	st.comments = snap.comments
	st.requests = snap.requests
	st.seq = snap.seq
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *MemoryStore) write(fn func(st *memoryState) error) error {
	if !s.inTx {
		s.state.txMu.Lock()
		defer s.state.txMu.Unlock()
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return fn(s.state)
}

// read waits for any open transaction, so uncommitted writes are never visible.
func (s *MemoryStore) read(fn func(st *memoryState)) {
	if !s.inTx {
		s.state.txMu.Lock()
		defer s.state.txMu.Unlock()
	}
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	fn(s.state)
}

func (s *MemoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.state.txMu.Lock()
	defer s.state.txMu.Unlock()

	s.state.mu.RLock()
	snap := s.state.snapshot()
	s.state.mu.RUnlock()

	if err := fn(&MemoryStore{state: s.state, inTx: true}); err != nil {
		s.state.mu.Lock()
		s.state.restore(snap)
		s.state.mu.Unlock()
		return err
	}
	return nil
}

func (st *memoryState) emailTaken(email string, exceptID uint) bool {
	for _, u := range st.users {
		if u.ID != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	return s.write(func(st *memoryState) error {
		if st.emailTaken(user.Email, 0) {
			return ErrDuplicateKey
		}
		user.ID = st.next("users")
		now := time.Now()
		user.CreatedAt, user.UpdatedAt = now, now
		st.users[user.ID] = *user
		return nil
	})
}

func (s *MemoryStore) UpdateUser(ctx context.Context, user *models.User) error {
	return s.write(func(st *memoryState) error {
		current, ok := st.users[user.ID]
		if !ok {
			return ErrRecordNotFound
		}
		if st.emailTaken(user.Email, user.ID) {
			return ErrDuplicateKey
		}
		current.Name = user.Name
		current.Email = user.Email
		current.UpdatedAt = time.Now()
		st.users[user.ID] = current
		return nil
	})
}

func (s *MemoryStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var (
		user models.User
		ok   bool
	)
	s.read(func(st *memoryState) {
		user, ok = st.users[id]
	})
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &user, nil
}

func (s *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var found *models.User
	s.read(func(st *memoryState) {
		for _, u := range st.users {
			if u.Email == email {
				u := u
				found = &u
				return
			}
		}
	})
	if found == nil {
		return nil, ErrRecordNotFound
	}
	return found, nil
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	s.read(func(st *memoryState) {
		for _, u := range st.users {
			users = append(users, u)
		}
	})
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// DeleteUser cascades the same way the relational schema does.
func (s *MemoryStore) DeleteUser(ctx context.Context, id uint) error {
	return s.write(func(st *memoryState) error {
		if _, ok := st.users[id]; !ok {
			return ErrRecordNotFound
		}
		delete(st.users, id)
		for rid, r := range st.requests {
			if r.RequestorID == id {
				delete(st.requests, rid)
			}
		}
		for iid, item := range st.items {
			if item.OwnerID == id {
				delete(st.items, iid)
				continue
			}
			if item.RequestID != nil {
				if _, ok := st.requests[*item.RequestID]; !ok {
					item.RequestID = nil
					st.items[iid] = item
				}
			}
		}
		for bid, b := range st.bookings {
			if _, ok := st.items[b.ItemID]; !ok || b.BookerID == id {
				delete(st.bookings, bid)
			}
		}
		for cid, c := range st.comments {
			if _, ok := st.items[c.ItemID]; !ok || c.AuthorID == id {
				delete(st.comments, cid)
			}
		}
		return nil
	})
}

func (s *MemoryStore) CreateItem(ctx context.Context, item *models.Item) error {
	return s.write(func(st *memoryState) error {
		item.ID = st.next("items")
		now := time.Now()
		item.CreatedAt, item.UpdatedAt = now, now
		stored := *item
		stored.Owner, stored.Request = nil, nil
		st.items[item.ID] = stored
		return nil
	})
}

func (s *MemoryStore) UpdateItem(ctx context.Context, item *models.Item) error {
	return s.write(func(st *memoryState) error {
		current, ok := st.items[item.ID]
		if !ok {
			return ErrRecordNotFound
		}
		current.Name = item.Name
		current.Description = item.Description
		current.Available = item.Available
		current.UpdatedAt = time.Now()
		st.items[item.ID] = current
		return nil
	})
}

func (s *MemoryStore) GetItem(ctx context.Context, id uint) (*models.Item, error) {
	var (
		item models.Item
		ok   bool
	)
	s.read(func(st *memoryState) {
		item, ok = st.items[id]
	})
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &item, nil
}

func (s *MemoryStore) filterItems(keep func(models.Item) bool) []models.Item {
	var items []models.Item
	s.read(func(st *memoryState) {
		for _, item := range st.items {
			if keep(item) {
				items = append(items, item)
			}
		}
	})
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func (s *MemoryStore) ListItemsByOwner(ctx context.Context, ownerID uint) ([]models.Item, error) {
	return s.filterItems(func(item models.Item) bool {
		return item.OwnerID == ownerID
	}), nil
}

func (s *MemoryStore) SearchItems(ctx context.Context, text string) ([]models.Item, error) {
	needle := strings.ToLower(text)
	return s.filterItems(func(item models.Item) bool {
		return item.Available &&
			(strings.Contains(strings.ToLower(item.Name), needle) ||
				strings.Contains(strings.ToLower(item.Description), needle))
	}), nil
}

func (s *MemoryStore) ListItemsByRequests(ctx context.Context, requestIDs ...uint) ([]models.Item, error) {
	wanted := make(map[uint]bool, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = true
	}
	return s.filterItems(func(item models.Item) bool {
		return item.RequestID != nil && wanted[*item.RequestID]
	}), nil
}

func (s *MemoryStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return s.write(func(st *memoryState) error {
		booking.ID = st.next("bookings")
		stored := *booking
		stored.Item, stored.Booker = nil, nil
		st.bookings[booking.ID] = stored
		return nil
	})
}

// loaded attaches copies of the booking's item and booker. Caller holds the lock.
func (st *memoryState) loaded(b models.Booking) models.Booking {
	if item, ok := st.items[b.ItemID]; ok {
		b.Item = &item
	}
	if booker, ok := st.users[b.BookerID]; ok {
		b.Booker = &booker
	}
	return b
}

func (s *MemoryStore) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var (
		booking models.Booking
		ok      bool
	)
	s.read(func(st *memoryState) {
		booking, ok = st.bookings[id]
		if ok {
			booking = st.loaded(booking)
		}
	})
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &booking, nil
}

func (s *MemoryStore) DecideBooking(ctx context.Context, id uint, status types.BookingStatus) (bool, error) {
	decided := false
	err := s.write(func(st *memoryState) error {
		booking, ok := st.bookings[id]
		if !ok || booking.Status != types.BOOKING_WAITING {
			return nil
		}
		booking.Status = status
		st.bookings[id] = booking
		decided = true
		return nil
	})
	return decided, err
}

func matchesState(b models.Booking, state types.BookingState, now time.Time) bool {
	switch state {
	case types.BOOKING_STATE_CURRENT:
		return b.End.After(now)
	case types.BOOKING_STATE_PAST:
		return b.End.Before(now)
	case types.BOOKING_STATE_FUTURE:
		return b.Start.After(now)
	case types.BOOKING_STATE_WAITING:
		return b.Status == types.BOOKING_WAITING
	case types.BOOKING_STATE_REJECTED:
		return b.Status == types.BOOKING_REJECTED
	}
	return true
}

func (s *MemoryStore) ListBookings(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	var bookings []models.Booking
	s.read(func(st *memoryState) {
		for _, b := range st.bookings {
			if filter.BookerID != 0 && b.BookerID != filter.BookerID {
				continue
			}
			if filter.OwnerID != 0 && st.items[b.ItemID].OwnerID != filter.OwnerID {
				continue
			}
			if !matchesState(b, filter.State, filter.Now) {
				continue
			}
			bookings = append(bookings, st.loaded(b))
		}
	})
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].Start.Equal(bookings[j].Start) {
			return bookings[i].ID > bookings[j].ID
		}
		return bookings[i].Start.After(bookings[j].Start)
	})
	return bookings, nil
}

func (s *MemoryStore) LastBooking(ctx context.Context, itemID uint, now time.Time) (*models.Booking, error) {
	var last *models.Booking
	s.read(func(st *memoryState) {
		for _, b := range st.bookings {
			if b.ItemID != itemID || b.Status != types.BOOKING_APPROVED || !b.End.Before(now) {
				continue
			}
			if last == nil || b.End.After(last.End) {
				b := b
				last = &b
			}
		}
	})
	if last == nil {
		return nil, ErrRecordNotFound
	}
	return last, nil
}

func (s *MemoryStore) NextBooking(ctx context.Context, itemID uint, now time.Time) (*models.Booking, error) {
	var next *models.Booking
	s.read(func(st *memoryState) {
		for _, b := range st.bookings {
			if b.ItemID != itemID || b.Status != types.BOOKING_APPROVED || !b.Start.After(now) {
				continue
			}
			if next == nil || b.Start.Before(next.Start) {
				b := b
				next = &b
			}
		}
	})
	if next == nil {
		return nil, ErrRecordNotFound
	}
	return next, nil
}

func (s *MemoryStore) HasPastBooking(ctx context.Context, itemID, bookerID uint, now time.Time) (bool, error) {
	found := false
	s.read(func(st *memoryState) {
		for _, b := range st.bookings {
			if b.ItemID == itemID && b.BookerID == bookerID && b.End.Before(now) {
				found = true
				return
			}
		}
	})
	return found, nil
}

func (s *MemoryStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	return s.write(func(st *memoryState) error {
		comment.ID = st.next("comments")
		stored := *comment
		stored.Item, stored.Author = nil, nil
		st.comments[comment.ID] = stored
		return nil
	})
}

func (s *MemoryStore) ListComments(ctx context.Context, itemIDs ...uint) ([]models.Comment, error) {
	wanted := make(map[uint]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	var comments []models.Comment
	s.read(func(st *memoryState) {
		for _, c := range st.comments {
			if !wanted[c.ItemID] {
				continue
			}
			if author, ok := st.users[c.AuthorID]; ok {
				c.Author = &author
			}
			comments = append(comments, c)
		}
	})
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].Created.Equal(comments[j].Created) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].Created.Before(comments[j].Created)
	})
	return comments, nil
}

func (s *MemoryStore) CreateItemRequest(ctx context.Context, request *models.ItemRequest) error {
	return s.write(func(st *memoryState) error {
		request.ID = st.next("item_requests")
		stored := *request
		stored.Requestor = nil
		st.requests[request.ID] = stored
		return nil
	})
}

func (s *MemoryStore) GetItemRequest(ctx context.Context, id uint) (*models.ItemRequest, error) {
	var (
		request models.ItemRequest
		ok      bool
	)
	s.read(func(st *memoryState) {
		request, ok = st.requests[id]
	})
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &request, nil
}

func (s *MemoryStore) filterRequests(keep func(models.ItemRequest) bool) []models.ItemRequest {
	var requests []models.ItemRequest
	s.read(func(st *memoryState) {
		for _, r := range st.requests {
			if keep(r) {
				requests = append(requests, r)
			}
		}
	})
	sort.Slice(requests, func(i, j int) bool {
		if requests[i].Created.Equal(requests[j].Created) {
			return requests[i].ID > requests[j].ID
		}
		return requests[i].Created.After(requests[j].Created)
	})
	return requests
}

func (s *MemoryStore) ListItemRequestsByRequestor(ctx context.Context, requestorID uint) ([]models.ItemRequest, error) {
	return s.filterRequests(func(r models.ItemRequest) bool {
		return r.RequestorID == requestorID
	}), nil
}

func (s *MemoryStore) ListItemRequests(ctx context.Context, excludeRequestorID uint) ([]models.ItemRequest, error) {
	return s.filterRequests(func(r models.ItemRequest) bool {
		return excludeRequestorID == 0 || r.RequestorID != excludeRequestorID
	}), nil
}
