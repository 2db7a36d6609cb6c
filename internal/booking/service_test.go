package booking

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearshare/gearshare-backend/internal/item"
	"github.com/gearshare/gearshare-backend/internal/pkg/paging"
	"github.com/gearshare/gearshare-backend/internal/user"
)

// testNow is the fixed instant every test clock returns.
var testNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// fakeRepository keeps bookings in memory and mirrors the SQL listing
// semantics: selector predicates, start-descending order, offset paging.
type fakeRepository struct {
	bookings []*Booking
	nextID   int
	creates  int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1}
}

func (r *fakeRepository) Create(_ context.Context, b *Booking) error {
	r.creates++
	b.ID = fmt.Sprintf("booking-%d", r.nextID)
	r.nextID++
	b.CreatedAt = testNow
	clone := *b
	r.bookings = append(r.bookings, &clone)
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*Booking, error) {
	for _, b := range r.bookings {
		if b.ID == id {
			clone := *b
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepository) UpdateStatus(_ context.Context, id string, from, to Status) error {
	for _, b := range r.bookings {
		if b.ID == id && b.Status == from {
			b.Status = to
			return nil
		}
	}
	return ErrInvalidState
}

func (r *fakeRepository) ListByBooker(_ context.Context, bookerID string, sel Selector) ([]*Booking, error) {
	return r.list(sel, func(b *Booking) bool { return b.BookerID == bookerID }), nil
}

func (r *fakeRepository) ListByOwner(_ context.Context, ownerID string, sel Selector) ([]*Booking, error) {
	return r.list(sel, func(b *Booking) bool { return b.ItemOwnerID == ownerID }), nil
}

func (r *fakeRepository) list(sel Selector, match func(*Booking) bool) []*Booking {
	var out []*Booking
	for _, b := range r.bookings {
		if !match(b) {
			continue
		}
		switch {
		case sel.Status != nil && b.Status != *sel.Status:
			continue
		case sel.CurrentAt != nil && (b.Start.After(*sel.CurrentAt) || b.End.Before(*sel.CurrentAt)):
			continue
		case sel.EndBefore != nil && !b.End.Before(*sel.EndBefore):
			continue
		case sel.StartAfter != nil && !b.Start.After(*sel.StartAfter):
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.After(out[j].Start) })
	lo, hi := sel.Page.Bounds(len(out))
	return out[lo:hi]
}

type fakeItemCatalog struct {
	items map[string]*item.Item
}

func (c *fakeItemCatalog) GetItem(_ context.Context, id string) (*item.Item, error) {
	it, ok := c.items[id]
	if !ok {
		return nil, item.ErrNotFound
	}
	return it, nil
}

type fakeUserDirectory struct {
	users map[string]*user.User
}

func (d *fakeUserDirectory) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

// fixture wires a service over the fakes with a fixed clock.
type fixture struct {
	repo    *fakeRepository
	catalog *fakeItemCatalog
	users   *fakeUserDirectory
	service Service
}

func newFixture() *fixture {
	repo := newFakeRepository()
	catalog := &fakeItemCatalog{items: map[string]*item.Item{}}
	users := &fakeUserDirectory{users: map[string]*user.User{}}
	return &fixture{
		repo:    repo,
		catalog: catalog,
		users:   users,
		service: NewServiceWithClock(repo, catalog, users, fixedClock),
	}
}

func (f *fixture) addUser(id, name string) {
	f.users.users[id] = &user.User{ID: id, Name: name, Email: id + "@example.com"}
}

func (f *fixture) addItem(id, ownerID, name string, available bool) {
	f.catalog.items[id] = &item.Item{ID: id, OwnerID: ownerID, Name: name, Available: available}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	setup := func() *fixture {
		f := newFixture()
		f.addUser("owner", "Olga")
		f.addUser("booker", "Boris")
		f.addItem("drill", "owner", "Cordless Drill", true)
		f.addItem("broken-ladder", "owner", "Broken Ladder", false)
		return f
	}

	t.Run("Success: new booking starts waiting", func(t *testing.T) {
		f := setup()

		b, err := f.service.Create(ctx, CreateRequest{
			BookerID: "booker",
			ItemID:   "drill",
			Start:    testNow.Add(1 * time.Hour),
			End:      testNow.Add(3 * time.Hour),
		})
		require.NoError(t, err)

		assert.NotEmpty(t, b.ID)
		assert.Equal(t, StatusWaiting, b.Status)
		assert.Equal(t, "drill", b.ItemID)
		assert.Equal(t, "Cordless Drill", b.ItemName)
		assert.Equal(t, "owner", b.ItemOwnerID)
		assert.Equal(t, "booker", b.BookerID)
		assert.Equal(t, "Boris", b.BookerName)
	})

	t.Run("Invalid window: nothing is written", func(t *testing.T) {
		f := setup()

		windows := []struct {
			name       string
			start, end time.Time
		}{
			{"start in the past", testNow.Add(-time.Hour), testNow.Add(time.Hour)},
			{"end in the past", testNow.Add(-3 * time.Hour), testNow.Add(-time.Hour)},
			{"end equals start", testNow.Add(time.Hour), testNow.Add(time.Hour)},
			{"end before start", testNow.Add(3 * time.Hour), testNow.Add(time.Hour)},
		}
		for _, w := range windows {
			_, err := f.service.Create(ctx, CreateRequest{
				BookerID: "booker",
				ItemID:   "drill",
				Start:    w.start,
				End:      w.end,
			})
			assert.ErrorIs(t, err, ErrInvalidTimeWindow, w.name)
		}
		assert.Zero(t, f.repo.creates)
	})

	t.Run("Unavailable item is rejected", func(t *testing.T) {
		f := setup()

		_, err := f.service.Create(ctx, CreateRequest{
			BookerID: "booker",
			ItemID:   "broken-ladder",
			Start:    testNow.Add(time.Hour),
			End:      testNow.Add(2 * time.Hour),
		})
		assert.ErrorIs(t, err, ErrItemUnavailable)
		assert.Zero(t, f.repo.creates)
	})

	t.Run("Owner cannot book their own item", func(t *testing.T) {
		f := setup()

		_, err := f.service.Create(ctx, CreateRequest{
			BookerID: "owner",
			ItemID:   "drill",
			Start:    testNow.Add(time.Hour),
			End:      testNow.Add(2 * time.Hour),
		})
		assert.ErrorIs(t, err, ErrOwnItem)
	})

	t.Run("Unknown item", func(t *testing.T) {
		f := setup()

		_, err := f.service.Create(ctx, CreateRequest{
			BookerID: "booker",
			ItemID:   "no-such-item",
			Start:    testNow.Add(time.Hour),
			End:      testNow.Add(2 * time.Hour),
		})
		assert.ErrorIs(t, err, item.ErrNotFound)
	})

	t.Run("Unknown booker", func(t *testing.T) {
		f := setup()

		_, err := f.service.Create(ctx, CreateRequest{
			BookerID: "ghost",
			ItemID:   "drill",
			Start:    testNow.Add(time.Hour),
			End:      testNow.Add(2 * time.Hour),
		})
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestSetApproval(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *Booking) {
		f := newFixture()
		f.addUser("owner", "Olga")
		f.addUser("booker", "Boris")
		f.addUser("stranger", "Sven")
		f.addItem("drill", "owner", "Cordless Drill", true)

		b, err := f.service.Create(ctx, CreateRequest{
			BookerID: "booker",
			ItemID:   "drill",
			Start:    testNow.Add(time.Hour),
			End:      testNow.Add(2 * time.Hour),
		})
		require.NoError(t, err)
		return f, b
	}

	t.Run("Approve: only the status changes", func(t *testing.T) {
		f, created := setup(t)

		b, err := f.service.SetApproval(ctx, created.ID, true, "owner")
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, b.Status)

		stored, err := f.repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, stored.Status)
		assert.Equal(t, created.ItemID, stored.ItemID)
		assert.Equal(t, created.BookerID, stored.BookerID)
		assert.True(t, created.Start.Equal(stored.Start))
		assert.True(t, created.End.Equal(stored.End))
	})

	t.Run("Reject", func(t *testing.T) {
		f, created := setup(t)

		b, err := f.service.SetApproval(ctx, created.ID, false, "owner")
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, b.Status)
	})

	t.Run("Second decision fails", func(t *testing.T) {
		f, created := setup(t)

		_, err := f.service.SetApproval(ctx, created.ID, true, "owner")
		require.NoError(t, err)

		_, err = f.service.SetApproval(ctx, created.ID, true, "owner")
		assert.ErrorIs(t, err, ErrInvalidState)

		_, err = f.service.SetApproval(ctx, created.ID, false, "owner")
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("Only the owner decides", func(t *testing.T) {
		f, created := setup(t)

		_, err := f.service.SetApproval(ctx, created.ID, true, "booker")
		assert.ErrorIs(t, err, ErrNotAuthorized)

		_, err = f.service.SetApproval(ctx, created.ID, true, "stranger")
		assert.ErrorIs(t, err, ErrNotAuthorized)

		stored, err := f.repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusWaiting, stored.Status)
	})

	t.Run("Unknown booking", func(t *testing.T) {
		f, _ := setup(t)

		_, err := f.service.SetApproval(ctx, "no-such-booking", true, "owner")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Unknown actor", func(t *testing.T) {
		f, created := setup(t)

		_, err := f.service.SetApproval(ctx, created.ID, true, "ghost")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestGetBookingByID(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	f.addUser("owner", "Olga")
	f.addUser("booker", "Boris")
	f.addUser("stranger", "Sven")
	f.addItem("drill", "owner", "Cordless Drill", true)

	created, err := f.service.Create(ctx, CreateRequest{
		BookerID: "booker",
		ItemID:   "drill",
		Start:    testNow.Add(time.Hour),
		End:      testNow.Add(2 * time.Hour),
	})
	require.NoError(t, err)

	t.Run("Booker may read", func(t *testing.T) {
		b, err := f.service.GetByID(ctx, created.ID, "booker")
		require.NoError(t, err)
		assert.Equal(t, created.ID, b.ID)
	})

	t.Run("Item owner may read", func(t *testing.T) {
		b, err := f.service.GetByID(ctx, created.ID, "owner")
		require.NoError(t, err)
		assert.Equal(t, created.ID, b.ID)
	})

	t.Run("Anyone else may not", func(t *testing.T) {
		_, err := f.service.GetByID(ctx, created.ID, "stranger")
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("Unknown booking", func(t *testing.T) {
		_, err := f.service.GetByID(ctx, "no-such-booking", "booker")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

// seedBooking inserts a booking directly into the fake store, bypassing the
// creation-time window validation so past and current windows can be staged.
func seedBooking(f *fixture, itemID, ownerID, bookerID string, start, end time.Time, status Status) *Booking {
	b := &Booking{
		ItemID:      itemID,
		ItemName:    itemID,
		ItemOwnerID: ownerID,
		BookerID:    bookerID,
		BookerName:  bookerID,
		Start:       start,
		End:         end,
		Status:      status,
	}
	_ = f.repo.Create(context.Background(), b)
	f.repo.creates--
	return b
}

func TestListBookings(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	f.addUser("owner", "Olga")
	f.addUser("booker", "Boris")
	f.addUser("other", "Oscar")
	f.addItem("drill", "owner", "Cordless Drill", true)

	h := time.Hour
	// Six bookings of Boris on Olga's item, staged around the fixed clock.
	past := seedBooking(f, "drill", "owner", "booker", testNow.Add(-10*h), testNow.Add(-8*h), StatusApproved)
	currentEdge := seedBooking(f, "drill", "owner", "booker", testNow.Add(-2*h), testNow, StatusApproved) // ends exactly now
	current := seedBooking(f, "drill", "owner", "booker", testNow.Add(-1*h), testNow.Add(1*h), StatusApproved)
	rejected := seedBooking(f, "drill", "owner", "booker", testNow.Add(2*h), testNow.Add(3*h), StatusRejected)
	waiting := seedBooking(f, "drill", "owner", "booker", testNow.Add(4*h), testNow.Add(5*h), StatusWaiting)
	future := seedBooking(f, "drill", "owner", "booker", testNow.Add(6*h), testNow.Add(7*h), StatusApproved)

	// Olga also rents from someone else; her own rental must never show up in
	// her owner listing.
	f.addUser("neighbor", "Nadia")
	f.addItem("mower", "neighbor", "Lawn Mower", true)
	ownersOwnRental := seedBooking(f, "mower", "neighbor", "owner", testNow.Add(1*h), testNow.Add(2*h), StatusWaiting)

	ids := func(bs []*Booking) []string {
		out := make([]string, len(bs))
		for i, b := range bs {
			out[i] = b.ID
		}
		return out
	}

	t.Run("ALL returns everything, newest start first", func(t *testing.T) {
		got, err := f.service.ListForBooker(ctx, "booker", StateAll, paging.Unpaged())
		require.NoError(t, err)
		assert.Equal(t, []string{future.ID, waiting.ID, rejected.ID, current.ID, currentEdge.ID, past.ID}, ids(got))
	})

	t.Run("State filters for the booker", func(t *testing.T) {
		cases := []struct {
			state State
			want  []string
		}{
			{StateCurrent, []string{current.ID, currentEdge.ID}}, // end == now is still current
			{StatePast, []string{past.ID}},
			{StateFuture, []string{future.ID, waiting.ID, rejected.ID}},
			{StateWaiting, []string{waiting.ID}},
			{StateRejected, []string{rejected.ID}},
		}
		for _, tc := range cases {
			got, err := f.service.ListForBooker(ctx, "booker", tc.state, paging.Unpaged())
			require.NoError(t, err, string(tc.state))
			assert.Equal(t, tc.want, ids(got), string(tc.state))
		}
	})

	t.Run("Owner listing matches item ownership only", func(t *testing.T) {
		got, err := f.service.ListForOwner(ctx, "owner", StateAll, paging.Unpaged())
		require.NoError(t, err)
		assert.Equal(t, []string{future.ID, waiting.ID, rejected.ID, current.ID, currentEdge.ID, past.ID}, ids(got))
		assert.NotContains(t, ids(got), ownersOwnRental.ID)

		got, err = f.service.ListForOwner(ctx, "neighbor", StateAll, paging.Unpaged())
		require.NoError(t, err)
		assert.Equal(t, []string{ownersOwnRental.ID}, ids(got))
	})

	t.Run("Paging slices the ordered sequence", func(t *testing.T) {
		from, size := 1, 4
		page, err := paging.New(&from, &size)
		require.NoError(t, err)

		got, err := f.service.ListForBooker(ctx, "booker", StateAll, page)
		require.NoError(t, err)
		assert.Equal(t, []string{waiting.ID, rejected.ID, current.ID, currentEdge.ID}, ids(got))
	})

	t.Run("Page past the end is empty", func(t *testing.T) {
		from, size := 100, 10
		page, err := paging.New(&from, &size)
		require.NoError(t, err)

		got, err := f.service.ListForBooker(ctx, "booker", StateAll, page)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Unknown state", func(t *testing.T) {
		_, err := f.service.ListForBooker(ctx, "booker", State("SOMEDAY"), paging.Unpaged())
		assert.ErrorIs(t, err, ErrUnknownState)

		_, err = f.service.ListForOwner(ctx, "owner", State("SOMEDAY"), paging.Unpaged())
		assert.ErrorIs(t, err, ErrUnknownState)
	})

	t.Run("Unknown user", func(t *testing.T) {
		_, err := f.service.ListForBooker(ctx, "ghost", StateAll, paging.Unpaged())
		assert.ErrorIs(t, err, user.ErrNotFound)

		_, err = f.service.ListForOwner(ctx, "ghost", StateAll, paging.Unpaged())
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

// A full walk through one booking's life: request, owner approval, and a
// booker trying to overturn the decision.
func TestBookingLifecycleScenario(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	f.addUser("olga", "Olga")
	f.addUser("boris", "Boris")
	f.addItem("projector", "olga", "4K Projector", true)

	b, err := f.service.Create(ctx, CreateRequest{
		BookerID: "boris",
		ItemID:   "projector",
		Start:    time.Date(2032, 9, 15, 9, 19, 0, 0, time.UTC),
		End:      time.Date(2033, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, StatusWaiting, b.Status)

	approved, err := f.service.SetApproval(ctx, b.ID, true, "olga")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)

	_, err = f.service.SetApproval(ctx, b.ID, false, "boris")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	stored, err := f.service.GetByID(ctx, b.ID, "olga")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, stored.Status)
}
