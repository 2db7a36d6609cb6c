package item

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearshare/gearshare-backend/internal/pkg/paging"
	"github.com/gearshare/gearshare-backend/internal/user"
)

var testNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

// finishedRental marks one approved, already-ended booking of an item by a
// user; the fake repository answers HasFinishedBooking from these.
type finishedRental struct {
	itemID string
	userID string
}

type fakeRepository struct {
	items    map[string]*Item
	comments map[string][]Comment
	finished []finishedRental
	last     map[string]*BookingBrief
	next     map[string]*BookingBrief
	nextID   int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		items:    map[string]*Item{},
		comments: map[string][]Comment{},
		last:     map[string]*BookingBrief{},
		next:     map[string]*BookingBrief{},
		nextID:   1,
	}
}

func (r *fakeRepository) Create(_ context.Context, it *Item) error {
	it.ID = fmt.Sprintf("item-%d", r.nextID)
	r.nextID++
	it.CreatedAt = testNow
	clone := *it
	r.items[it.ID] = &clone
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *it
	return &clone, nil
}

func (r *fakeRepository) Update(_ context.Context, it *Item) error {
	if _, ok := r.items[it.ID]; !ok {
		return ErrNotFound
	}
	clone := *it
	r.items[it.ID] = &clone
	return nil
}

func (r *fakeRepository) ListByOwner(_ context.Context, ownerID string, page paging.Page) ([]*Item, error) {
	var out []*Item
	for _, it := range r.items {
		if it.OwnerID == ownerID {
			clone := *it
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	lo, hi := page.Bounds(len(out))
	return out[lo:hi], nil
}

func (r *fakeRepository) Search(_ context.Context, text string, page paging.Page) ([]*Item, error) {
	needle := strings.ToLower(text)
	var out []*Item
	for _, it := range r.items {
		if !it.Available {
			continue
		}
		if strings.Contains(strings.ToLower(it.Name), needle) ||
			strings.Contains(strings.ToLower(it.Description), needle) {
			clone := *it
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	lo, hi := page.Bounds(len(out))
	return out[lo:hi], nil
}

func (r *fakeRepository) Comments(_ context.Context, itemID string) ([]Comment, error) {
	return r.comments[itemID], nil
}

func (r *fakeRepository) CreateComment(_ context.Context, c *Comment) error {
	c.ID = fmt.Sprintf("comment-%d", r.nextID)
	r.nextID++
	r.comments[c.ItemID] = append(r.comments[c.ItemID], *c)
	return nil
}

func (r *fakeRepository) HasFinishedBooking(_ context.Context, itemID, userID string, _ time.Time) (bool, error) {
	for _, fr := range r.finished {
		if fr.itemID == itemID && fr.userID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepository) LastBooking(_ context.Context, itemID string, _ time.Time) (*BookingBrief, error) {
	return r.last[itemID], nil
}

func (r *fakeRepository) NextBooking(_ context.Context, itemID string, _ time.Time) (*BookingBrief, error) {
	return r.next[itemID], nil
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

type fakeRequestDirectory struct {
	known map[string]bool
	err   error
}

func (d *fakeRequestDirectory) Exists(_ context.Context, id string) error {
	if d.known[id] {
		return nil
	}
	return d.err
}

type fixture struct {
	repo     *fakeRepository
	users    *fakeUserDirectory
	requests *fakeRequestDirectory
	service  Service
}

func newFixture() *fixture {
	repo := newFakeRepository()
	users := &fakeUserDirectory{users: map[string]*user.User{}}
	requests := &fakeRequestDirectory{known: map[string]bool{}, err: ErrNotFound}
	return &fixture{
		repo:     repo,
		users:    users,
		requests: requests,
		service:  NewServiceWithClock(repo, users, requests, func() time.Time { return testNow }),
	}
}

func (f *fixture) addUser(id, name string) {
	f.users.users[id] = &user.User{ID: id, Name: name, Email: id + "@example.com"}
}

func TestCreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		f.addUser("owner", "Olga")

		it, err := f.service.Create(ctx, CreateRequest{
			OwnerID:     "owner",
			Name:        "Cordless Drill",
			Description: "18V, two batteries",
			Available:   true,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, it.ID)
		assert.Equal(t, "owner", it.OwnerID)
		assert.True(t, it.Available)
		assert.Nil(t, it.RequestID)
	})

	t.Run("Blank name or description", func(t *testing.T) {
		f := newFixture()
		f.addUser("owner", "Olga")

		_, err := f.service.Create(ctx, CreateRequest{OwnerID: "owner", Name: "  ", Description: "d"})
		assert.ErrorIs(t, err, ErrNameRequired)

		_, err = f.service.Create(ctx, CreateRequest{OwnerID: "owner", Name: "n", Description: "\t"})
		assert.ErrorIs(t, err, ErrDescriptionRequired)
	})

	t.Run("Unknown owner", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Create(ctx, CreateRequest{OwnerID: "ghost", Name: "n", Description: "d"})
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("Answering a request requires the request to exist", func(t *testing.T) {
		f := newFixture()
		f.addUser("owner", "Olga")
		f.requests.known["req-1"] = true

		known := "req-1"
		it, err := f.service.Create(ctx, CreateRequest{
			OwnerID:     "owner",
			Name:        "Ladder",
			Description: "3m aluminium",
			Available:   true,
			RequestID:   &known,
		})
		require.NoError(t, err)
		require.NotNil(t, it.RequestID)
		assert.Equal(t, "req-1", *it.RequestID)

		unknown := "req-missing"
		_, err = f.service.Create(ctx, CreateRequest{
			OwnerID:     "owner",
			Name:        "Ladder",
			Description: "3m aluminium",
			RequestID:   &unknown,
		})
		assert.Error(t, err)
	})
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *Item) {
		f := newFixture()
		f.addUser("owner", "Olga")
		f.addUser("other", "Oscar")
		it, err := f.service.Create(ctx, CreateRequest{
			OwnerID:     "owner",
			Name:        "Cordless Drill",
			Description: "18V",
			Available:   true,
		})
		require.NoError(t, err)
		return f, it
	}

	t.Run("Owner patches a subset of fields", func(t *testing.T) {
		f, it := setup(t)

		off := false
		updated, err := f.service.Update(ctx, it.ID, UpdateRequest{Available: &off}, "owner")
		require.NoError(t, err)
		assert.False(t, updated.Available)
		assert.Equal(t, "Cordless Drill", updated.Name)
		assert.Equal(t, "18V", updated.Description)

		name := "Hammer Drill"
		updated, err = f.service.Update(ctx, it.ID, UpdateRequest{Name: &name}, "owner")
		require.NoError(t, err)
		assert.Equal(t, "Hammer Drill", updated.Name)
		assert.False(t, updated.Available)
	})

	t.Run("Non-owner is rejected", func(t *testing.T) {
		f, it := setup(t)

		name := "Stolen Drill"
		_, err := f.service.Update(ctx, it.ID, UpdateRequest{Name: &name}, "other")
		assert.ErrorIs(t, err, ErrNotOwner)

		stored, err := f.repo.GetByID(ctx, it.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cordless Drill", stored.Name)
	})

	t.Run("Blank patch values are rejected", func(t *testing.T) {
		f, it := setup(t)

		blank := "   "
		_, err := f.service.Update(ctx, it.ID, UpdateRequest{Name: &blank}, "owner")
		assert.ErrorIs(t, err, ErrNameRequired)

		_, err = f.service.Update(ctx, it.ID, UpdateRequest{Description: &blank}, "owner")
		assert.ErrorIs(t, err, ErrDescriptionRequired)
	})

	t.Run("Unknown item", func(t *testing.T) {
		f, _ := setup(t)

		name := "x"
		_, err := f.service.Update(ctx, "no-such-item", UpdateRequest{Name: &name}, "owner")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestItemDetails(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	f.addUser("owner", "Olga")
	f.addUser("viewer", "Vera")

	it, err := f.service.Create(ctx, CreateRequest{
		OwnerID:     "owner",
		Name:        "Cordless Drill",
		Description: "18V",
		Available:   true,
	})
	require.NoError(t, err)

	f.repo.last[it.ID] = &BookingBrief{ID: "b-last", BookerID: "viewer", Start: testNow.Add(-2 * time.Hour), End: testNow.Add(-time.Hour)}
	f.repo.next[it.ID] = &BookingBrief{ID: "b-next", BookerID: "viewer", Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour)}
	f.repo.comments[it.ID] = []Comment{{ID: "c1", ItemID: it.ID, AuthorID: "viewer", AuthorName: "Vera", Text: "worked great"}}

	t.Run("Owner sees last and next bookings", func(t *testing.T) {
		d, err := f.service.GetByID(ctx, it.ID, "owner")
		require.NoError(t, err)
		require.NotNil(t, d.LastBooking)
		require.NotNil(t, d.NextBooking)
		assert.Equal(t, "b-last", d.LastBooking.ID)
		assert.Equal(t, "b-next", d.NextBooking.ID)
		assert.Len(t, d.Comments, 1)
	})

	t.Run("Other viewers see comments but no booking info", func(t *testing.T) {
		d, err := f.service.GetByID(ctx, it.ID, "viewer")
		require.NoError(t, err)
		assert.Nil(t, d.LastBooking)
		assert.Nil(t, d.NextBooking)
		assert.Len(t, d.Comments, 1)
	})
}

func TestSearchItems(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	f.addUser("owner", "Olga")

	mk := func(name, desc string, available bool) {
		_, err := f.service.Create(ctx, CreateRequest{
			OwnerID:     "owner",
			Name:        name,
			Description: desc,
			Available:   available,
		})
		require.NoError(t, err)
	}
	mk("Cordless Drill", "18V hammer mode", true)
	mk("Drill Press", "bench mounted", false)
	mk("Ladder", "3m, includes drill holster", true)

	t.Run("Matches name and description, available only", func(t *testing.T) {
		got, err := f.service.Search(ctx, "drill", paging.Unpaged())
		require.NoError(t, err)
		require.Len(t, got, 2)
		names := []string{got[0].Name, got[1].Name}
		assert.Contains(t, names, "Cordless Drill")
		assert.Contains(t, names, "Ladder")
	})

	t.Run("Blank text returns an empty list without touching storage", func(t *testing.T) {
		got, err := f.service.Search(ctx, "   ", paging.Unpaged())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *Item) {
		f := newFixture()
		f.addUser("owner", "Olga")
		f.addUser("renter", "Rita")
		f.addUser("browser", "Ben")
		it, err := f.service.Create(ctx, CreateRequest{
			OwnerID:     "owner",
			Name:        "Cordless Drill",
			Description: "18V",
			Available:   true,
		})
		require.NoError(t, err)
		return f, it
	}

	t.Run("Finished renter may comment", func(t *testing.T) {
		f, it := setup(t)
		f.repo.finished = append(f.repo.finished, finishedRental{itemID: it.ID, userID: "renter"})

		c, err := f.service.AddComment(ctx, it.ID, "renter", "worked great")
		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, "Rita", c.AuthorName)
		assert.True(t, c.Created.Equal(testNow))
	})

	t.Run("Without a finished rental the comment is refused", func(t *testing.T) {
		f, it := setup(t)

		_, err := f.service.AddComment(ctx, it.ID, "browser", "looks nice")
		assert.ErrorIs(t, err, ErrCommentNotAllowed)
	})

	t.Run("Blank text", func(t *testing.T) {
		f, it := setup(t)

		_, err := f.service.AddComment(ctx, it.ID, "renter", "  ")
		assert.ErrorIs(t, err, ErrCommentRequired)
	})

	t.Run("Unknown author", func(t *testing.T) {
		f, it := setup(t)

		_, err := f.service.AddComment(ctx, it.ID, "ghost", "hi")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}
