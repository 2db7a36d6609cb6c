package booking

import (
	"context"
	"time"

	"github.com/gearshare/gearshare-backend/internal/item"
	"github.com/gearshare/gearshare-backend/internal/pkg/paging"
	"github.com/gearshare/gearshare-backend/internal/user"
)

// ItemCatalog is the slice of the item module the booking service needs.
type ItemCatalog interface {
	GetItem(ctx context.Context, id string) (*item.Item, error)
}

// UserDirectory is the slice of the user module the booking service needs.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// CreateRequest carries the input for a new booking.
type CreateRequest struct {
	BookerID string
	ItemID   string
	Start    time.Time
	End      time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	// SetApproval moves a WAITING booking to APPROVED or REJECTED. Only the
	// owner of the booked item may call it, and only once per booking.
	SetApproval(ctx context.Context, bookingID string, approved bool, actorID string) (*Booking, error)

	// GetByID returns a booking to its booker or the item's owner.
	GetByID(ctx context.Context, bookingID, actorID string) (*Booking, error)

	ListForBooker(ctx context.Context, bookerID string, state State, page paging.Page) ([]*Booking, error)
	ListForOwner(ctx context.Context, ownerID string, state State, page paging.Page) ([]*Booking, error)
}

type service struct {
	repo  Repository
	items ItemCatalog
	users UserDirectory
	now   func() time.Time
}

func NewService(repo Repository, items ItemCatalog, users UserDirectory) Service {
	return NewServiceWithClock(repo, items, users, time.Now)
}

// NewServiceWithClock creates a Service with an explicit clock. Tests use a
// fixed clock so the time-relative filters stay deterministic.
func NewServiceWithClock(repo Repository, items ItemCatalog, users UserDirectory, clock func() time.Time) Service {
	return &service{
		repo:  repo,
		items: items,
		users: users,
		now:   clock,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// Every check below must pass before the single insert; no failure path
	// writes anything.
	if err := validateWindow(req.Start, req.End, s.now()); err != nil {
		return nil, err
	}

	it, err := s.items.GetItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.Available {
		return nil, ErrItemUnavailable
	}
	if req.BookerID == it.OwnerID {
		return nil, ErrOwnItem
	}

	booker, err := s.users.GetByID(ctx, req.BookerID)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		ItemID:      it.ID,
		ItemName:    it.Name,
		ItemOwnerID: it.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
		Start:       req.Start,
		End:         req.End,
		Status:      StatusWaiting,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) SetApproval(ctx context.Context, bookingID string, approved bool, actorID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	if actorID != b.ItemOwnerID {
		return nil, ErrNotAuthorized
	}
	if b.Status != StatusWaiting {
		return nil, ErrInvalidState
	}

	to := StatusRejected
	if approved {
		to = StatusApproved
	}

	if err := s.repo.UpdateStatus(ctx, b.ID, StatusWaiting, to); err != nil {
		return nil, err
	}

	// Only the status changed; every other attribute is carried through from
	// the pre-transition record.
	b.Status = to
	return b, nil
}

func (s *service) GetByID(ctx context.Context, bookingID, actorID string) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if actorID != b.BookerID && actorID != b.ItemOwnerID {
		return nil, ErrNotAuthorized
	}

	return b, nil
}

func (s *service) ListForBooker(ctx context.Context, bookerID string, state State, page paging.Page) ([]*Booking, error) {
	if _, err := s.users.GetByID(ctx, bookerID); err != nil {
		return nil, err
	}

	sel, err := s.selector(state, page)
	if err != nil {
		return nil, err
	}

	return s.repo.ListByBooker(ctx, bookerID, sel)
}

func (s *service) ListForOwner(ctx context.Context, ownerID string, state State, page paging.Page) ([]*Booking, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	sel, err := s.selector(state, page)
	if err != nil {
		return nil, err
	}

	return s.repo.ListByOwner(ctx, ownerID, sel)
}

// selector translates a State into the repository predicate, pinning "now"
// once so CURRENT, PAST and FUTURE agree on the same instant.
func (s *service) selector(state State, page paging.Page) (Selector, error) {
	sel := Selector{Page: page}
	now := s.now()

	switch state {
	case StateAll:
	case StateCurrent:
		sel.CurrentAt = &now
	case StatePast:
		sel.EndBefore = &now
	case StateFuture:
		sel.StartAfter = &now
	case StateWaiting:
		st := StatusWaiting
		sel.Status = &st
	case StateRejected:
		st := StatusRejected
		sel.Status = &st
	default:
		return Selector{}, ErrUnknownState
	}

	return sel, nil
}

// validateWindow enforces the temporal invariants of a booking window:
// neither bound in the past, and the window must be non-empty.
func validateWindow(start, end, now time.Time) error {
	if start.Before(now) || end.Before(now) {
		return ErrInvalidTimeWindow
	}
	if !end.After(start) {
		return ErrInvalidTimeWindow
	}
	return nil
}
