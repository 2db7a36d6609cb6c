package item

import (
	"context"
	"strings"
	"time"

	"github.com/gearshare/gearshare-backend/internal/pkg/paging"
	"github.com/gearshare/gearshare-backend/internal/user"
)

// UserDirectory is the slice of the user module the item service needs.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// RequestDirectory checks that an item request exists before an item is
// offered as its answer.
type RequestDirectory interface {
	Exists(ctx context.Context, id string) error
}

type CreateRequest struct {
	OwnerID     string
	Name        string
	Description string
	Available   bool
	RequestID   *string
}

// UpdateRequest carries a partial item update. Nil fields stay unchanged.
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Item, error)
	Update(ctx context.Context, itemID string, req UpdateRequest, actorID string) (*Item, error)

	// GetByID returns the item with its comments; the owner also sees the
	// last and next approved bookings.
	GetByID(ctx context.Context, itemID, viewerID string) (*Details, error)
	GetItem(ctx context.Context, itemID string) (*Item, error)

	ListByOwner(ctx context.Context, ownerID string, page paging.Page) ([]*Details, error)
	Search(ctx context.Context, text string, page paging.Page) ([]*Item, error)

	AddComment(ctx context.Context, itemID, authorID, text string) (*Comment, error)
}

type service struct {
	repo     Repository
	users    UserDirectory
	requests RequestDirectory
	now      func() time.Time
}

func NewService(repo Repository, users UserDirectory, requests RequestDirectory) Service {
	return NewServiceWithClock(repo, users, requests, time.Now)
}

// NewServiceWithClock creates a Service with an explicit clock, letting the
// last/next-booking and comment-eligibility cutoffs be tested on fixed time.
func NewServiceWithClock(repo Repository, users UserDirectory, requests RequestDirectory, clock func() time.Time) Service {
	return &service{
		repo:     repo,
		users:    users,
		requests: requests,
		now:      clock,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Item, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}

	if _, err := s.users.GetByID(ctx, req.OwnerID); err != nil {
		return nil, err
	}

	if req.RequestID != nil {
		if err := s.requests.Exists(ctx, *req.RequestID); err != nil {
			return nil, err
		}
	}

	it := &Item{
		OwnerID:     req.OwnerID,
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

func (s *service) Update(ctx context.Context, itemID string, req UpdateRequest, actorID string) (*Item, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if it.OwnerID != actorID {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		it.Name = *req.Name
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, ErrDescriptionRequired
		}
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

func (s *service) GetByID(ctx context.Context, itemID, viewerID string) (*Details, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	return s.details(ctx, it, viewerID)
}

func (s *service) GetItem(ctx context.Context, itemID string) (*Item, error) {
	return s.repo.GetByID(ctx, itemID)
}

func (s *service) ListByOwner(ctx context.Context, ownerID string, page paging.Page) ([]*Details, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}

	details := make([]*Details, 0, len(items))
	for _, it := range items {
		d, err := s.details(ctx, it, ownerID)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}

	return details, nil
}

func (s *service) Search(ctx context.Context, text string, page paging.Page) ([]*Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}

	return s.repo.Search(ctx, text, page)
}

func (s *service) AddComment(ctx context.Context, itemID, authorID, text string) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrCommentRequired
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.HasFinishedBooking(ctx, it.ID, author.ID, s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCommentNotAllowed
	}

	c := &Comment{
		ItemID:     it.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Text:       text,
		Created:    s.now(),
	}

	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *service) details(ctx context.Context, it *Item, viewerID string) (*Details, error) {
	comments, err := s.repo.Comments(ctx, it.ID)
	if err != nil {
		return nil, err
	}

	d := &Details{
		Item:     *it,
		Comments: comments,
	}

	// Booking information is the owner's view only.
	if viewerID != it.OwnerID {
		return d, nil
	}

	now := s.now()
	if d.LastBooking, err = s.repo.LastBooking(ctx, it.ID, now); err != nil {
		return nil, err
	}
	if d.NextBooking, err = s.repo.NextBooking(ctx, it.ID, now); err != nil {
		return nil, err
	}

	return d, nil
}
