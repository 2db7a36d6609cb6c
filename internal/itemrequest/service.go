package itemrequest

import (
	"context"
	"strings"

	"github.com/gearshare/gearshare-backend/internal/pkg/paging"
	"github.com/gearshare/gearshare-backend/internal/user"
)

// UserDirectory is the slice of the user module the request service needs.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type Service interface {
	Create(ctx context.Context, requestorID, description string) (*ItemRequest, error)
	GetByID(ctx context.Context, requestID, actorID string) (*Details, error)

	// ListOwn returns the actor's requests, newest first, each with its
	// answers. ListOthers pages through everyone else's requests.
	ListOwn(ctx context.Context, actorID string) ([]*Details, error)
	ListOthers(ctx context.Context, actorID string, page paging.Page) ([]*Details, error)

	// Exists reports whether a request exists, for items answering it.
	Exists(ctx context.Context, id string) error
}

type service struct {
	repo  Repository
	users UserDirectory
}

func NewService(repo Repository, users UserDirectory) Service {
	return &service{
		repo:  repo,
		users: users,
	}
}

func (s *service) Create(ctx context.Context, requestorID, description string) (*ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}

	if _, err := s.users.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}

	req := &ItemRequest{
		RequestorID: requestorID,
		Description: description,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

func (s *service) GetByID(ctx context.Context, requestID, actorID string) (*Details, error) {
	if _, err := s.users.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	return s.details(ctx, req)
}

func (s *service) ListOwn(ctx context.Context, actorID string) ([]*Details, error) {
	if _, err := s.users.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByRequestor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	return s.detailsList(ctx, requests)
}

func (s *service) ListOthers(ctx context.Context, actorID string, page paging.Page) ([]*Details, error) {
	if _, err := s.users.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListOthers(ctx, actorID, page)
	if err != nil {
		return nil, err
	}

	return s.detailsList(ctx, requests)
}

func (s *service) Exists(ctx context.Context, id string) error {
	_, err := s.repo.GetByID(ctx, id)
	return err
}

func (s *service) details(ctx context.Context, req *ItemRequest) (*Details, error) {
	answers, err := s.repo.AnswersFor(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &Details{
		ItemRequest: *req,
		Answers:     answers,
	}, nil
}

func (s *service) detailsList(ctx context.Context, requests []*ItemRequest) ([]*Details, error) {
	details := make([]*Details, 0, len(requests))
	for _, req := range requests {
		d, err := s.details(ctx, req)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}
