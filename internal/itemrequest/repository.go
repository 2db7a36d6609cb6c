package itemrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gearshare/gearshare-backend/internal/pkg/paging"
)

// Repository defines storage access for item requests. AnswersFor is a
// read-only join onto the items table; item writes stay in the item module.
type Repository interface {
	Create(ctx context.Context, req *ItemRequest) error
	GetByID(ctx context.Context, id string) (*ItemRequest, error)
	ListByRequestor(ctx context.Context, requestorID string) ([]*ItemRequest, error)
	ListOthers(ctx context.Context, requestorID string, page paging.Page) ([]*ItemRequest, error)
	AnswersFor(ctx context.Context, requestID string) ([]Answer, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, req *ItemRequest) error {
	const query = `
		INSERT INTO public.item_requests (requestor_id, description)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(ctx, query, req.RequestorID, req.Description).
		Scan(&req.ID, &req.Created); err != nil {
		return fmt.Errorf("create item request failed: %w", err)
	}

	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*ItemRequest, error) {
	const query = `
		SELECT id, requestor_id, description, created_at
		FROM public.item_requests
		WHERE id = $1
	`

	var req ItemRequest
	if err := r.pool.QueryRow(ctx, query, id).
		Scan(&req.ID, &req.RequestorID, &req.Description, &req.Created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item request failed: %w", err)
	}

	return &req, nil
}

func (r *pgxRepository) ListByRequestor(ctx context.Context, requestorID string) ([]*ItemRequest, error) {
	query := requestSelect().
		Where(squirrel.Eq{"requestor_id": requestorID}).
		OrderBy("created_at DESC")

	return r.list(ctx, query)
}

func (r *pgxRepository) ListOthers(ctx context.Context, requestorID string, page paging.Page) ([]*ItemRequest, error) {
	query := requestSelect().
		Where(squirrel.NotEq{"requestor_id": requestorID}).
		OrderBy("created_at DESC")

	if page.Paged() {
		query = query.Limit(page.Limit()).Offset(page.Offset())
	}

	return r.list(ctx, query)
}

func (r *pgxRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*ItemRequest, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list item requests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list item requests failed: %w", err)
	}
	defer rows.Close()

	var requests []*ItemRequest
	for rows.Next() {
		var req ItemRequest
		if err := rows.Scan(&req.ID, &req.RequestorID, &req.Description, &req.Created); err != nil {
			return nil, fmt.Errorf("scan item request failed: %w", err)
		}
		requests = append(requests, &req)
	}

	return requests, nil
}

func (r *pgxRepository) AnswersFor(ctx context.Context, requestID string) ([]Answer, error) {
	const query = `
		SELECT id, name, owner_id, available
		FROM public.items
		WHERE request_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("list request answers failed: %w", err)
	}
	defer rows.Close()

	var answers []Answer
	for rows.Next() {
		var a Answer
		if err := rows.Scan(&a.ItemID, &a.Name, &a.OwnerID, &a.Available); err != nil {
			return nil, fmt.Errorf("scan request answer failed: %w", err)
		}
		answers = append(answers, a)
	}

	return answers, nil
}

func requestSelect() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select("id", "requestor_id", "description", "created_at").
		From("public.item_requests")
}
