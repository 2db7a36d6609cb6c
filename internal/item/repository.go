package item

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gearshare/gearshare-backend/internal/pkg/paging"
)

// Repository defines storage access for items and their comments. The
// booking lookups are read-only views over the bookings table scoped to one
// item; writes to bookings stay in the booking module.
type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	Update(ctx context.Context, it *Item) error
	ListByOwner(ctx context.Context, ownerID string, page paging.Page) ([]*Item, error)
	Search(ctx context.Context, text string, page paging.Page) ([]*Item, error)

	Comments(ctx context.Context, itemID string) ([]Comment, error)
	CreateComment(ctx context.Context, c *Comment) error

	// HasFinishedBooking reports whether the user has an approved booking of
	// the item that ended before now.
	HasFinishedBooking(ctx context.Context, itemID, userID string, now time.Time) (bool, error)

	// LastBooking is the latest approved booking starting at or before now;
	// NextBooking is the earliest approved booking starting after now.
	LastBooking(ctx context.Context, itemID string, now time.Time) (*BookingBrief, error)
	NextBooking(ctx context.Context, itemID string, now time.Time) (*BookingBrief, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, it *Item) error {
	const query = `
		INSERT INTO public.items (owner_id, name, description, available, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(ctx, query, it.OwnerID, it.Name, it.Description, it.Available, it.RequestID).
		Scan(&it.ID, &it.CreatedAt); err != nil {
		return fmt.Errorf("create item failed: %w", err)
	}

	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Item, error) {
	const query = `
		SELECT id, owner_id, name, description, available, request_id, created_at
		FROM public.items
		WHERE id = $1
	`

	var it Item
	if err := r.pool.QueryRow(ctx, query, id).
		Scan(&it.ID, &it.OwnerID, &it.Name, &it.Description, &it.Available, &it.RequestID, &it.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}

	return &it, nil
}

func (r *pgxRepository) Update(ctx context.Context, it *Item) error {
	const query = `
		UPDATE public.items
		SET name = $1, description = $2, available = $3
		WHERE id = $4
	`

	ct, err := r.pool.Exec(ctx, query, it.Name, it.Description, it.Available, it.ID)
	if err != nil {
		return fmt.Errorf("update item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string, page paging.Page) ([]*Item, error) {
	query := itemSelect().
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at ASC")

	return r.list(ctx, query, page)
}

func (r *pgxRepository) Search(ctx context.Context, text string, page paging.Page) ([]*Item, error) {
	pattern := "%" + text + "%"
	query := itemSelect().
		Where(squirrel.Eq{"available": true}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		}).
		OrderBy("created_at ASC")

	return r.list(ctx, query, page)
}

func (r *pgxRepository) list(ctx context.Context, query squirrel.SelectBuilder, page paging.Page) ([]*Item, error) {
	if page.Paged() {
		query = query.Limit(page.Limit()).Offset(page.Offset())
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list items failed: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OwnerID, &it.Name, &it.Description, &it.Available, &it.RequestID, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, &it)
	}

	return items, nil
}

func (r *pgxRepository) Comments(ctx context.Context, itemID string) ([]Comment, error) {
	const query = `
		SELECT c.id, c.item_id, c.author_id, u.name, c.text, c.created_at
		FROM public.comments c
		JOIN public.users u ON c.author_id = u.id
		WHERE c.item_id = $1
		ORDER BY c.created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Text, &c.Created); err != nil {
			return nil, fmt.Errorf("scan comment failed: %w", err)
		}
		comments = append(comments, c)
	}

	return comments, nil
}

func (r *pgxRepository) CreateComment(ctx context.Context, c *Comment) error {
	const query = `
		INSERT INTO public.comments (item_id, author_id, text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	if err := r.pool.QueryRow(ctx, query, c.ItemID, c.AuthorID, c.Text, c.Created).
		Scan(&c.ID); err != nil {
		return fmt.Errorf("create comment failed: %w", err)
	}

	return nil
}

func (r *pgxRepository) HasFinishedBooking(ctx context.Context, itemID, userID string, now time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE item_id = $1 AND booker_id = $2 AND status = 'APPROVED' AND end_time < $3
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, itemID, userID, now).Scan(&exists); err != nil {
		return false, fmt.Errorf("check finished booking failed: %w", err)
	}

	return exists, nil
}

func (r *pgxRepository) LastBooking(ctx context.Context, itemID string, now time.Time) (*BookingBrief, error) {
	const query = `
		SELECT id, booker_id, start_time, end_time
		FROM public.bookings
		WHERE item_id = $1 AND status = 'APPROVED' AND start_time <= $2
		ORDER BY start_time DESC
		LIMIT 1
	`

	return r.bookingBrief(ctx, query, itemID, now)
}

func (r *pgxRepository) NextBooking(ctx context.Context, itemID string, now time.Time) (*BookingBrief, error) {
	const query = `
		SELECT id, booker_id, start_time, end_time
		FROM public.bookings
		WHERE item_id = $1 AND status = 'APPROVED' AND start_time > $2
		ORDER BY start_time ASC
		LIMIT 1
	`

	return r.bookingBrief(ctx, query, itemID, now)
}

func (r *pgxRepository) bookingBrief(ctx context.Context, query, itemID string, now time.Time) (*BookingBrief, error) {
	var b BookingBrief
	if err := r.pool.QueryRow(ctx, query, itemID, now).
		Scan(&b.ID, &b.BookerID, &b.Start, &b.End); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item booking failed: %w", err)
	}

	return &b, nil
}

func itemSelect() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select("id", "owner_id", "name", "description", "available", "request_id", "created_at").
		From("public.items")
}
