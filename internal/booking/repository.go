package booking

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

// Selector narrows a booking listing to one of the supported states. At most
// one of Status, CurrentAt, EndBefore and StartAfter is set; all empty means
// ALL.
type Selector struct {
	Status     *Status
	CurrentAt  *time.Time // start <= t AND end >= t
	EndBefore  *time.Time // end < t
	StartAfter *time.Time // start > t
	Page       paging.Page
}

// Repository defines storage access for bookings. The booker and owner
// listings are deliberately separate methods: the owner variant matches by
// item ownership only and must never fall back to the booker column.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)

	// UpdateStatus moves a booking from one status to another. The write is
	// conditional on the current status so two concurrent approvals
	// serialize at the row; the loser sees ErrInvalidState.
	UpdateStatus(ctx context.Context, id string, from, to Status) error

	ListByBooker(ctx context.Context, bookerID string, sel Selector) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID string, sel Selector) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("item_id", "booker_id", "start_time", "end_time", "status").
		Values(b.ItemID, b.BookerID, b.Start, b.End, b.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	sql, args, err := baseSelect().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(scanTargets(&b)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", to).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// The booking left the expected status between the caller's read and
		// this write (or was never there).
		return ErrInvalidState
	}
	return nil
}

func (r *pgxRepository) ListByBooker(ctx context.Context, bookerID string, sel Selector) ([]*Booking, error) {
	query := baseSelect().Where(squirrel.Eq{"b.booker_id": bookerID})
	return r.list(ctx, query, sel)
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string, sel Selector) ([]*Booking, error) {
	// Ownership join only: the actor's own bookings on other people's items
	// must not match here.
	query := baseSelect().Where(squirrel.Eq{"i.owner_id": ownerID})
	return r.list(ctx, query, sel)
}

func (r *pgxRepository) list(ctx context.Context, query squirrel.SelectBuilder, sel Selector) ([]*Booking, error) {
	switch {
	case sel.Status != nil:
		query = query.Where(squirrel.Eq{"b.status": *sel.Status})
	case sel.CurrentAt != nil:
		query = query.
			Where(squirrel.LtOrEq{"b.start_time": *sel.CurrentAt}).
			Where(squirrel.GtOrEq{"b.end_time": *sel.CurrentAt})
	case sel.EndBefore != nil:
		query = query.Where(squirrel.Lt{"b.end_time": *sel.EndBefore})
	case sel.StartAfter != nil:
		query = query.Where(squirrel.Gt{"b.start_time": *sel.StartAfter})
	}

	query = query.OrderBy("b.start_time DESC")

	if sel.Page.Paged() {
		query = query.Limit(sel.Page.Limit()).Offset(sel.Page.Offset())
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(scanTargets(&b)...); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, nil
}

func baseSelect() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(
		"b.id", "b.item_id", "i.name", "i.owner_id",
		"b.booker_id", "u.name",
		"b.start_time", "b.end_time", "b.status", "b.created_at",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
}

func scanTargets(b *Booking) []any {
	return []any{
		&b.ID, &b.ItemID, &b.ItemName, &b.ItemOwnerID,
		&b.BookerID, &b.BookerName,
		&b.Start, &b.End, &b.Status, &b.CreatedAt,
	}
}
