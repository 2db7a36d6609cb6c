package itemphoto

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, p *Photo) error
	GetByID(ctx context.Context, id string) (*Photo, error)
	ListByItem(ctx context.Context, itemID string) ([]*Photo, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const photoColumns = "id, item_id, uploader_id, filename, storage_path, thumbnail_path, content_type, size, created_at"

func (r *pgxRepository) Create(ctx context.Context, p *Photo) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.item_photos").
		Columns("id", "item_id", "uploader_id", "filename", "storage_path", "thumbnail_path", "content_type", "size", "created_at").
		Values(p.ID, p.ItemID, p.UploaderID, p.Filename, p.StoragePath, p.ThumbnailPath, p.ContentType, p.Size, p.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create photo query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create photo record failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Photo, error) {
	query := fmt.Sprintf("SELECT %s FROM public.item_photos WHERE id = $1", photoColumns)

	var p Photo
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.ItemID, &p.UploaderID, &p.Filename,
		&p.StoragePath, &p.ThumbnailPath, &p.ContentType, &p.Size, &p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get photo failed: %w", err)
	}

	return &p, nil
}

func (r *pgxRepository) ListByItem(ctx context.Context, itemID string) ([]*Photo, error) {
	query := fmt.Sprintf("SELECT %s FROM public.item_photos WHERE item_id = $1 ORDER BY created_at ASC", photoColumns)

	rows, err := r.pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list photos failed: %w", err)
	}
	defer rows.Close()

	var photos []*Photo
	for rows.Next() {
		var p Photo
		if err := rows.Scan(
			&p.ID, &p.ItemID, &p.UploaderID, &p.Filename,
			&p.StoragePath, &p.ThumbnailPath, &p.ContentType, &p.Size, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan photo failed: %w", err)
		}
		photos = append(photos, &p)
	}

	return photos, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, "DELETE FROM public.item_photos WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete photo record failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
