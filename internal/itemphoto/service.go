package itemphoto

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gearshare/gearshare-backend/internal/item"
	"github.com/gearshare/gearshare-backend/internal/pkg/storage"
)

const (
	maxPhotoBytes  = 10 << 20 // 10 MiB
	thumbMaxWidth  = 200
	thumbMaxHeight = 200
)

// ItemCatalog is the slice of the item module the photo service needs.
type ItemCatalog interface {
	GetItem(ctx context.Context, id string) (*item.Item, error)
}

type Service interface {
	// Upload attaches a photo to an item. Only the item's owner may upload.
	Upload(ctx context.Context, header *multipart.FileHeader, itemID, actorID string) (*Photo, error)
	ListByItem(ctx context.Context, itemID string) ([]*Photo, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	Delete(ctx context.Context, id, actorID string) error
}

type service struct {
	repo    Repository
	items   ItemCatalog
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, items ItemCatalog, store storage.Storage) Service {
	return &service{
		repo:    repo,
		items:   items,
		storage: store,
		imgProc: storage.NewImageProcessor(),
	}
}

func (s *service) Upload(ctx context.Context, header *multipart.FileHeader, itemID, actorID string) (*Photo, error) {
	it, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != actorID {
		return nil, ErrNotOwner
	}

	if header.Size > maxPhotoBytes {
		return nil, ErrPhotoTooBig
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Buffer the content once; it is read twice (original save + thumbnail).
	photoBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	photoID := uuid.New().String()
	shard := photoID[:2]
	ext := strings.ToLower(filepath.Ext(header.Filename))
	storagePath := fmt.Sprintf("photos/%s/%s%s", shard, photoID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(photoBytes)); err != nil {
		return nil, fmt.Errorf("failed to save photo to storage: %w", err)
	}

	// A failed thumbnail never fails the upload.
	var thumbnailPath *string
	if thumb, err := s.imgProc.GenerateThumbnail(bytes.NewReader(photoBytes), thumbMaxWidth, thumbMaxHeight); err == nil {
		tPath := fmt.Sprintf("photos/%s/%s_thumb.jpg", shard, photoID)
		if err := s.storage.Save(ctx, tPath, thumb); err == nil {
			thumbnailPath = &tPath
		}
	}

	p := &Photo{
		ID:            photoID,
		ItemID:        it.ID,
		UploaderID:    actorID,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          header.Size,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return p, nil
}

func (s *service) ListByItem(ctx context.Context, itemID string) ([]*Photo, error) {
	if _, err := s.items.GetItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.repo.ListByItem(ctx, itemID)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, p.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve photo from storage: %w", err)
	}

	return stream, p, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if p.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.storage.Get(ctx, *p.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail from storage: %w", err)
	}

	return stream, p, nil
}

func (s *service) Delete(ctx context.Context, id, actorID string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	it, err := s.items.GetItem(ctx, p.ItemID)
	if err != nil {
		return err
	}
	if it.OwnerID != actorID {
		return ErrNotOwner
	}

	// Best-effort storage cleanup; the metadata row is the source of truth.
	_ = s.storage.Delete(ctx, p.StoragePath)
	if p.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *p.ThumbnailPath)
	}

	return s.repo.Delete(ctx, id)
}
