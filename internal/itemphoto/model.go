package itemphoto

import (
	"net/http"
	"time"

	"github.com/gearshare/gearshare-backend/internal/pkg/apperror"
)

var (
	ErrNotFound    = apperror.New(http.StatusNotFound, "photo not found")
	ErrNotOwner    = apperror.New(http.StatusForbidden, "only the item owner can manage its photos")
	ErrNotAnImage  = apperror.New(http.StatusBadRequest, "uploaded file is not an image")
	ErrNoThumbnail = apperror.New(http.StatusNotFound, "thumbnail not available for this photo")
	ErrPhotoTooBig = apperror.New(http.StatusBadRequest, "photo exceeds the size limit")
)

// Photo is an image attached to an item. Content lives in blob storage;
// this record only holds the metadata and storage paths.
type Photo struct {
	ID            string
	ItemID        string
	UploaderID    string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}
