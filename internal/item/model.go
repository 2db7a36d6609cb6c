package item

import (
	"net/http"
	"time"

	"github.com/gearshare/gearshare-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item not found")
	ErrNotOwner            = apperror.New(http.StatusForbidden, "only the item owner can edit it")
	ErrNameRequired        = apperror.New(http.StatusBadRequest, "name is required")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "description is required")
	ErrCommentRequired     = apperror.New(http.StatusBadRequest, "comment text is required")
	ErrCommentNotAllowed   = apperror.New(http.StatusBadRequest, "only users who finished renting the item can comment on it")
)

// Item is something a user offers for rent. Available controls whether new
// bookings are accepted; RequestID links an item created in answer to an
// item request.
type Item struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Available   bool
	RequestID   *string
	CreatedAt   time.Time
}

// Comment is feedback left by a user who finished renting the item.
type Comment struct {
	ID         string
	ItemID     string
	AuthorID   string
	AuthorName string
	Text       string
	Created    time.Time
}

// BookingBrief is the compact last/next booking view shown to the owner.
type BookingBrief struct {
	ID       string
	BookerID string
	Start    time.Time
	End      time.Time
}

// Details is an item together with its comments and, for the owner, the
// closest approved bookings around now.
type Details struct {
	Item
	Comments    []Comment
	LastBooking *BookingBrief
	NextBooking *BookingBrief
}
