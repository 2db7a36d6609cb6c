package itemrequest

import (
	"net/http"
	"time"

	"github.com/gearshare/gearshare-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item request not found")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "description is required")
)

// ItemRequest is a wish for an item that nobody has listed yet. Other users
// answer it by creating items that reference the request.
type ItemRequest struct {
	ID          string
	RequestorID string
	Description string
	Created     time.Time
}

// Answer is an item offered in response to a request.
type Answer struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	OwnerID   string `json:"owner_id"`
	Available bool   `json:"available"`
}

// Details is a request together with the items answering it.
type Details struct {
	ItemRequest
	Answers []Answer
}
