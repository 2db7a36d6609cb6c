package http

import (
	"time"

	"github.com/gearshare/gearshare-backend/internal/item"
	"github.com/gearshare/gearshare-backend/internal/pkg/request"
	userHttp "github.com/gearshare/gearshare-backend/internal/user/http"
)

// ItemTag is the compact item reference embedded in other responses.
type ItemTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateItemBody struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Available   *bool   `json:"available" binding:"required"`
	RequestID   *string `json:"request_id" binding:"omitempty,uuid"`
}

type UpdateItemBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentBody struct {
	Text string `json:"text" binding:"required"`
}

// SearchItemsRequest defines query parameters for GET /items/search.
type SearchItemsRequest struct {
	request.WindowQuery
	Text string `form:"text"`
}

type ItemResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	RequestID   *string   `json:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CommentResponse struct {
	ID      string           `json:"id"`
	Author  userHttp.UserTag `json:"author"`
	Text    string           `json:"text"`
	Created time.Time        `json:"created"`
}

type BookingBriefResponse struct {
	ID       string    `json:"id"`
	BookerID string    `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// ItemDetailsResponse carries the item plus comments; last/next booking show
// up only in the owner's view.
type ItemDetailsResponse struct {
	ItemResponse
	Comments    []CommentResponse     `json:"comments"`
	LastBooking *BookingBriefResponse `json:"last_booking,omitempty"`
	NextBooking *BookingBriefResponse `json:"next_booking,omitempty"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		OwnerID:     it.OwnerID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
		CreatedAt:   it.CreatedAt,
	}
}

func NewItemDetailsResponse(d *item.Details) ItemDetailsResponse {
	comments := make([]CommentResponse, len(d.Comments))
	for i, c := range d.Comments {
		comments[i] = CommentResponse{
			ID:      c.ID,
			Author:  userHttp.UserTag{ID: c.AuthorID, Name: c.AuthorName},
			Text:    c.Text,
			Created: c.Created,
		}
	}

	resp := ItemDetailsResponse{
		ItemResponse: NewItemResponse(&d.Item),
		Comments:     comments,
	}

	if d.LastBooking != nil {
		resp.LastBooking = newBookingBrief(d.LastBooking)
	}
	if d.NextBooking != nil {
		resp.NextBooking = newBookingBrief(d.NextBooking)
	}

	return resp
}

func newAuthorTag(c *item.Comment) userHttp.UserTag {
	return userHttp.UserTag{ID: c.AuthorID, Name: c.AuthorName}
}

func newBookingBrief(b *item.BookingBrief) *BookingBriefResponse {
	return &BookingBriefResponse{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
	}
}
