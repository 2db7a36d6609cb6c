package http

import (
	"time"

	"github.com/gearshare/gearshare-backend/internal/itemrequest"
	"github.com/gearshare/gearshare-backend/internal/pkg/request"
)

type CreateRequestBody struct {
	Description string `json:"description" binding:"required"`
}

// ListOthersRequest defines query parameters for GET /requests/all.
type ListOthersRequest struct {
	request.WindowQuery
}

type RequestResponse struct {
	ID          string               `json:"id"`
	RequestorID string               `json:"requestor_id"`
	Description string               `json:"description"`
	Created     time.Time            `json:"created"`
	Answers     []itemrequest.Answer `json:"items"`
}

func NewRequestResponse(d *itemrequest.Details) RequestResponse {
	answers := d.Answers
	if answers == nil {
		answers = []itemrequest.Answer{}
	}

	return RequestResponse{
		ID:          d.ID,
		RequestorID: d.RequestorID,
		Description: d.Description,
		Created:     d.Created,
		Answers:     answers,
	}
}

func NewRequestResponses(details []*itemrequest.Details) []RequestResponse {
	items := make([]RequestResponse, len(details))
	for i, d := range details {
		items[i] = NewRequestResponse(d)
	}
	return items
}
