package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gearshare/gearshare-backend/internal/auth"
	"github.com/gearshare/gearshare-backend/internal/booking"
	"github.com/gearshare/gearshare-backend/internal/pkg/paging"
	"github.com/gearshare/gearshare-backend/internal/pkg/request"
	"github.com/gearshare/gearshare-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		BookerID: auth.GetUserID(c),
		ItemID:   body.ItemID,
		Start:    body.Start,
		End:      body.End,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// SetApproval handles PATCH /bookings/:id?approved=true|false, the owner's
// approve/reject decision.
func (h *Handler) SetApproval(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved must be true or false"})
		return
	}

	b, err := h.service.SetApproval(c.Request.Context(), req.ID, approved, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), req.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// ListForBooker returns the caller's bookings of other users' items.
func (h *Handler) ListForBooker(c *gin.Context) {
	state, page, ok := h.bindListQuery(c)
	if !ok {
		return
	}

	bookings, err := h.service.ListForBooker(c.Request.Context(), auth.GetUserID(c), state, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponses(bookings))
}

// ListForOwner returns bookings placed on the caller's items.
func (h *Handler) ListForOwner(c *gin.Context) {
	state, page, ok := h.bindListQuery(c)
	if !ok {
		return
	}

	bookings, err := h.service.ListForOwner(c.Request.Context(), auth.GetUserID(c), state, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponses(bookings))
}

func (h *Handler) bindListQuery(c *gin.Context) (booking.State, paging.Page, bool) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return "", paging.Page{}, false
	}

	state, err := booking.ParseState(req.State)
	if err != nil {
		response.Error(c, err)
		return "", paging.Page{}, false
	}

	from, size, ok := req.FromSize()
	if !ok {
		response.Error(c, paging.ErrInvalidPagination)
		return "", paging.Page{}, false
	}
	page, err := paging.New(from, size)
	if err != nil {
		response.Error(c, err)
		return "", paging.Page{}, false
	}

	return state, page, true
}
