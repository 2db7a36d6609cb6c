package booking

import (
	"net/http"
	"strings"
	"time"

	"github.com/gearshare/gearshare-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrInvalidTimeWindow = apperror.New(http.StatusBadRequest, "booking window must lie in the future and end after it starts")
	ErrItemUnavailable   = apperror.New(http.StatusBadRequest, "item is not available for rent")
	ErrOwnItem           = apperror.New(http.StatusNotFound, "owner cannot book their own item")
	ErrNotAuthorized     = apperror.New(http.StatusForbidden, "permission denied")
	ErrInvalidState      = apperror.New(http.StatusBadRequest, "booking is no longer waiting for approval")
	ErrUnknownState      = apperror.New(http.StatusBadRequest, "unknown state")
)

// Status is the lifecycle state of a booking. A booking is created WAITING
// and moves exactly once to APPROVED or REJECTED; both are terminal.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// State is the filter a caller applies when listing bookings. CURRENT, PAST
// and FUTURE are evaluated relative to the moment of the query; WAITING and
// REJECTED match on status. APPROVED bookings are reachable through ALL only.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState maps a raw query value onto the closed filter set. An empty
// value defaults to ALL; anything outside the set fails with
// ErrUnknownState.
func ParseState(raw string) (State, error) {
	if raw == "" {
		return StateAll, nil
	}
	s := State(strings.ToUpper(raw))
	switch s {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return s, nil
	}
	return "", ErrUnknownState
}

// Booking is one reservation of one item by one user over a time window.
// Item and booker references are set at creation and never change; only
// Status is ever mutated, by the item's owner.
type Booking struct {
	ID          string
	ItemID      string
	ItemName    string
	ItemOwnerID string
	BookerID    string
	BookerName  string
	Start       time.Time
	End         time.Time
	Status      Status
	CreatedAt   time.Time
}
