package model

import (
	"fmt"
	"time"

	"shareit/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID        = "id"
	FieldItemID    = "item_id"
	FieldBookerID  = "booker_id"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldStatus    = "status"
)

const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// State selects which bucket of bookings a listing endpoint returns.
// Values are matched exactly, an unrecognized value is rejected.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

func ParseState(value string) (State, error) {
	switch State(value) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(value), nil
	default:
		return StateAll, fmt.Errorf("Unknown state: %s", value) // nolint:staticcheck
	}
}

type Booking struct {
	ID        string    `db:"id"`
	ItemID    string    `db:"item_id"`
	BookerID  string    `db:"booker_id"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Status    string    `db:"status"`

	ItemName    string `db:"item_name"    table:"items" column:"name"`
	ItemOwnerID string `db:"item_owner_id" table:"items" column:"user_id"`
	BookerName  string `db:"booker_name"  table:"users" column:"name"`

	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN items ON items.id = bookings.item_id JOIN users ON users.id = bookings.booker_id"
}
