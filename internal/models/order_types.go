package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fixed status vocabulary for an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrItemNotFound  = errors.New("item not found")
	ErrListNotFound  = errors.New("list not found")
	ErrUserNotFound  = errors.New("user not found")
)

// InvalidTransitionError reports a rejected status change.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition from '%s' to '%s'", e.From, e.To)
}

// transitions is the state machine table. Orders move forward only:
// pending -> confirmed -> shipped -> delivered, with cancellation allowed
// from any non-terminal state. Delivered and cancelled are terminal.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered, StatusCancelled},
	StatusDelivered: {},
	StatusCancelled: {},
}

// ValidStatus reports whether s is a known status value.
func ValidStatus(s string) bool {
	_, ok := transitions[OrderStatus(s)]
	return ok
}

// IsTerminal reports whether no further transitions are possible.
func (s OrderStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo checks the table for a legal move from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next if the move is legal, or an
// *InvalidTransitionError if it is not.
func (s OrderStatus) TransitionTo(next OrderStatus) (OrderStatus, error) {
	if !s.CanTransitionTo(next) {
		return s, &InvalidTransitionError{From: s, To: next}
	}
	return next, nil
}

// OrderItem is an embedded value with no independent identity. Name and price
// are a snapshot taken at order time, NOT a live reference into items: the
// order total must never change when the catalog item changes later.
type OrderItem struct {
	ItemID   string          `json:"itemId" db:"item_id"`
	Name     string          `json:"name" db:"name"`
	Quantity int             `json:"quantity" db:"quantity"`
	Price    decimal.Decimal `json:"price" db:"price"`
}

// Order is the model for the 'orders' table.
type Order struct {
	ID                    string          `json:"id" db:"id"`
	UserID                string          `json:"userId" db:"user_id"`
	ProviderID            string          `json:"providerId" db:"provider_id"`
	Items                 []OrderItem     `json:"items"`
	TotalPrice            decimal.Decimal `json:"totalPrice" db:"total_price"`
	Status                OrderStatus     `json:"status" db:"status"`
	DeliveryAddress       Address         `json:"deliveryAddress"`
	ScheduledDeliveryTime *time.Time      `json:"scheduledDeliveryTime,omitempty" db:"scheduled_delivery_time"`
	CreatedAt             time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt             time.Time       `json:"updatedAt" db:"updated_at"`
}

// ComputeTotal sums quantity * price over the snapshot items. Called once at
// creation time; the stored total is authoritative afterwards.
func ComputeTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
