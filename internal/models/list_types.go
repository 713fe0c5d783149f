package models

import "time"

// ShoppingList is a consumer's recurring list of general item names/ids.
type ShoppingList struct {
	ID                  string     `json:"id" db:"id"`
	UserID              string     `json:"userId" db:"user_id"`
	Name                string     `json:"name" db:"name"`
	Items               []string   `json:"items"` // Stored as a JSON column
	Frequency           string     `json:"frequency" db:"frequency"`
	NextOrderDate       *time.Time `json:"nextOrderDate,omitempty" db:"next_order_date"`
	AutoApproveDelivery bool       `json:"autoApproveDelivery" db:"auto_approve_delivery"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time  `json:"updatedAt" db:"updated_at"`
}
