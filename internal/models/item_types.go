package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is the model for the 'items' table. Each item belongs to exactly one
// provider; provider_id never changes after creation.
type Item struct {
	ID             string          `json:"id" db:"id"`
	ProviderID     string          `json:"providerId" db:"provider_id"`
	Name           string          `json:"name" db:"name"`
	Category       string          `json:"category" db:"category"`
	Brand          string          `json:"brand" db:"brand"`
	Price          decimal.Decimal `json:"price" db:"price"`
	Description    *string         `json:"description,omitempty" db:"description"`
	AvailableStock int             `json:"availableStock" db:"available_stock"`

	// Optional weak reference into general_items (lookup only, no ownership).
	GeneralItemID *string `json:"generalItemId,omitempty" db:"general_item_id"`
	ImageURL      *string `json:"imageUrl,omitempty" db:"image_url"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// GeneralItem is a taxonomy/template entry a concrete Item may reference for
// shared branding/category metadata. Read-mostly, independent lifecycle.
type GeneralItem struct {
	ID              string   `json:"id" db:"id"`
	Name            string   `json:"name" db:"name"`
	Slug            string   `json:"slug" db:"slug"`
	Category        string   `json:"category" db:"category"`
	Brands          []string `json:"brands"` // Stored as a JSON column
	DefaultImageURL *string  `json:"defaultImageUrl,omitempty" db:"default_image_url"`
	Description     *string  `json:"description,omitempty" db:"description"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
