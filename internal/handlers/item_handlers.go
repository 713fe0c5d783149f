package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/farhank0/grocerylink-golang/internal/catalog"
	"github.com/farhank0/grocerylink-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Inputs ---

// ItemInput is the full-document payload used by both create and update
// (replace-on-update, no partial patch semantics).
type ItemInput struct {
	Name           string          `json:"name" binding:"required"`
	Category       string          `json:"category" binding:"required"`
	Brand          string          `json:"brand" binding:"required"`
	Price          decimal.Decimal `json:"price"`
	Description    *string         `json:"description"`
	AvailableStock int             `json:"availableStock" binding:"gte=0"`
	GeneralItemID  *string         `json:"generalItemId"`
	ImageURL       *string         `json:"imageUrl"`
}

func (in *ItemInput) validate() string {
	if in.Price.IsNegative() {
		return "Price must be zero or greater."
	}
	return ""
}

// GetProviderItems is the handler for GET /api/auth/items?providerId=<id>.
// The full collection is fetched for the provider and the ephemeral filter
// criteria (category, q, page, pageSize) are applied in memory, matching the
// dashboard's behavior.
func (h *Handlers) GetProviderItems(c *gin.Context) {
	providerID := c.Query("providerId")
	if providerID == "" {
		providerID = c.GetString("userID")
	}

	items, err := h.fetchItemsByProvider(providerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	items = catalog.FilterItems(items, c.DefaultQuery("category", catalog.FilterAll), c.Query("q"))
	items = catalog.Paginate(items, intQuery(c, "page", 0), intQuery(c, "pageSize", 0))

	c.JSON(http.StatusOK, items)
}

// CreateItem is the handler for POST /api/items (providers only).
func (h *Handlers) CreateItem(c *gin.Context) {
	providerID := c.GetString("userID")

	var input ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := input.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	now := time.Now()
	item := models.Item{
		ID:             uuid.NewString(),
		ProviderID:     providerID,
		Name:           input.Name,
		Category:       input.Category,
		Brand:          input.Brand,
		Price:          input.Price,
		Description:    input.Description,
		AvailableStock: input.AvailableStock,
		GeneralItemID:  input.GeneralItemID,
		ImageURL:       input.ImageURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	query := `
		INSERT INTO items
		(id, provider_id, name, category, brand, price, description, available_stock, general_item_id, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := h.DB.Exec(query,
		item.ID, item.ProviderID, item.Name, item.Category, item.Brand, item.Price,
		item.Description, item.AvailableStock, item.GeneralItemID, item.ImageURL,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Item created successfully", "itemId": item.ID, "item": item})
}

// GetItem is the handler for GET /api/items/:id.
func (h *Handlers) GetItem(c *gin.Context) {
	itemID := c.Param("id")

	item, err := h.fetchItem(itemID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": models.ErrItemNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// UpdateItem is the handler for PUT /api/items/:id. Mutable fields are
// replaced wholesale and updated_at is refreshed. The provider id never
// changes (ownership does not transfer). A miss is a 404, not a silent no-op.
func (h *Handlers) UpdateItem(c *gin.Context) {
	providerID := c.GetString("userID")
	itemID := c.Param("id")

	var currentOwner string
	err := h.DB.QueryRow("SELECT provider_id FROM items WHERE id = ?", itemID).Scan(&currentOwner)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": models.ErrItemNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking ownership"})
		return
	}
	if currentOwner != providerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to edit this item"})
		return
	}

	var input ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := input.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	query := `
		UPDATE items
		SET name = ?, category = ?, brand = ?, price = ?, description = ?,
		    available_stock = ?, general_item_id = ?, image_url = ?, updated_at = ?
		WHERE id = ?`

	_, err = h.DB.Exec(query,
		input.Name, input.Category, input.Brand, input.Price, input.Description,
		input.AvailableStock, input.GeneralItemID, input.ImageURL, time.Now(), itemID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item updated successfully"})
}

// --- Shared item fetch/scan helpers ---

const itemColumns = `id, provider_id, name, category, brand, price, description, available_stock, general_item_id, image_url, created_at, updated_at`

func (h *Handlers) fetchItemsByProvider(providerID string) ([]models.Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE provider_id = ? ORDER BY created_at DESC"
	rows, err := h.DB.Query(query, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(
			&item.ID, &item.ProviderID, &item.Name, &item.Category, &item.Brand,
			&item.Price, &item.Description, &item.AvailableStock,
			&item.GeneralItemID, &item.ImageURL, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (h *Handlers) fetchItem(itemID string) (*models.Item, error) {
	var item models.Item
	err := h.DB.QueryRow("SELECT "+itemColumns+" FROM items WHERE id = ?", itemID).Scan(
		&item.ID, &item.ProviderID, &item.Name, &item.Category, &item.Brand,
		&item.Price, &item.Description, &item.AvailableStock,
		&item.GeneralItemID, &item.ImageURL, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// intQuery parses an integer query param, falling back when absent/garbage.
func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
