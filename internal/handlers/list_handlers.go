package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/farhank0/grocerylink-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ShoppingListInput struct {
	Name                string     `json:"name" binding:"required"`
	Items               []string   `json:"items"`
	Frequency           string     `json:"frequency" binding:"omitempty,oneof=once weekly biweekly monthly"`
	NextOrderDate       *time.Time `json:"nextOrderDate"`
	AutoApproveDelivery bool       `json:"autoApproveDelivery"`
}

// CreateShoppingList is the handler for POST /api/lists.
func (h *Handlers) CreateShoppingList(c *gin.Context) {
	userID := c.GetString("userID")

	var input ShoppingListInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Items == nil {
		input.Items = []string{}
	}
	if input.Frequency == "" {
		input.Frequency = "once"
	}

	itemsJSON, err := json.Marshal(input.Items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode list items"})
		return
	}

	now := time.Now()
	list := models.ShoppingList{
		ID:                  uuid.NewString(),
		UserID:              userID,
		Name:                input.Name,
		Items:               input.Items,
		Frequency:           input.Frequency,
		NextOrderDate:       input.NextOrderDate,
		AutoApproveDelivery: input.AutoApproveDelivery,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	query := `
		INSERT INTO lists
		(id, user_id, name, items, frequency, next_order_date, auto_approve_delivery, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = h.DB.Exec(query,
		list.ID, list.UserID, list.Name, itemsJSON, list.Frequency,
		list.NextOrderDate, list.AutoApproveDelivery, list.CreatedAt, list.UpdatedAt,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shopping list"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Shopping list created successfully",
		"listId":  list.ID,
		"list":    list,
	})
}

// GetShoppingLists is the handler for GET /api/lists. Lists are private to
// their owner.
func (h *Handlers) GetShoppingLists(c *gin.Context) {
	userID := c.GetString("userID")

	rows, err := h.DB.Query("SELECT "+listColumns+" FROM lists WHERE user_id = ? ORDER BY created_at DESC", userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shopping lists"})
		return
	}
	defer rows.Close()

	lists := []models.ShoppingList{}
	for rows.Next() {
		var l models.ShoppingList
		if err := scanShoppingList(rows.Scan, &l); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan shopping list"})
			return
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shopping lists"})
		return
	}

	c.JSON(http.StatusOK, lists)
}

// GetShoppingList is the handler for GET /api/lists/:id.
func (h *Handlers) GetShoppingList(c *gin.Context) {
	userID := c.GetString("userID")
	listID := c.Param("id")

	list, err := h.fetchShoppingList(listID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": models.ErrListNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shopping list"})
		return
	}
	if list.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to view this list"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// UpdateShoppingList is the handler for PUT /api/lists/:id. The request body
// is the full replacement document; owner and id never change.
func (h *Handlers) UpdateShoppingList(c *gin.Context) {
	userID := c.GetString("userID")
	listID := c.Param("id")

	var input ShoppingListInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Items == nil {
		input.Items = []string{}
	}
	if input.Frequency == "" {
		input.Frequency = "once"
	}

	var ownerID string
	err := h.DB.QueryRow("SELECT user_id FROM lists WHERE id = ?", listID).Scan(&ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": models.ErrListNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shopping list"})
		return
	}
	if ownerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to update this list"})
		return
	}

	itemsJSON, err := json.Marshal(input.Items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode list items"})
		return
	}

	now := time.Now()
	query := `
		UPDATE lists
		SET name = ?, items = ?, frequency = ?, next_order_date = ?, auto_approve_delivery = ?, updated_at = ?
		WHERE id = ?`
	_, err = h.DB.Exec(query,
		input.Name, itemsJSON, input.Frequency, input.NextOrderDate, input.AutoApproveDelivery, now, listID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update shopping list"})
		return
	}

	list, err := h.fetchShoppingList(listID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch updated list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shopping list updated successfully",
		"list":    list,
	})
}

const listColumns = `id, user_id, name, items, frequency, next_order_date, auto_approve_delivery, created_at, updated_at`

func (h *Handlers) fetchShoppingList(listID string) (*models.ShoppingList, error) {
	var l models.ShoppingList
	row := h.DB.QueryRow("SELECT "+listColumns+" FROM lists WHERE id = ?", listID)
	if err := scanShoppingList(row.Scan, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func scanShoppingList(scan func(dest ...any) error, l *models.ShoppingList) error {
	var itemsJSON []byte
	err := scan(
		&l.ID, &l.UserID, &l.Name, &itemsJSON, &l.Frequency,
		&l.NextOrderDate, &l.AutoApproveDelivery, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &l.Items); err != nil {
			return err
		}
	}
	if l.Items == nil {
		l.Items = []string{}
	}
	return nil
}
