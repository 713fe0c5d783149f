package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/farhank0/grocerylink-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// GetGeneralItems is the handler for GET /api/general-items. It returns the
// full shared catalogue; any signed-in account can read it.
func (h *Handlers) GetGeneralItems(c *gin.Context) {
	generalItems, err := h.fetchGeneralItems()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch general items"})
		return
	}
	c.JSON(http.StatusOK, generalItems)
}

func (h *Handlers) fetchGeneralItems() ([]models.GeneralItem, error) {
	rows, err := h.DB.Query(`
		SELECT id, name, slug, category, brands, default_image_url, description, created_at, updated_at
		FROM general_items ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	generalItems := []models.GeneralItem{}
	for rows.Next() {
		var g models.GeneralItem
		var brandsJSON []byte
		err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.Category, &brandsJSON,
			&g.DefaultImageURL, &g.Description, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, err
		}
		if len(brandsJSON) > 0 {
			if err := json.Unmarshal(brandsJSON, &g.Brands); err != nil {
				return nil, err
			}
		}
		if g.Brands == nil {
			g.Brands = []string{}
		}
		generalItems = append(generalItems, g)
	}
	return generalItems, rows.Err()
}

type GeneralItemInput struct {
	Name            string   `json:"name" binding:"required"`
	Category        string   `json:"category" binding:"required"`
	Brands          []string `json:"brands"`
	DefaultImageURL *string  `json:"defaultImageUrl"`
	Description     *string  `json:"description"`
}

// CreateGeneralItem is the handler for POST /api/general-items. Providers
// grow the shared catalogue; the slug is derived from the name.
func (h *Handlers) CreateGeneralItem(c *gin.Context) {
	var input GeneralItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Brands == nil {
		input.Brands = []string{}
	}
	brandsJSON, err := json.Marshal(input.Brands)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode brands"})
		return
	}

	now := time.Now()
	generalItem := models.GeneralItem{
		ID:              uuid.NewString(),
		Name:            input.Name,
		Slug:            slug.Make(input.Name),
		Category:        input.Category,
		Brands:          input.Brands,
		DefaultImageURL: input.DefaultImageURL,
		Description:     input.Description,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	query := `
		INSERT INTO general_items
		(id, name, slug, category, brands, default_image_url, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = h.DB.Exec(query,
		generalItem.ID, generalItem.Name, generalItem.Slug, generalItem.Category, brandsJSON,
		generalItem.DefaultImageURL, generalItem.Description, generalItem.CreatedAt, generalItem.UpdatedAt,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create general item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "General item created successfully",
		"generalItemId": generalItem.ID,
		"generalItem":   generalItem,
	})
}
