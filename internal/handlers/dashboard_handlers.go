package handlers

import (
	"log"
	"net/http"

	"github.com/farhank0/grocerylink-golang/internal/catalog"
	"github.com/farhank0/grocerylink-golang/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// GetProviderDashboard is the handler for GET /api/provider/dashboard. It
// assembles the provider's working set (catalog, orders, shared catalogue)
// in one round trip, fetching the three collections concurrently. A failed
// fetch degrades to an empty collection rather than failing the whole page.
func (h *Handlers) GetProviderDashboard(c *gin.Context) {
	providerID := c.GetString("userID")

	var (
		items        []models.Item
		orders       []models.Order
		generalItems []models.GeneralItem
	)

	var g errgroup.Group
	g.Go(func() error {
		fetched, err := h.fetchItemsByProvider(providerID)
		if err != nil {
			log.Printf("Dashboard: failed to fetch items for provider %s: %v", providerID, err)
			fetched = []models.Item{}
		}
		items = fetched
		return nil
	})
	g.Go(func() error {
		fetched, err := h.fetchOrders("provider_id", providerID)
		if err != nil {
			log.Printf("Dashboard: failed to fetch orders for provider %s: %v", providerID, err)
			fetched = []models.Order{}
		}
		orders = fetched
		return nil
	})
	g.Go(func() error {
		fetched, err := h.fetchGeneralItems()
		if err != nil {
			log.Printf("Dashboard: failed to fetch general items: %v", err)
			fetched = []models.GeneralItem{}
		}
		generalItems = fetched
		return nil
	})
	g.Wait()

	pendingOrders := 0
	activeOrders := 0
	for _, o := range orders {
		if o.Status == models.StatusPending {
			pendingOrders++
		}
		if !o.Status.IsTerminal() {
			activeOrders++
		}
	}
	outOfStock := 0
	for _, it := range items {
		if it.AvailableStock == 0 {
			outOfStock++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"items":        items,
		"orders":       orders,
		"generalItems": generalItems,
		"categories":   catalog.Categories(items),
		"stats": gin.H{
			"totalItems":    len(items),
			"outOfStock":    outOfStock,
			"totalOrders":   len(orders),
			"pendingOrders": pendingOrders,
			"activeOrders":  activeOrders,
		},
	})
}
