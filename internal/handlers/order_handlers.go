package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/farhank0/grocerylink-golang/internal/catalog"
	"github.com/farhank0/grocerylink-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// --- Order Retrieval ---

// GetOrders is the handler for GET /api/orders. With ?providerId= it serves
// the provider dashboard view (orders to fulfil); without it, the caller's
// own orders as a consumer. Ephemeral filters (status, q, page, pageSize)
// are applied in memory over the fetched collection.
func (h *Handlers) GetOrders(c *gin.Context) {
	var (
		orders []models.Order
		err    error
	)

	if providerID := c.Query("providerId"); providerID != "" {
		// The provider view carries customer delivery addresses; only the
		// provider itself may read its order book.
		if providerID != c.GetString("userID") {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to view these orders"})
			return
		}
		orders, err = h.fetchOrders("provider_id", providerID)
	} else {
		orders, err = h.fetchOrders("user_id", c.GetString("userID"))
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	orders = catalog.FilterOrders(orders, c.DefaultQuery("status", catalog.FilterAll), c.Query("q"))
	orders = catalog.Paginate(orders, intQuery(c, "page", 0), intQuery(c, "pageSize", 0))

	c.JSON(http.StatusOK, orders)
}

// GetOrder is the handler for GET /api/orders/:id. Only the ordering
// consumer or the fulfilling provider may read an order.
func (h *Handlers) GetOrder(c *gin.Context) {
	userID := c.GetString("userID")
	orderID := c.Param("id")

	order, err := h.fetchOrder(orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": models.ErrOrderNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	if order.UserID != userID && order.ProviderID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to view this order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// --- Order Creation (consumer checkout) ---

type OrderItemInput struct {
	ItemID   string `json:"itemId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gte=1"`
}

type CreateOrderInput struct {
	ProviderID            string           `json:"providerId" binding:"required"`
	Items                 []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress       AddressInput     `json:"deliveryAddress" binding:"required"`
	ScheduledDeliveryTime *time.Time       `json:"scheduledDeliveryTime"`
}

// CreateOrder is the handler for POST /api/orders. Item names and prices are
// snapshotted from the live catalog inside the transaction; the total is
// computed once here and never recomputed afterwards. Stock is not touched
// (fulfilment stock-keeping belongs to the provider's flow, not checkout).
func (h *Handlers) CreateOrder(c *gin.Context) {
	userID := c.GetString("userID")

	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	// Snapshot the current name/price of every ordered item. Each line must
	// belong to the provider the order is filed against.
	snapshot := make([]models.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		var oi models.OrderItem
		err := tx.QueryRow("SELECT id, name, price FROM items WHERE id = ? AND provider_id = ?", line.ItemID, input.ProviderID).
			Scan(&oi.ItemID, &oi.Name, &oi.Price)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Item not available from this provider: " + line.ItemID})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up item"})
			return
		}
		oi.Quantity = line.Quantity
		snapshot = append(snapshot, oi)
	}

	now := time.Now()
	order := models.Order{
		ID:         uuid.NewString(),
		UserID:     userID,
		ProviderID: input.ProviderID,
		Items:      snapshot,
		TotalPrice: models.ComputeTotal(snapshot),
		Status:     models.StatusPending,
		DeliveryAddress: models.Address{
			Street:  input.DeliveryAddress.Street,
			City:    input.DeliveryAddress.City,
			ZipCode: input.DeliveryAddress.ZipCode,
		},
		ScheduledDeliveryTime: input.ScheduledDeliveryTime,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	orderQuery := `
		INSERT INTO orders
		(id, user_id, provider_id, total_price, status, street, city, zip_code, scheduled_delivery_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.Exec(orderQuery,
		order.ID, order.UserID, order.ProviderID, order.TotalPrice, order.Status,
		order.DeliveryAddress.Street, order.DeliveryAddress.City, order.DeliveryAddress.ZipCode,
		order.ScheduledDeliveryTime, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	itemQuery := `INSERT INTO order_items (order_id, item_id, name, quantity, price) VALUES (?, ?, ?, ?, ?)`
	for _, oi := range order.Items {
		if _, err := tx.Exec(itemQuery, order.ID, oi.ItemID, oi.Name, oi.Quantity, oi.Price); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save order item"})
			return
		}
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"orderId": order.ID,
		"order":   order,
	})
}

// --- Order Lifecycle ---

type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus is the handler for PATCH /api/orders/:id/status. The
// transition table in models is authoritative: forward-only, cancel from any
// non-terminal state. Invalid moves are rejected with 409; a missing order
// is a 404, never a silent no-op.
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	providerID := c.GetString("userID")
	orderID := c.Param("id")

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + input.Status})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	// Lock the row so two concurrent transitions serialize.
	var currentStatus models.OrderStatus
	var ownerID string
	err = tx.QueryRow("SELECT status, provider_id FROM orders WHERE id = ? FOR UPDATE", orderID).
		Scan(&currentStatus, &ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": models.ErrOrderNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}
	if ownerID != providerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to update this order"})
		return
	}

	newStatus, err := currentStatus.TransitionTo(models.OrderStatus(input.Status))
	if err != nil {
		var invalid *models.InvalidTransitionError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusConflict, gin.H{"error": invalid.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply transition"})
		return
	}

	now := time.Now()
	if _, err := tx.Exec("UPDATE orders SET status = ?, updated_at = ? WHERE id = ?", newStatus, now, orderID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Order status updated",
		"orderId":   orderID,
		"status":    newStatus,
		"updatedAt": now,
	})
}

// --- Shared order fetch helpers ---

const orderColumns = `id, user_id, provider_id, total_price, status, street, city, zip_code, scheduled_delivery_time, created_at, updated_at`

func (h *Handlers) fetchOrders(ownerColumn, ownerID string) ([]models.Order, error) {
	// ownerColumn is one of our own constants, never user input.
	query := "SELECT " + orderColumns + " FROM orders WHERE " + ownerColumn + " = ? ORDER BY created_at DESC"
	rows, err := h.DB.Query(query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows.Scan, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := h.fetchOrderItems(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (h *Handlers) fetchOrder(orderID string) (*models.Order, error) {
	var o models.Order
	row := h.DB.QueryRow("SELECT "+orderColumns+" FROM orders WHERE id = ?", orderID)
	if err := scanOrder(row.Scan, &o); err != nil {
		return nil, err
	}

	items, err := h.fetchOrderItems(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func scanOrder(scan func(dest ...any) error, o *models.Order) error {
	return scan(
		&o.ID, &o.UserID, &o.ProviderID, &o.TotalPrice, &o.Status,
		&o.DeliveryAddress.Street, &o.DeliveryAddress.City, &o.DeliveryAddress.ZipCode,
		&o.ScheduledDeliveryTime, &o.CreatedAt, &o.UpdatedAt,
	)
}

func (h *Handlers) fetchOrderItems(orderID string) ([]models.OrderItem, error) {
	rows, err := h.DB.Query("SELECT item_id, name, quantity, price FROM order_items WHERE order_id = ?", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var oi models.OrderItem
		if err := rows.Scan(&oi.ItemID, &oi.Name, &oi.Quantity, &oi.Price); err != nil {
			return nil, err
		}
		items = append(items, oi)
	}
	return items, rows.Err()
}
