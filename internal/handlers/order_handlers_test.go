package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handlerContext(t *testing.T, userID, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Set("userID", userID)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, rec
}

func mockHandlers(t *testing.T) (*Handlers, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &Handlers{DB: db}, mock
}

func TestUpdateOrderStatus_MissingOrderIs404(t *testing.T) {
	h, mock := mockHandlers(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, provider_id FROM orders").
		WithArgs("no-such-order").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	c, rec := handlerContext(t, "provider-1", "PATCH", "/api/orders/no-such-order/status", `{"status":"confirmed"}`)
	c.Params = gin.Params{{Key: "id", Value: "no-such-order"}}

	h.UpdateOrderStatus(c)

	assert.Equal(t, 404, rec.Code)
	assert.Contains(t, rec.Body.String(), "order not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatus_IllegalMoveIs409(t *testing.T) {
	h, mock := mockHandlers(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, provider_id FROM orders").
		WithArgs("order-1").
		WillReturnRows(sqlmock.NewRows([]string{"status", "provider_id"}).AddRow("pending", "provider-1"))
	mock.ExpectRollback()

	c, rec := handlerContext(t, "provider-1", "PATCH", "/api/orders/order-1/status", `{"status":"shipped"}`)
	c.Params = gin.Params{{Key: "id", Value: "order-1"}}

	h.UpdateOrderStatus(c)

	assert.Equal(t, 409, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid order status transition")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrders_ProviderViewIsSelfOnly(t *testing.T) {
	h, _ := mockHandlers(t)

	c, rec := handlerContext(t, "consumer-1", "GET", "/api/orders?providerId=provider-2", "")

	h.GetOrders(c)

	assert.Equal(t, 403, rec.Code)
}

func TestCreateOrder_RejectsForeignProviderItem(t *testing.T) {
	h, mock := mockHandlers(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, name, price FROM items").
		WithArgs("item-of-provider-b", "provider-a").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	body := `{
		"providerId": "provider-a",
		"items": [{"itemId": "item-of-provider-b", "quantity": 1}],
		"deliveryAddress": {"street": "1 Main St", "city": "Springfield", "zipCode": "12345"}
	}`
	c, rec := handlerContext(t, "consumer-1", "POST", "/api/orders", body)

	h.CreateOrder(c)

	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "not available from this provider")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateItem_StampsFreshDocument(t *testing.T) {
	h, mock := mockHandlers(t)

	mock.ExpectExec("INSERT INTO items").
		WillReturnResult(sqlmock.NewResult(1, 1))

	body := `{"name": "Organic Apples", "category": "Fruits", "brand": "GreenFarm", "price": 2.99, "availableStock": 10}`
	c, rec := handlerContext(t, "provider-1", "POST", "/api/items", body)

	h.CreateItem(c)

	require.Equal(t, 201, rec.Code)

	var resp struct {
		ItemID string `json:"itemId"`
		Item   struct {
			ID         string `json:"id"`
			ProviderID string `json:"providerId"`
			CreatedAt  string `json:"createdAt"`
			UpdatedAt  string `json:"updatedAt"`
		} `json:"item"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.ItemID)
	assert.Equal(t, resp.ItemID, resp.Item.ID)
	assert.Equal(t, "provider-1", resp.Item.ProviderID, "owner is the acting principal, never body-supplied")
	assert.Equal(t, resp.Item.CreatedAt, resp.Item.UpdatedAt, "fresh documents share one timestamp")
	assert.NoError(t, mock.ExpectationsWereMet())
}
