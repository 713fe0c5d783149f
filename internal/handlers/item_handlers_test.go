package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestIntQuery(t *testing.T) {
	c := queryContext(t, "page=3&pageSize=abc")

	assert.Equal(t, 3, intQuery(c, "page", 0))
	assert.Equal(t, 10, intQuery(c, "pageSize", 10), "garbage falls back")
	assert.Equal(t, 0, intQuery(c, "missing", 0))
}

func TestItemInputValidate(t *testing.T) {
	in := ItemInput{Price: decimal.NewFromFloat(2.99)}
	assert.Empty(t, in.validate())

	in.Price = decimal.Zero
	assert.Empty(t, in.validate(), "zero price is allowed")

	in.Price = decimal.NewFromFloat(-0.01)
	assert.Equal(t, "Price must be zero or greater.", in.validate())
}
