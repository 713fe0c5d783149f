package catalog

import (
	"fmt"
	"math"
	"testing"

	"github.com/farhank0/grocerylink-golang/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []models.Item {
	return []models.Item{
		{ID: "1", Name: "Apples", Brand: "Green Farms", Category: "Fruits"},
		{ID: "2", Name: "Bread", Brand: "Bakers", Category: "Bakery"},
		{ID: "3", Name: "Milk 1L", Brand: "Farm Fresh", Category: "Dairy"},
		{ID: "4", Name: "Spinach", Brand: "Green Farms", Category: "Vegetables"},
	}
}

func TestFilterItems_NoFilters(t *testing.T) {
	items := testItems()
	got := FilterItems(items, FilterAll, "")
	assert.Equal(t, items, got, "sentinel filter must return the input unchanged")
}

func TestFilterItems_Category(t *testing.T) {
	got := FilterItems(testItems(), "Fruits", "")
	require.Len(t, got, 1)
	assert.Equal(t, "Apples", got[0].Name)
}

func TestFilterItems_SearchMatchesNameOrBrand(t *testing.T) {
	// "bak" matches Bread via its brand "Bakers", case-insensitively.
	got := FilterItems(testItems(), FilterAll, "bak")
	require.Len(t, got, 1)
	assert.Equal(t, "Bread", got[0].Name)

	// "green" matches both Green Farms items, input order preserved.
	got = FilterItems(testItems(), FilterAll, "GREEN")
	require.Len(t, got, 2)
	assert.Equal(t, "Apples", got[0].Name)
	assert.Equal(t, "Spinach", got[1].Name)
}

func TestFilterItems_BothPredicates(t *testing.T) {
	got := FilterItems(testItems(), "Bakery", "apples")
	assert.Empty(t, got, "predicates are AND-ed")
}

func TestFilterOrders_Status(t *testing.T) {
	orders := []models.Order{
		{ID: "1", Status: models.StatusPending},
		{ID: "2", Status: models.StatusDelivered},
	}
	got := FilterOrders(orders, "pending", "")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilterOrders_SearchIDOrItemName(t *testing.T) {
	orders := []models.Order{
		{ID: "ord-100", Status: models.StatusPending, Items: []models.OrderItem{{Name: "Organic Apples"}}},
		{ID: "ord-200", Status: models.StatusPending, Items: []models.OrderItem{{Name: "Whole Wheat Bread"}}},
	}

	got := FilterOrders(orders, FilterAll, "100")
	require.Len(t, got, 1)
	assert.Equal(t, "ord-100", got[0].ID)

	got = FilterOrders(orders, FilterAll, "wheat")
	require.Len(t, got, 1)
	assert.Equal(t, "ord-200", got[0].ID)
}

func TestPaginate_Reconstructs(t *testing.T) {
	seq := make([]int, 13)
	for i := range seq {
		seq[i] = i
	}
	size := 5

	var rebuilt []int
	for page := 0; ; page++ {
		chunk := Paginate(seq, page, size)
		if len(chunk) == 0 {
			break
		}
		rebuilt = append(rebuilt, chunk...)
	}
	assert.Equal(t, seq, rebuilt, "concatenated pages must rebuild the sequence with no dup/drop")
}

func TestPaginate_OutOfRange(t *testing.T) {
	seq := []string{"a", "b", "c"}
	assert.Empty(t, Paginate(seq, 5, 2))
	assert.Empty(t, Paginate(seq, -1, 2))
	assert.Equal(t, seq, Paginate(seq, 0, 0), "size <= 0 disables pagination")
}

func TestPaginate_HugePageDoesNotOverflow(t *testing.T) {
	seq := []int{1, 2, 3}
	// page*size would wrap negative here; both query params are
	// caller-controlled, so this must yield an empty page, not a panic.
	assert.Empty(t, Paginate(seq, math.MaxInt/2, 4))
	assert.Empty(t, Paginate(seq, math.MaxInt, math.MaxInt))
	assert.Empty(t, Paginate(seq, math.MaxInt, 1))
}

func TestPaginate_FinalShortPage(t *testing.T) {
	seq := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{5}, Paginate(seq, 2, 2))
}

func TestCategories_DistinctFirstSeen(t *testing.T) {
	items := append(testItems(), models.Item{ID: "5", Name: "Pears", Category: "Fruits"})
	got := Categories(items)
	assert.Equal(t, []string{"Fruits", "Bakery", "Dairy", "Vegetables"}, got)
}

func TestFilterItems_LargeCollectionOrderPreserved(t *testing.T) {
	var items []models.Item
	for i := 0; i < 50; i++ {
		items = append(items, models.Item{
			ID:       fmt.Sprintf("%d", i),
			Name:     fmt.Sprintf("Item %d", i),
			Brand:    "House",
			Category: "Pantry",
			Price:    decimal.NewFromInt(int64(i)),
		})
	}
	got := FilterItems(items, "Pantry", "item")
	require.Len(t, got, 50)
	for i, item := range got {
		assert.Equal(t, items[i].ID, item.ID)
	}
}
