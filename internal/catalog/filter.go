// Package catalog derives display-ready subsets of in-memory item and order
// collections from ephemeral filter criteria. Filtering always preserves the
// original relative order of the input.
package catalog

import (
	"strings"

	"github.com/farhank0/grocerylink-golang/internal/models"
)

// FilterAll is the sentinel meaning "no category/status filter".
const FilterAll = "all"

// FilterItems returns the subsequence of items matching both predicates:
// category is either the "all" sentinel or an exact category match, and query
// is a case-insensitive substring match against name OR brand.
func FilterItems(items []models.Item, category, query string) []models.Item {
	q := strings.ToLower(query)
	filtered := []models.Item{}
	for _, item := range items {
		if category != FilterAll && category != "" && item.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(item.Name), q) &&
			!strings.Contains(strings.ToLower(item.Brand), q) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// FilterOrders returns the subsequence of orders matching the status filter
// ("all" sentinel or exact match) and a case-insensitive substring match of
// query against the order id OR any embedded order item name.
func FilterOrders(orders []models.Order, status, query string) []models.Order {
	q := strings.ToLower(query)
	filtered := []models.Order{}
	for _, order := range orders {
		if status != FilterAll && status != "" && string(order.Status) != status {
			continue
		}
		if q != "" && !orderMatches(order, q) {
			continue
		}
		filtered = append(filtered, order)
	}
	return filtered
}

func orderMatches(order models.Order, q string) bool {
	if strings.Contains(strings.ToLower(order.ID), q) {
		return true
	}
	for _, item := range order.Items {
		if strings.Contains(strings.ToLower(item.Name), q) {
			return true
		}
	}
	return false
}

// Paginate returns the slice [page*size, page*size+size) of seq. Page is
// 0-based. Out-of-range pages yield an empty slice, not an error. A size of
// zero or less disables pagination and returns seq unchanged.
func Paginate[T any](seq []T, page, size int) []T {
	if size <= 0 {
		return seq
	}
	// Bound the page before multiplying so huge values from query params
	// cannot overflow into a negative start index.
	if page < 0 || page > (len(seq)-1)/size {
		return []T{}
	}
	start := page * size
	if start >= len(seq) {
		return []T{}
	}
	end := start + size
	if end > len(seq) {
		end = len(seq)
	}
	return seq[start:end]
}

// Categories returns the distinct categories of items in first-seen order.
// The dashboard uses this to populate its category filter dropdown.
func Categories(items []models.Item) []string {
	seen := make(map[string]bool)
	categories := []string{}
	for _, item := range items {
		if !seen[item.Category] {
			seen[item.Category] = true
			categories = append(categories, item.Category)
		}
	}
	return categories
}
