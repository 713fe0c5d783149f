package handlers

import (
	"log"
	"time"

	"github.com/farhank0/grocerylink-golang/internal/models"
)

// stalePendingWindow is how long an order may sit in pending before the
// background worker cancels it on the provider's behalf.
const stalePendingWindow = 48 * time.Hour

// CancelStaleOrders cancels every pending order older than the stale window.
// It is called periodically from the ticker in main and goes through the same
// transition table as the API so the lifecycle rules hold everywhere.
func (h *Handlers) CancelStaleOrders() {
	cutoff := time.Now().Add(-stalePendingWindow)

	rows, err := h.DB.Query("SELECT id, status FROM orders WHERE status = ? AND created_at < ?", models.StatusPending, cutoff)
	if err != nil {
		log.Printf("Stale order sweep failed to query: %v", err)
		return
	}
	defer rows.Close()

	type stale struct {
		id     string
		status models.OrderStatus
	}
	var found []stale
	for rows.Next() {
		var s stale
		if err := rows.Scan(&s.id, &s.status); err != nil {
			log.Printf("Stale order sweep failed to scan: %v", err)
			return
		}
		found = append(found, s)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Stale order sweep failed: %v", err)
		return
	}

	for _, s := range found {
		newStatus, err := s.status.TransitionTo(models.StatusCancelled)
		if err != nil {
			// Raced with a provider transition; leave it alone.
			continue
		}
		now := time.Now()
		res, err := h.DB.Exec(
			"UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status = ?",
			newStatus, now, s.id, s.status,
		)
		if err != nil {
			log.Printf("Failed to cancel stale order %s: %v", s.id, err)
			continue
		}
		if n, _ := res.RowsAffected(); n > 0 {
			log.Printf("Cancelled stale pending order %s (created before %s)", s.id, cutoff.Format(time.RFC3339))
		}
	}
}
