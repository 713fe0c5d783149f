package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_ForwardPath(t *testing.T) {
	path := []OrderStatus{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered}
	for i := 0; i < len(path)-1; i++ {
		next, err := path[i].TransitionTo(path[i+1])
		require.NoError(t, err)
		assert.Equal(t, path[i+1], next)
	}
}

func TestOrderStatus_NoSkipping(t *testing.T) {
	_, err := StatusPending.TransitionTo(StatusShipped)
	require.Error(t, err)

	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, StatusPending, invalid.From)
	assert.Equal(t, StatusShipped, invalid.To)
}

func TestOrderStatus_NoBackwards(t *testing.T) {
	_, err := StatusShipped.TransitionTo(StatusConfirmed)
	assert.Error(t, err)
	_, err = StatusDelivered.TransitionTo(StatusShipped)
	assert.Error(t, err)
}

func TestOrderStatus_CancelFromNonTerminal(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusConfirmed, StatusShipped} {
		assert.True(t, s.CanTransitionTo(StatusCancelled), "cancel should be reachable from %s", s)
	}
}

func TestOrderStatus_TerminalStatesReject(t *testing.T) {
	for _, terminal := range []OrderStatus{StatusDelivered, StatusCancelled} {
		assert.True(t, terminal.IsTerminal())
		for _, next := range []OrderStatus{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled} {
			assert.False(t, terminal.CanTransitionTo(next), "%s -> %s must be rejected", terminal, next)
		}
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus("pending"))
	assert.True(t, ValidStatus("cancelled"))
	assert.False(t, ValidStatus("on-hold"))
	assert.False(t, ValidStatus(""))
}

func TestComputeTotal_Snapshot(t *testing.T) {
	items := []OrderItem{
		{ItemID: "1", Name: "Organic Apples", Quantity: 2, Price: decimal.RequireFromString("2.99")},
		{ItemID: "3", Name: "Milk 1L", Quantity: 1, Price: decimal.RequireFromString("1.99")},
	}
	total := ComputeTotal(items)
	assert.True(t, total.Equal(decimal.RequireFromString("7.97")), "got %s", total)

	// Changing the catalog price later must not affect the snapshot total.
	items[0].Price = decimal.RequireFromString("9.99")
	assert.True(t, ComputeTotal(items).Equal(decimal.RequireFromString("21.97")))
	assert.True(t, total.Equal(decimal.RequireFromString("7.97")))
}

func TestComputeTotal_Empty(t *testing.T) {
	assert.True(t, ComputeTotal(nil).IsZero())
}
