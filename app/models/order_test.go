package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	// The happy path moves one step at a time.
	sequence := []Status{
		StatusPending, StatusConfirmed, StatusCutting, StatusStitching,
		StatusFitting, StatusFinishing, StatusReady, StatusDelivered,
	}
	for i := 0; i < len(sequence)-1; i++ {
		assert.True(t, sequence[i].CanTransitionTo(sequence[i+1]),
			"%s -> %s", sequence[i], sequence[i+1])
	}

	// No skipping ahead, no going back.
	assert.False(t, StatusPending.CanTransitionTo(StatusCutting))
	assert.False(t, StatusStitching.CanTransitionTo(StatusConfirmed))
	assert.False(t, StatusPending.CanTransitionTo(StatusDelivered))

	// Cancel works from any non-terminal state.
	for _, s := range sequence[:len(sequence)-1] {
		assert.True(t, s.CanTransitionTo(StatusCancelled), "%s -> Cancelled", s)
	}

	// Terminal states are final.
	assert.False(t, StatusDelivered.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusPending))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusCancelled))

	// Unknown codes are never reachable.
	assert.False(t, StatusPending.CanTransitionTo(Status(42)))
}

func TestStatusNames(t *testing.T) {
	assert.Equal(t, "Pending", StatusPending.String())
	assert.Equal(t, "Cancelled", StatusCancelled.String())
	assert.Equal(t, "Unknown", Status(42).String())

	assert.True(t, StatusReady.Valid())
	assert.False(t, Status(-1).Valid())
}

func TestOrderBalance(t *testing.T) {
	o := Order{
		TotalAmount: decimal.NewFromInt(500),
		AdvancePaid: decimal.NewFromInt(200),
	}
	assert.True(t, o.Balance().Equal(decimal.NewFromInt(300)))

	// Exact decimal arithmetic, no float drift.
	o = Order{
		TotalAmount: decimal.RequireFromString("100.10"),
		AdvancePaid: decimal.RequireFromString("0.30"),
	}
	assert.Equal(t, "99.80", o.Balance().StringFixed(2))
}
