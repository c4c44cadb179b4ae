package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tradeterm/internal/models"
)

func TestEntryAllowed(t *testing.T) {
	now := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	cooldown := 30 * time.Minute

	tests := []struct {
		name string
		last time.Time
		want bool
	}{
		{name: "no prior execution", last: time.Time{}, want: true},
		{name: "well past cooldown", last: now.Add(-2 * time.Hour), want: true},
		{name: "just past cooldown", last: now.Add(-30*time.Minute - time.Second), want: true},
		{name: "exactly at cooldown is blocked", last: now.Add(-30 * time.Minute), want: false},
		{name: "inside cooldown", last: now.Add(-5 * time.Minute), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := entryAllowed(tc.last, now, cooldown)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIsEntryAllowed(t *testing.T) {
	gw := newFakeGateway()
	eng := newTestEngine(t, gw, newFakeExitStore())
	now := eng.now()

	t.Run("no executions allows entry", func(t *testing.T) {
		decision := eng.isEntryAllowed(nil)
		assert.True(t, decision.Allowed)
	})

	t.Run("recent execution blocks entry", func(t *testing.T) {
		decision := eng.isEntryAllowed([]models.Execution{
			{Symbol: "AAPL", Time: now.Add(-10 * time.Minute)},
		})
		assert.False(t, decision.Allowed)
		assert.Contains(t, decision.Message, "limit: 30 minutes")
	})

	t.Run("latest execution is the one that counts", func(t *testing.T) {
		decision := eng.isEntryAllowed([]models.Execution{
			{Symbol: "AAPL", Time: now.Add(-3 * time.Hour)},
			{Symbol: "AAPL", Time: now.Add(-10 * time.Minute)},
		})
		assert.False(t, decision.Allowed)
	})

	t.Run("old execution allows entry", func(t *testing.T) {
		decision := eng.isEntryAllowed([]models.Execution{
			{Symbol: "AAPL", Time: now.Add(-31 * time.Minute)},
		})
		assert.True(t, decision.Allowed)
	})
}
