package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarterlog/quarterlog/internal/core/activity"
)

func TestBindPlacesEveryValidActivity(t *testing.T) {
	slots := fullDay(t)
	activities := []activity.Activity{
		act("09:00", "Coding"),
		act("09:00", "Music"),
		act("14:30", "Meeting"),
	}

	binding := Bind(slots, activities)

	require.Len(t, binding.BySlot["09:00"], 2)
	require.Len(t, binding.BySlot["14:30"], 1)
	assert.Empty(t, binding.Unbound)

	// Each activity lands in exactly one slot
	total := 0
	for _, bound := range binding.BySlot {
		total += len(bound)
	}
	assert.Equal(t, len(activities), total)
}

func TestBindPreservesInsertionOrder(t *testing.T) {
	slots := fullDay(t)
	first := act("09:00", "First")
	second := act("09:00", "Second")

	binding := Bind(slots, []activity.Activity{first, second})

	bound := binding.BySlot["09:00"]
	require.Len(t, bound, 2)
	assert.Equal(t, first.ID, bound[0].ID)
	assert.Equal(t, second.ID, bound[1].ID)
}

func TestBindReportsOutOfRangeSlots(t *testing.T) {
	slots := fullDay(t)
	stray := act("25:00", "Ghost")

	binding := Bind(slots, []activity.Activity{stray, act("09:00", "Real")})

	require.Len(t, binding.Unbound, 1)
	assert.Equal(t, stray.ID, binding.Unbound[0].ID)
	assert.Len(t, binding.BySlot["09:00"], 1)
}
