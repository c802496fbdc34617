package timeline

import (
	"github.com/quarterlog/quarterlog/internal/core/activity"
	"github.com/quarterlog/quarterlog/internal/core/slot"
)

// Binding maps slot keys to the activities placed there. Activities whose
// TimeBlock matches no slot in the calendar are collected in Unbound instead
// of being dropped silently.
type Binding struct {
	BySlot  map[string][]activity.Activity
	Unbound []activity.Activity
}

// Bind distributes a day's activities over the slot calendar. Insertion order
// is preserved within each slot; several activities may share a slot.
func Bind(slots []slot.Slot, activities []activity.Activity) Binding {
	known := make(map[string]bool, len(slots))
	for _, s := range slots {
		known[s.FullTime] = true
	}

	binding := Binding{
		BySlot: make(map[string][]activity.Activity),
	}

	for _, act := range activities {
		if !known[act.TimeBlock] {
			binding.Unbound = append(binding.Unbound, act)
			continue
		}
		binding.BySlot[act.TimeBlock] = append(binding.BySlot[act.TimeBlock], act)
	}

	return binding
}
