package timeline

import (
	"time"

	"github.com/quarterlog/quarterlog/internal/core/activity"
	"github.com/quarterlog/quarterlog/internal/core/slot"
	"github.com/quarterlog/quarterlog/internal/util"
)

// SlotMode classifies what a slot holds, before any interaction state
type SlotMode int

const (
	// ModeEmpty means no activity is bound to the slot
	ModeEmpty SlotMode = iota
	// ModeSingle means exactly one ungrouped activity
	ModeSingle
	// ModeMulti means two or more activities share the slot
	ModeMulti
	// ModeGroupHead is the first slot of a collapsed run
	ModeGroupHead
	// ModeGroupTail is any later member slot of a collapsed run
	ModeGroupTail
)

// SlotView is the render model for one timeline row
type SlotView struct {
	Slot       slot.Slot
	Activities []activity.Activity
	Group      *GroupInfo
	Mode       SlotMode
	IsCurrent  bool
	// Progress is the elapsed fraction of the current slot, 0 elsewhere
	Progress float64
}

// DayView is the full render model for one day
type DayView struct {
	Slots   []SlotView
	Groups  map[string]GroupInfo
	Unbound []activity.Activity
}

// Builder derives day views from the slot calendar and an activity set
type Builder struct {
	slots []slot.Slot
}

// NewBuilder creates a builder over a generated slot calendar
func NewBuilder(startHour, totalSlots int) (*Builder, error) {
	slots, err := slot.Generate(startHour, totalSlots)
	if err != nil {
		return nil, err
	}
	return &Builder{slots: slots}, nil
}

// Slots returns the underlying slot calendar
func (b *Builder) Slots() []slot.Slot {
	return b.slots
}

// BuildDay recomputes the whole day view from scratch. now drives the
// current-slot marker and its progress fraction; pass the zero time to skip
// marking (e.g. when viewing a day other than today).
func (b *Builder) BuildDay(activities []activity.Activity, now time.Time) DayView {
	binding := Bind(b.slots, activities)
	groups := GroupRuns(b.slots, binding.BySlot)

	for _, act := range binding.Unbound {
		util.LogWarnf("Activity %s has out-of-range time block %q and is hidden from the timeline", act.ID, act.TimeBlock)
	}

	currentKey := ""
	if !now.IsZero() {
		currentKey = slot.KeyFor(now)
	}

	views := make([]SlotView, 0, len(b.slots))
	for _, s := range b.slots {
		view := SlotView{
			Slot:       s,
			Activities: binding.BySlot[s.FullTime],
		}

		if info, ok := groups[s.FullTime]; ok {
			view.Group = &info
			if info.Position == PositionFirst {
				view.Mode = ModeGroupHead
			} else {
				view.Mode = ModeGroupTail
			}
		} else {
			switch len(view.Activities) {
			case 0:
				view.Mode = ModeEmpty
			case 1:
				view.Mode = ModeSingle
			default:
				view.Mode = ModeMulti
			}
		}

		if s.FullTime == currentKey {
			view.IsCurrent = true
			view.Progress = slot.Progress(now)
		}

		views = append(views, view)
	}

	return DayView{Slots: views, Groups: groups, Unbound: binding.Unbound}
}
