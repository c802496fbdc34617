package timeline

import (
	"github.com/quarterlog/quarterlog/internal/core/activity"
	"github.com/quarterlog/quarterlog/internal/core/slot"
)

// Position locates a slot inside a collapsed run
type Position string

const (
	PositionFirst  Position = "first"
	PositionMiddle Position = "middle"
	PositionLast   Position = "last"
)

// GroupInfo describes one member slot of a collapsed run. GroupID is the
// slot key of the run's first member.
type GroupInfo struct {
	GroupID     string
	Position    Position
	Size        int
	Description string
}

// GroupRuns finds maximal runs of consecutive slots that each hold exactly
// one activity with identical description text. Runs of a single slot are
// not groups. Description comparison is exact: case- and
// whitespace-sensitive, no normalization.
func GroupRuns(slots []slot.Slot, bySlot map[string][]activity.Activity) map[string]GroupInfo {
	groups := make(map[string]GroupInfo)

	var runSlots []string
	var runText string

	closeRun := func() {
		if len(runSlots) >= 2 {
			for i, key := range runSlots {
				pos := PositionMiddle
				switch i {
				case 0:
					pos = PositionFirst
				case len(runSlots) - 1:
					pos = PositionLast
				}
				groups[key] = GroupInfo{
					GroupID:     runSlots[0],
					Position:    pos,
					Size:        len(runSlots),
					Description: runText,
				}
			}
		}
		runSlots = nil
	}

	for _, s := range slots {
		bound := bySlot[s.FullTime]

		if len(bound) == 1 {
			if len(runSlots) > 0 && bound[0].Description == runText {
				runSlots = append(runSlots, s.FullTime)
				continue
			}
			closeRun()
			runSlots = []string{s.FullTime}
			runText = bound[0].Description
			continue
		}

		// Empty slots and slots with several activities break any run
		closeRun()
	}
	closeRun()

	return groups
}
