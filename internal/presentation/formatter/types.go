package formatter

import (
	"time"

	"github.com/quarterlog/quarterlog/internal/core/activity"
	"github.com/quarterlog/quarterlog/internal/core/timeline"
)

// DayReport is the flattened output model for one day
type DayReport struct {
	Date        string       `json:"date"`
	DateLabel   string       `json:"dateLabel"`
	UserName    string       `json:"userName"`
	Slots       []SlotRow    `json:"slots"`
	Count       int          `json:"activityCount"`
	ActiveHours float64      `json:"activeHours"`
	Summary     string       `json:"summary,omitempty"`
	SummaryIsAI bool         `json:"summaryIsAI,omitempty"`
	Unbound     []UnboundRow `json:"unbound,omitempty"`
}

// SlotRow is one occupied slot in the report
type SlotRow struct {
	Time       string   `json:"time"`
	Display    string   `json:"display"`
	Activities []string `json:"activities"`
	RunSize    int      `json:"runSize,omitempty"`
	RunStart   bool     `json:"runStart,omitempty"`
}

// UnboundRow reports an activity whose slot is outside the day's calendar
type UnboundRow struct {
	TimeBlock   string `json:"timeBlock"`
	Description string `json:"description"`
}

// BuildDayReport flattens a day view into the report model. Empty slots are
// dropped; runs keep their size on the starting row only.
func BuildDayReport(view timeline.DayView, date time.Time, userName string, daySummary *activity.Summary) DayReport {
	report := DayReport{
		Date:      activity.DateKey(date),
		DateLabel: date.Format("Monday, January 2, 2006"),
		UserName:  userName,
	}

	var acts []activity.Activity
	for _, sv := range view.Slots {
		if sv.Mode == timeline.ModeEmpty {
			continue
		}
		acts = append(acts, sv.Activities...)

		row := SlotRow{
			Time:    sv.Slot.FullTime,
			Display: sv.Slot.Hour12 + " " + sv.Slot.AMPM,
		}
		for _, act := range sv.Activities {
			row.Activities = append(row.Activities, act.Description)
		}
		if sv.Group != nil {
			row.RunSize = sv.Group.Size
			row.RunStart = sv.Mode == timeline.ModeGroupHead
		}
		report.Slots = append(report.Slots, row)
	}

	acts = append(acts, view.Unbound...)
	report.Count = len(acts)
	report.ActiveHours = activity.ActiveHours(acts)

	for _, act := range view.Unbound {
		report.Unbound = append(report.Unbound, UnboundRow{
			TimeBlock:   act.TimeBlock,
			Description: act.Description,
		})
	}

	if daySummary != nil {
		report.Summary = daySummary.Text
		report.SummaryIsAI = daySummary.IsAI
	}
	return report
}
