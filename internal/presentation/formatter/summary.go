package formatter

import (
	"fmt"
	"strings"

	"github.com/quarterlog/quarterlog/internal/util"
)

// SummaryFormatter prints the narrative day report.
type SummaryFormatter struct{}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

// Format prints the day's activities chronologically with totals and the
// cached summary when one exists.
func (f *SummaryFormatter) Format(report DayReport) error {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Activity Report — %s\n", report.DateLabel)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	if len(report.Slots) == 0 && len(report.Unbound) == 0 {
		fmt.Println("No activities recorded")
		fmt.Println()
		fmt.Println(strings.Repeat("=", 60))
		return nil
	}

	for _, row := range report.Slots {
		for _, desc := range row.Activities {
			fmt.Printf("  %s  %s\n", row.Time, desc)
		}
	}
	for _, ub := range report.Unbound {
		fmt.Printf("  %s  %s (outside calendar)\n", ub.TimeBlock, ub.Description)
	}
	fmt.Println()

	fmt.Println("Totals:")
	fmt.Printf("  Activities: %d\n", report.Count)
	fmt.Printf("  Active Hours: %s\n", util.FormatHours(report.ActiveHours))
	fmt.Println()

	if report.Summary != "" {
		header := "Day Summary:"
		if report.SummaryIsAI {
			header = "Day Summary (AI):"
		}
		fmt.Println(header)
		for _, line := range strings.Split(report.Summary, "\n") {
			fmt.Printf("  %s\n", line)
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("=", 60))
	return nil
}
