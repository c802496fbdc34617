package formatter

import (
	"fmt"
	"strings"

	"github.com/quarterlog/quarterlog/internal/util"
)

type TableFormatter struct {
	headers []string
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers: []string{"Time", "Activity", "Run"},
	}
}

func (f *TableFormatter) Format(report DayReport) error {
	fmt.Printf("%s — %s\n\n", report.DateLabel, report.UserName)

	if len(report.Slots) == 0 {
		fmt.Println("No activities recorded.")
		return f.printFooter(report)
	}

	widths := f.calculateColumnWidths(report)

	f.printBorder(widths, "top")
	f.printRow(f.headers, widths)
	f.printBorder(widths, "middle")

	for _, row := range report.Slots {
		f.printRow([]string{row.Time, strings.Join(row.Activities, "; "), runLabel(row)}, widths)
	}

	f.printBorder(widths, "bottom")
	return f.printFooter(report)
}

func (f *TableFormatter) printFooter(report DayReport) error {
	fmt.Printf("\n%d activities, about %s active hours\n",
		report.Count, util.FormatHours(report.ActiveHours))

	for _, ub := range report.Unbound {
		fmt.Printf("outside calendar (%s): %s\n", ub.TimeBlock, ub.Description)
	}

	if report.Summary != "" {
		tag := ""
		if report.SummaryIsAI {
			tag = " (AI)"
		}
		fmt.Printf("\nDay summary%s:\n%s\n", tag, report.Summary)
	}
	return nil
}

// runLabel annotates grouped slots: the size on the starting row, a
// continuation mark on the rest
func runLabel(row SlotRow) string {
	if row.RunSize == 0 {
		return ""
	}
	if row.RunStart {
		return fmt.Sprintf("×%d", row.RunSize)
	}
	return "│"
}

func (f *TableFormatter) calculateColumnWidths(report DayReport) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}

	for _, row := range report.Slots {
		values := []string{row.Time, strings.Join(row.Activities, "; "), runLabel(row)}
		for i, value := range values {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	fmt.Print(left)
	for i, width := range widths {
		fmt.Print(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			fmt.Print(middle)
		}
	}
	fmt.Println(right)
}

func (f *TableFormatter) printRow(values []string, widths []int) {
	fmt.Print("│")
	for i, value := range values {
		fmt.Printf(" %s │", util.PadRight(value, widths[i]))
	}
	fmt.Println()
}
