package formatter

import (
	"encoding/csv"
	"fmt"
	"os"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// Format writes one record per activity. Grouped slots carry the run size so
// downstream tooling can re-collapse them.
func (f *CSVFormatter) Format(report DayReport) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	headers := []string{"Date", "Time", "Activity", "Run Size"}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, row := range report.Slots {
		runSize := ""
		if row.RunSize > 0 {
			runSize = fmt.Sprintf("%d", row.RunSize)
		}
		for _, desc := range row.Activities {
			record := []string{report.Date, row.Time, desc, runSize}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}

	for _, ub := range report.Unbound {
		record := []string{report.Date, ub.TimeBlock, ub.Description, ""}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}
