package formatter

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/quarterlog/quarterlog/internal/core/activity"
	"github.com/quarterlog/quarterlog/internal/core/timeline"
)

func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)

	if fnErr != nil {
		t.Fatalf("Format returned error: %v", fnErr)
	}
	return buf.String()
}

func testReport(t *testing.T) DayReport {
	t.Helper()

	builder, err := timeline.NewBuilder(0, 96)
	if err != nil {
		t.Fatalf("failed to build calendar: %v", err)
	}

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	acts := []activity.Activity{
		{ID: "1", Description: "Email triage", TimeBlock: "09:00", Timestamp: date.Add(9 * time.Hour)},
		{ID: "2", Description: "Deep work", TimeBlock: "10:00", Timestamp: date.Add(10 * time.Hour)},
		{ID: "3", Description: "Deep work", TimeBlock: "10:15", Timestamp: date.Add(10*time.Hour + 15*time.Minute)},
		{ID: "4", Description: "Standup", TimeBlock: "10:15", Timestamp: date.Add(10*time.Hour + 15*time.Minute)},
	}

	view := builder.BuildDay(acts, time.Time{})
	return BuildDayReport(view, date, "Ada", &activity.Summary{Text: "A focused morning.", IsAI: true})
}

func TestBuildDayReport(t *testing.T) {
	report := testReport(t)

	if report.Date != "2024-01-15" {
		t.Errorf("Date = %q, want 2024-01-15", report.Date)
	}
	if report.Count != 4 {
		t.Errorf("Count = %d, want 4", report.Count)
	}
	// three occupied slots: 09:00, 10:00, 10:15
	if len(report.Slots) != 3 {
		t.Fatalf("Slots = %d, want 3", len(report.Slots))
	}
	if got := report.Slots[2].Activities; len(got) != 2 {
		t.Errorf("10:15 activities = %v, want two entries", got)
	}
	// the multi-activity slot at 10:15 prevents a run at 10:00
	for _, row := range report.Slots {
		if row.RunSize != 0 {
			t.Errorf("slot %s has run size %d, want none", row.Time, row.RunSize)
		}
	}
	if report.Summary != "A focused morning." || !report.SummaryIsAI {
		t.Errorf("summary not carried: %+v", report)
	}
}

func TestBuildDayReportRuns(t *testing.T) {
	builder, err := timeline.NewBuilder(0, 96)
	if err != nil {
		t.Fatalf("failed to build calendar: %v", err)
	}

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	acts := []activity.Activity{
		{ID: "1", Description: "Review", TimeBlock: "14:00", Timestamp: date.Add(14 * time.Hour)},
		{ID: "2", Description: "Review", TimeBlock: "14:15", Timestamp: date.Add(14*time.Hour + 15*time.Minute)},
		{ID: "3", Description: "Review", TimeBlock: "14:30", Timestamp: date.Add(14*time.Hour + 30*time.Minute)},
	}

	view := builder.BuildDay(acts, time.Time{})
	report := BuildDayReport(view, date, "Ada", nil)

	if len(report.Slots) != 3 {
		t.Fatalf("Slots = %d, want 3", len(report.Slots))
	}
	if !report.Slots[0].RunStart || report.Slots[0].RunSize != 3 {
		t.Errorf("first row should start a run of 3, got %+v", report.Slots[0])
	}
	if report.Slots[1].RunStart || report.Slots[1].RunSize != 3 {
		t.Errorf("second row should continue the run, got %+v", report.Slots[1])
	}
}

func TestBuildDayReportUnbound(t *testing.T) {
	builder, err := timeline.NewBuilder(9, 32) // 09:00 through 16:45
	if err != nil {
		t.Fatalf("failed to build calendar: %v", err)
	}

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	acts := []activity.Activity{
		{ID: "1", Description: "Late call", TimeBlock: "22:00", Timestamp: date.Add(22 * time.Hour)},
	}

	report := BuildDayReport(builder.BuildDay(acts, time.Time{}), date, "Ada", nil)

	if len(report.Unbound) != 1 || report.Unbound[0].TimeBlock != "22:00" {
		t.Fatalf("Unbound = %+v, want the 22:00 activity", report.Unbound)
	}
	if report.Count != 1 {
		t.Errorf("Count = %d, want 1 (unbound still counts)", report.Count)
	}
}

func TestTableFormatterFormat(t *testing.T) {
	report := testReport(t)
	out := captureStdout(t, func() error {
		return NewTableFormatter().Format(report)
	})

	for _, want := range []string{
		"Monday, January 15, 2024",
		"Ada",
		"09:00",
		"Email triage",
		"Deep work; Standup",
		"4 activities",
		"A focused morning.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q\n%s", want, out)
		}
	}
}

func TestCSVFormatterFormat(t *testing.T) {
	report := testReport(t)
	out := captureStdout(t, func() error {
		return NewCSVFormatter().Format(report)
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	// header + four activity records
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), out)
	}
	if lines[0] != "Date,Time,Activity,Run Size" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "2024-01-15,09:00,Email triage") {
		t.Errorf("first record = %q", lines[1])
	}
}

func TestJSONFormatterFormat(t *testing.T) {
	report := testReport(t)
	out := captureStdout(t, func() error {
		return NewJSONFormatter().Format(report)
	})

	for _, want := range []string{`"date": "2024-01-15"`, `"Email triage"`, `"activityCount": 4`} {
		if !strings.Contains(out, want) {
			t.Errorf("json output missing %q\n%s", want, out)
		}
	}
}

func TestSummaryFormatterFormat(t *testing.T) {
	report := testReport(t)
	out := captureStdout(t, func() error {
		return NewSummaryFormatter().Format(report)
	})

	for _, want := range []string{
		"Activity Report",
		"09:00  Email triage",
		"Activities: 4",
		"Day Summary (AI):",
		"A focused morning.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q\n%s", want, out)
		}
	}

	empty := DayReport{DateLabel: "Monday, January 15, 2024"}
	out = captureStdout(t, func() error {
		return NewSummaryFormatter().Format(empty)
	})
	if !strings.Contains(out, "No activities recorded") {
		t.Errorf("empty report output missing placeholder:\n%s", out)
	}
}
