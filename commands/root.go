package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quarterlog/quarterlog/internal/core/activity"
	"github.com/quarterlog/quarterlog/internal/core/timeline"
	"github.com/quarterlog/quarterlog/internal/data/store"
	"github.com/quarterlog/quarterlog/internal/presentation/formatter"
	"github.com/quarterlog/quarterlog/internal/util"
)

var (
	// Logging related
	debug bool

	// Data path
	dataDir string

	// Output related
	outputFormat string
	timezone     string

	// Calendar shape
	startHour  int
	totalSlots int

	// Day selection
	reportDate string

	rootCmd = &cobra.Command{
		Use:   "quarterlog [flags]",
		Short: "Personal activity tracker in quarter-hour slots",
		Long: `quarterlog records what you did in 15-minute slots of the day and
can summarize a day's activities with a local AI model.

Examples:
  quarterlog                              # Print today's activities as a table
  quarterlog --date 2024-01-15 -o json    # A past day, as JSON
  quarterlog add "Code review"            # Record an activity in the current slot
  quarterlog track                        # Open the live timeline
  quarterlog summarize                    # Generate today's AI summary`,
		RunE: runReport,
	}
)

const (
	defaultDataDir = "~/.quarterlog"
	defaultLogFile = "~/.quarterlog/logs/app.log"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", defaultDataDir,
		"Data directory path")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone setting (e.g., Asia/Shanghai, UTC)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().IntVar(&startHour, "start-hour", 0,
		"First hour of the day's calendar (0-23)")
	rootCmd.PersistentFlags().IntVar(&totalSlots, "slots", 96,
		"Number of 15-minute slots in the calendar (multiple of 4)")

	rootCmd.Flags().StringVar(&reportDate, "date", "",
		"Day to report (YYYY-MM-DD, default today)")
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv, summary)")
}

func runReport(cmd *cobra.Command, args []string) error {
	if err := initRuntime(); err != nil {
		return err
	}

	date, err := resolveDate(reportDate)
	if err != nil {
		return err
	}

	fileStore, err := store.NewFileStore(expandPath(dataDir))
	if err != nil {
		return fmt.Errorf("failed to open data store: %w", err)
	}
	doc := fileStore.Load()

	builder, err := timeline.NewBuilder(startHour, totalSlots)
	if err != nil {
		return err
	}

	acts := activity.NewStore(doc.Activities).ForDate(date)

	var now time.Time
	if activity.SameDay(date, util.GetTimeProvider().Now()) {
		now = util.GetTimeProvider().Now()
	}
	view := builder.BuildDay(acts, now)

	var cached *activity.Summary
	if sum, ok := doc.SummaryFor(activity.DateKey(date)); ok {
		cached = &sum
	}
	report := formatter.BuildDayReport(view, date, doc.DisplayName(), cached)

	switch outputFormat {
	case "table":
		return formatter.NewTableFormatter().Format(report)
	case "json":
		return formatter.NewJSONFormatter().Format(report)
	case "csv":
		return formatter.NewCSVFormatter().Format(report)
	case "summary":
		return formatter.NewSummaryFormatter().Format(report)
	default:
		return fmt.Errorf("invalid output format %q: must be table, json, csv or summary", outputFormat)
	}
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

// initRuntime sets up logging and the shared time provider
func initRuntime() error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	util.InitLogger(logLevel, logFile, debug)

	if err := util.InitializeTimeProvider(timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return nil
}

// resolveDate parses a YYYY-MM-DD day in the configured timezone,
// defaulting to today
func resolveDate(value string) (time.Time, error) {
	tp := util.GetTimeProvider()
	if value == "" {
		return tp.Now(), nil
	}
	date, err := time.ParseInLocation("2006-01-02", value, tp.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return date, nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
