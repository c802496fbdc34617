package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quarterlog/quarterlog/internal/core/activity"
	"github.com/quarterlog/quarterlog/internal/core/slot"
	"github.com/quarterlog/quarterlog/internal/data/store"
	"github.com/quarterlog/quarterlog/internal/util"
)

var (
	addTime string
	addDate string
)

var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Record an activity without opening the timeline",
	Long: `Records an activity in a 15-minute slot. The slot can be given as a
leading HH:MM argument or with --time; without either the current slot is
used, so "quarterlog add" works as a quick log-what-I-just-did.

Examples:
  quarterlog add "Code review"
  quarterlog add 09:30 "Standup"
  quarterlog add "Planning" --date 2024-01-15 --time 14:00`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addTime, "time", "",
		"Slot to record into (HH:MM on a quarter hour, default now)")
	addCmd.Flags().StringVar(&addDate, "date", "",
		"Day to record into (YYYY-MM-DD, default today)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	if err := initRuntime(); err != nil {
		return err
	}

	timeBlock := addTime
	if timeBlock == "" && len(args) > 1 {
		if _, _, err := slot.ParseKey(args[0]); err == nil {
			timeBlock = args[0]
			args = args[1:]
		}
	}

	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		return fmt.Errorf("description must not be empty")
	}
	if len([]rune(description)) > activity.MaxDescriptionChars {
		return fmt.Errorf("description exceeds %d characters", activity.MaxDescriptionChars)
	}

	date, err := resolveDate(addDate)
	if err != nil {
		return err
	}

	if timeBlock == "" {
		timeBlock = slot.KeyFor(util.GetTimeProvider().Now())
	}
	if _, _, err := slot.ParseKey(timeBlock); err != nil {
		return fmt.Errorf("invalid slot time: %w", err)
	}

	fileStore, err := store.NewFileStore(expandPath(dataDir))
	if err != nil {
		return fmt.Errorf("failed to open data store: %w", err)
	}
	doc := fileStore.Load()

	acts := activity.NewStore(doc.Activities)
	added, err := acts.Add(description, timeBlock, date)
	if err != nil {
		return err
	}

	doc.Activities = acts.Snapshot()
	if err := fileStore.Save(doc); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}

	fmt.Printf("Recorded %q at %s on %s\n", added.Description, added.TimeBlock, activity.DateKey(date))
	return nil
}
