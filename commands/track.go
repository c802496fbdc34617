package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/quarterlog/quarterlog/internal/application/tracker"
	"github.com/quarterlog/quarterlog/internal/summary"
)

var (
	// Display related flags
	trackTimeFormat string

	// Summarization flags
	trackModelHost      string
	trackModel          string
	trackSummaryStyle   string
	trackSummaryTimeout int
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Open the live timeline",
	Long: `Displays the day as an interactive timeline of 15-minute slots.
Navigate with the arrow keys, type to record activities, and generate
AI summaries of the day with a local Ollama model.

Consecutive slots holding the same single activity collapse into one
labelled run; moving the cursor into a run expands it.`,
	RunE: runTrack,
}

func init() {
	rootCmd.AddCommand(trackCmd)

	trackCmd.Flags().StringVar(&trackTimeFormat, "time-format", "24h",
		"Time format (12h or 24h)")
	trackCmd.Flags().StringVar(&trackModelHost, "model-host", "http://127.0.0.1:11434",
		"Ollama server address")
	trackCmd.Flags().StringVar(&trackModel, "model", "llama3.2",
		"Model used for day summaries")
	trackCmd.Flags().StringVar(&trackSummaryStyle, "summary-style", "summary",
		"Summary prompt style (summary, plain)")
	trackCmd.Flags().IntVar(&trackSummaryTimeout, "summary-timeout", 120,
		"Summary generation timeout in seconds")
}

func runTrack(cmd *cobra.Command, args []string) error {
	if err := initRuntime(); err != nil {
		return err
	}

	style, err := parseSummaryStyle(trackSummaryStyle)
	if err != nil {
		return err
	}

	config := &tracker.Config{
		DataDir:        expandPath(dataDir),
		StartHour:      startHour,
		TotalSlots:     totalSlots,
		Timezone:       timezone,
		TimeFormat:     trackTimeFormat,
		ModelHost:      trackModelHost,
		Model:          trackModel,
		SummaryStyle:   style,
		SummaryTimeout: time.Duration(trackSummaryTimeout) * time.Second,
	}

	orchestrator, err := tracker.NewOrchestrator(config)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		cancel()
	}()

	return orchestrator.Run(ctx)
}

func parseSummaryStyle(value string) (summary.Style, error) {
	switch value {
	case "summary":
		return summary.StyleSummary, nil
	case "plain":
		return summary.StylePlain, nil
	default:
		return "", fmt.Errorf("invalid summary style %q: must be summary or plain", value)
	}
}
