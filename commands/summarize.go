package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quarterlog/quarterlog/internal/core/activity"
	"github.com/quarterlog/quarterlog/internal/data/store"
	"github.com/quarterlog/quarterlog/internal/summary"
	"github.com/quarterlog/quarterlog/internal/util"
)

var (
	summarizeDate    string
	summarizeHost    string
	summarizeModel   string
	summarizeStyle   string
	summarizeTimeout int
	summarizePull    bool
	summarizeNoSave  bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Generate a day's AI summary",
	Long: `Sends the day's activities to a local Ollama model and prints the
generated summary. The result is cached in the data store so the report
and timeline views can show it.

Examples:
  quarterlog summarize
  quarterlog summarize --date 2024-01-15
  quarterlog summarize --pull    # Pull the model first if it is missing`,
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().StringVar(&summarizeDate, "date", "",
		"Day to summarize (YYYY-MM-DD, default today)")
	summarizeCmd.Flags().StringVar(&summarizeHost, "model-host", "http://127.0.0.1:11434",
		"Ollama server address")
	summarizeCmd.Flags().StringVar(&summarizeModel, "model", "llama3.2",
		"Model used for the summary")
	summarizeCmd.Flags().StringVar(&summarizeStyle, "style", "summary",
		"Summary prompt style (summary, plain)")
	summarizeCmd.Flags().IntVar(&summarizeTimeout, "timeout", 120,
		"Generation timeout in seconds")
	summarizeCmd.Flags().BoolVar(&summarizePull, "pull", false,
		"Pull the model first when it is not installed")
	summarizeCmd.Flags().BoolVar(&summarizeNoSave, "no-save", false,
		"Print the summary without caching it")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	if err := initRuntime(); err != nil {
		return err
	}

	style, err := parseSummaryStyle(summarizeStyle)
	if err != nil {
		return err
	}

	date, err := resolveDate(summarizeDate)
	if err != nil {
		return err
	}

	fileStore, err := store.NewFileStore(expandPath(dataDir))
	if err != nil {
		return fmt.Errorf("failed to open data store: %w", err)
	}
	doc := fileStore.Load()

	acts := activity.NewStore(doc.Activities).ForDate(date)
	if len(acts) == 0 {
		return fmt.Errorf("no activities recorded on %s", activity.DateKey(date))
	}

	timeout := time.Duration(summarizeTimeout) * time.Second
	client := summary.NewOllamaClient(summarizeHost, summarizeModel, style, timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	status := client.CheckAvailability(ctx)
	if status == summary.AvailabilityDownloadable && summarizePull {
		fmt.Printf("Pulling %s...\n", summarizeModel)
		// Pulls can take far longer than generation, so they are not bounded
		// by the generation timeout
		err := client.Download(context.Background(), func(fraction float64) {
			fmt.Printf("\r  %s %s", util.CreateProgressBar(fraction, 30), util.FormatPercent(fraction))
		})
		fmt.Println()
		if err != nil {
			return fmt.Errorf("model pull failed: %w", err)
		}
		status = client.CheckAvailability(ctx)
	}
	if status != summary.AvailabilityAvailable {
		return fmt.Errorf("model %s is not available at %s (state: %s)",
			summarizeModel, summarizeHost, status)
	}

	dateLabel := "today"
	if !activity.SameDay(date, util.GetTimeProvider().Now()) {
		dateLabel = date.Format("January 2")
	}

	result, err := client.Summarize(ctx, summary.Request{
		Lines:       activity.ChronologicalLines(acts),
		DateLabel:   dateLabel,
		ActiveHours: activity.ActiveHours(acts),
	})
	if err != nil {
		return fmt.Errorf("summarization failed: %w", err)
	}

	fmt.Println(result.Text)

	if !summarizeNoSave {
		doc.PutSummary(activity.DateKey(date), result)
		if err := fileStore.Save(doc); err != nil {
			return fmt.Errorf("failed to cache summary: %w", err)
		}
	}
	return nil
}
