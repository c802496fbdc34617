package summary

import (
	"context"

	"github.com/quarterlog/quarterlog/internal/core/activity"
)

// Availability is the lifecycle state of the summarization capability
type Availability string

const (
	AvailabilityChecking     Availability = "checking"
	AvailabilityUnavailable  Availability = "unavailable"
	AvailabilityDownloadable Availability = "downloadable"
	AvailabilityDownloading  Availability = "downloading"
	AvailabilityAvailable    Availability = "available"
)

// Request carries one day's activities and metadata for summarization
type Request struct {
	// Lines are "- HH:MM: description" entries in chronological order
	Lines []string
	// DateLabel names the day in the prompt, e.g. "today" or "March 14"
	DateLabel string
	// ActiveHours is the estimated tracked time for the day
	ActiveHours float64
}

// Service is the summarization capability. Summarize is only valid when a
// preceding CheckAvailability returned AvailabilityAvailable; if the
// capability degrades mid-request the call fails and the caller should
// re-enter the unavailable state.
type Service interface {
	CheckAvailability(ctx context.Context) Availability
	Download(ctx context.Context, progress func(float64)) error
	Summarize(ctx context.Context, req Request) (activity.Summary, error)
}
