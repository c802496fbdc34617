package activity

import (
	"time"
)

// MaxDescriptionChars is the input-time ceiling on activity text
const MaxDescriptionChars = 280

// Activity is one user-entered note bound to a 15-minute slot.
// TimeBlock is the authoritative field for timeline placement; Timestamp is
// used only for calendar-day membership and chronological sort. The two can
// disagree on hour; placement always follows TimeBlock.
type Activity struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Completed   bool      `json:"completed"` // retained for backward compatibility
	TimeBlock   string    `json:"timeBlock"`
}

// Summary is one generated day summary
type Summary struct {
	Text string `json:"text"`
	IsAI bool   `json:"isAI"`
}

// DailySummary caches a summary under its "YYYY-MM-DD" date key
type DailySummary struct {
	Date    string  `json:"date"`
	Summary Summary `json:"summary"`
}

// DateKey formats a date as the "YYYY-MM-DD" storage key
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SameDay reports whether two times fall on the same calendar day
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
