package tracker

import (
	"fmt"
	"time"

	"github.com/quarterlog/quarterlog/internal/core/slot"
	"github.com/quarterlog/quarterlog/internal/summary"
)

// Config holds all settings for the tracker application
type Config struct {
	DataDir    string
	StartHour  int
	TotalSlots int
	Timezone   string
	TimeFormat string // "12h" or "24h"

	// Summarization
	ModelHost      string
	Model          string
	SummaryStyle   summary.Style
	SummaryTimeout time.Duration

	// Timers
	ClockInterval       time.Duration
	AutoRefreshInterval time.Duration
}

// Validate checks configuration values
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}
	if c.StartHour < 0 || c.StartHour > 23 {
		return fmt.Errorf("start hour must be 0-23, got %d", c.StartHour)
	}
	if c.TotalSlots <= 0 || c.TotalSlots%slot.SlotsPerHour != 0 || c.TotalSlots > slot.MaxSlots {
		return fmt.Errorf("total slots must be a positive multiple of %d up to %d, got %d",
			slot.SlotsPerHour, slot.MaxSlots, c.TotalSlots)
	}
	if c.TimeFormat != "12h" && c.TimeFormat != "24h" {
		return fmt.Errorf("invalid time format %q: must be either '12h' or '24h'", c.TimeFormat)
	}
	if c.SummaryStyle != summary.StyleSummary && c.SummaryStyle != summary.StylePlain {
		return fmt.Errorf("invalid summary style %q", c.SummaryStyle)
	}
	return nil
}

// ApplyDefaults fills unset timer and summarization settings
func (c *Config) ApplyDefaults() {
	if c.TotalSlots == 0 {
		c.TotalSlots = slot.MaxSlots
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "24h"
	}
	if c.ModelHost == "" {
		c.ModelHost = "http://127.0.0.1:11434"
	}
	if c.Model == "" {
		c.Model = "llama3.2"
	}
	if c.SummaryStyle == "" {
		c.SummaryStyle = summary.StyleSummary
	}
	if c.SummaryTimeout == 0 {
		c.SummaryTimeout = 120 * time.Second
	}
	if c.ClockInterval == 0 {
		c.ClockInterval = time.Second
	}
	if c.AutoRefreshInterval == 0 {
		c.AutoRefreshInterval = 10 * time.Minute
	}
}
