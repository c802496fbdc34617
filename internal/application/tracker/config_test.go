package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quarterlog/quarterlog/internal/summary"
)

func validConfig() *Config {
	c := &Config{DataDir: "/tmp/quarterlog-test"}
	c.ApplyDefaults()
	return c
}

func TestConfigApplyDefaults(t *testing.T) {
	c := &Config{DataDir: "/tmp/quarterlog-test"}
	c.ApplyDefaults()

	assert.Equal(t, 96, c.TotalSlots)
	assert.Equal(t, "24h", c.TimeFormat)
	assert.Equal(t, "http://127.0.0.1:11434", c.ModelHost)
	assert.Equal(t, "llama3.2", c.Model)
	assert.Equal(t, summary.StyleSummary, c.SummaryStyle)
	assert.Equal(t, 120*time.Second, c.SummaryTimeout)
	assert.Equal(t, time.Second, c.ClockInterval)
	assert.Equal(t, 10*time.Minute, c.AutoRefreshInterval)
}

func TestConfigApplyDefaultsKeepsExplicitValues(t *testing.T) {
	c := &Config{
		DataDir:    "/tmp/quarterlog-test",
		TotalSlots: 32,
		TimeFormat: "12h",
		Model:      "mistral",
	}
	c.ApplyDefaults()

	assert.Equal(t, 32, c.TotalSlots)
	assert.Equal(t, "12h", c.TimeFormat)
	assert.Equal(t, "mistral", c.Model)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing data dir", func(c *Config) { c.DataDir = "" }},
		{"negative start hour", func(c *Config) { c.StartHour = -1 }},
		{"start hour too large", func(c *Config) { c.StartHour = 24 }},
		{"zero slots", func(c *Config) { c.TotalSlots = 0 }},
		{"uneven slots", func(c *Config) { c.TotalSlots = 30 }},
		{"too many slots", func(c *Config) { c.TotalSlots = 100 }},
		{"bad time format", func(c *Config) { c.TimeFormat = "25h" }},
		{"bad summary style", func(c *Config) { c.SummaryStyle = "haiku" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
