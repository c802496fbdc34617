package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45m", FormatDuration(45*time.Minute))
	assert.Equal(t, "1h 30m", FormatDuration(90*time.Minute))
	assert.Equal(t, "2h 0m", FormatDuration(2*time.Hour))
	assert.Equal(t, "0m", FormatDuration(0))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "0.2", FormatHours(0.25))
	assert.Equal(t, "1.5", FormatHours(1.5))
	assert.Equal(t, "8.0", FormatHours(8))
}

func TestFormatClock(t *testing.T) {
	at := time.Date(2024, 1, 15, 9, 7, 42, 0, time.UTC)
	assert.Equal(t, "09:07:42", FormatClock(at))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "0%", FormatPercent(0))
	assert.Equal(t, "47%", FormatPercent(0.466667))
	assert.Equal(t, "100%", FormatPercent(1))
	assert.Equal(t, "0%", FormatPercent(-0.5))
	assert.Equal(t, "100%", FormatPercent(1.5))
}
