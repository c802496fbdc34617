package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDisplayWidth(t *testing.T) {
	assert.Equal(t, 5, GetDisplayWidth("hello"))
	assert.Equal(t, 0, GetDisplayWidth(""))
	// CJK runes occupy two columns
	assert.Equal(t, 4, GetDisplayWidth("会議"))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abcdef", PadRight("abcdef", 5))
	assert.Equal(t, "会議 ", PadRight("会議", 5))
}

func TestTruncateDisplay(t *testing.T) {
	assert.Equal(t, "short", TruncateDisplay("short", 10))
	got := TruncateDisplay("a very long description", 10)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, GetDisplayWidth(got), 10)
}

func TestCreateProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░", CreateProgressBar(0, 10))
	assert.Equal(t, "█████░░░░░", CreateProgressBar(0.5, 10))
	assert.Equal(t, "██████████", CreateProgressBar(1, 10))
	// Out-of-range fractions clamp
	assert.Equal(t, "░░░░░░░░░░", CreateProgressBar(-1, 10))
	assert.Equal(t, "██████████", CreateProgressBar(2, 10))
}
