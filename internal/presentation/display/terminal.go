package display

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/quarterlog/quarterlog/internal/core/activity"
	"github.com/quarterlog/quarterlog/internal/core/timeline"
	"github.com/quarterlog/quarterlog/internal/summary"
	"github.com/quarterlog/quarterlog/internal/util"
)

// DisplayConfig carries the presentation settings
type DisplayConfig struct {
	TimeFormat string // "12h" or "24h"
}

// ViewState is everything the renderer needs beyond the day view itself
type ViewState struct {
	DateLabel string
	IsToday   bool
	UserName  string
	Greeting  string
	Clock     string

	Cursor        int
	Editing       bool
	EditingSlot   string
	EditingIsNew  bool
	Input         string
	EditingName   bool
	NameInput     string
	ExpandedGroup string

	AIStatus         summary.Availability
	DownloadProgress float64 // -1 when no download is running
	SummaryPending   bool
	SummaryText      string
	SummaryIsAI      bool

	AutoRefresh bool
	ShowHelp    bool
	Confirm     string
	Message     string
}

// TerminalDisplay renders the slot timeline on the alternate screen buffer
type TerminalDisplay struct {
	config            *DisplayConfig
	inAlternateScreen bool
	previousScreen    []string
	isFirstRender     bool
}

// NewTerminalDisplay creates a renderer
func NewTerminalDisplay(config *DisplayConfig) *TerminalDisplay {
	return &TerminalDisplay{
		config:        config,
		isFirstRender: true,
	}
}

// EnterAlternateScreen switches to the alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	if !td.inAlternateScreen {
		fmt.Print(util.EnterAltScreen)
		fmt.Print(util.ClearScreen)
		fmt.Print(util.ClearScrollback)
		fmt.Print(util.MoveCursorHome)
		fmt.Print(util.HideCursor)
		td.inAlternateScreen = true
		td.isFirstRender = true
	}
}

// ExitAlternateScreen returns to the normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	if td.inAlternateScreen {
		fmt.Print(util.ClearScreen)
		fmt.Print(util.MoveCursorHome)
		fmt.Print(util.ShowCursor)
		fmt.Print(util.ExitAltScreen)
		td.inAlternateScreen = false
	}
}

// Render draws a frame, rewriting only lines that changed since the last one
func (td *TerminalDisplay) Render(view timeline.DayView, state ViewState) {
	width, height := td.terminalSize()
	lines := td.buildFrame(view, state, width, height)

	if td.isFirstRender || len(lines) != len(td.previousScreen) {
		fmt.Print(util.ClearScreen)
		fmt.Print(util.MoveCursorHome)
		for i, line := range lines {
			fmt.Printf("\033[%d;1H%s%s", i+1, util.ClearLine, line)
		}
		td.isFirstRender = false
	} else {
		for i, line := range lines {
			if line != td.previousScreen[i] {
				fmt.Printf("\033[%d;1H%s%s", i+1, util.ClearLine, line)
			}
		}
	}

	td.previousScreen = lines
}

func (td *TerminalDisplay) terminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 40 {
		width, height = 100, 40
	}
	return width, height
}

// buildFrame assembles the full frame as one line per terminal row
func (td *TerminalDisplay) buildFrame(view timeline.DayView, state ViewState, width, height int) []string {
	var lines []string

	lines = append(lines, td.headerLines(state, width)...)

	if state.Confirm != "" {
		lines = append(lines, "", util.ColorYellow+"  "+state.Confirm+" (y/N)"+util.ColorReset, "")
	}

	if state.ShowHelp {
		lines = append(lines, td.helpLines()...)
		return lines
	}

	// Keep the cursor row visible: show a slot window that fits the screen
	reserved := len(lines) + td.footerHeight(state, width) + 1
	visible := height - reserved
	if visible < 4 {
		visible = 4
	}
	start, end := slotWindow(len(view.Slots), state.Cursor, visible)

	for i := start; i < end; i++ {
		sv := view.Slots[i]
		if sv.Slot.IsFirstOfHour {
			lines = append(lines, td.hourMarker(sv, width))
		}
		lines = append(lines, td.slotLine(sv, i, state, width))
	}

	lines = append(lines, td.footerLines(view, state, width)...)
	return lines
}

func (td *TerminalDisplay) headerLines(state ViewState, width int) []string {
	name := state.UserName
	if state.EditingName {
		name = state.NameInput + "▏"
	}
	left := fmt.Sprintf("  %s%s%s", util.ColorBold, state.DateLabel, util.ColorReset)
	right := fmt.Sprintf("%s, %s  %s", state.Greeting, name, state.Clock)

	gap := width - util.GetDisplayWidth(stripANSI(left)) - util.GetDisplayWidth(right) - 2
	if gap < 1 {
		gap = 1
	}

	status := td.statusLine(state)
	return []string{
		left + strings.Repeat(" ", gap) + right,
		status,
		"",
	}
}

func (td *TerminalDisplay) statusLine(state ViewState) string {
	var parts []string

	switch state.AIStatus {
	case summary.AvailabilityAvailable:
		parts = append(parts, util.ColorGreen+"AI ready"+util.ColorReset)
	case summary.AvailabilityChecking:
		parts = append(parts, util.ColorYellow+"AI checking…"+util.ColorReset)
	case summary.AvailabilityDownloading:
		pct := util.FormatPercent(state.DownloadProgress)
		parts = append(parts, util.ColorYellow+"AI downloading "+pct+util.ColorReset)
	case summary.AvailabilityDownloadable:
		parts = append(parts, util.ColorYellow+"AI model not pulled"+util.ColorReset)
	default:
		parts = append(parts, util.ColorGray+"AI unavailable"+util.ColorReset)
	}

	if state.SummaryPending {
		parts = append(parts, util.ColorCyan+"summarizing…"+util.ColorReset)
	}

	auto := "auto-refresh off"
	if state.AutoRefresh {
		auto = "auto-refresh on"
	}
	parts = append(parts, util.ColorGray+auto+util.ColorReset)

	if state.Message != "" {
		parts = append(parts, state.Message)
	}

	return "  " + strings.Join(parts, "   ")
}

func (td *TerminalDisplay) hourMarker(sv timeline.SlotView, width int) string {
	label := fmt.Sprintf("%02d:00", sv.Slot.Hour)
	if td.config.TimeFormat == "12h" {
		label = fmt.Sprintf("%s %s", sv.Slot.Hour12, sv.Slot.AMPM)
	}

	rule := width - util.GetDisplayWidth(label) - 6
	if rule < 0 {
		rule = 0
	}
	return fmt.Sprintf("  %s%s %s%s", util.ColorGray, label, strings.Repeat("─", rule), util.ColorReset)
}

func (td *TerminalDisplay) slotLine(sv timeline.SlotView, index int, state ViewState, width int) string {
	cursor := "  "
	if index == state.Cursor {
		cursor = util.ColorBold + "▸ " + util.ColorReset
	}

	key := sv.Slot.FullTime
	prefix := fmt.Sprintf("%s%s%s%s │ ", cursor, util.ColorGray, key, util.ColorReset)
	body := td.slotBody(sv, state, width-14)

	line := prefix + body

	if sv.IsCurrent {
		bar := util.CreateProgressBar(sv.Progress, 10)
		line += fmt.Sprintf("  %s%s %s %s%s", util.ColorCyan, bar, util.FormatPercent(sv.Progress), state.Clock, util.ColorReset)
	}

	return line
}

func (td *TerminalDisplay) slotBody(sv timeline.SlotView, state ViewState, maxWidth int) string {
	key := sv.Slot.FullTime

	if state.Editing && state.EditingSlot == key {
		counter := fmt.Sprintf(" %s%d/%d%s", util.ColorGray, len([]rune(state.Input)), activity.MaxDescriptionChars, util.ColorReset)
		return state.Input + "▏" + counter
	}

	expanded := sv.Group != nil && sv.Group.GroupID == state.ExpandedGroup

	switch sv.Mode {
	case timeline.ModeEmpty:
		return util.ColorGray + "+ add" + util.ColorReset

	case timeline.ModeGroupHead:
		if expanded {
			return util.TruncateDisplay(sv.Activities[0].Description, maxWidth)
		}
		text := fmt.Sprintf("%s  %s×%d%s", sv.Group.Description, util.ColorGray, sv.Group.Size, util.ColorReset)
		return util.TruncateDisplay(text, maxWidth+len(util.ColorGray)+len(util.ColorReset))

	case timeline.ModeGroupTail:
		if expanded {
			return util.TruncateDisplay(sv.Activities[0].Description, maxWidth)
		}
		return util.ColorGray + "┆" + util.ColorReset

	case timeline.ModeMulti:
		descs := make([]string, len(sv.Activities))
		for i, act := range sv.Activities {
			descs[i] = act.Description
		}
		return util.TruncateDisplay(strings.Join(descs, " · "), maxWidth)

	default:
		return util.TruncateDisplay(sv.Activities[0].Description, maxWidth)
	}
}

func (td *TerminalDisplay) footerHeight(state ViewState, width int) int {
	if state.SummaryText == "" {
		return 2
	}
	return 4 + len(wrapText(state.SummaryText, width-6))
}

func (td *TerminalDisplay) footerLines(view timeline.DayView, state ViewState, width int) []string {
	lines := []string{""}

	if state.SummaryText != "" {
		tag := ""
		if state.SummaryIsAI {
			tag = util.ColorMagenta + " ✦" + util.ColorReset
		}
		lines = append(lines, "  "+util.ColorBold+"Day summary"+util.ColorReset+tag)
		for _, l := range wrapText(state.SummaryText, width-6) {
			lines = append(lines, "    "+l)
		}
		lines = append(lines, "")
	}

	keys := "a add · enter edit · d delete · g summary · ←/→ day · t today · r auto · u name · h help · q quit"
	lines = append(lines, "  "+util.ColorGray+keys+util.ColorReset)
	return lines
}

func (td *TerminalDisplay) helpLines() []string {
	return []string{
		"  " + util.ColorBold + "Keys" + util.ColorReset,
		"",
		"    ↑/↓, k/j     move between slots",
		"    enter        edit the slot's activity (or add when empty)",
		"    a            add another activity to the slot",
		"    d            delete the slot's activity (asks to confirm)",
		"    g            generate the day summary",
		"    ←/→, [/]     previous / next day",
		"    t            jump to today",
		"    r            toggle summary auto-refresh",
		"    u            edit your name",
		"    p            pause screen updates",
		"    h            close this help",
		"    q, ctrl+c    quit",
		"",
		"  While editing: enter saves, esc cancels, moving away saves non-empty text.",
	}
}

// slotWindow picks the visible slot range so the cursor stays on screen
func slotWindow(total, cursor, visible int) (int, int) {
	// Hour markers consume rows too; reserve roughly a fifth of them
	visible = visible * 4 / 5
	if visible < 1 {
		visible = 1
	}
	if total <= visible {
		return 0, total
	}

	start := cursor - visible/2
	if start < 0 {
		start = 0
	}
	if start+visible > total {
		start = total - visible
	}
	return start, start + visible
}

func wrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			if util.GetDisplayWidth(current)+1+util.GetDisplayWidth(word) > width {
				lines = append(lines, current)
				current = word
				continue
			}
			current += " " + word
		}
		lines = append(lines, current)
	}
	return lines
}

func stripANSI(s string) string {
	var sb strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\033':
			inEscape = true
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
