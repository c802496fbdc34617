package summary

import (
	"fmt"
	"strings"
)

// Style selects the prompt shape sent to the model
type Style string

const (
	// StyleSummary is the summary-tuned prompt with separate context
	StyleSummary Style = "summary"
	// StylePlain is the fallback single-prompt shape
	StylePlain Style = "plain"
)

// BuildSummaryPrompt builds the summary-style request: the activity list
// preceded by an analysis context.
func BuildSummaryPrompt(req Request) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `These are chronologically ordered activities completed during %s. Total tracked time: approximately %.1f hours.

Please analyze:
1. How the day was spent (time distribution)
2. Main focus areas or themes
3. Productive vs non-productive time
4. Any patterns worth noting

`, req.DateLabel, req.ActiveHours)

	sb.WriteString(strings.Join(req.Lines, "\n"))
	return sb.String()
}

// BuildPlainPrompt builds the fallback request used when the summary-tuned
// transport is absent.
func BuildPlainPrompt(req Request) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `Analyze these chronologically ordered activities for %s. Total tracked time: approximately %.1f hours.

%s

Please provide a detailed summary that includes:
1. How the day was spent (time distribution)
2. Main focus areas or themes
3. Productive vs non-productive time
4. Any patterns worth noting
5. Total active hours: %.1f

Format your response with markdown headings and bullet points.`,
		req.DateLabel, req.ActiveHours, strings.Join(req.Lines, "\n"), req.ActiveHours)

	return sb.String()
}
