// SPDX-License-Identifier: Apache-2.0

package transcript

import (
	"fmt"
	"strings"
)

// Pages shorter than MinPageSeconds or longer than MaxPageSeconds are
// flagged in reports; neither is fatal.
const (
	MinPageSeconds = 5.0
	MaxPageSeconds = 120.0
)

// DurationWarnings lists human-readable warnings for suspiciously short
// or long pages, in page order.
func DurationWarnings(stamps []PageTimestamp) []string {
	var warnings []string
	for _, s := range stamps {
		switch {
		case s.Duration < MinPageSeconds:
			warnings = append(warnings, fmt.Sprintf("page %d is very short (%.1fs)", s.PageNumber, s.Duration))
		case s.Duration > MaxPageSeconds:
			warnings = append(warnings, fmt.Sprintf("page %d is very long (%.1fs)", s.PageNumber, s.Duration))
		}
	}
	return warnings
}

// RenderReport formats the alignment outcome as a plain-text report for
// the command-line surface: page count, per-page timing and confidence,
// and duration warnings.
func RenderReport(pages []PageDefinition, groups []MatchedGroup, stamps []PageTimestamp) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Transcript alignment: %d pages\n\n", len(pages))

	byNumber := make(map[int]PageDefinition, len(pages))
	for _, p := range pages {
		byNumber[p.PageNumber] = p
	}

	for i, g := range groups {
		title := byNumber[g.PageNumber].Title
		fmt.Fprintf(&b, "page %d  %-24s segments=%d  confidence=%.2f", g.PageNumber, title, len(g.Segments), g.Confidence)
		if i < len(stamps) {
			s := stamps[i]
			fmt.Fprintf(&b, "  %s-%s (%.1fs)", formatSeconds(s.Start), formatSeconds(s.End), s.Duration)
		}
		b.WriteString("\n")
	}

	if warnings := DurationWarnings(stamps); len(warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}
	return b.String()
}

func formatSeconds(sec float64) string {
	total := int(sec)
	h := total / 3600
	m := total / 60 % 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
