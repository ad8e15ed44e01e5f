// SPDX-License-Identifier: Apache-2.0

package transcript

import "strings"

// NormalizeForMatch canonicalizes text for comparison: lowercase, trim,
// and collapse every whitespace run (including newlines and NBSP) to a
// single space. The same function is applied to page text and to
// concatenated segment text so both sides of a comparison agree.
// Idempotent: normalizing normalized text is a no-op.
func NormalizeForMatch(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// NormalizeForDisplay cleans page text for presentation without
// touching alphabetic content: horizontal whitespace runs collapse to
// one space, lines are trimmed, and runs of blank lines collapse to a
// single blank line so paragraph structure survives.
func NormalizeForDisplay(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")

	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blank = true
			continue
		}
		if blank && len(out) > 0 {
			out = append(out, "")
		}
		blank = false
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// Tokens splits normalized text into its whitespace-delimited tokens.
func Tokens(s string) []string {
	return strings.Fields(NormalizeForMatch(s))
}
