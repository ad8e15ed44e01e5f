// SPDX-License-Identifier: Apache-2.0

package transcript

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// MatchMode names a matching tolerance preset.
type MatchMode string

const (
	// ModeStrict accepts only byte-equal normalized text.
	ModeStrict MatchMode = "strict"
	// ModeTolerant accepts token similarity >= 0.85. Default.
	ModeTolerant MatchMode = "tolerant"
	// ModeFuzzy accepts token similarity >= 0.60.
	ModeFuzzy MatchMode = "fuzzy"
)

// ParseMode validates a user-supplied mode name. Empty selects the
// default, tolerant.
func ParseMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return ModeTolerant, nil
	case ModeStrict:
		return ModeStrict, nil
	case ModeTolerant:
		return ModeTolerant, nil
	case ModeFuzzy:
		return ModeFuzzy, nil
	}
	return "", fmt.Errorf("unknown matching mode %q (want strict, tolerant or fuzzy)", s)
}

// Threshold returns the similarity floor the mode enforces.
func (m MatchMode) Threshold() float64 {
	switch m {
	case ModeStrict:
		return 1.0
	case ModeFuzzy:
		return 0.60
	default:
		return 0.85
	}
}

// windowSlack lets very short pages still admit multi-segment windows
// when the length bound (2x page text) would otherwise cut off at one.
const windowSlack = 16

// Matcher assigns pages to forward windows of the original time-coded
// segments. The cursor only ever moves forward, so a page that repeats
// text already consumed by an earlier page (repetition drills) can only
// match occurrences at or after the cursor.
//
// A Matcher is single-use state for one story run: build one per
// ordered sequence of MatchPage calls and never share or reuse it.
type Matcher struct {
	segments  []TimeSegment
	cursor    int
	mode      MatchMode
	threshold float64
}

// NewMatcher builds a matcher over the full, time-ordered segment list.
func NewMatcher(segments []TimeSegment, mode MatchMode) *Matcher {
	return &Matcher{segments: segments, mode: mode, threshold: mode.Threshold()}
}

// SetThreshold overrides the mode's preset similarity floor. Ignored in
// strict mode, where acceptance is equality.
func (m *Matcher) SetThreshold(t float64) {
	m.threshold = t
}

// Mode reports the configured matching mode.
func (m *Matcher) Mode() MatchMode { return m.mode }

// Remaining reports how many segments are still unconsumed.
func (m *Matcher) Remaining() int { return len(m.segments) - m.cursor }

// MatchPage finds the smallest window of unconsumed segments, starting
// at the cursor, whose concatenated text satisfies the mode for the
// given page text, then consumes it. Smaller windows win ties, which
// resolves repeated-phrase ambiguity in favor of the minimal span.
func (m *Matcher) MatchPage(pageNumber int, pageText string) (MatchedGroup, error) {
	want := NormalizeForMatch(pageText)
	maxCandidateLen := 2*len(want) + windowSlack

	bestScore := -1.0
	bestText := ""

	for end := m.cursor + 1; end <= len(m.segments); end++ {
		candidate := joinSegmentText(m.segments[m.cursor:end])

		score := JaccardSimilarity(candidate, want)
		if score > bestScore {
			bestScore, bestText = score, candidate
		}

		switch {
		case m.mode == ModeStrict && candidate == want:
			return m.accept(pageNumber, end, 1.0), nil
		case m.mode != ModeStrict && score >= m.threshold:
			return m.accept(pageNumber, end, score), nil
		}

		if len(candidate) > maxCandidateLen {
			break
		}
	}

	if bestScore < 0 {
		bestScore = 0
	}
	return MatchedGroup{}, &MatchError{
		Page:      pageNumber,
		Mode:      m.mode,
		BestScore: bestScore,
		BestText:  bestText,
		Diff:      tokenDiff(bestText, want),
	}
}

func (m *Matcher) accept(pageNumber, end int, confidence float64) MatchedGroup {
	window := m.segments[m.cursor:end]
	m.cursor = end
	return MatchedGroup{PageNumber: pageNumber, Segments: window, Confidence: confidence}
}

func joinSegmentText(segments []TimeSegment) string {
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = s.Text
	}
	return NormalizeForMatch(strings.Join(parts, " "))
}

// tokenDiff renders a word-level unified diff between the closest
// candidate window and the page text, one token per line, matching the
// tokenization the similarity metric uses.
func tokenDiff(candidate, page string) string {
	diff := difflib.UnifiedDiff{
		A:        tokenLines(candidate),
		B:        tokenLines(page),
		FromFile: "segments",
		ToFile:   "page",
		Context:  2,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}
	return strings.TrimRight(text, "\n")
}

func tokenLines(s string) []string {
	tokens := Tokens(s)
	lines := make([]string, len(tokens))
	for i, t := range tokens {
		lines[i] = t + "\n"
	}
	return lines
}
