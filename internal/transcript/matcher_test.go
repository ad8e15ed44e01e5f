// SPDX-License-Identifier: Apache-2.0

package transcript_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyforgehq/storyforge/internal/transcript"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    transcript.MatchMode
		wantErr bool
	}{
		{in: "", want: transcript.ModeTolerant},
		{in: "strict", want: transcript.ModeStrict},
		{in: "Tolerant", want: transcript.ModeTolerant},
		{in: " FUZZY ", want: transcript.ModeFuzzy},
		{in: "sloppy", wantErr: true},
	}
	for _, tt := range tests {
		mode, err := transcript.ParseMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, mode)
	}
}

func TestMatchModeThresholds(t *testing.T) {
	assert.Equal(t, 1.0, transcript.ModeStrict.Threshold())
	assert.Equal(t, 0.85, transcript.ModeTolerant.Threshold())
	assert.Equal(t, 0.60, transcript.ModeFuzzy.Threshold())
}

// Repetition drill: the same phrase spoken three times must map to
// three distinct segments in chronological order, never reusing an
// earlier occurrence.
func TestMatcher_RepeatedPhrases(t *testing.T) {
	segments := []transcript.TimeSegment{
		{Start: 0, End: 2.5, Text: "Bonjour"},
		{Start: 2.5, End: 5.0, Text: "Bonjour"},
		{Start: 5.0, End: 7.5, Text: "Bonjour"},
		{Start: 7.5, End: 10.0, Text: "Au revoir"},
	}
	pages := []string{"Bonjour", "Bonjour", "Bonjour", "Au revoir"}

	m := transcript.NewMatcher(segments, transcript.ModeStrict)
	var groups []transcript.MatchedGroup
	for i, text := range pages {
		group, err := m.MatchPage(i+1, text)
		require.NoError(t, err, "page %d", i+1)
		groups = append(groups, group)
	}

	require.Len(t, groups, 4)
	for i, g := range groups {
		require.Len(t, g.Segments, 1, "page %d should consume exactly one segment", i+1)
		assert.Equal(t, segments[i], g.Segments[0], "page %d must take segment %d", i+1, i)
		assert.Equal(t, 1.0, g.Confidence)
	}
	assert.Zero(t, m.Remaining())
}

func TestMatcher_WindowSpansSegments(t *testing.T) {
	segments := []transcript.TimeSegment{
		{Start: 0, End: 5, Text: "First part"},
		{Start: 5, End: 10, Text: "Second part"},
	}

	m := transcript.NewMatcher(segments, transcript.ModeStrict)
	group, err := m.MatchPage(1, "First part Second part")
	require.NoError(t, err)

	require.Len(t, group.Segments, 2)
	assert.Equal(t, 1.0, group.Confidence)
	assert.Zero(t, m.Remaining())
}

// Smaller windows must win: a page equal to one segment's text should
// never swallow the identical segment that follows it.
func TestMatcher_PrefersMinimalWindow(t *testing.T) {
	segments := []transcript.TimeSegment{
		{Start: 0, End: 2, Text: "encore une fois"},
		{Start: 2, End: 4, Text: "encore une fois"},
	}

	m := transcript.NewMatcher(segments, transcript.ModeTolerant)
	group, err := m.MatchPage(1, "encore une fois")
	require.NoError(t, err)
	require.Len(t, group.Segments, 1)
	assert.Equal(t, 0.0, group.Segments[0].Start)
	assert.Equal(t, 1, m.Remaining())
}

func TestMatcher_ToleranceModes(t *testing.T) {
	// Nine distinct tokens; the page drops one, sharing 8 of 9.
	segments := []transcript.TimeSegment{
		{Start: 0, End: 5, Text: "a quick brown fox jumps over my lazy dog"},
	}
	pageText := "a quick brown fox jumps over lazy dog"

	t.Run("tolerant accepts 0.89", func(t *testing.T) {
		m := transcript.NewMatcher(segments, transcript.ModeTolerant)
		group, err := m.MatchPage(1, pageText)
		require.NoError(t, err)
		assert.InDelta(t, 8.0/9.0, group.Confidence, 1e-9)
	})

	t.Run("strict rejects the same input", func(t *testing.T) {
		m := transcript.NewMatcher(segments, transcript.ModeStrict)
		_, err := m.MatchPage(1, pageText)
		require.Error(t, err)

		var matchErr *transcript.MatchError
		require.ErrorAs(t, err, &matchErr)
		assert.Equal(t, 1, matchErr.Page)
		assert.Equal(t, transcript.ModeStrict, matchErr.Mode)
		assert.InDelta(t, 8.0/9.0, matchErr.BestScore, 1e-9)
	})
}

func TestMatcher_BothModesReject(t *testing.T) {
	// 5 shared tokens over a union of 11: similarity ~0.45, below the
	// fuzzy floor of 0.60.
	segments := []transcript.TimeSegment{
		{Start: 0, End: 5, Text: "alpha beta gamma delta epsilon zeta eta theta iota kappa"},
	}
	pageText := "alpha beta gamma delta epsilon sigma"

	for _, mode := range []transcript.MatchMode{transcript.ModeTolerant, transcript.ModeFuzzy} {
		m := transcript.NewMatcher(segments, mode)
		_, err := m.MatchPage(1, pageText)
		require.Error(t, err, "mode %s", mode)

		var matchErr *transcript.MatchError
		require.ErrorAs(t, err, &matchErr)
		assert.Equal(t, mode, matchErr.Mode)
		assert.InDelta(t, 5.0/11.0, matchErr.BestScore, 1e-9)
	}
}

// Anything strict accepts, the looser modes accept with the same
// confidence.
func TestMatcher_MonotonicRelaxation(t *testing.T) {
	segments := []transcript.TimeSegment{
		{Start: 0, End: 3, Text: "La pluie tombe doucement"},
	}
	for _, mode := range []transcript.MatchMode{transcript.ModeStrict, transcript.ModeTolerant, transcript.ModeFuzzy} {
		m := transcript.NewMatcher(segments, mode)
		group, err := m.MatchPage(1, "la pluie  tombe doucement")
		require.NoError(t, err, "mode %s", mode)
		assert.Equal(t, 1.0, group.Confidence, "mode %s", mode)
	}
}

func TestMatcher_FailureDiagnostics(t *testing.T) {
	segments := []transcript.TimeSegment{
		{Start: 0, End: 4, Text: "le chat dort sur le tapis"},
	}
	m := transcript.NewMatcher(segments, transcript.ModeTolerant)
	_, err := m.MatchPage(3, "le chien aboie dans le jardin")
	require.Error(t, err)

	var matchErr *transcript.MatchError
	require.ErrorAs(t, err, &matchErr)
	assert.Equal(t, 3, matchErr.Page)
	assert.NotEmpty(t, matchErr.BestText)
	assert.Contains(t, matchErr.Diff, "-chat", "diff should mark removed tokens")
	assert.Contains(t, matchErr.Diff, "+chien", "diff should mark added tokens")
	assert.Contains(t, err.Error(), "best similarity")
}

func TestMatcher_ExhaustedSegments(t *testing.T) {
	segments := []transcript.TimeSegment{
		{Start: 0, End: 2, Text: "Bonjour"},
	}
	m := transcript.NewMatcher(segments, transcript.ModeStrict)

	_, err := m.MatchPage(1, "Bonjour")
	require.NoError(t, err)

	_, err = m.MatchPage(2, "Au revoir")
	require.Error(t, err)

	var matchErr *transcript.MatchError
	require.ErrorAs(t, err, &matchErr)
	assert.Equal(t, 2, matchErr.Page)
	assert.Equal(t, 0.0, matchErr.BestScore)
}

// The forward-only invariant across a whole run: group k's segments all
// start at or after the end of group k-1's last segment, and no segment
// appears twice.
func TestMatcher_ForwardOnlyInvariant(t *testing.T) {
	segments := []transcript.TimeSegment{
		{Start: 0, End: 1.5, Text: "un"},
		{Start: 1.5, End: 3.2, Text: "deux"},
		{Start: 3.2, End: 4.8, Text: "trois quatre"},
		{Start: 4.8, End: 6.0, Text: "cinq"},
		{Start: 6.0, End: 7.1, Text: "un"},
	}
	pages := []string{"un", "deux", "trois quatre cinq", "un"}

	m := transcript.NewMatcher(segments, transcript.ModeTolerant)
	prevEnd := -1.0
	seen := map[float64]bool{}
	for i, text := range pages {
		group, err := m.MatchPage(i+1, text)
		require.NoError(t, err, "page %d", i+1)
		for _, s := range group.Segments {
			assert.GreaterOrEqual(t, s.Start, prevEnd, "segment must not precede an earlier group")
			assert.False(t, seen[s.Start], "segment at %v assigned twice", s.Start)
			seen[s.Start] = true
		}
		prevEnd = group.Segments[len(group.Segments)-1].End
	}
}

func TestMatcher_SetThreshold(t *testing.T) {
	segments := []transcript.TimeSegment{
		{Start: 0, End: 5, Text: "alpha beta gamma delta epsilon zeta eta theta iota kappa"},
	}
	pageText := "alpha beta gamma delta epsilon sigma" // similarity ~0.45

	m := transcript.NewMatcher(segments, transcript.ModeFuzzy)
	m.SetThreshold(0.40)
	group, err := m.MatchPage(1, pageText)
	require.NoError(t, err)
	assert.InDelta(t, 5.0/11.0, group.Confidence, 1e-9)
}
