// SPDX-License-Identifier: Apache-2.0

package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyforgehq/storyforge/internal/pipeline"
	"github.com/storyforgehq/storyforge/internal/transcript"
)

var drillSegments = []transcript.TimeSegment{
	{Start: 0, End: 2.5, Text: "Bonjour"},
	{Start: 2.5, End: 5.0, Text: "Bonjour"},
	{Start: 5.0, End: 7.5, Text: "Bonjour"},
	{Start: 7.5, End: 10.0, Text: "Au revoir"},
}

const drillTranscript = `# Page 1: Drill one
Bonjour
---
# Page 2: Drill two
Bonjour
---
# Page 3: Drill three
Bonjour
---
# Page 4: Farewell
Au revoir
---
`

func TestPipeline_RepetitionDrillEndToEnd(t *testing.T) {
	p := pipeline.New(transcript.ModeStrict, nil)
	run, err := p.RunWithMeta(drillTranscript, drillSegments)
	require.NoError(t, err)

	require.Len(t, run.Pages, 4)
	require.Len(t, run.Groups, 4)
	require.Len(t, run.Timestamps, 4)

	for i, g := range run.Groups {
		require.Len(t, g.Segments, 1)
		assert.Equal(t, drillSegments[i], g.Segments[0], "page %d must consume segment %d", i+1, i)
		assert.Equal(t, 1.0, g.Confidence)
	}

	assert.Equal(t, 0.0, run.Timestamps[0].Start)
	assert.Equal(t, 2.5, run.Timestamps[0].End)
	assert.Equal(t, 7.5, run.Timestamps[3].Start)
	assert.Equal(t, 10.0, run.Timestamps[3].End)

	// Every drill page is under 5s, so each gets a warning.
	assert.Len(t, run.Warnings, 4)
}

func TestPipeline_Run(t *testing.T) {
	segments := []transcript.TimeSegment{
		{Start: 0, End: 5, Text: "First part"},
		{Start: 5, End: 10, Text: "Second part"},
	}
	stamps, err := pipeline.New(transcript.ModeStrict, nil).Run("First part Second part\n---\n", segments)
	require.NoError(t, err)
	require.Len(t, stamps, 1)
	assert.Equal(t, transcript.PageTimestamp{PageNumber: 1, Start: 0, End: 10, Duration: 10}, stamps[0])
}

func TestPipeline_FormatErrorPropagates(t *testing.T) {
	_, err := pipeline.New(transcript.ModeTolerant, nil).Run("no page breaks here", drillSegments)
	require.Error(t, err)

	var formatErr *transcript.FormatError
	assert.ErrorAs(t, err, &formatErr)
}

// Fail-fast: a mismatch on page 1 surfaces as a MatchError and nothing
// after it is attempted.
func TestPipeline_MatchErrorPropagates(t *testing.T) {
	raw := "completely different words entirely\n---\nBonjour\n---\n"
	_, err := pipeline.New(transcript.ModeTolerant, nil).Run(raw, drillSegments)
	require.Error(t, err)

	var matchErr *transcript.MatchError
	require.ErrorAs(t, err, &matchErr)
	assert.Equal(t, 1, matchErr.Page)
}
