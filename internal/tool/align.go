// SPDX-License-Identifier: Apache-2.0

// Package tool exposes the transcript pipeline as MCP tools so editor
// assistants can validate and align annotated transcripts in place.
package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/storyforgehq/storyforge/internal/pipeline"
	"github.com/storyforgehq/storyforge/internal/transcript"
)

var segmentItemSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"start", "end", "text"},
	"properties": map[string]interface{}{
		"start": map[string]interface{}{"type": "number", "description": "Segment start in seconds"},
		"end":   map[string]interface{}{"type": "number", "description": "Segment end in seconds"},
		"text":  map[string]interface{}{"type": "string", "description": "Transcribed text of the segment"},
	},
}

// MetadataValidateTranscript describes the validate_transcript tool.
var MetadataValidateTranscript = &mcp.Tool{
	Name: "validate_transcript",
	Description: "Validate an annotated transcript's page structure without matching it against " +
		"time-coded segments. Pages are terminated by a '---' line and may open with a " +
		"'# Page N: Title' heading. Returns the parsed pages, or a format error naming the " +
		"offending page.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"transcript"},
		"properties": map[string]interface{}{
			"transcript": map[string]interface{}{
				"type":        "string",
				"description": "Raw annotated transcript text",
			},
		},
	},
}

// MetadataAlignTranscript describes the align_transcript tool.
var MetadataAlignTranscript = &mcp.Tool{
	Name: "align_transcript",
	Description: "Align an annotated transcript against the original time-coded segments and " +
		"return per-page timestamps with match confidences. Matching is strictly forward-only, " +
		"so repeated phrases resolve to their next unconsumed occurrence. Modes: strict " +
		"(exact normalized text), tolerant (similarity >= 0.85, default), fuzzy (>= 0.60). " +
		"On a failed match the error includes the best candidate's similarity and a word-level diff.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"transcript", "segments"},
		"properties": map[string]interface{}{
			"transcript": map[string]interface{}{
				"type":        "string",
				"description": "Raw annotated transcript text",
			},
			"segments": map[string]interface{}{
				"type":        "array",
				"description": "Time-coded segments from the transcription source, ordered by time",
				"items":       segmentItemSchema,
			},
			"mode": map[string]interface{}{
				"type":        "string",
				"description": "Matching mode. Defaults to tolerant.",
				"enum":        []string{"strict", "tolerant", "fuzzy"},
			},
		},
	},
}

// InputValidateTranscript is the input for the ValidateTranscript tool.
type InputValidateTranscript struct {
	Transcript string `json:"transcript"`
}

// OutputValidateTranscript is the output for the ValidateTranscript tool.
type OutputValidateTranscript struct {
	Pages     []transcript.PageDefinition `json:"pages"`
	PageCount int                         `json:"page_count"`
}

// InputAlignTranscript is the input for the AlignTranscript tool.
type InputAlignTranscript struct {
	Transcript string                   `json:"transcript"`
	Segments   []transcript.TimeSegment `json:"segments"`
	Mode       string                   `json:"mode"`
}

// AlignedPage is one page of the AlignTranscript output.
type AlignedPage struct {
	PageNumber int     `json:"page_number"`
	Title      string  `json:"title"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Duration   float64 `json:"duration"`
	Confidence float64 `json:"confidence"`
}

// OutputAlignTranscript is the output for the AlignTranscript tool.
type OutputAlignTranscript struct {
	Pages    []AlignedPage `json:"pages"`
	Warnings []string      `json:"warnings,omitempty"`
}

// ValidateTranscript parses the annotated transcript and reports its
// page structure.
func ValidateTranscript(_ context.Context, _ *mcp.CallToolRequest, input InputValidateTranscript) (*mcp.CallToolResult, OutputValidateTranscript, error) {
	if input.Transcript == "" {
		return nil, OutputValidateTranscript{}, fmt.Errorf("transcript is required")
	}
	pages, err := transcript.ParsePages(input.Transcript)
	if err != nil {
		return nil, OutputValidateTranscript{}, err
	}
	return nil, OutputValidateTranscript{Pages: pages, PageCount: len(pages)}, nil
}

// AlignTranscript runs the full parse/match/derive pipeline over the
// supplied segments.
func AlignTranscript(_ context.Context, _ *mcp.CallToolRequest, input InputAlignTranscript) (*mcp.CallToolResult, OutputAlignTranscript, error) {
	if input.Transcript == "" {
		return nil, OutputAlignTranscript{}, fmt.Errorf("transcript is required")
	}
	if len(input.Segments) == 0 {
		return nil, OutputAlignTranscript{}, fmt.Errorf("segments are required")
	}
	mode, err := transcript.ParseMode(input.Mode)
	if err != nil {
		return nil, OutputAlignTranscript{}, err
	}

	run, err := pipeline.New(mode, nil).RunWithMeta(input.Transcript, input.Segments)
	if err != nil {
		return nil, OutputAlignTranscript{}, err
	}

	out := OutputAlignTranscript{Warnings: run.Warnings}
	for i, g := range run.Groups {
		out.Pages = append(out.Pages, AlignedPage{
			PageNumber: g.PageNumber,
			Title:      run.Pages[i].Title,
			Start:      run.Timestamps[i].Start,
			End:        run.Timestamps[i].End,
			Duration:   run.Timestamps[i].Duration,
			Confidence: g.Confidence,
		})
	}
	return nil, out, nil
}
