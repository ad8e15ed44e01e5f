// SPDX-License-Identifier: Apache-2.0

// Package pipeline runs one story through parse, match and derive.
package pipeline

import (
	"fmt"

	"github.com/storyforgehq/storyforge/internal/pkg/logger"
	"github.com/storyforgehq/storyforge/internal/transcript"
)

// Pipeline aligns one annotated transcript against one segment list.
// Build a fresh Pipeline (and therefore a fresh matcher) per story run;
// matching is intentionally sequential because the forward-only cursor
// depends on page order.
type Pipeline struct {
	mode transcript.MatchMode
	log  *logger.Logger
}

func New(mode transcript.MatchMode, log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}
	return &Pipeline{mode: mode, log: log}
}

// RunResult is the output of a successful pipeline run.
type RunResult struct {
	Pages      []transcript.PageDefinition
	Groups     []transcript.MatchedGroup
	Timestamps []transcript.PageTimestamp
	Warnings   []string
}

// Run aligns the annotated transcript against the segment list and
// returns the per-page timestamps for the audio splitter.
func (p *Pipeline) Run(raw string, segments []transcript.TimeSegment) ([]transcript.PageTimestamp, error) {
	result, err := p.RunWithMeta(raw, segments)
	if err != nil {
		return nil, err
	}
	return result.Timestamps, nil
}

// RunWithMeta is Run plus the intermediate products a report needs.
// It fails fast on the first page that cannot be parsed or matched:
// matcher state is sequential, so page N+1 is meaningless until page N
// resolves.
func (p *Pipeline) RunWithMeta(raw string, segments []transcript.TimeSegment) (RunResult, error) {
	pages, err := transcript.ParsePages(raw)
	if err != nil {
		return RunResult{}, err
	}
	p.log.Debug("parsed transcript", "pages", len(pages), "segments", len(segments))

	matcher := transcript.NewMatcher(segments, p.mode)
	groups := make([]transcript.MatchedGroup, 0, len(pages))
	for _, page := range pages {
		group, err := matcher.MatchPage(page.PageNumber, page.Text)
		if err != nil {
			return RunResult{}, fmt.Errorf("matching %q: %w", page.Title, err)
		}
		p.log.Debug("matched page",
			"page", page.PageNumber,
			"segments", len(group.Segments),
			"confidence", group.Confidence,
		)
		groups = append(groups, group)
	}
	if rest := matcher.Remaining(); rest > 0 {
		p.log.Warn("segments left unconsumed after the last page", "count", rest)
	}

	stamps, err := transcript.DeriveTimestamps(groups)
	if err != nil {
		return RunResult{}, err
	}

	warnings := transcript.DurationWarnings(stamps)
	for _, w := range warnings {
		p.log.Warn(w)
	}

	return RunResult{Pages: pages, Groups: groups, Timestamps: stamps, Warnings: warnings}, nil
}
