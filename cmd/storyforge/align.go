// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/storyforgehq/storyforge/internal/pipeline"
	"github.com/storyforgehq/storyforge/internal/transcript"
)

var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Match transcript pages onto time-coded segments and derive per-page timestamps",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		m, err := loadStory()
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(m.TranscriptPath)
		if err != nil {
			return fmt.Errorf("reading transcript: %w", err)
		}
		segments, err := loadSegments(filepath.Join(m.OutputDir, "segments.json"))
		if err != nil {
			return err
		}

		run, err := pipeline.New(m.Mode(), log).RunWithMeta(string(raw), segments)
		if err != nil {
			var matchErr *transcript.MatchError
			if errors.As(err, &matchErr) && matchErr.Mode != transcript.ModeFuzzy {
				return fmt.Errorf("%w\nhint: try matchingMode: fuzzy, or edit page %d closer to the original",
					err, matchErr.Page)
			}
			return err
		}

		fmt.Print(transcript.RenderReport(run.Pages, run.Groups, run.Timestamps))

		out := filepath.Join(m.OutputDir, "timestamps.json")
		if err := writeJSON(out, run.Timestamps); err != nil {
			return err
		}
		log.Info("wrote timestamps", "path", out, "pages", len(run.Timestamps))
		return nil
	},
}
