// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/storyforgehq/storyforge/internal/packaging"
	"github.com/storyforgehq/storyforge/internal/pipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Assemble and validate the content-package manifest",
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
			return err
		}

		clips, err := listClips(filepath.Join(m.OutputDir, "clips"))
		if err != nil {
			return err
		}
		if len(clips) > 0 && len(clips) != len(run.Pages) {
			return fmt.Errorf("found %d clips for %d pages; re-run 'storyforge split'", len(clips), len(run.Pages))
		}

		pkg, err := packaging.Build(m, run, clips)
		if err != nil {
			return err
		}

		out := filepath.Join(m.OutputDir, "package.json")
		if err := packaging.Write(pkg, out); err != nil {
			return err
		}
		log.Info("wrote package", "path", out, "pages", len(pkg.Pages))
		return nil
	},
}

// listClips returns the page clips in page order, or nil when the clip
// directory does not exist yet.
func listClips(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var clips []string
	for _, e := range entries {
		if !e.IsDir() {
			clips = append(clips, filepath.Join(dir, e.Name()))
		}
	}
	// page_2 sorts before page_10 with a length-first comparison
	sort.Slice(clips, func(i, j int) bool {
		a, b := filepath.Base(clips[i]), filepath.Base(clips[j])
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})
	return clips, nil
}
