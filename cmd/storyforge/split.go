// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/storyforgehq/storyforge/internal/media"
	"github.com/storyforgehq/storyforge/internal/transcript"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Cut one audio clip per page from the aligned timestamps",
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
		if m.AudioPath == "" {
			return fmt.Errorf("story manifest: audio path is required for split")
		}

		stamps, err := loadTimestamps(filepath.Join(m.OutputDir, "timestamps.json"))
		if err != nil {
			return err
		}

		clipDir := filepath.Join(m.OutputDir, "clips")
		clips, err := media.SplitClips(cmd.Context(), m.AudioPath, clipDir, stamps)
		if err != nil {
			return err
		}
		log.Info("wrote clips", "dir", clipDir, "count", len(clips))
		return nil
	},
}

func loadTimestamps(path string) ([]transcript.PageTimestamp, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading timestamps (run 'storyforge align' first?): %w", err)
	}
	var stamps []transcript.PageTimestamp
	if err := json.Unmarshal(data, &stamps); err != nil {
		return nil, fmt.Errorf("parsing timestamps: %w", err)
	}
	if len(stamps) == 0 {
		return nil, fmt.Errorf("timestamps file %s is empty", path)
	}
	return stamps, nil
}
