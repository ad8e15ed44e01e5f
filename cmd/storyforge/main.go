// SPDX-License-Identifier: Apache-2.0

// storyforge turns editor-annotated video transcripts into packaged
// interactive learning content.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/storyforgehq/storyforge/internal/pkg/logger"
	"github.com/storyforgehq/storyforge/internal/story"
	"github.com/storyforgehq/storyforge/internal/transcribe"
	"github.com/storyforgehq/storyforge/internal/transcript"
)

var (
	storyPath string
	logMode   string
)

var rootCmd = &cobra.Command{
	Use:           "storyforge",
	Short:         "Align annotated transcripts with time-coded segments and package story content",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&storyPath, "story", "s", "story.yaml", "Path to the story manifest")
	rootCmd.PersistentFlags().StringVar(&logMode, "log-mode", "dev", "Logger mode: dev|prod")

	rootCmd.AddCommand(transcribeCmd, alignCmd, splitCmd, buildCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() (*logger.Logger, error) {
	return logger.New(logMode)
}

func loadStory() (*story.Manifest, error) {
	return story.Load(storyPath)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func loadSegments(path string) ([]transcript.TimeSegment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading segments (run 'storyforge transcribe' first?): %w", err)
	}
	var t transcribe.Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing segments: %w", err)
	}
	if len(t.Segments) == 0 {
		return nil, fmt.Errorf("segments file %s is empty", path)
	}
	return t.Segments, nil
}
