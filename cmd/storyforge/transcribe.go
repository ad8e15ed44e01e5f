// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/storyforgehq/storyforge/internal/media"
	"github.com/storyforgehq/storyforge/internal/story"
	"github.com/storyforgehq/storyforge/internal/transcribe"
)

var extractAudio bool

var transcribeCmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe the story's audio into time-coded segments (cached)",
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
			return fmt.Errorf("story manifest: audio path is required for transcribe")
		}

		audioPath := m.AudioPath
		if extractAudio {
			log.Info("extracting audio", "input", m.AudioPath)
			audioPath, err = media.ExtractAudio(cmd.Context(), m.AudioPath, m.OutputDir)
			if err != nil {
				return err
			}
		}

		backend, err := newBackend(m)
		if err != nil {
			return err
		}

		cacheDir := m.Transcription.CacheDir
		if cacheDir == "" {
			cacheDir = filepath.Join(m.OutputDir, "cache")
		}
		backend = transcribe.WithCache(backend, transcribe.NewCache(cacheDir))

		log.Info("transcribing", "backend", backend.Name(), "audio", audioPath)
		result, err := backend.Transcribe(cmd.Context(), audioPath)
		if err != nil {
			return err
		}
		log.Info("transcription done", "segments", len(result.Segments))

		if err := os.MkdirAll(m.OutputDir, 0o755); err != nil {
			return err
		}
		out := filepath.Join(m.OutputDir, "segments.json")
		if err := writeJSON(out, result); err != nil {
			return err
		}
		log.Info("wrote segments", "path", out)
		return nil
	},
}

func init() {
	transcribeCmd.Flags().BoolVar(&extractAudio, "extract", false, "Extract mono 16kHz WAV from a video input first")
}

func newBackend(m *story.Manifest) (transcribe.Backend, error) {
	switch m.Transcription.Backend {
	case "", "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		return transcribe.NewOpenAIBackend(key, m.Transcription.Model), nil
	case "gcp":
		return transcribe.NewGCPBackend(m.Language, m.Transcription.Model), nil
	default:
		return nil, fmt.Errorf("unknown transcription backend %q", m.Transcription.Backend)
	}
}
