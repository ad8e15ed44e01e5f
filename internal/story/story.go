// SPDX-License-Identifier: Apache-2.0

// Package story loads the YAML authoring manifest that drives one
// pipeline run.
package story

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/storyforgehq/storyforge/internal/transcript"
)

// Manifest describes one story: where its inputs live, how matching
// should behave, and the metadata carried into the content package.
type Manifest struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Language string `yaml:"language"`

	// MatchingMode is strict, tolerant or fuzzy. Empty means tolerant.
	MatchingMode string `yaml:"matchingMode"`

	TranscriptPath string `yaml:"transcript"`
	AudioPath      string `yaml:"audio"`
	OutputDir      string `yaml:"outputDir"`

	Transcription Transcription `yaml:"transcription"`
}

// Transcription selects and configures the transcription backend.
type Transcription struct {
	Backend  string `yaml:"backend"` // openai | gcp
	Model    string `yaml:"model"`
	CacheDir string `yaml:"cacheDir"`
}

// Load reads and validates a manifest. Relative input paths are
// resolved against the manifest's directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading story manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing story manifest: %w", err)
	}

	base := filepath.Dir(path)
	m.TranscriptPath = resolve(base, m.TranscriptPath)
	m.AudioPath = resolve(base, m.AudioPath)
	m.OutputDir = resolve(base, m.OutputDir)
	m.Transcription.CacheDir = resolve(base, m.Transcription.CacheDir)

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the fields every command relies on.
func (m *Manifest) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("story manifest: id is required")
	}
	if m.TranscriptPath == "" {
		return fmt.Errorf("story manifest: transcript path is required")
	}
	if _, err := transcript.ParseMode(m.MatchingMode); err != nil {
		return fmt.Errorf("story manifest: %w", err)
	}
	switch m.Transcription.Backend {
	case "", "openai", "gcp":
	default:
		return fmt.Errorf("story manifest: unknown transcription backend %q", m.Transcription.Backend)
	}
	return nil
}

// Mode returns the validated matching mode.
func (m *Manifest) Mode() transcript.MatchMode {
	mode, _ := transcript.ParseMode(m.MatchingMode)
	return mode
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
