// SPDX-License-Identifier: Apache-2.0

// Package packaging assembles the content-package manifest and checks
// it against the package schema before anything ships.
package packaging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/storyforgehq/storyforge/internal/pipeline"
	"github.com/storyforgehq/storyforge/internal/story"
)

// Page is one interactive page of the packaged story.
type Page struct {
	Number     int     `json:"number"`
	Title      string  `json:"title"`
	Text       string  `json:"text"`
	AudioFile  string  `json:"audioFile,omitempty"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Duration   float64 `json:"duration"`
	Confidence float64 `json:"confidence"`
}

// Package is the manifest handed to the player runtime.
type Package struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Language string `json:"language"`
	Pages    []Page `json:"pages"`
}

// Build folds a story manifest and an alignment run into a package
// manifest. clips may be empty when audio has not been split yet;
// when present it must carry one path per page, in page order.
func Build(m *story.Manifest, run pipeline.RunResult, clips []string) (Package, error) {
	if len(run.Groups) != len(run.Timestamps) {
		return Package{}, fmt.Errorf("packaging: %d groups but %d timestamps", len(run.Groups), len(run.Timestamps))
	}
	if len(clips) > 0 && len(clips) != len(run.Timestamps) {
		return Package{}, fmt.Errorf("packaging: %d clips for %d pages", len(clips), len(run.Timestamps))
	}

	lang := m.Language
	if lang == "" {
		lang = "en"
	}
	pkg := Package{ID: m.ID, Title: m.Title, Language: lang}

	for i, page := range run.Pages {
		p := Page{
			Number:     page.PageNumber,
			Title:      page.Title,
			Text:       page.Text,
			Start:      run.Timestamps[i].Start,
			End:        run.Timestamps[i].End,
			Duration:   run.Timestamps[i].Duration,
			Confidence: run.Groups[i].Confidence,
		}
		if len(clips) > 0 {
			p.AudioFile = filepath.Base(clips[i])
		}
		pkg.Pages = append(pkg.Pages, p)
	}
	return pkg, nil
}

// Write validates the package against the schema and writes it as
// indented JSON.
func Write(pkg Package, path string) error {
	data, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return err
	}
	if err := Validate(data); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
