// SPDX-License-Identifier: Apache-2.0

// Package transcribe talks to speech-to-text collaborators and caches
// their time-coded output for the alignment pipeline.
package transcribe

import (
	"context"

	"github.com/storyforgehq/storyforge/internal/transcript"
)

// Transcript is the time-coded output of one transcription call.
type Transcript struct {
	Language string                   `json:"language,omitempty"`
	Segments []transcript.TimeSegment `json:"segments"`
}

// Backend is a pluggable transcription collaborator.
type Backend interface {
	// Name identifies the backend and model, e.g. "openai/whisper-1";
	// it participates in cache keys.
	Name() string
	Transcribe(ctx context.Context, audioPath string) (Transcript, error)
}
