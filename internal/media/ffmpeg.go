// SPDX-License-Identifier: Apache-2.0

// Package media shells out to ffmpeg for audio extraction and per-page
// clip cutting.
package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/storyforgehq/storyforge/internal/transcript"
)

// ExtractAudio extracts mono 16 kHz WAV from a video, the input shape
// the transcription backends expect. Returns the output path.
func ExtractAudio(ctx context.Context, videoPath, tmpDir string) (string, error) {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	out := filepath.Join(tmpDir, base+"_audio_16k.wav")

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-i", videoPath,
		"-ac", "1", "-ar", "16000",
		"-f", "wav",
		out,
	)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg extract: %w", err)
	}
	return out, nil
}

// SplitClips cuts one audio clip per page timestamp into outDir, named
// page_<N>.<ext>. Timestamps are passed to ffmpeg at full decimal
// precision. Returns the clip paths in page order.
func SplitClips(ctx context.Context, audioPath, outDir string, stamps []transcript.PageTimestamp) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating clip dir: %w", err)
	}

	ext := filepath.Ext(audioPath)
	if ext == "" {
		ext = ".wav"
	}

	clips := make([]string, 0, len(stamps))
	for _, s := range stamps {
		out := filepath.Join(outDir, "page_"+strconv.Itoa(s.PageNumber)+ext)
		cmd := exec.CommandContext(ctx, "ffmpeg",
			"-y", "-i", audioPath,
			"-ss", formatSeconds(s.Start),
			"-to", formatSeconds(s.End),
			"-c", "copy",
			out,
		)
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return nil, fmt.Errorf("ffmpeg split page %d: %w", s.PageNumber, err)
		}
		clips = append(clips, out)
	}
	return clips, nil
}

func formatSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', -1, 64)
}
