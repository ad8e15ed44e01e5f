// SPDX-License-Identifier: Apache-2.0

package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/storyforgehq/storyforge/internal/transcript"
)

const openAIEndpoint = "https://api.openai.com/v1/audio/transcriptions"

// openAIBackend calls audio.transcriptions with verbose_json so the
// response carries per-segment timings.
type openAIBackend struct {
	apiKey string
	model  string
	client *http.Client
}

func NewOpenAIBackend(apiKey, model string) Backend {
	if model == "" {
		model = "whisper-1"
	}
	return &openAIBackend{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Minute},
	}
}

func (o *openAIBackend) Name() string {
	return "openai/" + o.model
}

type openAIVerboseResp struct {
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func (o *openAIBackend) Transcribe(ctx context.Context, audioPath string) (Transcript, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return Transcript{}, err
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("model", o.model); err != nil {
		return Transcript{}, err
	}
	if err := mw.WriteField("response_format", "verbose_json"); err != nil {
		return Transcript{}, err
	}
	fw, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return Transcript{}, err
	}
	if _, err := io.Copy(fw, f); err != nil {
		return Transcript{}, err
	}
	if err := mw.Close(); err != nil {
		return Transcript{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIEndpoint, &body)
	if err != nil {
		return Transcript{}, err
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := o.client.Do(req)
	if err != nil {
		return Transcript{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return Transcript{}, fmt.Errorf("openai http %d: %s", resp.StatusCode, string(b))
	}

	var vr openAIVerboseResp
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return Transcript{}, err
	}

	out := Transcript{Language: vr.Language}
	for _, s := range vr.Segments {
		out.Segments = append(out.Segments, transcript.TimeSegment{
			Start: s.Start,
			End:   s.End,
			Text:  s.Text,
		})
	}
	if len(out.Segments) == 0 {
		return Transcript{}, fmt.Errorf("openai returned no timed segments")
	}
	return out, nil
}
