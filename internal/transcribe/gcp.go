// SPDX-License-Identifier: Apache-2.0

package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/durationpb"

	"github.com/storyforgehq/storyforge/internal/transcript"
)

// gcpBackend uses Cloud Speech LongRunningRecognize with word time
// offsets, then folds the word stream back into sentence-sized
// segments for the matcher.
type gcpBackend struct {
	language string
	model    string
}

func NewGCPBackend(language, model string) Backend {
	if language == "" {
		language = "en-US"
	}
	return &gcpBackend{language: language, model: model}
}

func (g *gcpBackend) Name() string {
	model := g.model
	if model == "" {
		model = "default"
	}
	return "gcp/" + model
}

func (g *gcpBackend) Transcribe(ctx context.Context, audioPath string) (Transcript, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	client, err := speech.NewClient(ctx, clientOptionsFromEnv()...)
	if err != nil {
		return Transcript{}, fmt.Errorf("speech client: %w", err)
	}
	defer client.Close()

	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return Transcript{}, err
	}

	req := &speechpb.LongRunningRecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			LanguageCode:               g.language,
			Model:                      g.model,
			EnableAutomaticPunctuation: true,
			EnableWordTimeOffsets:      true,
			Encoding:                   inferEncoding(audioPath),
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	op, err := client.LongRunningRecognize(ctx, req)
	if err != nil {
		return Transcript{}, fmt.Errorf("speech longrunningrecognize: %w", err)
	}
	resp, err := op.Wait(ctx)
	if err != nil {
		return Transcript{}, fmt.Errorf("speech longrunningrecognize wait: %w", err)
	}

	segments := segmentsFromResponse(resp)
	if len(segments) == 0 {
		return Transcript{}, fmt.Errorf("gcp speech returned no timed words")
	}
	return Transcript{Language: g.language, Segments: segments}, nil
}

func clientOptionsFromEnv() []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

func inferEncoding(audioPath string) speechpb.RecognitionConfig_AudioEncoding {
	switch strings.ToLower(filepath.Ext(audioPath)) {
	case ".wav":
		return speechpb.RecognitionConfig_LINEAR16
	case ".flac":
		return speechpb.RecognitionConfig_FLAC
	case ".mp3":
		return speechpb.RecognitionConfig_MP3
	case ".ogg", ".opus":
		return speechpb.RecognitionConfig_OGG_OPUS
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}

// wordGapSeconds breaks a segment on silences even when the recognizer
// emits no sentence-final punctuation.
const wordGapSeconds = 1.0

// segmentsFromResponse folds the recognizer's word stream into
// sentence-sized time segments, splitting on sentence-final punctuation
// and on long silences.
func segmentsFromResponse(resp *speechpb.LongRunningRecognizeResponse) []transcript.TimeSegment {
	var segments []transcript.TimeSegment
	var words []string
	var start, end float64

	flush := func() {
		if len(words) == 0 {
			return
		}
		segments = append(segments, transcript.TimeSegment{
			Start: start,
			End:   end,
			Text:  strings.Join(words, " "),
		})
		words = nil
	}

	for _, r := range resp.GetResults() {
		if len(r.GetAlternatives()) == 0 {
			continue
		}
		for _, w := range r.GetAlternatives()[0].GetWords() {
			ws := durToSec(w.GetStartTime())
			we := durToSec(w.GetEndTime())
			if len(words) > 0 && ws-end > wordGapSeconds {
				flush()
			}
			if len(words) == 0 {
				start = ws
			}
			words = append(words, w.GetWord())
			end = we
			if endsSentence(w.GetWord()) {
				flush()
			}
		}
	}
	flush()
	return segments
}

func endsSentence(word string) bool {
	return strings.HasSuffix(word, ".") || strings.HasSuffix(word, "!") || strings.HasSuffix(word, "?")
}

func durToSec(d *durationpb.Duration) float64 {
	if d == nil {
		return 0
	}
	return d.AsDuration().Seconds()
}
