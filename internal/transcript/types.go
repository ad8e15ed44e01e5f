// SPDX-License-Identifier: Apache-2.0

// Package transcript implements the transcript-to-timestamp alignment
// core: parsing an editor-annotated transcript into pages, matching
// each page back onto the original time-coded segments, and deriving
// per-page timestamps for audio clipping.
package transcript

// PageDefinition is one marker-delimited block of the annotated
// transcript. Immutable once produced by ParsePages.
type PageDefinition struct {
	PageNumber int    `json:"page_number"`
	Title      string `json:"title"`
	Text       string `json:"text"`
}

// TimeSegment is one time-coded span from the transcription
// collaborator. Start and End are decimal seconds and must be carried
// through unrounded.
type TimeSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// MatchedGroup binds a page to the contiguous run of segments it was
// matched against, plus the similarity score the match achieved.
type MatchedGroup struct {
	PageNumber int           `json:"page_number"`
	Segments   []TimeSegment `json:"segments"`
	Confidence float64       `json:"confidence"`
}

// PageTimestamp is the derived clip boundary for one page, in the
// shape the audio-splitting collaborator expects.
type PageTimestamp struct {
	PageNumber int     `json:"page_number"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Duration   float64 `json:"duration"`
}
