// SPDX-License-Identifier: Apache-2.0

package transcript_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storyforgehq/storyforge/internal/transcript"
)

func TestNormalizeForMatch(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases", in: "Bonjour Madame", want: "bonjour madame"},
		{name: "trims and collapses runs", in: "  hello \t  world  ", want: "hello world"},
		{name: "newlines collapse to spaces", in: "first part\nsecond part", want: "first part second part"},
		{name: "non-breaking space collapses", in: "hello\u00a0world", want: "hello world"},
		{name: "diacritics untouched", in: "Eléphant  café", want: "eléphant café"},
		{name: "empty", in: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transcript.NormalizeForMatch(tt.in))
		})
	}
}

func TestNormalizeForMatch_Idempotent(t *testing.T) {
	inputs := []string{"Bonjour  tout le monde", "déjà   vu\nencore", "  a  b  c  "}
	for _, in := range inputs {
		once := transcript.NormalizeForMatch(in)
		assert.Equal(t, once, transcript.NormalizeForMatch(once))
	}
}

func TestNormalizeForDisplay(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "collapses horizontal whitespace per line",
			in:   "The  quick\tbrown fox",
			want: "The quick brown fox",
		},
		{
			name: "blank line runs collapse to one paragraph break",
			in:   "first paragraph\n\n\n\nsecond paragraph",
			want: "first paragraph\n\nsecond paragraph",
		},
		{
			name: "leading and trailing blanks dropped",
			in:   "\n\n  text  \n\n",
			want: "text",
		},
		{
			name: "diacritics and case preserved",
			in:   "Eléphant à  Paris",
			want: "Eléphant à Paris",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transcript.NormalizeForDisplay(tt.in))
		})
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"bonjour", "tout", "le", "monde"}, transcript.Tokens("Bonjour  tout\nle monde"))
	assert.Empty(t, transcript.Tokens("  \n\t "))
}
