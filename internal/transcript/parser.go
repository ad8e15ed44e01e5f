// SPDX-License-Identifier: Apache-2.0

package transcript

import (
	"regexp"
	"strconv"
	"strings"
)

// PageBreakMarker is the reserved delimiter line that terminates a page
// in the annotated transcript.
const PageBreakMarker = "---"

// headingPattern matches the optional leading heading of a page block,
// e.g. "# Page 3: Repetition drill".
var headingPattern = regexp.MustCompile(`^#\s*[Pp]age\s+(\d+)\s*:\s*(.*)$`)

// ParsePages converts an annotated transcript into ordered page
// definitions. Pages are terminated by PageBreakMarker on its own line
// and may open with a "# Page N: Title" heading; unheaded pages are
// numbered by position and titled "Page N". Page numbers in the result
// are strictly increasing from 1.
func ParsePages(raw string) ([]PageDefinition, error) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	var pages []PageDefinition
	var block []string
	sawMarker := false

	flush := func() error {
		page, err := parseBlock(block, len(pages)+1)
		if err != nil {
			return err
		}
		pages = append(pages, page)
		block = nil
		return nil
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == PageBreakMarker {
			sawMarker = true
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		block = append(block, line)
	}

	if !sawMarker {
		return nil, &FormatError{Reason: "no page breaks found"}
	}
	// Markers terminate pages, so anything non-blank after the final
	// marker belongs to no page.
	if trailing := strings.TrimSpace(strings.Join(block, "\n")); trailing != "" {
		return nil, &FormatError{Reason: "content after the final page break does not belong to any page"}
	}
	return pages, nil
}

func parseBlock(block []string, position int) (PageDefinition, error) {
	number := position
	title := ""
	explicit := false

	if len(block) > 0 {
		if m := headingPattern.FindStringSubmatch(strings.TrimSpace(block[0])); m != nil {
			number, _ = strconv.Atoi(m[1])
			title = strings.TrimSpace(m[2])
			explicit = true
			block = block[1:]
		}
	}
	if title == "" {
		title = "Page " + strconv.Itoa(number)
	}

	text := NormalizeForDisplay(strings.Join(block, "\n"))
	if text == "" {
		return PageDefinition{}, &FormatError{Page: number, Reason: "page has no content"}
	}
	if explicit && number != position {
		return PageDefinition{}, &FormatError{
			Page:   number,
			Reason: "page heading out of order (expected page " + strconv.Itoa(position) + ")",
		}
	}

	return PageDefinition{PageNumber: number, Title: title, Text: text}, nil
}
