// SPDX-License-Identifier: Apache-2.0

package transcript

import "fmt"

// DeriveTimestamps turns matched groups into per-page clip boundaries:
// start of the first segment, end of the last, duration as the exact
// float difference. No rounding happens at any point.
//
// An empty group means the matcher broke its contract; that is a
// defect, not a recoverable input problem.
func DeriveTimestamps(groups []MatchedGroup) ([]PageTimestamp, error) {
	stamps := make([]PageTimestamp, 0, len(groups))
	for _, g := range groups {
		if len(g.Segments) == 0 {
			return nil, fmt.Errorf("contract violation: page %d has an empty segment group", g.PageNumber)
		}
		start := g.Segments[0].Start
		end := g.Segments[len(g.Segments)-1].End
		stamps = append(stamps, PageTimestamp{
			PageNumber: g.PageNumber,
			Start:      start,
			End:        end,
			Duration:   end - start,
		})
	}
	return stamps, nil
}
