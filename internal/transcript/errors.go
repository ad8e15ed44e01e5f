// SPDX-License-Identifier: Apache-2.0

package transcript

import "fmt"

// FormatError reports a structural problem in the annotated transcript.
// Page is 0 when the problem is not attributable to a single page.
type FormatError struct {
	Page   int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("transcript format: page %d: %s", e.Page, e.Reason)
	}
	return "transcript format: " + e.Reason
}

// MatchError reports that no forward window of segments satisfied the
// configured mode for a page. BestScore and Diff describe the closest
// candidate so the user can fix the edit or relax the mode.
type MatchError struct {
	Page      int
	Mode      MatchMode
	BestScore float64
	BestText  string
	Diff      string
}

func (e *MatchError) Error() string {
	msg := fmt.Sprintf("page %d: no segment window matched in %s mode (best similarity %.2f)",
		e.Page, e.Mode, e.BestScore)
	if e.Diff != "" {
		msg += "\nclosest candidate vs page text:\n" + e.Diff
	}
	return msg
}
