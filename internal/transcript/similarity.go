// SPDX-License-Identifier: Apache-2.0

package transcript

// JaccardSimilarity returns |tokens(a) ∩ tokens(b)| / |tokens(a) ∪ tokens(b)|
// over the whitespace-delimited token sets of the two strings, after
// match normalization. Duplicate tokens collapse (sets, not multisets),
// so the metric is order-insensitive and tolerant of local edits.
// Two empty strings score 1.0.
func JaccardSimilarity(a, b string) float64 {
	ta, tb := Tokens(a), Tokens(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 1.0
	}

	set := make(map[string]uint8, len(ta)+len(tb))
	for _, t := range ta {
		set[t] |= 1
	}
	for _, t := range tb {
		set[t] |= 2
	}

	shared := 0
	for _, m := range set {
		if m == 3 {
			shared++
		}
	}
	return float64(shared) / float64(len(set))
}
