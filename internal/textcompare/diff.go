package textcompare

import "fmt"

// Differences produces a human-readable, ordered report of where the
// reference and submitted texts disagree. Both inputs are normalized before
// comparison.
//
// The report is meant for inspectors reviewing a verification, not for
// scoring: it is a simple position-by-position alignment, so an insertion
// near the start shows up as many positional mismatches plus one length
// entry. The returned slice is never empty; identical texts yield a single
// entry saying so, and an empty side yields a single entry naming that side.
func Differences(reference, submitted string) []string {
	ref := Normalize(reference)
	sub := Normalize(submitted)

	switch {
	case ref == "" && sub == "":
		return []string{"both texts are empty"}
	case ref == "":
		return []string{"reference text is empty"}
	case sub == "":
		return []string{"submitted text is empty"}
	}

	if ref == sub {
		return []string{"texts are identical"}
	}

	refRunes := []rune(ref)
	subRunes := []rune(sub)

	maxLen := len(refRunes)
	if len(subRunes) > maxLen {
		maxLen = len(subRunes)
	}

	var diffs []string
	for i := 0; i < maxLen; i++ {
		switch {
		case i >= len(refRunes):
			diffs = append(diffs, fmt.Sprintf("difference at position %d: empty vs %q", i+1, string(subRunes[i])))
		case i >= len(subRunes):
			diffs = append(diffs, fmt.Sprintf("difference at position %d: %q vs empty", i+1, string(refRunes[i])))
		case refRunes[i] != subRunes[i]:
			diffs = append(diffs, fmt.Sprintf("difference at position %d: %q vs %q", i+1, string(refRunes[i]), string(subRunes[i])))
		}
	}

	if len(refRunes) != len(subRunes) {
		diffs = append(diffs, fmt.Sprintf("length mismatch: %d vs %d characters", len(refRunes), len(subRunes)))
	}

	return diffs
}
