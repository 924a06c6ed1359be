package textcompare

// Score computes the similarity between two texts as a value in [0, 1].
//
// Both inputs are normalized first. Equal texts score exactly 1.0 without
// computing a distance. Otherwise the score is 1 - d/L where d is the
// Levenshtein distance between the normalized texts and L the length of the
// longer one. When exactly one side is empty the score is 0; the both-empty
// case is covered by the equality fast path.
//
// Score is symmetric: Score(a, b) == Score(b, a).
func Score(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)

	if na == nb {
		return 1.0
	}

	ra := []rune(na)
	rb := []rune(nb)

	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		// Unreachable after the fast path, kept as an explicit guard
		// against division by zero.
		return 0
	}

	d := levenshtein(ra, rb)
	return 1.0 - float64(d)/float64(maxLen)
}

// levenshtein returns the edit distance between a and b using the classic
// dynamic-programming recurrence with unit-cost insert, delete and
// substitute. Two rows are kept instead of the full matrix.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			min := prev[j-1] // substitute
			if prev[j] < min {
				min = prev[j] // delete
			}
			if curr[j-1] < min {
				min = curr[j-1] // insert
			}
			curr[j] = min + 1
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
