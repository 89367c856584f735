// Package sentence implements spec.md §4.7's getEos sentence-boundary
// scan: given a buffer of text and a way to ask whether a dictionary word
// straddles a candidate boundary, it finds the char length of the first
// detected sentence, or reports how far it scanned without finding one.
package sentence

// DefaultLimit is the maximum number of characters scanned per call
// (spec.md §4.7 rule 1).
const DefaultLimit = 4096

// NonBreakChecker answers whether a dictionary word straddles a
// candidate end-of-sentence boundary (spec.md §4.7 rule 3's
// nonBreakChecker.hasNonBreakWord, §4.8's hasNonBreakWord(length)).
// byteOffset is the candidate boundary's position in the same text
// GetEos was given, in bytes.
type NonBreakChecker interface {
	HasNonBreakWord(byteOffset int) bool
}

// charPos is one decoded rune plus its byte offset within the scanned
// text; its char index is its position in the slice GetEos builds.
type charPos struct {
	byteIdx int
	r       rune
}

// GetEos scans text for the first sentence boundary, up to DefaultLimit
// characters. It returns a positive char length k when text[0:k] (by
// rune count) is a complete sentence, or a negative −k meaning no
// boundary was found within the k characters scanned (spec.md §4.7).
func GetEos(text string, checker NonBreakChecker) int {
	var runes []charPos
	for b, r := range text {
		runes = append(runes, charPos{byteIdx: b, r: r})
		if len(runes) >= DefaultLimit {
			break
		}
	}
	limit := len(runes)
	if limit == 0 {
		return 0
	}

	depth := 0
	for i := 0; i < limit; i++ {
		r := runes[i].r

		if _, ok := parenClose[r]; ok {
			depth++
			continue
		}
		if _, ok := parenOpenFor[r]; ok {
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth > 0 {
			continue
		}
		if _, ok := terminators[r]; !ok {
			continue
		}

		// Consume any contiguous forbidden-BOS run right after the
		// terminator; it belongs to the sentence that just ended.
		j := i + 1
		for j < limit {
			if _, ok := forbiddenBOS[runes[j].r]; !ok {
				break
			}
			j++
		}

		if startsWithContinuousPhrase(r, runes, j) {
			i = j - 1 // resume scanning for the next terminator from here
			continue
		}
		if isDecimalPointBetweenDigits(r, runes, i, j, limit) {
			continue
		}
		boundaryByte := len(text)
		if j < limit {
			boundaryByte = runes[j].byteIdx
		}
		if checker != nil && checker.HasNonBreakWord(boundaryByte) {
			continue
		}

		return j
	}

	return -limit
}

func startsWithContinuousPhrase(terminator rune, runes []charPos, from int) bool {
	for _, phrase := range continuousPhrases[terminator] {
		if runesHavePrefix(runes, from, phrase) {
			return true
		}
	}
	return false
}

func runesHavePrefix(runes []charPos, from int, prefix string) bool {
	pr := []rune(prefix)
	if from+len(pr) > len(runes) {
		return false
	}
	for k, want := range pr {
		if runes[from+k].r != want {
			return false
		}
	}
	return true
}

func isDecimalPointBetweenDigits(terminator rune, runes []charPos, i, j, limit int) bool {
	if terminator != '.' && terminator != '．' {
		return false
	}
	if i == 0 || !isDigit(runes[i-1].r) {
		return false
	}
	if j >= limit || !isDigit(runes[j].r) {
		return false
	}
	return true
}

func isDigit(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	return r >= '０' && r <= '９' // fullwidth ０-９
}
