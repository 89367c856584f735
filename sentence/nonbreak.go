package sentence

import "github.com/hayashi-nlp/sudachigo/dictionary"

// maxLookbackBytes bounds how far back LexiconChecker scans before a
// candidate boundary (spec.md §4.8's "last up-to-64 bytes").
const maxLookbackBytes = 64

// LexiconChecker is the NonBreakChecker spec.md §4.8 names: it straddles
// a candidate boundary when any dictionary entry reachable by common-
// prefix search, starting somewhere in the 64 bytes before the boundary,
// ends strictly after it.
type LexiconChecker struct {
	Lexicon *dictionary.LexiconSet
	Bytes   []byte
}

// HasNonBreakWord implements NonBreakChecker.
func (c LexiconChecker) HasNonBreakWord(boundaryByte int) bool {
	start := boundaryByte - maxLookbackBytes
	if start < 0 {
		start = 0
	}
	for b := start; b < boundaryByte; b++ {
		entries, err := c.Lexicon.Lookup(c.Bytes, b)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if b+e.ByteLength > boundaryByte {
				return true
			}
		}
	}
	return false
}
