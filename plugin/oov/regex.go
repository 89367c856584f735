package oov

import (
	"fmt"

	"github.com/dlclark/regexp2"

	"github.com/hayashi-nlp/sudachigo/dictionary"
	"github.com/hayashi-nlp/sudachigo/plugin"
)

// BoundaryPolicy controls how RegexOov treats a match's edges against the
// surrounding character categories (spec.md §4.6).
type BoundaryPolicy int

const (
	// BoundaryStrict rejects a match if the character immediately before
	// or after the match shares a category bit with the match's own
	// leading/trailing character.
	BoundaryStrict BoundaryPolicy = iota
	// BoundaryRelaxed accepts the match regardless of neighboring
	// categories.
	BoundaryRelaxed
)

// RegexOov runs a compiled regex against the UTF-8 window starting at a
// lattice boundary (spec.md §4.6). It uses dlclark/regexp2 rather than
// stdlib regexp because unk.def-style patterns commonly need lookahead to
// express "don't match if followed by a continuing category character";
// RE2 (stdlib regexp's engine) cannot express that, while regexp2's
// .NET-style engine can, letting BoundaryStrict double as both a pattern
// feature and a post-match check.
type RegexOov struct {
	Pattern         *regexp2.Regexp
	LeftID, RightID int16
	Cost            int16
	POSID           int16
	Boundary        BoundaryPolicy
	WindowBytes     int // how much of the input to hand the regex; 0 means "to end of text"
}

var _ plugin.OovProvider = (*RegexOov)(nil)

// NewRegexOov compiles pattern and returns a ready provider.
func NewRegexOov(pattern string, leftID, rightID, cost, posID int16, boundary BoundaryPolicy) (*RegexOov, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("oov: compiling regex %q: %w", pattern, err)
	}
	return &RegexOov{Pattern: re, LeftID: leftID, RightID: rightID, Cost: cost, POSID: posID, Boundary: boundary}, nil
}

// GetOOV implements plugin.OovProvider.
func (p *RegexOov) GetOOV(input plugin.InputTextView, offset int, otherWordsMask uint64, out *[]plugin.PathNode) error {
	windowEnd := input.Len()
	if p.WindowBytes > 0 && offset+p.WindowBytes < windowEnd {
		windowEnd = offset + p.WindowBytes
	}
	window := input.GetSubstring(offset, windowEnd)

	m, err := p.Pattern.FindStringMatch(window)
	if err != nil {
		return fmt.Errorf("oov: regex match: %w", err)
	}
	if m == nil || m.Index != 0 || m.Length == 0 {
		return nil
	}
	end := offset + len([]byte(m.String()))

	if p.Boundary == BoundaryStrict && !p.boundaryOK(input, offset, end) {
		return nil
	}

	*out = append(*out, plugin.PathNode{
		Begin: offset, End: end,
		LeftID: p.LeftID, RightID: p.RightID, Cost: p.Cost,
		DictionaryID: dictionary.OOVDictionaryID,
		Info: dictionary.WordInfo{
			Surface:              input.GetSubstring(offset, end),
			HeadwordByteLength:   end - offset,
			POSID:                p.POSID,
			DictionaryFormWordID: -1,
		},
	})
	return nil
}

// boundaryOK implements the strict policy: reject if the character just
// inside the match shares a category bit with the character just outside
// it, on either edge.
func (p *RegexOov) boundaryOK(input plugin.InputTextView, begin, end int) bool {
	firstLen := candidateLength(input, begin)
	if firstLen > 0 && firstLen <= end-begin {
		inside := input.GetCharCategoryTypes(begin, begin+firstLen)
		if begin > 0 {
			prevLen := runeLenEndingAt(input, begin)
			if prevLen > 0 {
				outside := input.GetCharCategoryTypes(begin-prevLen, begin)
				if inside&outside != 0 {
					return false
				}
			}
		}
	}
	if end < input.Len() {
		lastLen := runeLenEndingAt(input, end)
		if lastLen > 0 && lastLen <= end-begin {
			inside := input.GetCharCategoryTypes(end-lastLen, end)
			nextLen := candidateLength(input, end)
			if nextLen > 0 {
				outside := input.GetCharCategoryTypes(end, end+nextLen)
				if inside&outside != 0 {
					return false
				}
			}
		}
	}
	return true
}

// runeLenEndingAt returns the byte length of the rune immediately
// preceding byte index end, found by backing off from end one byte at a
// time until a lead byte is found (end is assumed to be a valid UTF-8
// boundary already).
func runeLenEndingAt(input plugin.InputTextView, end int) int {
	b := input.Bytes()
	for start := end - 1; start >= 0 && end-start <= 4; start-- {
		if b[start]&0xC0 != 0x80 {
			return end - start
		}
	}
	return 0
}
