// Package oov holds the built-in OovProvider implementations named in
// spec.md §4.6: SimpleOov, MeCabOov and RegexOov.
package oov

import (
	"unicode/utf8"

	"github.com/hayashi-nlp/sudachigo/dictionary"
	"github.com/hayashi-nlp/sudachigo/plugin"
)

// SimpleOov is the fallback-of-last-resort OOV provider (spec.md §4.6):
// it fires only when no other candidate exists at this boundary, and
// always emits exactly one node covering a single character.
type SimpleOov struct {
	LeftID, RightID int16
	Cost            int16
	POSID           int16
}

var _ plugin.OovProvider = (*SimpleOov)(nil)

// GetOOV implements plugin.OovProvider.
func (p *SimpleOov) GetOOV(input plugin.InputTextView, offset int, otherWordsMask uint64, out *[]plugin.PathNode) error {
	if otherWordsMask != 0 {
		return nil
	}
	length := candidateLength(input, offset)
	if length <= 0 {
		return nil
	}
	end := offset + length
	surface := input.GetSubstring(offset, end)
	*out = append(*out, plugin.PathNode{
		Begin: offset, End: end,
		LeftID: p.LeftID, RightID: p.RightID, Cost: p.Cost,
		DictionaryID: dictionary.OOVDictionaryID,
		Info: dictionary.WordInfo{
			Surface:              surface,
			HeadwordByteLength:   end - offset,
			POSID:                p.POSID,
			DictionaryFormWordID: -1,
		},
	})
	return nil
}

// candidateLength returns the byte length of the single UTF-8 rune
// starting at offset (spec.md §4.6's getWordCandidateLength, as applied
// by the single-character fallback provider).
func candidateLength(input plugin.InputTextView, offset int) int {
	b := input.Bytes()
	if offset < 0 || offset >= len(b) {
		return 0
	}
	_, size := utf8.DecodeRune(b[offset:])
	return size
}
