package tokenizer

import (
	"github.com/hayashi-nlp/sudachigo/dictionary"
	"github.com/hayashi-nlp/sudachigo/inputtext"
	"github.com/hayashi-nlp/sudachigo/plugin"
)

// Morpheme is a view over one best-path node, its resolved WordInfo and
// the InputText it was tokenized from (spec.md §3's Morpheme entity).
// Morphemes are only valid for the lifetime of the MorphemeList (here,
// the []*Morpheme slice) that produced them; a Tokenizer reuses its
// Lattice across calls, but Morphemes hold no reference to it.
type Morpheme struct {
	input   *inputtext.InputText
	lexicon *dictionary.LexiconSet // nil for a tokenizer with no dictionary-backed words reachable (never in practice)
	grammar *dictionary.Grammar

	begin, end      int // byte range into input
	leftID, rightID int16
	cost            int16
	wordID          dictionary.WordID
	dictionaryID    int
	info            dictionary.WordInfo
}

func newMorpheme(input *inputtext.InputText, lexicon *dictionary.LexiconSet, grammar *dictionary.Grammar, n plugin.PathNode) *Morpheme {
	return &Morpheme{
		input:        input,
		lexicon:      lexicon,
		grammar:      grammar,
		begin:        n.Begin,
		end:          n.End,
		leftID:       n.LeftID,
		rightID:      n.RightID,
		cost:         n.Cost,
		wordID:       n.WordID,
		dictionaryID: n.DictionaryID,
		info:         n.Info,
	}
}

// Surface returns the morpheme's surface form, sliced from the modified
// text (spec.md §3).
func (m *Morpheme) Surface() string { return m.input.GetSubstring(m.begin, m.end) }

// Begin and End return the morpheme's span in original-text UTF-16 char
// coordinates (spec.md §3).
func (m *Morpheme) Begin() int { return m.input.GetOriginalIndex(m.begin) }
func (m *Morpheme) End() int   { return m.input.GetOriginalIndex(m.end) }

// NormalizedForm and ReadingForm default to Surface when the stored
// value is empty (WordInfo's own invariant).
func (m *Morpheme) NormalizedForm() string { return m.info.NormalizedForm() }
func (m *Morpheme) ReadingForm() string    { return m.info.ReadingForm() }

// IsOOV reports whether this morpheme came from an OOV provider rather
// than a lexicon lookup.
func (m *Morpheme) IsOOV() bool { return m.dictionaryID == dictionary.OOVDictionaryID }

// WordID and DictionaryID expose the opaque, dictionary-index-encoded
// word id and the lexicon index it was resolved from (-1 for OOV).
func (m *Morpheme) WordID() dictionary.WordID { return m.wordID }
func (m *Morpheme) DictionaryID() int         { return m.dictionaryID }

// POSID returns the raw part-of-speech id (spec.md §3).
func (m *Morpheme) POSID() int16 { return m.info.POSID }

// SynonymGroupIDs returns the word's synonym-group ids, empty if the
// loaded system dictionary doesn't carry that feature.
func (m *Morpheme) SynonymGroupIDs() []int32 { return m.info.SynonymGroupIDs }

// PartOfSpeech returns the six-component POS row for this morpheme.
// Callers constructing OOV plugins are responsible for using a posId the
// tokenizer's own grammar defines, since OOV morphemes resolve the same
// way as lexicon ones here.
func (m *Morpheme) PartOfSpeech() (dictionary.POS, error) {
	return m.grammar.POSAt(m.info.POSID)
}

// DictionaryForm returns the surface of this word's dictionary form,
// following WordInfo.DictionaryFormWordID when it names a different word
// (spec.md §3); it returns its own Surface when HasDictionaryForm is
// false or the reference cannot be resolved (OOV words never reference
// another word).
func (m *Morpheme) DictionaryForm() string {
	if !m.info.HasDictionaryForm() || m.lexicon == nil {
		return m.Surface()
	}
	other, err := m.lexicon.GetWordInfo(dictionary.WordID(m.info.DictionaryFormWordID))
	if err != nil {
		return m.Surface()
	}
	return other.Surface
}

// Split returns this morpheme's finer-grained units for mode, or itself
// alone when no split applies (spec.md §3's Morpheme.split(mode)).
func (m *Morpheme) Split(mode plugin.SplitMode) []*Morpheme {
	node := plugin.PathNode{
		Begin: m.begin, End: m.end,
		LeftID: m.leftID, RightID: m.rightID, Cost: m.cost,
		WordID: m.wordID, DictionaryID: m.dictionaryID, Info: m.info,
	}
	parts := splitNode(m.lexicon, node, mode)
	out := make([]*Morpheme, len(parts))
	for i, p := range parts {
		out[i] = newMorpheme(m.input, m.lexicon, m.grammar, p)
	}
	return out
}

// splitNode implements spec.md §4.6 step 8/§3's SplitMode expansion: a node
// whose requested-mode split list has length > 1 is replaced by one
// sub-morpheme per listed word id, with contiguous byte ranges derived
// from each sub-word's WordInfo.HeadwordByteLength. If the sub-node
// lengths don't sum to the parent's byte length, the split is skipped
// and the parent node is kept whole (spec.md §4.6's explicit
// implementation-defined-but-must-not-panic fallback).
func splitNode(lexicon *dictionary.LexiconSet, n plugin.PathNode, mode plugin.SplitMode) []plugin.PathNode {
	if n.DictionaryID == dictionary.OOVDictionaryID || lexicon == nil {
		return []plugin.PathNode{n}
	}
	var ids []int32
	switch mode {
	case plugin.SplitModeA:
		ids = n.Info.AUnitSplit
	case plugin.SplitModeB:
		ids = n.Info.BUnitSplit
	default:
		return []plugin.PathNode{n}
	}
	if len(ids) <= 1 {
		return []plugin.PathNode{n}
	}

	subInfos := make([]dictionary.WordInfo, len(ids))
	total := 0
	for i, id := range ids {
		info, err := lexicon.GetWordInfo(dictionary.WordID(id))
		if err != nil {
			return []plugin.PathNode{n}
		}
		subInfos[i] = info
		total += info.HeadwordByteLength
	}
	if total != n.End-n.Begin {
		return []plugin.PathNode{n}
	}

	out := make([]plugin.PathNode, len(ids))
	cursor := n.Begin
	for i, id := range ids {
		length := subInfos[i].HeadwordByteLength
		sub := plugin.PathNode{
			Begin: cursor, End: cursor + length,
			LeftID: n.LeftID, RightID: n.RightID, Cost: n.Cost,
			WordID:       dictionary.WordID(id),
			DictionaryID: n.DictionaryID,
			Info:         subInfos[i],
		}
		if i == 0 {
			sub.LeftID = n.LeftID
		}
		if i == len(ids)-1 {
			sub.RightID = n.RightID
		}
		out[i] = sub
		cursor += length
	}
	return out
}

// expandSplits applies splitNode across an entire best path.
func expandSplits(path []plugin.PathNode, mode plugin.SplitMode, lexicon *dictionary.LexiconSet) []plugin.PathNode {
	var out []plugin.PathNode
	for _, n := range path {
		out = append(out, splitNode(lexicon, n, mode)...)
	}
	return out
}
