package dictionary

import (
	"fmt"

	"github.com/hayashi-nlp/sudachigo/internal/errs"
)

// WordID is an opaque, dictionary-encoded word identifier: the high
// nibble is the owning lexicon's index within a LexiconSet, the low 28
// bits are that lexicon's local word id (spec.md §3). Callers outside
// this package must treat it as opaque (spec.md §4.3).
type WordID int32

const (
	dictIndexShift = 28
	localIDMask    = 0x0FFFFFFF
	maxLexicons    = 16 // 1 system + up to 15 layered (4-bit nibble)

	// OOVDictionaryID is the dictionaryId reported for out-of-vocabulary
	// words, which are not backed by any lexicon (spec.md §3).
	OOVDictionaryID = -1
)

func encodeWordID(dictIndex int, localID int32) WordID {
	return WordID((int32(dictIndex) << dictIndexShift) | (localID & localIDMask))
}

// DictionaryIndex and LocalID decode a WordID's components.
func (w WordID) DictionaryIndex() int { return int(uint32(w) >> dictIndexShift) }
func (w WordID) LocalID() int32       { return int32(w) & localIDMask }

// LexiconSet composes one system lexicon plus up to 15 auxiliary
// (compound + user) lexicons behind a single lookup interface (spec.md
// §3/§4.3).
type LexiconSet struct {
	lexicons []*Lexicon // index 0 is always the system lexicon
}

// NewLexiconSet creates a set with only the system lexicon loaded.
func NewLexiconSet(system *Lexicon) *LexiconSet {
	return &LexiconSet{lexicons: []*Lexicon{system}}
}

// AddLexicon appends a layered (compound or user) lexicon, in load order.
// Load order determines the dictionary index baked into every WordID this
// lexicon's words are encoded with from this point on.
func (ls *LexiconSet) AddLexicon(lx *Lexicon) error {
	if len(ls.lexicons) >= maxLexicons {
		return fmt.Errorf("%w: cannot layer more than %d lexicons", errs.ErrInvalidDictionary, maxLexicons-1)
	}
	ls.lexicons = append(ls.lexicons, lx)
	return nil
}

func (ls *LexiconSet) lexiconFor(id WordID) (*Lexicon, error) {
	idx := id.DictionaryIndex()
	if idx < 0 || idx >= len(ls.lexicons) {
		return nil, fmt.Errorf("%w: word id %d references unknown dictionary index %d", errs.ErrInvalidDictionary, id, idx)
	}
	return ls.lexicons[idx], nil
}

// LookupEntry is one common-prefix-search result from a LexiconSet: a
// dictionary-index-encoded word id and the byte length it matched.
type LookupEntry struct {
	ID         WordID
	ByteLength int
}

// Lookup runs common-prefix search across every layered lexicon at
// byteOffset, returning the union of their results with dictionary-index-
// encoded word ids (spec.md §4.3).
func (ls *LexiconSet) Lookup(text []byte, byteOffset int) ([]LookupEntry, error) {
	var out []LookupEntry
	for idx, lx := range ls.lexicons {
		entries, err := lx.Lookup(text, byteOffset)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			out = append(out, LookupEntry{ID: encodeWordID(idx, e.LocalWordID), ByteLength: e.ByteLength})
		}
	}
	return out, nil
}

// GetLeftID, GetRightID, GetCost, GetWordInfo decode id's dictionary index
// and delegate to the correct layered lexicon (spec.md §4.3).
func (ls *LexiconSet) GetLeftID(id WordID) (int16, error) {
	lx, err := ls.lexiconFor(id)
	if err != nil {
		return 0, err
	}
	return lx.GetLeftID(id.LocalID())
}

func (ls *LexiconSet) GetRightID(id WordID) (int16, error) {
	lx, err := ls.lexiconFor(id)
	if err != nil {
		return 0, err
	}
	return lx.GetRightID(id.LocalID())
}

func (ls *LexiconSet) GetCost(id WordID) (int16, error) {
	lx, err := ls.lexiconFor(id)
	if err != nil {
		return 0, err
	}
	return lx.GetCost(id.LocalID())
}

func (ls *LexiconSet) GetWordInfo(id WordID) (WordInfo, error) {
	lx, err := ls.lexiconFor(id)
	if err != nil {
		return WordInfo{}, err
	}
	return lx.GetWordInfo(id.LocalID())
}

// Size returns the number of layered lexicons (system + auxiliary).
func (ls *LexiconSet) Size() int { return len(ls.lexicons) }
