package dictionary

import (
	"encoding/binary"
	"fmt"

	"github.com/hayashi-nlp/sudachigo/internal/errs"
)

// WordEntry is one (localWordId, byteLength) result from a single
// lexicon's lookup, before LexiconSet encodes the owning dictionary index
// into it (spec.md §4.3).
type WordEntry struct {
	LocalWordID int32
	ByteLength  int
}

// Lexicon is a single dictionary layer's trie + word-id table + word
// parameters + word-info, as read from one dictionary blob (spec.md §3's
// Lexicon entity, before LexiconSet composition).
type Lexicon struct {
	trie            *Trie
	wordIDEntries   []byte // raw word-id-table entry stream
	params          []WordParameters
	wordInfoOffsets []int32
	blob            []byte // full dictionary blob, for on-demand WordInfo decode
	hasSynonymGIDs  bool
}

// Lookup runs the trie's common-prefix search at byteOffset and resolves
// each matched trie value to the local word ids stored at that slot in
// the word-id table (spec.md §4.3 step 1-2).
func (lx *Lexicon) Lookup(text []byte, byteOffset int) ([]WordEntry, error) {
	matches := lx.trie.CommonPrefixSearch(text, byteOffset)
	var out []WordEntry
	for _, m := range matches {
		ids, err := lx.wordIDsAt(m.Value)
		if err != nil {
			return nil, err
		}
		length := m.MatchedEndOffset - byteOffset
		for _, id := range ids {
			out = append(out, WordEntry{LocalWordID: id, ByteLength: length})
		}
	}
	return out, nil
}

// wordIDsAt decodes the count-prefixed int32 array stored at the given
// byte offset into the word-id-table entry stream (spec.md §6).
func (lx *Lexicon) wordIDsAt(entryOffset int32) ([]int32, error) {
	if entryOffset < 0 || int(entryOffset) >= len(lx.wordIDEntries) {
		return nil, fmt.Errorf("%w: word-id table entry offset %d out of range", errs.ErrInvalidDictionary, entryOffset)
	}
	buf := lx.wordIDEntries[entryOffset:]
	if len(buf) < 1 {
		return nil, fmt.Errorf("%w: truncated word-id table entry", errs.ErrInvalidDictionary)
	}
	count := int(buf[0])
	need := 1 + count*4
	if len(buf) < need {
		return nil, fmt.Errorf("%w: truncated word-id table entry (need %d bytes)", errs.ErrInvalidDictionary, need)
	}
	ids := make([]int32, count)
	for i := 0; i < count; i++ {
		off := 1 + i*4
		ids[i] = int32(binary.LittleEndian.Uint32(buf[off : off+4]))
	}
	return ids, nil
}

// Size returns the number of words in this lexicon.
func (lx *Lexicon) Size() int { return len(lx.params) }

func (lx *Lexicon) checkID(localWordID int32) error {
	if localWordID < 0 || int(localWordID) >= len(lx.params) {
		return fmt.Errorf("%w: local word id %d out of range [0,%d)", errs.ErrInvalidDictionary, localWordID, len(lx.params))
	}
	return nil
}

// GetLeftID, GetRightID, GetCost return a word's connection parameters.
func (lx *Lexicon) GetLeftID(localWordID int32) (int16, error) {
	if err := lx.checkID(localWordID); err != nil {
		return 0, err
	}
	return lx.params[localWordID].LeftID, nil
}

func (lx *Lexicon) GetRightID(localWordID int32) (int16, error) {
	if err := lx.checkID(localWordID); err != nil {
		return 0, err
	}
	return lx.params[localWordID].RightID, nil
}

func (lx *Lexicon) GetCost(localWordID int32) (int16, error) {
	if err := lx.checkID(localWordID); err != nil {
		return 0, err
	}
	return lx.params[localWordID].Cost, nil
}

// GetWordInfo decodes and returns the word-info record for localWordID.
func (lx *Lexicon) GetWordInfo(localWordID int32) (WordInfo, error) {
	if err := lx.checkID(localWordID); err != nil {
		return WordInfo{}, err
	}
	if int(localWordID) >= len(lx.wordInfoOffsets) {
		return WordInfo{}, fmt.Errorf("%w: local word id %d has no word-info offset", errs.ErrInvalidDictionary, localWordID)
	}
	return parseWordInfo(lx.blob, lx.wordInfoOffsets[localWordID], lx.hasSynonymGIDs)
}

// parseWordIDTable reads the word-id table section from spec.md §6: an
// int32 byte_size, then that many bytes of count-prefixed entry streams,
// then pads to 4.
func parseWordIDTable(c *cursor) ([]byte, error) {
	byteSize, err := c.i32()
	if err != nil {
		return nil, err
	}
	if byteSize < 0 {
		return nil, fmt.Errorf("%w: negative word-id table size %d", errs.ErrInvalidDictionary, byteSize)
	}
	entries, err := c.bytes(int64(byteSize))
	if err != nil {
		return nil, fmt.Errorf("%w: word-id table: %v", errs.ErrInvalidDictionary, err)
	}
	c.align4()
	return entries, nil
}
