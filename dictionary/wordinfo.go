package dictionary

import "fmt"

// WordParameters is the per-word (leftId, rightId, cost) triple from
// spec.md §6's word-parameters section.
type WordParameters struct {
	LeftID, RightID int16
	Cost            int16
}

// WordInfo is the per-entry record described in spec.md §3/§6.
type WordInfo struct {
	Surface           string
	HeadwordByteLength int
	POSID             int16
	normalizedForm    string // empty means "same as surface"; use NormalizedForm()
	DictionaryFormWordID int32 // -1 means "self"
	readingForm       string // empty means "same as surface"; use ReadingForm()
	AUnitSplit        []int32
	BUnitSplit        []int32
	WordStructure     []int32
	SynonymGroupIDs   []int32
}

// NormalizedForm returns the normalized form, defaulting to Surface when
// the stored value is empty (spec.md §3's invariant).
func (w WordInfo) NormalizedForm() string {
	if w.normalizedForm == "" {
		return w.Surface
	}
	return w.normalizedForm
}

// ReadingForm returns the reading form, defaulting to Surface when the
// stored value is empty.
func (w WordInfo) ReadingForm() string {
	if w.readingForm == "" {
		return w.Surface
	}
	return w.readingForm
}

// HasDictionaryForm reports whether this word's dictionary form is a
// different word (as opposed to itself).
func (w WordInfo) HasDictionaryForm() bool {
	return w.DictionaryFormWordID >= 0
}

// WithNormalizedForm returns a copy of w with its normalized form set.
// Used outside this package by plugins that synthesize a WordInfo for an
// OOV node (e.g. JoinNumeric's folded numeral) — normalizedForm itself
// stays unexported so every other caller goes through NormalizedForm()'s
// "empty means same as surface" fallback.
func (w WordInfo) WithNormalizedForm(s string) WordInfo {
	w.normalizedForm = s
	return w
}

// WithReadingForm returns a copy of w with its reading form set.
func (w WordInfo) WithReadingForm(s string) WordInfo {
	w.readingForm = s
	return w
}

// parseWordParameters reads the word-parameters section from spec.md §6:
// an int32 count, then count*(int16,int16,int16) rows. No padding
// follows (the next section, word-info offsets, is itself a run of
// 4-byte int32 values).
func parseWordParameters(c *cursor) ([]WordParameters, error) {
	count, err := c.i32()
	if err != nil {
		return nil, err
	}
	out := make([]WordParameters, count)
	for i := range out {
		l, err := c.i16()
		if err != nil {
			return nil, err
		}
		r, err := c.i16()
		if err != nil {
			return nil, err
		}
		cost, err := c.i16()
		if err != nil {
			return nil, err
		}
		out[i] = WordParameters{LeftID: l, RightID: r, Cost: cost}
	}
	return out, nil
}

// parseWordInfoOffsets reads the count*int32 absolute-offset table that
// precedes the word-info records (spec.md §6).
func parseWordInfoOffsets(c *cursor, count int) ([]int32, error) {
	out := make([]int32, count)
	for i := range out {
		v, err := c.i32()
		if err != nil {
			return nil, fmt.Errorf("word-info offset %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// parseWordInfo reads a single word-info record at the given absolute
// byte offset (spec.md §6), given whether this dictionary carries the
// trailing synonym-group-id block.
func parseWordInfo(buf []byte, offset int32, hasSynonymGIDs bool) (WordInfo, error) {
	c := newCursor(buf, int64(offset))

	surface, err := c.lengthPrefixedUTF16()
	if err != nil {
		return WordInfo{}, fmt.Errorf("word-info surface: %w", err)
	}
	headwordLen, err := c.u8()
	if err != nil {
		return WordInfo{}, err
	}
	headwordByteLength := int(headwordLen)
	if headwordLen&0x80 != 0 {
		hi, err := c.u8()
		if err != nil {
			return WordInfo{}, err
		}
		headwordByteLength = (int(headwordLen&0x7F) << 8) | int(hi)
	}
	posID, err := c.i16()
	if err != nil {
		return WordInfo{}, err
	}
	normalized, err := c.lengthPrefixedUTF16()
	if err != nil {
		return WordInfo{}, err
	}
	dictFormID, err := c.i32()
	if err != nil {
		return WordInfo{}, err
	}
	reading, err := c.lengthPrefixedUTF16()
	if err != nil {
		return WordInfo{}, err
	}
	aUnit, err := c.int32ArrayU8Count()
	if err != nil {
		return WordInfo{}, err
	}
	bUnit, err := c.int32ArrayU8Count()
	if err != nil {
		return WordInfo{}, err
	}
	structure, err := c.int32ArrayU8Count()
	if err != nil {
		return WordInfo{}, err
	}
	var synonyms []int32
	if hasSynonymGIDs {
		synonyms, err = c.int32ArrayU8Count()
		if err != nil {
			return WordInfo{}, err
		}
	}

	return WordInfo{
		Surface:              surface,
		HeadwordByteLength:   headwordByteLength,
		POSID:                posID,
		normalizedForm:       normalized,
		DictionaryFormWordID: dictFormID,
		readingForm:          reading,
		AUnitSplit:           aUnit,
		BUnitSplit:           bUnit,
		WordStructure:        structure,
		SynonymGroupIDs:      synonyms,
	}, nil
}
