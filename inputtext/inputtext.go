package inputtext

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/hayashi-nlp/sudachigo/dictionary"
)

// alphaLikeMask groups the category types whose adjacent repetition
// should prevent a mid-run begin-of-word boundary (spec.md §4.4 step 7).
const alphaLikeMask = dictionary.CategoryAlpha | dictionary.CategoryGreek | dictionary.CategoryCyrillic

// InputText is the immutable, per-call text model built from a Builder
// (spec.md §3's InputText entity). All slices are frozen; no method
// mutates them.
type InputText struct {
	original []uint16
	modified []uint16
	bytes    []byte

	byteToModified []int // len(bytes)+1
	byteToOriginal []int // len(bytes)+1

	modifiedToOriginal []int // len(modified)+1

	charCategories              []dictionary.CategoryType // len(modified)
	charCategoryContinuousBytes []int                      // len(bytes)
	canBowList                  []bool                     // len(modified)
}

// Bytes returns the modified text encoded as UTF-8.
func (t *InputText) Bytes() []byte { return t.bytes }

// ModifiedString returns the full modified text as a Go string.
func (t *InputText) ModifiedString() string { return string(t.bytes) }

// OriginalString returns the original, unmodified text.
func (t *InputText) OriginalString() string { return string(utf16.Decode(t.original)) }

func (t *InputText) isCharAlignment(byteIndex int) bool {
	if byteIndex < 0 || byteIndex > len(t.bytes) {
		return false
	}
	if byteIndex == len(t.bytes) {
		return true
	}
	return t.bytes[byteIndex]&0xC0 != 0x80
}

// CanBow reports whether byteIndex may begin a word: it must land on a
// UTF-8 character boundary, and the modified char there must itself be
// eligible (spec.md §4.4's canBow query).
func (t *InputText) CanBow(byteIndex int) bool {
	if byteIndex < 0 || byteIndex >= len(t.byteToModified) {
		return false
	}
	if !t.isCharAlignment(byteIndex) {
		return false
	}
	return t.canBowList[t.byteToModified[byteIndex]]
}

// GetSubstring returns the modified text's byte range [beginByte,endByte)
// decoded back to a string.
func (t *InputText) GetSubstring(beginByte, endByte int) string {
	beginMod := t.byteToModified[beginByte]
	endMod := t.byteToModified[endByte]
	return string(utf16.Decode(t.modified[beginMod:endMod]))
}

// GetCharCategoryTypes intersects the category bitsets of every modified
// char spanned by [beginByte,endByte). If that span exceeds the
// continuous-category run starting at beginByte, it returns the empty
// bitset (spec.md §4.4's getCharCategoryTypes query).
func (t *InputText) GetCharCategoryTypes(beginByte, endByte int) dictionary.CategoryType {
	if beginByte < 0 || endByte > len(t.charCategoryContinuousBytes) || beginByte >= endByte {
		return 0
	}
	if endByte-beginByte > t.charCategoryContinuousBytes[beginByte] {
		return 0
	}
	mask := t.charCategories[t.byteToModified[beginByte]]
	for i := beginByte + 1; i < endByte; i++ {
		mask &= t.charCategories[t.byteToModified[i]]
	}
	return mask
}

// GetCharCategoryContinuousLength returns the number of bytes from
// byteIndex that share at least one category bit (the raw value behind
// GetCharCategoryTypes's range check).
func (t *InputText) GetCharCategoryContinuousLength(byteIndex int) int {
	if byteIndex < 0 || byteIndex >= len(t.charCategoryContinuousBytes) {
		return 0
	}
	return t.charCategoryContinuousBytes[byteIndex]
}

// GetOriginalIndex returns the original-text UTF-16 char index byteIndex
// maps back to.
func (t *InputText) GetOriginalIndex(byteIndex int) int {
	return t.byteToOriginal[byteIndex]
}

// GetOriginalSubstring returns the original text spanning the original
// char indices that [beginByte,endByte) maps to.
func (t *InputText) GetOriginalSubstring(beginByte, endByte int) string {
	beginOrig := t.byteToOriginal[beginByte]
	endOrig := t.byteToOriginal[endByte]
	return string(utf16.Decode(t.original[beginOrig:endOrig]))
}

// Len returns the length of the modified text in bytes.
func (t *InputText) Len() int { return len(t.bytes) }

// encodeUTF8WithOffsetMaps implements spec.md §4.4 steps 3-4: it encodes
// each decoded rune to UTF-8, and for every byte of that encoding records
// the owning rune's lead unit index (modified-char coordinate) and the
// original-char index that unit maps to.
func encodeUTF8WithOffsetMaps(runes []rune, startUnit []int, modifiedToOriginal []int) (bytesBuf []byte, byteToModified, byteToOriginal []int) {
	var encoded [utf8.UTFMax]byte
	for idx, r := range runes {
		n := utf8.EncodeRune(encoded[:], r)
		unitIdx := startUnit[idx]
		origIdx := modifiedToOriginal[unitIdx]
		for j := 0; j < n; j++ {
			byteToModified = append(byteToModified, unitIdx)
			byteToOriginal = append(byteToOriginal, origIdx)
		}
		bytesBuf = append(bytesBuf, encoded[:n]...)
	}
	lastModified := len(modifiedToOriginal) - 1
	lastOriginal := modifiedToOriginal[lastModified]
	byteToModified = append(byteToModified, lastModified)
	byteToOriginal = append(byteToOriginal, lastOriginal)
	return bytesBuf, byteToModified, byteToOriginal
}

// computeCharCategories implements spec.md §4.4 step 5: every modified
// char gets the category bitset of its code point; a low-surrogate unit
// inherits its high surrogate's set rather than being looked up on its
// own (a lone low surrogate has no valid code point to classify).
func computeCharCategories(modified []uint16, startUnit []int, runes []rune, table *dictionary.CategoryTable) []dictionary.CategoryType {
	out := make([]dictionary.CategoryType, len(modified))
	for idx, r := range runes {
		mask := table.Get(r)
		unitIdx := startUnit[idx]
		out[unitIdx] = mask
		if unitIdx+1 < len(modified) && isLowSurrogateUnit(modified[unitIdx+1]) {
			out[unitIdx+1] = mask
		}
	}
	return out
}

// computeCanBow implements spec.md §4.4 step 7.
func computeCanBow(modified []uint16, categories []dictionary.CategoryType) []bool {
	out := make([]bool, len(modified))
	for i := range modified {
		switch {
		case i == 0:
			out[i] = true
		case isLowSurrogateUnit(modified[i]):
			out[i] = false
		case categories[i]&alphaLikeMask != 0:
			out[i] = categories[i-1]&alphaLikeMask == 0
		default:
			out[i] = true
		}
	}
	return out
}

// computeCharCategoryContinuousBytes implements spec.md §4.4 step 6 in a
// single backward pass: continuousBytes[i] is 1 plus continuousBytes[i+1]
// whenever byte i's char shares a category bit with every char in the run
// starting at i+1, and 1 otherwise.
func computeCharCategoryContinuousBytes(byteToModified []int, charCategories []dictionary.CategoryType) []int {
	n := len(byteToModified) - 1 // drop the boundary sentinel
	out := make([]int, n)
	if n == 0 {
		return out
	}
	runMask := make([]dictionary.CategoryType, n)
	out[n-1] = 1
	runMask[n-1] = charCategories[byteToModified[n-1]]
	for i := n - 2; i >= 0; i-- {
		cur := charCategories[byteToModified[i]]
		combined := cur & runMask[i+1]
		if combined != 0 {
			runMask[i] = combined
			out[i] = out[i+1] + 1
		} else {
			runMask[i] = cur
			out[i] = 1
		}
	}
	return out
}
