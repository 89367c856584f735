// Package inputtext implements the per-call text model from spec.md §4.4:
// a Builder that plugins mutate via Replace, and an immutable InputText
// produced by Build, carrying the UTF-16/UTF-8/byte offset maps a
// tokenizer needs to report positions in original-text coordinates.
package inputtext

import (
	"fmt"
	"unicode/utf16"

	"github.com/hayashi-nlp/sudachigo/dictionary"
	"github.com/hayashi-nlp/sudachigo/internal/errs"
)

func isHighSurrogateUnit(u uint16) bool { return u >= 0xD800 && u <= 0xDBFF }
func isLowSurrogateUnit(u uint16) bool  { return u >= 0xDC00 && u <= 0xDFFF }

// Builder accumulates text mutations from InputTextPlugin.Rewrite calls
// before Build() freezes the result (spec.md §4.4 step 2). Like the
// mutate-then-freeze shape of a gob-decoded-once record, a Builder is
// write-only until Build is called, and an InputText is read-only after.
type Builder struct {
	original           []uint16
	modified           []uint16
	modifiedToOriginal []int // len(modified)+1; last entry is a boundary sentinel
}

// NewBuilder seeds a Builder with text's UTF-16 encoding. Surrogate pairs
// in the original text have their low-surrogate slot's modifiedToOriginal
// entry collapsed onto the high surrogate's original position (spec.md
// §4.4 step 1).
func NewBuilder(text string) *Builder {
	original := utf16.Encode([]rune(text))
	modified := make([]uint16, len(original))
	copy(modified, original)

	m2o := make([]int, len(original)+1)
	for i := range original {
		if i > 0 && isLowSurrogateUnit(original[i]) {
			m2o[i] = m2o[i-1]
		} else {
			m2o[i] = i
		}
	}
	m2o[len(original)] = len(original)

	return &Builder{original: original, modified: modified, modifiedToOriginal: m2o}
}

// Replace substitutes modified[begin:end] with newText's UTF-16 encoding.
// Every unit of the replacement maps back to the original-text index the
// end boundary mapped to before the replacement; the replaced units'
// mappings are discarded (spec.md §4.4 step 2).
func (b *Builder) Replace(begin, end int, newText string) error {
	if begin < 0 || end > len(b.modified) || begin >= end {
		return fmt.Errorf("%w: replace(%d,%d) invalid for modified length %d", errs.ErrInvalidInput, begin, end, len(b.modified))
	}

	origEndIdx := b.modifiedToOriginal[end]
	newUnits := utf16.Encode([]rune(newText))

	modified := make([]uint16, 0, len(b.modified)-(end-begin)+len(newUnits))
	modified = append(modified, b.modified[:begin]...)
	modified = append(modified, newUnits...)
	modified = append(modified, b.modified[end:]...)

	m2o := make([]int, 0, len(modified)+1)
	m2o = append(m2o, b.modifiedToOriginal[:begin]...)
	for range newUnits {
		m2o = append(m2o, origEndIdx)
	}
	m2o = append(m2o, b.modifiedToOriginal[end:]...)

	b.modified = modified
	b.modifiedToOriginal = m2o
	return nil
}

// ModifiedLength returns the current length, in UTF-16 units, of the
// builder's modified text. Plugins use this to compute valid Replace
// ranges without re-deriving it from the string they started with.
func (b *Builder) ModifiedLength() int { return len(b.modified) }

// Build runs steps 3-7 of spec.md §4.4's build pipeline and returns the
// frozen InputText. categories classifies each modified code point; a
// caller with no character-category definitions loaded may pass
// dictionary.NewCategoryTable(), which classifies everything as
// CategoryDefault.
func (b *Builder) Build(categories *dictionary.CategoryTable) (*InputText, error) {
	runes, startUnit, err := decodeUTF16WithUnitIndex(b.modified)
	if err != nil {
		return nil, err
	}

	bytesBuf, byteToModified, byteToOriginal := encodeUTF8WithOffsetMaps(runes, startUnit, b.modifiedToOriginal)

	charCategories := computeCharCategories(b.modified, startUnit, runes, categories)
	canBowList := computeCanBow(b.modified, charCategories)
	continuous := computeCharCategoryContinuousBytes(byteToModified, charCategories)

	return &InputText{
		original:                    b.original,
		modified:                    b.modified,
		bytes:                       bytesBuf,
		byteToModified:              byteToModified,
		byteToOriginal:              byteToOriginal,
		modifiedToOriginal:          b.modifiedToOriginal,
		charCategories:              charCategories,
		charCategoryContinuousBytes: continuous,
		canBowList:                  canBowList,
	}, nil
}

// decodeUTF16WithUnitIndex decodes units into runes, recording for each
// rune the unit index its encoding starts at. A lone (unpaired) surrogate
// is rejected (spec.md §7's ErrInvalidInput).
func decodeUTF16WithUnitIndex(units []uint16) (runes []rune, startUnit []int, err error) {
	i := 0
	for i < len(units) {
		u := units[i]
		switch {
		case isHighSurrogateUnit(u):
			if i+1 >= len(units) || !isLowSurrogateUnit(units[i+1]) {
				return nil, nil, fmt.Errorf("%w: lone high surrogate at unit %d", errs.ErrInvalidInput, i)
			}
			r := utf16.DecodeRune(rune(u), rune(units[i+1]))
			runes = append(runes, r)
			startUnit = append(startUnit, i)
			i += 2
		case isLowSurrogateUnit(u):
			return nil, nil, fmt.Errorf("%w: lone low surrogate at unit %d", errs.ErrInvalidInput, i)
		default:
			runes = append(runes, rune(u))
			startUnit = append(startUnit, i)
			i++
		}
	}
	return runes, startUnit, nil
}
