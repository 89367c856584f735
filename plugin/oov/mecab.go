package oov

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hayashi-nlp/sudachigo/dictionary"
	"github.com/hayashi-nlp/sudachigo/plugin"
)

// categoryRule is one char.def "CATEGORY INVOKE GROUP LENGTH" row: does
// this category ever trigger unknown-word generation, should the whole
// continuous run become one node, and what is the fixed-length cap for
// the 1..LENGTH node family (spec.md §4.6's MeCabOov contract).
type categoryRule struct {
	invoke bool
	group  bool
	length int
}

// unkEntry is one unk.def row: the connection parameters and POS id this
// category's generated nodes carry.
type unkEntry struct {
	leftID, rightID int16
	cost            int16
	posID           int16
}

// MeCabOov reproduces MeCab's char.def/unk.def-driven unknown-word
// generation (spec.md §4.6): for every category bit the boundary's
// leading character carries, it may emit a family of fixed-length nodes
// and/or a single node spanning the whole same-category run.
type MeCabOov struct {
	rules   map[dictionary.CategoryType]categoryRule
	entries map[dictionary.CategoryType][]unkEntry
}

var _ plugin.OovProvider = (*MeCabOov)(nil)

// NewMeCabOov returns an empty provider; load char.def's category-config
// section and unk.def before first use.
func NewMeCabOov() *MeCabOov {
	return &MeCabOov{
		rules:   make(map[dictionary.CategoryType]categoryRule),
		entries: make(map[dictionary.CategoryType][]unkEntry),
	}
}

// LoadCategoryRules parses char.def's leading "CATEGORY INVOKE GROUP
// LENGTH" table (the code-point-range section of the same file belongs
// to dictionary.CategoryTable.LoadCategoryDefinitions instead; the two
// sections are conventionally the same file but are parsed separately
// here since they serve different packages).
func (p *MeCabOov) LoadCategoryRules(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		ct, ok := categoryTypeNamed(fields[0])
		if !ok {
			continue // not a category-rule line; belongs to the code-mapping section
		}
		if len(fields) != 4 {
			return fmt.Errorf("char.def category rule line %d: want 4 fields, got %d", lineNo, len(fields))
		}
		invoke, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("char.def category rule line %d: invoke: %w", lineNo, err)
		}
		group, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("char.def category rule line %d: group: %w", lineNo, err)
		}
		length, err := strconv.Atoi(fields[3])
		if err != nil {
			return fmt.Errorf("char.def category rule line %d: length: %w", lineNo, err)
		}
		p.rules[ct] = categoryRule{invoke: invoke != 0, group: group != 0, length: length}
	}
	return scanner.Err()
}

// LoadUnkEntries parses a simplified unk.def: one entry per line,
// "category,leftId,rightId,cost,posId". MeCab's own unk.def instead
// carries full POS-string features per row; this module's word-info
// records already reference POS by numeric id (spec.md §3), so entries
// here name the id directly rather than re-deriving it from strings.
func (p *MeCabOov) LoadUnkEntries(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 5 {
			return fmt.Errorf("unk.def line %d: want 5 comma-separated fields, got %d", lineNo, len(fields))
		}
		ct, ok := categoryTypeNamed(strings.TrimSpace(fields[0]))
		if !ok {
			return fmt.Errorf("unk.def line %d: unknown category %q", lineNo, fields[0])
		}
		left, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 16)
		if err != nil {
			return fmt.Errorf("unk.def line %d: leftId: %w", lineNo, err)
		}
		right, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 16)
		if err != nil {
			return fmt.Errorf("unk.def line %d: rightId: %w", lineNo, err)
		}
		cost, err := strconv.ParseInt(strings.TrimSpace(fields[3]), 10, 16)
		if err != nil {
			return fmt.Errorf("unk.def line %d: cost: %w", lineNo, err)
		}
		pos, err := strconv.ParseInt(strings.TrimSpace(fields[4]), 10, 16)
		if err != nil {
			return fmt.Errorf("unk.def line %d: posId: %w", lineNo, err)
		}
		p.entries[ct] = append(p.entries[ct], unkEntry{
			leftID: int16(left), rightID: int16(right), cost: int16(cost), posID: int16(pos),
		})
	}
	return scanner.Err()
}

// GetOOV implements plugin.OovProvider.
func (p *MeCabOov) GetOOV(input plugin.InputTextView, offset int, otherWordsMask uint64, out *[]plugin.PathNode) error {
	runLen := input.GetCharCategoryContinuousLength(offset)
	if runLen <= 0 {
		return nil
	}
	categories := input.GetCharCategoryTypes(offset, offset+firstCharLen(input, offset))

	for ct := dictionary.CategoryType(1); ct != 0; ct <<= 1 {
		if categories&ct == 0 {
			continue
		}
		rule, ok := p.rules[ct]
		if !ok || !rule.invoke {
			continue
		}
		entries := p.entries[ct]
		if len(entries) == 0 {
			continue
		}
		if rule.group {
			p.emit(input, offset, offset+runLen, entries, out)
		}
		if rule.length > 0 {
			for end := nextCharBoundary(input, offset, offset); end <= offset+runLen && end-offset <= byteCapFor(input, offset, rule.length); end = nextCharBoundary(input, offset, end) {
				if end == offset {
					break
				}
				p.emit(input, offset, end, entries, out)
			}
		}
	}
	return nil
}

func (p *MeCabOov) emit(input plugin.InputTextView, begin, end int, entries []unkEntry, out *[]plugin.PathNode) {
	surface := input.GetSubstring(begin, end)
	for _, e := range entries {
		*out = append(*out, plugin.PathNode{
			Begin: begin, End: end,
			LeftID: e.leftID, RightID: e.rightID, Cost: e.cost,
			DictionaryID: dictionary.OOVDictionaryID,
			Info: dictionary.WordInfo{
				Surface:              surface,
				HeadwordByteLength:   end - begin,
				POSID:                e.posID,
				DictionaryFormWordID: -1,
			},
		})
	}
}

func categoryTypeNamed(s string) (dictionary.CategoryType, bool) {
	switch strings.ToUpper(s) {
	case "DEFAULT":
		return dictionary.CategoryDefault, true
	case "SPACE":
		return dictionary.CategorySpace, true
	case "KANJI":
		return dictionary.CategoryKanji, true
	case "SYMBOL":
		return dictionary.CategorySymbol, true
	case "NUMERIC":
		return dictionary.CategoryNumeric, true
	case "ALPHA":
		return dictionary.CategoryAlpha, true
	case "HIRAGANA":
		return dictionary.CategoryHiragana, true
	case "KATAKANA":
		return dictionary.CategoryKatakana, true
	case "KANJINUMERIC":
		return dictionary.CategoryKanjiNumeric, true
	case "GREEK":
		return dictionary.CategoryGreek, true
	case "CYRILLIC":
		return dictionary.CategoryCyrillic, true
	case "USER1":
		return dictionary.CategoryUser1, true
	case "USER2":
		return dictionary.CategoryUser2, true
	case "USER3":
		return dictionary.CategoryUser3, true
	case "USER4":
		return dictionary.CategoryUser4, true
	case "NOOOVBOW":
		return dictionary.CategoryNoOOVBoW, true
	default:
		return 0, false
	}
}

// firstCharLen returns the byte length of the single rune at offset.
func firstCharLen(input plugin.InputTextView, offset int) int {
	return candidateLength(input, offset)
}

// nextCharBoundary advances from cur by exactly one rune; begin is not
// used. It is O(1) per call since each call only decodes the rune at cur.
func nextCharBoundary(input plugin.InputTextView, begin, cur int) int {
	n := candidateLength(input, cur)
	if n <= 0 {
		return cur + 1 // force loop termination rather than spin on malformed input
	}
	return cur + n
}

// byteCapFor converts a char-count length limit into a byte-count limit
// by walking `limit` runes forward from offset.
func byteCapFor(input plugin.InputTextView, offset, limit int) int {
	end := offset
	for i := 0; i < limit; i++ {
		n := candidateLength(input, end)
		if n <= 0 {
			break
		}
		end += n
	}
	return end - offset
}
