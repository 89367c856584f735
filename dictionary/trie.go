package dictionary

import (
	"fmt"

	"github.com/hayashi-nlp/sudachigo/internal/errs"
)

// Trie is a double-array trie over UTF-8 byte keys (spec.md §4.2). Keys
// are compared byte-by-byte, not as UTF-8 code points.
type Trie struct {
	units []int32
}

const (
	unitHasLeafBit  = 1 << 8
	unitLabelMask   = 0xFF
	unitShiftFlag   = 1 << 9
	unitOffsetShift = 10
	unitValueMask   = 0x7FFFFFFF
)

// Units returns the trie's raw double-array units, in the on-disk order
// NewTrie expects them back in. Exported so a caller assembling a
// dictionary blob (e.g. to write one for testing) can round-trip a
// TrieBuilder's output without reaching into this package's internals.
func (t *Trie) Units() []int32 { return t.units }

func unitHasLeaf(u int32) bool { return u&unitHasLeafBit != 0 }
func unitLabel(u int32) byte   { return byte(u & unitLabelMask) }
func unitValue(u int32) int32  { return u & unitValueMask }

func unitOffset(u int32) int32 {
	base := u >> unitOffsetShift
	if u&unitShiftFlag != 0 {
		return base << 8
	}
	return base
}

func makeUnit(label byte, offset int32, hasLeaf bool) int32 {
	// Prefer the unshifted form when offset fits in 22 bits; otherwise use
	// the >>8 compacted form (requires offset to be a multiple of 256).
	var shifted, flag int32
	if offset < (1 << 22) {
		shifted = offset
	} else {
		flag = unitShiftFlag
		shifted = offset >> 8
	}
	u := (shifted << unitOffsetShift) | flag | int32(label)
	if hasLeaf {
		u |= unitHasLeafBit
	}
	return u
}

// NewTrie wraps a raw double-array unit slice (as read from the dictionary
// blob's trie section, spec.md §6).
func NewTrie(units []int32) *Trie {
	return &Trie{units: units}
}

func (t *Trie) at(pos int32) (int32, bool) {
	if pos < 0 || int(pos) >= len(t.units) {
		return 0, false
	}
	return t.units[pos], true
}

// ExactMatch looks up key in full. On success it returns the leaf value
// and len(key); on failure it returns (0, false).
func (t *Trie) ExactMatch(key []byte) (value int32, ok bool) {
	var nodePos int32 = 0
	for _, b := range key {
		u, inBounds := t.at(nodePos)
		if !inBounds {
			return 0, false
		}
		offset := unitOffset(u)
		next := nodePos ^ offset ^ int32(b)
		nu, inBounds := t.at(next)
		if !inBounds || unitLabel(nu) != b {
			return 0, false
		}
		nodePos = next
	}
	u, inBounds := t.at(nodePos)
	if !inBounds || !unitHasLeaf(u) {
		return 0, false
	}
	return unitValue(u), true
}

// PrefixMatch is one (value, matchedEndOffset) pair from CommonPrefixSearch.
type PrefixMatch struct {
	Value           int32
	MatchedEndOffset int
}

// CommonPrefixSearch walks key starting at fromOffset, yielding one
// PrefixMatch for every prefix of key[fromOffset:] that is itself a
// complete trie key (spec.md §4.2). Results are ordered shortest match
// first, matching the order bytes are consumed.
func (t *Trie) CommonPrefixSearch(key []byte, fromOffset int) []PrefixMatch {
	var results []PrefixMatch
	var nodePos int32 = 0
	for i := fromOffset; i < len(key); i++ {
		b := key[i]
		u, inBounds := t.at(nodePos)
		if !inBounds {
			break
		}
		offset := unitOffset(u)
		next := nodePos ^ offset ^ int32(b)
		nu, inBounds := t.at(next)
		if !inBounds || unitLabel(nu) != b {
			break
		}
		nodePos = next
		if unitHasLeaf(nu) {
			results = append(results, PrefixMatch{Value: unitValue(nu), MatchedEndOffset: i + 1})
		}
	}
	return results
}

// parseTrie reads the trie section from spec.md §6: an int32 size (in
// int32 units) followed by that many int32 units, then pads to 4.
func parseTrie(c *cursor) (*Trie, error) {
	size, err := c.i32()
	if err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: negative trie size %d", errs.ErrInvalidDictionary, size)
	}
	units := make([]int32, size)
	for i := range units {
		v, err := c.i32()
		if err != nil {
			return nil, fmt.Errorf("%w: trie unit %d: %v", errs.ErrInvalidDictionary, i, err)
		}
		units[i] = v
	}
	c.align4()
	return NewTrie(units), nil
}

// --- builder (write side; spec.md §4.2 specifies it "only for
// completeness" — the algorithm below is a straightforward
// correctness-first construction, not the block-cycling/extras-ring
// allocator the format's comment describes, since only the read side and
// wire format are load-bearing for this module). ---

// TrieBuilder constructs a Trie from a set of (key, value) pairs. Keys
// must be inserted in ascending lexicographic byte order, matching how
// the real builder (out of scope, spec.md §1) would present sorted input.
type TrieBuilder struct {
	units []int32
}

// NewTrieBuilder returns an empty builder.
func NewTrieBuilder() *TrieBuilder {
	b := &TrieBuilder{units: make([]int32, 1)}
	return b
}

func (b *TrieBuilder) ensure(pos int32) {
	for int32(len(b.units)) <= pos {
		b.units = append(b.units, 0)
	}
}

// findFreeOffset returns the smallest offset >= 1 such that, for every
// byte in labels, (nodePos ^ offset ^ byte) is either unused (unit == 0
// and not the root) or would not collide with an existing, differently
// labeled unit.
func (b *TrieBuilder) findFreeOffset(nodePos int32, labels []byte) int32 {
	for offset := int32(1); ; offset++ {
		ok := true
		for _, lbl := range labels {
			next := nodePos ^ offset ^ int32(lbl)
			if next < int32(len(b.units)) && b.units[next] != 0 {
				ok = false
				break
			}
		}
		if ok {
			return offset
		}
	}
}

// Insert adds one key/value pair. Values must fit in 31 bits (spec.md
// §4.2's value = unit & 0x7FFFFFFF).
func (b *TrieBuilder) Insert(key []byte, value int32) error {
	if value < 0 || value > unitValueMask {
		return fmt.Errorf("trie builder: value %d out of range", value)
	}
	var nodePos int32 = 0
	for _, lbl := range key {
		u := b.units[nodePos]
		offset := unitOffset(u)
		if offset == 0 {
			offset = b.findFreeOffset(nodePos, []byte{lbl})
			b.units[nodePos] = makeUnit(unitLabel(u), offset, unitHasLeaf(u))
		}
		next := nodePos ^ offset ^ int32(lbl)
		b.ensure(next)
		if b.units[next] == 0 {
			b.units[next] = makeUnit(lbl, 0, false)
		} else if unitLabel(b.units[next]) != lbl {
			// Collision: relocate this node's children to a new offset
			// that accommodates the existing label set plus the new one.
			existingLabels := b.childLabels(nodePos, offset)
			newOffset := b.findFreeOffset(nodePos, append(existingLabels, lbl))
			b.relocate(nodePos, offset, newOffset, existingLabels)
			b.units[nodePos] = makeUnit(unitLabel(b.units[nodePos]), newOffset, unitHasLeaf(b.units[nodePos]))
			next = nodePos ^ newOffset ^ int32(lbl)
			b.ensure(next)
			b.units[next] = makeUnit(lbl, 0, false)
		}
		nodePos = next
	}
	u := b.units[nodePos]
	b.units[nodePos] = makeUnit(unitLabel(u), unitOffset(u), true) | value
	return nil
}

func (b *TrieBuilder) childLabels(nodePos, offset int32) []byte {
	var labels []byte
	for lbl := 0; lbl < 256; lbl++ {
		next := nodePos ^ offset ^ int32(lbl)
		if next >= 0 && int(next) < len(b.units) && b.units[next] != 0 && unitLabel(b.units[next]) == byte(lbl) {
			// Heuristic membership check; good enough for the
			// correctness-first builder used in tests.
			labels = append(labels, byte(lbl))
		}
	}
	return labels
}

func (b *TrieBuilder) relocate(nodePos, oldOffset, newOffset int32, labels []byte) {
	type saved struct {
		unit int32
	}
	old := make(map[byte]int32)
	for _, lbl := range labels {
		oldPos := nodePos ^ oldOffset ^ int32(lbl)
		old[lbl] = b.units[oldPos]
		b.units[oldPos] = 0
	}
	for lbl, u := range old {
		newPos := nodePos ^ newOffset ^ int32(lbl)
		b.ensure(newPos)
		b.units[newPos] = u
	}
}

// Build finalizes the builder into an immutable Trie.
func (b *TrieBuilder) Build() *Trie {
	out := make([]int32, len(b.units))
	copy(out, b.units)
	return NewTrie(out)
}
