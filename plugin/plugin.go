// Package plugin defines the four extension-point contracts from
// spec.md §4.9: input-text rewriting, out-of-vocabulary word production,
// best-path rewriting, and connection-cost editing. The tokenizer package
// holds ordered slices of these interfaces and calls them at the stages
// the table in §4.9 names; this package owns only the contracts, not any
// built-in implementation (those live in plugin/oov, plugin/rewrite and
// plugin/connection).
package plugin

import (
	"fmt"

	"github.com/hayashi-nlp/sudachigo/dictionary"
)

// InputTextBuilder is the subset of inputtext.Builder an InputTextPlugin
// may mutate through (spec.md §4.9's "Mutate modified text via
// builder.replace"). Kept as an interface here so this package never
// imports inputtext, which in turn imports dictionary.
type InputTextBuilder interface {
	Replace(begin, end int, newText string) error
}

// InputTextPlugin rewrites the modified text before the lattice is built
// (spec.md §4.9, stage "After InputText construction").
type InputTextPlugin interface {
	Rewrite(b InputTextBuilder) error
}

// InputTextView is the read-only text surface OOV and path-rewrite
// plugins query against. inputtext.InputText satisfies it structurally.
type InputTextView interface {
	Bytes() []byte
	GetSubstring(beginByte, endByte int) string
	CanBow(byteIndex int) bool
	GetCharCategoryTypes(beginByte, endByte int) dictionary.CategoryType
	GetCharCategoryContinuousLength(byteIndex int) int
	Len() int
}

// PathNode is a best-path entry as seen by path-rewrite plugins: the
// tokenizer resolves each lattice node's WordInfo before handing the path
// over, so plugins never need lexicon access of their own (spec.md §4.9).
type PathNode struct {
	Begin, End      int
	LeftID, RightID int16
	Cost            int16
	WordID          dictionary.WordID
	DictionaryID    int
	Info            dictionary.WordInfo
}

// IsOOV reports whether this node came from an OovProvider rather than a
// lexicon lookup (spec.md §3: dictionaryId == -1 marks OOV).
func (n PathNode) IsOOV() bool { return n.DictionaryID == dictionary.OOVDictionaryID }

// OovProvider produces candidate nodes for a lattice boundary that no
// lexicon covered (spec.md §4.9, stage "Per-boundary during lattice
// build"). otherWordsMask is the wordMask accumulated so far at this
// boundary (bit i set means a candidate of byte-length i already
// exists; lengths of 63 and more share bit 63); implementations append their own candidates to *out.
type OovProvider interface {
	GetOOV(input InputTextView, offset int, otherWordsMask uint64, out *[]PathNode) error
}

// PathRewritePlugin edits the best path after Viterbi, in place (spec.md
// §4.9, stage "After best-path"). Implementations read and replace the
// slice pointed to by path; "lattice.createNode()" from the spec's
// pseudocode is just constructing a PathNode literal and splicing it in.
type PathRewritePlugin interface {
	Rewrite(input InputTextView, path *[]PathNode) error
}

// EditConnectionCostPlugin mutates the connection matrix once, at
// dictionary-load time (spec.md §4.9, stage "Dictionary load").
type EditConnectionCostPlugin interface {
	Edit(g *dictionary.Grammar) error
}

// SplitMode selects how much a best-path node is broken into finer units
// when materializing morphemes (spec.md §3's SplitMode entity). Defined
// here, rather than in package tokenizer, so a PathRewritePlugin can
// implement SplitModeValidator without tokenizer depending on plugin and
// vice versa.
type SplitMode int

const (
	// SplitModeC is longest/lattice-best: no further splitting.
	SplitModeC SplitMode = iota
	// SplitModeB is the medium split.
	SplitModeB
	// SplitModeA is the shortest split.
	SplitModeA
)

func (m SplitMode) String() string {
	switch m {
	case SplitModeA:
		return "A"
	case SplitModeB:
		return "B"
	case SplitModeC:
		return "C"
	default:
		return fmt.Sprintf("SplitMode(%d)", int(m))
	}
}

// SplitModeValidator is an optional interface a PathRewritePlugin may
// implement to reject certain split modes (spec.md §4.6 step 3).
type SplitModeValidator interface {
	ValidateSplitMode(mode SplitMode) error
}
