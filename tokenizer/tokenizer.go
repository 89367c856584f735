// Package tokenizer implements the driver from spec.md §4.6: it wires
// together InputText construction (package inputtext), lattice
// construction and Viterbi search (package lattice), and the plugin
// contracts (package plugin) into the single `tokenize` operation, plus
// batch and streaming-friendly variants.
package tokenizer

import (
	"fmt"
	"unicode/utf8"

	"github.com/hayashi-nlp/sudachigo/dictionary"
	"github.com/hayashi-nlp/sudachigo/inputtext"
	"github.com/hayashi-nlp/sudachigo/internal/errs"
	"github.com/hayashi-nlp/sudachigo/lattice"
	"github.com/hayashi-nlp/sudachigo/plugin"
)

// SplitMode re-exports plugin.SplitMode so callers don't need to import
// package plugin just to name a split mode.
type SplitMode = plugin.SplitMode

const (
	SplitModeC = plugin.SplitModeC
	SplitModeB = plugin.SplitModeB
	SplitModeA = plugin.SplitModeA
)

// Tokenizer is a single-threaded, cooperative analyzer instance (spec.md
// §5): it owns one mutable Lattice and is not safe for concurrent
// tokenize calls. Many Tokenizers may share one immutable Dictionary;
// instantiate one Tokenizer per worker for parallel throughput.
type Tokenizer struct {
	dict *dictionary.Dictionary
	lat  *lattice.Lattice

	inputTextPlugins   []plugin.InputTextPlugin
	oovProviders       []plugin.OovProvider
	defaultOovProvider plugin.OovProvider
	pathRewritePlugins []plugin.PathRewritePlugin

	oovInfos []dictionary.WordInfo // this call's OOV WordInfo table, indexed by WordID
}

// New returns a Tokenizer bound to dict with no plugins registered.
func New(dict *dictionary.Dictionary) *Tokenizer {
	return &Tokenizer{
		dict: dict,
		lat:  lattice.New(dict.Grammar),
	}
}

// AddInputTextPlugin appends an input-text rewrite plugin, run in
// registration order (spec.md §4.9/§5).
func (t *Tokenizer) AddInputTextPlugin(p plugin.InputTextPlugin) {
	t.inputTextPlugins = append(t.inputTextPlugins, p)
}

// AddOovProvider appends an OOV provider, run in registration order at
// every reachable boundary that isn't NOOOVBOW-flagged.
func (t *Tokenizer) AddOovProvider(p plugin.OovProvider) {
	t.oovProviders = append(t.oovProviders, p)
}

// SetDefaultOovProvider installs the provider run as a last resort when
// every other source left a boundary with zero candidates (spec.md §4.5's
// build procedure, §6's config note "last entry is the default
// provider").
func (t *Tokenizer) SetDefaultOovProvider(p plugin.OovProvider) {
	t.defaultOovProvider = p
}

// AddPathRewritePlugin appends a best-path rewrite plugin, run in
// registration order after Viterbi (spec.md §4.9/§5).
func (t *Tokenizer) AddPathRewritePlugin(p plugin.PathRewritePlugin) {
	t.pathRewritePlugins = append(t.pathRewritePlugins, p)
}

// Tokenize implements spec.md §4.6's 9-step `tokenize` flow.
func (t *Tokenizer) Tokenize(mode SplitMode, text string) ([]*Morpheme, error) {
	// Step 1.
	if text == "" {
		return nil, nil
	}

	// Step 2.
	input, err := t.buildInputText(text)
	if err != nil {
		return nil, err
	}

	// Step 3.
	for _, p := range t.pathRewritePlugins {
		if v, ok := p.(plugin.SplitModeValidator); ok {
			if err := v.ValidateSplitMode(mode); err != nil {
				return nil, fmt.Errorf("%w: %v", errs.ErrConfigInvariant, err)
			}
		}
	}

	// Step 4.
	if err := t.buildLattice(input); err != nil {
		return nil, err
	}

	// Step 5.
	bestPath, err := t.lat.GetBestPath()
	if err != nil {
		return nil, err
	}
	path, err := t.resolvePath(bestPath)
	if err != nil {
		return nil, err
	}

	// Step 6.
	for _, p := range t.pathRewritePlugins {
		if err := p.Rewrite(input, &path); err != nil {
			return nil, fmt.Errorf("path rewrite: %w", err)
		}
	}

	// Step 7 — the lattice arena is dropped here; Resize on the next call
	// re-homes it in place, which is this package's equivalent of
	// "clear (keep capacity)" since Go slices already reuse backing
	// storage across append calls bounded by cap.

	// Step 8.
	if mode != SplitModeC {
		path = expandSplits(path, mode, t.dict.Lexicon)
	}

	// Step 9.
	morphemes := make([]*Morpheme, len(path))
	for i, n := range path {
		morphemes[i] = newMorpheme(input, t.dict.Lexicon, t.dict.Grammar, n)
	}
	return morphemes, nil
}

// buildInputText runs every registered InputTextPlugin over a fresh
// Builder, then freezes it (spec.md §4.4 step 2, §4.6 step 2).
func (t *Tokenizer) buildInputText(text string) (*inputtext.InputText, error) {
	b := inputtext.NewBuilder(text)
	for _, p := range t.inputTextPlugins {
		if err := p.Rewrite(b); err != nil {
			return nil, fmt.Errorf("input text rewrite: %w", err)
		}
	}
	return b.Build(t.dict.Grammar.Categories())
}

// resolvePath converts lattice arena indices into plugin.PathNode values
// with their WordInfo resolved, so downstream rewrite plugins never need
// lexicon or OOV-table access of their own.
func (t *Tokenizer) resolvePath(indices []int) ([]plugin.PathNode, error) {
	out := make([]plugin.PathNode, len(indices))
	for i, idx := range indices {
		n := t.lat.Node(idx)
		info, err := t.wordInfo(n.WordID, n.DictionaryID)
		if err != nil {
			return nil, err
		}
		out[i] = plugin.PathNode{
			Begin: n.Begin, End: n.End,
			LeftID: n.LeftID, RightID: n.RightID, Cost: n.Cost,
			WordID: n.WordID, DictionaryID: n.DictionaryID,
			Info: info,
		}
	}
	return out, nil
}

// wordInfo resolves a lattice node's WordInfo: a lexicon-backed node
// delegates to the Dictionary's LexiconSet; an OOV node (dictionaryID ==
// OOVDictionaryID) indexes this call's synthesized OOV table instead
// (spec.md §3: dictionaryId == -1 marks OOV).
func (t *Tokenizer) wordInfo(id dictionary.WordID, dictionaryID int) (dictionary.WordInfo, error) {
	if dictionaryID == dictionary.OOVDictionaryID {
		idx := int(id)
		if idx < 0 || idx >= len(t.oovInfos) {
			return dictionary.WordInfo{}, fmt.Errorf("%w: oov word id %d out of range", errs.ErrInvalidInput, idx)
		}
		return t.oovInfos[idx], nil
	}
	return t.dict.Lexicon.GetWordInfo(id)
}

// firstRuneLen returns the byte length of the UTF-8 rune starting at i in
// b, or 0 if i is out of range.
func firstRuneLen(b []byte, i int) int {
	if i < 0 || i >= len(b) {
		return 0
	}
	_, n := utf8.DecodeRune(b[i:])
	return n
}
