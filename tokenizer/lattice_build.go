package tokenizer

import (
	"fmt"

	"github.com/hayashi-nlp/sudachigo/dictionary"
	"github.com/hayashi-nlp/sudachigo/inputtext"
	"github.com/hayashi-nlp/sudachigo/internal/errs"
	"github.com/hayashi-nlp/sudachigo/plugin"
)

// maskBit returns the wordMask bit for a byte length, capping at bit 63
// the way spec.md §4.5 specifies ("len capped at 63").
func maskBit(length int) uint64 {
	if length > 63 {
		length = 63
	}
	if length <= 0 {
		return 0
	}
	return 1 << uint(length)
}

// buildLattice implements spec.md §4.5's build procedure: it resizes the
// lattice for the text, then at every reachable begin-of-word boundary
// inserts every lexicon-sourced candidate and, where needed, every
// OOV-provider candidate, before connecting the synthetic EOS node.
func (t *Tokenizer) buildLattice(input *inputtext.InputText) error {
	bytes := input.Bytes()
	byteLen := len(bytes)

	t.lat.Resize(byteLen)
	t.oovInfos = t.oovInfos[:0]

	for b := 0; b < byteLen; b++ {
		if !input.CanBow(b) {
			continue
		}
		if len(t.lat.EndList(b)) == 0 {
			continue // unreachable boundary
		}

		var wordMask uint64

		entries, err := t.dict.Lexicon.Lookup(bytes, b)
		if err != nil {
			return fmt.Errorf("lexicon lookup at byte %d: %w", b, err)
		}
		for _, e := range entries {
			end := b + e.ByteLength
			if end < byteLen && !input.CanBow(end) {
				continue
			}
			if err := t.insertLexiconNode(e.ID, b, end); err != nil {
				return err
			}
			wordMask |= maskBit(e.ByteLength)
		}

		if input.GetCharCategoryTypes(b, b+firstRuneLen(bytes, b))&dictionary.CategoryNoOOVBoW == 0 {
			for _, provider := range t.oovProviders {
				if err := t.runOovProvider(provider, input, b, &wordMask); err != nil {
					return err
				}
			}
		}

		if wordMask == 0 && t.defaultOovProvider != nil {
			if err := t.runOovProvider(t.defaultOovProvider, input, b, &wordMask); err != nil {
				return err
			}
		}

		if wordMask == 0 {
			return fmt.Errorf("%w: boundary at byte %d", errs.ErrNoCandidateAtBoundary, b)
		}
	}

	t.lat.ConnectEOS(byteLen)
	return nil
}

func (t *Tokenizer) insertLexiconNode(id dictionary.WordID, begin, end int) error {
	left, err := t.dict.Lexicon.GetLeftID(id)
	if err != nil {
		return err
	}
	right, err := t.dict.Lexicon.GetRightID(id)
	if err != nil {
		return err
	}
	cost, err := t.dict.Lexicon.GetCost(id)
	if err != nil {
		return err
	}
	t.lat.Insert(begin, end, left, right, cost, id, id.DictionaryIndex())
	return nil
}

// runOovProvider calls provider once at offset b, inserting every
// produced candidate into the lattice and folding its length into
// wordMask.
func (t *Tokenizer) runOovProvider(provider plugin.OovProvider, input *inputtext.InputText, b int, wordMask *uint64) error {
	var produced []plugin.PathNode
	if err := provider.GetOOV(input, b, *wordMask, &produced); err != nil {
		return fmt.Errorf("oov provider: %w", err)
	}
	for _, n := range produced {
		idx := len(t.oovInfos)
		t.oovInfos = append(t.oovInfos, n.Info)
		wordID := dictionary.WordID(idx)
		t.lat.Insert(n.Begin, n.End, n.LeftID, n.RightID, n.Cost, wordID, dictionary.OOVDictionaryID)
		*wordMask |= maskBit(n.End - n.Begin)
	}
	return nil
}
