package dictionary

import (
	"fmt"
	"os"
	"time"

	"github.com/edsrzf/mmap-go"

	"github.com/hayashi-nlp/sudachigo/config"
	"github.com/hayashi-nlp/sudachigo/internal/errs"
	"github.com/hayashi-nlp/sudachigo/internal/logging"
)

// blob is one mmap-backed dictionary file: its header, grammar (system
// dictionaries only) and lexicon (spec.md §3/§4.1).
type blob struct {
	header  Header
	grammar *Grammar // nil for a user dictionary; it reuses the system grammar
	lexicon *Lexicon
	file    mmap.MMap
}

// Dictionary is a fully composed, immutable view over one system
// dictionary plus zero or more layered user dictionaries (spec.md §3/§4.1).
// Every blob stays mapped for the Dictionary's lifetime; Close unmaps them
// all.
type Dictionary struct {
	Grammar *Grammar
	Lexicon *LexiconSet

	blobs []blob // kept alive so their mmap regions stay mapped
}

// NewDictionary loads the system dictionary named by cfg, layers any user
// dictionaries on top in the order given, and returns a ready-to-use
// Dictionary (spec.md §4.1's factory operation). The caller owns the
// returned Dictionary and must call Close when done with it.
func NewDictionary(cfg *config.Config) (*Dictionary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logging.WithComponent("dictionary")
	start := time.Now()

	systemBlob, err := loadBlob(cfg.SystemDict)
	if err != nil {
		return nil, fmt.Errorf("loading system dictionary %q: %w", cfg.SystemDict, err)
	}
	if !systemBlob.header.IsSystemDict() {
		systemBlob.file.Unmap()
		return nil, fmt.Errorf("%w: %q is not a system dictionary", errs.ErrInvalidDictionary, cfg.SystemDict)
	}

	d := &Dictionary{
		Grammar: systemBlob.grammar,
		Lexicon: NewLexiconSet(systemBlob.lexicon),
		blobs:   []blob{systemBlob},
	}

	for _, path := range cfg.UserDict {
		ub, err := loadBlob(path)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("loading user dictionary %q: %w", path, err)
		}
		if !ub.header.IsUserDict() {
			ub.file.Unmap()
			d.Close()
			return nil, fmt.Errorf("%w: %q is not a user dictionary", errs.ErrInvalidDictionary, path)
		}
		if err := d.Lexicon.AddLexicon(ub.lexicon); err != nil {
			ub.file.Unmap()
			d.Close()
			return nil, err
		}
		d.blobs = append(d.blobs, ub)
	}

	log.Info().
		Str("systemDict", cfg.SystemDict).
		Int("userDicts", len(cfg.UserDict)).
		Int("posCount", d.Grammar.POSCount()).
		Int("lexicons", d.Lexicon.Size()).
		Dur("elapsed", time.Since(start)).
		Msg("dictionary loaded")

	return d, nil
}

// Close unmaps every blob backing this Dictionary. After Close, no
// Lexicon or Grammar lookup routed through it is safe to call.
func (d *Dictionary) Close() error {
	var firstErr error
	for _, b := range d.blobs {
		if b.file == nil {
			continue
		}
		if err := b.file.Unmap(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// loadBlob mmaps path and parses its header, (for system dictionaries)
// grammar, and lexicon sections. The file as a whole is never read into a
// second buffer: the POS table, connection matrix, trie units, word
// parameters and word-info offsets are decoded into heap slices, while the
// word-id table and the word-info records stay views into the mapping.
func loadBlob(path string) (blob, error) {
	f, err := os.Open(path)
	if err != nil {
		return blob{}, fmt.Errorf("%w: %v", errs.ErrInvalidDictionary, err)
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return blob{}, fmt.Errorf("mmap %q: %w", path, err)
	}

	header, err := parseHeader(m)
	if err != nil {
		_ = m.Unmap()
		return blob{}, err
	}

	c := newCursor(m, headerSize)

	var grammar *Grammar
	if header.IsSystemDict() {
		posTable, err := parsePOSTable(c)
		if err != nil {
			_ = m.Unmap()
			return blob{}, err
		}
		leftSize, rightSize, matrix, err := parseConnectionMatrix(c)
		if err != nil {
			_ = m.Unmap()
			return blob{}, err
		}
		grammar = NewGrammar(posTable, leftSize, rightSize, matrix)
	}

	trie, err := parseTrie(c)
	if err != nil {
		_ = m.Unmap()
		return blob{}, err
	}
	wordIDEntries, err := parseWordIDTable(c)
	if err != nil {
		_ = m.Unmap()
		return blob{}, err
	}
	params, err := parseWordParameters(c)
	if err != nil {
		_ = m.Unmap()
		return blob{}, err
	}
	offsets, err := parseWordInfoOffsets(c, len(params))
	if err != nil {
		_ = m.Unmap()
		return blob{}, err
	}

	lexicon := &Lexicon{
		trie:            trie,
		wordIDEntries:   wordIDEntries,
		params:          params,
		wordInfoOffsets: offsets,
		blob:            m,
		hasSynonymGIDs:  header.HasSynonymGroupIDs(),
	}

	return blob{header: header, grammar: grammar, lexicon: lexicon, file: m}, nil
}
