// Package stream implements spec.md §4.8's streaming analyzer: a
// synchronous pull loop that feeds a tokenizer from an incoming character
// source without buffering the whole input, yielding one sentence's
// morphemes at a time (spec.md §9's design note: this state machine's
// suspension points are sequential pulls, so it stays synchronous rather
// than adopting the teacher's worker-pool pattern — that pattern is kept
// for tokenizer.TokenizeList's independent, order-tolerant batch fan-out
// instead, where it actually fits).
package stream

import (
	"io"

	"github.com/hayashi-nlp/sudachigo/dictionary"
	"github.com/hayashi-nlp/sudachigo/sentence"
	"github.com/hayashi-nlp/sudachigo/tokenizer"
)

// BufferSize is the maximum number of characters pulled from Source in
// one reload (spec.md §4.8's BUFFER_SIZE).
const BufferSize = 4096

// Source pulls the next rune from an underlying stream: ok is false at
// end of stream (r and err are then zero/nil); a non-nil err aborts the
// analyzer immediately. Once exhausted, Source must keep returning
// ok == false rather than panicking or blocking — Next may call it again
// after it first reports end of stream.
type Source func() (r rune, ok bool, err error)

// Analyzer holds a character buffer, a cursor into its already-consumed
// prefix, and a pull Source, tokenizing one sentence at a time as spec.md
// §4.8 describes (it never buffers the whole input).
type Analyzer struct {
	tok    *tokenizer.Tokenizer
	dict   *dictionary.Dictionary
	mode   tokenizer.SplitMode
	source Source

	buffer   []rune
	bos      int
	reloaded bool
	eof      bool
}

// New returns an Analyzer that tokenizes sentences pulled from source
// under mode, using tok (already configured with whatever plugins the
// caller wants) and dict (for sentence-boundary straddle checks).
func New(tok *tokenizer.Tokenizer, dict *dictionary.Dictionary, mode tokenizer.SplitMode, source Source) *Analyzer {
	return &Analyzer{tok: tok, dict: dict, mode: mode, source: source}
}

// Next returns the next sentence's morphemes, or io.EOF once the source
// and buffer are both exhausted (spec.md §4.8's loop).
func (a *Analyzer) Next() ([]*tokenizer.Morpheme, error) {
	for {
		if a.bos < len(a.buffer) {
			text := string(a.buffer[a.bos:])
			checker := sentence.LexiconChecker{Lexicon: a.dict.Lexicon, Bytes: []byte(text)}
			k := sentence.GetEos(text, checker)

			if k > 0 {
				sentenceRunes := a.buffer[a.bos : a.bos+k]
				a.bos += k
				return a.tok.Tokenize(a.mode, string(sentenceRunes))
			}

			if a.reloaded && a.bos == 0 {
				sentenceRunes := a.buffer
				a.buffer = nil
				a.bos = 0
				a.reloaded = false
				return a.tok.Tokenize(a.mode, string(sentenceRunes))
			}
		}

		if a.eof && len(a.buffer)-a.bos == 0 {
			return nil, io.EOF
		}

		a.buffer = append([]rune(nil), a.buffer[a.bos:]...)
		a.bos = 0

		pulled := 0
		for pulled < BufferSize {
			r, ok, err := a.source()
			if err != nil {
				return nil, err
			}
			if !ok {
				a.eof = true
				break
			}
			a.buffer = append(a.buffer, r)
			pulled++
		}
		a.reloaded = true
	}
}
