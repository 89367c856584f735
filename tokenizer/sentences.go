package tokenizer

import "github.com/hayashi-nlp/sudachigo/sentence"

// TokenizeSentences splits text into sentences (spec.md §4.7's getEos)
// and tokenizes each in turn, returning one MorphemeList per sentence
// (spec.md §4.6's tokenizeSentences). Unlike stream.Analyzer, the whole
// text is already in memory, so this is a plain loop with no buffering
// or pull source involved.
func (t *Tokenizer) TokenizeSentences(mode SplitMode, text string) ([][]*Morpheme, error) {
	var result [][]*Morpheme
	for len(text) > 0 {
		checker := sentence.LexiconChecker{Lexicon: t.dict.Lexicon, Bytes: []byte(text)}
		k := sentence.GetEos(text, checker)

		if k <= 0 {
			// No boundary within the scanned window: GetEos reports the
			// negated rune count it looked at (spec.md §4.7), which is
			// exactly how far this sentence fragment should extend.
			k = -k
		}
		runes := []rune(text)

		sentenceText := string(runes[:k])
		morphemes, err := t.Tokenize(mode, sentenceText)
		if err != nil {
			return nil, err
		}
		result = append(result, morphemes)

		text = string(runes[k:])
	}
	return result, nil
}
