package tokenizer

import (
	"runtime"
	"sort"
	"sync"
)

// TokenizeResult pairs one input text with its tokenization, preserving
// which request an entry answers once results are collected back out of
// order from the worker pool.
type TokenizeResult struct {
	Index     int
	Text      string
	Morphemes []*Morpheme
	Err       error
}

const batchChunkSize = 1000

// TokenizeList tokenizes texts concurrently using a pool of Tokenizers,
// one per worker, built by newTokenizer. A Tokenizer is not safe for
// concurrent Tokenize calls (spec.md §5), so each worker gets its own
// instance rather than sharing t; newTokenizer should register the same
// plugins on each instance it returns. Results come back ordered by the
// original index of texts, matching the teacher's ParseList/InflectList
// chunked worker-pool shape (analyzer.go).
func TokenizeList(newTokenizer func() *Tokenizer, mode SplitMode, texts []string) []TokenizeResult {
	numWorkers := runtime.NumCPU()
	if numWorkers > len(texts) {
		numWorkers = len(texts)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	type chunk struct {
		start int
		texts []string
	}
	chunksCh := make(chan chunk, numWorkers)
	resultCh := make(chan []TokenizeResult, numWorkers)

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			tok := newTokenizer()
			for c := range chunksCh {
				out := make([]TokenizeResult, len(c.texts))
				for i, text := range c.texts {
					morphemes, err := tok.Tokenize(mode, text)
					out[i] = TokenizeResult{Index: c.start + i, Text: text, Morphemes: morphemes, Err: err}
				}
				resultCh <- out
			}
		}()
	}

	go func() {
		for i := 0; i < len(texts); i += batchChunkSize {
			end := i + batchChunkSize
			if end > len(texts) {
				end = len(texts)
			}
			chunksCh <- chunk{start: i, texts: texts[i:end]}
		}
		close(chunksCh)
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]TokenizeResult, 0, len(texts))
	for r := range resultCh {
		results = append(results, r...)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}

// TokenizeAllList is TokenizeList for every SplitMode a caller is
// interested in at once: it calls TokenizeList once per mode, each call
// with its own worker pool, and returns the results keyed by mode, each
// slice in the original order of texts. It mirrors the teacher's InflectList, which walks every inflected form of
// a word rather than a single parse.
func TokenizeAllList(newTokenizer func() *Tokenizer, modes []SplitMode, texts []string) map[SplitMode][]TokenizeResult {
	out := make(map[SplitMode][]TokenizeResult, len(modes))
	for _, mode := range modes {
		out[mode] = TokenizeList(newTokenizer, mode, texts)
	}
	return out
}
