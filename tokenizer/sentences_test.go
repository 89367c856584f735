package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeSentencesSplitsOnTerminators(t *testing.T) {
	tok, _ := newTestTokenizer(t)

	lists, err := tok.TokenizeSentences(SplitModeC, "すだち。xyz。")
	require.NoError(t, err)
	require.Len(t, lists, 2)

	assert.Equal(t, "すだち。", joinSurfaces(lists[0]))
	assert.Equal(t, "xyz。", joinSurfaces(lists[1]))
}

func TestTokenizeSentencesWithoutTrailingTerminatorYieldsOneFragment(t *testing.T) {
	tok, _ := newTestTokenizer(t)

	lists, err := tok.TokenizeSentences(SplitModeC, "すだちxyz")
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "すだちxyz", joinSurfaces(lists[0]))
}

func TestTokenizeSentencesEmptyTextYieldsNoSentences(t *testing.T) {
	tok, _ := newTestTokenizer(t)

	lists, err := tok.TokenizeSentences(SplitModeC, "")
	require.NoError(t, err)
	assert.Nil(t, lists)
}

func joinSurfaces(morphemes []*Morpheme) string {
	var out string
	for _, m := range morphemes {
		out += m.Surface()
	}
	return out
}
