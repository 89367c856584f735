package oov

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayashi-nlp/sudachigo/dictionary"
	"github.com/hayashi-nlp/sudachigo/inputtext"
	"github.com/hayashi-nlp/sudachigo/plugin"
)

func TestRegexOovMatchesAtBoundary(t *testing.T) {
	p, err := NewRegexOov(`[a-zA-Z]+`, 1, 2, 10, 3, BoundaryRelaxed)
	require.NoError(t, err)

	b := inputtext.NewBuilder("hello world")
	it, err := b.Build(dictionary.NewCategoryTable())
	require.NoError(t, err)

	var out []plugin.PathNode
	require.NoError(t, p.GetOOV(it, 0, 0, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "hello", out[0].Info.Surface)
}

func TestRegexOovRejectsNonAnchoredMatch(t *testing.T) {
	p, err := NewRegexOov(`world`, 1, 2, 10, 3, BoundaryRelaxed)
	require.NoError(t, err)

	b := inputtext.NewBuilder("hello world")
	it, err := b.Build(dictionary.NewCategoryTable())
	require.NoError(t, err)

	var out []plugin.PathNode
	require.NoError(t, p.GetOOV(it, 0, 0, &out))
	assert.Empty(t, out, "a match not starting at offset 0 of the window must be rejected")
}

func TestRegexOovStrictBoundaryRejectsSameCategoryNeighbor(t *testing.T) {
	cats := dictionary.NewCategoryTable()
	require.NoError(t, cats.LoadCategoryDefinitions(strings.NewReader("0x0061 0x007A ALPHA\n")))

	p, err := NewRegexOov(`[a-z]{3}`, 1, 2, 10, 3, BoundaryStrict)
	require.NoError(t, err)

	b := inputtext.NewBuilder("abcd")
	it, err := b.Build(cats)
	require.NoError(t, err)

	var out []plugin.PathNode
	require.NoError(t, p.GetOOV(it, 0, 0, &out))
	assert.Empty(t, out, "strict policy rejects a match whose trailing edge shares a category with what follows")
}
