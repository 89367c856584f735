package oov

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayashi-nlp/sudachigo/dictionary"
	"github.com/hayashi-nlp/sudachigo/inputtext"
	"github.com/hayashi-nlp/sudachigo/plugin"
)

func buildInput(t *testing.T, text string) *inputtext.InputText {
	t.Helper()
	b := inputtext.NewBuilder(text)
	it, err := b.Build(dictionary.NewCategoryTable())
	require.NoError(t, err)
	return it
}

func TestSimpleOovFiresOnlyWhenNoOtherWords(t *testing.T) {
	it := buildInput(t, "謎")
	p := &SimpleOov{LeftID: 1, RightID: 2, Cost: 100, POSID: 9}

	var out []plugin.PathNode
	require.NoError(t, p.GetOOV(it, 0, 1, &out))
	assert.Empty(t, out, "must not fire when otherWordsMask is non-zero")

	out = nil
	require.NoError(t, p.GetOOV(it, 0, 0, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "謎", out[0].Info.Surface)
	assert.Equal(t, dictionary.OOVDictionaryID, out[0].DictionaryID)
	assert.Equal(t, len([]byte("謎")), out[0].End-out[0].Begin)
}

func TestSimpleOovAtTextEnd(t *testing.T) {
	it := buildInput(t, "a")
	p := &SimpleOov{}
	var out []plugin.PathNode
	require.NoError(t, p.GetOOV(it, it.Len(), 0, &out))
	assert.Empty(t, out)
}
