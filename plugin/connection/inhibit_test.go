package connection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayashi-nlp/sudachigo/dictionary"
)

func TestInhibitConnectionSetsCells(t *testing.T) {
	g := dictionary.NewGrammar([]dictionary.POS{{"*", "*", "*", "*", "*", "*"}}, 2, 2, []int16{0, 1, 2, 3})
	p := &InhibitConnection{Pairs: [][2]int16{{0, 1}, {1, 0}}}
	require.NoError(t, p.Edit(g))

	assert.Equal(t, dictionary.Inhibited, g.Connect(0, 1))
	assert.Equal(t, dictionary.Inhibited, g.Connect(1, 0))
	assert.Equal(t, int16(0), g.Connect(0, 0))
	assert.Equal(t, int16(3), g.Connect(1, 1))
}

func TestInhibitConnectionRejectsOutOfRange(t *testing.T) {
	g := dictionary.NewGrammar([]dictionary.POS{{"*", "*", "*", "*", "*", "*"}}, 1, 1, []int16{0})
	p := &InhibitConnection{Pairs: [][2]int16{{5, 5}}}
	assert.Error(t, p.Edit(g))
}
