package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGrammar() *Grammar {
	pos := []POS{
		{"名詞", "普通名詞", "一般", "*", "*", "*"},
		{"助詞", "格助詞", "*", "*", "*", "*"},
	}
	// 2x2 connection matrix.
	matrix := []int16{0, 10, 20, Inhibited}
	return NewGrammar(pos, 2, 2, matrix)
}

func TestGrammarConnect(t *testing.T) {
	g := newTestGrammar()
	assert.Equal(t, int16(0), g.Connect(0, 0))
	assert.Equal(t, int16(10), g.Connect(0, 1))
	assert.Equal(t, int16(20), g.Connect(1, 0))
	assert.Equal(t, Inhibited, g.Connect(1, 1))
}

func TestGrammarConnectOutOfRangeIsInhibited(t *testing.T) {
	g := newTestGrammar()
	assert.Equal(t, Inhibited, g.Connect(-1, 0))
	assert.Equal(t, Inhibited, g.Connect(0, 99))
}

func TestGrammarPOSAt(t *testing.T) {
	g := newTestGrammar()
	p, err := g.POSAt(0)
	require.NoError(t, err)
	assert.Equal(t, POS{"名詞", "普通名詞", "一般", "*", "*", "*"}, p)

	_, err = g.POSAt(5)
	assert.Error(t, err)
}

func TestGrammarBOSEOSDefault(t *testing.T) {
	g := newTestGrammar()
	assert.Equal(t, ConnectionParams{}, g.BOS())
	assert.Equal(t, ConnectionParams{}, g.EOS())

	g.SetEOS(ConnectionParams{LeftID: 1, RightID: 1, Cost: 5})
	assert.Equal(t, ConnectionParams{LeftID: 1, RightID: 1, Cost: 5}, g.EOS())
}

func TestGrammarSetConnect(t *testing.T) {
	g := newTestGrammar()
	require.NoError(t, g.SetConnect(1, 1, 7))
	assert.Equal(t, int16(7), g.Connect(1, 1))

	assert.Error(t, g.SetConnect(9, 0, 0))
}
