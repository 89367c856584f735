package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayashi-nlp/sudachigo/dictionary"
)

// newTestGrammar builds a small grammar: POS ids don't matter here, only
// the connection matrix and BOS/EOS. Left/right ids 0 and 1; 0<->0 and
// 0<->1 are allowed, 1<->1 is inhibited.
func newTestGrammarForLattice(t *testing.T) *dictionary.Grammar {
	t.Helper()
	g := dictionary.NewGrammar([]dictionary.POS{{"*", "*", "*", "*", "*", "*"}}, 2, 2, []int16{
		0, 10, // left=0: right=0 -> 0, right=1 -> 10
		20, dictionary.Inhibited, // left=1: right=0 -> 20, right=1 -> inhibited
	})
	g.SetBOS(dictionary.ConnectionParams{LeftID: 0, RightID: 0, Cost: 0})
	g.SetEOS(dictionary.ConnectionParams{LeftID: 0, RightID: 0, Cost: 0})
	return g
}

func TestLatticeSimplePath(t *testing.T) {
	g := newTestGrammarForLattice(t)
	lat := New(g)
	lat.Resize(4)

	// Word "ab" [0,2) leftId=0 rightId=0 cost=5.
	n1 := lat.Insert(0, 2, 0, 0, 5, 0, 0)
	// Word "cd" [2,4) leftId=0 rightId=0 cost=3.
	n2 := lat.Insert(2, 4, 0, 0, 3, 0, 0)
	lat.ConnectEOS(4)

	path, err := lat.GetBestPath()
	require.NoError(t, err)
	require.Equal(t, []int{n1, n2}, path)

	node1 := lat.Node(n1)
	assert.Equal(t, int64(0+0+5), node1.TotalCost) // BOS(0) + connect(0,0)=0 + cost 5

	node2 := lat.Node(n2)
	assert.Equal(t, node1.TotalCost+0+3, node2.TotalCost)
}

func TestLatticeChoosesCheaperPredecessor(t *testing.T) {
	g := newTestGrammarForLattice(t)
	lat := New(g)
	lat.Resize(2)

	// Two competing nodes ending at byte 1, different rightIds.
	cheap := lat.Insert(0, 1, 0, 0, 0, 0, 0)  // connect(0,*) costs less downstream
	costly := lat.Insert(0, 1, 0, 1, 0, 0, 0) // rightId=1

	// One node at [1,2) with leftId=1: connect(0,1)=10 from `cheap`, but
	// from `costly` (rightId=1) connect(1,1) is inhibited.
	tail := lat.Insert(1, 2, 1, 0, 0, 0, 0)
	lat.ConnectEOS(2)

	node := lat.Node(tail)
	assert.Equal(t, cheap, node.BestPrev)
	assert.NotEqual(t, costly, node.BestPrev)

	path, err := lat.GetBestPath()
	require.NoError(t, err)
	assert.Contains(t, path, cheap)
	assert.Contains(t, path, tail)
	assert.NotContains(t, path, costly)
}

func TestLatticeUnreachableBoundaryLeavesGapEmpty(t *testing.T) {
	g := newTestGrammarForLattice(t)
	lat := New(g)
	lat.Resize(3)

	assert.Empty(t, lat.EndList(1))
	assert.Empty(t, lat.EndList(2))
}

func TestLatticeDisconnectedReturnsError(t *testing.T) {
	g := newTestGrammarForLattice(t)
	lat := New(g)
	lat.Resize(2)

	// The first node connects from BOS (connect(0,0)=0) but ends with
	// rightId=1, so only connect(1,*) leads out of it.
	lat.Insert(0, 1, 0, 1, 0, 0, 0)
	// Node at [1,2) with leftId=1 connecting from rightId=1 is inhibited,
	// so it never connects to BOS; EOS then has no predecessor.
	lat.Insert(1, 2, 1, 1, 0, 0, 0)
	lat.ConnectEOS(2)

	_, err := lat.GetBestPath()
	assert.Error(t, err)
}

func TestLatticeViterbiCostIdentity(t *testing.T) {
	g := newTestGrammarForLattice(t)
	lat := New(g)
	lat.Resize(4)

	n1 := lat.Insert(0, 2, 0, 0, 5, 0, 0)
	n2 := lat.Insert(2, 4, 0, 0, 3, 0, 0)
	lat.ConnectEOS(4)

	path, err := lat.GetBestPath()
	require.NoError(t, err)

	prevTotal := int64(0) // BOS total cost
	prevRight := g.BOS().RightID
	for _, idx := range path {
		node := lat.Node(idx)
		cc := g.Connect(prevRight, node.LeftID)
		want := prevTotal + int64(cc) + int64(node.Cost)
		assert.Equal(t, want, node.TotalCost)
		prevTotal = node.TotalCost
		prevRight = node.RightID
	}
	_ = n1
	_ = n2
}
