// Package lattice implements the per-call Viterbi lattice from spec.md
// §4.5: an arena of nodes grouped by end-byte-index, connected as they're
// inserted rather than in a second pass.
package lattice

import (
	"math"

	"github.com/hayashi-nlp/sudachigo/dictionary"
	"github.com/hayashi-nlp/sudachigo/internal/errs"
)

// NoIndex marks the absence of a predecessor. Using a sentinel index into
// the arena (rather than a boxed option or a pointer) keeps nodes
// allocation-free value types with no cyclic references for the garbage
// collector to chase (spec.md §9).
const NoIndex = -1

// Infinity is the sentinel total cost for a node with no connected
// predecessor; it cannot win any downstream comparison.
const Infinity = math.MaxInt64

// Node is one lattice entry (spec.md §3's Lattice node record).
type Node struct {
	Begin, End      int
	LeftID, RightID int16
	Cost            int16
	WordID          dictionary.WordID
	DictionaryID    int

	TotalCost      int64
	BestPrev       int
	ConnectedToBOS bool
}

// Lattice is mutable per tokenization and reused across calls on one
// tokenizer (spec.md §3's Lifecycles note): Resize re-homes its arrays,
// it is never copied.
type Lattice struct {
	grammar *dictionary.Grammar

	nodes    []Node
	endLists [][]int

	bosIndex int
	eosIndex int
}

// New returns a Lattice that looks up connection costs and BOS/EOS
// parameters from grammar.
func New(grammar *dictionary.Grammar) *Lattice {
	return &Lattice{grammar: grammar}
}

// Resize clears the lattice and prepares it for a text of byteLen bytes:
// endLists gets byteLen+1 slots, and a synthetic BOS node occupies
// end-index 0 (spec.md §4.5).
func (l *Lattice) Resize(byteLen int) {
	l.nodes = l.nodes[:0]
	l.endLists = make([][]int, byteLen+1)

	bos := l.grammar.BOS()
	l.nodes = append(l.nodes, Node{
		Begin: 0, End: 0,
		LeftID: bos.LeftID, RightID: bos.RightID, Cost: 0,
		DictionaryID:   dictionary.OOVDictionaryID,
		TotalCost:      0,
		BestPrev:       NoIndex,
		ConnectedToBOS: true,
	})
	l.bosIndex = 0
	l.endLists[0] = []int{0}
}

// Insert appends a node for the half-open byte range [begin,end) and
// immediately connects it to the best predecessor ending at begin
// (spec.md §4.5's insert/connectNode). It returns the node's arena index.
func (l *Lattice) Insert(begin, end int, leftID, rightID, cost int16, wordID dictionary.WordID, dictionaryID int) int {
	idx := len(l.nodes)
	l.nodes = append(l.nodes, Node{
		Begin: begin, End: end,
		LeftID: leftID, RightID: rightID, Cost: cost,
		WordID:       wordID,
		DictionaryID: dictionaryID,
	})
	l.endLists[end] = append(l.endLists[end], idx)
	l.connectNode(idx)
	return idx
}

// connectNode implements spec.md §4.5's connectNode: it scans every node
// ending at r's begin that is itself reachable from BOS, picks the one
// minimizing total cost through the connection matrix, and records it.
func (l *Lattice) connectNode(idx int) {
	r := &l.nodes[idx]
	best := NoIndex
	var bestTotal int64

	for _, lidx := range l.endLists[r.Begin] {
		if lidx == idx {
			continue
		}
		ln := l.nodes[lidx]
		if !ln.ConnectedToBOS {
			continue
		}
		connectCost := l.grammar.Connect(ln.RightID, r.LeftID)
		if connectCost == dictionary.Inhibited {
			continue
		}
		total := ln.TotalCost + int64(connectCost)
		if best == NoIndex || total < bestTotal {
			best = lidx
			bestTotal = total
		}
	}

	if best == NoIndex {
		r.ConnectedToBOS = false
		r.TotalCost = Infinity
		r.BestPrev = NoIndex
		return
	}
	r.TotalCost = bestTotal + int64(r.Cost)
	r.BestPrev = best
	r.ConnectedToBOS = true
}

// ConnectEOS inserts and connects the synthetic EOS node at end-index
// byteLen (spec.md §4.5's connectEosNode). It must be called exactly once
// per build, after every word/OOV node has been inserted.
func (l *Lattice) ConnectEOS(byteLen int) {
	eos := l.grammar.EOS()
	idx := len(l.nodes)
	l.nodes = append(l.nodes, Node{
		Begin: byteLen, End: byteLen,
		LeftID: eos.LeftID, RightID: eos.RightID, Cost: 0,
		DictionaryID: dictionary.OOVDictionaryID,
	})
	l.endLists[byteLen] = append(l.endLists[byteLen], idx)
	l.connectNode(idx)
	l.eosIndex = idx
}

// EndList returns the arena indices of every node ending at byte index e.
// An empty result for e in (0,byteLen] means that boundary is
// unreachable (spec.md §4.5's build procedure skips it).
func (l *Lattice) EndList(e int) []int { return l.endLists[e] }

// Node returns a copy of the arena entry at idx.
func (l *Lattice) Node(idx int) Node { return l.nodes[idx] }

// GetBestPath walks BestPrev back from EOS to BOS and returns the node
// indices in left-to-right (begin-ascending) order, excluding the
// synthetic BOS and EOS nodes themselves (spec.md §4.5's getBestPath).
func (l *Lattice) GetBestPath() ([]int, error) {
	eos := l.nodes[l.eosIndex]
	if !eos.ConnectedToBOS {
		return nil, errs.ErrLatticeDisconnected
	}

	var path []int
	for cur := eos.BestPrev; cur != l.bosIndex; cur = l.nodes[cur].BestPrev {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
