package tokenizer

import (
	"encoding/json"

	"github.com/hayashi-nlp/sudachigo/dictionary"
	"github.com/hayashi-nlp/sudachigo/inputtext"
)

// LatticeNodeDump is one lattice node as surfaced by Dump, mirroring the
// teacher's JSON-marshal-the-result style (binding/wrapper.go) rather
// than the opaque lattice.Node arena representation.
type LatticeNodeDump struct {
	Begin        int    `json:"begin"`
	End          int    `json:"end"`
	Surface      string `json:"surface"`
	LeftID       int16  `json:"leftId"`
	RightID      int16  `json:"rightId"`
	Cost         int16  `json:"cost"`
	IsOOV        bool   `json:"isOov"`
	DictionaryID int    `json:"dictionaryId"`
}

// LatticeDump is the diagnostic snapshot Dump returns: the best path plus
// every boundary's full candidate list, so a caller can see what lost out
// during Viterbi (spec.md §12).
type LatticeDump struct {
	Text     string              `json:"text"`
	BestPath []LatticeNodeDump   `json:"bestPath"`
	Boundary [][]LatticeNodeDump `json:"boundary"`
}

// Dump tokenizes text and returns a JSON-ready snapshot of the lattice
// built for it: the chosen best path, and separately every node at each
// reachable boundary end-list, before any split-mode expansion or path
// rewriting — a debugging aid for tuning OOV providers and connection
// costs, not a tokenize variant (spec.md §4.6, §12).
func (t *Tokenizer) Dump(text string) (*LatticeDump, error) {
	if text == "" {
		return &LatticeDump{Text: text}, nil
	}

	input, err := t.buildInputText(text)
	if err != nil {
		return nil, err
	}
	if err := t.buildLattice(input); err != nil {
		return nil, err
	}

	bestIdx, err := t.lat.GetBestPath()
	if err != nil {
		return nil, err
	}
	bestPath, err := t.resolvePath(bestIdx)
	if err != nil {
		return nil, err
	}

	dump := &LatticeDump{
		Text:     text,
		BestPath: make([]LatticeNodeDump, len(bestPath)),
	}
	for i, n := range bestPath {
		dump.BestPath[i] = t.dumpNode(input, n.Begin, n.End, n.LeftID, n.RightID, n.Cost, n.DictionaryID)
	}

	byteLen := len(input.Bytes())
	for end := 0; end <= byteLen; end++ {
		nodes := t.lat.EndList(end)
		if len(nodes) == 0 {
			continue
		}
		var boundary []LatticeNodeDump
		for _, idx := range nodes {
			n := t.lat.Node(idx)
			boundary = append(boundary, t.dumpNode(input, n.Begin, n.End, n.LeftID, n.RightID, n.Cost, n.DictionaryID))
		}
		dump.Boundary = append(dump.Boundary, boundary)
	}
	return dump, nil
}

func (t *Tokenizer) dumpNode(input *inputtext.InputText, begin, end int, left, right, cost int16, dictionaryID int) LatticeNodeDump {
	return LatticeNodeDump{
		Begin: begin, End: end,
		Surface:      input.GetSubstring(begin, end),
		LeftID:       left,
		RightID:      right,
		Cost:         cost,
		IsOOV:        dictionaryID == dictionary.OOVDictionaryID,
		DictionaryID: dictionaryID,
	}
}

// MarshalJSON lets a LatticeDump be passed straight to encoding/json
// without callers needing to know its field names, matching how the
// teacher's wrapper marshals Parsed values directly (binding/wrapper.go).
func (d *LatticeDump) MarshalJSON() ([]byte, error) {
	type alias LatticeDump
	return json.Marshal((*alias)(d))
}
