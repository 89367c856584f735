// Package rewrite holds the built-in PathRewritePlugin implementations
// named in spec.md §4.6: JoinKatakanaOov and JoinNumeric.
package rewrite

import (
	"github.com/hayashi-nlp/sudachigo/dictionary"
	"github.com/hayashi-nlp/sudachigo/plugin"
)

// JoinKatakanaOov merges runs of consecutive OOV (or shorter-than-
// MinLength) Katakana nodes into a single node carrying the configured
// OOV POS (spec.md §4.6).
type JoinKatakanaOov struct {
	POSID     int16
	MinLength int // non-OOV Katakana nodes shorter than this many runes are joinable; OOV Katakana nodes are joinable at any length
}

var _ plugin.PathRewritePlugin = (*JoinKatakanaOov)(nil)

// Rewrite implements plugin.PathRewritePlugin.
func (p *JoinKatakanaOov) Rewrite(input plugin.InputTextView, path *[]plugin.PathNode) error {
	nodes := *path
	var out []plugin.PathNode

	i := 0
	for i < len(nodes) {
		if !p.joinable(input, nodes[i]) {
			out = append(out, nodes[i])
			i++
			continue
		}
		j := i + 1
		for j < len(nodes) && p.joinable(input, nodes[j]) {
			j++
		}
		if j == i+1 {
			out = append(out, nodes[i])
			i++
			continue
		}
		out = append(out, p.merge(input, nodes[i:j]))
		i = j
	}

	*path = out
	return nil
}

func (p *JoinKatakanaOov) joinable(input plugin.InputTextView, n plugin.PathNode) bool {
	cats := input.GetCharCategoryTypes(n.Begin, n.End)
	if cats&dictionary.CategoryKatakana == 0 {
		return false
	}
	if n.IsOOV() {
		return true
	}
	return runeCount(input, n.Begin, n.End) < p.MinLength
}

func (p *JoinKatakanaOov) merge(input plugin.InputTextView, run []plugin.PathNode) plugin.PathNode {
	first, last := run[0], run[len(run)-1]
	surface := input.GetSubstring(first.Begin, last.End)
	return plugin.PathNode{
		Begin: first.Begin, End: last.End,
		LeftID: first.LeftID, RightID: last.RightID, Cost: sumCost(run),
		DictionaryID: dictionary.OOVDictionaryID,
		Info: dictionary.WordInfo{
			Surface:              surface,
			HeadwordByteLength:   last.End - first.Begin,
			POSID:                p.POSID,
			DictionaryFormWordID: -1,
		},
	}
}

func sumCost(run []plugin.PathNode) int16 {
	var total int32
	for _, n := range run {
		total += int32(n.Cost)
	}
	if total > 32767 {
		total = 32767
	}
	if total < -32768 {
		total = -32768
	}
	return int16(total)
}
