package rewrite

import (
	"strings"
	"unicode"

	"github.com/hayashi-nlp/sudachigo/dictionary"
	"github.com/hayashi-nlp/sudachigo/plugin"
)

// JoinNumeric merges a run of consecutive numeric nodes — optionally
// joined by connector nodes (see extendRun) and led by a single sign —
// into one node carrying a normalized numeric surface (spec.md
// §4.6/§4.9). The number of periods in a run is not limited, so "1.2.3"
// merges into one node.
type JoinNumeric struct {
	POSID int16
}

var _ plugin.PathRewritePlugin = (*JoinNumeric)(nil)

// Rewrite implements plugin.PathRewritePlugin.
func (p *JoinNumeric) Rewrite(input plugin.InputTextView, path *[]plugin.PathNode) error {
	nodes := *path
	var out []plugin.PathNode

	i := 0
	for i < len(nodes) {
		j := p.extendRun(input, nodes, i)
		if j == i+1 && !isNumericNode(input, nodes[i]) {
			out = append(out, nodes[i])
			i++
			continue
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

// extendRun returns the exclusive end index of the longest run starting
// at i that consists of numeric nodes, each optionally preceded by a
// single connector node (one of isConnectorNode's comma, period or sign
// surfaces) that sits strictly between two numeric nodes (so a trailing
// connector never gets absorbed), and optionally led by a single sign node immediately
// before the first digit (e.g. "-5").
func (p *JoinNumeric) extendRun(input plugin.InputTextView, nodes []plugin.PathNode, i int) int {
	j := i
	if isSignNode(input, nodes[i]) && i+1 < len(nodes) && isNumericNode(input, nodes[i+1]) {
		j++
	} else if !isNumericNode(input, nodes[i]) {
		return i + 1
	}
	j++
	for j < len(nodes) {
		if isConnectorNode(input, nodes[j]) && j+1 < len(nodes) && isNumericNode(input, nodes[j+1]) {
			j += 2
			continue
		}
		if isNumericNode(input, nodes[j]) {
			j++
			continue
		}
		break
	}
	return j
}

func (p *JoinNumeric) merge(input plugin.InputTextView, run []plugin.PathNode) plugin.PathNode {
	first, last := run[0], run[len(run)-1]
	surface := input.GetSubstring(first.Begin, last.End)
	info := dictionary.WordInfo{
		Surface:              surface,
		HeadwordByteLength:   last.End - first.Begin,
		POSID:                p.POSID,
		DictionaryFormWordID: -1,
	}.WithNormalizedForm(normalizeNumeral(surface))
	return plugin.PathNode{
		Begin: first.Begin, End: last.End,
		LeftID: first.LeftID, RightID: last.RightID, Cost: sumCost(run),
		DictionaryID: dictionary.OOVDictionaryID,
		Info:         info,
	}
}

func isNumericNode(input plugin.InputTextView, n plugin.PathNode) bool {
	return input.GetCharCategoryTypes(n.Begin, n.End)&(dictionary.CategoryNumeric|dictionary.CategoryKanjiNumeric) != 0
}

func isConnectorNode(input plugin.InputTextView, n plugin.PathNode) bool {
	s := input.GetSubstring(n.Begin, n.End)
	return s == "," || s == "、" || s == "." || s == "．" || s == "+" || s == "-" || s == "ー" || s == "+" || s == "－"
}

func isSignNode(input plugin.InputTextView, n plugin.PathNode) bool {
	s := input.GetSubstring(n.Begin, n.End)
	return s == "+" || s == "-" || s == "ー" || s == "－" || s == "＋"
}

// normalizeNumeral strips thousands-separator commas and folds
// full-width digits/sign/period to their half-width ASCII equivalents,
// leaving the value itself unchanged (spec.md §4.9's "normalized numeric
// form").
func normalizeNumeral(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == ',' || r == '、':
			continue
		case r == '．':
			b.WriteByte('.')
		case r == '－' || r == 'ー':
			b.WriteByte('-')
		case r == '＋':
			b.WriteByte('+')
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.Is(unicode.Nd, r):
			// Full-width digits (U+FF10-FF19) and other decimal-digit
			// scripts: fold to ASCII via their digit value.
			if v := digitValue(r); v >= 0 {
				b.WriteByte(byte('0' + v))
				continue
			}
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	if r >= 0xFF10 && r <= 0xFF19 { // fullwidth 0-9
		return int(r - 0xFF10)
	}
	return -1
}
