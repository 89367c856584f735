package rewrite

import "github.com/hayashi-nlp/sudachigo/plugin"

// runeCount returns the number of UTF-8 runes in the modified-text span
// [begin,end), used by the join plugins' "short node" thresholds.
func runeCount(input plugin.InputTextView, begin, end int) int {
	n := 0
	for i := begin; i < end; {
		step := charLen(input, i)
		if step <= 0 {
			break
		}
		i += step
		n++
	}
	return n
}

// charLen returns the byte length of the rune starting at i, decoded
// from the view's underlying byte slice.
func charLen(input plugin.InputTextView, i int) int {
	b := input.Bytes()
	if i < 0 || i >= len(b) {
		return 0
	}
	c := b[i]
	switch {
	case c&0x80 == 0:
		return 1
	case c&0xE0 == 0xC0:
		return 2
	case c&0xF0 == 0xE0:
		return 3
	case c&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}
