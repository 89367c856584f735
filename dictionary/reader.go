package dictionary

import (
	"encoding/binary"
	"fmt"
	"unicode/utf16"

	"github.com/hayashi-nlp/sudachigo/internal/errs"
)

// cursor is a small sequential reader over a dictionary blob, used while
// parsing the POS table, connection matrix, trie, word-id table, word
// parameters and word-info sections (spec.md §6). It never copies the
// underlying blob itself; section parsers such as parseTrie decode the
// values they need into their own slices.
type cursor struct {
	buf []byte
	pos int64
}

func newCursor(buf []byte, start int64) *cursor {
	return &cursor{buf: buf, pos: start}
}

func (c *cursor) remaining() int64 {
	return int64(len(c.buf)) - c.pos
}

func (c *cursor) need(n int64) error {
	if n < 0 || c.remaining() < n {
		return fmt.Errorf("%w: unexpected end of dictionary blob at offset %d (need %d bytes)", errs.ErrInvalidDictionary, c.pos, n)
	}
	return nil
}

func (c *cursor) bytes(n int64) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) u8() (byte, error) {
	b, err := c.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) i16() (int16, error) {
	b, err := c.bytes(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

func (c *cursor) u16() (uint16, error) {
	b, err := c.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) i32() (int32, error) {
	b, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// align4 advances pos to the next 4-byte boundary, per spec.md §6's
// "pad to 4" directives after the connection matrix, trie and word-id
// table sections.
func (c *cursor) align4() {
	if rem := c.pos % 4; rem != 0 {
		c.pos += 4 - rem
	}
}

// lengthPrefixedUTF16 reads one of the dictionary's length-prefixed
// UTF-16LE strings (spec.md §6): a 1-byte length, or if its top bit is
// set, a 2-byte big-endian extension (len = ((len_lo&0x7F)<<8)|len_hi).
func (c *cursor) lengthPrefixedUTF16() (string, error) {
	lo, err := c.u8()
	if err != nil {
		return "", err
	}
	var n int
	if lo&0x80 != 0 {
		hi, err := c.u8()
		if err != nil {
			return "", err
		}
		n = (int(lo&0x7F) << 8) | int(hi)
	} else {
		n = int(lo)
	}
	if n == 0 {
		return "", nil
	}
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		u, err := c.u16()
		if err != nil {
			return "", err
		}
		units[i] = u
	}
	return string(utf16.Decode(units)), nil
}

// int32ArrayU8Count reads a count-prefixed array of int32 values where the count
// is a single byte (spec.md §6's a_unit_split / b_unit_split / word_structure
// / synonym_gids blocks).
func (c *cursor) int32ArrayU8Count() ([]int32, error) {
	count, err := c.u8()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	out := make([]int32, count)
	for i := range out {
		v, err := c.i32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
