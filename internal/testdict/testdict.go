// Package testdict builds minimal, valid dictionary blobs in memory for
// other packages' tests, following spec.md §6's on-disk binary format
// (the same shape dictionary/dictionary_test.go exercises directly from
// inside the dictionary package). Kept as a regular internal package,
// not a _test.go file, since multiple packages' tests import it and Go
// test helpers can't cross that boundary otherwise.
package testdict

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"

	"github.com/hayashi-nlp/sudachigo/config"
	"github.com/hayashi-nlp/sudachigo/dictionary"
)

const (
	headerSize     = 512
	descriptionMax = 256
)

func padTo4(buf *bytes.Buffer) {
	for buf.Len()%4 != 0 {
		buf.WriteByte(0)
	}
}

func putI16LE(buf *bytes.Buffer, v int16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(v))
	buf.Write(b[:])
}

func putI32LE(buf *bytes.Buffer, v int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	buf.Write(b[:])
}

func putUTF16(buf *bytes.Buffer, s string) {
	units := utf16.Encode([]rune(s))
	buf.WriteByte(byte(len(units)))
	for _, u := range units {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], u)
		buf.Write(b[:])
	}
}

// Word describes one lexicon entry to bake into a test dictionary blob.
type Word struct {
	Surface string
	LeftID  int16
	RightID int16
	Cost    int16
	POSID   int16
}

// BuildBlob assembles a minimal system-dictionary blob holding words,
// each reachable by exact-match lookup from byte offset 0 of its own
// surface.
func BuildBlob(t *testing.T, words []Word) []byte {
	t.Helper()
	var out bytes.Buffer

	header := make([]byte, headerSize)
	binary.LittleEndian.PutUint64(header[0:8], dictionary.SystemDictVersion)
	binary.LittleEndian.PutUint64(header[8:16], 0)
	copy(header[16:16+descriptionMax], []byte("test dictionary"))
	out.Write(header)

	maxPOS := int16(0)
	for _, w := range words {
		if w.POSID > maxPOS {
			maxPOS = w.POSID
		}
	}
	putI16LE(&out, maxPOS+1)
	for i := int16(0); i <= maxPOS; i++ {
		for _, comp := range []string{"名詞", "普通名詞", "一般", "*", "*", "*"} {
			putUTF16(&out, comp)
		}
	}
	padTo4(&out)

	// Connection matrix: 1x1, cost 0; every word here uses left=right=0.
	putI16LE(&out, 1)
	putI16LE(&out, 1)
	putI16LE(&out, 0)
	padTo4(&out)

	const widEntrySize = 5
	var widBuf bytes.Buffer
	for i := range words {
		widBuf.WriteByte(1)
		putI32LE(&widBuf, int32(i))
	}

	builder := dictionary.NewTrieBuilder()
	for i, w := range words {
		require.NoError(t, builder.Insert([]byte(w.Surface), int32(i*widEntrySize)))
	}
	trie := builder.Build()
	units := trie.Units()
	putI32LE(&out, int32(len(units)))
	for _, u := range units {
		putI32LE(&out, u)
	}
	padTo4(&out)

	putI32LE(&out, int32(widBuf.Len()))
	out.Write(widBuf.Bytes())
	padTo4(&out)

	putI32LE(&out, int32(len(words)))
	for _, w := range words {
		putI16LE(&out, w.LeftID)
		putI16LE(&out, w.RightID)
		putI16LE(&out, w.Cost)
	}

	offsetPos := out.Len()
	for range words {
		putI32LE(&out, 0)
	}

	absOffsets := make([]int32, len(words))
	for i, w := range words {
		absOffsets[i] = int32(out.Len())
		putUTF16(&out, w.Surface)
		out.WriteByte(byte(len([]byte(w.Surface))))
		putI16LE(&out, w.POSID)
		putUTF16(&out, "")
		putI32LE(&out, -1)
		putUTF16(&out, "")
		out.WriteByte(0)
		out.WriteByte(0)
		out.WriteByte(0)
	}

	final := out.Bytes()
	for i, abs := range absOffsets {
		pos := offsetPos + i*4
		binary.LittleEndian.PutUint32(final[pos:pos+4], uint32(abs))
	}
	return final
}

// New writes words' blob to a temp file and loads it through the real
// dictionary.NewDictionary path, registering Close with t.Cleanup.
func New(t *testing.T, words []Word) *dictionary.Dictionary {
	t.Helper()
	blob := BuildBlob(t, words)
	path := filepath.Join(t.TempDir(), "system.dic")
	require.NoError(t, os.WriteFile(path, blob, 0o644))

	dict, err := dictionary.NewDictionary(&config.Config{SystemDict: path})
	require.NoError(t, err)
	t.Cleanup(func() { dict.Close() })
	return dict
}
