package dictionary

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayashi-nlp/sudachigo/config"
)

func padTo4(buf *bytes.Buffer) {
	for buf.Len()%4 != 0 {
		buf.WriteByte(0)
	}
}

func putU16LE(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func putI16LE(buf *bytes.Buffer, v int16) { putU16LE(buf, uint16(v)) }

func putI32LE(buf *bytes.Buffer, v int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	buf.Write(b[:])
}

func putLengthPrefixedUTF16Raw(buf *bytes.Buffer, s string) {
	units := utf16.Encode([]rune(s))
	buf.WriteByte(byte(len(units)))
	for _, u := range units {
		putU16LE(buf, u)
	}
}

// buildTestDictionaryBlob assembles a complete, minimal system-dictionary
// blob matching spec.md §6's wire format: one word, "すだち", with POS
// row 0 and connection parameters (leftId=0, rightId=0, cost=100).
func buildTestDictionaryBlob(t *testing.T) []byte {
	t.Helper()
	var out bytes.Buffer

	// Header.
	header := make([]byte, headerSize)
	binary.LittleEndian.PutUint64(header[0:8], SystemDictVersion)
	binary.LittleEndian.PutUint64(header[8:16], 0)
	copy(header[16:16+descriptionMax], []byte("test dictionary"))
	out.Write(header)

	// POS table: one row.
	putI16LE(&out, 1)
	for _, comp := range []string{"名詞", "普通名詞", "一般", "*", "*", "*"} {
		putLengthPrefixedUTF16Raw(&out, comp)
	}
	padTo4(&out)

	// Connection matrix: 1x1, cost 0 (BOS/EOS reserved at index 0 by
	// convention; words also use leftId/rightId 0 here for simplicity).
	putI16LE(&out, 1)
	putI16LE(&out, 1)
	putI16LE(&out, 0)
	padTo4(&out)

	// Trie: one key "すだち" -> value 0 (offset into the word-id table).
	builder := NewTrieBuilder()
	require.NoError(t, builder.Insert([]byte("すだち"), 0))
	trie := builder.Build()
	trieUnits := trieUnitsForTest(trie)
	putI32LE(&out, int32(len(trieUnits)))
	for _, u := range trieUnits {
		putI32LE(&out, u)
	}
	padTo4(&out)

	// Word-id table: one entry at relative offset 0, holding local word
	// id 0.
	var widBuf bytes.Buffer
	widBuf.WriteByte(1)
	putI32LE(&widBuf, 0)
	putI32LE(&out, int32(widBuf.Len()))
	out.Write(widBuf.Bytes())
	padTo4(&out)

	// Word parameters: one word, (leftId=0, rightId=0, cost=100).
	putI32LE(&out, 1)
	putI16LE(&out, 0)
	putI16LE(&out, 0)
	putI16LE(&out, 100)

	// Word-info offsets: one absolute offset, filled in after we know
	// where the word-info section starts.
	wordInfoOffsetPos := out.Len()
	putI32LE(&out, 0) // placeholder

	wordInfoAbsOffset := out.Len()
	putLengthPrefixedUTF16Raw(&out, "すだち") // surface
	out.WriteByte(byte(len([]byte("すだち"))))  // headword byte length
	putI16LE(&out, 0)                        // pos id
	putLengthPrefixedUTF16Raw(&out, "")      // normalized form (= surface)
	putI32LE(&out, -1)                       // dictionary-form word id (self)
	putLengthPrefixedUTF16Raw(&out, "")      // reading form (= surface)
	out.WriteByte(0)                         // a-unit split: empty
	out.WriteByte(0)                         // b-unit split: empty
	out.WriteByte(0)                         // word structure: empty

	final := out.Bytes()
	binary.LittleEndian.PutUint32(final[wordInfoOffsetPos:wordInfoOffsetPos+4], uint32(wordInfoAbsOffset))
	return final
}

// trieUnitsForTest returns a built Trie's unit array for re-serialization
// (the same slice Trie.Units returns).
func trieUnitsForTest(tr *Trie) []int32 {
	return tr.units
}

func TestNewDictionaryEndToEnd(t *testing.T) {
	blob := buildTestDictionaryBlob(t)
	path := filepath.Join(t.TempDir(), "system.dic")
	require.NoError(t, os.WriteFile(path, blob, 0o644))

	cfg := &config.Config{SystemDict: path}
	dict, err := NewDictionary(cfg)
	require.NoError(t, err)
	defer dict.Close()

	assert.Equal(t, 1, dict.Grammar.POSCount())
	assert.Equal(t, int16(0), dict.Grammar.Connect(0, 0))

	entries, err := dict.Lexicon.Lookup([]byte("すだちごく"), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, len([]byte("すだち")), entries[0].ByteLength)

	wi, err := dict.Lexicon.GetWordInfo(entries[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "すだち", wi.Surface)
	assert.False(t, wi.HasDictionaryForm())

	left, err := dict.Lexicon.GetLeftID(entries[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int16(0), left)
}

// buildTestUserDictionaryBlob assembles a minimal, valid user-dictionary
// blob: a header plus trie/word-id-table/word-parameters/word-info
// sections but no POS table or connection matrix (spec.md §4.1: a user
// dictionary's grammar sections are empty and it reuses its parent's).
func buildTestUserDictionaryBlob(t *testing.T) []byte {
	t.Helper()
	var out bytes.Buffer

	header := make([]byte, headerSize)
	binary.LittleEndian.PutUint64(header[0:8], UserDictVersion)
	out.Write(header)

	builder := NewTrieBuilder()
	require.NoError(t, builder.Insert([]byte("ユーザー"), 0))
	trieUnits := trieUnitsForTest(builder.Build())
	putI32LE(&out, int32(len(trieUnits)))
	for _, u := range trieUnits {
		putI32LE(&out, u)
	}
	padTo4(&out)

	var widBuf bytes.Buffer
	widBuf.WriteByte(1)
	putI32LE(&widBuf, 0)
	putI32LE(&out, int32(widBuf.Len()))
	out.Write(widBuf.Bytes())
	padTo4(&out)

	putI32LE(&out, 1)
	putI16LE(&out, 0)
	putI16LE(&out, 0)
	putI16LE(&out, -20) // user-dictionary per-morph cost penalty

	wordInfoOffsetPos := out.Len()
	putI32LE(&out, 0)

	wordInfoAbsOffset := out.Len()
	putLengthPrefixedUTF16Raw(&out, "ユーザー")
	out.WriteByte(byte(len([]byte("ユーザー"))))
	putI16LE(&out, 0)
	putLengthPrefixedUTF16Raw(&out, "")
	putI32LE(&out, -1)
	putLengthPrefixedUTF16Raw(&out, "")
	out.WriteByte(0)
	out.WriteByte(0)
	out.WriteByte(0)

	final := out.Bytes()
	binary.LittleEndian.PutUint32(final[wordInfoOffsetPos:wordInfoOffsetPos+4], uint32(wordInfoAbsOffset))
	return final
}

func TestNewDictionaryRejectsUserDictAsSystem(t *testing.T) {
	blob := buildTestUserDictionaryBlob(t)
	path := filepath.Join(t.TempDir(), "bad.dic")
	require.NoError(t, os.WriteFile(path, blob, 0o644))

	cfg := &config.Config{SystemDict: path}
	_, err := NewDictionary(cfg)
	assert.Error(t, err)
}

func TestNewDictionaryLayersUserDictionary(t *testing.T) {
	systemPath := filepath.Join(t.TempDir(), "system.dic")
	require.NoError(t, os.WriteFile(systemPath, buildTestDictionaryBlob(t), 0o644))

	userPath := filepath.Join(t.TempDir(), "user.dic")
	require.NoError(t, os.WriteFile(userPath, buildTestUserDictionaryBlob(t), 0o644))

	cfg := &config.Config{SystemDict: systemPath, UserDict: []string{userPath}}
	dict, err := NewDictionary(cfg)
	require.NoError(t, err)
	defer dict.Close()

	assert.Equal(t, 2, dict.Lexicon.Size())

	entries, err := dict.Lexicon.Lookup([]byte("ユーザーだ"), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].ID.DictionaryIndex())
}

func TestNewDictionaryMissingSystemDict(t *testing.T) {
	cfg := &config.Config{SystemDict: ""}
	_, err := NewDictionary(cfg)
	assert.Error(t, err)
}
