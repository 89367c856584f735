package dictionary

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeHeaderBuf(version, createTime uint64, description string) []byte {
	buf := make([]byte, headerSize)
	binary.LittleEndian.PutUint64(buf[0:8], version)
	binary.LittleEndian.PutUint64(buf[8:16], createTime)
	copy(buf[16:16+descriptionMax], []byte(description))
	return buf
}

func TestParseHeaderSystemDict(t *testing.T) {
	buf := makeHeaderBuf(SystemDictVersion, 1700000000000, "test system dict")
	h, err := parseHeader(buf)
	require.NoError(t, err)
	assert.True(t, h.IsSystemDict())
	assert.False(t, h.IsUserDict())
	assert.False(t, h.HasSynonymGroupIDs())
	assert.Equal(t, "test system dict", h.Description)
	assert.Equal(t, uint64(1700000000000), h.CreateTimeUnixMs)
}

func TestParseHeaderSystemDictWithSynonym(t *testing.T) {
	buf := makeHeaderBuf(SystemDictVersionWithSynonym, 0, "")
	h, err := parseHeader(buf)
	require.NoError(t, err)
	assert.True(t, h.IsSystemDict())
	assert.True(t, h.HasSynonymGroupIDs())
}

func TestParseHeaderUserDict(t *testing.T) {
	buf := makeHeaderBuf(UserDictVersion, 0, "user")
	h, err := parseHeader(buf)
	require.NoError(t, err)
	assert.True(t, h.IsUserDict())
	assert.False(t, h.IsSystemDict())
}

func TestParseHeaderUnrecognizedVersion(t *testing.T) {
	buf := makeHeaderBuf(0xdeadbeef, 0, "")
	_, err := parseHeader(buf)
	assert.Error(t, err)
}

func TestParseHeaderTooSmall(t *testing.T) {
	_, err := parseHeader(make([]byte, 10))
	assert.Error(t, err)
}
