package dictionary

import (
	"encoding/binary"
	"fmt"

	"github.com/hayashi-nlp/sudachigo/internal/errs"
)

// Recognized dictionary versions (spec.md §4.1). A system dictionary
// carries a full grammar (POS table + connection matrix); a user
// dictionary's grammar sections are empty and it reuses its parent's.
const (
	SystemDictVersion uint64 = 0x7d9dc45a2588952b
	UserDictVersion   uint64 = 0x9fdeb5a90168f3c6

	// SystemDictVersionWithSynonym is a system dictionary version that
	// additionally carries a synonym-group-id block in every WordInfo
	// record (spec.md §9's open question on the synonym-gid presence
	// flag: older dictionaries omit it).
	SystemDictVersionWithSynonym uint64 = 0x7d9dc45a2588952c
)

// headerSize is the fixed on-disk header size from spec.md §6.
const headerSize = 512

// descriptionMax is the maximum length of the header's description field.
const descriptionMax = 256

// Header is the 512-byte file header described in spec.md §6.
type Header struct {
	Version          uint64
	CreateTimeUnixMs uint64
	Description      string
}

// HasSynonymGroupIDs reports whether WordInfo records in a dictionary with
// this header carry a trailing synonym-group-id block (spec.md §4.1,
// §9 open question).
func (h Header) HasSynonymGroupIDs() bool {
	return h.Version == SystemDictVersionWithSynonym
}

// IsSystemDict reports whether this header identifies a system dictionary
// (as opposed to a user dictionary, which reuses the system grammar).
func (h Header) IsSystemDict() bool {
	return h.Version == SystemDictVersion || h.Version == SystemDictVersionWithSynonym
}

// IsUserDict reports whether this header identifies a user dictionary.
func (h Header) IsUserDict() bool {
	return h.Version == UserDictVersion
}

// parseHeader reads the fixed 512-byte header from the start of a
// dictionary blob.
func parseHeader(buf []byte) (Header, error) {
	if len(buf) < headerSize {
		return Header{}, fmt.Errorf("%w: blob too small for header (%d bytes)", errs.ErrInvalidDictionary, len(buf))
	}

	var h Header
	h.Version = binary.LittleEndian.Uint64(buf[0:8])
	h.CreateTimeUnixMs = binary.LittleEndian.Uint64(buf[8:16])

	descBytes := buf[16 : 16+descriptionMax]
	n := 0
	for n < len(descBytes) && descBytes[n] != 0 {
		n++
	}
	h.Description = string(descBytes[:n])

	if !h.IsSystemDict() && !h.IsUserDict() {
		return Header{}, fmt.Errorf("%w: unrecognized dictionary version %#x", errs.ErrInvalidDictionary, h.Version)
	}

	return h, nil
}
