package dictionary

import (
	"fmt"

	"github.com/hayashi-nlp/sudachigo/internal/errs"
)

// Inhibited is the reserved connection-cost sentinel meaning "this
// transition is forbidden" (spec.md §3).
const Inhibited int16 = 0x7FFF

// POS is a part-of-speech row: exactly six string components (spec.md §3).
// Identity is component-wise equality.
type POS [6]string

// ConnectionParams is the (leftId, rightId, cost) triple used for both a
// word's own connection parameters and the synthetic BOS/EOS nodes
// (spec.md §3).
type ConnectionParams struct {
	LeftID, RightID int16
	Cost            int16
}

// Grammar is immutable after load (spec.md §3): the POS table, connection
// matrix, character-category table and BOS/EOS parameters shared by every
// lexicon layered under one Dictionary.
type Grammar struct {
	posTable []POS

	leftSize, rightSize int16
	connection          []int16 // row-major, rightSize varies fastest

	categories *CategoryTable

	// BOS/EOS are not part of the binary wire format (spec.md §6 does not
	// specify one); by convention index 0 of both the left and right
	// connection axes is reserved for them, with zero cost; SetBOS and
	// SetEOS override these defaults.
	bos ConnectionParams
	eos ConnectionParams
}

// NewGrammar constructs a Grammar directly from its components. Dictionary
// loading uses this after parsing the POS table and connection matrix;
// it is also the public entry point for building a synthetic grammar in
// tests or tooling outside this package.
func NewGrammar(posTable []POS, leftSize, rightSize int16, connection []int16) *Grammar {
	return &Grammar{
		posTable:   posTable,
		leftSize:   leftSize,
		rightSize:  rightSize,
		connection: connection,
		categories: NewCategoryTable(),
		bos:        ConnectionParams{LeftID: 0, RightID: 0, Cost: 0},
		eos:        ConnectionParams{LeftID: 0, RightID: 0, Cost: 0},
	}
}

// PartsOfSpeech returns the full ordered POS table.
func (g *Grammar) PartsOfSpeech() []POS { return g.posTable }

// POSCount returns the number of rows in the POS table.
func (g *Grammar) POSCount() int { return len(g.posTable) }

// POSAt returns the POS row for posId, validating it indexes the table
// (spec.md §3's invariant: every posId used by any word must be valid).
func (g *Grammar) POSAt(posID int16) (POS, error) {
	if posID < 0 || int(posID) >= len(g.posTable) {
		return POS{}, fmt.Errorf("%w: pos id %d out of range [0,%d)", errs.ErrInvalidDictionary, posID, len(g.posTable))
	}
	return g.posTable[posID], nil
}

// LeftSize and RightSize report the connection matrix dimensions.
func (g *Grammar) LeftSize() int16  { return g.leftSize }
func (g *Grammar) RightSize() int16 { return g.rightSize }

// Connect returns C[leftId, rightId], or Inhibited if either index is out
// of range (treated the same as an explicit inhibited cell).
func (g *Grammar) Connect(leftID, rightID int16) int16 {
	if leftID < 0 || leftID >= g.leftSize || rightID < 0 || rightID >= g.rightSize {
		return Inhibited
	}
	return g.connection[int(leftID)*int(g.rightSize)+int(rightID)]
}

// SetConnect mutates the connection matrix in place. Used only by
// EditConnectionCostPlugin at dictionary-load time (spec.md §4.9); after
// load the matrix is conceptually frozen (spec.md §5).
func (g *Grammar) SetConnect(leftID, rightID int16, cost int16) error {
	if leftID < 0 || leftID >= g.leftSize || rightID < 0 || rightID >= g.rightSize {
		return fmt.Errorf("%w: connection index (%d,%d) out of range", errs.ErrInvalidDictionary, leftID, rightID)
	}
	g.connection[int(leftID)*int(g.rightSize)+int(rightID)] = cost
	return nil
}

// Categories returns the character-category table. Callers load
// definitions into it (via CategoryTable.LoadCategoryDefinitions) before
// first tokenize call; an empty table classifies everything as
// CategoryDefault.
func (g *Grammar) Categories() *CategoryTable { return g.categories }

// SetCategories replaces the character-category table wholesale.
func (g *Grammar) SetCategories(t *CategoryTable) { g.categories = t }

// BOS and EOS return the synthetic boundary node parameters.
func (g *Grammar) BOS() ConnectionParams { return g.bos }
func (g *Grammar) EOS() ConnectionParams { return g.eos }

// SetBOS and SetEOS override the boundary node parameters; exposed for
// dictionaries that encode non-zero BOS/EOS ids.
func (g *Grammar) SetBOS(p ConnectionParams) { g.bos = p }
func (g *Grammar) SetEOS(p ConnectionParams) { g.eos = p }

// parsePOSTable reads the POS table section from spec.md §6: an int16
// count followed by that many 6-string rows, then pads to a 4-byte
// boundary.
func parsePOSTable(c *cursor) ([]POS, error) {
	count, err := c.i16()
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative POS count %d", errs.ErrInvalidDictionary, count)
	}
	table := make([]POS, count)
	for i := range table {
		var row POS
		for j := 0; j < 6; j++ {
			s, err := c.lengthPrefixedUTF16()
			if err != nil {
				return nil, fmt.Errorf("%w: POS row %d component %d: %v", errs.ErrInvalidDictionary, i, j, err)
			}
			if len(s) > 127 {
				return nil, fmt.Errorf("%w: POS row %d component %d exceeds 127 bytes", errs.ErrInvalidDictionary, i, j)
			}
			row[j] = s
		}
		table[i] = row
	}
	c.align4()
	return table, nil
}

// parseConnectionMatrix reads the connection-matrix section from
// spec.md §6: int16 leftSize, int16 rightSize, then leftSize*rightSize
// int16 costs (row-major, right varies fastest), then pads to 4.
func parseConnectionMatrix(c *cursor) (leftSize, rightSize int16, matrix []int16, err error) {
	leftSize, err = c.i16()
	if err != nil {
		return 0, 0, nil, err
	}
	rightSize, err = c.i16()
	if err != nil {
		return 0, 0, nil, err
	}
	if leftSize < 0 || rightSize < 0 {
		return 0, 0, nil, fmt.Errorf("%w: negative connection matrix size (%d,%d)", errs.ErrInvalidDictionary, leftSize, rightSize)
	}
	total := int(leftSize) * int(rightSize)
	matrix = make([]int16, total)
	for i := 0; i < total; i++ {
		v, err := c.i16()
		if err != nil {
			return 0, 0, nil, fmt.Errorf("%w: connection matrix entry %d: %v", errs.ErrInvalidDictionary, i, err)
		}
		matrix[i] = v
	}
	c.align4()
	return leftSize, rightSize, matrix, nil
}
