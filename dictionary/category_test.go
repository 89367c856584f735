package dictionary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryTableDefault(t *testing.T) {
	tbl := NewCategoryTable()
	assert.Equal(t, CategoryDefault, tbl.Get('x'))
}

func TestCategoryTableLoadCategoryDefinitions(t *testing.T) {
	def := `
# comment line
0x0041 0x005A ALPHA
0x3041 0x3096 HIRAGANA
0x0020 SPACE
`
	tbl := NewCategoryTable()
	require.NoError(t, tbl.LoadCategoryDefinitions(strings.NewReader(def)))

	assert.Equal(t, CategoryAlpha, tbl.Get('A'))
	assert.Equal(t, CategoryAlpha, tbl.Get('Z'))
	assert.Equal(t, CategoryDefault, tbl.Get('a'))
	assert.Equal(t, CategoryHiragana, tbl.Get('あ'))
	assert.Equal(t, CategorySpace, tbl.Get(' '))
}

func TestCategoryTableMultipleTypesPerRange(t *testing.T) {
	def := "0x0030 0x0039 NUMERIC KANJINUMERIC\n"
	tbl := NewCategoryTable()
	require.NoError(t, tbl.LoadCategoryDefinitions(strings.NewReader(def)))

	got := tbl.Get('5')
	assert.True(t, got&CategoryNumeric != 0)
	assert.True(t, got&CategoryKanjiNumeric != 0)
}

func TestCategoryTableLastWins(t *testing.T) {
	def := "0x0041 0x005A ALPHA\n0x0041 0x005A SYMBOL\n"
	tbl := NewCategoryTable()
	require.NoError(t, tbl.LoadCategoryDefinitions(strings.NewReader(def)))
	assert.Equal(t, CategorySymbol, tbl.Get('A'))
}

func TestCategoryTableUnknownType(t *testing.T) {
	tbl := NewCategoryTable()
	err := tbl.LoadCategoryDefinitions(strings.NewReader("0x0041 BOGUS\n"))
	assert.Error(t, err)
}
