package sentence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type noStraddle struct{}

func (noStraddle) HasNonBreakWord(int) bool { return false }

type alwaysStraddle struct{}

func (alwaysStraddle) HasNonBreakWord(int) bool { return true }

func TestGetEosSimpleSentence(t *testing.T) {
	k := GetEos("これは文です。次の文。", noStraddle{})
	assert.Equal(t, len([]rune("これは文です。")), k)
}

func TestGetEosNoBoundaryReturnsNegativeScanLength(t *testing.T) {
	text := "境界のない文字列"
	k := GetEos(text, noStraddle{})
	assert.Equal(t, -len([]rune(text)), k)
}

func TestGetEosEmptyTextReturnsZero(t *testing.T) {
	assert.Equal(t, 0, GetEos("", noStraddle{}))
}

func TestGetEosForbiddenBOSFoldedIntoSentence(t *testing.T) {
	k := GetEos("「彼は来た。」次。", noStraddle{})
	// The closing Japanese quote right after the period is forbidden-BOS
	// and stays part of the first sentence.
	assert.Equal(t, len([]rune("「彼は来た。」")), k)
}

func TestGetEosParenthesesSuppressBoundary(t *testing.T) {
	k := GetEos("これは（文中。にある）ものです。", noStraddle{})
	assert.Equal(t, len([]rune("これは（文中。にある）ものです。")), k)
}

func TestGetEosContinuousPhraseSuppressesBoundary(t *testing.T) {
	k := GetEos("それは本当ですか?です、と彼は言った。", noStraddle{})
	assert.Equal(t, len([]rune("それは本当ですか?です、と彼は言った。")), k)
}

func TestGetEosDecimalPointBetweenDigitsSuppressesBoundary(t *testing.T) {
	k := GetEos("価格は3.14円です。", noStraddle{})
	assert.Equal(t, len([]rune("価格は3.14円です。")), k)
}

func TestGetEosStraddlingWordSuppressesBoundary(t *testing.T) {
	k := GetEos("Ph.D.の学位。", alwaysStraddle{})
	// Every terminator is reported straddling, so no boundary is ever
	// accepted and the whole scanned text comes back negative.
	assert.Equal(t, -len([]rune("Ph.D.の学位。")), k)
}
