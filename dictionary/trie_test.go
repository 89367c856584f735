package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestTrie(t *testing.T, entries map[string]int32) *Trie {
	t.Helper()
	b := NewTrieBuilder()
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	// Insert in ascending byte order, matching what a real builder expects.
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if keys[j] < keys[i] {
				keys[i], keys[j] = keys[j], keys[i]
			}
		}
	}
	for _, k := range keys {
		require.NoError(t, b.Insert([]byte(k), entries[k]))
	}
	return b.Build()
}

func TestTrieExactMatch(t *testing.T) {
	trie := buildTestTrie(t, map[string]int32{
		"a":    1,
		"ab":   2,
		"abc":  3,
		"b":    4,
		"東京":   5,
		"東京都": 6,
	})

	tests := []struct {
		key     string
		wantVal int32
		wantOK  bool
	}{
		{"a", 1, true},
		{"ab", 2, true},
		{"abc", 3, true},
		{"b", 4, true},
		{"東京", 5, true},
		{"東京都", 6, true},
		{"ac", 0, false},
		{"", 0, false},
		{"x", 0, false},
	}
	for _, tc := range tests {
		val, ok := trie.ExactMatch([]byte(tc.key))
		assert.Equalf(t, tc.wantOK, ok, "key %q", tc.key)
		if tc.wantOK {
			assert.Equalf(t, tc.wantVal, val, "key %q", tc.key)
		}
	}
}

func TestTrieCommonPrefixSearch(t *testing.T) {
	trie := buildTestTrie(t, map[string]int32{
		"a":   1,
		"ab":  2,
		"abc": 3,
	})

	matches := trie.CommonPrefixSearch([]byte("abcd"), 0)
	require.Len(t, matches, 3)
	assert.Equal(t, PrefixMatch{Value: 1, MatchedEndOffset: 1}, matches[0])
	assert.Equal(t, PrefixMatch{Value: 2, MatchedEndOffset: 2}, matches[1])
	assert.Equal(t, PrefixMatch{Value: 3, MatchedEndOffset: 3}, matches[2])
}

func TestTrieCommonPrefixSearchFromOffset(t *testing.T) {
	trie := buildTestTrie(t, map[string]int32{
		"b":  1,
		"bc": 2,
	})

	matches := trie.CommonPrefixSearch([]byte("abc"), 1)
	require.Len(t, matches, 2)
	assert.Equal(t, 2, matches[0].MatchedEndOffset)
	assert.Equal(t, 3, matches[1].MatchedEndOffset)
}

func TestTrieNoMatch(t *testing.T) {
	trie := buildTestTrie(t, map[string]int32{"a": 1})
	matches := trie.CommonPrefixSearch([]byte("xyz"), 0)
	assert.Empty(t, matches)
}

// TestTrieRoundTrip exercises the round-trip property from spec.md §8's
// testable properties: every inserted key is exactly and only recoverable
// via ExactMatch, and common-prefix search never reports a prefix that was
// not inserted.
func TestTrieRoundTrip(t *testing.T) {
	entries := map[string]int32{
		"す":     10,
		"すだち":   11,
		"すだちごく": 12,
		"た":     13,
		"たべる":   14,
	}
	trie := buildTestTrie(t, entries)

	for k, v := range entries {
		got, ok := trie.ExactMatch([]byte(k))
		require.Truef(t, ok, "expected %q to match", k)
		assert.Equal(t, v, got)
	}

	matches := trie.CommonPrefixSearch([]byte("すだちごくあ"), 0)
	gotValues := make(map[int32]bool)
	for _, m := range matches {
		gotValues[m.Value] = true
	}
	assert.True(t, gotValues[10])
	assert.True(t, gotValues[11])
	assert.True(t, gotValues[12])
	assert.Len(t, matches, 3)
}
