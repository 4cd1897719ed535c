package regexenum

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sorted(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

func TestEnumerate_Literal(t *testing.T) {
	result, err := Enumerate("ab", 3)
	assert.NoError(t, err)
	assert.Equal(t, []string{"ab"}, result)
}

func TestEnumerate_CharClass(t *testing.T) {
	result, err := Enumerate("[ab]", 3)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, sorted(result))
}

func TestEnumerate_Concatenation(t *testing.T) {
	result, err := Enumerate("[ab]c", 3)
	assert.NoError(t, err)
	assert.Equal(t, []string{"ac", "bc"}, sorted(result))
}

func TestEnumerate_Alternation(t *testing.T) {
	result, err := Enumerate("cat|dog", 3)
	assert.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, sorted(result))
}

func TestEnumerate_QuestionMark(t *testing.T) {
	result, err := Enumerate("ab?", 3)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "ab"}, sorted(result))
}

func TestEnumerate_BoundedRepetition(t *testing.T) {
	result, err := Enumerate("a{1,2}", 5)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "aa"}, sorted(result))
}

func TestEnumerate_StarIsBoundedByMaxBound(t *testing.T) {
	result, err := Enumerate("a*", 2)
	assert.NoError(t, err)
	assert.Equal(t, []string{"", "a", "aa"}, sorted(result))
}

func TestEnumerate_PlusExcludesEmpty(t *testing.T) {
	result, err := Enumerate("a+", 2)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "aa"}, sorted(result))
}

func TestEnumerate_CaptureGroupTransparent(t *testing.T) {
	result, err := Enumerate("(ab)", 3)
	assert.NoError(t, err)
	assert.Equal(t, []string{"ab"}, result)
}

func TestEnumerate_NonAsciiClassDropped(t *testing.T) {
	result, err := Enumerate("[aé]", 3)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a"}, result)
}

func TestEnumerate_InvalidPatternErrors(t *testing.T) {
	_, err := Enumerate("[", 3)
	assert.Error(t, err)
}
