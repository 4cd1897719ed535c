package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual_SameTag(t *testing.T) {
	assert.True(t, Equal(Int, Int))
	assert.False(t, Equal(Int, String))
}

func TestEqual_AnyIsWildcard(t *testing.T) {
	assert.True(t, Equal(Any, Int))
	assert.True(t, Equal(String, Any))
}

func TestEqual_IterableComparesElem(t *testing.T) {
	assert.True(t, Equal(Iterable(String), Iterable(String)))
	assert.False(t, Equal(Iterable(String), Iterable(Int)))
}

func TestEqual_IterableVsScalarMismatch(t *testing.T) {
	assert.False(t, Equal(Iterable(String), String))
}

func TestString(t *testing.T) {
	assert.Equal(t, "string", String.String())
	assert.Equal(t, "iterable<string>", Iterable(String).String())
	assert.Equal(t, "regex", Regex.String())
}

func TestFromKeyword(t *testing.T) {
	tests := []struct {
		word string
		want Type
		ok   bool
	}{
		{"string", String, true},
		{"int", Int, true},
		{"float", Float, true},
		{"bool", Bool, true},
		{"none", None, true},
		{"regex", Regex, true},
		{"bogus", Any, false},
	}
	for _, tt := range tests {
		got, ok := FromKeyword(tt.word)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.want.Tag, got.Tag)
	}
}
