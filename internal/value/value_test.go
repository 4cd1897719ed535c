package value

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tesc-lang/tesc/internal/types"
)

func TestConstructors(t *testing.T) {
	assert.Equal(t, "hi", Str("hi").Str)
	assert.Equal(t, int64(5), Int(5).Int)
	assert.Equal(t, 1.5, Float(1.5).Float)
	assert.True(t, Bool(true).Bool)
	assert.Equal(t, types.None, None().Type)
}

func TestRegexSeq_HasIterableType(t *testing.T) {
	seq := RegexSeq([]Value{Str("a"), Str("b")})
	assert.Equal(t, types.IterableT, seq.Type.Tag)
	assert.Len(t, seq.Regex, 2)
}

func TestString_FormatsEachType(t *testing.T) {
	assert.Equal(t, "hi", Str("hi").String())
	assert.Equal(t, "5", Int(5).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "none", None().String())
	assert.Equal(t, "1.5", Float(1.5).String())
}
