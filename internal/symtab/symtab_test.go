package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tesc-lang/tesc/internal/types"
)

func TestEnv_InsertAndLookup(t *testing.T) {
	env := New()
	env.Insert(&Variable{Name: "x", Type: types.Int})
	v, ok := env.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, types.Int, v.Type)
}

func TestEnv_LookupMissing(t *testing.T) {
	env := New()
	_, ok := env.Lookup("missing")
	assert.False(t, ok)
}

func TestEnv_PushShadowsOuter(t *testing.T) {
	env := New()
	env.Insert(&Variable{Name: "x", Type: types.Int})
	env.Push()
	env.Insert(&Variable{Name: "x", Type: types.String})
	v, ok := env.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, types.String, v.Type)
}

func TestEnv_PopRestoresOuterBinding(t *testing.T) {
	env := New()
	env.Insert(&Variable{Name: "x", Type: types.Int})
	env.Push()
	env.Insert(&Variable{Name: "x", Type: types.String})
	env.Pop()
	v, ok := env.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, types.Int, v.Type)
}

func TestEnv_LookupLocalOnlyInnermost(t *testing.T) {
	env := New()
	env.Insert(&Variable{Name: "x", Type: types.Int})
	env.Push()
	_, ok := env.LookupLocal("x")
	assert.False(t, ok)
	env.Insert(&Variable{Name: "x", Type: types.String})
	_, ok = env.LookupLocal("x")
	assert.True(t, ok)
}

func TestEnv_PopAtGlobalScopeIsNoop(t *testing.T) {
	env := New()
	env.Pop()
	env.Insert(&Variable{Name: "x", Type: types.Int})
	_, ok := env.Lookup("x")
	assert.True(t, ok)
}

func TestEnv_FunctionTable(t *testing.T) {
	env := New()
	env.DefineFunction("f", &Function{})
	_, ok := env.LookupFunction("f")
	assert.True(t, ok)
	_, ok = env.LookupFunction("g")
	assert.False(t, ok)
}
