// Package value implements the tesc runtime Value: a discriminated
// union over the primitive types plus finite sequences (spec.md §3).
package value

import (
	"fmt"
	"strconv"

	"github.com/tesc-lang/tesc/internal/types"
)

// Value is an immutable runtime value. "Mutation" of a variable replaces
// its binding in the owning scope's map; Values themselves never change
// after construction.
type Value struct {
	Type    types.Type
	Str     string
	Int     int64
	Float   float64
	Bool    bool
	Regex   []Value // element type == Type.Elem when Type.Tag == IterableT
}

func Str(s string) Value   { return Value{Type: types.String, Str: s} }
func Int(i int64) Value    { return Value{Type: types.Int, Int: i} }
func Float(f float64) Value { return Value{Type: types.Float, Float: f} }
func Bool(b bool) Value    { return Value{Type: types.Bool, Bool: b} }
func None() Value          { return Value{Type: types.None} }
func RegexSeq(elems []Value) Value {
	return Value{Type: types.Iterable(types.String), Regex: elems}
}

// String renders a Value the way print/println concatenate it.
func (v Value) String() string {
	switch v.Type.Tag {
	case types.StringT:
		return v.Str
	case types.IntT:
		return strconv.FormatInt(v.Int, 10)
	case types.FloatT:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case types.BoolT:
		return strconv.FormatBool(v.Bool)
	case types.NoneT:
		return "none"
	default:
		return fmt.Sprintf("%v", v)
	}
}
