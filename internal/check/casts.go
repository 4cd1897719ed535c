package check

import "github.com/tesc-lang/tesc/internal/types"

// castAllowed implements spec.md §4.3's allowed-cast set: any primitive
// to String; String to Int|Float|Bool; Int<->Float, Int<->Bool,
// Float<->Bool.
func castAllowed(from, to types.Type) bool {
	if to.Tag == types.StringT {
		switch from.Tag {
		case types.StringT, types.IntT, types.FloatT, types.BoolT:
			return true
		}
		return false
	}
	switch from.Tag {
	case types.StringT:
		switch to.Tag {
		case types.IntT, types.FloatT, types.BoolT:
			return true
		}
	case types.IntT:
		switch to.Tag {
		case types.FloatT, types.BoolT:
			return true
		}
	case types.FloatT:
		switch to.Tag {
		case types.IntT, types.BoolT:
			return true
		}
	case types.BoolT:
		switch to.Tag {
		case types.IntT, types.FloatT:
			return true
		}
	}
	return false
}
