package check

// Whitelisted "boring" constants that never trigger a MagicLiteral
// warning (spec.md §6, grounded on
// _examples/original_source/src/white_listed_constants.rs).
var whitelistedInts = map[int64]bool{}
var whitelistedFloats = map[float64]bool{}
var whitelistedBools = map[bool]bool{true: true, false: true}

func init() {
	for i := int64(-1); i <= 10; i++ {
		whitelistedInts[i] = true
	}
	whitelistedInts[100] = true

	for _, f := range []float64{-1.0, 0.0, 0.1, 1.0, 1.5} {
		whitelistedFloats[f] = true
	}
	for f := 2.0; f <= 10.0; f++ {
		whitelistedFloats[f] = true
	}
	whitelistedFloats[100.0] = true
}
