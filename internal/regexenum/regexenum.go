// Package regexenum implements the regex enumeration engine of spec.md
// §4.5: given a regex source and a repetition bound, it materialises the
// finite language the regex matches, up to that bound.
//
// It walks the standard library's regexp/syntax tree rather than the
// regexp engine itself — regexp/syntax is the canonical Go facility for
// structural regex analysis (literal/class/repeat/concat/alternate),
// which is exactly what this enumeration needs, and no third-party
// regex-AST library appears anywhere in the retrieved corpus to reach
// for instead (see DESIGN.md). This mirrors
// _examples/original_source/src/regex.rs's structural walk over
// regex_syntax::hir, generalised to support alternation, which the
// original's walker left unimplemented.
package regexenum

import (
	"fmt"
	"regexp/syntax"
)

// UnsupportedError reports a regex construct regexenum cannot enumerate:
// anchors, word boundaries, `.` and any other op the walker does not
// handle. Backreferences and lookaround never reach the walker, since
// regexp/syntax rejects them at parse time.
type UnsupportedError struct {
	Op syntax.Op
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported regex construct: %v", e.Op)
}

// Enumerate parses pattern and returns the ordered, deterministic (but
// not deduplicated) sequence of strings it matches, bounding any
// unbounded repetition at maxBound.
func Enumerate(pattern string, maxBound int) ([]string, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, err
	}
	return walk(re, maxBound)
}

func walk(re *syntax.Regexp, maxBound int) ([]string, error) {
	switch re.Op {
	case syntax.OpEmptyMatch:
		return []string{""}, nil

	case syntax.OpLiteral:
		return []string{string(re.Rune)}, nil

	case syntax.OpCharClass:
		return expandClass(re.Rune), nil

	case syntax.OpCapture:
		return walk(re.Sub[0], maxBound)

	case syntax.OpConcat:
		parts := make([][]string, len(re.Sub))
		for i, s := range re.Sub {
			p, err := walk(s, maxBound)
			if err != nil {
				return nil, err
			}
			parts[i] = p
		}
		return concatAll(parts), nil

	case syntax.OpAlternate:
		var result []string
		for _, s := range re.Sub {
			p, err := walk(s, maxBound)
			if err != nil {
				return nil, err
			}
			result = append(result, p...)
		}
		return result, nil

	case syntax.OpStar:
		return repeat(re.Sub[0], 0, maxBound, maxBound)

	case syntax.OpPlus:
		return repeat(re.Sub[0], 1, maxBound, maxBound)

	case syntax.OpQuest:
		return repeat(re.Sub[0], 0, 1, maxBound)

	case syntax.OpRepeat:
		hi := re.Max
		if hi < 0 {
			hi = maxBound
		}
		return repeat(re.Sub[0], re.Min, hi, maxBound)

	default:
		return nil, &UnsupportedError{Op: re.Op}
	}
}

func repeat(sub *syntax.Regexp, min, hi, maxBound int) ([]string, error) {
	subLang, err := walk(sub, maxBound)
	if err != nil {
		return nil, err
	}
	var result []string
	for n := min; n <= hi; n++ {
		result = append(result, repeatCombinations(subLang, n)...)
	}
	return result, nil
}

// repeatCombinations is the cartesian product of sub with itself, count
// times, concatenated in order (spec.md §4.5 "Repetition").
func repeatCombinations(sub []string, count int) []string {
	result := []string{""}
	for i := 0; i < count; i++ {
		var next []string
		for _, prefix := range result {
			for _, s := range sub {
				next = append(next, prefix+s)
			}
		}
		result = next
	}
	return result
}

// concatAll is ordered cartesian-product concatenation across parts,
// left to right (spec.md §4.5 "Concatenation").
func concatAll(parts [][]string) []string {
	if len(parts) == 0 {
		return []string{""}
	}
	result := parts[0]
	for _, part := range parts[1:] {
		var next []string
		for _, a := range result {
			for _, b := range part {
				next = append(next, a+b)
			}
		}
		result = next
	}
	return result
}

// expandClass enumerates a character class's rune ranges, restricted to
// ASCII graphic or ASCII whitespace, excluding newline (spec.md §4.5).
// Non-ASCII code points in a class are silently dropped, matching the
// original's behaviour (spec.md §9).
func expandClass(ranges []rune) []string {
	var result []string
	for i := 0; i+1 < len(ranges); i += 2 {
		lo, hi := ranges[i], ranges[i+1]
		for r := lo; r <= hi; r++ {
			if isEnumerableASCII(r) {
				result = append(result, string(r))
			}
			if r == 0x10FFFF { // guard against overflow on unbounded upper ranges
				break
			}
		}
	}
	return result
}

func isEnumerableASCII(r rune) bool {
	if r > 127 || r == '\n' {
		return false
	}
	switch r {
	case ' ', '\t', '\r', '\f':
		return true
	}
	return r >= 0x21 && r <= 0x7E
}
