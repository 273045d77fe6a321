// File: combinator.go
// Title: Parser Combinator Substrate
// Description: Implements the character-level parser combinators the mChat
//              grammar engine is built on. A Parser consumes a prefix of its
//              input string and either succeeds with a value and the
//              remaining input, or fails without consuming anything.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package combinator

import (
	"strings"
	"unicode/utf8"
)

// Parser consumes a prefix of input. On success it returns the parsed
// value, the unconsumed remainder and true. On failure it returns the
// zero value, the original input and false; a failing parser never
// consumes input.
type Parser[T any] func(input string) (value T, rest string, ok bool)

// Run applies p to input and reports the parsed value, the unconsumed
// remainder and whether the parse succeeded
func Run[T any](p Parser[T], input string) (T, string, bool) {
	return p(input)
}

// Pure succeeds with v without consuming input
func Pure[T any](v T) Parser[T] {
	return func(input string) (T, string, bool) {
		return v, input, true
	}
}

// Fail fails unconditionally
func Fail[T any]() Parser[T] {
	return func(input string) (T, string, bool) {
		var zero T
		return zero, input, false
	}
}

// End succeeds with an empty string only at end of input
func End() Parser[string] {
	return func(input string) (string, string, bool) {
		if len(input) == 0 {
			return "", input, true
		}
		return "", input, false
	}
}

// Satisfy consumes a single rune for which pred returns true
func Satisfy(pred func(r rune) bool) Parser[string] {
	return func(input string) (string, string, bool) {
		r, size := utf8.DecodeRuneInString(input)
		if size == 0 || r == utf8.RuneError && size == 1 {
			return "", input, false
		}
		if !pred(r) {
			return "", input, false
		}
		return input[:size], input[size:], true
	}
}

// Rune consumes exactly the rune r
func Rune(r rune) Parser[string] {
	return Satisfy(func(c rune) bool { return c == r })
}

// OneOf consumes a single rune contained in set
func OneOf(set string) Parser[string] {
	return Satisfy(func(r rune) bool { return strings.ContainsRune(set, r) })
}

// NoneOf consumes a single rune not contained in set
func NoneOf(set string) Parser[string] {
	return Satisfy(func(r rune) bool { return !strings.ContainsRune(set, r) })
}

// Map transforms the value of a successful parse
func Map[A, B any](p Parser[A], fn func(A) B) Parser[B] {
	return func(input string) (B, string, bool) {
		value, rest, ok := p(input)
		if !ok {
			var zero B
			return zero, input, false
		}
		return fn(value), rest, true
	}
}

// Bind sequences two parsers, letting the second depend on the first's
// value. If the second parser fails the whole sequence fails without
// consuming input.
func Bind[A, B any](p Parser[A], fn func(A) Parser[B]) Parser[B] {
	return func(input string) (B, string, bool) {
		value, rest, ok := p(input)
		if !ok {
			var zero B
			return zero, input, false
		}
		result, rest2, ok := fn(value)(rest)
		if !ok {
			var zero B
			return zero, input, false
		}
		return result, rest2, true
	}
}

// Left runs a then b, keeping a's value
func Left[A, B any](a Parser[A], b Parser[B]) Parser[A] {
	return Bind(a, func(v A) Parser[A] {
		return Map(b, func(B) A { return v })
	})
}

// Right runs a then b, keeping b's value
func Right[A, B any](a Parser[A], b Parser[B]) Parser[B] {
	return Bind(a, func(A) Parser[B] { return b })
}

// Alt tries each parser in order on the same input, succeeding with the
// first that succeeds
func Alt[T any](parsers ...Parser[T]) Parser[T] {
	return func(input string) (T, string, bool) {
		for _, p := range parsers {
			if value, rest, ok := p(input); ok {
				return value, rest, true
			}
		}
		var zero T
		return zero, input, false
	}
}

// Optional runs p, substituting def when it fails
func Optional[T any](p Parser[T], def T) Parser[T] {
	return Alt(p, Pure(def))
}

// Many applies p zero or more times, collecting the values. Iteration
// stops when p fails or stops consuming input, so a parser that matches
// the empty string cannot loop forever.
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(input string) ([]T, string, bool) {
		var values []T
		rest := input
		for {
			value, next, ok := p(rest)
			if !ok || len(next) == len(rest) {
				return values, rest, true
			}
			values = append(values, value)
			rest = next
		}
	}
}

// Some applies p one or more times, collecting the values
func Some[T any](p Parser[T]) Parser[[]T] {
	return func(input string) ([]T, string, bool) {
		first, rest, ok := p(input)
		if !ok {
			return nil, input, false
		}
		more, rest2, _ := Many(p)(rest)
		return append([]T{first}, more...), rest2, true
	}
}

// SepBy1 parses one or more items separated by sep
func SepBy1[T, S any](item Parser[T], sep Parser[S]) Parser[[]T] {
	return func(input string) ([]T, string, bool) {
		first, rest, ok := item(input)
		if !ok {
			return nil, input, false
		}
		values := []T{first}
		for {
			_, afterSep, ok := sep(rest)
			if !ok {
				return values, rest, true
			}
			value, afterItem, ok := item(afterSep)
			if !ok {
				// Trailing separator without an item is not consumed.
				return values, rest, true
			}
			values = append(values, value)
			rest = afterItem
		}
	}
}

// Join concatenates the string fragments of a successful parse. The
// substrate's join semantics insert no delimiter between fragments.
func Join(p Parser[[]string]) Parser[string] {
	return Map(p, func(parts []string) string {
		return strings.Join(parts, "")
	})
}

// NotEmpty fails when p succeeds with an empty string
func NotEmpty(p Parser[string]) Parser[string] {
	return func(input string) (string, string, bool) {
		value, rest, ok := p(input)
		if !ok || value == "" {
			return "", input, false
		}
		return value, rest, true
	}
}

// Until consumes runes until one of the stop parsers matches at the
// current position or the input ends. The stop parsers are only probed;
// they never consume. Until itself always succeeds, possibly with an
// empty result.
func Until(stops ...Parser[string]) Parser[string] {
	return func(input string) (string, string, bool) {
		consumed := 0
		rest := input
	scan:
		for len(rest) > 0 {
			for _, stop := range stops {
				if _, _, ok := stop(rest); ok {
					break scan
				}
			}
			_, size := utf8.DecodeRuneInString(rest)
			if size == 0 {
				break
			}
			consumed += size
			rest = rest[size:]
		}
		return input[:consumed], rest, true
	}
}
