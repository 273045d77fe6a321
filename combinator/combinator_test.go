// File: combinator_test.go
// Title: Parser Combinator Tests
// Description: Unit tests for the combinator substrate covering the no-input-
//              consumed-on-failure contract, sequencing, alternation,
//              repetition and the scanning helpers.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package combinator

import (
	"testing"
	"unicode"
)

func TestSatisfy(t *testing.T) {
	letter := Satisfy(unicode.IsLetter)

	tests := []struct {
		name     string
		input    string
		wantOK   bool
		wantVal  string
		wantRest string
	}{
		{"matching rune", "abc", true, "a", "bc"},
		{"non-matching rune", "1bc", false, "", "1bc"},
		{"empty input", "", false, "", ""},
		{"multibyte rune", "äbc", true, "ä", "bc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, rest, ok := letter(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if val != tt.wantVal || rest != tt.wantRest {
				t.Errorf("got (%q, %q), want (%q, %q)", val, rest, tt.wantVal, tt.wantRest)
			}
		})
	}
}

func TestBindBacktracksOnSecondFailure(t *testing.T) {
	// First parser consumes, second fails; the whole sequence must
	// report the original input untouched.
	p := Bind(Rune('a'), func(string) Parser[string] { return Rune('z') })

	_, rest, ok := p("ab")
	if ok {
		t.Fatal("expected failure")
	}
	if rest != "ab" {
		t.Errorf("rest = %q, want untouched input", rest)
	}
}

func TestAltTriesInOrder(t *testing.T) {
	p := Alt(Rune('a'), Rune('b'))

	if val, _, ok := p("b"); !ok || val != "b" {
		t.Errorf("second alternative: got (%q, %v)", val, ok)
	}
	if _, rest, ok := p("c"); ok || rest != "c" {
		t.Errorf("no alternative: ok=%v rest=%q", ok, rest)
	}
}

func TestManyStopsWithoutProgress(t *testing.T) {
	// Until always succeeds, possibly empty. Many must not spin on it.
	p := Many(Until(Rune('x')))

	vals, rest, ok := p("x")
	if !ok {
		t.Fatal("expected success")
	}
	if len(vals) != 0 || rest != "x" {
		t.Errorf("got vals=%v rest=%q", vals, rest)
	}
}

func TestSomeRequiresOne(t *testing.T) {
	digits := Some(Satisfy(unicode.IsDigit))

	if _, _, ok := digits("abc"); ok {
		t.Error("expected failure on zero matches")
	}

	vals, rest, ok := digits("42x")
	if !ok || len(vals) != 2 || rest != "x" {
		t.Errorf("got (%v, %q, %v)", vals, rest, ok)
	}
}

func TestSepBy1LeavesTrailingSeparator(t *testing.T) {
	word := Join(Some(Satisfy(unicode.IsLetter)))
	p := SepBy1(word, Rune('.'))

	tests := []struct {
		name     string
		input    string
		want     []string
		wantRest string
	}{
		{"single item", "abc", []string{"abc"}, ""},
		{"three items", "a.b.c", []string{"a", "b", "c"}, ""},
		{"trailing separator", "a.b.", []string{"a", "b"}, "."},
		{"separator then garbage", "a.1", []string{"a"}, ".1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals, rest, ok := p(tt.input)
			if !ok {
				t.Fatal("expected success")
			}
			if len(vals) != len(tt.want) {
				t.Fatalf("got %v, want %v", vals, tt.want)
			}
			for i := range vals {
				if vals[i] != tt.want[i] {
					t.Errorf("vals[%d] = %q, want %q", i, vals[i], tt.want[i])
				}
			}
			if rest != tt.wantRest {
				t.Errorf("rest = %q, want %q", rest, tt.wantRest)
			}
		})
	}
}

func TestJoinConcatenatesWithoutDelimiter(t *testing.T) {
	p := Join(Many(Satisfy(unicode.IsLetter)))

	val, rest, ok := p("abc1")
	if !ok || val != "abc" || rest != "1" {
		t.Errorf("got (%q, %q, %v)", val, rest, ok)
	}
}

func TestUntilProbesStopsWithoutConsuming(t *testing.T) {
	p := Until(Rune('\''))

	tests := []struct {
		name     string
		input    string
		wantVal  string
		wantRest string
	}{
		{"stops before quote", "ab'c", "ab", "'c"},
		{"runs to end of input", "abc", "abc", ""},
		{"immediate stop", "'abc", "", "'abc"},
		{"empty input", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, rest, ok := p(tt.input)
			if !ok {
				t.Fatal("Until must always succeed")
			}
			if val != tt.wantVal || rest != tt.wantRest {
				t.Errorf("got (%q, %q), want (%q, %q)", val, rest, tt.wantVal, tt.wantRest)
			}
		})
	}
}

func TestNotEmptyRejectsEmptyMatch(t *testing.T) {
	p := NotEmpty(Until(Rune('\'')))

	if _, _, ok := p("'x"); ok {
		t.Error("expected failure on empty match")
	}
	if val, _, ok := p("x'"); !ok || val != "x" {
		t.Errorf("got (%q, %v)", val, ok)
	}
}

func TestEnd(t *testing.T) {
	if _, _, ok := End()(""); !ok {
		t.Error("expected success at end of input")
	}
	if _, _, ok := End()("x"); ok {
		t.Error("expected failure on remaining input")
	}
}

func TestOptional(t *testing.T) {
	p := Optional(Rune('a'), "-")

	if val, rest, _ := p("ab"); val != "a" || rest != "b" {
		t.Errorf("got (%q, %q)", val, rest)
	}
	if val, rest, _ := p("xy"); val != "-" || rest != "xy" {
		t.Errorf("got (%q, %q)", val, rest)
	}
}
