package scicalc

import (
	"errors"
	"testing"
)

func TestTokenize(t *testing.T) {
	imp := func(pos int) Token { return Token{Kind: TokenOp, Pos: pos, Implicit: true} }
	cases := []struct {
		src    string
		tokens []Token
	}{
		// spaces
		{"", nil},
		{" \t \r\n ", nil},
		// numbers
		{"0", []Token{{"0", TokenNum, 1, false}}},
		{"9876543210", []Token{{"9876543210", TokenNum, 1, false}}},
		{"  12.5", []Token{{"12.5", TokenNum, 3, false}}},
		{".5", []Token{{".5", TokenNum, 1, false}}},
		{"5.", []Token{{"5.", TokenNum, 1, false}}},
		{"1 0", []Token{{"1", TokenNum, 1, false}, {"0", TokenNum, 3, false}}},
		{"2e3", []Token{{"2e3", TokenNum, 1, false}}},
		{"2e-3", []Token{{"2e-3", TokenNum, 1, false}}},
		{"1.5×10^3", []Token{{"1.5×10^3", TokenNum, 1, false}}},
		{"3ᴇ−2", []Token{{"3ᴇ−2", TokenNum, 1, false}}},
		{"2E+5", []Token{{"2E+5", TokenNum, 1, false}}},
		// exponent markers without an exponent
		{"2e", []Token{{"2", TokenNum, 1, false}, imp(2), {"e", TokenConst, 2, false}}},
		{"2E", []Token{{"2", TokenNum, 1, false}, imp(2), {"E", TokenVar, 2, false}}},
		{"2×10", []Token{{"2", TokenNum, 1, false}, {"×", TokenOp, 2, false}, {"10", TokenNum, 3, false}}},
		// names
		{"π", []Token{{"π", TokenConst, 1, false}}},
		{"pi", []Token{{"pi", TokenConst, 1, false}}},
		{"e", []Token{{"e", TokenConst, 1, false}}},
		{"exp", []Token{{"exp", TokenFunc, 1, false}}},
		{"Ans", []Token{{"Ans", TokenVar, 1, false}}},
		{"sin(30)", []Token{{"sin", TokenFunc, 1, false}, {"(", TokenOpen, 4, false}, {"30", TokenNum, 5, false}, {")", TokenClose, 7, false}}},
		{"sin⁻¹(1)", []Token{{"sin⁻¹", TokenFunc, 1, false}, {"(", TokenOpen, 6, false}, {"1", TokenNum, 7, false}, {")", TokenClose, 8, false}}},
		{"nCr(5,2)", []Token{{"nCr", TokenFunc, 1, false}, {"(", TokenOpen, 4, false}, {"5", TokenNum, 5, false}, {",", TokenComma, 6, false}, {"2", TokenNum, 7, false}, {")", TokenClose, 8, false}}},
		// operators
		{"−2", []Token{{"−", TokenOp, 1, false}, {"2", TokenNum, 2, false}}},
		{"5!²", []Token{{"5", TokenNum, 1, false}, {"!", TokenOp, 2, false}, {"²", TokenOp, 3, false}}},
		{"2⁻¹", []Token{{"2", TokenNum, 1, false}, {"⁻¹", TokenOp, 2, false}}},
		{"A=5", []Token{{"A", TokenVar, 1, false}, {"=", TokenOp, 2, false}, {"5", TokenNum, 3, false}}},
		{"3→B", []Token{{"3", TokenNum, 1, false}, {"→", TokenOp, 2, false}, {"B", TokenVar, 3, false}}},
		// implicit multiplication
		{"2π", []Token{{"2", TokenNum, 1, false}, imp(2), {"π", TokenConst, 2, false}}},
		{"2A", []Token{{"2", TokenNum, 1, false}, imp(2), {"A", TokenVar, 2, false}}},
		{"3(4)", []Token{{"3", TokenNum, 1, false}, imp(2), {"(", TokenOpen, 2, false}, {"4", TokenNum, 3, false}, {")", TokenClose, 4, false}}},
		{"(1)(2)", []Token{{"(", TokenOpen, 1, false}, {"1", TokenNum, 2, false}, {")", TokenClose, 3, false}, imp(4), {"(", TokenOpen, 4, false}, {"2", TokenNum, 5, false}, {")", TokenClose, 6, false}}},
		{"2√3", []Token{{"2", TokenNum, 1, false}, imp(2), {"√", TokenOp, 2, false}, {"3", TokenNum, 3, false}}},
		{"2sin(0)", []Token{{"2", TokenNum, 1, false}, imp(2), {"sin", TokenFunc, 2, false}, {"(", TokenOpen, 5, false}, {"0", TokenNum, 6, false}, {")", TokenClose, 7, false}}},
		{"3!2", []Token{{"3", TokenNum, 1, false}, {"!", TokenOp, 2, false}, imp(3), {"2", TokenNum, 3, false}}},
		{"AB", []Token{{"A", TokenVar, 1, false}, imp(2), {"B", TokenVar, 2, false}}},
	}
	for _, c := range cases {
		got, err := Tokenize(c.src)
		if err != nil {
			t.Errorf("tokenizing %q: unexpected error %v", c.src, err)
			continue
		}
		if len(got) != len(c.tokens) {
			t.Errorf("tokenizing %q: want %v, got %v", c.src, c.tokens, got)
			continue
		}
		for i, want := range c.tokens {
			if got[i] != want {
				t.Errorf("tokenizing %q: token %d: want %v, got %v", c.src, i, want, got[i])
			}
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		src string
		err LexError
	}{
		{"$", LexError{Text: "$", Col: 1}},
		{"1+$", LexError{Text: "$", Col: 3}},
		{"x", LexError{Text: "x", Kind: "name", Col: 1}},
		{"An", LexError{Text: "n", Kind: "name", Col: 2}},
		{".", LexError{Text: ".", Kind: "number", Col: 1}},
		{"1.2.3", LexError{Text: "1.2.", Kind: "number", Col: 4}},
		{"[1]", LexError{Text: "[", Col: 1}},
	}
	for _, c := range cases {
		toks, err := Tokenize(c.src)
		if err == nil {
			t.Errorf("tokenizing %q: no error, got %v", c.src, toks)
			continue
		}
		var le *LexError
		if !errors.As(err, &le) {
			t.Errorf("tokenizing %q: wrong error type %T", c.src, err)
			continue
		}
		if *le != c.err {
			t.Errorf("tokenizing %q: want %+v, got %+v", c.src, c.err, *le)
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("tokenizing %q: error is not a syntax error", c.src)
		}
		if le.Reason() != ReasonUnrecognized {
			t.Errorf("tokenizing %q: reason %q", c.src, le.Reason())
		}
	}
}

func TestNumlit(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"12", "12"},
		{".5", "0.5"},
		{"5.", "5.0"},
		{"2e3", "2e3"},
		{"2E+5", "2e+5"},
		{"1.5×10^3", "1.5e3"},
		{"3ᴇ−2", "3e-2"},
		{".5×10^−1", "0.5e-1"},
	}
	for _, c := range cases {
		if got := numlit(c.in); got != c.want {
			t.Errorf("numlit(%q): want %q, got %q", c.in, c.want, got)
		}
	}
}

func TestNamesLongestFirst(t *testing.T) {
	for i := 1; i < len(names); i++ {
		if len([]rune(names[i])) > len([]rune(names[i-1])) {
			t.Errorf("%q sorts after shorter %q", names[i], names[i-1])
		}
	}
	for name := range globalfuncs {
		if lexnames[name] != TokenFunc {
			t.Errorf("function %q is not a function token", name)
		}
	}
}
