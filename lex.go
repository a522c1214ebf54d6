package scicalc

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a single lexical element of a calculator expression.
type Token struct {
	// Text is the slice of the input the token was scanned from. It is empty
	// only for implicit multiplications.
	Text string
	// Kind is the token type.
	Kind TokenKind
	// Pos is the 1-based rune column of the start of the token. Implicit
	// multiplications take the position of the token that follows them.
	Pos int
	// Implicit marks a multiplication inserted between adjacent terms, as in
	// 2π or 3(4+5).
	Implicit bool
}

func (t Token) String() string {
	if t.Implicit {
		return t.Kind.String() + ":(implicit ×)@" + strconv.Itoa(t.Pos)
	}
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	// TokenEOF marks the end of the input. Tokenize never returns it; the
	// parser synthesizes it when it runs out of tokens.
	TokenEOF TokenKind = iota
	// TokenNum is a decimal literal, possibly with an exponent.
	TokenNum
	// TokenOp is an operator: infix, prefix, postfix, or a store arrow.
	TokenOp
	// TokenFunc is a function name. Its arity comes from the function table.
	TokenFunc
	// TokenConst is π or e.
	TokenConst
	// TokenVar is a register name: A–F, X, Y, M, or Ans.
	TokenVar
	// TokenOpen is an open parenthesis.
	TokenOpen
	// TokenClose is a close parenthesis.
	TokenClose
	// TokenComma separates function arguments.
	TokenComma
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenNum:
		return "Num"
	case TokenOp:
		return "Op"
	case TokenFunc:
		return "Func"
	case TokenConst:
		return "Const"
	case TokenVar:
		return "Var"
	case TokenOpen:
		return "Open"
	case TokenClose:
		return "Close"
	case TokenComma:
		return "Comma"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the single-rune operators. The ASCII runes *, / and -
// are aliases for ×, ÷ and −. The two-rune reciprocal operator ⁻¹ is
// recognized separately.
const Operators = "+-−*×/÷^%!√∛²³=→"

// PostfixOperators are the operators which apply to the term before them.
const PostfixOperators = "!²³%" + recipOp

const recipOp = "⁻¹"

// exponent markers which may follow a mantissa, longest first.
var expmarks = []string{"×10^", "ᴇ", "E", "e"}

// lexnames maps every multi-rune or alphabetic name the tokenizer knows to
// its token kind. names is the same set ordered longest first so that the
// scanner can match greedily.
var (
	lexnames = map[string]TokenKind{}
	names    []string
)

func init() {
	for k := range globalfuncs {
		lexnames[k] = TokenFunc
	}
	for k := range funcaliases {
		lexnames[k] = TokenFunc
	}
	for k := range globalconsts {
		lexnames[k] = TokenConst
	}
	for _, r := range registerNames {
		lexnames[string(r)] = TokenVar
	}
	lexnames[ansName] = TokenVar
	names = make([]string, 0, len(lexnames))
	for k := range lexnames {
		names = append(names, k)
	}
	sortnames(names)
}

// sortnames orders names by decreasing rune length, then lexically, without
// using package sort because that has reflection and allocation problems.
func sortnames(v []string) {
	less := func(a, b string) bool {
		la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
		if la != lb {
			return la > lb
		}
		return a < b
	}
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && less(v[j], v[j-1]); j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
}

type lexer struct {
	src []rune
	// off is the index of the next rune to scan.
	off int
}

// Tokenize converts an expression into tokens, inserting implicit
// multiplications between adjacent terms. Whitespace is skipped. The first
// unrecognized character produces a *LexError.
func Tokenize(src string) ([]Token, error) {
	l := lexer{src: []rune(src)}
	var toks []Token
	for {
		tok, ok, err := l.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return toks, nil
		}
		if len(toks) > 0 && implicit(toks[len(toks)-1], tok) {
			toks = append(toks, Token{Kind: TokenOp, Text: "", Pos: tok.Pos, Implicit: true})
		}
		toks = append(toks, tok)
	}
}

// next scans the next token. The second result is false at the end of the
// input.
func (l *lexer) next() (Token, bool, error) {
	for l.off < len(l.src) && unicode.IsSpace(l.src[l.off]) {
		l.off++
	}
	if l.off >= len(l.src) {
		return Token{}, false, nil
	}
	start := l.off
	tok := Token{Pos: start + 1}
	r := l.src[start]
	switch {
	case '0' <= r && r <= '9', r == '.':
		if err := l.scanNum(); err != nil {
			return tok, false, err
		}
		tok.Kind = TokenNum
	case r == '(':
		l.off++
		tok.Kind = TokenOpen
	case r == ')':
		l.off++
		tok.Kind = TokenClose
	case r == ',':
		l.off++
		tok.Kind = TokenComma
	default:
		if name := l.matchName(); name != "" {
			l.off += utf8.RuneCountInString(name)
			tok.Kind = lexnames[name]
			break
		}
		if l.hasPrefix(recipOp) {
			l.off += utf8.RuneCountInString(recipOp)
			tok.Kind = TokenOp
			break
		}
		if strings.ContainsRune(Operators, r) {
			l.off++
			tok.Kind = TokenOp
			break
		}
		kind := ""
		if unicode.IsLetter(r) {
			kind = "name"
		}
		return tok, false, &LexError{Text: string(r), Kind: kind, Col: start + 1}
	}
	tok.Text = string(l.src[start:l.off])
	return tok, true, nil
}

// scanNum scans a numeric literal starting at the current offset.
func (l *lexer) scanNum() error {
	start := l.off
	var dig, dot bool
	for ; l.off < len(l.src); l.off++ {
		r := l.src[l.off]
		if r == '.' {
			if dot {
				return &LexError{Text: string(l.src[start : l.off+1]), Kind: "number", Col: l.off + 1}
			}
			dot = true
			continue
		}
		if r < '0' || '9' < r {
			break
		}
		dig = true
	}
	if !dig {
		return &LexError{Text: string(l.src[start:l.off]), Kind: "number", Col: start + 1}
	}
	// An exponent marker only belongs to the number if an exponent follows
	// it. Otherwise 2e is 2·e and 2E is 2·E.
	for _, m := range expmarks {
		if !l.hasPrefix(m) {
			continue
		}
		k := l.off + utf8.RuneCountInString(m)
		if k < len(l.src) && strings.ContainsRune("+-−", l.src[k]) {
			k++
		}
		e := k
		for k < len(l.src) && '0' <= l.src[k] && l.src[k] <= '9' {
			k++
		}
		if k > e {
			l.off = k
		}
		break
	}
	return nil
}

// matchName returns the longest known name at the current offset, or the
// empty string if there is none.
func (l *lexer) matchName() string {
	for _, name := range names {
		if l.hasPrefix(name) {
			return name
		}
	}
	return ""
}

func (l *lexer) hasPrefix(s string) bool {
	k := l.off
	for _, r := range s {
		if k >= len(l.src) || l.src[k] != r {
			return false
		}
		k++
	}
	return true
}

// implicit reports whether a multiplication is implied between two adjacent
// tokens.
func implicit(prev, cur Token) bool {
	switch prev.Kind {
	case TokenNum, TokenConst, TokenVar, TokenClose:
	case TokenOp:
		if !ispostfix(prev.Text) {
			return false
		}
	default:
		return false
	}
	switch cur.Kind {
	case TokenVar, TokenConst, TokenFunc, TokenOpen:
		return true
	case TokenNum:
		// "2 3" is two numbers, not a product.
		return prev.Kind != TokenNum
	case TokenOp:
		return cur.Text == "√" || cur.Text == "∛"
	}
	return false
}

func ispostfix(op string) bool {
	switch op {
	case "!", "²", "³", "%", recipOp:
		return true
	}
	return false
}

// numlit converts the text of a number token to the syntax accepted by
// big.Float.Parse.
func numlit(s string) string {
	mant, exp := s, ""
	for _, m := range expmarks {
		if k := strings.Index(s, m); k >= 0 {
			mant, exp = s[:k], strings.ReplaceAll(s[k+len(m):], "−", "-")
			break
		}
	}
	if strings.HasPrefix(mant, ".") {
		mant = "0" + mant
	}
	if strings.HasSuffix(mant, ".") {
		mant += "0"
	}
	if exp == "" {
		return mant
	}
	return mant + "e" + exp
}

// LexError indicates an unrecognized character or a malformed number. It
// implements InputError.
type LexError struct {
	// Text is the offending text.
	Text string
	// Kind is the type of token the lexer was scanning: "number", "name", or
	// the empty string if no token kind had been decided.
	Kind string
	// Col is the 1-based rune column of the error.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "unrecognized character "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Reason() string {
	return ReasonUnrecognized
}

func (err *LexError) Is(target error) bool {
	return target == ErrSyntax
}
