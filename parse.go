package scicalc

import (
	"strings"
)

// Expr    = Store | Sum
// Store   = Reg '=' Sum | Sum '→' Reg
// Sum     = Product { ('+' | '−') Product }
// Product = Unary { ('×' | '÷' | implicit) Unary }
// Unary   = ('−' | '+') Unary | Power
// Power   = Postfix [ '^' Unary ]
// Postfix = Primary { '!' | '²' | '³' | '⁻¹' | '%' }
// Primary = num | const | Reg | 'Ans' | func '(' [ Sum { ',' Sum } ] ')' | '(' Sum ')' | ('√' | '∛') Radicand
// Radicand = [ '−' | '+' ] Primary

// MaxDepth is the deepest nesting of parentheses, signs, and right-associated
// powers the parser accepts.
const MaxDepth = 128

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of register names used in the expression.
	names []string
}

type parser struct {
	toks []Token
	// k is the index of the next token.
	k int
	// depth is the current recursion depth.
	depth int
	// groups is the number of open parentheses around the current term.
	groups int
	// names is the set of register names that have been seen this parse.
	names map[string]bool
}

// ParseString tokenizes and parses an expression.
func ParseString(src string) (*Expr, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// Parse parses a token sequence so it can be evaluated with a context. Parse
// validates only the shape of the expression and the arity of function calls;
// domain checks happen during evaluation.
func Parse(toks []Token) (*Expr, error) {
	p := parser{toks: toks, names: make(map[string]bool)}
	var target string
	if len(toks) >= 2 && toks[0].Kind == TokenVar && toks[1].Kind == TokenOp && toks[1].Text == "=" {
		// A=expr
		if _, ok := ParseRegister(toks[0].Text); !ok {
			return nil, &TrailingError{Col: toks[1].Pos, Text: toks[1].Text}
		}
		target = toks[0].Text
		p.k = 2
	}
	n, err := p.parseterm(exprprec)
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if target == "" && tok.Kind == TokenOp && tok.Text == "→" {
		// expr→A
		p.next()
		reg := p.next()
		if reg.Kind == TokenEOF {
			return nil, &EmptyExpressionError{Col: reg.Pos}
		}
		if _, ok := ParseRegister(reg.Text); reg.Kind != TokenVar || !ok {
			return nil, &TrailingError{Col: reg.Pos, Text: reg.Text}
		}
		target = reg.Text
		tok = p.peek()
	}
	switch tok.Kind {
	case TokenEOF:
	case TokenClose:
		return nil, &BracketError{Col: tok.Pos, Right: tok.Text}
	default:
		return nil, &TrailingError{Col: tok.Pos, Text: tok.Text}
	}
	if target != "" {
		n = &node{kind: nodeStore, name: target, left: n}
	}
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(p.names)),
	}
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// peek returns the next token without consuming it. Past the end of the
// input, the result is an EOF token positioned after the last token.
func (p *parser) peek() Token {
	if p.k < len(p.toks) {
		return p.toks[p.k]
	}
	pos := 1
	if len(p.toks) > 0 {
		last := p.toks[len(p.toks)-1]
		pos = last.Pos + len([]rune(last.Text))
	}
	return Token{Kind: TokenEOF, Pos: pos}
}

// next consumes and returns the next token.
func (p *parser) next() Token {
	tok := p.peek()
	if p.k < len(p.toks) {
		p.k++
	}
	return tok
}

// enter increases the recursion depth, failing once it passes MaxDepth.
func (p *parser) enter() error {
	p.depth++
	if p.depth > MaxDepth {
		return &DepthError{Col: p.peek().Pos}
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// parseterm parses a sequence of binary operations which bind more tightly
// than until. It leaves the token that ends the term unconsumed.
func (p *parser) parseterm(until operator) (*node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	n, err := p.parseunary(until)
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.Kind != TokenOp {
			return n, nil
		}
		prec := binop(tok)
		if prec.op == nodeNone || !prec.moreBinding(until) {
			// Either the end of this term or something the caller must
			// reject, like a store arrow in the middle of an expression.
			return n, nil
		}
		p.next()
		rhs, err := p.parseterm(prec)
		if err != nil {
			return nil, err
		}
		n = &node{kind: prec.op, left: n, right: rhs}
	}
}

// parseunary parses a signed power or a postfix term.
func (p *parser) parseunary(until operator) (*node, error) {
	tok := p.peek()
	if tok.Kind != TokenOp {
		return p.parsepostfix()
	}
	prec := unop(tok.Text)
	if prec.op == nodeNone {
		return p.parsepostfix()
	}
	p.next()
	if !prec.moreBinding(until) {
		// x^-y -> x^(-y)
		// Just use the new operator's precedence to simplify.
		prec.prec, prec.right = until.prec, until.right
	}
	rhs, err := p.parseterm(prec)
	if err != nil {
		return nil, err
	}
	if tok.Text == "+" {
		return rhs, nil
	}
	return &node{kind: nodeNeg, left: rhs}, nil
}

// parsepostfix parses a primary followed by any number of postfix operators.
func (p *parser) parsepostfix() (*node, error) {
	n, err := p.parseprimary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.Kind != TokenOp {
			return n, nil
		}
		kind := postfix(tok.Text)
		if kind == nodeNone {
			return n, nil
		}
		p.next()
		n = &node{kind: kind, left: n}
	}
}

// parseprimary parses a single operand.
func (p *parser) parseprimary() (*node, error) {
	tok := p.next()
	switch tok.Kind {
	case TokenNum:
		return &node{kind: nodeNum, name: numlit(tok.Text)}, nil
	case TokenConst:
		return &node{kind: nodeConst, name: constname(tok.Text)}, nil
	case TokenVar:
		p.names[tok.Text] = true
		return &node{kind: nodeName, name: tok.Text}, nil
	case TokenFunc:
		return p.parsecall(tok)
	case TokenOpen:
		n, err := p.parsegroup(tok)
		if err != nil {
			return nil, err
		}
		end := p.next()
		switch end.Kind {
		case TokenClose:
		case TokenEOF:
			return nil, &BracketError{Col: end.Pos, Left: tok.Text}
		default:
			return nil, &TrailingError{Col: end.Pos, Text: end.Text}
		}
		return n, nil
	case TokenOp:
		switch tok.Text {
		case "√", "∛":
			if err := p.enter(); err != nil {
				return nil, err
			}
			defer p.leave()
			rhs, err := p.parseradicand()
			if err != nil {
				return nil, err
			}
			kind := nodeSqrt
			if tok.Text == "∛" {
				kind = nodeCbrt
			}
			return &node{kind: kind, left: rhs}, nil
		}
		// Any other operator here is missing its left operand.
		return nil, &EmptyExpressionError{Col: tok.Pos, End: opname(tok)}
	case TokenClose:
		if p.groups == 0 {
			return nil, &BracketError{Col: tok.Pos, Right: tok.Text}
		}
		return nil, &EmptyExpressionError{Col: tok.Pos, End: tok.Text}
	case TokenComma:
		return nil, &EmptyExpressionError{Col: tok.Pos, End: tok.Text}
	case TokenEOF:
		return nil, &EmptyExpressionError{Col: tok.Pos}
	default:
		panic("scicalc: unknown token: " + tok.String())
	}
}

// parsegroup parses the contents of a parenthesized subexpression, leaving
// the closing token unconsumed.
func (p *parser) parsegroup(open Token) (*node, error) {
	p.groups++
	defer func() { p.groups-- }()
	n, err := p.parseterm(exprprec)
	if err != nil {
		// As a special case, reporting an unclosed bracket is more helpful
		// than a missing operand at the end of the input.
		if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
			err = &BracketError{Col: ee.Col, Left: open.Text}
		}
		return nil, err
	}
	return n, nil
}

// parseradicand parses the operand of a prefix root, which may carry its own
// sign.
func (p *parser) parseradicand() (*node, error) {
	tok := p.peek()
	if tok.Kind == TokenOp && unop(tok.Text).op != nodeNone {
		p.next()
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		rhs, err := p.parseradicand()
		if err != nil {
			return nil, err
		}
		if tok.Text == "+" {
			return rhs, nil
		}
		return &node{kind: nodeNeg, left: rhs}, nil
	}
	return p.parseprimary()
}

// parsecall parses the argument list of a function call and checks its
// arity.
func (p *parser) parsecall(name Token) (*node, error) {
	fn := globalfuncs[name.Text]
	if fn == nil {
		panic("scicalc: tokenized unknown function " + name.Text)
	}
	open := p.next()
	if open.Kind != TokenOpen {
		return nil, &CallError{Col: name.Pos, Func: name.Text, Len: -1}
	}
	var args node
	l := &args
	n := 0
	if p.peek().Kind == TokenClose {
		p.next()
	} else {
		for {
			rhs, err := p.parsegroup(open)
			if err != nil {
				return nil, err
			}
			l.right = &node{kind: nodeArg, left: rhs}
			l = l.right
			n++
			end := p.next()
			if end.Kind == TokenClose {
				break
			}
			switch end.Kind {
			case TokenComma:
				continue
			case TokenEOF:
				return nil, &BracketError{Col: end.Pos, Left: open.Text}
			default:
				return nil, &TrailingError{Col: end.Pos, Text: end.Text}
			}
		}
	}
	if !fn.CanCall(n) {
		return nil, &CallError{Col: name.Pos, Func: name.Text, Len: n}
	}
	return &node{kind: nodeCall, name: funcname(name.Text), fn: fn, right: args.right}, nil
}

// opname gives the text to report for an operator token.
func opname(tok Token) string {
	if tok.Implicit {
		return "×"
	}
	return tok.Text
}

// Vars returns the register names used when evaluating the expression,
// excluding a store target.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false)
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(tok Token) operator {
	if tok.Implicit {
		return operator{5, false, nodeMul}
	}
	switch tok.Text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-", "−":
		return operator{1, false, nodeSub}
	case "*", "×":
		return operator{5, false, nodeMul}
	case "/", "÷":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a prefix sign operator for a token string. If there is no such
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+", "-", "−":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

// postfix gets the node kind for a postfix operator, or nodeNone.
func postfix(text string) nodeKind {
	switch text {
	case "!":
		return nodeFact
	case "²":
		return nodeSquare
	case "³":
		return nodeCube
	case recipOp:
		return nodeRecip
	case "%":
		return nodePercent
	default:
		return nodeNone
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
