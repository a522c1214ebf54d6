package scicalc

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// MaxMagnitude is the smallest magnitude a value cannot have. Any result or
// intermediate value at least this large is an overflow.
const MaxMagnitude = 1e100

// MinMagnitude is the smallest nonzero magnitude a value can have. Smaller
// values become zero.
const MinMagnitude = 1e-99

// Digits is the number of significant decimal digits in a result.
const Digits = 15

// Context is the state of a calculator: the angle mode, the registers, and
// the history log, along with scratch space for evaluating expressions. It
// is not safe to use a Context concurrently.
type Context struct {
	stack []*big.Float
	nums  map[string]*big.Float
	prec  uint
	mode  AngleMode
	store *Store
	hist  *History
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		reg Register
		val float64
	}
	precopt  uint
	modeopt  AngleMode
	storeopt struct{ s *Store }
	histopt  struct{ h *History }
)

func (varopt) ctxOption()   {}
func (precopt) ctxOption()  {}
func (modeopt) ctxOption()  {}
func (storeopt) ctxOption() {}
func (histopt) ctxOption()  {}

// SetVar sets the value of a register in the context.
func SetVar(reg Register, val float64) ContextOption {
	return varopt{reg, val}
}

// Prec sets the precision of calculations in bits.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// Mode sets the initial angle mode.
func Mode(m AngleMode) ContextOption {
	return modeopt(m)
}

// WithStore makes the context use s for its registers instead of a new one.
func WithStore(s *Store) ContextOption {
	return storeopt{s}
}

// WithHistory makes the context record into h instead of a new log.
func WithHistory(h *History) ContextOption {
	return histopt{h}
}

// NewContext creates a new calculator context. If no precision is given, the
// default is 64. The default angle mode is Degrees, and all registers start at
// zero.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{
		nums:  make(map[string]*big.Float),
		prec:  64,
		store: new(Store),
		hist:  new(History),
	}
	// Apply everything but variables first so that variables go to the right
	// store.
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil, varopt:
			// Do nothing yet.
		case precopt:
			ctx.prec = uint(opt)
		case modeopt:
			ctx.mode = AngleMode(opt)
		case storeopt:
			if opt.s != nil {
				ctx.store = opt.s
			}
		case histopt:
			if opt.h != nil {
				ctx.hist = opt.h
			}
		default:
			panic("scicalc: unknown option type")
		}
	}
	for _, opt := range opts {
		if v, ok := opt.(varopt); ok {
			ctx.store.Store(v.reg, v.val)
		}
	}
	return &ctx
}

// EvaluateExpression tokenizes, parses, and evaluates an expression using the
// given angle mode and registers. On success, the result also becomes the
// store's Ans.
func EvaluateExpression(text string, mode AngleMode, vars *Store) (float64, error) {
	ctx := NewContext(Mode(mode), WithStore(vars))
	return ctx.Evaluate(text)
}

// Evaluate tokenizes, parses, and evaluates an expression. On success, the
// result also becomes Ans. Evaluate does not record history; callers decide
// what to push.
func (ctx *Context) Evaluate(text string) (float64, error) {
	e, err := ParseString(text)
	if err != nil {
		return 0, err
	}
	r, err := ctx.Eval(e)
	if err != nil {
		return 0, err
	}
	ctx.store.SetAns(r)
	return r, nil
}

// Eval evaluates a parsed expression. Stores in the expression take effect
// even if a later part of the expression fails.
func (ctx *Context) Eval(e *Expr) (float64, error) {
	ctx.stack = ctx.stack[:0]
	if err := e.n.eval(ctx); err != nil {
		return 0, err
	}
	if len(ctx.stack) != 1 {
		panic("scicalc: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad AST?)")
	}
	r, _ := ctx.stack[0].Float64()
	return round15(r), nil
}

// AngleMode returns the current angle mode.
func (ctx *Context) AngleMode() AngleMode {
	return ctx.mode
}

// SetAngleMode changes the angle mode for all later evaluations.
func (ctx *Context) SetAngleMode(m AngleMode) {
	ctx.mode = m
}

// Store returns the context's registers.
func (ctx *Context) Store() *Store {
	return ctx.store
}

// StoreVariable sets a register, like STO.
func (ctx *Context) StoreVariable(r Register, v float64) {
	ctx.store.Store(r, v)
}

// RecallVariable gets a register, like RCL.
func (ctx *Context) RecallVariable(r Register) float64 {
	return ctx.store.Recall(r)
}

// MemoryAdd adds v to the independent memory.
func (ctx *Context) MemoryAdd(v float64) {
	ctx.store.MemoryAdd(v)
}

// MemorySubtract subtracts v from the independent memory.
func (ctx *Context) MemorySubtract(v float64) {
	ctx.store.MemorySubtract(v)
}

// PushHistory records an evaluation in the context's history.
func (ctx *Context) PushHistory(expr string, result float64) {
	ctx.hist.Push(expr, result)
}

// History returns the context's history log.
func (ctx *Context) History() *History {
	return ctx.hist
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num gets a possibly cached number from its text.
func (ctx *Context) num(s string) *big.Float {
	if r := ctx.nums[s]; r != nil {
		return r
	}
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(s, 10)
	if err != nil {
		// Tokenizing leaves only exponents too large for big.Float to fail.
		// Hugely negative ones are zero; anything else overflows.
		r = new(big.Float).SetPrec(ctx.prec)
		if !strings.Contains(s, "e-") {
			r.SetInf(false)
		}
	}
	ctx.nums[s] = r
	return r
}

// limit checks that the top of the stack is in range, flushing tiny values to
// zero. The comparison uses the value as it would be displayed, so anything
// that would show as 1×10^100 is already out of range.
func (ctx *Context) limit(op string) error {
	v := ctx.top()
	if v.IsInf() {
		return &OverflowError{Op: op}
	}
	f, _ := v.Float64()
	a := math.Abs(round15(f))
	if a >= MaxMagnitude || math.IsInf(f, 0) {
		return &OverflowError{Op: op}
	}
	if a < MinMagnitude && v.Sign() != 0 {
		v.SetInt64(0)
	}
	return nil
}

// eval pushes the node's value to the context's stack.
func (n *node) eval(ctx *Context) error {
	switch n.kind {
	case nodeNum:
		ctx.push().Set(ctx.num(n.name))
	case nodeConst:
		c := globalconsts[n.name]
		if err := c.Call(ctx, nil, ctx.push()); err != nil {
			return err
		}
	case nodeName:
		v := ctx.store.Ans()
		if n.name != ansName {
			reg, ok := ParseRegister(n.name)
			if !ok {
				panic("scicalc: invalid register " + strconv.Quote(n.name))
			}
			v = ctx.store.Recall(reg)
		}
		if math.IsNaN(v) {
			return &DomainError{Func: n.name}
		}
		ctx.push().SetFloat64(v)
	case nodeCall:
		r := ctx.push()
		k := len(ctx.stack)
		for l := n.right; l != nil; l = l.right {
			if err := l.left.eval(ctx); err != nil {
				return err
			}
		}
		invoc := ctx.stack[k:len(ctx.stack):len(ctx.stack)]
		if err := n.fn.Call(ctx, invoc, r); err != nil {
			if de, _ := err.(*DomainError); de != nil {
				if de.Func == "" {
					de.Func = n.name
				}
				if de.X != nil {
					de.X = new(big.Float).Copy(de.X)
				}
			}
			if oe, _ := err.(*OverflowError); oe != nil && oe.Op == "" {
				oe.Op = n.name
			}
			return err
		}
		ctx.stack = ctx.stack[:k]
	case nodeArg:
		panic("scicalc: eval on nodeArg")
	case nodeNeg:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		v.Neg(v)
	case nodeFact:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		if err := factorial(v, v); err != nil {
			return err
		}
	case nodeSquare, nodeCube:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		var x big.Float
		x.Copy(v)
		v.Mul(v, &x)
		if n.kind == nodeCube {
			v.Mul(v, &x)
		}
	case nodeRecip:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		if v.Sign() == 0 {
			return &DivideByZeroError{Op: recipOp}
		}
		v.Quo(new(big.Float).SetInt64(1), v)
	case nodePercent:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		v.Quo(v, new(big.Float).SetInt64(100))
	case nodeSqrt:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		if err := guard(v, func() { sqrt(v, v) }); err != nil {
			return err
		}
	case nodeCbrt:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		x, _ := v.Float64()
		v.SetFloat64(round15(math.Cbrt(x)))
	case nodeAdd:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		l.Add(l, r)
	case nodeSub:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		l.Sub(l, r)
	case nodeMul:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		l.Mul(l, r)
	case nodeDiv:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		if r.Sign() == 0 {
			return &DivideByZeroError{Op: "÷"}
		}
		l.Quo(l, r)
	case nodePow:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		if err := pow(l, l, r); err != nil {
			return err
		}
	case nodeStore:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		reg, ok := ParseRegister(n.name)
		if !ok {
			panic("scicalc: store to invalid register " + strconv.Quote(n.name))
		}
		v, _ := ctx.top().Float64()
		ctx.store.Store(reg, round15(v))
	default:
		panic("scicalc: invalid AST node " + n.kind.String())
	}
	return ctx.limit(n.opname())
}

// opname names the operation a node performs for error messages.
func (n *node) opname() string {
	switch n.kind {
	case nodeNum, nodeConst, nodeName, nodeCall, nodeStore:
		return n.name
	case nodeNeg:
		return "-"
	case nodeSqrt:
		return "√"
	case nodeCbrt:
		return "∛"
	}
	if s, ok := postfixes[n.kind]; ok {
		return s
	}
	return strings.TrimSpace(infixes[n.kind])
}

// maxIntPow is the largest integer exponent computed by repeated squaring.
const maxIntPow = 1 << 16

// pow sets z to x^y. z may alias x.
func pow(z, x, y *big.Float) error {
	if x.Sign() == 0 {
		switch y.Sign() {
		case 0:
			return &DomainError{X: new(big.Float).Copy(y), Arg: 2, Func: "^"}
		case -1:
			return &DivideByZeroError{Op: "^"}
		}
		z.SetInt64(0)
		return nil
	}
	if !y.IsInt() && x.Signbit() {
		return &DomainError{X: new(big.Float).Copy(x), Arg: 1, Func: "^"}
	}
	// Estimate the decimal exponent of the result so that absurd powers fail
	// fast instead of computing enormous intermediate values.
	xf, _ := x.Float64()
	yf, _ := y.Float64()
	est := yf * math.Log10(math.Abs(xf))
	switch {
	case est > 101:
		return &OverflowError{Op: "^"}
	case est < -120:
		z.SetInt64(0)
		return nil
	}
	if y.IsInt() {
		if i, acc := y.Int64(); acc == big.Exact && -maxIntPow <= i && i <= maxIntPow {
			powint(z, x, i)
			return nil
		}
		yi, _ := y.Int(nil)
		neg := x.Signbit() && yi.Bit(0) == 1
		b := new(big.Float).Abs(x)
		if err := guard(x, func() { bigfloat.Pow(z, b, y) }); err != nil {
			return err
		}
		if neg {
			z.Neg(z)
		}
		return nil
	}
	b := new(big.Float).Copy(x)
	return guard(x, func() { bigfloat.Pow(z, b, y) })
}

// powint sets z to x^n by repeated squaring. z may alias x; x must be
// nonzero.
func powint(z, x *big.Float, n int64) {
	b := new(big.Float).Copy(x)
	neg := n < 0
	if neg {
		n = -n
	}
	z.SetInt64(1)
	for n > 0 {
		if n&1 == 1 {
			z.Mul(z, b)
		}
		b.Mul(b, b)
		n >>= 1
	}
	if neg {
		z.Quo(new(big.Float).SetInt64(1), z)
	}
}

// round15 rounds x to Digits significant decimal digits.
func round15(x float64) float64 {
	if x == 0 || math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'g', Digits, 64), 64)
	if err != nil {
		return x
	}
	return r
}
