package scicalc

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a calculator function from reals to reals with a fixed arity.
type Func interface {
	// Call evaluates the function. The function arguments are passed in
	// invoc, already evaluated left to right. The function must set r to its
	// result and should not use the value of r otherwise. invoc has a length
	// for which CanCall returned true. Call may modify the elements of invoc.
	// Call may store into the context's registers, as Pol and Rec do.
	Call(ctx *Context, invoc []*big.Float, r *big.Float) error

	// CanCall returns whether the function can be called with n arguments.
	// The parser rejects calls for which CanCall returns false, so Call never
	// sees them.
	CanCall(n int) bool
}

var globalfuncs = map[string]Func{
	"sin": trig(math.Sin),
	"cos": trig(math.Cos),
	"tan": Real(1, tangent),

	"asin": Real(1, arcsine(math.Asin)),
	"acos": Real(1, arcsine(math.Acos)),
	"atan": Real(1, func(ctx *Context, x []float64) (float64, error) {
		return ctx.mode.FromRadians(math.Atan(x[0])), nil
	}),

	"sinh": Real(1, hyperbolic(math.Sinh)),
	"cosh": Real(1, hyperbolic(math.Cosh)),
	"tanh": Real(1, hyperbolic(math.Tanh)),

	"asinh": Real(1, hyperbolic(math.Asinh)),
	"acosh": Real(1, func(ctx *Context, x []float64) (float64, error) {
		if x[0] < 1 {
			return 0, &DomainError{}
		}
		return math.Acosh(x[0]), nil
	}),
	"atanh": Real(1, func(ctx *Context, x []float64) (float64, error) {
		if x[0] <= -1 || x[0] >= 1 {
			return 0, &DomainError{}
		}
		return math.Atanh(x[0]), nil
	}),

	"ln":   Monadic(positive(bigfloat.Log)),
	"log":  Monadic(positive(log10)),
	"log₂": Monadic(positive(log2)),
	"exp":  Monadic(exp),
	"sqrt": Monadic(sqrt),
	"cbrt": Real(1, func(ctx *Context, x []float64) (float64, error) {
		return math.Cbrt(x[0]), nil
	}),
	"abs": Monadic((*big.Float).Abs),

	"nCr": combinfn{},
	"nPr": combinfn{perm: true},
	"Pol": Real(2, polar),
	"Rec": Real(2, rect),
}

// funcaliases maps alternate spellings of functions to their canonical names.
var funcaliases = map[string]string{
	"sin⁻¹": "asin",
	"cos⁻¹": "acos",
	"tan⁻¹": "atan",
}

func init() {
	for k, v := range funcaliases {
		globalfuncs[k] = globalfuncs[v]
	}
}

// funcname gets the canonical name of a function.
func funcname(name string) string {
	if c, ok := funcaliases[name]; ok {
		return c
	}
	return name
}

var globalconsts = map[string]Func{
	"π":  Niladic(bigfloat.Pi),
	"pi": Niladic(bigfloat.Pi),
	"e": Niladic(func(out *big.Float) *big.Float {
		var one big.Float
		one.SetFloat64(1)
		return bigfloat.Exp(out, &one)
	}),
}

// constname gets the canonical name of a constant.
func constname(name string) string {
	if name == "pi" {
		return "π"
	}
	return name
}

type monadic struct {
	f func(out, in *big.Float) *big.Float
}

func (m monadic) Call(ctx *Context, invoc []*big.Float, r *big.Float) error {
	in := invoc[0]
	r.SetPrec(ctx.Prec())
	return guard(in, func() { m.f(r, in) })
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a function of one variable into a Func. f must set out to its
// result, to the precision of out; its return value is always ignored. If f is
// called on an argument outside f's domain, it should panic with an error of
// type big.ErrNaN or *DomainError.
func Monadic(f func(out, in *big.Float) *big.Float) Func {
	return monadic{f}
}

type niladic struct {
	f func(out *big.Float) *big.Float
}

func (n niladic) Call(ctx *Context, invoc []*big.Float, r *big.Float) error {
	r.SetPrec(ctx.Prec())
	n.f(r)
	return nil
}

func (n niladic) CanCall(k int) bool {
	return k == 0
}

// Niladic wraps a function of zero variables, generally a function which
// computes a constant, into a Func. f must set out to its result; its return
// value is always ignored. Unlike Monadic, the wrapped function is expected
// never to panic.
func Niladic(f func(out *big.Float) *big.Float) Func {
	return niladic{f}
}

type realfn struct {
	n int
	f func(ctx *Context, x []float64) (float64, error)
}

func (f realfn) Call(ctx *Context, invoc []*big.Float, r *big.Float) error {
	var buf [2]float64
	x := buf[:0]
	for _, v := range invoc {
		t, _ := v.Float64()
		x = append(x, t)
	}
	y, err := f.f(ctx, x)
	if err != nil {
		if de, _ := err.(*DomainError); de != nil && de.X == nil && len(invoc) == 1 {
			de.X = invoc[0]
		}
		return err
	}
	switch {
	case math.IsNaN(y):
		return &DomainError{X: invoc[0]}
	case math.IsInf(y, 0):
		return &OverflowError{}
	}
	r.SetPrec(ctx.Prec()).SetFloat64(round15(y))
	return nil
}

func (f realfn) CanCall(n int) bool {
	return n == f.n
}

// Real wraps a float64 function of n variables into a Func. The result is
// rounded to 15 significant digits. f may return *DomainError with a nil X to
// have the argument filled in. NaN results are domain errors and infinite
// results are overflows.
func Real(n int, f func(ctx *Context, x []float64) (float64, error)) Func {
	return realfn{n, f}
}

// trigEpsilon is the distance from zero below which trigonometric results
// are exactly zero.
const trigEpsilon = 1e-15

func snap(y float64) float64 {
	if math.Abs(y) < trigEpsilon {
		return 0
	}
	return y
}

// trig wraps a circular function so that its argument is read in the
// context's angle mode.
func trig(f func(float64) float64) Func {
	return Real(1, func(ctx *Context, x []float64) (float64, error) {
		return snap(f(ctx.mode.ToRadians(x[0]))), nil
	})
}

func tangent(ctx *Context, x []float64) (float64, error) {
	t := ctx.mode.ToRadians(x[0])
	if math.Abs(math.Cos(t)) < 1e-12 {
		return 0, &DomainError{}
	}
	return snap(math.Tan(t)), nil
}

// arcsine wraps asin or acos so that it checks its domain and reports its
// result in the context's angle mode.
func arcsine(f func(float64) float64) func(*Context, []float64) (float64, error) {
	return func(ctx *Context, x []float64) (float64, error) {
		if x[0] < -1 || x[0] > 1 {
			return 0, &DomainError{}
		}
		return ctx.mode.FromRadians(f(x[0])), nil
	}
}

func hyperbolic(f func(float64) float64) func(*Context, []float64) (float64, error) {
	return func(ctx *Context, x []float64) (float64, error) {
		return f(x[0]), nil
	}
}

// polar converts rectangular coordinates to polar, storing r in X and θ in
// Y. The result is r.
func polar(ctx *Context, x []float64) (float64, error) {
	r := math.Hypot(x[0], x[1])
	t := ctx.mode.FromRadians(math.Atan2(x[1], x[0]))
	ctx.store.Store(RegX, round15(r))
	ctx.store.Store(RegY, round15(t))
	return r, nil
}

// rect converts polar coordinates to rectangular, storing x in X and y in Y.
// The result is x.
func rect(ctx *Context, x []float64) (float64, error) {
	t := ctx.mode.ToRadians(x[1])
	re := x[0] * snap(math.Cos(t))
	im := x[0] * snap(math.Sin(t))
	ctx.store.Store(RegX, round15(re))
	ctx.store.Store(RegY, round15(im))
	return re, nil
}

// positive wraps a logarithm so that non-positive arguments are domain
// errors.
func positive(f func(out, in *big.Float) *big.Float) func(out, in *big.Float) *big.Float {
	return func(out, in *big.Float) *big.Float {
		if in.Sign() <= 0 {
			panic(&DomainError{X: in})
		}
		return f(out, in)
	}
}

func log10(out, in *big.Float) *big.Float {
	var ten big.Float
	ten.SetPrec(out.Prec()).SetInt64(10)
	bigfloat.Log(&ten, &ten)
	bigfloat.Log(out, in)
	return out.Quo(out, &ten)
}

func log2(out, in *big.Float) *big.Float {
	var two big.Float
	two.SetPrec(out.Prec()).SetInt64(2)
	bigfloat.Log(&two, &two)
	bigfloat.Log(out, in)
	return out.Quo(out, &two)
}

// Arguments past which exp leaves the representable range.
const (
	expOverflow  = 231
	expUnderflow = -231
)

func exp(out, in *big.Float) *big.Float {
	x, _ := in.Float64()
	switch {
	case x > expOverflow:
		panic(&OverflowError{Op: "exp"})
	case x < expUnderflow:
		return out.SetInt64(0)
	}
	return bigfloat.Exp(out, in)
}

func sqrt(out, in *big.Float) *big.Float {
	if in.Signbit() && in.Sign() != 0 {
		panic(&DomainError{X: in, Func: "√"})
	}
	if in.Sign() == 0 {
		return out.SetInt64(0)
	}
	return out.Sqrt(in)
}

// guard runs f, converting panics with big.ErrNaN, *DomainError, or
// *OverflowError into errors. x is the argument to report for ErrNaN.
func guard(x *big.Float, f func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch r := r.(type) {
		case big.ErrNaN:
			err = &DomainError{X: x}
		case *DomainError:
			if r.X != nil {
				r.X = new(big.Float).Copy(r.X)
			}
			err = r
		case *OverflowError:
			err = r
		default:
			panic(r)
		}
	}()
	f()
	return nil
}

type combinfn struct {
	// perm selects permutations instead of combinations.
	perm bool
}

func (c combinfn) Call(ctx *Context, invoc []*big.Float, r *big.Float) error {
	for i, x := range invoc {
		if !x.IsInt() || x.Sign() < 0 {
			return &DomainError{X: x, Arg: i + 1}
		}
	}
	n, _ := invoc[0].Int(nil)
	k, _ := invoc[1].Int(nil)
	if k.Cmp(n) > 0 {
		return &DomainError{X: invoc[1], Arg: 2}
	}
	var v *big.Int
	if c.perm {
		v = permutations(n, k)
	} else {
		v = combinations(n, k)
	}
	if v == nil {
		return &OverflowError{}
	}
	r.SetPrec(ctx.Prec()).SetInt(v)
	return nil
}

func (c combinfn) CanCall(n int) bool {
	return n == 2
}

// maxint is MaxMagnitude as an integer.
var maxint = new(big.Int).Exp(big.NewInt(10), big.NewInt(100), nil)

// permutations computes n!/(n-k)! as the product n(n-1)...(n-k+1), or returns
// nil as soon as the product reaches maxint. Requires 0 <= k <= n.
func permutations(n, k *big.Int) *big.Int {
	v := big.NewInt(1)
	f := new(big.Int).Set(n)
	stop := new(big.Int).Sub(n, k)
	for f.Cmp(stop) > 0 {
		v.Mul(v, f)
		if v.Cmp(maxint) >= 0 {
			return nil
		}
		f.Sub(f, bigOne)
	}
	return v
}

// combinations computes n!/(k!(n-k)!) by the running product
// C(n, i+1) = C(n, i)(n-i)/(i+1), which is exact at every step and increasing
// up to k = n/2, so it can stop as soon as it reaches maxint. Requires
// 0 <= k <= n.
func combinations(n, k *big.Int) *big.Int {
	if j := new(big.Int).Sub(n, k); j.Cmp(k) < 0 {
		k = j
	}
	v := big.NewInt(1)
	f := new(big.Int).Set(n)
	i := big.NewInt(1)
	for i.Cmp(k) <= 0 {
		v.Mul(v, f)
		v.Quo(v, i)
		if v.Cmp(maxint) >= 0 {
			return nil
		}
		f.Sub(f, bigOne)
		i.Add(i, bigOne)
	}
	return v
}

var bigOne = big.NewInt(1)

// maxFactorial bounds factorial arguments before computing anything; every
// factorial above it is far out of range.
var maxFactorial = big.NewFloat(1000)

// factorial sets z to x!. z may alias x.
func factorial(z, x *big.Float) error {
	if !x.IsInt() || x.Sign() < 0 {
		return &DomainError{X: new(big.Float).Copy(x), Func: "!"}
	}
	if x.Cmp(maxFactorial) > 0 {
		return &OverflowError{Op: "!"}
	}
	n, _ := x.Int64()
	v := new(big.Int).MulRange(1, n)
	if v.Cmp(maxint) >= 0 {
		return &OverflowError{Op: "!"}
	}
	z.SetInt(v)
	return nil
}
