package scicalc

import (
	"errors"
	"math/big"
	"strconv"
)

// ErrMath matches every error from evaluating a well-formed expression.
// Calculators display these as "Math ERROR".
var ErrMath = errors.New("math error")

// Reasons reported by math errors.
const (
	ReasonDivideByZero = "divide-by-zero"
	ReasonDomain       = "domain"
	ReasonOverflow     = "overflow"
)

// DomainError is an error returned when a function is called on arguments
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Arg is the 1-based index of the argument, or 0 if the function has only
	// one.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := "outside domain"
	if err.X != nil {
		r = err.X.Text('g', 10) + " " + r
	}
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

func (err *DomainError) Reason() string {
	return ReasonDomain
}

func (err *DomainError) Is(target error) bool {
	return target == ErrMath
}

// DivideByZeroError is an error indicating division by exactly zero,
// including reciprocals and negative powers of zero.
type DivideByZeroError struct {
	// Op is the operation that divided.
	Op string
}

func (err *DivideByZeroError) Error() string {
	return "division by zero in " + err.Op
}

func (err *DivideByZeroError) Reason() string {
	return ReasonDivideByZero
}

func (err *DivideByZeroError) Is(target error) bool {
	return target == ErrMath
}

// OverflowError is an error indicating a result whose magnitude is not below
// MaxMagnitude.
type OverflowError struct {
	// Op is the operation whose result overflowed.
	Op string
}

func (err *OverflowError) Error() string {
	if err.Op == "" {
		return "result out of range"
	}
	return "result of " + err.Op + " out of range"
}

func (err *OverflowError) Reason() string {
	return ReasonOverflow
}

func (err *OverflowError) Is(target error) bool {
	return target == ErrMath
}
