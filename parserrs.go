package scicalc

import (
	"errors"
	"strconv"
)

// ErrSyntax matches every error caused by the shape of the input, before any
// arithmetic happens. Calculators display these as "Syntax ERROR".
var ErrSyntax = errors.New("syntax error")

// Reasons reported by syntax errors.
const (
	ReasonUnterminatedParen = "unterminated-paren"
	ReasonMissingOperand    = "missing-operand"
	ReasonTrailingInput     = "trailing-input"
	ReasonArityMismatch     = "arity-mismatch"
	ReasonUnrecognized      = "unrecognized-character"
	ReasonNestingDepth      = "nesting-depth"
)

// BracketError is an error indicating mismatched parentheses in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the token where the mismatch was detected.
	Col int
	// Left is the opening bracket, or empty for a close bracket with no
	// opening bracket.
	Left string
	// Right is the closing bracket, or empty for an open bracket that was
	// never closed.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Reason() string {
	return ReasonUnterminatedParen
}

func (err *BracketError) Is(target error) bool {
	return target == ErrSyntax
}

// EmptyExpressionError is an error indicating a missing operand: an operator
// with nothing after it, an empty pair of parentheses, or empty input.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression, or empty at the end of
	// the input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Reason() string {
	return ReasonMissingOperand
}

func (err *EmptyExpressionError) Is(target error) bool {
	return target == ErrSyntax
}

// TrailingError is an error indicating tokens after a complete expression,
// including separators outside function calls and misplaced store
// operators.
type TrailingError struct {
	// Col is the position of the first unexpected token.
	Col int
	// Text is the first unexpected token.
	Text string
}

func (err *TrailingError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Text)+" after expression")
}

func (err *TrailingError) Pos() int {
	return err.Col
}

func (err *TrailingError) Reason() string {
	return ReasonTrailingInput
}

func (err *TrailingError) Is(target error) bool {
	return target == ErrSyntax
}

// CallError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type CallError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments the call supplied, or -1 if the name was
	// not followed by an argument list.
	Len int
}

func (err *CallError) Error() string {
	if err.Len < 0 {
		return errpos(err.Col, err.Func+" requires a parenthesized argument list")
	}
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments")
}

func (err *CallError) Pos() int {
	return err.Col
}

func (err *CallError) Reason() string {
	return ReasonArityMismatch
}

func (err *CallError) Is(target error) bool {
	return target == ErrSyntax
}

// DepthError is an error indicating an expression nested more deeply than
// MaxDepth.
type DepthError struct {
	// Col is the position where the limit was exceeded.
	Col int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "expression nested deeper than "+strconv.Itoa(MaxDepth))
}

func (err *DepthError) Pos() int {
	return err.Col
}

func (err *DepthError) Reason() string {
	return ReasonNestingDepth
}

func (err *DepthError) Is(target error) bool {
	return target == ErrSyntax
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
	// Reason returns a short fixed identifier for the kind of failure.
	Reason() string
}

var (
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*TrailingError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*DepthError)(nil)
	_ InputError = (*LexError)(nil)
)
