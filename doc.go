// Package scicalc implements the expression engine of a scientific
// calculator: the part that turns a line like "2sin(30)+√(16)" into 5.
//
// Input is written the way it is keyed on a calculator. "2π", "3(4+5)" and
// "2A" are implicit multiplications, which bind like ×. "-2^2" is
// "-(2^2)", and "2^-1" is "2^(-1)". Postfix operators ! ² ³ ⁻¹ and % apply to
// the term before them and bind tighter than ^. √ and ∛ take the following
// primary, with an optional sign. An expression may store its result in a
// register with "A=expr" or "expr→A".
//
// Values are computed with math/big at a configurable precision, limited to
// magnitudes below 1e100, and rounded to 15 significant digits when a result
// is returned. Trigonometric functions read and write angles in the
// context's angle mode.
//
// Errors are grouped the way a calculator displays them. errors.Is(err,
// ErrSyntax) holds for every error that prevents parsing, and
// errors.Is(err, ErrMath) holds for every error from evaluating a well-formed
// expression.
package scicalc
