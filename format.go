package scicalc

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// DisplayMode selects how results are written.
type DisplayMode int8

const (
	// Normal shows up to 10 significant digits, switching to scientific
	// notation for magnitudes outside [1e-9, 1e10).
	Normal DisplayMode = iota
	// Scientific always shows a mantissa and exponent.
	Scientific
	// Engineering shows a mantissa and an exponent which is a multiple of 3.
	Engineering
	// Fixed shows a fixed number of decimal places.
	Fixed
)

// DisplayDigits is the most significant digits a display shows.
const DisplayDigits = 10

// DisplayFormat is a display mode with its digit setting. Digits is the
// number of significant digits for Scientific and the number of decimal
// places for Fixed. Other modes ignore it.
type DisplayFormat struct {
	Mode   DisplayMode
	Digits int
}

// Sci returns a scientific format with n significant digits. n outside
// [1, DisplayDigits] means DisplayDigits.
func Sci(n int) DisplayFormat {
	return DisplayFormat{Mode: Scientific, Digits: n}
}

// Fix returns a fixed format with n decimal places. n is clamped to [0, 9].
func Fix(n int) DisplayFormat {
	return DisplayFormat{Mode: Fixed, Digits: n}
}

// Eng is the engineering format.
var Eng = DisplayFormat{Mode: Engineering}

// ParseDisplayFormat interprets a display mode name, one of normal, sci, eng,
// or fix, with its digit setting.
func ParseDisplayFormat(name string, digits int) (DisplayFormat, bool) {
	switch strings.ToLower(name) {
	case "", "normal", "norm":
		return DisplayFormat{}, true
	case "sci", "scientific":
		if digits < 0 || digits > DisplayDigits {
			return DisplayFormat{}, false
		}
		return Sci(digits), true
	case "eng", "engineering":
		return Eng, true
	case "fix", "fixed":
		if digits < 0 || digits > 9 {
			return DisplayFormat{}, false
		}
		return Fix(digits), true
	}
	return DisplayFormat{}, false
}

// String gives the short label a calculator shows for the format.
func (f DisplayFormat) String() string {
	switch f.Mode {
	case Normal:
		return "Norm"
	case Scientific:
		return "Sci " + strconv.Itoa(f.sciDigits())
	case Engineering:
		return "Eng"
	case Fixed:
		return "Fix " + strconv.Itoa(f.fixDigits())
	default:
		return "DisplayMode(" + strconv.Itoa(int(f.Mode)) + ")"
	}
}

func (f DisplayFormat) sciDigits() int {
	if f.Digits < 1 || f.Digits > DisplayDigits {
		return DisplayDigits
	}
	return f.Digits
}

func (f DisplayFormat) fixDigits() int {
	switch {
	case f.Digits < 0:
		return 0
	case f.Digits > 9:
		return 9
	}
	return f.Digits
}

// Format writes a result for display. Exponents are written as m×10^e.
func Format(x float64, f DisplayFormat) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 0):
		if x < 0 {
			return "-Inf"
		}
		return "Inf"
	}
	a := math.Abs(x)
	switch f.Mode {
	case Scientific:
		return sci(x, f.sciDigits(), false)
	case Engineering:
		if x == 0 {
			return "0"
		}
		return eng(x)
	case Fixed:
		if a >= 1e10 {
			break
		}
		s := strconv.FormatFloat(x, 'f', f.fixDigits(), 64)
		if strings.Trim(s, "-0.") == "" {
			// No negative zero.
			s = strings.TrimPrefix(s, "-")
		}
		return s
	}
	if x == 0 {
		return "0"
	}
	if a >= 1e10 || a < 1e-9 {
		return sci(x, DisplayDigits, true)
	}
	r, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'g', DisplayDigits, 64), 64)
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// mantexp splits x into its first n significant digits and its decimal
// exponent, so that x is ±0.d₁d₂…×10^(exp+1).
func mantexp(x float64, n int) (neg bool, digits string, exp int) {
	s := strconv.FormatFloat(x, 'e', n-1, 64)
	if s[0] == '-' {
		neg, s = true, s[1:]
	}
	k := strings.IndexByte(s, 'e')
	exp, _ = strconv.Atoi(s[k+1:])
	digits = strings.Replace(s[:k], ".", "", 1)
	return neg, digits, exp
}

// sci writes x as a mantissa with n significant digits and an exponent.
func sci(x float64, n int, trim bool) string {
	neg, d, e := mantexp(x, n)
	return mantissa(neg, d, 1, trim) + "×10^" + strconv.Itoa(e)
}

// eng writes x with an exponent that is a multiple of 3.
func eng(x float64) string {
	neg, d, e := mantexp(x, DisplayDigits)
	e3 := e - ((e%3)+3)%3
	return mantissa(neg, d, 1+e-e3, true) + "×10^" + strconv.Itoa(e3)
}

// mantissa places a decimal point after the first whole digits of d.
func mantissa(neg bool, d string, whole int, trim bool) string {
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(d[:whole])
	frac := d[whole:]
	if trim {
		frac = strings.TrimRight(frac, "0")
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// ErrorText gives the message a calculator displays for an error:
// "Syntax ERROR" or "Math ERROR". Other errors give their own text.
func ErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSyntax):
		return "Syntax ERROR"
	case errors.Is(err, ErrMath):
		return "Math ERROR"
	}
	return err.Error()
}
