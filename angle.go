package scicalc

import (
	"math"
	"strings"
)

// AngleMode is the unit in which trigonometric functions interpret and report
// angles.
type AngleMode int8

const (
	// Degrees measures a full turn as 360.
	Degrees AngleMode = iota
	// Radians measures a full turn as 2π.
	Radians
	// Gradians measures a full turn as 400.
	Gradians
)

// ToRadians converts an angle in m to radians.
func (m AngleMode) ToRadians(x float64) float64 {
	switch m {
	case Degrees:
		return x * math.Pi / 180
	case Gradians:
		return x * math.Pi / 200
	default:
		return x
	}
}

// FromRadians converts an angle in radians to m.
func (m AngleMode) FromRadians(x float64) float64 {
	switch m {
	case Degrees:
		return x * 180 / math.Pi
	case Gradians:
		return x * 200 / math.Pi
	default:
		return x
	}
}

// Next returns the mode after m in the D, R, G cycle of the DRG key.
func (m AngleMode) Next() AngleMode {
	switch m {
	case Degrees:
		return Radians
	case Radians:
		return Gradians
	default:
		return Degrees
	}
}

// Label is the single-letter indicator calculators show for the mode.
func (m AngleMode) Label() string {
	switch m {
	case Radians:
		return "R"
	case Gradians:
		return "G"
	default:
		return "D"
	}
}

func (m AngleMode) String() string {
	switch m {
	case Degrees:
		return "degrees"
	case Radians:
		return "radians"
	case Gradians:
		return "gradians"
	default:
		return "AngleMode(?)"
	}
}

// ParseAngleMode parses a mode name. It accepts the full names, their common
// abbreviations, and the single-letter labels, ignoring case.
func ParseAngleMode(s string) (AngleMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "d", "deg", "degree", "degrees":
		return Degrees, true
	case "r", "rad", "radian", "radians":
		return Radians, true
	case "g", "grad", "gra", "gradian", "gradians", "gon":
		return Gradians, true
	}
	return Degrees, false
}
