package scicalc

import (
	"math"
	"testing"
)

func TestAngleConversion(t *testing.T) {
	cases := []struct {
		m    AngleMode
		full float64
	}{
		{Degrees, 360},
		{Radians, 2 * math.Pi},
		{Gradians, 400},
	}
	for _, c := range cases {
		if got := c.m.ToRadians(c.full); math.Abs(got-2*math.Pi) > 1e-12 {
			t.Errorf("%v: full turn is %v radians", c.m, got)
		}
		if got := c.m.FromRadians(math.Pi); math.Abs(got-c.full/2) > 1e-12 {
			t.Errorf("%v: π radians is %v", c.m, got)
		}
	}
}

func TestAngleCycle(t *testing.T) {
	m := Degrees
	var labels string
	for i := 0; i < 4; i++ {
		labels += m.Label()
		m = m.Next()
	}
	if labels != "DRGD" {
		t.Errorf("DRG cycle went %s", labels)
	}
}

func TestParseAngleMode(t *testing.T) {
	cases := []struct {
		in   string
		want AngleMode
		ok   bool
	}{
		{"degrees", Degrees, true},
		{"DEG", Degrees, true},
		{"d", Degrees, true},
		{" Radians ", Radians, true},
		{"r", Radians, true},
		{"grad", Gradians, true},
		{"G", Gradians, true},
		{"", Degrees, false},
		{"turns", Degrees, false},
	}
	for _, c := range cases {
		got, ok := ParseAngleMode(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseAngleMode(%q) = %v, %t; want %v, %t", c.in, got, ok, c.want, c.ok)
		}
	}
	for _, m := range []AngleMode{Degrees, Radians, Gradians} {
		if got, ok := ParseAngleMode(m.String()); !ok || got != m {
			t.Errorf("%v does not parse as itself", m)
		}
	}
}
