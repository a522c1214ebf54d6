package scicalc

import "testing"

func TestParseRegister(t *testing.T) {
	for i := range registerNames {
		name := registerNames[i : i+1]
		r, ok := ParseRegister(name)
		if !ok || r != Register(i) {
			t.Errorf("ParseRegister(%q) = %v, %t", name, r, ok)
		}
		if r.String() != name {
			t.Errorf("%v.String() = %q, want %q", r, r.String(), name)
		}
	}
	for _, name := range []string{"", "Ans", "a", "Z", "AB", "π"} {
		if r, ok := ParseRegister(name); ok {
			t.Errorf("ParseRegister(%q) = %v", name, r)
		}
	}
	if s := numRegisters.String(); s != "Register(?)" {
		t.Errorf("out of range register is %q", s)
	}
}

func TestStoreRecall(t *testing.T) {
	var s Store
	for r := RegA; r < numRegisters; r++ {
		if v := s.Recall(r); v != 0 {
			t.Errorf("zero Store has %v = %v", r, v)
		}
		s.Store(r, float64(r)+0.5)
	}
	for r := RegA; r < numRegisters; r++ {
		if v := s.Recall(r); v != float64(r)+0.5 {
			t.Errorf("%v = %v, want %v", r, v, float64(r)+0.5)
		}
	}
}

func TestStoreMemory(t *testing.T) {
	var s Store
	s.MemoryAdd(5)
	s.MemoryAdd(2.5)
	s.MemorySubtract(10)
	if v := s.Recall(RegM); v != -2.5 {
		t.Errorf("M = %v, want -2.5", v)
	}
	if v := s.Recall(RegA); v != 0 {
		t.Errorf("memory keys changed A to %v", v)
	}
	s.SetAns(7)
	if s.Ans() != 7 {
		t.Errorf("Ans = %v, want 7", s.Ans())
	}
	s.Store(RegX, 3)
	s.Reset()
	if s.Recall(RegM) != 0 || s.Recall(RegX) != 0 || s.Ans() != 0 {
		t.Errorf("Reset left %+v", s)
	}
}
