package scicalc

import "strings"

// Register identifies a variable register.
type Register int8

// The registers a calculator expression can name. RegM is the independent
// memory that M+ and M− accumulate into.
const (
	RegA Register = iota
	RegB
	RegC
	RegD
	RegE
	RegF
	RegX
	RegY
	RegM
	numRegisters
)

// registerNames holds the name of each register at its index.
const registerNames = "ABCDEFXYM"

// ansName is the name of the register holding the last result.
const ansName = "Ans"

func (r Register) String() string {
	if r < 0 || r >= numRegisters {
		return "Register(?)"
	}
	return registerNames[r : r+1]
}

// ParseRegister gets the register with the given name. Ans is not a register
// in this sense since it cannot be the target of a store.
func ParseRegister(name string) (Register, bool) {
	if len(name) != 1 {
		return 0, false
	}
	k := strings.IndexByte(registerNames, name[0])
	if k < 0 {
		return 0, false
	}
	return Register(k), true
}

// Store holds the variable registers, the independent memory, and the last
// answer. The zero value has every register set to 0 and is ready to use. A
// Store is not safe for concurrent use.
type Store struct {
	regs [numRegisters]float64
	ans  float64
}

// Store sets a register.
func (s *Store) Store(r Register, v float64) {
	s.regs[r] = v
}

// Recall gets the value of a register.
func (s *Store) Recall(r Register) float64 {
	return s.regs[r]
}

// MemoryAdd adds v to the independent memory, like the M+ key.
func (s *Store) MemoryAdd(v float64) {
	s.regs[RegM] += v
}

// MemorySubtract subtracts v from the independent memory, like the M− key.
func (s *Store) MemorySubtract(v float64) {
	s.regs[RegM] -= v
}

// Ans gets the last answer.
func (s *Store) Ans() float64 {
	return s.ans
}

// SetAns sets the last answer.
func (s *Store) SetAns(v float64) {
	s.ans = v
}

// Reset sets every register, the memory, and the last answer to 0.
func (s *Store) Reset() {
	*s = Store{}
}
