package vm

import (
	"errors"
	"fmt"
)

var (
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
)

// Stack is the fixed depth return address stack.
type Stack struct {
	entries [StackSize]uint16
	sp      int
}

// Push stores addr on top of the stack.
func (s *Stack) Push(addr uint16) error {
	if s.sp >= len(s.entries) {
		return fmt.Errorf("push 0x%04x at depth %d: %w", addr, s.sp, ErrStackOverflow)
	}
	s.entries[s.sp] = addr
	s.sp++
	return nil
}

// Pop removes and returns the top of the stack.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.entries[s.sp], nil
}

// Depth returns the number of stored return addresses.
func (s *Stack) Depth() int {
	return s.sp
}

func (s *Stack) reset() {
	*s = Stack{}
}
