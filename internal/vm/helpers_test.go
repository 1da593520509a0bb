package vm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// newTestVM returns a running machine with a fixed random seed and the
// given program words loaded at ProgramStart.
func newTestVM(t *testing.T, words ...uint16) *VM {
	t.Helper()

	program := make([]byte, 0, len(words)*InstructionSize)
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}

	machine := New(WithRand(NewRand(1)))
	machine.Initialize()
	assert.NoError(t, machine.LoadProgram(program))
	return machine
}

// cycle runs n cycles and fails the test on error.
func cycle(t *testing.T, machine *VM, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		assert.NoError(t, machine.Cycle())
	}
}
