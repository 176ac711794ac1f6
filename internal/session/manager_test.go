package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryManagerDefaultsToNone(t *testing.T) {
	m := NewMemoryManager()
	assert.Equal(t, StepNone, m.Step(1))
}

func TestMemoryManagerSetAndClear(t *testing.T) {
	m := NewMemoryManager()

	m.SetStep(1, StepAwaitingName)
	assert.Equal(t, StepAwaitingName, m.Step(1))

	// Other users are unaffected.
	assert.Equal(t, StepNone, m.Step(2))

	m.Clear(1)
	assert.Equal(t, StepNone, m.Step(1))
}
