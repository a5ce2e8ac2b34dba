package gamestate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHearts(t *testing.T) {
	h := NewHearts(3)
	assert.Equal(t, VitalityHearts, h.Model())

	h.ApplyPenalty(1)
	h.ApplyPenalty(0)
	h.ApplyPenalty(-4)
	assert.Equal(t, 2, h.Level())
	assert.False(t, h.IsDepleted())

	h.ApplyPenalty(5)
	assert.Equal(t, 0, h.Level())
	assert.True(t, h.IsDepleted())

	h.Reset()
	assert.Equal(t, 3, h.Capacity())
	assert.Equal(t, 3, h.Level())
}

func TestStressMeterClamps(t *testing.T) {
	s := NewStressMeter(100)

	s.ApplyPenalty(-10)
	assert.Equal(t, 0, s.Level())

	s.ApplyPenalty(95)
	assert.False(t, s.IsDepleted())
	s.ApplyPenalty(10)
	assert.Equal(t, 100, s.Level())
	assert.True(t, s.IsDepleted())

	s.Reset()
	assert.Equal(t, 0, s.Level())
}

func TestNewVitalityFollowsRules(t *testing.T) {
	assert.Equal(t, VitalityHearts, newVitality(HeartsRules()).Model())
	assert.Equal(t, VitalityStress, newVitality(StressRules()).Model())
}
