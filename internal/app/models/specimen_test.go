package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpecimenStatusValid(t *testing.T) {
	assert.True(t, SpecimenStatusCollected.Valid())
	assert.True(t, SpecimenStatusInLab.Valid())
	assert.True(t, SpecimenStatusTested.Valid())
	assert.True(t, SpecimenStatusCompleted.Valid())
	assert.False(t, SpecimenStatus("ARCHIVED").Valid())
	assert.False(t, SpecimenStatus("").Valid())
}

func TestSpecimenStatusCanTransitionTo(t *testing.T) {
	testCases := []struct {
		name    string
		from    SpecimenStatus
		to      SpecimenStatus
		allowed bool
	}{
		{"collected to in lab", SpecimenStatusCollected, SpecimenStatusInLab, true},
		{"collected to tested skips in lab", SpecimenStatusCollected, SpecimenStatusTested, false},
		{"collected to completed", SpecimenStatusCollected, SpecimenStatusCompleted, false},
		{"in lab to tested", SpecimenStatusInLab, SpecimenStatusTested, true},
		{"in lab back to collected", SpecimenStatusInLab, SpecimenStatusCollected, true},
		{"in lab to completed", SpecimenStatusInLab, SpecimenStatusCompleted, false},
		{"tested to completed", SpecimenStatusTested, SpecimenStatusCompleted, true},
		{"tested back to in lab", SpecimenStatusTested, SpecimenStatusInLab, false},
		{"completed is terminal", SpecimenStatusCompleted, SpecimenStatusCollected, false},
		{"no self transition", SpecimenStatusInLab, SpecimenStatusInLab, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}
