package vr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectPath(t *testing.T) {
	steps := ProjectPath(25909.0909, 1.0363636363, 0, 0.15, 2)
	require.Len(t, steps, 2)

	assert.Equal(t, 1, steps[0].Step)
	assert.InDelta(t, 26851.24, steps[0].V, 0.01)
	assert.InDelta(t, steps[0].V*0.85, steps[0].Low, 1e-9)
	assert.InDelta(t, steps[0].V*1.15, steps[0].High, 1e-9)

	assert.Equal(t, 2, steps[1].Step)
	assert.InDelta(t, 27827.65, steps[1].V, 0.01)
}

func TestProjectPath_ZeroSteps(t *testing.T) {
	assert.Empty(t, ProjectPath(25000, 1.03, 0, 0.15, 0))
	assert.Empty(t, ProjectPath(25000, 1.03, 0, 0.15, -3))
}

func TestProjectPath_Recurrence(t *testing.T) {
	const (
		vStart  = 31400.0
		r       = 1.0181818
		contrib = 250.0
	)

	steps := ProjectPath(vStart, r, contrib, 0.1, 12)
	require.Len(t, steps, 12)

	prev := vStart
	for i, s := range steps {
		assert.Equal(t, i+1, s.Step)
		assert.InDelta(t, prev*r+contrib, s.V, 1e-6, "step %d", s.Step)
		prev = s.V
	}
}

func TestProjectPath_PrefixConsistency(t *testing.T) {
	long := ProjectPath(25909.0909, 1.0363636, 100, 0.15, 10)
	short := ProjectPath(25909.0909, 1.0363636, 100, 0.15, 4)

	require.Len(t, long, 10)
	require.Len(t, short, 4)
	assert.Equal(t, long[:4], short)
}
