package vr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() ValuationInput {
	return ValuationInput{
		Price:   50,
		Shares:  500,
		Pool:    10000,
		VPrev:   25000,
		D:       11,
		Band:    0.15,
		Contrib: 0,
	}
}

func TestComputeValues(t *testing.T) {
	res, err := ComputeValues(validInput())
	require.NoError(t, err)

	// r = 1 + (10000/25000)/11
	assert.InDelta(t, 25000.0, res.PV, 1e-9)
	assert.InDelta(t, 1.0363636363, res.R, 1e-9)
	assert.InDelta(t, 25909.0909, res.VNext, 0.01)
	assert.InDelta(t, 22022.7272, res.Low, 0.01)
	assert.InDelta(t, 29795.4545, res.High, 0.01)
}

func TestComputeValues_Contrib(t *testing.T) {
	in := validInput()
	in.Contrib = 500

	res, err := ComputeValues(in)
	require.NoError(t, err)

	// contrib은 성장률 적용 후 더해진다
	assert.InDelta(t, 26409.0909, res.VNext, 0.01)
	assert.InDelta(t, res.VNext*0.85, res.Low, 1e-9)
	assert.InDelta(t, res.VNext*1.15, res.High, 1e-9)
}

func TestComputeValues_BandContainment(t *testing.T) {
	inputs := []ValuationInput{
		validInput(),
		{Price: 12.5, Shares: 0, Pool: 0, VPrev: 100, D: 1, Band: 0.01, Contrib: 0},
		{Price: 300, Shares: 42, Pool: 99999, VPrev: 1, D: 100, Band: 0.5, Contrib: 1234},
		{Price: 0.5, Shares: 1000000, Pool: 5, VPrev: 80000, D: 2.5, Band: 0.99, Contrib: 10},
	}

	for _, in := range inputs {
		res, err := ComputeValues(in)
		require.NoError(t, err)
		assert.Less(t, res.Low, res.VNext, "low < v_next for %+v", in)
		assert.Greater(t, res.High, res.VNext, "high > v_next for %+v", in)
	}
}

func TestValuationInput_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ValuationInput)
	}{
		{"zero price", func(in *ValuationInput) { in.Price = 0 }},
		{"negative price", func(in *ValuationInput) { in.Price = -1 }},
		{"negative shares", func(in *ValuationInput) { in.Shares = -1 }},
		{"negative pool", func(in *ValuationInput) { in.Pool = -0.01 }},
		{"zero v_prev", func(in *ValuationInput) { in.VPrev = 0 }},
		{"negative v_prev", func(in *ValuationInput) { in.VPrev = -25000 }},
		{"zero d", func(in *ValuationInput) { in.D = 0 }},
		{"negative d", func(in *ValuationInput) { in.D = -11 }},
		{"zero band", func(in *ValuationInput) { in.Band = 0 }},
		{"band at one", func(in *ValuationInput) { in.Band = 1 }},
		{"band above one", func(in *ValuationInput) { in.Band = 1.5 }},
		{"negative contrib", func(in *ValuationInput) { in.Contrib = -500 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := ComputeValues(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput), "expected ErrInvalidInput, got %v", err)
		})
	}
}

func TestComputeValues_ValidBoundaries(t *testing.T) {
	// shares=0 and pool=0 are legal: a brand-new cycle with nothing invested
	in := validInput()
	in.Shares = 0
	in.Pool = 0

	res, err := ComputeValues(in)
	require.NoError(t, err)
	assert.Zero(t, res.PV)
	assert.InDelta(t, 1.0, res.R, 1e-12) // pool=0이면 성장률 1
	assert.InDelta(t, 25000.0, res.VNext, 1e-9)
}
