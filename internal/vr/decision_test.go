package vr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideAction_Hold(t *testing.T) {
	res, err := ComputeValues(validInput())
	require.NoError(t, err)

	dec := DecideAction(res, 50)
	assert.Equal(t, ActionHold, dec.Action)
	assert.Zero(t, dec.Qty)
	assert.Zero(t, dec.Amount)
	assert.Equal(t, "HOLD", dec.Badge())
}

func TestDecideAction_Buy(t *testing.T) {
	in := validInput()
	in.Shares = 300 // pv=15000, 하단 밴드 아래

	res, err := ComputeValues(in)
	require.NoError(t, err)
	require.Less(t, res.PV, res.Low)

	dec := DecideAction(res, 50)
	assert.Equal(t, ActionBuy, dec.Action)
	assert.InDelta(t, 10909.0909, dec.Amount, 0.01)
	assert.EqualValues(t, 219, dec.Qty) // ceil(218.18...)
	assert.Equal(t, "BUY 219 주", dec.Badge())
}

func TestDecideAction_Sell(t *testing.T) {
	in := validInput()
	in.Shares = 700 // pv=35000, 상단 밴드 위

	res, err := ComputeValues(in)
	require.NoError(t, err)
	require.Greater(t, res.PV, res.High)

	// amount = pv - v_next, 밴드 상단이 아니라 목표 가치까지 줄인다
	dec := DecideAction(res, 50)
	assert.Equal(t, ActionSell, dec.Action)
	assert.InDelta(t, 9090.9090, dec.Amount, 0.01)
	assert.EqualValues(t, 181, dec.Qty) // floor(181.81...)
}

func TestDecideAction_BandEdgesHold(t *testing.T) {
	res := ValuationResult{VNext: 100, Low: 90, High: 110}

	tests := []struct {
		name string
		pv   float64
		want Action
	}{
		{"exactly at low", 90, ActionHold},
		{"exactly at high", 110, ActionHold},
		{"just below low", 89.99, ActionBuy},
		{"just above high", 110.01, ActionSell},
		{"at target", 100, ActionHold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res.PV = tt.pv
			if got := DecideAction(res, 10).Action; got != tt.want {
				t.Errorf("DecideAction(pv=%v) = %s, want %s", tt.pv, got, tt.want)
			}
		})
	}
}

func TestDecideAction_RoundingDirection(t *testing.T) {
	prices := []float64{0.37, 3, 49.95, 50, 513.7}
	pvs := []float64{10, 15000, 22022, 29796, 35000, 100000}

	res := ValuationResult{VNext: 25909.0909, Low: 22022.7272, High: 29795.4545}

	for _, price := range prices {
		for _, pv := range pvs {
			res.PV = pv
			dec := DecideAction(res, price)

			switch dec.Action {
			case ActionBuy:
				// 매수는 부족분을 항상 채운다
				assert.GreaterOrEqual(t, float64(dec.Qty)*price, dec.Amount,
					"BUY under-covers at price=%v pv=%v", price, pv)
			case ActionSell:
				// 매도는 초과분을 넘겨 팔지 않는다
				assert.LessOrEqual(t, float64(dec.Qty)*price, dec.Amount,
					"SELL over-sells at price=%v pv=%v", price, pv)
			default:
				assert.Zero(t, dec.Qty)
				assert.Zero(t, dec.Amount)
			}

			// 정확히 하나의 액션만 성립
			switch {
			case pv < res.Low:
				assert.Equal(t, ActionBuy, dec.Action)
			case pv > res.High:
				assert.Equal(t, ActionSell, dec.Action)
			default:
				assert.Equal(t, ActionHold, dec.Action)
			}
		}
	}
}
