package vr

// ProjectionStep is one future review cycle of the target-value recurrence.
type ProjectionStep struct {
	Step int     `json:"step"` // 사이클 번호 (1부터 시작)
	V    float64 `json:"v"`
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// ProjectPath iterates V_i = V_{i-1}*r + contrib forward from vStart and
// returns one row per cycle with its band. steps=0 returns an empty slice.
//
// The same r, contrib and band apply to every future cycle. Real r depends
// on the future pool and price, so this is an extrapolation, not a forecast.
func ProjectPath(vStart, r, contrib, band float64, steps int) []ProjectionStep {
	if steps <= 0 {
		return []ProjectionStep{}
	}

	out := make([]ProjectionStep, 0, steps)
	v := vStart

	for i := 1; i <= steps; i++ {
		v = v*r + contrib
		out = append(out, ProjectionStep{
			Step: i,
			V:    v,
			Low:  v * (1.0 - band),
			High: v * (1.0 + band),
		})
	}

	return out
}
