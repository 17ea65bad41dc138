package vr

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when an engine precondition is violated.
// Retrieval failures (price fetch, storage) never wrap this error, so the
// caller can tell "fix your inputs" apart from "retry the network".
var ErrInvalidInput = errors.New("invalid input")

// ValuationInput holds the scalar state for one VR review cycle.
// ⭐ SSOT: 엔진 입력 검증은 Validate()에서만
type ValuationInput struct {
	Price   float64 `json:"price"`   // 현재 주가 (> 0)
	Shares  int64   `json:"shares"`  // 보유 주식 수 (>= 0)
	Pool    float64 `json:"pool"`    // 현금 풀 (>= 0)
	VPrev   float64 `json:"v_prev"`  // 직전 목표 가치 (> 0, divisor)
	D       float64 `json:"d"`       // 공격성 분모 (> 0)
	Band    float64 `json:"band"`    // 밴드폭, (0, 1)
	Contrib float64 `json:"contrib"` // 2주 적립금 (>= 0)
}

// Validate rejects inputs that would make the recurrence undefined or
// produce NaN/Inf instead of a usable valuation.
func (in ValuationInput) Validate() error {
	switch {
	case in.Price <= 0:
		return fmt.Errorf("%w: price must be > 0, got %v", ErrInvalidInput, in.Price)
	case in.Shares < 0:
		return fmt.Errorf("%w: shares must be >= 0, got %d", ErrInvalidInput, in.Shares)
	case in.Pool < 0:
		return fmt.Errorf("%w: pool must be >= 0, got %v", ErrInvalidInput, in.Pool)
	case in.VPrev <= 0:
		return fmt.Errorf("%w: v_prev must be > 0, got %v", ErrInvalidInput, in.VPrev)
	case in.D <= 0:
		return fmt.Errorf("%w: d must be > 0, got %v", ErrInvalidInput, in.D)
	case in.Band <= 0 || in.Band >= 1:
		return fmt.Errorf("%w: band must be in (0, 1), got %v", ErrInvalidInput, in.Band)
	case in.Contrib < 0:
		return fmt.Errorf("%w: contrib must be >= 0, got %v", ErrInvalidInput, in.Contrib)
	}
	return nil
}

// ValuationResult is the output of one VR 5.0 valuation.
// Invariant: Low < VNext < High (Band is strictly inside (0, 1)).
type ValuationResult struct {
	PV    float64 `json:"pv"`     // 현재 평가액 = price * shares
	R     float64 `json:"r"`      // 상승률
	VNext float64 `json:"v_next"` // 다음 목표 가치
	Low   float64 `json:"low"`    // 하단 밴드
	High  float64 `json:"high"`   // 상단 밴드
}

// ComputeValues performs the VR 5.0 core calculation.
// ⭐ SSOT: 목표 가치/밴드 계산은 이 함수에서만
//
//	r      = 1 + (pool / V_prev) / d
//	V_next = V_prev * r + contrib
//	band   = [V_next*(1-band), V_next*(1+band)]
//
// Pure function: no I/O, no shared state, total over validated inputs.
func ComputeValues(in ValuationInput) (ValuationResult, error) {
	if err := in.Validate(); err != nil {
		return ValuationResult{}, err
	}

	pv := in.Price * float64(in.Shares)
	r := 1.0 + (in.Pool/in.VPrev)/in.D
	vNext := in.VPrev*r + in.Contrib

	return ValuationResult{
		PV:    pv,
		R:     r,
		VNext: vNext,
		Low:   vNext * (1.0 - in.Band),
		High:  vNext * (1.0 + in.Band),
	}, nil
}
