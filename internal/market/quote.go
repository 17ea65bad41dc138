package market

import (
	"context"
	"errors"
	"time"
)

// ErrAllSourcesFailed is returned when every tier of the fallback cascade
// has been exhausted. Distinct from vr.ErrInvalidInput: the remediation is
// "retry later", not "fix your inputs".
var ErrAllSourcesFailed = errors.New("all price sources failed")

// Quote is the last traded price for a ticker with its timestamp.
type Quote struct {
	Ticker    string    `json:"ticker"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"` // which tier produced it
}

// Source is a single price tier.
// ⭐ SSOT: 시세 조회 티어는 모두 이 인터페이스로 추상화
type Source interface {
	Name() string
	Fetch(ctx context.Context, ticker string) (Quote, error)
}
