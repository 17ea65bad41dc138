package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wonny/rebal/internal/vr"
)

// Recommendation is one append-only row of the recommendation log: the
// full input and output of a completed review-cycle decision.
type Recommendation struct {
	Date     time.Time `json:"date"`
	Ticker   string    `json:"ticker"`
	Price    float64   `json:"price"`
	PV       float64   `json:"pv"`
	VNext    float64   `json:"v_next"`
	BandLow  float64   `json:"band_low"`
	BandHigh float64   `json:"band_high"`
	Action   vr.Action `json:"action"`
	Qty      int64     `json:"qty"`
	Amount   float64   `json:"amount"`
	R        float64   `json:"r"`
	Band     float64   `json:"band"`
	Contrib  float64   `json:"contrib"`
	Pool     float64   `json:"pool"`
	Shares   int64     `json:"shares"`
	D        float64   `json:"d"`
}

// NewRecommendation assembles a log row from an evaluation.
func NewRecommendation(date time.Time, ticker string, in vr.ValuationInput, res vr.ValuationResult, dec vr.ActionDecision) Recommendation {
	return Recommendation{
		Date:     date,
		Ticker:   ticker,
		Price:    in.Price,
		PV:       res.PV,
		VNext:    res.VNext,
		BandLow:  res.Low,
		BandHigh: res.High,
		Action:   dec.Action,
		Qty:      dec.Qty,
		Amount:   dec.Amount,
		R:        res.R,
		Band:     in.Band,
		Contrib:  in.Contrib,
		Pool:     in.Pool,
		Shares:   in.Shares,
		D:        in.D,
	}
}

// Trade is a manually confirmed real-world execution. Entirely independent
// of the recommendation log: nothing checks that recorded trades match what
// was recommended.
//
// Money fields are decimal: fill prices are user-entered strings and must
// survive the log round trip exactly.
type Trade struct {
	Date      time.Time       `json:"date"`
	Side      vr.Action       `json:"side"` // BUY | SELL
	Qty       int64           `json:"qty"`
	FillPrice decimal.Decimal `json:"fill_price"`
	Notional  decimal.Decimal `json:"notional"` // qty * fill_price
	Note      string          `json:"note"`
}

// NewTrade builds a trade row, computing the notional.
func NewTrade(date time.Time, side vr.Action, qty int64, fillPrice decimal.Decimal, note string) Trade {
	return Trade{
		Date:      date,
		Side:      side,
		Qty:       qty,
		FillPrice: fillPrice,
		Notional:  fillPrice.Mul(decimal.NewFromInt(qty)),
		Note:      note,
	}
}

// RecommendationStore is an append-only recommendation log.
// ⭐ SSOT: 추천 로그 저장은 이 인터페이스 구현체에서만
type RecommendationStore interface {
	Append(ctx context.Context, rec Recommendation) error
	List(ctx context.Context) ([]Recommendation, error)
}

// TradeStore is an append-only trade log.
type TradeStore interface {
	Append(ctx context.Context, trade Trade) error
	List(ctx context.Context) ([]Trade, error)
}
