package vr

import (
	"fmt"
	"math"
)

// Action is the trade recommendation for a review cycle.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// ActionDecision is the trade recommendation derived from a ValuationResult.
type ActionDecision struct {
	Action Action  `json:"action"`
	Qty    int64   `json:"qty"`    // 매수/매도 주수
	Amount float64 `json:"amount"` // 매수/매도 금액 (달러)
}

// DecideAction maps a valuation to BUY/SELL/HOLD with a quantity.
// ⭐ SSOT: 매수/매도/홀드 판단은 이 함수에서만
//
// BUY rounds the quantity up so the purchase covers at least the shortfall;
// SELL rounds down so the sale never removes more than the excess. Values
// exactly on a band edge are HOLD: band edges never trigger a trade.
//
// price must be the same positive price used to produce res.
func DecideAction(res ValuationResult, price float64) ActionDecision {
	switch {
	case res.PV < res.Low:
		amount := res.VNext - res.PV
		return ActionDecision{
			Action: ActionBuy,
			Qty:    int64(math.Ceil(amount / price)),
			Amount: amount,
		}
	case res.PV > res.High:
		amount := res.PV - res.VNext
		return ActionDecision{
			Action: ActionSell,
			Qty:    int64(math.Floor(amount / price)),
			Amount: amount,
		}
	default:
		return ActionDecision{Action: ActionHold}
	}
}

// Badge renders the decision the way the review log displays it.
func (d ActionDecision) Badge() string {
	if d.Action == ActionHold {
		return "HOLD"
	}
	return fmt.Sprintf("%s %d 주", d.Action, d.Qty)
}
