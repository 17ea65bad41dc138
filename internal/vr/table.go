package vr

// PriceScenarioRow is one hypothetical price level in the planning table.
type PriceScenarioRow struct {
	Price       float64 `json:"price"`
	Action      Action  `json:"action"`
	Qty         int64   `json:"qty"`
	TotalShares int64   `json:"total_shares"` // 거래 후 보유 주식 수
	PV          float64 `json:"pv"`           // 거래 후 평가액
}

// GeneratePriceTable evaluates the decision rule across a grid of
// hypothetical prices around currentPrice: 2*numLevels+1 candidates spaced
// priceStep apart, ascending, with non-positive prices silently skipped.
//
// vNext, low and high are the thresholds computed once from the real
// current valuation and are deliberately NOT recomputed per candidate: the
// table answers "what would I do if the price moved to X, given today's
// target and band", not "what would today's target be if the price had
// been X".
func GeneratePriceTable(currentPrice float64, shares int64, vNext, low, high, priceStep float64, numLevels int) []PriceScenarioRow {
	rows := make([]PriceScenarioRow, 0, 2*numLevels+1)

	for i := -numLevels; i <= numLevels; i++ {
		price := currentPrice + float64(i)*priceStep
		if price <= 0 {
			continue
		}

		dec := DecideAction(ValuationResult{
			PV:    price * float64(shares),
			VNext: vNext,
			Low:   low,
			High:  high,
		}, price)

		total := shares
		switch dec.Action {
		case ActionBuy:
			total += dec.Qty
		case ActionSell:
			total -= dec.Qty
		}

		rows = append(rows, PriceScenarioRow{
			Price:       price,
			Action:      dec.Action,
			Qty:         dec.Qty,
			TotalShares: total,
			PV:          price * float64(total),
		})
	}

	return rows
}
