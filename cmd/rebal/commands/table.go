package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/rebal/internal/vr"
)

// tableCmd represents the table command
var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "가격 시나리오 표",
	Long: `현재가 주변 가격 구간별 액션을 표로 보여줍니다.
목표 가치와 밴드는 현재가 기준으로 고정한 채 가격만 움직였을 때의
판정입니다.

Example:
  go run ./cmd/rebal table
  go run ./cmd/rebal table --levels 10 --step 0.5`,
	RunE: runTable,
}

var (
	tableLevels int
	tableStep   float64
)

func init() {
	rootCmd.AddCommand(tableCmd)

	tableCmd.Flags().IntVar(&tableLevels, "levels", 5, "현재가 위/아래 가격 단계 수")
	tableCmd.Flags().Float64Var(&tableStep, "step", 1, "가격 간격")
}

func runTable(cmd *cobra.Command, args []string) error {
	if tableStep <= 0 {
		return fmt.Errorf("step must be > 0, got %g", tableStep)
	}
	if tableLevels < 0 || tableLevels > 500 {
		return fmt.Errorf("levels must be in [0, 500], got %d", tableLevels)
	}

	a, err := initApp()
	if err != nil {
		return err
	}
	defer a.Close()

	session, err := a.svc.Session()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	quote, err := a.svc.FetchQuote(cmd.Context(), session.Ticker)
	if err != nil {
		return fmt.Errorf("fetch price: %w", err)
	}

	res, err := vr.ComputeValues(session.Input(quote.Price))
	if err != nil {
		return err
	}

	rows := vr.GeneratePriceTable(quote.Price, session.Shares, res.VNext, res.Low, res.High, tableStep, tableLevels)

	fmt.Printf("=== Price Scenarios (%s @ %.2f) ===\n\n", session.Ticker, quote.Price)
	fmt.Printf("%10s %-6s %8s %12s %14s\n", "Price", "Action", "Qty", "Shares", "Value")
	for _, row := range rows {
		marker := " "
		if row.Price == quote.Price {
			marker = "*"
		}
		fmt.Printf("%9.2f%s %-6s %8d %12d %14.2f\n",
			row.Price, marker, row.Action, row.Qty, row.TotalShares, row.PV)
	}

	return nil
}
