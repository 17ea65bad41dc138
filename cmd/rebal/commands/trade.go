package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/wonny/rebal/internal/vr"
)

// tradeCmd represents the trade command
var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "체결 기록 관리",
	Long: `실제 체결 내역을 기록하고 조회합니다.

권고 로그와는 독립적인 장부입니다: 권고와 다른 수량으로 체결했어도
그대로 기록하면 됩니다.

Subcommands:
  add   - 체결 기록 추가
  list  - 체결 기록 조회

Example:
  go run ./cmd/rebal trade add --side BUY --qty 219 --price 49.87
  go run ./cmd/rebal trade list`,
}

var (
	tradeAddCmd = &cobra.Command{
		Use:   "add",
		Short: "체결 기록 추가",
		RunE:  runTradeAdd,
	}

	tradeListCmd = &cobra.Command{
		Use:   "list",
		Short: "체결 기록 조회",
		RunE:  runTradeList,
	}
)

var (
	tradeSide  string
	tradeQty   int64
	tradePrice string
	tradeNote  string
)

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd)
	tradeCmd.AddCommand(tradeListCmd)

	tradeAddCmd.Flags().StringVar(&tradeSide, "side", "", "BUY 또는 SELL")
	tradeAddCmd.Flags().Int64Var(&tradeQty, "qty", 0, "체결 수량")
	tradeAddCmd.Flags().StringVar(&tradePrice, "price", "", "체결 단가")
	tradeAddCmd.Flags().StringVar(&tradeNote, "note", "", "메모")
	tradeAddCmd.MarkFlagRequired("side")
	tradeAddCmd.MarkFlagRequired("qty")
	tradeAddCmd.MarkFlagRequired("price")
}

func runTradeAdd(cmd *cobra.Command, args []string) error {
	fillPrice, err := decimal.NewFromString(tradePrice)
	if err != nil {
		return fmt.Errorf("--price must be a decimal number: %w", err)
	}

	a, err := initApp()
	if err != nil {
		return err
	}
	defer a.Close()

	side := vr.Action(strings.ToUpper(tradeSide))
	trade, err := a.svc.RecordTrade(cmd.Context(), side, tradeQty, fillPrice, tradeNote)
	if err != nil {
		return fmt.Errorf("record trade: %w", err)
	}

	fmt.Printf("✅ Recorded: %s %d @ %s (notional %s)\n",
		trade.Side, trade.Qty, trade.FillPrice, trade.Notional)
	return nil
}

func runTradeList(cmd *cobra.Command, args []string) error {
	a, err := initApp()
	if err != nil {
		return err
	}
	defer a.Close()

	trades, err := a.svc.Trades(cmd.Context())
	if err != nil {
		return fmt.Errorf("read trade log: %w", err)
	}

	if len(trades) == 0 {
		fmt.Println("체결 기록이 비어 있습니다.")
		return nil
	}

	fmt.Printf("%-20s %-6s %8s %12s %14s %s\n",
		"Date", "Side", "Qty", "Price", "Notional", "Note")
	for _, t := range trades {
		fmt.Printf("%-20s %-6s %8d %12s %14s %s\n",
			t.Date.Format("2006-01-02 15:04:05"), t.Side, t.Qty,
			t.FillPrice.StringFixed(2), t.Notional.StringFixed(2), t.Note)
	}

	fmt.Printf("\nTotal: %d\n", len(trades))
	return nil
}
