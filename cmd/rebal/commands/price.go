package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// priceCmd represents the price command
var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "현재가 조회",
	Long: `폴백 체인(Yahoo intraday → Yahoo daily → Stooq CSV → Stooq HTML)으로
현재가를 조회합니다.

Example:
  go run ./cmd/rebal price
  go run ./cmd/rebal price --ticker SOXL`,
	RunE: runPrice,
}

var priceTicker string

func init() {
	rootCmd.AddCommand(priceCmd)

	priceCmd.Flags().StringVar(&priceTicker, "ticker", "", "조회할 티커 (기본: 세션 티커)")
}

func runPrice(cmd *cobra.Command, args []string) error {
	a, err := initApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ticker := priceTicker
	if ticker == "" {
		session, err := a.svc.Session()
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		ticker = session.Ticker
	}

	quote, err := a.svc.FetchQuote(cmd.Context(), ticker)
	if err != nil {
		return fmt.Errorf("fetch price: %w", err)
	}

	fmt.Printf("%s  %.2f  (%s, %s)\n",
		quote.Ticker, quote.Price, quote.Source, quote.Timestamp.Format("2006-01-02 15:04:05"))

	return nil
}
