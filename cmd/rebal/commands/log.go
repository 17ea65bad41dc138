package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// logCmd represents the log command
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "권고 로그 조회",
	Long: `권고 로그(vr_log)를 조회합니다.

Example:
  go run ./cmd/rebal log
  go run ./cmd/rebal log --tail 10`,
	RunE: runLog,
}

var logTail int

func init() {
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().IntVar(&logTail, "tail", 0, "마지막 N건만 표시 (0=전체)")
}

func runLog(cmd *cobra.Command, args []string) error {
	a, err := initApp()
	if err != nil {
		return err
	}
	defer a.Close()

	recs, err := a.svc.Recommendations(cmd.Context())
	if err != nil {
		return fmt.Errorf("read recommendation log: %w", err)
	}

	if logTail > 0 && logTail < len(recs) {
		recs = recs[len(recs)-logTail:]
	}

	if len(recs) == 0 {
		fmt.Println("권고 로그가 비어 있습니다.")
		return nil
	}

	fmt.Printf("%-20s %-8s %10s %12s %12s %-6s %8s %12s\n",
		"Date", "Ticker", "Price", "PV", "Target", "Action", "Qty", "Amount")
	for _, rec := range recs {
		fmt.Printf("%-20s %-8s %10.2f %12.2f %12.2f %-6s %8d %12.2f\n",
			rec.Date.Format("2006-01-02 15:04:05"), rec.Ticker, rec.Price,
			rec.PV, rec.VNext, rec.Action, rec.Qty, rec.Amount)
	}

	fmt.Printf("\nTotal: %d\n", len(recs))
	return nil
}
