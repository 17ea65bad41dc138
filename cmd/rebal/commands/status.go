package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "세션 상태 조회",
	Long: `저장된 세션 파라미터와 마지막 점검 결과를 표시합니다.

Example:
  go run ./cmd/rebal status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := initApp()
	if err != nil {
		return err
	}
	defer a.Close()

	session, err := a.svc.Session()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	fmt.Println("=== VR 5.0 Session ===")
	fmt.Println()
	fmt.Printf("%-12s %s\n", "Ticker:", session.Ticker)
	fmt.Printf("%-12s %d\n", "Shares:", session.Shares)
	fmt.Printf("%-12s %.2f\n", "Pool:", session.Pool)
	fmt.Printf("%-12s %.2f\n", "V (prev):", session.VPrev)
	fmt.Printf("%-12s %.2f\n", "D:", session.D)
	fmt.Printf("%-12s %.2f%%\n", "Band:", session.Band*100)
	fmt.Printf("%-12s %.2f\n", "Contrib:", session.Contrib)
	fmt.Println()

	if session.LastQuote == nil || session.LastResult == nil || session.LastDecision == nil {
		fmt.Println("아직 점검 이력이 없습니다. `rebal check`를 실행하세요.")
		return nil
	}

	fmt.Println("📊 Last Review")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("%-12s %.2f (%s)\n", "Price:", session.LastQuote.Price, session.LastQuote.Source)
	fmt.Printf("%-12s %.2f\n", "PV:", session.LastResult.PV)
	fmt.Printf("%-12s %.2f\n", "Target:", session.LastResult.VNext)
	fmt.Printf("%-12s %.2f ~ %.2f\n", "Band:", session.LastResult.Low, session.LastResult.High)
	fmt.Printf("%-12s %s\n", "Action:", session.LastDecision.Badge())
	fmt.Printf("%-12s %s\n", "Updated:", session.UpdatedAt.Format("2006-01-02 15:04:05"))

	return nil
}
