package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "리밸런싱 점검 실행",
	Long: `저장된 세션으로 리밸런싱 점검 한 사이클을 실행합니다.

이 명령어는:
- 현재가 조회 (Yahoo → Stooq 폴백)
- 목표 가치 / 밴드 계산
- BUY/SELL/HOLD 판정
- 권고 로그 기록 및 세션 갱신

Example:
  go run ./cmd/rebal check`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := initApp()
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.svc.Check(cmd.Context())
	if err != nil {
		return fmt.Errorf("review cycle failed: %w", err)
	}

	fmt.Println("=== VR 5.0 Review ===")
	fmt.Println()
	fmt.Printf("%-16s %s\n", "Ticker:", result.Quote.Ticker)
	fmt.Printf("%-16s %.2f (%s)\n", "Price:", result.Quote.Price, result.Quote.Source)
	fmt.Printf("%-16s %.2f\n", "Position value:", result.Result.PV)
	fmt.Printf("%-16s %.6f\n", "Growth factor:", result.Result.R)
	fmt.Printf("%-16s %.2f\n", "Target value:", result.Result.VNext)
	fmt.Printf("%-16s %.2f ~ %.2f\n", "Band:", result.Result.Low, result.Result.High)
	fmt.Println()

	fmt.Printf("▶ %s\n", result.Decision.Badge())
	if result.Decision.Qty > 0 {
		fmt.Printf("  예상 금액: %.2f\n", result.Decision.Amount)
	}

	return nil
}
