package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/rebal/internal/calendar"
	"github.com/wonny/rebal/internal/vr"
)

// projectCmd represents the project command
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "목표 가치 경로 추정",
	Long: `현재 세션의 성장률을 고정해 향후 리뷰 주기의 목표 가치와 밴드를
추정합니다. 실제 리뷰에서는 매번 성장률이 다시 계산되므로 이 표는
참고용입니다.

Example:
  go run ./cmd/rebal project
  go run ./cmd/rebal project --steps 12`,
	RunE: runProject,
}

var projectSteps int

func init() {
	rootCmd.AddCommand(projectCmd)

	projectCmd.Flags().IntVar(&projectSteps, "steps", 6, "추정할 리뷰 주기 수")
}

func runProject(cmd *cobra.Command, args []string) error {
	if projectSteps <= 0 || projectSteps > 260 {
		return fmt.Errorf("steps must be in [1, 260], got %d", projectSteps)
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

	steps := vr.ProjectPath(res.VNext, res.R, session.Contrib, session.Band, projectSteps)
	dates := calendar.ReviewDates(time.Now(), projectSteps)

	fmt.Printf("=== Projection (%s, r=%.6f) ===\n\n", session.Ticker, res.R)
	fmt.Printf("%-6s %-12s %12s %12s %12s\n", "Step", "Date", "Target", "Low", "High")
	for i, s := range steps {
		fmt.Printf("%-6d %-12s %12.2f %12.2f %12.2f\n",
			s.Step, dates[i].Format("2006-01-02"), s.V, s.Low, s.High)
	}

	return nil
}
