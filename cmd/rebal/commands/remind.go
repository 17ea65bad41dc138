package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

// remindCmd represents the remind command
var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "리뷰 알림 ICS 생성",
	Long: `다음 2주 리뷰 알림을 ICS 파일로 생성합니다. 캘린더 앱으로
불러오면 됩니다.

Example:
  go run ./cmd/rebal remind
  go run ./cmd/rebal remind --out ~/Downloads/vr_review.ics`,
	RunE: runRemind,
}

var remindOut string

func init() {
	rootCmd.AddCommand(remindCmd)

	remindCmd.Flags().StringVar(&remindOut, "out", "", "출력 파일 경로 (기본: <data dir>/vr_review.ics)")
}

func runRemind(cmd *cobra.Command, args []string) error {
	a, err := initApp()
	if err != nil {
		return err
	}
	defer a.Close()

	data, err := a.svc.Reminder(time.Now())
	if err != nil {
		return fmt.Errorf("build reminder: %w", err)
	}

	out := remindOut
	if out == "" {
		out = filepath.Join(a.cfg.DataDir, "vr_review.ics")
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write reminder file: %w", err)
	}

	fmt.Printf("✅ Reminder written to %s\n", out)
	return nil
}
