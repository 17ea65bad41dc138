package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rebal",
	Short: "VR 5.0 - 변동성 리밸런싱 어드바이저",
	Long: `VR 5.0 Rebalancing Advisor

2주 주기 가치 목표(Value Averaging 변형) 리밸런싱 도구.
현재가를 조회해 목표 가치와 밴드를 계산하고 BUY/SELL/HOLD를 권고합니다.

Usage:
  go run ./cmd/rebal [command]

Examples:
  go run ./cmd/rebal check
  go run ./cmd/rebal price --ticker TQQQ
  go run ./cmd/rebal table --levels 5 --step 1
  go run ./cmd/rebal api`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
