package main

import (
	"os"

	"github.com/wonny/rebal/cmd/rebal/commands"
)

// main is the entry point for the rebal CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/rebal [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
