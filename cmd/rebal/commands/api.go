package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/rebal/internal/api"
	"github.com/wonny/rebal/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 평가/점검/추정/시나리오 엔드포인트 제공
- 실시간 시세 웹소켓 스트림 제공

Endpoints:
  GET  /health                    - Health check
  POST /api/vr/evaluate           - 임의 파라미터 평가
  POST /api/vr/check              - 세션 점검 사이클
  POST /api/vr/project            - 목표 가치 경로 추정
  POST /api/vr/table              - 가격 시나리오 표
  GET  /api/session               - 세션 조회
  PUT  /api/session               - 세션 갱신
  GET  /api/price                 - 현재가 조회
  GET  /api/price/stream          - 시세 웹소켓 스트림
  GET  /api/logs/recommendations  - 권고 로그
  GET  /api/logs/trades           - 체결 로그
  POST /api/logs/trades           - 체결 기록
  GET  /api/reminder.ics          - 리뷰 알림 ICS

Example:
  go run ./cmd/rebal api
  go run ./cmd/rebal api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT 환경변수)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== VR 5.0 API Server ===")

	a, err := initApp()
	if err != nil {
		return err
	}
	defer a.Close()

	// Override port if flag is set
	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	a.log.WithFields(map[string]interface{}{
		"port": a.cfg.Port,
		"env":  a.cfg.Env,
	}).Info("Initializing API server")

	// Create handlers and router
	vrHandler := handlers.NewVRHandler(a.svc, a.log)
	marketHandler := handlers.NewMarketHandler(a.svc, a.log)
	logsHandler := handlers.NewLogsHandler(a.svc, a.log)

	router := api.NewRouter(vrHandler, marketHandler, logsHandler, a.log)
	server := api.New(a.cfg, a.log, router)

	// Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			a.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	a.log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	a.log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.log.Info("Server stopped")
	return nil
}
