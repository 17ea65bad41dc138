package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/rebal/internal/advisor"
	"github.com/wonny/rebal/internal/ledger"
	"github.com/wonny/rebal/internal/market"
	"github.com/wonny/rebal/internal/state"
	"github.com/wonny/rebal/pkg/config"
	"github.com/wonny/rebal/pkg/database"
	"github.com/wonny/rebal/pkg/httputil"
	"github.com/wonny/rebal/pkg/logger"
)

// app bundles the wired service with the resources commands must release.
type app struct {
	cfg *config.Config
	log *logger.Logger
	svc *advisor.Service
	db  *database.DB // nil when running on the CSV file store
}

// Close releases held resources
func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

// initApp wires the advisor service the same way for every command.
// ⭐ SSOT: 의존성 조립은 이 함수에서만
func initApp() (*app, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Create HTTP client and price cascade
	httpClient := httputil.New(cfg, log)
	chain := market.NewChain(cfg, httpClient, log)

	// 4. Select log stores: PostgreSQL when DATABASE_URL is set, CSV otherwise
	var (
		recs   ledger.RecommendationStore
		trades ledger.TradeStore
		db     *database.DB
	)

	if cfg.Database.URL != "" {
		db, err = database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pgRecs := ledger.NewPostgresRecommendationStore(db.Pool)
		if err := pgRecs.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ensure recommendation schema: %w", err)
		}

		pgTrades := ledger.NewPostgresTradeStore(db.Pool)
		if err := pgTrades.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ensure trade schema: %w", err)
		}

		recs = pgRecs
		trades = pgTrades
		log.Info("Using PostgreSQL log stores")
	} else {
		recs = ledger.NewCSVRecommendationStore(cfg.DataDir)
		trades = ledger.NewCSVTradeStore(cfg.DataDir)
	}

	// 5. Create session store
	sessions := state.NewStore(cfg.DataDir, cfg.Strategy)

	// 6. Create advisor service
	svc := advisor.New(chain, recs, trades, sessions, cfg, log)

	return &app{cfg: cfg, log: log, svc: svc, db: db}, nil
}
