package market

import (
	"context"
	"fmt"

	"github.com/wonny/rebal/pkg/config"
	"github.com/wonny/rebal/pkg/httputil"
	"github.com/wonny/rebal/pkg/logger"
)

// Chain tries each price tier in order and returns the first quote.
// 우선순위: 야후 1분봉 → 야후 일봉 → Stooq CSV → Stooq HTML
type Chain struct {
	sources []Source
	logger  *logger.Logger
}

// NewChain builds the default fallback cascade from config.
func NewChain(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Chain {
	yahoo := NewYahooClient(cfg.Market.YahooBaseURL, httpClient, log)
	stooq := NewStooqClient(cfg.Market.StooqBaseURL, httpClient, log)

	return &Chain{
		sources: []Source{
			yahoo.Intraday(), // 1분봉 5일
			yahoo.Daily(),    // 일봉 10일
			stooq.CSV(),
			stooq.HTML(),
		},
		logger: log,
	}
}

// NewChainFromSources builds a cascade from explicit tiers. Used by tests
// and by callers that want a shorter chain.
func NewChainFromSources(log *logger.Logger, sources ...Source) *Chain {
	return &Chain{sources: sources, logger: log}
}

// Fetch returns the first successful quote. It fails with
// ErrAllSourcesFailed only when every tier has been tried.
// ⭐ SSOT: 폴백 캐스케이드 순회는 이 함수에서만
func (c *Chain) Fetch(ctx context.Context, ticker string) (Quote, error) {
	var lastErr error

	for _, src := range c.sources {
		if err := ctx.Err(); err != nil {
			return Quote{}, err
		}

		quote, err := src.Fetch(ctx, ticker)
		if err != nil {
			lastErr = err
			c.logger.WithFields(map[string]interface{}{
				"source": src.Name(),
				"ticker": ticker,
				"error":  err.Error(),
			}).Warn("Price source failed, falling back")
			continue
		}

		c.logger.WithFields(map[string]interface{}{
			"source": src.Name(),
			"ticker": ticker,
			"price":  quote.Price,
		}).Debug("Fetched quote")
		return quote, nil
	}

	return Quote{}, fmt.Errorf("%w: %s: %v", ErrAllSourcesFailed, ticker, lastErr)
}
