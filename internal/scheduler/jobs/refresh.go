package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/rebal/internal/advisor"
	"github.com/wonny/rebal/pkg/logger"
)

// RefreshJob fetches a fresh quote for the session ticker every hour and
// stores it on the session. The dashboard then has a recent price even when
// no review has run and all live sources are briefly down.
type RefreshJob struct {
	svc    *advisor.Service
	logger *logger.Logger
}

// NewRefreshJob creates a new refresh job
func NewRefreshJob(svc *advisor.Service, log *logger.Logger) *RefreshJob {
	return &RefreshJob{svc: svc, logger: log}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "price_refresh"
}

// Schedule returns the cron schedule (hourly)
func (j *RefreshJob) Schedule() string {
	return "0 0 * * * *"
}

// Run fetches the latest quote and caches it on the session
func (j *RefreshJob) Run(ctx context.Context) error {
	session, err := j.svc.Session()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	quote, err := j.svc.FetchQuote(ctx, session.Ticker)
	if err != nil {
		return fmt.Errorf("failed to fetch price for %s: %w", session.Ticker, err)
	}

	session.LastQuote = &quote
	if err := j.svc.SaveSession(session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"ticker": quote.Ticker,
		"price":  quote.Price,
		"source": quote.Source,
	}).Debug("Price cache refreshed")

	return nil
}
