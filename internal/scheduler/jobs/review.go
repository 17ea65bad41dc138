package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wonny/rebal/internal/advisor"
	"github.com/wonny/rebal/pkg/logger"
)

// ReviewJob runs one full review cycle on the biweekly schedule: fetch the
// live price, evaluate the session, append the recommendation, and refresh
// the reminder file so the next calendar import points at the following
// review.
type ReviewJob struct {
	svc     *advisor.Service
	dataDir string
	logger  *logger.Logger
}

// NewReviewJob creates a new review job
func NewReviewJob(svc *advisor.Service, dataDir string, log *logger.Logger) *ReviewJob {
	return &ReviewJob{
		svc:     svc,
		dataDir: dataDir,
		logger:  log,
	}
}

// Name returns the job name
func (j *ReviewJob) Name() string {
	return "biweekly_review"
}

// Schedule returns the cron schedule (every 2 weeks)
func (j *ReviewJob) Schedule() string {
	return "@every 336h"
}

// Run executes the review cycle
func (j *ReviewJob) Run(ctx context.Context) error {
	j.logger.Info("Starting biweekly review")

	result, err := j.svc.Check(ctx)
	if err != nil {
		return fmt.Errorf("review cycle failed: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"ticker": result.Quote.Ticker,
		"price":  result.Quote.Price,
		"action": result.Decision.Action,
		"qty":    result.Decision.Qty,
	}).Info("Review evaluated")

	// 다음 리뷰 알림 파일 갱신
	data, err := j.svc.Reminder(time.Now())
	if err != nil {
		return fmt.Errorf("failed to build reminder: %w", err)
	}

	path := filepath.Join(j.dataDir, "vr_review.ics")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write reminder file: %w", err)
	}

	j.logger.WithField("path", path).Info("Reminder file refreshed")
	return nil
}
