package advisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/rebal/internal/ledger"
	"github.com/wonny/rebal/internal/market"
	"github.com/wonny/rebal/internal/state"
	"github.com/wonny/rebal/internal/vr"
	"github.com/wonny/rebal/pkg/config"
	"github.com/wonny/rebal/pkg/logger"
)

type stubSource struct {
	quote market.Quote
	err   error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(ctx context.Context, ticker string) (market.Quote, error) {
	if s.err != nil {
		return market.Quote{}, s.err
	}
	q := s.quote
	q.Ticker = ticker
	q.Source = "stub"
	return q, nil
}

func newTestService(t *testing.T, src market.Source) *Service {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		DataDir:  dir,
		Strategy: config.StrategyConfig{Ticker: "TQQQ", D: 11, Band: 0.15},
		Reminder: config.ReminderConfig{Hour: 9, Timezone: "Asia/Seoul", Title: "VR 점검"},
	}

	return New(
		market.NewChainFromSources(logger.Nop(), src),
		ledger.NewCSVRecommendationStore(dir),
		ledger.NewCSVTradeStore(dir),
		state.NewStore(dir, cfg.Strategy),
		cfg,
		logger.Nop(),
	)
}

func seedSession(t *testing.T, svc *Service, shares int64, pool, vPrev float64) {
	t.Helper()

	session, err := svc.Session()
	require.NoError(t, err)
	session.Shares = shares
	session.Pool = pool
	session.VPrev = vPrev
	require.NoError(t, svc.SaveSession(session))
}

func TestService_Check(t *testing.T) {
	src := &stubSource{quote: market.Quote{Price: 50, Timestamp: time.Now().UTC()}}
	svc := newTestService(t, src)
	seedSession(t, svc, 300, 10000, 25000)

	result, err := svc.Check(context.Background())
	require.NoError(t, err)

	assert.Equal(t, vr.ActionBuy, result.Decision.Action)
	assert.EqualValues(t, 219, result.Decision.Qty)
	assert.InDelta(t, 25909.0909, result.Result.VNext, 0.01)

	// recommendation appended
	recs, err := svc.Recommendations(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "TQQQ", recs[0].Ticker)
	assert.Equal(t, vr.ActionBuy, recs[0].Action)
	assert.EqualValues(t, 300, recs[0].Shares)

	// session updated with the completed evaluation
	session, err := svc.Session()
	require.NoError(t, err)
	require.NotNil(t, session.LastDecision)
	assert.Equal(t, vr.ActionBuy, session.LastDecision.Action)
	require.NotNil(t, session.LastQuote)
	assert.Equal(t, "stub", session.LastQuote.Source)
}

func TestService_Check_PriceFailure(t *testing.T) {
	src := &stubSource{err: errors.New("network down")}
	svc := newTestService(t, src)
	seedSession(t, svc, 300, 10000, 25000)

	_, err := svc.Check(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, market.ErrAllSourcesFailed))

	// 가격 조회 실패는 입력 오류와 구분되어야 한다
	assert.False(t, errors.Is(err, vr.ErrInvalidInput))

	recs, err := svc.Recommendations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs, "failed cycles must not log a recommendation")
}

func TestService_Check_InvalidSession(t *testing.T) {
	src := &stubSource{quote: market.Quote{Price: 50}}
	svc := newTestService(t, src)
	// v_prev stays zero: engine precondition violated

	_, err := svc.Check(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, vr.ErrInvalidInput))
}

func TestService_RecordTrade(t *testing.T) {
	svc := newTestService(t, &stubSource{quote: market.Quote{Price: 50}})

	trade, err := svc.RecordTrade(context.Background(), vr.ActionBuy, 219, decimal.RequireFromString("49.87"), "")
	require.NoError(t, err)
	assert.True(t, trade.Notional.Equal(decimal.RequireFromString("10921.53")))

	trades, err := svc.Trades(context.Background())
	require.NoError(t, err)
	require.Len(t, trades, 1)
}

func TestService_RecordTrade_Validation(t *testing.T) {
	svc := newTestService(t, &stubSource{quote: market.Quote{Price: 50}})
	ctx := context.Background()

	_, err := svc.RecordTrade(ctx, vr.ActionHold, 10, decimal.NewFromInt(50), "")
	assert.True(t, errors.Is(err, vr.ErrInvalidInput))

	_, err = svc.RecordTrade(ctx, vr.ActionBuy, 0, decimal.NewFromInt(50), "")
	assert.True(t, errors.Is(err, vr.ErrInvalidInput))

	_, err = svc.RecordTrade(ctx, vr.ActionSell, 10, decimal.Zero, "")
	assert.True(t, errors.Is(err, vr.ErrInvalidInput))
}

func TestService_Reminder(t *testing.T) {
	svc := newTestService(t, &stubSource{quote: market.Quote{Price: 50}})

	data, err := svc.Reminder(time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VEVENT")
}
