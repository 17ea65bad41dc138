package advisor

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wonny/rebal/internal/calendar"
	"github.com/wonny/rebal/internal/ledger"
	"github.com/wonny/rebal/internal/market"
	"github.com/wonny/rebal/internal/state"
	"github.com/wonny/rebal/internal/vr"
	"github.com/wonny/rebal/pkg/config"
	"github.com/wonny/rebal/pkg/logger"
)

// Service wires the stateless VR engine to its collaborators: the price
// cascade, the session store, the append-only ledgers and the reminder
// generator.
// ⭐ SSOT: 리뷰 사이클 오케스트레이션은 이 서비스에서만
type Service struct {
	chain    *market.Chain
	recs     ledger.RecommendationStore
	trades   ledger.TradeStore
	sessions *state.Store
	cfg      *config.Config
	logger   *logger.Logger
}

// New creates a new advisor service
func New(
	chain *market.Chain,
	recs ledger.RecommendationStore,
	trades ledger.TradeStore,
	sessions *state.Store,
	cfg *config.Config,
	log *logger.Logger,
) *Service {
	return &Service{
		chain:    chain,
		recs:     recs,
		trades:   trades,
		sessions: sessions,
		cfg:      cfg,
		logger:   log,
	}
}

// CheckResult is the outcome of one completed review cycle.
type CheckResult struct {
	Quote    market.Quote       `json:"quote"`
	Input    vr.ValuationInput  `json:"input"`
	Result   vr.ValuationResult `json:"result"`
	Decision vr.ActionDecision  `json:"decision"`
}

// Check runs a full review cycle for the persisted session: fetch the live
// price, evaluate, append to the recommendation log and save the session.
func (s *Service) Check(ctx context.Context) (*CheckResult, error) {
	session, err := s.sessions.Load()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	quote, err := s.chain.Fetch(ctx, session.Ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch price: %w", err)
	}

	result, err := s.CheckAt(ctx, session, quote)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CheckAt evaluates the session against a known quote, appends the
// recommendation and persists the updated session. Split out from Check so
// callers that already hold a quote (API, tests) skip the cascade.
func (s *Service) CheckAt(ctx context.Context, session *state.Session, quote market.Quote) (*CheckResult, error) {
	in := session.Input(quote.Price)

	res, err := vr.ComputeValues(in)
	if err != nil {
		return nil, err
	}
	dec := vr.DecideAction(res, in.Price)

	rec := ledger.NewRecommendation(time.Now(), session.Ticker, in, res, dec)
	if err := s.recs.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("append recommendation: %w", err)
	}

	session.LastQuote = &quote
	session.LastResult = &res
	session.LastDecision = &dec
	if err := s.sessions.Save(session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"ticker": session.Ticker,
		"price":  quote.Price,
		"action": dec.Action,
		"qty":    dec.Qty,
	}).Info("Review cycle completed")

	return &CheckResult{Quote: quote, Input: in, Result: res, Decision: dec}, nil
}

// FetchQuote runs the price fallback cascade only.
func (s *Service) FetchQuote(ctx context.Context, ticker string) (market.Quote, error) {
	return s.chain.Fetch(ctx, ticker)
}

// Session returns the persisted session.
func (s *Service) Session() (*state.Session, error) {
	return s.sessions.Load()
}

// SaveSession persists updated session parameters.
func (s *Service) SaveSession(session *state.Session) error {
	return s.sessions.Save(session)
}

// Recommendations returns the full recommendation log.
func (s *Service) Recommendations(ctx context.Context) ([]ledger.Recommendation, error) {
	return s.recs.List(ctx)
}

// Trades returns the full trade log.
func (s *Service) Trades(ctx context.Context) ([]ledger.Trade, error) {
	return s.trades.List(ctx)
}

// RecordTrade appends a manually confirmed execution to the trade log.
func (s *Service) RecordTrade(ctx context.Context, side vr.Action, qty int64, fillPrice decimal.Decimal, note string) (ledger.Trade, error) {
	if side != vr.ActionBuy && side != vr.ActionSell {
		return ledger.Trade{}, fmt.Errorf("%w: side must be BUY or SELL, got %q", vr.ErrInvalidInput, side)
	}
	if qty <= 0 {
		return ledger.Trade{}, fmt.Errorf("%w: qty must be > 0, got %d", vr.ErrInvalidInput, qty)
	}
	if fillPrice.Sign() <= 0 {
		return ledger.Trade{}, fmt.Errorf("%w: fill price must be > 0, got %s", vr.ErrInvalidInput, fillPrice)
	}

	trade := ledger.NewTrade(time.Now(), side, qty, fillPrice, note)
	if err := s.trades.Append(ctx, trade); err != nil {
		return ledger.Trade{}, fmt.Errorf("append trade: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"side":     side,
		"qty":      qty,
		"notional": trade.Notional.String(),
	}).Info("Trade recorded")

	return trade, nil
}

// Reminder renders the next biweekly review as an ICS file.
func (s *Service) Reminder(now time.Time) ([]byte, error) {
	return calendar.BiweeklyReminder(now, s.cfg.Reminder)
}
