package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/wonny/rebal/internal/vr"
)

// PostgresRecommendationStore persists recommendation rows in Postgres.
// Used instead of the CSV store when DATABASE_URL is configured.
// ⭐ SSOT: 추천 로그 DB 저장/조회는 여기서만
type PostgresRecommendationStore struct {
	pool *pgxpool.Pool
}

// NewPostgresRecommendationStore creates a new store on the given pool
func NewPostgresRecommendationStore(pool *pgxpool.Pool) *PostgresRecommendationStore {
	return &PostgresRecommendationStore{pool: pool}
}

// EnsureSchema creates the log table when it does not exist.
func (s *PostgresRecommendationStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS vr_recommendations (
			id         BIGSERIAL PRIMARY KEY,
			date       TIMESTAMPTZ NOT NULL,
			ticker     TEXT NOT NULL,
			price      DOUBLE PRECISION NOT NULL,
			pv         DOUBLE PRECISION NOT NULL,
			v_next     DOUBLE PRECISION NOT NULL,
			band_low   DOUBLE PRECISION NOT NULL,
			band_high  DOUBLE PRECISION NOT NULL,
			action     TEXT NOT NULL,
			qty        BIGINT NOT NULL,
			amount     DOUBLE PRECISION NOT NULL,
			r          DOUBLE PRECISION NOT NULL,
			band       DOUBLE PRECISION NOT NULL,
			contrib    DOUBLE PRECISION NOT NULL,
			pool       DOUBLE PRECISION NOT NULL,
			shares     BIGINT NOT NULL,
			d          DOUBLE PRECISION NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create vr_recommendations table: %w", err)
	}
	return nil
}

// Append inserts one recommendation row.
func (s *PostgresRecommendationStore) Append(ctx context.Context, rec Recommendation) error {
	query := `
		INSERT INTO vr_recommendations
			(date, ticker, price, pv, v_next, band_low, band_high,
			 action, qty, amount, r, band, contrib, pool, shares, d)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := s.pool.Exec(ctx, query,
		rec.Date, rec.Ticker, rec.Price, rec.PV, rec.VNext, rec.BandLow, rec.BandHigh,
		string(rec.Action), rec.Qty, rec.Amount, rec.R, rec.Band, rec.Contrib,
		rec.Pool, rec.Shares, rec.D,
	)
	if err != nil {
		return fmt.Errorf("insert recommendation: %w", err)
	}
	return nil
}

// List returns all recommendation rows in append order.
func (s *PostgresRecommendationStore) List(ctx context.Context) ([]Recommendation, error) {
	query := `
		SELECT date, ticker, price, pv, v_next, band_low, band_high,
		       action, qty, amount, r, band, contrib, pool, shares, d
		FROM vr_recommendations
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}
	defer rows.Close()

	var recs []Recommendation
	for rows.Next() {
		var rec Recommendation
		var action string

		err := rows.Scan(
			&rec.Date, &rec.Ticker, &rec.Price, &rec.PV, &rec.VNext,
			&rec.BandLow, &rec.BandHigh, &action, &rec.Qty, &rec.Amount,
			&rec.R, &rec.Band, &rec.Contrib, &rec.Pool, &rec.Shares, &rec.D,
		)
		if err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}

		rec.Action = vr.Action(action)
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recommendations: %w", err)
	}
	return recs, nil
}

// PostgresTradeStore persists manually confirmed trades in Postgres.
type PostgresTradeStore struct {
	pool *pgxpool.Pool
}

// NewPostgresTradeStore creates a new store on the given pool
func NewPostgresTradeStore(pool *pgxpool.Pool) *PostgresTradeStore {
	return &PostgresTradeStore{pool: pool}
}

// EnsureSchema creates the trade table when it does not exist.
func (s *PostgresTradeStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS vr_trades (
			id         BIGSERIAL PRIMARY KEY,
			date       TIMESTAMPTZ NOT NULL,
			side       TEXT NOT NULL,
			qty        BIGINT NOT NULL,
			fill_price NUMERIC(18, 6) NOT NULL,
			notional   NUMERIC(18, 6) NOT NULL,
			note       TEXT NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		return fmt.Errorf("create vr_trades table: %w", err)
	}
	return nil
}

// Append inserts one trade row.
func (s *PostgresTradeStore) Append(ctx context.Context, trade Trade) error {
	query := `
		INSERT INTO vr_trades (date, side, qty, fill_price, notional, note)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.pool.Exec(ctx, query,
		trade.Date, string(trade.Side), trade.Qty,
		trade.FillPrice.String(), trade.Notional.String(), trade.Note,
	)
	if err != nil {
		return fmt.Errorf("insert trade: %w", err)
	}
	return nil
}

// List returns all trade rows in append order.
func (s *PostgresTradeStore) List(ctx context.Context) ([]Trade, error) {
	query := `
		SELECT date, side, qty, fill_price::text, notional::text, note
		FROM vr_trades
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	defer rows.Close()

	var trades []Trade
	for rows.Next() {
		var trade Trade
		var side, fillPrice, notional string

		if err := rows.Scan(&trade.Date, &side, &trade.Qty, &fillPrice, &notional, &trade.Note); err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}

		trade.Side = vr.Action(side)
		if trade.FillPrice, err = decimal.NewFromString(fillPrice); err != nil {
			return nil, fmt.Errorf("parse fill_price %q: %w", fillPrice, err)
		}
		if trade.Notional, err = decimal.NewFromString(notional); err != nil {
			return nil, fmt.Errorf("parse notional %q: %w", notional, err)
		}

		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trades: %w", err)
	}
	return trades, nil
}
