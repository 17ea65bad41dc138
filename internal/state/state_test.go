package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/rebal/internal/market"
	"github.com/wonny/rebal/internal/vr"
	"github.com/wonny/rebal/pkg/config"
)

func testDefaults() config.StrategyConfig {
	return config.StrategyConfig{Ticker: "TQQQ", D: 11, Band: 0.15, Contrib: 0}
}

func TestStore_LoadMissingFileSeedsDefaults(t *testing.T) {
	store := NewStore(t.TempDir(), testDefaults())

	s, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "TQQQ", s.Ticker)
	assert.Equal(t, 11.0, s.D)
	assert.Equal(t, 0.15, s.Band)
	assert.Zero(t, s.Shares)
	assert.Nil(t, s.LastResult)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir(), testDefaults())

	s, err := store.Load()
	require.NoError(t, err)

	s.Shares = 500
	s.Pool = 10000
	s.VPrev = 25000

	res, err := vr.ComputeValues(s.Input(50))
	require.NoError(t, err)
	dec := vr.DecideAction(res, 50)

	s.LastQuote = &market.Quote{Ticker: "TQQQ", Price: 50, Timestamp: time.Now().UTC(), Source: "yahoo_intraday"}
	s.LastResult = &res
	s.LastDecision = &dec
	require.NoError(t, store.Save(s))

	got, err := store.Load()
	require.NoError(t, err)
	assert.EqualValues(t, 500, got.Shares)
	assert.Equal(t, 25000.0, got.VPrev)
	require.NotNil(t, got.LastResult)
	assert.InDelta(t, res.VNext, got.LastResult.VNext, 1e-9)
	require.NotNil(t, got.LastDecision)
	assert.Equal(t, vr.ActionHold, got.LastDecision.Action)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestSession_Input(t *testing.T) {
	s := &Session{Shares: 300, Pool: 10000, VPrev: 25000, D: 11, Band: 0.15, Contrib: 250}

	in := s.Input(50)
	assert.Equal(t, 50.0, in.Price)
	assert.EqualValues(t, 300, in.Shares)
	assert.Equal(t, 250.0, in.Contrib)
	require.NoError(t, in.Validate())
}
