package ledger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/rebal/internal/vr"
)

func sampleRecommendation(date time.Time) Recommendation {
	in := vr.ValuationInput{
		Price: 50, Shares: 300, Pool: 10000, VPrev: 25000,
		D: 11, Band: 0.15, Contrib: 0,
	}
	res, _ := vr.ComputeValues(in)
	dec := vr.DecideAction(res, in.Price)
	return NewRecommendation(date, "TQQQ", in, res, dec)
}

func TestCSVRecommendationStore_AppendAndList(t *testing.T) {
	dir := t.TempDir()
	store := NewCSVRecommendationStore(dir)
	ctx := context.Background()

	date := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	rec := sampleRecommendation(date)
	require.NoError(t, store.Append(ctx, rec))
	require.NoError(t, store.Append(ctx, sampleRecommendation(date.AddDate(0, 0, 14))))

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, date, got[0].Date)
	assert.Equal(t, "TQQQ", got[0].Ticker)
	assert.Equal(t, vr.ActionBuy, got[0].Action)
	assert.EqualValues(t, 219, got[0].Qty)
	assert.InDelta(t, rec.VNext, got[0].VNext, 1e-9)
	assert.InDelta(t, rec.Amount, got[0].Amount, 1e-9)
	assert.EqualValues(t, 300, got[0].Shares)

	// header is written exactly once
	raw, err := os.ReadFile(filepath.Join(dir, "vr_log.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(raw), "date,ticker"))
	assert.Equal(t, 3, len(strings.Split(strings.TrimSpace(string(raw)), "\n")))
}

func TestCSVRecommendationStore_MissingFileIsEmpty(t *testing.T) {
	store := NewCSVRecommendationStore(t.TempDir())

	got, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCSVTradeStore_AppendAndList(t *testing.T) {
	dir := t.TempDir()
	store := NewCSVTradeStore(dir)
	ctx := context.Background()

	date := time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)
	fill := decimal.RequireFromString("49.87")
	trade := NewTrade(date, vr.ActionBuy, 219, fill, "체결 확인")

	require.NoError(t, store.Append(ctx, trade))

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, vr.ActionBuy, got[0].Side)
	assert.EqualValues(t, 219, got[0].Qty)
	// 달러 금액은 문자열 그대로 보존되어야 한다
	assert.True(t, got[0].FillPrice.Equal(fill), "fill price round trip")
	assert.True(t, got[0].Notional.Equal(decimal.RequireFromString("10921.53")), "notional = 219 * 49.87")
	assert.Equal(t, "체결 확인", got[0].Note)
}

func TestNewTrade_Notional(t *testing.T) {
	trade := NewTrade(time.Now(), vr.ActionSell, 181, decimal.RequireFromString("50.10"), "")
	assert.True(t, trade.Notional.Equal(decimal.RequireFromString("9068.10")))
}
