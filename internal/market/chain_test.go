package market

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/rebal/pkg/logger"
)

type fakeSource struct {
	name  string
	quote Quote
	err   error
	calls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(ctx context.Context, ticker string) (Quote, error) {
	f.calls++
	if f.err != nil {
		return Quote{}, f.err
	}
	q := f.quote
	q.Ticker = ticker
	q.Source = f.name
	return q, nil
}

func TestChain_FirstTierWins(t *testing.T) {
	first := &fakeSource{name: "first", quote: Quote{Price: 51.2, Timestamp: time.Now()}}
	second := &fakeSource{name: "second", quote: Quote{Price: 99}}

	chain := NewChainFromSources(logger.Nop(), first, second)

	q, err := chain.Fetch(context.Background(), "TQQQ")
	require.NoError(t, err)
	assert.Equal(t, "first", q.Source)
	assert.Equal(t, 51.2, q.Price)
	assert.Equal(t, "TQQQ", q.Ticker)
	assert.Zero(t, second.calls, "lower tiers must not be touched on success")
}

func TestChain_FallsBackInOrder(t *testing.T) {
	first := &fakeSource{name: "first", err: errors.New("timeout")}
	second := &fakeSource{name: "second", err: errors.New("blocked")}
	third := &fakeSource{name: "third", quote: Quote{Price: 50.05, Timestamp: time.Now()}}

	chain := NewChainFromSources(logger.Nop(), first, second, third)

	q, err := chain.Fetch(context.Background(), "TQQQ")
	require.NoError(t, err)
	assert.Equal(t, "third", q.Source)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestChain_AllTiersExhausted(t *testing.T) {
	first := &fakeSource{name: "first", err: errors.New("timeout")}
	second := &fakeSource{name: "second", err: errors.New("blocked")}

	chain := NewChainFromSources(logger.Nop(), first, second)

	_, err := chain.Fetch(context.Background(), "TQQQ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAllSourcesFailed))
}

func TestChain_ContextCancelled(t *testing.T) {
	src := &fakeSource{name: "src", quote: Quote{Price: 50}}
	chain := NewChainFromSources(logger.Nop(), src)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := chain.Fetch(ctx, "TQQQ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, src.calls)
}
