package marketcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/cache"
	applogger "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/logger"
)

// brokenCache fails every operation, standing in for an unreachable backend.
type brokenCache struct{}

var errBackendDown = errors.New("backend down")

func (brokenCache) Set(context.Context, string, interface{}, time.Duration) error {
	return errBackendDown
}
func (brokenCache) Get(context.Context, string, interface{}) error { return errBackendDown }
func (brokenCache) Delete(context.Context, ...string) error        { return errBackendDown }
func (brokenCache) Exists(context.Context, ...string) (bool, error) {
	return false, errBackendDown
}
func (brokenCache) TTL(context.Context, string) (time.Duration, error) {
	return 0, errBackendDown
}
func (brokenCache) Close() error { return nil }

type payload struct {
	Value string `json:"value"`
}

func TestStoreRoundTrip(t *testing.T) {
	s := New(cache.NewMemoryCache(), applogger.Nop())
	ctx := context.Background()

	assert.True(t, s.Set(ctx, NamespaceMarketData, "price:AAPL_1mo", payload{Value: "x"}, time.Minute))

	var got payload
	require.True(t, s.Get(ctx, NamespaceMarketData, "price:AAPL_1mo", &got))
	assert.Equal(t, "x", got.Value)

	assert.True(t, s.Exists(ctx, NamespaceMarketData, "price:AAPL_1mo"))
	assert.Greater(t, s.RemainingTTL(ctx, NamespaceMarketData, "price:AAPL_1mo"), time.Duration(0))
}

func TestStoreNamespacesDoNotCollide(t *testing.T) {
	s := New(cache.NewMemoryCache(), applogger.Nop())
	ctx := context.Background()

	s.Set(ctx, NamespaceMarketData, "k", payload{Value: "price"}, time.Minute)
	s.Set(ctx, NamespaceTechnical, "k", payload{Value: "signal"}, time.Minute)

	var got payload
	require.True(t, s.Get(ctx, NamespaceMarketData, "k", &got))
	assert.Equal(t, "price", got.Value)
	require.True(t, s.Get(ctx, NamespaceTechnical, "k", &got))
	assert.Equal(t, "signal", got.Value)
}

func TestStoreMissOnAbsentKey(t *testing.T) {
	s := New(cache.NewMemoryCache(), applogger.Nop())

	var got payload
	assert.False(t, s.Get(context.Background(), NamespaceAssets, "nope", &got))
}

func TestStoreDelete(t *testing.T) {
	s := New(cache.NewMemoryCache(), applogger.Nop())
	ctx := context.Background()

	s.Set(ctx, NamespaceAssets, "k", payload{Value: "x"}, time.Minute)
	assert.True(t, s.Delete(ctx, NamespaceAssets, "k"))

	var got payload
	assert.False(t, s.Get(ctx, NamespaceAssets, "k", &got))
}

func TestStoreDegradesToMissOnBackendFailure(t *testing.T) {
	// Every operation against a dead backend reads as a miss or no-op,
	// never an error surfaced to the caller.
	s := New(brokenCache{}, applogger.Nop())
	ctx := context.Background()

	var got payload
	assert.False(t, s.Get(ctx, NamespaceMarketData, "k", &got))
	assert.False(t, s.Set(ctx, NamespaceMarketData, "k", payload{Value: "x"}, time.Minute))
	assert.False(t, s.Delete(ctx, NamespaceMarketData, "k"))
	assert.False(t, s.Exists(ctx, NamespaceMarketData, "k"))
	assert.Negative(t, s.RemainingTTL(ctx, NamespaceMarketData, "k"))
}
