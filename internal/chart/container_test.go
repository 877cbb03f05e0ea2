package chart

import (
	"context"
	"testing"
	"time"

	fynetest "fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/require"

	"github.com/presstab/coinboard/internal/pricedb"
)

func seedStore(t *testing.T, quotes ...pricedb.Quote) *pricedb.MemoryStore {
	t.Helper()
	store := pricedb.NewMemoryStore()
	for _, q := range quotes {
		require.NoError(t, store.UpsertQuote(context.Background(), q))
	}
	return store
}

func quote(symbol, name string, price float64) pricedb.Quote {
	return pricedb.Quote{
		Symbol: symbol, Name: name, Price: price,
		ColorHex: "#37474f", UpdatedAt: time.Now(),
	}
}

// countingDB counts Quotes calls so tests can assert refresh behavior.
type countingDB struct {
	pricedb.Database
	quoteCalls int
}

func (c *countingDB) Quotes(ctx context.Context) ([]pricedb.Quote, error) {
	c.quoteCalls++
	return c.Database.Quotes(ctx)
}

// staticDB serves a fixed snapshot, duplicates included.
type staticDB struct{ quotes []pricedb.Quote }

func (s *staticDB) Quotes(context.Context) ([]pricedb.Quote, error) { return s.quotes, nil }
func (s *staticDB) History(context.Context, string, int) ([]pricedb.PricePoint, error) {
	return nil, nil
}
func (s *staticDB) UpsertQuote(context.Context, pricedb.Quote) error { return nil }
func (s *staticDB) RecordPrice(context.Context, string, float64, time.Time) error {
	return nil
}
func (s *staticDB) Close() error { return nil }

func TestUpdateAssetsReconciles(t *testing.T) {
	_ = fynetest.NewApp()
	store := seedStore(t,
		quote("BTCUSDT", "Bitcoin", 64000),
		quote("ETHUSDT", "Ethereum", 3100),
	)

	c := NewContainer(nil, nil)
	c.SetDatabase(store)
	require.NoError(t, c.UpdateAssets())
	require.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, c.Symbols())
	require.Equal(t, "BTCUSDT", c.Box("BTCUSDT").AssetName())
	require.Equal(t, 64000.0, c.Box("BTCUSDT").Price())

	// Next snapshot: BTC moved, ETH gone, SOL appeared.
	btcBox := c.Box("BTCUSDT")
	store.Delete("ETHUSDT")
	require.NoError(t, store.UpsertQuote(context.Background(), quote("BTCUSDT", "Bitcoin", 65000)))
	require.NoError(t, store.UpsertQuote(context.Background(), quote("SOLUSDT", "Solana", 140)))

	require.NoError(t, c.UpdateAssets())
	require.Equal(t, []string{"BTCUSDT", "SOLUSDT"}, c.Symbols())
	require.Equal(t, 65000.0, c.Box("BTCUSDT").Price())
	// Incremental reconcile patches surviving boxes in place.
	require.Same(t, btcBox, c.Box("BTCUSDT"))
	require.Nil(t, c.Box("ETHUSDT"))
}

func TestUpdateAssetsWithoutDatabase(t *testing.T) {
	_ = fynetest.NewApp()
	c := NewContainer(nil, nil)
	require.ErrorIs(t, c.UpdateAssets(), ErrNoDatabase)
}

func TestUpdateAssetsCollapsesDuplicates(t *testing.T) {
	_ = fynetest.NewApp()
	db := &staticDB{quotes: []pricedb.Quote{
		quote("BTCUSDT", "Bitcoin", 64000),
		quote("BTCUSDT", "Bitcoin", 64500),
	}}
	c := NewContainer(nil, nil)
	c.SetDatabase(db)
	require.NoError(t, c.UpdateAssets())
	require.Equal(t, []string{"BTCUSDT"}, c.Symbols())
	require.Equal(t, 64500.0, c.Box("BTCUSDT").Price())
}

func TestClearEmptiesAndIsIdempotent(t *testing.T) {
	_ = fynetest.NewApp()
	store := seedStore(t, quote("BTCUSDT", "Bitcoin", 64000))
	c := NewContainer(nil, nil)
	c.SetDatabase(store)
	require.NoError(t, c.UpdateAssets())
	require.Len(t, c.Symbols(), 1)

	c.Clear()
	require.Empty(t, c.Symbols())
	c.Clear() // already empty
	require.Empty(t, c.Symbols())
}

func TestCloseReleasesOnce(t *testing.T) {
	_ = fynetest.NewApp()
	store := seedStore(t, quote("BTCUSDT", "Bitcoin", 64000))
	c := NewContainer(nil, nil)
	c.SetDatabase(store)
	require.NoError(t, c.UpdateAssets())

	c.Clear()
	c.Close() // after Clear: nothing left to release, must not fail
	c.Close() // second close is a no-op

	require.ErrorIs(t, c.UpdateAssets(), ErrClosed)
	require.ErrorIs(t, c.SetTimeRange(7, false), ErrClosed)
}

func TestCloseWithoutOptionalResources(t *testing.T) {
	_ = fynetest.NewApp()
	// Menu and picker were never created; Close must nil-check both.
	c := NewContainer(nil, nil)
	c.Close()
	c.Close()
}

func TestSetTimeRangeRefreshFlag(t *testing.T) {
	_ = fynetest.NewApp()
	db := &countingDB{Database: seedStore(t, quote("BTCUSDT", "Bitcoin", 64000))}
	c := NewContainer(nil, nil)
	c.SetDatabase(db)

	require.NoError(t, c.SetTimeRange(30, false))
	require.Equal(t, 30, c.TimeRange())
	require.Equal(t, 0, db.quoteCalls)

	require.NoError(t, c.SetTimeRange(30, true))
	require.Equal(t, 1, db.quoteCalls)

	require.Error(t, c.SetTimeRange(0, false))
	require.Equal(t, 30, c.TimeRange())
}

func TestSetTimeRangePublishesChange(t *testing.T) {
	_ = fynetest.NewApp()
	c := NewContainer(nil, nil)
	var got []int
	c.Events().Subscribe(EventRangeChanged, func(e Event) { got = append(got, e.Days) })

	require.NoError(t, c.SetTimeRange(7, false))
	require.Equal(t, []int{7}, got)
}

func TestBoxClickDeliversExactlyOnce(t *testing.T) {
	_ = fynetest.NewApp()
	store := seedStore(t, quote("BTCUSDT", "Bitcoin", 64000))
	c := NewContainer(nil, nil)
	c.SetDatabase(store)
	require.NoError(t, c.UpdateAssets())

	var clicks []string
	c.Events().Subscribe(EventBoxClicked, func(e Event) { clicks = append(clicks, e.Symbol) })

	fynetest.Tap(c.Box("BTCUSDT"))
	require.Equal(t, []string{"BTCUSDT"}, clicks)
}

func TestCheckValidatesKeyInvariant(t *testing.T) {
	_ = fynetest.NewApp()
	store := seedStore(t, quote("BTCUSDT", "Bitcoin", 64000))
	c := NewContainer(nil, nil)
	c.SetDatabase(store)
	require.NoError(t, c.UpdateAssets())
	require.NoError(t, c.Check())

	// Corrupt the mapping: key no longer matches the box it holds.
	c.mu.Lock()
	c.boxes["ETHUSDT"] = c.boxes["BTCUSDT"]
	c.mu.Unlock()
	require.Error(t, c.Check())

	c.mu.Lock()
	c.boxes["ETHUSDT"] = nil
	c.mu.Unlock()
	require.Error(t, c.Check())
}

func TestSetDatabaseRetargets(t *testing.T) {
	_ = fynetest.NewApp()
	first := seedStore(t, quote("BTCUSDT", "Bitcoin", 64000))
	second := seedStore(t, quote("SOLUSDT", "Solana", 140))

	c := NewContainer(nil, nil)
	c.SetDatabase(first)
	require.NoError(t, c.UpdateAssets())
	require.Equal(t, []string{"BTCUSDT"}, c.Symbols())

	c.SetDatabase(second)
	require.NoError(t, c.UpdateAssets())
	require.Equal(t, []string{"SOLUSDT"}, c.Symbols())
}
