package feed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/presstab/coinboard/internal/pricedb"
)

// Display colors assigned to a box by the latest price direction.
const (
	ColorUp   = "#1b5e20"
	ColorDown = "#7f1d1d"
	ColorFlat = "#37474f"
)

// Collector pulls quotes from a fetcher and reconciles them into the store.
type Collector struct {
	fetcher Fetcher
	store   pricedb.Database
	names   map[string]string // symbol -> display name
	symbols []string
	log     *zap.Logger

	// OnUpdate, when set, is invoked after every successful collect.
	OnUpdate func()
}

// NewCollector wires a fetcher to a store. names maps each watched symbol to
// its display name; its keys define the symbol set collected.
func NewCollector(f Fetcher, store pricedb.Database, symbols []string, names map[string]string, log *zap.Logger) *Collector {
	return &Collector{
		fetcher: f,
		store:   store,
		names:   names,
		symbols: symbols,
		log:     log,
	}
}

// Collect fetches the watched symbols once and writes quotes plus one history
// sample per symbol. The display color is derived from the move against the
// previously stored price.
func (c *Collector) Collect(ctx context.Context) error {
	quotes, err := c.fetcher.FetchQuotes(ctx, c.symbols)
	if err != nil {
		return fmt.Errorf("collect via %s: %w", c.fetcher.Name(), err)
	}

	prev := make(map[string]float64)
	if stored, err := c.store.Quotes(ctx); err == nil {
		for _, q := range stored {
			prev[q.Symbol] = q.Price
		}
	}

	for _, q := range quotes {
		if name, ok := c.names[q.Symbol]; ok {
			q.Name = name
		} else {
			q.Name = q.Symbol
		}
		q.ColorHex = directionColor(prev[q.Symbol], q.Price)

		if err := c.store.UpsertQuote(ctx, q); err != nil {
			return err
		}
		if err := c.store.RecordPrice(ctx, q.Symbol, q.Price, q.UpdatedAt); err != nil {
			return err
		}
	}

	c.log.Debug("collected quotes",
		zap.String("source", c.fetcher.Name()),
		zap.Int("count", len(quotes)))

	if c.OnUpdate != nil {
		c.OnUpdate()
	}
	return nil
}

// directionColor picks the box color for a move from prev to cur. A zero prev
// means no prior sample and reads as flat.
func directionColor(prev, cur float64) string {
	switch {
	case prev == 0 || cur == prev:
		return ColorFlat
	case cur > prev:
		return ColorUp
	default:
		return ColorDown
	}
}
