package chart

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	fynecontainer "fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/presstab/coinboard/internal/pricedb"
)

var (
	// ErrNoDatabase is returned by UpdateAssets when no database is attached.
	ErrNoDatabase = errors.New("chart: no database attached")
	// ErrClosed is returned by operations on a closed container.
	ErrClosed = errors.New("chart: container closed")
)

const dbTimeout = 15 * time.Second

// Container is the parent view owning the asset boxes, the context menu and
// the time-range picker. It borrows the price database: the database outlives
// the container and is never closed here.
type Container struct {
	widget.BaseWidget

	mu        sync.Mutex
	db        pricedb.Database
	boxes     map[string]*AssetBox
	menu      *fyne.Menu
	picker    *TimeRangePicker
	rangeDays int
	closed    bool

	grid   *fyne.Container
	events *Dispatcher
	win    fyne.Window
	log    *zap.Logger
}

// NewContainer builds an empty container. win hosts popup menus and dialogs
// and may be nil in headless tests. A nil logger is replaced with a no-op one.
func NewContainer(win fyne.Window, log *zap.Logger) *Container {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Container{
		boxes:     make(map[string]*AssetBox),
		rangeDays: 30,
		grid:      fynecontainer.New(layout.NewGridWrapLayout(fyne.NewSize(boxWidth, boxHeight))),
		events:    NewDispatcher(),
		win:       win,
		log:       log,
	}
	c.ExtendBaseWidget(c)
	return c
}

func (c *Container) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.grid)
}

// Events exposes the dispatch table so observers can bind handlers.
func (c *Container) Events() *Dispatcher { return c.events }

// SetDatabase attaches (or re-targets) the borrowed price database.
func (c *Container) SetDatabase(db pricedb.Database) {
	c.mu.Lock()
	c.db = db
	c.mu.Unlock()
}

// TimeRange returns the displayed history window in days.
func (c *Container) TimeRange() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rangeDays
}

// Symbols returns the asset identifiers currently displayed, sorted.
func (c *Container) Symbols() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.boxes))
	for s := range c.boxes {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Box returns the owned box for symbol, or nil.
func (c *Container) Box(symbol string) *AssetBox {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.boxes[symbol]
}

// UpdateAssets queries the database for the current asset set and reconciles
// the owned boxes against it: boxes for new symbols are created, existing ones
// updated in place, and boxes whose symbol is gone are released. Duplicate
// symbols in the snapshot collapse to one box, last quote winning.
func (c *Container) UpdateAssets() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	db := c.db
	c.mu.Unlock()

	if db == nil {
		return ErrNoDatabase
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()
	quotes, err := db.Quotes(ctx)
	if err != nil {
		return fmt.Errorf("chart: query assets: %w", err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	seen := make(map[string]bool, len(quotes))
	for _, q := range quotes {
		fill := ParseHexColor(q.ColorHex)
		if box, ok := c.boxes[q.Symbol]; ok {
			box.UpdatePrice(q.Price)
			box.UpdateColor(fill)
			seen[q.Symbol] = true
			continue
		}
		box, err := NewAssetBox(q.Symbol, q.Name, q.Price, fill)
		if err != nil {
			c.log.Warn("skipping asset", zap.String("symbol", q.Symbol), zap.Error(err))
			continue
		}
		sym := q.Symbol
		box.onClicked = func() { c.onBoxClicked(sym) }
		c.boxes[sym] = box
		seen[sym] = true
	}
	for sym := range c.boxes {
		if !seen[sym] {
			delete(c.boxes, sym)
		}
	}
	c.rebuildGridLocked()
	count := len(c.boxes)
	c.mu.Unlock()

	c.grid.Refresh()
	c.log.Debug("assets reconciled", zap.Int("boxes", count))
	c.events.Publish(Event{Kind: EventAssetsUpdated})
	return nil
}

// rebuildGridLocked rewrites the grid children from the box map in sorted
// symbol order. Callers hold c.mu.
func (c *Container) rebuildGridLocked() {
	syms := make([]string, 0, len(c.boxes))
	for s := range c.boxes {
		syms = append(syms, s)
	}
	sort.Strings(syms)
	objs := make([]fyne.CanvasObject, 0, len(syms))
	for _, s := range syms {
		objs = append(objs, c.boxes[s])
	}
	c.grid.Objects = objs
}

// Clear releases all owned boxes and empties the mapping. Safe when already
// empty and after Close.
func (c *Container) Clear() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.boxes = make(map[string]*AssetBox)
	c.grid.Objects = nil
	c.mu.Unlock()
	c.grid.Refresh()
}

// SetTimeRange stores the history window. With refresh true it triggers one
// redisplay through UpdateAssets; with refresh false nothing else happens.
func (c *Container) SetTimeRange(days int, refresh bool) error {
	if days <= 0 {
		return fmt.Errorf("chart: invalid time range %d days", days)
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.rangeDays = days
	c.mu.Unlock()

	c.events.Publish(Event{Kind: EventRangeChanged, Days: days})
	if refresh {
		return c.UpdateAssets()
	}
	return nil
}

// Check validates container invariants without changing state: every key maps
// to a non-nil box whose AssetName equals the key.
func (c *Container) Check() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for sym, box := range c.boxes {
		if box == nil {
			errs = append(errs, fmt.Errorf("chart: nil box under key %q", sym))
			continue
		}
		if box.AssetName() != sym {
			errs = append(errs, fmt.Errorf("chart: key %q holds box named %q", sym, box.AssetName()))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	c.log.Debug("chart check passed", zap.Int("boxes", len(c.boxes)))
	return nil
}

// TappedSecondary shows the context menu at the press position. The menu is
// created on first use and owned until Close.
func (c *Container) TappedSecondary(e *fyne.PointEvent) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.menu == nil {
		c.menu = fyne.NewMenu("",
			fyne.NewMenuItem("Refresh", func() {
				if err := c.UpdateAssets(); err != nil {
					c.log.Warn("refresh failed", zap.Error(err))
				}
			}),
			fyne.NewMenuItem("Time range…", c.ShowTimeRangePicker),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Clear", c.Clear),
		)
	}
	menu := c.menu
	c.mu.Unlock()

	if c.win != nil {
		widget.ShowPopUpMenuAtPosition(menu, c.win.Canvas(), e.AbsolutePosition)
	}
}

// ShowTimeRangePicker opens the time-range dialog, creating it on first use.
func (c *Container) ShowTimeRangePicker() {
	c.mu.Lock()
	if c.closed || c.win == nil {
		c.mu.Unlock()
		return
	}
	if c.picker == nil {
		c.picker = newTimeRangePicker(c.win, c.onRangePicked)
	}
	picker := c.picker
	days := c.rangeDays
	c.mu.Unlock()

	picker.Show(days)
}

// onRangePicked responds to the dialog's confirmation.
func (c *Container) onRangePicked(days int) {
	if err := c.SetTimeRange(days, true); err != nil {
		c.log.Warn("time range change failed", zap.Error(err))
	}
}

// onBoxClicked responds to a box's clicked notification.
func (c *Container) onBoxClicked(symbol string) {
	c.log.Debug("box clicked", zap.String("symbol", symbol))
	c.events.Publish(Event{Kind: EventBoxClicked, Symbol: symbol})
}

// Close releases all owned resources exactly once: the boxes, the context
// menu if it was ever created, and the picker likewise. The borrowed database
// is left untouched. Further calls are no-ops.
func (c *Container) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.boxes = make(map[string]*AssetBox)
	c.grid.Objects = nil
	if c.menu != nil {
		c.menu = nil
	}
	if c.picker != nil {
		c.picker = nil
	}
}
