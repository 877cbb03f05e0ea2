package main

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/presstab/coinboard/internal/chart"
	"github.com/presstab/coinboard/internal/config"
	"github.com/presstab/coinboard/internal/feed"
	"github.com/presstab/coinboard/internal/logger"
	"github.com/presstab/coinboard/internal/pricedb"
	"github.com/presstab/coinboard/internal/scheduler"
)

func main() {
	hideConsoleWindow()

	_ = godotenv.Load()
	_ = godotenv.Overload(".env.local")

	zlog, err := logger.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer zlog.Sync()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		zlog.Fatal("load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		zlog.Fatal("config validation", zap.Error(err))
	}

	loadSession()
	if session.Theme != "" {
		cfg.UI.Theme = session.Theme
		cfg.UI.Compact = session.Compact
	}
	if session.RangeDays > 0 {
		cfg.UI.TimeRangeDays = session.RangeDays
	}

	a := app.New()
	curTheme = makeTheme(cfg.UI.Theme, cfg.UI.Compact)
	a.Settings().SetTheme(curTheme)

	w := a.NewWindow("Coinboard")
	w.Resize(fyne.NewSize(980, 640))
	w.SetOnClosed(func() {
		if logWin != nil {
			logWin.Close()
			logWin = nil
		}
		saveSession()
	})

	// Price store: sqlite, falling back to memory when the file can't open.
	var store pricedb.Database
	if s, err := pricedb.OpenSQLite(cfg.Database.SQLitePath, zlog); err != nil {
		zlog.Warn("sqlite unavailable, using memory store", zap.Error(err))
		store = pricedb.NewMemoryStore()
	} else {
		store = s
	}
	defer store.Close()

	// Feed source: on-chain Chainlink feeds when configured, Binance otherwise.
	var fetcher feed.Fetcher
	if cfg.Chainlink.RPCURL != "" && len(cfg.Chainlink.Feeds) > 0 {
		cf, err := feed.NewChainlinkFetcher(cfg.Chainlink.RPCURL, cfg.Chainlink.Feeds)
		if err != nil {
			zlog.Warn("chainlink source unavailable", zap.Error(err))
		} else {
			defer cf.Close()
			fetcher = cf
		}
	}
	if fetcher == nil {
		fetcher = feed.NewBinanceFetcher(cfg.DataSource.BaseURL, cfg.DataSource.Proxy)
	}
	zlog.Info("data source selected", zap.String("source", fetcher.Name()))

	names := make(map[string]string, len(cfg.Assets))
	for _, asset := range cfg.Assets {
		names[asset.Symbol] = asset.Name
	}
	col := feed.NewCollector(fetcher, store, cfg.Symbols(), names, zlog)

	board := chart.NewContainer(w, zlog)
	board.SetDatabase(store)
	if err := board.SetTimeRange(cfg.UI.TimeRangeDays, false); err != nil {
		zlog.Warn("initial time range rejected", zap.Error(err))
	}
	session.RangeDays = board.TimeRange()

	statusLbl = widget.NewLabel("[feed] waiting for first update…")

	col.OnUpdate = func() {
		telAdd(TelemetryItem{
			Time: time.Now().UTC().Format(time.RFC3339), Action: "collect",
			Source: fetcher.Name(), OK: true,
		})
		if err := board.UpdateAssets(); err != nil {
			zlog.Warn("board update failed", zap.Error(err))
			return
		}
		statusLbl.SetText(fmt.Sprintf("[feed] %s · %d assets · updated %s",
			fetcher.Name(), len(board.Symbols()), time.Now().Format("15:04:05")))
		appendLogLine(a, fmt.Sprintf("quotes refreshed via %s", fetcher.Name()))
	}

	board.Events().Subscribe(chart.EventBoxClicked, func(e chart.Event) {
		showHistoryDialog(a, w, store, e.Symbol, board.TimeRange())
	})
	board.Events().Subscribe(chart.EventRangeChanged, func(e chart.Event) {
		session.RangeDays = e.Days
		saveSession()
		appendLogLine(a, fmt.Sprintf("time range set to %d days", e.Days))
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sched := scheduler.New(ctx, col, zlog)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		zlog.Fatal("register refresh job", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	refreshBtn := widget.NewButtonWithIcon("REFRESH", theme.ViewRefreshIcon(), func() {
		go sched.RefreshNow()
	})
	rangeBtn := widget.NewButtonWithIcon("TIME RANGE", theme.HistoryIcon(), board.ShowTimeRangePicker)
	clearBtn := widget.NewButtonWithIcon("CLEAR", theme.DeleteIcon(), board.Clear)
	logsBtn := widget.NewButton("ACTIVITY", func() { ensureLogWindow(a).Show() })

	themeSelect := widget.NewSelect([]string{"Dark", "Light"}, func(s string) {
		mode := "dark"
		if s == "Light" {
			mode = "light"
		}
		curTheme = makeTheme(mode, curTheme.(*appTheme).compact)
		a.Settings().SetTheme(curTheme)
		session.Theme = mode
		saveSession()
	})
	if cfg.UI.Theme == "light" {
		themeSelect.SetSelected("Light")
	} else {
		themeSelect.SetSelected("Dark")
	}
	compactCheck := widget.NewCheck("Compact", func(b bool) {
		curTheme = makeTheme(curTheme.(*appTheme).mode, b)
		a.Settings().SetTheme(curTheme)
		session.Compact = b
		saveSession()
	})
	compactCheck.SetChecked(cfg.UI.Compact)

	controlsCard := widget.NewCard("Watchlist", "", container.NewGridWithColumns(6,
		refreshBtn, rangeBtn, clearBtn, logsBtn, themeSelect, compactCheck))
	boardCard := widget.NewCard("Assets", "", container.NewScroll(board))
	footer := container.NewPadded(statusLbl)

	bg := canvas.NewLinearGradient(color.NRGBA{12, 16, 24, 255}, color.NRGBA{20, 28, 40, 255}, 90)
	w.SetContent(container.NewMax(
		bg,
		container.NewBorder(controlsCard, footer, nil, nil, boardCard),
	))

	go sched.RefreshNow()
	w.ShowAndRun()
}
