package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/presstab/coinboard/internal/config"
	"github.com/presstab/coinboard/internal/feed"
	"github.com/presstab/coinboard/internal/logger"
	"github.com/presstab/coinboard/internal/pricedb"
)

// coinboardcli runs one collect pass and dumps the stored quote table.
// Useful for cron jobs and for checking the feed without the GUI.
func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "configs/config.yaml", "config file path")
	offline := flag.Bool("offline", false, "skip fetching, print stored quotes only")
	flag.Parse()

	zlog, err := logger.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer zlog.Sync()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		zlog.Fatal("load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		zlog.Fatal("config validation", zap.Error(err))
	}

	store, err := pricedb.OpenSQLite(cfg.Database.SQLitePath, zlog)
	if err != nil {
		zlog.Fatal("open store", zap.Error(err))
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if !*offline {
		var fetcher feed.Fetcher
		if cfg.Chainlink.RPCURL != "" && len(cfg.Chainlink.Feeds) > 0 {
			cf, err := feed.NewChainlinkFetcher(cfg.Chainlink.RPCURL, cfg.Chainlink.Feeds)
			if err != nil {
				zlog.Fatal("chainlink source", zap.Error(err))
			}
			defer cf.Close()
			fetcher = cf
		} else {
			fetcher = feed.NewBinanceFetcher(cfg.DataSource.BaseURL, cfg.DataSource.Proxy)
		}

		names := make(map[string]string, len(cfg.Assets))
		for _, a := range cfg.Assets {
			names[a.Symbol] = a.Name
		}
		col := feed.NewCollector(fetcher, store, cfg.Symbols(), names, zlog)
		if err := col.Collect(ctx); err != nil {
			zlog.Fatal("collect", zap.Error(err))
		}
	}

	quotes, err := store.Quotes(ctx)
	if err != nil {
		zlog.Fatal("read quotes", zap.Error(err))
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tNAME\tPRICE\t24H%\tUPDATED")
	for _, q := range quotes {
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%+.2f\t%s\n",
			q.Symbol, q.Name, q.Price, q.Change24h, q.UpdatedAt.Format("15:04:05"))
	}
	tw.Flush()
}
