package main

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/presstab/coinboard/internal/pricedb"
)

// showHistoryDialog summarizes the stored samples for symbol over the trailing
// day window and shows them in a modal.
func showHistoryDialog(a fyne.App, w fyne.Window, db pricedb.Database, symbol string, days int) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		points, err := db.History(ctx, symbol, days)
		if err != nil {
			dialog.ShowError(fmt.Errorf("history for %s: %w", symbol, err), w)
			return
		}
		if len(points) == 0 {
			dialog.ShowInformation(symbol, fmt.Sprintf("No samples recorded in the last %d days yet.", days), w)
			return
		}
		first, last := points[0], points[len(points)-1]
		lo, hi := first.Price, first.Price
		for _, p := range points {
			if p.Price < lo {
				lo = p.Price
			}
			if p.Price > hi {
				hi = p.Price
			}
		}
		var changePct float64
		if first.Price != 0 {
			changePct = (last.Price - first.Price) / first.Price * 100
		}
		msg := fmt.Sprintf(
			"Samples: %d\nFirst: %.2f (%s)\nLast: %.2f (%s)\nLow: %.2f · High: %.2f\nChange: %+.2f%%",
			len(points),
			first.Price, first.Time.Format("Jan 02 15:04"),
			last.Price, last.Time.Format("Jan 02 15:04"),
			lo, hi, changePct)
		dialog.ShowInformation(fmt.Sprintf("%s — last %d days", symbol, days), msg, w)
		appendLogLine(a, fmt.Sprintf("history viewed: %s over %dd", symbol, days))
	}()
}
