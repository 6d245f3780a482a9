// Package watch refreshes a configured watchlist on a cron schedule and
// logs the resulting report.
package watch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"GreenVest/internal/market"
	"GreenVest/internal/render"
)

// Watcher runs periodic watchlist refreshes.
type Watcher struct {
	Cron    *cron.Cron
	Fetcher *market.Fetcher
	Symbols []string
	Ctx     context.Context
}

// NewWatcher creates a Watcher over the given fetcher and symbol list.
func NewWatcher(ctx context.Context, fetcher *market.Fetcher, symbols []string) *Watcher {
	return &Watcher{
		Cron:    cron.New(cron.WithSeconds()),
		Fetcher: fetcher,
		Symbols: symbols,
		Ctx:     ctx,
	}
}

// Register schedules the refresh task.
func (w *Watcher) Register(cronSpec string) error {
	if _, err := w.Cron.AddFunc(cronSpec, w.refresh); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (w *Watcher) Start() {
	w.Cron.Start()
	log.Printf("[INFO] watchlist scheduler started (%d symbols)", len(w.Symbols))
}

// Stop stops the cron scheduler gracefully.
func (w *Watcher) Stop() {
	w.Cron.Stop()
	log.Println("[INFO] watchlist scheduler stopped")
}

// RunNow executes a refresh immediately (for manual trigger).
func (w *Watcher) RunNow() {
	w.refresh()
}

func (w *Watcher) refresh() {
	if len(w.Symbols) == 0 {
		log.Println("[WARN] watchlist is empty, nothing to refresh")
		return
	}
	ctx, cancel := context.WithTimeout(w.Ctx, 2*time.Minute)
	defer cancel()

	results := w.Fetcher.FetchAll(ctx, w.Symbols)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			log.Printf("[WARN] watch refresh %s: %v", r.Symbol, r.Err)
		}
	}
	log.Printf("[INFO] watchlist refreshed: %d symbols, %d failed", len(results), failed)
	fmt.Print(render.FetchReport(results))
}
