package cli

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"GreenVest/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [SYMBOL...]",
	Short: "Refresh a watchlist on a schedule until interrupted",
	Long: `Run the watchlist refresher: on the configured cron schedule the
given symbols (or watch.symbols from the config) are fetched and the
report is printed. Stops on Ctrl+C.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	symbols := args
	if len(symbols) == 0 {
		symbols = a.cfg.Watch.Symbols
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	w := watch.NewWatcher(ctx, a.fetcher, symbols)
	if err := w.Register(a.cfg.Watch.Cron); err != nil {
		return err
	}
	w.Start()
	defer w.Stop()

	// First refresh right away so the schedule is not a silent wait.
	go w.RunNow()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	return nil
}
