// Package cli is the command surface. It parses input, calls the core
// operations and prints through render; no business logic lives here.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"GreenVest/internal/auth"
	"GreenVest/internal/config"
	"GreenVest/internal/ledger"
	"GreenVest/internal/market"
	"GreenVest/internal/store"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "greenvest",
	Short: "Track equity holdings and earn ClimCoins for sustainable investing",
	Long: `GreenVest tracks an investor's equity holdings and rewards
sustainability-weighted trading with ClimCoins, a loyalty score that
promotes the user through Starter, Bronze, Silver and Gold tiers.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default configs/config.yaml)")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// app bundles the wired components every command needs.
type app struct {
	cfg      *config.Config
	store    *store.Store
	auth     *auth.Service
	provider market.Provider
	fetcher  *market.Fetcher
	ledger   *ledger.Ledger
}

func openApp() (*app, error) {
	path := cfgPath
	if path == "" {
		path = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	st, err := store.Open(cfg.Database.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	provider := market.NewYahooProvider(cfg.Market.Proxy, time.Duration(cfg.Market.TimeoutSeconds)*time.Second)
	return &app{
		cfg:      cfg,
		store:    st,
		auth:     auth.NewService(st),
		provider: provider,
		fetcher:  market.NewFetcher(provider, cfg.Fetch.MaxConcurrency),
		ledger:   ledger.New(st, *cfg.Ledger.EarnOnSell),
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close store: %v\n", err)
	}
}

var stdin = bufio.NewReader(os.Stdin)

func prompt(label string) string {
	fmt.Print(label)
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}
