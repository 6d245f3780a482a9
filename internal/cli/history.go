package cli

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"GreenVest/internal/render"
	"GreenVest/internal/trend"
)

var (
	historyFrom string
	historyTo   string
)

var historyCmd = &cobra.Command{
	Use:   "history SYMBOL",
	Short: "Analyze historical prices and forecast the short-term trend",
	Long: `Fetch daily history for a symbol, compute short/long moving
averages and crossover signals, fit a polynomial trend and project a
business-day forecast. With too little history the raw analysis is shown
and the forecast is skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyFrom, "from", "", "start date (YYYY-MM-DD), default 1 year ago")
	historyCmd.Flags().StringVar(&historyTo, "to", "", "end date (YYYY-MM-DD), default today")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	symbol := strings.ToUpper(strings.TrimSpace(args[0]))

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	to := time.Now().UTC()
	from := to.AddDate(-1, 0, 0)
	if historyFrom != "" {
		if from, err = time.Parse("2006-01-02", historyFrom); err != nil {
			return fmt.Errorf("bad --from date: %w", err)
		}
	}
	if historyTo != "" {
		if to, err = time.Parse("2006-01-02", historyTo); err != nil {
			return fmt.Errorf("bad --to date: %w", err)
		}
	}

	series, err := a.provider.FetchDailyHistory(cmd.Context(), symbol, from, to)
	if err != nil {
		return fmt.Errorf("fetch history for %s: %w", symbol, err)
	}
	if len(series) == 0 {
		return fmt.Errorf("no history for %s in the requested range", symbol)
	}

	closes := trend.Closes(series)
	shortMA, err := trend.MovingAverage(closes, a.cfg.Trend.ShortWindow)
	if err != nil {
		return err
	}
	longMA, err := trend.MovingAverage(closes, a.cfg.Trend.LongWindow)
	if err != nil {
		return err
	}

	cross, err := trend.DetectCross(shortMA, longMA)
	if err != nil {
		if !errors.Is(err, trend.ErrInsufficientData) {
			return err
		}
		log.Printf("[WARN] not enough history for crossover detection on %s", symbol)
		cross = trend.CrossNone
	}

	fitted, err := trend.FitTrend(series, a.cfg.Trend.Degree)
	if err != nil {
		if !errors.Is(err, trend.ErrInsufficientData) {
			return err
		}
		// Degrade gracefully: raw history without a forecast.
		log.Printf("[WARN] not enough history to fit a trend on %s: %v", symbol, err)
		fmt.Printf("Analysis of %s\n", symbol)
		fmt.Printf("%d data points between %s and %s; too few for a forecast.\n",
			len(series), series[0].Date.Format("2006-01-02"),
			series[len(series)-1].Date.Format("2006-01-02"))
		return nil
	}

	forecast := trend.Forecast(fitted, series[len(series)-1].Date, a.cfg.Trend.ForecastDays)
	summary := trend.Summarize(series, fitted)
	fmt.Print(render.TrendReport(symbol, summary, cross, forecast))
	return nil
}
