// Package render formats fetch reports, portfolios and trend summaries as
// plain text. No computation happens here: it takes structured data from
// the core and produces strings.
package render

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"GreenVest/internal/ledger"
	"GreenVest/internal/market"
	"GreenVest/internal/model"
	"GreenVest/internal/trend"
)

// FetchReport renders the concurrent fetch results as a table, one row per
// requested symbol in request order. Failed symbols and absent ESG scores
// show as N/A.
func FetchReport(results []market.Result) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TICKER\tPRICE\tTOTAL ESG\tENV\tSOCIAL\tGOV")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%s\tN/A\tN/A\tN/A\tN/A\tN/A\n", r.Symbol)
			continue
		}
		price := "$" + r.Quote.Price.StringFixed(2)
		if r.Quote.ESG == nil {
			fmt.Fprintf(w, "%s\t%s\tN/A\tN/A\tN/A\tN/A\n", r.Symbol, price)
			continue
		}
		esg := r.Quote.ESG
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Symbol, price,
			esg.Total.StringFixed(2),
			esg.Environment.StringFixed(2),
			esg.Social.StringFixed(2),
			esg.Governance.StringFixed(2))
	}
	w.Flush()
	return b.String()
}

// Portfolio renders the holdings and loyalty status of an account.
func Portfolio(account *model.Account, holdings []model.Holding) string {
	var b strings.Builder
	b.WriteString("Current Portfolio\n")
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TICKER\tSHARES")
	for _, h := range holdings {
		fmt.Fprintf(w, "%s\t%d\n", h.Symbol, h.Shares)
	}
	w.Flush()
	fmt.Fprintf(&b, "\nClimCoins: %s\n", account.ClimCoins.StringFixed(2))
	fmt.Fprintf(&b, "Membership Tier: %s\n", account.Tier)
	return b.String()
}

// TradeOutcome renders the post-trade view.
func TradeOutcome(req model.TradeRequest, out *ledger.Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Trade applied: %s %d %s\n", req.Action, req.Quantity, req.Symbol)
	fmt.Fprintf(&b, "ClimCoins earned: %s\n", out.CoinsEarned.StringFixed(2))
	fmt.Fprintf(&b, "ClimCoins balance: %s\n", out.ClimCoins.StringFixed(2))
	fmt.Fprintf(&b, "Membership Tier: %s\n", out.Tier)
	fmt.Fprintf(&b, "Shares of %s held: %d\n", req.Symbol, out.Shares)
	return b.String()
}

// TrendReport renders the analysis of one symbol: series highlights, the
// crossover signal and the forecast when one is available.
func TrendReport(symbol string, summary trend.Summary, cross trend.Cross, forecast []trend.ForecastPoint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analysis of %s\n", symbol)
	fmt.Fprintf(&b, "Highest Price: $%.2f\n", summary.Highest)
	fmt.Fprintf(&b, "Lowest Price: $%.2f\n", summary.Lowest)
	fmt.Fprintf(&b, "Recent Trend: %s\n", summary.Recent)

	switch cross {
	case trend.CrossGolden:
		b.WriteString("Golden Cross detected: a potential bullish signal.\n")
	case trend.CrossDeath:
		b.WriteString("Death Cross detected: a potential bearish signal.\n")
	default:
		b.WriteString("No significant cross detected between moving averages.\n")
	}

	fmt.Fprintf(&b, "Fitted trend: %s (slope %.4f, intercept %.2f)\n",
		summary.Direction, summary.Slope, summary.Intercept)

	if len(forecast) > 0 {
		fmt.Fprintf(&b, "\nPredicted prices for the next %d business days:\n", len(forecast))
		w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tPREDICTED CLOSE")
		for _, p := range forecast {
			fmt.Fprintf(w, "%s\t$%.2f\n", p.Date.Format("2006-01-02"), p.Close)
		}
		w.Flush()
	}
	return b.String()
}
