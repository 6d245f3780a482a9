package cli

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"GreenVest/internal/ledger"
	"GreenVest/internal/market"
	"GreenVest/internal/model"
	"GreenVest/internal/render"
)

var tradeCmd = &cobra.Command{
	Use:   "trade USERNAME SYMBOL buy|sell QUANTITY",
	Short: "Buy or sell shares and earn ClimCoins",
	Long: `Apply a trade to the user's portfolio. The current price and ESG
score are fetched first; ClimCoins earned are the ticker's total ESG score
times the traded quantity. Unscored tickers trade fine and earn nothing.`,
	Args: cobra.ExactArgs(4),
	RunE: runTrade,
}

func init() {
	rootCmd.AddCommand(tradeCmd)
}

func runTrade(cmd *cobra.Command, args []string) error {
	username := args[0]
	symbol := strings.ToUpper(strings.TrimSpace(args[1]))
	action := model.TradeAction(strings.ToLower(args[2]))
	quantity, err := strconv.ParseInt(args[3], 10, 64)
	if err != nil {
		return fmt.Errorf("quantity must be an integer: %q", args[3])
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	password := prompt("Password: ")
	ok, err := a.auth.Verify(ctx, username, password)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("invalid username or password")
	}

	quote, err := a.provider.FetchQuote(ctx, symbol)
	if err != nil {
		if errors.Is(err, market.ErrNotFound) {
			return fmt.Errorf("symbol %s is not recognized by the provider", symbol)
		}
		return fmt.Errorf("fetch quote for %s: %w", symbol, err)
	}
	if quote.ESG == nil {
		log.Printf("[WARN] no ESG coverage for %s, trade earns no ClimCoins", symbol)
	}

	req := model.TradeRequest{Username: username, Symbol: symbol, Action: action, Quantity: quantity}
	out, err := a.ledger.ApplyTrade(ctx, req, quote.Price, quote.ESG)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidTrade) {
			return fmt.Errorf("trade rejected: %w", err)
		}
		// Infrastructure failure: the trade was attempted but not saved.
		return fmt.Errorf("trade not saved: %w", err)
	}

	fmt.Print(render.TradeOutcome(req, out))
	return nil
}
