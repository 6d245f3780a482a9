package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"GreenVest/internal/render"
)

var quotesCmd = &cobra.Command{
	Use:   "quotes SYMBOL...",
	Short: "Fetch current prices and ESG scores for a basket of tickers",
	Long: `Fetch current prices and ESG scores for the given tickers.
Symbols the provider cannot resolve show as N/A rows; a partial failure
never hides the successful ones.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuotes,
}

func init() {
	rootCmd.AddCommand(quotesCmd)
}

func runQuotes(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	symbols := make([]string, len(args))
	for i, s := range args {
		symbols[i] = strings.ToUpper(strings.TrimSpace(s))
	}

	results := a.fetcher.FetchAll(cmd.Context(), symbols)
	fmt.Println("\nESG Scores and Stock Prices")
	fmt.Print(render.FetchReport(results))
	return nil
}
