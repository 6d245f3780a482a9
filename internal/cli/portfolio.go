package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"GreenVest/internal/render"
	"GreenVest/internal/store"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio USERNAME",
	Short: "Show a user's holdings, ClimCoins and membership tier",
	Args:  cobra.ExactArgs(1),
	RunE:  runPortfolio,
}

func init() {
	rootCmd.AddCommand(portfolioCmd)
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	account, err := a.store.GetAccount(ctx, args[0])
	if err != nil {
		if errors.Is(err, store.ErrUnknownUser) {
			return fmt.Errorf("no account for %q", args[0])
		}
		return err
	}
	holdings, err := a.store.LoadHoldings(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Print(render.Portfolio(account, holdings))
	return nil
}
