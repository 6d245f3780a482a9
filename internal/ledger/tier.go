package ledger

import (
	"github.com/shopspring/decimal"

	"GreenVest/internal/model"
)

// Tier thresholds, inclusive at the lower bound:
// Starter [0,100), Bronze [100,500), Silver [500,1000), Gold [1000,∞).
var (
	bronzeAt = decimal.NewFromInt(100)
	silverAt = decimal.NewFromInt(500)
	goldAt   = decimal.NewFromInt(1000)
)

// TierOf maps a ClimCoin balance to its membership tier. Pure and total;
// monotonic non-decreasing in its argument.
func TierOf(coins decimal.Decimal) model.Tier {
	switch {
	case coins.GreaterThanOrEqual(goldAt):
		return model.TierGold
	case coins.GreaterThanOrEqual(silverAt):
		return model.TierSilver
	case coins.GreaterThanOrEqual(bronzeAt):
		return model.TierBronze
	}
	return model.TierStarter
}
