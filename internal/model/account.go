package model

import "github.com/shopspring/decimal"

// Tier is a membership level derived deterministically from the ClimCoin balance.
type Tier string

const (
	TierStarter Tier = "Starter"
	TierBronze  Tier = "Bronze"
	TierSilver  Tier = "Silver"
	TierGold    Tier = "Gold"
)

// Rank orders tiers from Starter (0) to Gold (3). Unknown tiers rank below Starter.
func (t Tier) Rank() int {
	switch t {
	case TierStarter:
		return 0
	case TierBronze:
		return 1
	case TierSilver:
		return 2
	case TierGold:
		return 3
	}
	return -1
}

// Holding is one position in a user's portfolio. Shares never go negative:
// selling more than held clamps at zero.
type Holding struct {
	Symbol string
	Shares int64
}

// Account is a registered user. ClimCoins only ever grows; Tier is always
// the tier implied by the current balance.
type Account struct {
	Username     string
	PasswordHash string
	ClimCoins    decimal.Decimal
	Tier         Tier
}
