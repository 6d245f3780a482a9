// Package ledger owns the ClimCoin balance, tier and share holdings of a
// user and applies trades to them atomically.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"GreenVest/internal/model"
)

// ErrInvalidTrade rejects a malformed request before anything touches the
// store: non-positive quantity, bad symbol, unknown action.
var ErrInvalidTrade = errors.New("invalid trade")

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.^-]{1,10}$`)

// Store is the persistence collaborator the ledger commits through.
// CommitTrade must persist the holding mutation, the balance/tier update
// and the trade record as one transaction: all or nothing.
type Store interface {
	GetAccount(ctx context.Context, username string) (*model.Account, error)
	GetHolding(ctx context.Context, username, symbol string) (int64, error)
	CommitTrade(ctx context.Context, rec model.TradeRecord, newShares int64, newCoins decimal.Decimal, newTier model.Tier) error
}

// Outcome is the post-trade view returned to the caller.
type Outcome struct {
	ClimCoins   decimal.Decimal
	Tier        model.Tier
	Shares      int64
	CoinsEarned decimal.Decimal
}

// Ledger applies trades. EarnOnSell keeps the reference policy of awarding
// ClimCoins on both sides of a trade; set false to award buys only.
type Ledger struct {
	store      Store
	earnOnSell bool
}

// New creates a Ledger over the given store.
func New(store Store, earnOnSell bool) *Ledger {
	return &Ledger{store: store, earnOnSell: earnOnSell}
}

// ApplyTrade validates the request, recomputes ClimCoins from the ESG score
// and traded quantity, derives the new tier and commits everything in one
// atomic unit. An absent ESG score contributes zero points; the trade still
// goes through. ClimCoins never decreases. Once committed, trades are final.
func (l *Ledger) ApplyTrade(ctx context.Context, req model.TradeRequest, price decimal.Decimal, esg *model.ESGScores) (*Outcome, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidTrade, req.Quantity)
	}
	if !symbolPattern.MatchString(req.Symbol) {
		return nil, fmt.Errorf("%w: malformed symbol %q", ErrInvalidTrade, req.Symbol)
	}
	if req.Action != model.ActionBuy && req.Action != model.ActionSell {
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidTrade, req.Action)
	}

	account, err := l.store.GetAccount(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	shares, err := l.store.GetHolding(ctx, req.Username, req.Symbol)
	if err != nil {
		return nil, fmt.Errorf("load holding: %w", err)
	}

	earned := decimal.Zero
	if esg != nil && (req.Action == model.ActionBuy || l.earnOnSell) {
		earned = esg.Total.Mul(decimal.NewFromInt(req.Quantity))
	}

	newShares := shares
	switch req.Action {
	case model.ActionBuy:
		newShares += req.Quantity
	case model.ActionSell:
		newShares -= req.Quantity
		if newShares < 0 {
			newShares = 0 // selling more than held clamps, never rejects
		}
	}

	newCoins := account.ClimCoins.Add(earned)
	newTier := TierOf(newCoins)

	rec := model.TradeRecord{
		ID:          uuid.NewString(),
		Username:    req.Username,
		Symbol:      req.Symbol,
		Action:      req.Action,
		Quantity:    req.Quantity,
		Price:       price,
		CoinsEarned: earned,
		ExecutedAt:  time.Now().UTC(),
	}
	if err := l.store.CommitTrade(ctx, rec, newShares, newCoins, newTier); err != nil {
		// Not committed: prior ledger state is untouched.
		return nil, fmt.Errorf("commit trade: %w", err)
	}

	return &Outcome{
		ClimCoins:   newCoins,
		Tier:        newTier,
		Shares:      newShares,
		CoinsEarned: earned,
	}, nil
}
