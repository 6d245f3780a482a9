package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"GreenVest/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func record(username, symbol string, action model.TradeAction, qty int64, earned float64) model.TradeRecord {
	return model.TradeRecord{
		ID:          uuid.NewString(),
		Username:    username,
		Symbol:      symbol,
		Action:      action,
		Quantity:    qty,
		Price:       decimal.NewFromInt(100),
		CoinsEarned: decimal.NewFromFloat(earned),
		ExecutedAt:  time.Now().UTC(),
	}
}

func TestCreateAndGetAccount(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.CreateAccount(ctx, "ana", "hash"); err != nil {
		t.Fatal(err)
	}
	account, err := s.GetAccount(ctx, "ana")
	if err != nil {
		t.Fatal(err)
	}
	if account.Username != "ana" || account.PasswordHash != "hash" {
		t.Errorf("unexpected account: %+v", account)
	}
	if !account.ClimCoins.IsZero() {
		t.Errorf("fresh account should have zero coins, got %s", account.ClimCoins)
	}
	if account.Tier != model.TierStarter {
		t.Errorf("fresh account should be Starter, got %s", account.Tier)
	}
}

func TestCreateAccount_Duplicate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.CreateAccount(ctx, "ana", "hash"); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateAccount(ctx, "ana", "other"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestGetAccount_Unknown(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetAccount(context.Background(), "nobody"); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestCommitTrade_PersistsAllThree(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.CreateAccount(ctx, "ana", "hash"); err != nil {
		t.Fatal(err)
	}

	coins := decimal.NewFromFloat(510.5)
	rec := record("ana", "AAPL", model.ActionBuy, 10, 60)
	if err := s.CommitTrade(ctx, rec, 10, coins, model.TierSilver); err != nil {
		t.Fatal(err)
	}

	account, err := s.GetAccount(ctx, "ana")
	if err != nil {
		t.Fatal(err)
	}
	if !account.ClimCoins.Equal(coins) {
		t.Errorf("expected %s coins, got %s", coins, account.ClimCoins)
	}
	if account.Tier != model.TierSilver {
		t.Errorf("expected Silver, got %s", account.Tier)
	}

	shares, err := s.GetHolding(ctx, "ana", "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if shares != 10 {
		t.Errorf("expected 10 shares, got %d", shares)
	}

	holdings, err := s.LoadHoldings(ctx, "ana")
	if err != nil {
		t.Fatal(err)
	}
	if len(holdings) != 1 || holdings[0].Symbol != "AAPL" || holdings[0].Shares != 10 {
		t.Errorf("unexpected holdings: %+v", holdings)
	}
}

func TestCommitTrade_UpsertsExistingHolding(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.CreateAccount(ctx, "ana", "hash"); err != nil {
		t.Fatal(err)
	}

	if err := s.CommitTrade(ctx, record("ana", "AAPL", model.ActionBuy, 10, 0), 10, decimal.Zero, model.TierStarter); err != nil {
		t.Fatal(err)
	}
	if err := s.CommitTrade(ctx, record("ana", "AAPL", model.ActionSell, 4, 0), 6, decimal.Zero, model.TierStarter); err != nil {
		t.Fatal(err)
	}

	shares, err := s.GetHolding(ctx, "ana", "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if shares != 6 {
		t.Errorf("expected 6 shares after upsert, got %d", shares)
	}
}

func TestCommitTrade_UnknownUserRollsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := record("ghost", "AAPL", model.ActionBuy, 1, 5)
	if err := s.CommitTrade(ctx, rec, 1, decimal.NewFromInt(5), model.TierStarter); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}

	// The rolled back transaction must not have left a holding behind.
	shares, err := s.GetHolding(ctx, "ghost", "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if shares != 0 {
		t.Errorf("rollback leaked a holding of %d shares", shares)
	}
}

func TestGetHolding_NeverHeldIsZero(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.CreateAccount(ctx, "ana", "hash"); err != nil {
		t.Fatal(err)
	}
	shares, err := s.GetHolding(ctx, "ana", "TSLA")
	if err != nil {
		t.Fatal(err)
	}
	if shares != 0 {
		t.Errorf("expected 0 shares for never-held symbol, got %d", shares)
	}
}
