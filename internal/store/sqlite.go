// Package store persists accounts, holdings and trade records in SQLite.
// A single Store handle is opened at startup and injected into the ledger
// and auth layers; writes are serialized through one mutex since the design
// assumes a single interactive session per user.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"GreenVest/internal/model"
)

var (
	// ErrUnknownUser means no account exists for the username.
	ErrUnknownUser = errors.New("unknown user")
	// ErrUserExists means the username is already registered.
	ErrUserExists = errors.New("username already exists")
)

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the database at path and runs migrations.
// Use ":memory:" for an ephemeral store in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection: the design is single-writer-per-user, and a pooled
	// ":memory:" database would otherwise be a different DB per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] store opened: %s", path)
	return s, nil
}

func (s *Store) migrate() error {
	// ClimCoin balances and money amounts are stored as TEXT decimals to
	// avoid float drift across read/write cycles.
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			username      TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			climcoins     TEXT NOT NULL DEFAULT '0',
			tier          TEXT NOT NULL DEFAULT 'Starter'
		)`,

		`CREATE TABLE IF NOT EXISTS holdings (
			username TEXT NOT NULL REFERENCES accounts(username),
			symbol   TEXT NOT NULL,
			shares   INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (username, symbol)
		)`,

		`CREATE TABLE IF NOT EXISTS trades (
			id           TEXT PRIMARY KEY,
			username     TEXT NOT NULL REFERENCES accounts(username),
			symbol       TEXT NOT NULL,
			action       TEXT NOT NULL,
			quantity     INTEGER NOT NULL,
			price        TEXT NOT NULL,
			coins_earned TEXT NOT NULL,
			executed_at  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_user ON trades(username, executed_at)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// CreateAccount inserts a fresh account with zero ClimCoins at Starter tier.
func (s *Store) CreateAccount(ctx context.Context, username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (username, password_hash, climcoins, tier) VALUES (?, ?, '0', ?)`,
		username, passwordHash, string(model.TierStarter))
	if err != nil {
		// The primary key is the uniqueness guarantee.
		if isConstraintErr(err) {
			return ErrUserExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetAccount loads one account by username.
func (s *Store) GetAccount(ctx context.Context, username string) (*model.Account, error) {
	var (
		account model.Account
		coins   string
		tier    string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT username, password_hash, climcoins, tier FROM accounts WHERE username = ?`,
		username).Scan(&account.Username, &account.PasswordHash, &coins, &tier)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, fmt.Errorf("select account: %w", err)
	}
	account.ClimCoins, err = decimal.NewFromString(coins)
	if err != nil {
		return nil, fmt.Errorf("parse climcoins %q: %w", coins, err)
	}
	account.Tier = model.Tier(tier)
	return &account, nil
}

// GetHolding returns the share count for one symbol, zero if never held.
func (s *Store) GetHolding(ctx context.Context, username, symbol string) (int64, error) {
	var shares int64
	err := s.db.QueryRowContext(ctx,
		`SELECT shares FROM holdings WHERE username = ? AND symbol = ?`,
		username, symbol).Scan(&shares)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("select holding: %w", err)
	}
	return shares, nil
}

// LoadHoldings returns every holding of a user, ordered by symbol.
func (s *Store) LoadHoldings(ctx context.Context, username string) ([]model.Holding, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT symbol, shares FROM holdings WHERE username = ? ORDER BY symbol`, username)
	if err != nil {
		return nil, fmt.Errorf("select holdings: %w", err)
	}
	defer rows.Close()

	var holdings []model.Holding
	for rows.Next() {
		var h model.Holding
		if err := rows.Scan(&h.Symbol, &h.Shares); err != nil {
			return nil, fmt.Errorf("scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// CommitTrade persists the holding mutation, the new balance/tier and the
// trade record in one transaction. No partial ledger state is ever visible:
// on any failure the transaction rolls back and the account is unchanged.
func (s *Store) CommitTrade(ctx context.Context, rec model.TradeRecord, newShares int64, newCoins decimal.Decimal, newTier model.Tier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE accounts SET climcoins = ?, tier = ? WHERE username = ?`,
		newCoins.String(), string(newTier), rec.Username)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUnknownUser
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO holdings (username, symbol, shares) VALUES (?, ?, ?)
		 ON CONFLICT(username, symbol) DO UPDATE SET shares = excluded.shares`,
		rec.Username, rec.Symbol, newShares); err != nil {
		return fmt.Errorf("upsert holding: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO trades (id, username, symbol, action, quantity, price, coins_earned, executed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Username, rec.Symbol, string(rec.Action), rec.Quantity,
		rec.Price.String(), rec.CoinsEarned.String(), rec.ExecutedAt.Unix()); err != nil {
		return fmt.Errorf("insert trade: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	log.Println("[INFO] closing store")
	return s.db.Close()
}

func isConstraintErr(err error) bool {
	// modernc.org/sqlite reports constraint violations in the error text;
	// it does not export a typed error for them.
	return err != nil && strings.Contains(err.Error(), "constraint")
}
