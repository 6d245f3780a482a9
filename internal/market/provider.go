package market

import (
	"context"
	"errors"
	"time"

	"GreenVest/internal/model"
)

// Failure kinds a provider can report. Callers match with errors.Is; the
// wrapped error carries provider detail.
var (
	// ErrNotFound means the provider does not recognize the symbol.
	ErrNotFound = errors.New("symbol not found")
	// ErrTimeout means the provider did not answer in time.
	ErrTimeout = errors.New("provider timeout")
	// ErrProvider means the provider answered with something unusable.
	ErrProvider = errors.New("provider error")
)

// Provider fetches market data for one symbol per call. Implementations hold
// no shared mutable state and are safe for concurrent use across symbols.
// No retries at this layer; retry policy belongs to the caller.
type Provider interface {
	// FetchQuote returns the current price and ESG sub-scores for symbol.
	// A quote with nil ESG is a success: the provider simply has no
	// sustainability coverage for that symbol.
	FetchQuote(ctx context.Context, symbol string) (*model.TickerQuote, error)

	// FetchDailyHistory returns the daily bars for symbol between from and
	// to inclusive, ordered by date ascending.
	FetchDailyHistory(ctx context.Context, symbol string, from, to time.Time) ([]model.PricePoint, error)

	Name() string
}
