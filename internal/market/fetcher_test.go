package market

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"GreenVest/internal/model"
)

// countingProvider records how many fetches run at once.
type countingProvider struct {
	mu      sync.Mutex
	active  int32
	maxSeen int32
	delay   time.Duration
	errs    map[string]error
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) FetchQuote(_ context.Context, symbol string) (*model.TickerQuote, error) {
	n := atomic.AddInt32(&p.active, 1)
	defer atomic.AddInt32(&p.active, -1)
	p.mu.Lock()
	if n > p.maxSeen {
		p.maxSeen = n
	}
	p.mu.Unlock()
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	if err, ok := p.errs[symbol]; ok {
		return nil, err
	}
	return &model.TickerQuote{Symbol: symbol, Price: decimal.NewFromInt(100)}, nil
}

func (p *countingProvider) FetchDailyHistory(_ context.Context, _ string, _, _ time.Time) ([]model.PricePoint, error) {
	return nil, nil
}

func TestFetchAll_PreservesInputOrder(t *testing.T) {
	// Staggered delays so completion order differs from input order.
	provider := &MockProvider{Price: 50, Delay: 5 * time.Millisecond}
	f := NewFetcher(provider, 3)

	symbols := []string{"MSFT", "AAPL", "TSLA", "NVDA", "GOOGL"}
	results := f.FetchAll(context.Background(), symbols)

	if len(results) != len(symbols) {
		t.Fatalf("expected %d results, got %d", len(symbols), len(results))
	}
	for i, r := range results {
		if r.Symbol != symbols[i] {
			t.Errorf("position %d: expected %s, got %s", i, symbols[i], r.Symbol)
		}
		if r.Err != nil {
			t.Errorf("%s: unexpected error: %v", r.Symbol, r.Err)
		}
	}
}

func TestFetchAll_PartialFailure(t *testing.T) {
	provider := &countingProvider{errs: map[string]error{
		"BAD1": ErrNotFound,
		"BAD2": ErrNotFound,
	}}
	f := NewFetcher(provider, 2)

	symbols := []string{"AAPL", "BAD1", "MSFT", "BAD2", "TSLA"}
	results := f.FetchAll(context.Background(), symbols)

	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	var quotes, failures int
	for i, r := range results {
		if r.Symbol != symbols[i] {
			t.Errorf("position %d: expected %s, got %s", i, symbols[i], r.Symbol)
		}
		if r.Err != nil {
			failures++
			if !errors.Is(r.Err, ErrNotFound) {
				t.Errorf("%s: expected ErrNotFound, got %v", r.Symbol, r.Err)
			}
		} else {
			quotes++
		}
	}
	if quotes != 3 || failures != 2 {
		t.Errorf("expected 3 quotes and 2 failures, got %d and %d", quotes, failures)
	}
}

func TestFetchAll_DeduplicatesAndReplicates(t *testing.T) {
	var calls int32
	provider := &MockProvider{Price: 42}
	f := NewFetcher(countingWrapper{provider, &calls}, 4)

	symbols := []string{"AAPL", "MSFT", "AAPL", "AAPL", "MSFT"}
	results := f.FetchAll(context.Background(), symbols)

	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("expected 2 provider calls for 2 distinct symbols, got %d", n)
	}
	for i, r := range results {
		if r.Symbol != symbols[i] {
			t.Errorf("position %d: expected %s, got %s", i, symbols[i], r.Symbol)
		}
	}
	// Replicated positions carry the same underlying quote.
	if results[0].Quote != results[2].Quote || results[2].Quote != results[3].Quote {
		t.Error("duplicate positions should share the single fetched quote")
	}
}

func TestFetchAll_EmptyInput(t *testing.T) {
	f := NewFetcher(&MockProvider{Price: 10}, 2)
	results := f.FetchAll(context.Background(), nil)
	if len(results) != 0 {
		t.Fatalf("expected empty result, got %d entries", len(results))
	}
}

func TestFetchAll_BoundedConcurrency(t *testing.T) {
	provider := &countingProvider{delay: 20 * time.Millisecond}
	f := NewFetcher(provider, 3)

	symbols := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	f.FetchAll(context.Background(), symbols)

	provider.mu.Lock()
	maxSeen := provider.maxSeen
	provider.mu.Unlock()
	if maxSeen > 3 {
		t.Errorf("concurrency cap exceeded: saw %d parallel fetches, cap 3", maxSeen)
	}
	if maxSeen < 2 {
		t.Errorf("expected some parallelism under the cap, saw %d", maxSeen)
	}
}

// countingWrapper counts FetchQuote invocations on the wrapped provider.
type countingWrapper struct {
	Provider
	calls *int32
}

func (w countingWrapper) FetchQuote(ctx context.Context, symbol string) (*model.TickerQuote, error) {
	atomic.AddInt32(w.calls, 1)
	return w.Provider.FetchQuote(ctx, symbol)
}
