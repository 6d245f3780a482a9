package market

import (
	"context"
	"sync"

	"GreenVest/internal/model"
)

// DefaultMaxConcurrency caps parallel provider calls when no cap is configured.
const DefaultMaxConcurrency = 5

// Result pairs one requested symbol with its quote or its failure. Exactly
// one of Quote and Err is set.
type Result struct {
	Symbol string
	Quote  *model.TickerQuote
	Err    error
}

// Fetcher fans out Provider calls across a ticker set with bounded
// concurrency. One symbol's failure never cancels or degrades the others;
// partial success is a normal outcome.
type Fetcher struct {
	Provider       Provider
	MaxConcurrency int
}

// NewFetcher creates a Fetcher with the given concurrency cap.
func NewFetcher(provider Provider, maxConcurrency int) *Fetcher {
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency
	}
	return &Fetcher{Provider: provider, MaxConcurrency: maxConcurrency}
}

// FetchAll fetches every symbol and returns one Result per input position,
// in input order regardless of completion order. Duplicate symbols are
// fetched once and the single result is replicated at every position they
// occupied. It returns only when every symbol has a quote or a recorded
// failure; a cancelled context surfaces as a per-symbol failure, never as a
// silent drop.
func (f *Fetcher) FetchAll(ctx context.Context, symbols []string) []Result {
	if len(symbols) == 0 {
		return []Result{}
	}

	// De-duplicate while preserving first-occurrence order.
	distinct := make([]string, 0, len(symbols))
	index := make(map[string]int, len(symbols))
	for _, s := range symbols {
		if _, seen := index[s]; !seen {
			index[s] = len(distinct)
			distinct = append(distinct, s)
		}
	}

	// Workers write into pre-sized slots indexed by distinct position, so
	// output order never depends on completion order.
	slots := make([]Result, len(distinct))
	sem := make(chan struct{}, f.MaxConcurrency)
	var wg sync.WaitGroup
	for i, symbol := range distinct {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			quote, err := f.Provider.FetchQuote(ctx, symbol)
			slots[i] = Result{Symbol: symbol, Quote: quote, Err: err}
		}(i, symbol)
	}
	wg.Wait()

	out := make([]Result, len(symbols))
	for i, s := range symbols {
		out[i] = slots[index[s]]
	}
	return out
}
