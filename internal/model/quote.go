package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ESGScores holds the sustainability sub-scores a provider reports for a ticker.
type ESGScores struct {
	Total       decimal.Decimal
	Environment decimal.Decimal
	Social      decimal.Decimal
	Governance  decimal.Decimal
}

// TickerQuote is the per-symbol result of a market data fetch.
// ESG is nil when the provider has no sustainability coverage for the
// symbol; it is never substituted with zeros.
type TickerQuote struct {
	Symbol string
	Price  decimal.Decimal
	ESG    *ESGScores
}

// PricePoint is a single daily bar of a historical price series.
// Series are ordered strictly increasing by date with no duplicates.
type PricePoint struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}
