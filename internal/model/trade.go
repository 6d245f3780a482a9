package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeAction is the side of a trade.
type TradeAction string

const (
	ActionBuy  TradeAction = "buy"
	ActionSell TradeAction = "sell"
)

// TradeRequest describes one requested buy or sell. It is transient: only
// its effect on the account and holdings is persisted, plus a TradeRecord.
type TradeRequest struct {
	Username string
	Symbol   string
	Action   TradeAction
	Quantity int64
}

// TradeRecord is the durable shape of an executed trade.
type TradeRecord struct {
	ID          string
	Username    string
	Symbol      string
	Action      TradeAction
	Quantity    int64
	Price       decimal.Decimal
	CoinsEarned decimal.Decimal
	ExecutedAt  time.Time
}
