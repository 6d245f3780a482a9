package market

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"GreenVest/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
// Quotes maps symbol to a canned quote; Errs maps symbol to a canned failure.
// Symbols in neither map get a synthetic quote at Price.
type MockProvider struct {
	Price   float64
	Quotes  map[string]*model.TickerQuote
	Errs    map[string]error
	History []model.PricePoint
	Delay   time.Duration
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) FetchQuote(ctx context.Context, symbol string) (*model.TickerQuote, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if q, ok := m.Quotes[symbol]; ok {
		return q, nil
	}
	return &model.TickerQuote{
		Symbol: symbol,
		Price:  decimal.NewFromFloat(m.Price),
	}, nil
}

func (m *MockProvider) FetchDailyHistory(_ context.Context, _ string, _, _ time.Time) ([]model.PricePoint, error) {
	if m.History != nil {
		return m.History, nil
	}
	return generateMockHistory(m.Price, 60), nil
}

func generateMockHistory(basePrice float64, count int) []model.PricePoint {
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		points[i] = model.PricePoint{
			Date:  time.Now().UTC().AddDate(0, 0, -(count - i)),
			Open:  p * 0.999,
			High:  p * 1.005,
			Low:   p * 0.995,
			Close: p,
		}
	}
	return points
}
