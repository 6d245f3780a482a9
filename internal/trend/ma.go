// Package trend derives moving averages, crossover signals and a short
// horizon price forecast from an ordered historical price series. Every
// function is pure: same series in, same numbers out.
package trend

import (
	"errors"
	"math"

	"GreenVest/internal/model"
)

// ErrInsufficientData means the series is too short for the requested
// computation. Callers degrade gracefully, e.g. report raw history only.
var ErrInsufficientData = errors.New("not enough data points")

// Default analysis parameters.
const (
	DefaultShortWindow  = 20
	DefaultLongWindow   = 50
	DefaultForecastDays = 10
	DefaultDegree       = 3
)

// Closes extracts the close prices of a series.
func Closes(series []model.PricePoint) []float64 {
	closes := make([]float64, len(series))
	for i, p := range series {
		closes[i] = p.Close
	}
	return closes
}

// MovingAverage computes the trailing simple moving average of prices over
// the given window. Positions before a full window has accumulated are NaN;
// the mean is never taken over fewer than window points.
func MovingAverage(prices []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	out := make([]float64, len(prices))
	sum := 0.0
	for i, p := range prices {
		sum += p
		if i >= window {
			sum -= prices[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}
