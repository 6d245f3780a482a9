package trend

import (
	"time"

	"GreenVest/internal/model"
)

// ForecastPoint is one predicted future close.
type ForecastPoint struct {
	Date  time.Time
	Close float64
}

// Forecast extrapolates the fitted curve over the next horizon business
// days after lastDate. Saturdays and Sundays are skipped; market holidays
// are not modeled.
func Forecast(m *Model, lastDate time.Time, horizon int) []ForecastPoint {
	points := make([]ForecastPoint, 0, horizon)
	d := lastDate
	for len(points) < horizon {
		d = d.AddDate(0, 0, 1)
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		points = append(points, ForecastPoint{Date: d, Close: m.Predict(d)})
	}
	return points
}

// Summary holds the human-readable highlights of a series and its fit.
type Summary struct {
	Highest   float64
	Lowest    float64
	Recent    string // "uptrend" or "downtrend" of the last few closes
	Direction string // direction implied by the fitted slope sign
	Slope     float64
	Intercept float64
}

// Summarize computes the report-level view of a series against its fitted
// model. Recent trend compares the latest close with the close five points
// back, matching what a reader eyeballs on a chart.
func Summarize(series []model.PricePoint, m *Model) Summary {
	s := Summary{Slope: m.Slope(), Intercept: m.Intercept()}
	if len(series) == 0 {
		return s
	}
	s.Highest = series[0].Close
	s.Lowest = series[0].Close
	for _, p := range series {
		if p.Close > s.Highest {
			s.Highest = p.Close
		}
		if p.Close < s.Lowest {
			s.Lowest = p.Close
		}
	}

	back := len(series) - 5
	if back < 0 {
		back = 0
	}
	if series[len(series)-1].Close > series[back].Close {
		s.Recent = "uptrend"
	} else {
		s.Recent = "downtrend"
	}

	if m.Slope() > 0 {
		s.Direction = "upward"
	} else {
		s.Direction = "downward"
	}
	return s
}
