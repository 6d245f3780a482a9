package trend

import (
	"fmt"
	"math"
	"time"

	"GreenVest/internal/model"
)

// Model is a fitted polynomial of close price against elapsed time. Time is
// expressed in days since the series start rather than raw epoch seconds,
// which keeps the higher powers well inside float64 precision.
type Model struct {
	coeffs []float64 // coeffs[i] multiplies t^i
	start  time.Time
}

// FitTrend fits a least-squares polynomial of the given degree to the close
// prices of series. Fewer than degree+1 points → ErrInsufficientData.
func FitTrend(series []model.PricePoint, degree int) (*Model, error) {
	if degree < 1 {
		return nil, fmt.Errorf("degree must be at least 1, got %d", degree)
	}
	if len(series) < degree+1 {
		return nil, fmt.Errorf("%w: need %d points for degree %d, have %d",
			ErrInsufficientData, degree+1, degree, len(series))
	}

	start := series[0].Date
	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	for i, p := range series {
		xs[i] = elapsedDays(start, p.Date)
		ys[i] = p.Close
	}

	coeffs, err := polyfit(xs, ys, degree)
	if err != nil {
		return nil, err
	}
	return &Model{coeffs: coeffs, start: start}, nil
}

// Predict evaluates the fitted curve at the given date.
func (m *Model) Predict(date time.Time) float64 {
	return m.at(elapsedDays(m.start, date))
}

func (m *Model) at(t float64) float64 {
	// Horner evaluation.
	v := 0.0
	for i := len(m.coeffs) - 1; i >= 0; i-- {
		v = v*t + m.coeffs[i]
	}
	return v
}

// Slope is the linear coefficient: its sign is reported as the overall
// trend direction in human-readable summaries, nothing more.
func (m *Model) Slope() float64 { return m.coeffs[1] }

// Intercept is the constant term of the fitted curve.
func (m *Model) Intercept() float64 { return m.coeffs[0] }

// Leading is the highest-degree coefficient.
func (m *Model) Leading() float64 { return m.coeffs[len(m.coeffs)-1] }

func elapsedDays(start, date time.Time) float64 {
	return date.Sub(start).Hours() / 24
}

// polyfit solves the normal equations of the least-squares problem with
// Gaussian elimination and partial pivoting.
func polyfit(xs, ys []float64, degree int) ([]float64, error) {
	n := degree + 1

	// a is the augmented matrix [X'X | X'y].
	a := make([][]float64, n)
	for j := range a {
		a[j] = make([]float64, n+1)
	}
	for i, x := range xs {
		pow := make([]float64, 2*n-1)
		pow[0] = 1
		for k := 1; k < len(pow); k++ {
			pow[k] = pow[k-1] * x
		}
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				a[j][k] += pow[j+k]
			}
			a[j][n] += pow[j] * ys[i]
		}
	}

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, fmt.Errorf("%w: degenerate series", ErrInsufficientData)
		}
		a[col], a[pivot] = a[pivot], a[col]
		for row := col + 1; row < n; row++ {
			f := a[row][col] / a[col][col]
			for k := col; k <= n; k++ {
				a[row][k] -= f * a[col][k]
			}
		}
	}

	coeffs := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		v := a[row][n]
		for k := row + 1; k < n; k++ {
			v -= a[row][k] * coeffs[k]
		}
		coeffs[row] = v / a[row][row]
	}
	return coeffs, nil
}
