package trend

import "math"

// Cross is a moving average crossover signal.
type Cross string

const (
	// CrossNone means no crossover between the last two observations.
	CrossNone Cross = "none"
	// CrossGolden means the short average crossed above the long one,
	// a potential bullish signal.
	CrossGolden Cross = "golden"
	// CrossDeath means the short average crossed below the long one,
	// a potential bearish signal.
	CrossDeath Cross = "death"
)

// DetectCross compares the two most recent positions where both averages
// are defined. A golden cross is short moving from below to above long
// between the penultimate and latest point; a death cross is the mirror
// condition. Fewer than 2 such positions → ErrInsufficientData.
func DetectCross(shortMA, longMA []float64) (Cross, error) {
	n := len(shortMA)
	if len(longMA) < n {
		n = len(longMA)
	}

	// Walk back for the last two indices defined in both series.
	last, prev := -1, -1
	for i := n - 1; i >= 0; i-- {
		if math.IsNaN(shortMA[i]) || math.IsNaN(longMA[i]) {
			continue
		}
		if last < 0 {
			last = i
		} else {
			prev = i
			break
		}
	}
	if prev < 0 {
		return CrossNone, ErrInsufficientData
	}

	switch {
	case shortMA[prev] < longMA[prev] && shortMA[last] > longMA[last]:
		return CrossGolden, nil
	case shortMA[prev] > longMA[prev] && shortMA[last] < longMA[last]:
		return CrossDeath, nil
	}
	return CrossNone, nil
}
