package indicator

import "math"

// Shared numeric building blocks. All of them propagate NaN: a value is
// NaN until the input window is fully warmed up, and a NaN input resets
// the recurrence so it reseeds over the next full window of finite
// values. Flags derived from NaN comparisons resolve to neutral.

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// emaSeries computes an exponential moving average with smoothing factor
// 2/(window+1), seeded with the simple average of the first full window
// of finite values.
func emaSeries(values []float64, window int) []float64 {
	n := len(values)
	out := nanSlice(n)
	if window < 1 || n == 0 {
		return out
	}

	alpha := 2.0 / float64(window+1)
	prev := math.NaN()
	run := 0
	sum := 0.0

	for i, v := range values {
		if !finite(v) {
			prev = math.NaN()
			run = 0
			sum = 0
			continue
		}
		if finite(prev) {
			prev = alpha*v + (1-alpha)*prev
			out[i] = prev
			continue
		}
		run++
		sum += v
		if run == window {
			prev = sum / float64(window)
			out[i] = prev
			run = 0
			sum = 0
		}
	}
	return out
}

// smaSeries computes a simple moving average; a window containing any
// NaN yields NaN.
func smaSeries(values []float64, window int) []float64 {
	n := len(values)
	out := nanSlice(n)
	if window < 1 || n < window {
		return out
	}
	for i := window - 1; i < n; i++ {
		sum := 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if !finite(values[j]) {
				ok = false
				break
			}
			sum += values[j]
		}
		if ok {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// wilderRSI computes Wilder's RSI over close prices. The first bar's
// change counts as zero, so the averages seed at index period-1 and the
// first period-1 values are NaN.
func wilderRSI(closes []float64, period int) []float64 {
	n := len(closes)
	out := nanSlice(n)
	if period < 2 || n < period {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i < period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period-1] = rsiFromAverages(avgGain, avgLoss)

	for i := period; i < n; i++ {
		change := closes[i] - closes[i-1]
		var gain, loss float64
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiFromAverages(avgGain, avgLoss)
	}
	return out
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - (100.0 / (1.0 + rs))
}

// crossesUp reports a bar where a moves from below b to above/equal b.
// Any NaN among the four values means no crossover.
func crossesUp(a, b []float64, i int) bool {
	if i < 1 {
		return false
	}
	if !finite(a[i-1], b[i-1], a[i], b[i]) {
		return false
	}
	return a[i-1] < b[i-1] && a[i] >= b[i]
}

// crossesDown reports a bar where a moves from above b to below/equal b
func crossesDown(a, b []float64, i int) bool {
	if i < 1 {
		return false
	}
	if !finite(a[i-1], b[i-1], a[i], b[i]) {
		return false
	}
	return a[i-1] > b[i-1] && a[i] <= b[i]
}
