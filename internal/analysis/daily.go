// ABOUTME: Daily aggregation and Pearson correlation math.
// ABOUTME: Each domain collapses to one value per calendar day before alignment.
package analysis

import (
	"math"
	"sort"

	"github.com/glucolog/glucolog/internal/models"
)

// dailySeries maps a YYYY-MM-DD date to one aggregated value.
type dailySeries map[string]float64

// glucoseDaily aggregates readings to per-day mean, max, and min.
func glucoseDaily(readings []*models.GlucoseReading) (mean, max, min dailySeries) {
	type acc struct {
		sum, max, min float64
		count         int
	}
	byDay := make(map[string]*acc)

	for _, g := range readings {
		day := g.Timestamp.Format(models.DateLayout)
		a, ok := byDay[day]
		if !ok {
			a = &acc{max: g.Value, min: g.Value}
			byDay[day] = a
		}
		a.sum += g.Value
		a.count++
		if g.Value > a.max {
			a.max = g.Value
		}
		if g.Value < a.min {
			a.min = g.Value
		}
	}

	mean = make(dailySeries, len(byDay))
	max = make(dailySeries, len(byDay))
	min = make(dailySeries, len(byDay))
	for day, a := range byDay {
		mean[day] = a.sum / float64(a.count)
		max[day] = a.max
		min[day] = a.min
	}
	return mean, max, min
}

// exerciseDaily aggregates sessions to total minutes per day.
func exerciseDaily(records []*models.ExerciseRecord) dailySeries {
	total := make(dailySeries)
	for _, e := range records {
		day := e.StartedAt.Format(models.DateLayout)
		total[day] += e.DurationMinutes
	}
	return total
}

// sleepDaily aggregates records to total minutes and mean efficiency per day,
// attributed to the record's date (the calendar date of bedtime).
func sleepDaily(records []*models.SleepRecord) (minutes, efficiency dailySeries) {
	minutes = make(dailySeries)
	effSum := make(dailySeries)
	effCount := make(map[string]int)

	for _, s := range records {
		minutes[s.Date] += s.DurationMinutes
		effSum[s.Date] += s.Efficiency
		effCount[s.Date]++
	}

	efficiency = make(dailySeries, len(effSum))
	for day, sum := range effSum {
		efficiency[day] = sum / float64(effCount[day])
	}
	return minutes, efficiency
}

// alignDays inner-joins two daily series on shared dates, returning the
// aligned vectors in ascending date order.
func alignDays(x, y dailySeries) (xs, ys []float64) {
	var days []string
	for day := range x {
		if _, ok := y[day]; ok {
			days = append(days, day)
		}
	}
	sort.Strings(days)

	xs = make([]float64, len(days))
	ys = make([]float64, len(days))
	for i, day := range days {
		xs[i] = x[day]
		ys[i] = y[day]
	}
	return xs, ys
}

// pearson computes the Pearson correlation coefficient of two equal-length
// vectors. ok is false when either side has zero variance, in which case
// there is no linear signal to measure.
func pearson(xs, ys []float64) (r float64, ok bool) {
	n := float64(len(xs))
	if n == 0 {
		return 0, false
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0, false
	}

	r = cov / math.Sqrt(varX*varY)
	// Clamp rounding spill past the mathematical bounds.
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, true
}

// meanStdDev returns the mean and population standard deviation.
func meanStdDev(values []float64) (mean, stddev float64) {
	n := float64(len(values))
	if n == 0 {
		return 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / n

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / n)
}
