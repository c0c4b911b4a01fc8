// Package chartdoc builds the chart-description document served by the chart
// service: a fixed daily series and the Plotly figure that plots it.
package chartdoc

import (
	"math/rand"
	"time"
)

// DailyRange returns every calendar day from start to end inclusive, at
// midnight UTC. An end before start yields nil.
func DailyRange(start, end time.Time) []time.Time {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return nil
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NormalSeries draws n values from N(mean, stddev) using a generator seeded
// freshly on every call, so equal arguments always give equal values.
func NormalSeries(seed int64, n int, mean, stddev float64) []float64 {
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	values := make([]float64, n)
	for i := range values {
		values[i] = mean + stddev*rng.NormFloat64()
	}
	return values
}

// Series pairs each date with its value.
type Series struct {
	Dates  []time.Time
	Values []float64
}

// DailySeries returns one normal draw per day between start and end.
func DailySeries(seed int64, start, end time.Time, mean, stddev float64) Series {
	dates := DailyRange(start, end)
	return Series{
		Dates:  dates,
		Values: NormalSeries(seed, len(dates), mean, stddev),
	}
}
