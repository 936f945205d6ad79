package wash

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/i474232898/wash-advisor/internal/forecast"
)

// Stats are the series-wide aggregates used by both seasonal branches.
type Stats struct {
	Points       int     `json:"points"`
	TempAvgC     float64 `json:"tempAvgC"`
	HumidityAvg  float64 `json:"humidityAvg"`
	WeightedRain float64 `json:"weightedRain"`
}

// RecencyWeights returns n weights exp(-DecayRate*i/(n-1)) normalized to sum to 1.
// A single point gets the whole weight.
func RecencyWeights(n int) []float64 {
	if n <= 0 {
		return nil
	}
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = math.Exp(-DecayRate * float64(i) / float64(n-1))
	}
	floats.Scale(1/floats.Sum(w), w)
	return w
}

// Aggregate computes plain means over every point and the recency-weighted rain volume.
func Aggregate(series forecast.Series) Stats {
	n := len(series)
	if n == 0 {
		return Stats{}
	}

	temps := make([]float64, n)
	humidity := make([]float64, n)
	rain := make([]float64, n)
	for i, p := range series {
		temps[i] = p.TempC()
		humidity[i] = float64(p.Humidity)
		rain[i] = p.Rain3h
	}

	return Stats{
		Points:       n,
		TempAvgC:     stat.Mean(temps, nil),
		HumidityAvg:  stat.Mean(humidity, nil),
		WeightedRain: floats.Dot(rain, RecencyWeights(n)),
	}
}
