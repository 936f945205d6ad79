package forecast

import (
	"errors"
	"time"
)

// TimestampLayout is the fixed UTC layout of forecast timestamps (dt_txt).
const TimestampLayout = "2006-01-02 15:04:05"

// KelvinOffset converts Kelvin to Celsius.
const KelvinOffset = 273.15

// ErrMalformedInput is returned when a forecast document lacks a required field,
// has no points or is out of order. No partial recommendation is produced for it.
var ErrMalformedInput = errors.New("malformed forecast input")

// Coordinate is a geographic position used only to localize timestamps.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Point is one forecast sample. Optional volumes and wind are zero when absent.
type Point struct {
	Time        time.Time `json:"time"` // always UTC
	TempKelvin  float64   `json:"tempKelvin"`
	Humidity    int       `json:"humidity"`
	Description string    `json:"description"` // lower-cased
	Rain3h      float64   `json:"rain3h"`
	Snow3h      float64   `json:"snow3h"`
	WindSpeed   float64   `json:"windSpeed"`
}

// TempC returns the point temperature in Celsius.
func (p Point) TempC() float64 {
	return p.TempKelvin - KelvinOffset
}

// Series is an ordered, non-empty sequence of forecast points.
// Entries are expected to be ordered by Time ascending.
type Series []Point

// Head returns at most the first n points of the series.
func (s Series) Head(n int) Series {
	if n < 0 {
		n = 0
	}
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}

// Forecast is a decoded forecast document.
type Forecast struct {
	City   string `json:"city,omitempty"`
	Series Series `json:"series"`
}
