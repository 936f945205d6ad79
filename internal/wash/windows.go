package wash

import (
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/i474232898/wash-advisor/internal/forecast"
	"github.com/i474232898/wash-advisor/internal/timezone"
)

// TimeWindow is a contiguous run of wash-safe forecast points.
type TimeWindow struct {
	Start         string    `json:"start"`
	StartTime     time.Time `json:"startTime"`
	DurationHours int       `json:"durationHours"`
	TempMinC      float64   `json:"tempMinC"`
	TempMaxC      float64   `json:"tempMaxC"`
}

// WarningKind identifies a winter hazard.
type WarningKind string

const (
	WarnSnowAccumulation WarningKind = "snow_accumulation"
	WarnHighWind         WarningKind = "high_wind"
	WarnRoadSalt         WarningKind = "road_salt"
)

// Warning is a hazard fact; Value carries millimetres, m/s or °C depending on Kind.
type Warning struct {
	Kind  WarningKind `json:"kind"`
	Value float64     `json:"value"`
}

// Detector searches the winter horizon for wash windows.
type Detector struct {
	settings  Settings
	converter *timezone.Converter
}

// NewDetector creates a Detector that localizes window starts with conv.
func NewDetector(settings Settings, conv *timezone.Converter) *Detector {
	return &Detector{settings: settings.withDefaults(), converter: conv}
}

// Find scans the first WinterHorizonPoints of series and returns hazard warnings and
// every safe run of at least MinWindowDuration, in chronological order.
func (d *Detector) Find(series forecast.Series, coord forecast.Coordinate, currentTempC float64) ([]Warning, []TimeWindow) {
	horizon := series.Head(WinterHorizonPoints)

	windows := make([]TimeWindow, 0)
	var run forecast.Series
	flush := func() {
		if time.Duration(len(run))*d.settings.Step >= MinWindowDuration {
			windows = append(windows, d.window(run, coord))
		}
		run = nil
	}

	for _, p := range horizon {
		if d.Safe(p) {
			run = append(run, p)
			continue
		}
		flush()
	}
	flush()

	return d.warnings(horizon, currentTempC), windows
}

// Safe reports whether a single point allows washing in winter mode.
func (d *Detector) Safe(p forecast.Point) bool {
	t := p.TempC()
	vocab := d.settings.Vocabulary

	if t <= SafeTempLow || t >= SafeTempHigh {
		return false
	}
	if p.Snow3h >= SafeSnowMM {
		return false
	}
	if vocab.IsRain(p.Description) || vocab.IsSnow(p.Description) {
		return false
	}
	if d.freezingRisk(p) {
		return false
	}
	return p.WindSpeed < SafeWindMS
}

// freezingRisk is precipitation close to zero: the black-ice condition.
func (d *Detector) freezingRisk(p forecast.Point) bool {
	t := p.TempC()
	return t < FreezingRiskTemp && t > SafeTempLow && d.settings.Vocabulary.IsPrecipitation(p.Description)
}

func (d *Detector) window(run forecast.Series, coord forecast.Coordinate) TimeWindow {
	temps := make([]float64, len(run))
	for i, p := range run {
		temps[i] = p.TempC()
	}

	start := run[0].Time
	if local, ok := d.converter.Localize(start, coord); ok {
		start = local
	}

	return TimeWindow{
		Start:         d.converter.Format(run[0].Time, coord),
		StartTime:     start,
		DurationHours: int((time.Duration(len(run)) * d.settings.Step).Hours()),
		TempMinC:      floats.Min(temps),
		TempMaxC:      floats.Max(temps),
	}
}

func (d *Detector) warnings(horizon forecast.Series, currentTempC float64) []Warning {
	out := make([]Warning, 0, 3)

	if snow := SnowTotal(horizon); snow > SnowWarningMM {
		out = append(out, Warning{Kind: WarnSnowAccumulation, Value: snow})
	}

	var peak float64
	for _, p := range horizon.Head(NearTermPoints) {
		if p.WindSpeed > peak {
			peak = p.WindSpeed
		}
	}
	if peak > WindWarningMS {
		out = append(out, Warning{Kind: WarnHighWind, Value: peak})
	}

	if currentTempC < WinterTempThreshold {
		out = append(out, Warning{Kind: WarnRoadSalt, Value: currentTempC})
	}
	return out
}

// SnowTotal sums snow volume over the series.
func SnowTotal(series forecast.Series) float64 {
	var total float64
	for _, p := range series {
		total += p.Snow3h
	}
	return total
}

// BestWindow returns the longest window; the earliest one wins ties.
func BestWindow(windows []TimeWindow) (TimeWindow, bool) {
	if len(windows) == 0 {
		return TimeWindow{}, false
	}
	best := windows[0]
	for _, w := range windows[1:] {
		if w.DurationHours > best.DurationHours {
			best = w
		}
	}
	return best, true
}
