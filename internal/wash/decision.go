package wash

import (
	"errors"
	"fmt"
	"time"

	"github.com/i474232898/wash-advisor/internal/forecast"
)

// Verdict is the engine's answer.
type Verdict string

const (
	VerdictWash     Verdict = "wash"
	VerdictPostpone Verdict = "postpone"
	VerdictUnknown  Verdict = "unknown"
)

// Mode is the seasonal decision mode.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeWinter   Mode = "winter"
)

// Branch names the leaf of the decision tree that produced a verdict.
type Branch string

const (
	BranchWinterPrecipitation Branch = "winter_precipitation"
	BranchWinterWindow        Branch = "winter_window"
	BranchWinterNoWindow      Branch = "winter_no_window"
	BranchStandardRain        Branch = "standard_rain"
	BranchStandardWash        Branch = "standard_wash"
	BranchStandardPostpone    Branch = "standard_postpone"
)

// Reason is a failed condition of the standard wash gate.
type Reason string

const (
	ReasonRainProbability Reason = "high_rain_probability"
	ReasonHumidity        Reason = "high_humidity"
	ReasonNearFreezing    Reason = "near_freezing"
)

// Stage is a step of the evaluation.
type Stage int

const (
	StageNotEvaluated Stage = iota
	StageSeasonSelected
	StageStandardEvaluated
	StageWinterEvaluated
	StageComposed
)

func (s Stage) String() string {
	switch s {
	case StageNotEvaluated:
		return "not_evaluated"
	case StageSeasonSelected:
		return "season_selected"
	case StageStandardEvaluated:
		return "standard_evaluated"
	case StageWinterEvaluated:
		return "winter_evaluated"
	case StageComposed:
		return "composed"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// ErrStage is returned for an out-of-order evaluation step.
var ErrStage = errors.New("invalid evaluation stage transition")

var transitions = map[Stage][]Stage{
	StageNotEvaluated:      {StageSeasonSelected},
	StageSeasonSelected:    {StageStandardEvaluated, StageWinterEvaluated},
	StageStandardEvaluated: {StageComposed},
	StageWinterEvaluated:   {StageComposed},
}

// CanTransition reports whether the evaluation may move from one stage to another.
func CanTransition(from, to Stage) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Facts are everything the narrative may mention. Fields irrelevant to the chosen branch
// stay at their zero value.
type Facts struct {
	Stats            Stats        `json:"stats"`
	CurrentTempC     float64      `json:"currentTempC"`
	CurrentCondition string       `json:"currentCondition"`
	CurrentWindMS    float64      `json:"currentWindMs"`
	SnowTotalMM      float64      `json:"snowTotalMm"`
	Intervals        []string     `json:"intervals"`
	Warnings         []Warning    `json:"warnings"`
	Windows          []TimeWindow `json:"windows,omitempty"`
	BestWindow       *TimeWindow  `json:"bestWindow,omitempty"`
	Reasons          []Reason     `json:"reasons,omitempty"`
	SeasonGlyph      string       `json:"seasonGlyph"`
}

// Decision is the verdict plus collected facts, before any text is rendered.
type Decision struct {
	Verdict Verdict `json:"verdict"`
	Mode    Mode    `json:"seasonMode"`
	Branch  Branch  `json:"branch"`
	Stage   Stage   `json:"-"`
	Facts   Facts   `json:"facts"`
}

// evaluation carries one Decide call through its stages.
type evaluation struct {
	c      *Composer
	series forecast.Series
	coord  forecast.Coordinate
	month  time.Month

	stage    Stage
	decision Decision
}

func (e *evaluation) advance(to Stage) error {
	if !CanTransition(e.stage, to) {
		return fmt.Errorf("%w: %s -> %s", ErrStage, e.stage, to)
	}
	e.stage = to
	e.decision.Stage = to
	return nil
}

func (e *evaluation) selectSeason() error {
	first := e.series[0]
	f := &e.decision.Facts

	f.Stats = Aggregate(e.series)
	f.CurrentTempC = first.TempC()
	f.CurrentCondition = first.Description
	f.CurrentWindMS = first.WindSpeed
	f.SeasonGlyph = SeasonEmoji(e.coord.Lat, e.month)
	f.Intervals = []string{}
	f.Warnings = []Warning{}

	e.decision.Mode = ModeStandard
	if IsWinter(f.CurrentTempC, e.month) {
		e.decision.Mode = ModeWinter
	}
	return e.advance(StageSeasonSelected)
}

func (e *evaluation) evaluateWinter() error {
	vocab := e.c.settings.Vocabulary
	f := &e.decision.Facts

	warnings, windows := e.c.detector.Find(e.series, e.coord, f.CurrentTempC)
	f.Warnings = warnings
	f.SnowTotalMM = SnowTotal(e.series.Head(WinterHorizonPoints))

	switch {
	case anyMatch(e.series.Head(NearTermPoints), vocab.IsPrecipitation):
		e.decision.Verdict = VerdictPostpone
		e.decision.Branch = BranchWinterPrecipitation
		f.Intervals = e.intervals(vocab.IsPrecipitation)
	case len(windows) > 0:
		best, _ := BestWindow(windows)
		e.decision.Verdict = VerdictWash
		e.decision.Branch = BranchWinterWindow
		f.Windows = windows
		f.BestWindow = &best
	default:
		e.decision.Verdict = VerdictPostpone
		e.decision.Branch = BranchWinterNoWindow
	}
	return e.advance(StageWinterEvaluated)
}

func (e *evaluation) evaluateStandard() error {
	vocab := e.c.settings.Vocabulary
	f := &e.decision.Facts

	if anyMatch(e.series.Head(NearTermPoints), vocab.IsRain) {
		e.decision.Verdict = VerdictPostpone
		e.decision.Branch = BranchStandardRain
		f.Intervals = e.intervals(vocab.IsRain)
		return e.advance(StageStandardEvaluated)
	}

	if f.Stats.WeightedRain > RainThreshold {
		f.Reasons = append(f.Reasons, ReasonRainProbability)
	}
	if f.Stats.HumidityAvg >= HumidityLimit {
		f.Reasons = append(f.Reasons, ReasonHumidity)
	}
	// Water refreezes on the body near zero, whatever the sky does.
	if NearFreezingLow < f.Stats.TempAvgC && f.Stats.TempAvgC < NearFreezingHigh {
		f.Reasons = append(f.Reasons, ReasonNearFreezing)
	}

	if len(f.Reasons) == 0 {
		e.decision.Verdict = VerdictWash
		e.decision.Branch = BranchStandardWash
	} else {
		e.decision.Verdict = VerdictPostpone
		e.decision.Branch = BranchStandardPostpone
		f.Intervals = e.intervals(vocab.IsRain)
	}
	return e.advance(StageStandardEvaluated)
}

// intervals collapses the local times of every matching point in the whole series.
// Without a timezone the list degrades to the converter's fallback text.
func (e *evaluation) intervals(match func(string) bool) []string {
	var times []time.Time
	for _, p := range e.series {
		if match(p.Description) {
			times = append(times, p.Time)
		}
	}
	if len(times) == 0 {
		return []string{}
	}

	loc, ok := e.c.converter.Location(e.coord)
	if !ok {
		return []string{e.c.converter.Fallback()}
	}
	for i := range times {
		times[i] = times[i].In(loc)
	}
	return e.c.collapser.Collapse(times)
}

func anyMatch(series forecast.Series, match func(string) bool) bool {
	for _, p := range series {
		if match(p.Description) {
			return true
		}
	}
	return false
}
