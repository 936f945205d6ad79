package wash

import (
	"fmt"
	"strings"
	"time"

	"github.com/i474232898/wash-advisor/internal/forecast"
	"github.com/i474232898/wash-advisor/internal/timezone"
)

// Recommendation is the engine output; the caller renders Narrative verbatim.
type Recommendation struct {
	Verdict   Verdict `json:"verdict"`
	Narrative string  `json:"narrative"`
	Mode      Mode    `json:"seasonMode"`
	Branch    Branch  `json:"branch"`
	Facts     Facts   `json:"facts"`
}

// Composer ties aggregation, season selection, window detection and rendering together.
// It holds no per-call state and is safe for concurrent use.
type Composer struct {
	settings  Settings
	converter *timezone.Converter
	collapser Collapser
	detector  *Detector
	renderer  Renderer
}

// Option configures a Composer.
type Option func(*Composer)

// WithSettings overrides the default engine settings.
func WithSettings(s Settings) Option {
	return func(c *Composer) { c.settings = s }
}

// WithRenderer replaces the Russian narrative renderer.
func WithRenderer(r Renderer) Option {
	return func(c *Composer) { c.renderer = r }
}

// NewComposer builds a Composer that localizes times with conv.
func NewComposer(conv *timezone.Converter, opts ...Option) *Composer {
	c := &Composer{
		settings:  DefaultSettings(),
		converter: conv,
		renderer:  RussianRenderer{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.settings = c.settings.withDefaults()
	c.collapser = NewCollapser(c.settings.MergeGap, conv.Formatter())
	c.detector = NewDetector(c.settings, conv)
	return c
}

// Collapser exposes the interval collapser configured for this engine.
func (c *Composer) Collapser() Collapser {
	return c.collapser
}

// Decide runs the decision tree without rendering text. month is the caller's notion
// of the current month; the engine never reads the wall clock.
func (c *Composer) Decide(series forecast.Series, coord forecast.Coordinate, month time.Month) (Decision, error) {
	if len(series) == 0 {
		return Decision{}, fmt.Errorf("%w: forecast series is empty", forecast.ErrMalformedInput)
	}
	if month < time.January || month > time.December {
		return Decision{}, fmt.Errorf("invalid month %d", int(month))
	}

	e := &evaluation{c: c, series: series, coord: coord, month: month}
	if err := e.selectSeason(); err != nil {
		return Decision{}, err
	}

	var err error
	if e.decision.Mode == ModeWinter {
		err = e.evaluateWinter()
	} else {
		err = e.evaluateStandard()
	}
	if err != nil {
		return Decision{}, err
	}
	return e.decision, nil
}

// Compose decides and renders a Recommendation.
func (c *Composer) Compose(series forecast.Series, coord forecast.Coordinate, month time.Month) (Recommendation, error) {
	d, err := c.Decide(series, coord, month)
	if err != nil {
		return Recommendation{}, err
	}
	if !CanTransition(d.Stage, StageComposed) {
		return Recommendation{}, fmt.Errorf("%w: %s -> %s", ErrStage, d.Stage, StageComposed)
	}

	return Recommendation{
		Verdict:   d.Verdict,
		Narrative: c.renderer.Render(d),
		Mode:      d.Mode,
		Branch:    d.Branch,
		Facts:     d.Facts,
	}, nil
}

// ParseVerdict classifies a stored verdict or a rendered Russian narrative.
func ParseVerdict(text string) Verdict {
	t := strings.ToLower(strings.TrimSpace(text))
	switch {
	case t == string(VerdictWash) || strings.Contains(t, "можно мыть"):
		return VerdictWash
	case t == string(VerdictPostpone) || strings.Contains(t, "отложить"):
		return VerdictPostpone
	default:
		return VerdictUnknown
	}
}
