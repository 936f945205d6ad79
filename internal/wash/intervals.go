package wash

import (
	"fmt"
	"time"

	"github.com/i474232898/wash-advisor/internal/timezone"
)

// Collapser merges ordered local timestamps into compact ranges such as
// "10 Jan 09:00 - 15:00".
type Collapser struct {
	Gap       time.Duration
	Formatter timezone.Formatter
}

// NewCollapser returns a Collapser; non-positive gap selects DefaultStep.
func NewCollapser(gap time.Duration, f timezone.Formatter) Collapser {
	if gap <= 0 {
		gap = DefaultStep
	}
	if f == nil {
		f = timezone.LayoutFormatter{}
	}
	return Collapser{Gap: gap, Formatter: f}
}

// Collapse walks times in order. A timestamp within Gap of the previous one extends the
// open run; anything further closes it.
func (c Collapser) Collapse(times []time.Time) []string {
	out := make([]string, 0)
	if len(times) == 0 {
		return out
	}

	start, prev := times[0], times[0]
	for _, t := range times[1:] {
		if t.Sub(prev) <= c.Gap {
			prev = t
			continue
		}
		out = append(out, c.label(start, prev))
		start, prev = t, t
	}
	return append(out, c.label(start, prev))
}

// CollapseLabels collapses already formatted "02 Jan 15:04" labels.
func (c Collapser) CollapseLabels(labels []string) ([]string, error) {
	times := make([]time.Time, 0, len(labels))
	for _, l := range labels {
		t, err := time.Parse(timezone.StampLayout, l)
		if err != nil {
			return nil, fmt.Errorf("invalid local time %q: %w", l, err)
		}
		times = append(times, t)
	}
	return c.Collapse(times), nil
}

func (c Collapser) label(start, end time.Time) string {
	f := c.Formatter
	if f == nil {
		f = timezone.LayoutFormatter{}
	}
	if start.Equal(end) {
		return f.Stamp(start)
	}
	return f.Stamp(start) + " - " + f.Clock(end)
}
