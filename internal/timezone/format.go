package timezone

import (
	"fmt"
	"time"

	"github.com/goodsign/monday"
)

const (
	// StampLayout is the "day abbreviated-month HH:MM" presentation layout.
	StampLayout = "02 Jan 15:04"
	// ClockLayout is used for the closing end of a collapsed range.
	ClockLayout = "15:04"
)

// Formatter renders local times for presentation. Locale-aware naming lives here so the
// engine never hard-codes a language.
type Formatter interface {
	Stamp(t time.Time) string
	Clock(t time.Time) string
}

// LayoutFormatter formats with the standard library (English month names).
type LayoutFormatter struct{}

func (LayoutFormatter) Stamp(t time.Time) string { return t.Format(StampLayout) }
func (LayoutFormatter) Clock(t time.Time) string { return t.Format(ClockLayout) }

// LocaleFormatter formats month names in the configured locale.
type LocaleFormatter struct {
	Locale monday.Locale
}

// NewLocaleFormatter returns a formatter for a short language code ("ru", "en").
func NewLocaleFormatter(lang string) (LocaleFormatter, error) {
	switch lang {
	case "ru", "ru_RU":
		return LocaleFormatter{Locale: monday.LocaleRuRU}, nil
	case "en", "en_US":
		return LocaleFormatter{Locale: monday.LocaleEnUS}, nil
	default:
		return LocaleFormatter{}, fmt.Errorf("unsupported locale %q", lang)
	}
}

func (f LocaleFormatter) Stamp(t time.Time) string {
	return monday.Format(t, StampLayout, f.Locale)
}

func (f LocaleFormatter) Clock(t time.Time) string {
	return t.Format(ClockLayout)
}
