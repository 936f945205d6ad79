package wash

import (
	"time"

	"github.com/i474232898/wash-advisor/internal/common"
)

// DefaultStep is the native forecast cadence. It is also the default gap below which
// neighbouring timestamps merge into one range.
const DefaultStep = 3 * time.Hour

const (
	// NearTermPoints is the 24h look-ahead used for "rain in the coming hours".
	NearTermPoints = 8
	// WinterHorizonPoints is the 48h horizon scanned for wash windows.
	WinterHorizonPoints = 16

	// DecayRate shapes the recency weights exp(-DecayRate*i/(n-1)).
	DecayRate = 3.0

	RainThreshold    = 0.35
	HumidityLimit    = 80.0
	NearFreezingLow  = -2.0
	NearFreezingHigh = 2.0

	// WinterTempThreshold switches on road-salt mode regardless of month.
	WinterTempThreshold = 5.0
	// LowTempCaveat is the current temperature under which washed cars need drying.
	LowTempCaveat = 5.0
	// RoadSaltNote applies to the standard postpone narrative.
	RoadSaltNote = 10.0
	// WindCaveat is the current wind speed (m/s) worth mentioning on a wash day.
	WindCaveat = 6.0

	// Wash-safety bounds for winter windows.
	SafeTempLow      = -20.0
	SafeTempHigh     = 5.0
	SafeSnowMM       = 0.1
	FreezingRiskTemp = 3.0
	SafeWindMS       = 7.0

	// Hazard warning thresholds.
	SnowWarningMM = 1.0
	WindWarningMS = 7.0
)

// MinWindowDuration is the shortest run reported as a wash window.
const MinWindowDuration = 6 * time.Hour

// Vocabulary holds the tokens that classify free-text weather descriptions.
// Descriptions come from the provider in Russian; English tokens cover lang=en feeds.
type Vocabulary struct {
	Rain  []string
	Snow  []string
	Sleet []string
}

// DefaultVocabulary matches OpenWeather descriptions in Russian and English.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Rain:  []string{"дождь", "ливень", "морось", "rain", "drizzle"},
		Snow:  []string{"снег", "снегопад", "snow"},
		Sleet: []string{"мокрый снег", "ледяной дождь", "sleet"},
	}
}

func (v Vocabulary) IsRain(desc string) bool { return common.HasAny(desc, v.Rain...) }
func (v Vocabulary) IsSnow(desc string) bool { return common.HasAny(desc, v.Snow...) }

// IsPrecipitation reports rain, snow or sleet.
func (v Vocabulary) IsPrecipitation(desc string) bool {
	return v.IsRain(desc) || v.IsSnow(desc) || common.HasAny(desc, v.Sleet...)
}

// Settings tune the engine. The zero value is not usable; start from DefaultSettings.
type Settings struct {
	// Step is the duration each forecast point contributes to a window.
	Step time.Duration
	// MergeGap is the largest gap between timestamps collapsed into one range.
	MergeGap   time.Duration
	Vocabulary Vocabulary
}

// DefaultSettings match a 3-hour forecast feed.
func DefaultSettings() Settings {
	return Settings{
		Step:       DefaultStep,
		MergeGap:   DefaultStep,
		Vocabulary: DefaultVocabulary(),
	}
}

func (s Settings) withDefaults() Settings {
	if s.Step <= 0 {
		s.Step = DefaultStep
	}
	if s.MergeGap <= 0 {
		s.MergeGap = s.Step
	}
	if len(s.Vocabulary.Rain) == 0 && len(s.Vocabulary.Snow) == 0 && len(s.Vocabulary.Sleet) == 0 {
		s.Vocabulary = DefaultVocabulary()
	}
	return s
}
