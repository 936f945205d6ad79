package wash

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/i474232898/wash-advisor/internal/forecast"
)

func TestComposeStandardWash(t *testing.T) {
	c := NewComposer(moscowConverter())
	series := uniform(40, 20, 40, "ясно")
	// rain beyond the first 24 hours does not block a wash today
	series[10].Description = "небольшой дождь"

	rec, err := c.Compose(series, moscow, time.July)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Verdict != VerdictWash || rec.Mode != ModeStandard || rec.Branch != BranchStandardWash {
		t.Fatalf("unexpected recommendation %s/%s/%s", rec.Verdict, rec.Mode, rec.Branch)
	}
	if !strings.Contains(rec.Narrative, "Сегодня можно мыть машину") {
		t.Errorf("unexpected narrative %q", rec.Narrative)
	}
	if strings.Contains(rec.Narrative, "Ветер") {
		t.Errorf("calm day must not mention wind: %q", rec.Narrative)
	}
	if rec.Facts.SeasonGlyph != "☀️" {
		t.Errorf("unexpected season glyph %q", rec.Facts.SeasonGlyph)
	}
}

func TestComposeStandardWashWindCaveat(t *testing.T) {
	c := NewComposer(moscowConverter())
	series := uniform(40, 20, 40, "ясно")
	series[0].WindSpeed = 8

	rec, err := c.Compose(series, moscow, time.July)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Verdict != VerdictWash {
		t.Fatalf("expected wash, got %s", rec.Verdict)
	}
	if !strings.Contains(rec.Narrative, "Ветер 8.0 м/с") {
		t.Errorf("expected wind caveat, got %q", rec.Narrative)
	}
}

func TestComposeStandardRain(t *testing.T) {
	c := NewComposer(moscowConverter())
	series := uniform(40, 20, 60, "ясно")
	series[1].Description = "небольшой дождь"
	series[2].Description = "умеренный дождь"
	series[5].Description = "небольшой дождь"
	series[1].Rain3h = 0.5

	rec, err := c.Compose(series, moscow, time.July)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Verdict != VerdictPostpone || rec.Branch != BranchStandardRain {
		t.Fatalf("unexpected recommendation %s/%s", rec.Verdict, rec.Branch)
	}

	// 03:00, 06:00 and 15:00 UTC in Moscow
	want := []string{"10 Jan 06:00 - 09:00", "10 Jan 18:00"}
	if !reflect.DeepEqual(rec.Facts.Intervals, want) {
		t.Errorf("expected intervals %v, got %v", want, rec.Facts.Intervals)
	}
	for _, interval := range want {
		if !strings.Contains(rec.Narrative, interval) {
			t.Errorf("narrative misses interval %q: %q", interval, rec.Narrative)
		}
	}
	if !strings.Contains(rec.Narrative, "Взвешенная вероятность дождя") {
		t.Errorf("narrative misses weighted rain: %q", rec.Narrative)
	}
}

func TestComposeStandardGateReasons(t *testing.T) {
	humid := uniform(40, 20, 90, "облачно")

	wet := uniform(40, 20, 40, "облачно")
	for i := range wet {
		wet[i].Rain3h = 1
	}

	freezing := uniform(40, -1, 50, "ясно")
	freezing[0] = pt(0, 10, 50, "ясно")

	tests := []struct {
		name    string
		series  forecast.Series
		reasons []Reason
		snippet string
	}{
		{name: "humidity", series: humid, reasons: []Reason{ReasonHumidity}, snippet: "высокая влажность (90%)"},
		{name: "rain volume", series: wet, reasons: []Reason{ReasonRainProbability}, snippet: "высокая вероятность дождя (1.00)"},
		{name: "near freezing average", series: freezing, reasons: []Reason{ReasonNearFreezing}, snippet: "около нуля"},
	}

	c := NewComposer(moscowConverter())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := c.Compose(tt.series, moscow, time.June)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Verdict != VerdictPostpone || rec.Branch != BranchStandardPostpone {
				t.Fatalf("unexpected recommendation %s/%s", rec.Verdict, rec.Branch)
			}
			if !reflect.DeepEqual(rec.Facts.Reasons, tt.reasons) {
				t.Errorf("expected reasons %v, got %v", tt.reasons, rec.Facts.Reasons)
			}
			if !strings.Contains(rec.Narrative, tt.snippet) {
				t.Errorf("narrative misses %q: %q", tt.snippet, rec.Narrative)
			}
			if !strings.Contains(rec.Narrative, "Средняя влажность") {
				t.Errorf("narrative misses humidity: %q", rec.Narrative)
			}
		})
	}
}

func TestComposeWinterPrecipitation(t *testing.T) {
	c := NewComposer(moscowConverter())
	series := uniform(40, -5, 85, "ясно")
	series[0] = pt(0, -5, 90, "небольшой снег")
	series[1] = pt(1, -5, 90, "снег")
	series[0].Snow3h = 0.8
	series[1].Snow3h = 0.8

	rec, err := c.Compose(series, moscow, time.January)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Verdict != VerdictPostpone || rec.Mode != ModeWinter || rec.Branch != BranchWinterPrecipitation {
		t.Fatalf("unexpected recommendation %s/%s/%s", rec.Verdict, rec.Mode, rec.Branch)
	}
	want := []string{"10 Jan 03:00 - 06:00"}
	if !reflect.DeepEqual(rec.Facts.Intervals, want) {
		t.Errorf("expected intervals %v, got %v", want, rec.Facts.Intervals)
	}
	if rec.Facts.SnowTotalMM < 1.59 || rec.Facts.SnowTotalMM > 1.61 {
		t.Errorf("expected 1.6 mm of snow, got %f", rec.Facts.SnowTotalMM)
	}
	if !strings.Contains(rec.Narrative, "1.6 мм снега") {
		t.Errorf("narrative misses snow warning: %q", rec.Narrative)
	}
	if !strings.Contains(rec.Narrative, "Средняя температура: -5.0 °C") {
		t.Errorf("narrative misses average temperature: %q", rec.Narrative)
	}
}

func TestComposeWinterWindow(t *testing.T) {
	c := NewComposer(moscowConverter())
	series := uniform(40, -25, 70, "ясно")
	for i := 0; i < 4; i++ {
		series[i] = pt(i, float64(i%2), 70, "ясно")
	}
	series[4].WindSpeed = 10
	series[5] = pt(5, -2, 70, "облачно")
	series[6] = pt(6, -2, 70, "облачно")

	rec, err := c.Compose(series, moscow, time.January)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Verdict != VerdictWash || rec.Branch != BranchWinterWindow {
		t.Fatalf("unexpected recommendation %s/%s", rec.Verdict, rec.Branch)
	}
	best := rec.Facts.BestWindow
	if best == nil || best.DurationHours != 12 || best.Start != "10 Jan 03:00" {
		t.Fatalf("unexpected best window %+v", best)
	}
	if len(rec.Facts.Windows) != 2 {
		t.Errorf("expected 2 windows, got %d", len(rec.Facts.Windows))
	}
	if !strings.Contains(rec.Narrative, "Лучшее окно: с 10 Jan 03:00, 12 ч") {
		t.Errorf("narrative misses best window: %q", rec.Narrative)
	}
	if !strings.Contains(rec.Narrative, "Погода сейчас: ясно") {
		t.Errorf("narrative misses current condition: %q", rec.Narrative)
	}
	if n := strings.Count(rec.Narrative, "⚠"); n != 2 {
		t.Errorf("expected 2 warnings in narrative, got %d", n)
	}
}

func TestComposeWinterNoWindow(t *testing.T) {
	c := NewComposer(moscowConverter())
	series := uniform(40, -25, 75, "ясно")

	rec, err := c.Compose(series, moscow, time.February)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Verdict != VerdictPostpone || rec.Branch != BranchWinterNoWindow {
		t.Fatalf("unexpected recommendation %s/%s", rec.Verdict, rec.Branch)
	}
	if len(rec.Facts.Warnings) != 1 || rec.Facts.Warnings[0].Kind != WarnRoadSalt {
		t.Errorf("expected a single road salt warning, got %+v", rec.Facts.Warnings)
	}
	for _, snippet := range []string{"не лучшее время", "Средняя температура: -25.0 °C", "Снег за двое суток: 0.0 мм", "Средняя влажность: 75%"} {
		if !strings.Contains(rec.Narrative, snippet) {
			t.Errorf("narrative misses %q: %q", snippet, rec.Narrative)
		}
	}
}

func TestComposeColdSummerDayUsesWinterMode(t *testing.T) {
	c := NewComposer(moscowConverter())
	rec, err := c.Compose(uniform(8, 1, 50, "ясно"), moscow, time.July)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Mode != ModeWinter {
		t.Errorf("expected winter mode, got %s", rec.Mode)
	}
}

func TestComposeUnresolvedTimezone(t *testing.T) {
	c := NewComposer(oceanConverter())
	series := uniform(40, 20, 60, "ясно")
	series[0].Description = "небольшой дождь"

	rec, err := c.Compose(series, forecast.Coordinate{Lat: 0, Lon: -30}, time.July)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Branch != BranchStandardRain {
		t.Fatalf("timezone must not influence the decision, got %s", rec.Branch)
	}
	if len(rec.Facts.Intervals) != 1 || rec.Facts.Intervals[0] != oceanConverter().Fallback() {
		t.Errorf("expected fallback interval, got %v", rec.Facts.Intervals)
	}
}

func TestComposeSinglePoint(t *testing.T) {
	c := NewComposer(moscowConverter())
	rec, err := c.Compose(uniform(1, 20, 40, "ясно"), moscow, time.August)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Verdict != VerdictWash {
		t.Errorf("expected wash, got %s", rec.Verdict)
	}
}

func TestComposeIdempotent(t *testing.T) {
	c := NewComposer(moscowConverter())
	series := uniform(40, -3, 80, "облачно")
	series[3].Description = "небольшой снег"

	first, err := c.Compose(series, moscow, time.December)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.Compose(series, moscow, time.December)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("compose is not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestComposeRejectsBadInput(t *testing.T) {
	c := NewComposer(moscowConverter())

	if _, err := c.Compose(nil, moscow, time.July); !errors.Is(err, forecast.ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput for empty series, got %v", err)
	}
	if _, err := c.Compose(uniform(3, 20, 40, "ясно"), moscow, 13); err == nil {
		t.Error("expected error for invalid month")
	}
}

func TestDecideStages(t *testing.T) {
	c := NewComposer(moscowConverter())

	d, err := c.Decide(uniform(8, 20, 40, "ясно"), moscow, time.July)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Stage != StageStandardEvaluated {
		t.Errorf("expected %s, got %s", StageStandardEvaluated, d.Stage)
	}

	d, err = c.Decide(uniform(8, -5, 40, "ясно"), moscow, time.January)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Stage != StageWinterEvaluated {
		t.Errorf("expected %s, got %s", StageWinterEvaluated, d.Stage)
	}

	if CanTransition(StageNotEvaluated, StageStandardEvaluated) {
		t.Error("season must be selected before a branch is evaluated")
	}
	if CanTransition(StageStandardEvaluated, StageWinterEvaluated) {
		t.Error("branches are exclusive")
	}
	if CanTransition(StageComposed, StageSeasonSelected) {
		t.Error("composed is terminal")
	}
}

func TestWithSettingsMergeGap(t *testing.T) {
	c := NewComposer(moscowConverter(), WithSettings(Settings{Step: DefaultStep, MergeGap: time.Hour}))
	series := uniform(40, 20, 60, "ясно")
	series[0].Description = "дождь"
	series[1].Description = "дождь"

	rec, err := c.Compose(series, moscow, time.July)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"10 Jan 03:00", "10 Jan 06:00"}
	if !reflect.DeepEqual(rec.Facts.Intervals, want) {
		t.Errorf("expected %v, got %v", want, rec.Facts.Intervals)
	}
}

type plainRenderer struct{}

func (plainRenderer) Render(d Decision) string { return string(d.Verdict) }

func TestWithRenderer(t *testing.T) {
	c := NewComposer(moscowConverter(), WithRenderer(plainRenderer{}))
	rec, err := c.Compose(uniform(8, 20, 40, "ясно"), moscow, time.July)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Narrative != "wash" {
		t.Errorf("custom renderer was not used: %q", rec.Narrative)
	}
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		text     string
		expected Verdict
	}{
		{text: "wash", expected: VerdictWash},
		{text: " POSTPONE ", expected: VerdictPostpone},
		{text: "Сегодня можно мыть машину.\nПогода: ясно", expected: VerdictWash},
		{text: "Лучше отложить мытьё машины на другой день.", expected: VerdictPostpone},
		{text: "Привет", expected: VerdictUnknown},
	}
	for _, tt := range tests {
		if got := ParseVerdict(tt.text); got != tt.expected {
			t.Errorf("ParseVerdict(%q) = %s, expected %s", tt.text, got, tt.expected)
		}
	}
}
