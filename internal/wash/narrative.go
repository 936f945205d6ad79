package wash

import (
	"fmt"
	"strings"
)

// Warning limits per branch.
const (
	maxPostponeWarnings = 3
	maxWindowWarnings   = 2
)

// Renderer turns a Decision into user-facing text.
type Renderer interface {
	Render(d Decision) string
}

// RussianRenderer renders the bot's Russian narrative.
type RussianRenderer struct{}

func (r RussianRenderer) Render(d Decision) string {
	f := d.Facts
	var b strings.Builder

	switch d.Branch {
	case BranchWinterPrecipitation:
		b.WriteString("Лучше отложить мытьё машины: ожидаются осадки.\n")
		b.WriteString("Осадки в ближайшие дни:\n")
		writeLines(&b, f.Intervals)
		r.writeWarnings(&b, f.Warnings, maxPostponeWarnings)
		fmt.Fprintf(&b, "\nСредняя температура: %.1f °C\n", f.Stats.TempAvgC)
		fmt.Fprintf(&b, "Снег за двое суток: %.1f мм", f.SnowTotalMM)

	case BranchWinterWindow:
		w := f.BestWindow
		b.WriteString("Можно мыть машину, если успеть в сухое окно.\n")
		fmt.Fprintf(&b, "Лучшее окно: с %s, %d ч, температура от %.1f до %.1f °C\n",
			w.Start, w.DurationHours, w.TempMinC, w.TempMaxC)
		r.writeWarnings(&b, f.Warnings, maxWindowWarnings)
		fmt.Fprintf(&b, "\nПогода сейчас: %s\n", f.CurrentCondition)
		fmt.Fprintf(&b, "Взвешенная вероятность дождя: %.2f", f.Stats.WeightedRain)

	case BranchWinterNoWindow:
		b.WriteString("Сейчас не лучшее время для мойки, лучше отложить.\n")
		b.WriteString("В ближайшие двое суток нет окна хотя бы в 6 часов без осадков, мороза и ветра.\n")
		r.writeWarnings(&b, f.Warnings, maxPostponeWarnings)
		fmt.Fprintf(&b, "\nСредняя температура: %.1f °C\n", f.Stats.TempAvgC)
		fmt.Fprintf(&b, "Снег за двое суток: %.1f мм\n", f.SnowTotalMM)
		fmt.Fprintf(&b, "Средняя влажность: %.0f%%", f.Stats.HumidityAvg)

	case BranchStandardRain:
		b.WriteString("Лучше отложить мытьё машины на другой день.\n")
		fmt.Fprintf(&b, "Взвешенная вероятность дождя: %.2f\n", f.Stats.WeightedRain)
		b.WriteString("Дождь в ближайшие часы:\n")
		writeLines(&b, f.Intervals)
		if f.CurrentTempC < LowTempCaveat {
			fmt.Fprintf(&b, "\nК тому же сейчас холодно (%.1f °C).", f.CurrentTempC)
		}

	case BranchStandardWash:
		b.WriteString("Сегодня можно мыть машину.\n")
		fmt.Fprintf(&b, "Погода: %s\n", f.CurrentCondition)
		fmt.Fprintf(&b, "Температура сейчас: %.1f °C", f.CurrentTempC)
		if f.CurrentWindMS > WindCaveat {
			fmt.Fprintf(&b, "\nВетер %.1f м/с: машина быстро покроется пылью.", f.CurrentWindMS)
		}
		if f.CurrentTempC < LowTempCaveat {
			b.WriteString("\nПосле мойки тщательно протрите машину насухо.")
		}

	case BranchStandardPostpone:
		b.WriteString("Лучше отложить мытьё машины на другой день.\n")
		b.WriteString("Причины:\n")
		for _, reason := range f.Reasons {
			b.WriteString("- " + reasonText(reason, f.Stats) + "\n")
		}
		if len(f.Intervals) > 0 {
			b.WriteString("Дождь в ближайшие дни:\n")
			writeLines(&b, f.Intervals)
		}
		fmt.Fprintf(&b, "\nСредняя температура: %.1f °C\n", f.Stats.TempAvgC)
		fmt.Fprintf(&b, "Температура сейчас: %.1f °C\n", f.CurrentTempC)
		fmt.Fprintf(&b, "Средняя влажность: %.0f%%", f.Stats.HumidityAvg)
		if f.CurrentTempC < RoadSaltNote {
			b.WriteString("\nНа дорогах могут быть реагенты: чистая машина быстро испачкается.")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func (r RussianRenderer) writeWarnings(b *strings.Builder, warnings []Warning, limit int) {
	if len(warnings) == 0 {
		return
	}
	if len(warnings) > limit {
		warnings = warnings[:limit]
	}
	b.WriteString("\n")
	for _, w := range warnings {
		b.WriteString("⚠ " + WarningText(w) + "\n")
	}
}

// WarningText renders a single hazard in Russian.
func WarningText(w Warning) string {
	switch w.Kind {
	case WarnSnowAccumulation:
		return fmt.Sprintf("За двое суток выпадет %.1f мм снега", w.Value)
	case WarnHighWind:
		return fmt.Sprintf("Сильный ветер до %.1f м/с в ближайшие сутки", w.Value)
	case WarnRoadSalt:
		return "На дорогах реагенты: после мойки промойте днище и пороги"
	default:
		return string(w.Kind)
	}
}

func reasonText(r Reason, s Stats) string {
	switch r {
	case ReasonRainProbability:
		return fmt.Sprintf("высокая вероятность дождя (%.2f)", s.WeightedRain)
	case ReasonHumidity:
		return fmt.Sprintf("высокая влажность (%.0f%%)", s.HumidityAvg)
	case ReasonNearFreezing:
		return fmt.Sprintf("средняя температура около нуля (%.1f °C)", s.TempAvgC)
	default:
		return string(r)
	}
}

func writeLines(b *strings.Builder, lines []string) {
	for _, l := range lines {
		b.WriteString(l + "\n")
	}
}
