package wash

import "time"

// IsWinter selects road-salt mode: November through March, or any cold day.
// Hemisphere is deliberately ignored here.
func IsWinter(currentTempC float64, month time.Month) bool {
	switch month {
	case time.November, time.December, time.January, time.February, time.March:
		return true
	}
	return currentTempC < WinterTempThreshold
}

// SeasonEmoji picks a display glyph for the astronomical season at lat.
// It only decorates output and never feeds a decision.
func SeasonEmoji(lat float64, month time.Month) string {
	if lat < 0 {
		month = time.Month((int(month)+5)%12 + 1)
	}
	switch month {
	case time.December, time.January, time.February:
		return "❄️"
	case time.March, time.April, time.May:
		return "🌱"
	case time.June, time.July, time.August:
		return "☀️"
	default:
		return "🍂"
	}
}
