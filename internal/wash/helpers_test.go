package wash

import (
	"time"
	_ "time/tzdata"

	"github.com/i474232898/wash-advisor/internal/forecast"
	"github.com/i474232898/wash-advisor/internal/timezone"
)

var (
	moscow = forecast.Coordinate{Lat: 55.7558, Lon: 37.6173}
	start  = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
)

func pt(i int, tempC float64, humidity int, desc string) forecast.Point {
	return forecast.Point{
		Time:        start.Add(time.Duration(i) * DefaultStep),
		TempKelvin:  tempC + forecast.KelvinOffset,
		Humidity:    humidity,
		Description: desc,
	}
}

// uniform builds n identical points 3 hours apart.
func uniform(n int, tempC float64, humidity int, desc string) forecast.Series {
	s := make(forecast.Series, n)
	for i := range s {
		s[i] = pt(i, tempC, humidity, desc)
	}
	return s
}

func moscowConverter() *timezone.Converter {
	return timezone.NewConverter(timezone.ResolverFunc(func(lat, lon float64) (string, bool) {
		return "Europe/Moscow", true
	}), timezone.LayoutFormatter{}, "")
}

func oceanConverter() *timezone.Converter {
	return timezone.NewConverter(timezone.ResolverFunc(func(lat, lon float64) (string, bool) {
		return "", false
	}), timezone.LayoutFormatter{}, "")
}
