package forecast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// payload mirrors the OpenWeather 5 day / 3 hour forecast document.
// Required fields are pointers so their absence can be told apart from zero.
type payload struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []struct {
		DtTxt *string `json:"dt_txt"`
		Main  *struct {
			Temp     *float64 `json:"temp"`
			Humidity *float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description *string `json:"description"`
		} `json:"weather"`
		Rain *struct {
			ThreeH *float64 `json:"3h"`
		} `json:"rain"`
		Snow *struct {
			ThreeH *float64 `json:"3h"`
		} `json:"snow"`
		Wind *struct {
			Speed *float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
}

// Parse decodes a forecast document held in memory.
func Parse(data []byte) (Forecast, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a forecast document and validates it into a Series.
// Missing optional fields are treated as zero; a missing required field fails fast.
func Decode(r io.Reader) (Forecast, error) {
	var p payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Forecast{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	if len(p.List) == 0 {
		return Forecast{}, fmt.Errorf("%w: forecast list is empty", ErrMalformedInput)
	}

	series := make(Series, 0, len(p.List))
	for i, item := range p.List {
		if item.DtTxt == nil {
			return Forecast{}, missing(i, "dt_txt")
		}
		if item.Main == nil || item.Main.Temp == nil {
			return Forecast{}, missing(i, "main.temp")
		}
		if item.Main.Humidity == nil {
			return Forecast{}, missing(i, "main.humidity")
		}
		if len(item.Weather) == 0 || item.Weather[0].Description == nil {
			return Forecast{}, missing(i, "weather[0].description")
		}

		ts, err := ParseTimestamp(*item.DtTxt)
		if err != nil {
			return Forecast{}, fmt.Errorf("%w: point %d: %v", ErrMalformedInput, i, err)
		}
		if n := len(series); n > 0 && ts.Before(series[n-1].Time) {
			return Forecast{}, fmt.Errorf("%w: point %d: timestamp %s precedes previous point",
				ErrMalformedInput, i, *item.DtTxt)
		}

		pt := Point{
			Time:        ts,
			TempKelvin:  *item.Main.Temp,
			Humidity:    int(*item.Main.Humidity),
			Description: strings.ToLower(*item.Weather[0].Description),
		}
		if item.Rain != nil && item.Rain.ThreeH != nil {
			pt.Rain3h = *item.Rain.ThreeH
		}
		if item.Snow != nil && item.Snow.ThreeH != nil {
			pt.Snow3h = *item.Snow.ThreeH
		}
		if item.Wind != nil && item.Wind.Speed != nil {
			pt.WindSpeed = *item.Wind.Speed
		}
		series = append(series, pt)
	}

	return Forecast{City: p.City.Name, Series: series}, nil
}

// ParseTimestamp parses a dt_txt value as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	ts, err := time.ParseInLocation(TimestampLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return ts, nil
}

func missing(index int, field string) error {
	return fmt.Errorf("%w: point %d: missing required field %s", ErrMalformedInput, index, field)
}
