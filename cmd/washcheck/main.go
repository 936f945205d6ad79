package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/i474232898/wash-advisor/internal/forecast"
	"github.com/i474232898/wash-advisor/internal/timezone"
	"github.com/i474232898/wash-advisor/internal/wash"
)

func main() {
	var (
		path   string
		lat    float64
		lon    float64
		month  int
		locale string
		asJSON bool
	)
	flag.StringVar(&path, "forecast", "-", "OpenWeather 5 day / 3 hour forecast JSON file (- for stdin)")
	flag.Float64Var(&lat, "lat", 0, "latitude of the car")
	flag.Float64Var(&lon, "lon", 0, "longitude of the car")
	flag.IntVar(&month, "month", 0, "month 1-12 (default: current UTC month)")
	flag.StringVar(&locale, "locale", "ru", "month names in local times: ru or en")
	flag.BoolVar(&asJSON, "json", false, "print the full recommendation as JSON")
	flag.Parse()

	if err := run(os.Stdout, path, forecast.Coordinate{Lat: lat, Lon: lon}, month, locale, asJSON); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, path string, coord forecast.Coordinate, month int, locale string, asJSON bool) error {
	in := os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	fc, err := forecast.Decode(in)
	if err != nil {
		return err
	}

	finder, err := timezone.NewFinder()
	if err != nil {
		return err
	}
	formatter, err := timezone.NewLocaleFormatter(locale)
	if err != nil {
		return err
	}
	composer := wash.NewComposer(timezone.NewConverter(finder, formatter, ""))

	m := time.Month(month)
	if m == 0 {
		m = time.Now().UTC().Month()
	}
	rec, err := composer.Compose(fc.Series, coord, m)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	city := fc.City
	if city == "" {
		city = "Неизвестно"
	}
	_, err = fmt.Fprintf(w, "%s %s\n\n%s\n", rec.Facts.SeasonGlyph, city, rec.Narrative)
	return err
}
