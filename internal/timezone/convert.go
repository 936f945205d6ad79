package timezone

import (
	"sync"
	"time"

	"github.com/i474232898/wash-advisor/internal/forecast"
)

// DefaultFallback is shown instead of a local time when the zone cannot be determined.
const DefaultFallback = "Не удалось определить временную зону."

// Converter turns UTC forecast timestamps into local, formatted wall-clock strings.
// It is safe for concurrent use.
type Converter struct {
	resolver  Resolver
	formatter Formatter
	fallback  string

	// zone id -> *time.Location
	locations sync.Map
}

// NewConverter creates a Converter. An empty fallback selects DefaultFallback.
func NewConverter(resolver Resolver, formatter Formatter, fallback string) *Converter {
	if formatter == nil {
		formatter = LayoutFormatter{}
	}
	if fallback == "" {
		fallback = DefaultFallback
	}
	return &Converter{
		resolver:  resolver,
		formatter: formatter,
		fallback:  fallback,
	}
}

// Formatter returns the presentation formatter in use.
func (c *Converter) Formatter() Formatter {
	return c.formatter
}

// Fallback returns the string used when localization is impossible.
func (c *Converter) Fallback() string {
	return c.fallback
}

// Location resolves the coordinate to a loaded *time.Location.
func (c *Converter) Location(coord forecast.Coordinate) (*time.Location, bool) {
	zoneID, ok := c.resolver.Resolve(coord.Lat, coord.Lon)
	if !ok {
		return nil, false
	}

	if loc, ok := c.locations.Load(zoneID); ok {
		return loc.(*time.Location), true
	}
	loc, err := time.LoadLocation(zoneID)
	if err != nil {
		return nil, false
	}
	c.locations.Store(zoneID, loc)
	return loc, true
}

// Localize converts t to the wall clock at coord.
func (c *Converter) Localize(t time.Time, coord forecast.Coordinate) (time.Time, bool) {
	loc, ok := c.Location(coord)
	if !ok {
		return t, false
	}
	return t.In(loc), true
}

// Format renders t in local time, or the fallback when the zone is unknown.
func (c *Converter) Format(t time.Time, coord forecast.Coordinate) string {
	local, ok := c.Localize(t, coord)
	if !ok {
		return c.fallback
	}
	return c.formatter.Stamp(local)
}

// ToLocal parses a dt_txt timestamp and renders it in local time. Unparseable input and
// unknown zones degrade to the fallback string.
func (c *Converter) ToLocal(utcTimestamp string, coord forecast.Coordinate) string {
	ts, err := forecast.ParseTimestamp(utcTimestamp)
	if err != nil {
		return c.fallback
	}
	return c.Format(ts, coord)
}
