package timezone

import (
	"fmt"

	"github.com/ringsaturn/tzf"

	"github.com/i474232898/wash-advisor/internal/store"
)

// Resolver maps a coordinate to an IANA timezone identifier.
// ok is false when no timezone polygon contains the point (e.g. open ocean).
type Resolver interface {
	Resolve(lat, lon float64) (zoneID string, ok bool)
}

// ResolverFunc adapts a plain function to Resolver.
type ResolverFunc func(lat, lon float64) (string, bool)

func (f ResolverFunc) Resolve(lat, lon float64) (string, bool) {
	return f(lat, lon)
}

type nameFinder interface {
	GetTimezoneName(lng float64, lat float64) string
}

// Finder resolves zones against the embedded timezone boundary dataset.
type Finder struct {
	finder nameFinder
}

// NewFinder loads the default boundary dataset. Loading takes a noticeable amount of
// time and memory, so a single Finder should be shared.
func NewFinder() (*Finder, error) {
	f, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone dataset: %w", err)
	}
	return &Finder{finder: f}, nil
}

// Resolve implements Resolver.
func (f *Finder) Resolve(lat, lon float64) (string, bool) {
	name := f.finder.GetTimezoneName(lon, lat)
	if name == "" {
		return "", false
	}
	return name, true
}

// ZoneStore is the cache contract used by CachedResolver.
type ZoneStore interface {
	SaveZone(key, zoneID string, found bool)
	GetZone(key string) (store.ZoneEntry, error)
}

// CachedResolver memoizes lookups of an underlying Resolver. The dataset is static,
// so a cached answer is always as good as a fresh one.
type CachedResolver struct {
	next  Resolver
	cache ZoneStore
}

// NewCachedResolver wraps next with the given cache.
func NewCachedResolver(next Resolver, cache ZoneStore) *CachedResolver {
	return &CachedResolver{next: next, cache: cache}
}

// Resolve implements Resolver.
func (c *CachedResolver) Resolve(lat, lon float64) (string, bool) {
	key := cacheKey(lat, lon)

	if entry, err := c.cache.GetZone(key); err == nil {
		return entry.ZoneID, entry.Found
	}

	zoneID, ok := c.next.Resolve(lat, lon)
	c.cache.SaveZone(key, zoneID, ok)
	return zoneID, ok
}

// cacheKey rounds to 1e-5 degrees (about a metre).
func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.5f:%.5f", lat, lon)
}
