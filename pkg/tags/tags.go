// Package tags provides predicates over OSM key/value tag pairs, shared by
// the road classifier and the OSM scraping callbacks.
package tags

import "github.com/paulmach/osm"

// Tags wraps osm.Tags (an ordered slice of key/value pairs) with the
// predicate helpers the classifier and crossing scraper need.
type Tags osm.Tags

// Has reports whether key k is present, regardless of value.
func (t Tags) Has(k string) bool {
	return osm.Tags(t).Find(k) != ""
}

// Get returns the value for k, or "" if absent.
func (t Tags) Get(k string) string {
	return osm.Tags(t).Find(k)
}

// Is reports whether key k is present with exactly value v.
func (t Tags) Is(k, v string) bool {
	return osm.Tags(t).Find(k) == v
}

// IsAny reports whether key k is present with one of the given values.
func (t Tags) IsAny(k string, vs []string) bool {
	val := osm.Tags(t).Find(k)
	if val == "" {
		return false
	}
	for _, v := range vs {
		if val == v {
			return true
		}
	}
	return false
}

// HasAny reports whether any of the given keys is present.
func (t Tags) HasAny(ks []string) bool {
	for _, k := range ks {
		if t.Has(k) {
			return true
		}
	}
	return false
}

// ToMap copies the tags into a plain map, used by GeoJSON/debug output
// where an ordered slice is unnecessary overhead.
func (t Tags) ToMap() map[string]string {
	m := make(map[string]string, len(t))
	for _, kv := range t {
		m[kv.Key] = kv.Value
	}
	return m
}
