package domain

import "sort"

var validLocations = map[string]struct{}{
	"Albuquerque, New Mexico":    {},
	"Carlsbad, California":       {},
	"Chula Vista, California":    {},
	"Colorado Springs, Colorado": {},
	"Denver, Colorado":           {},
	"El Cajon, California":       {},
	"El Paso, Texas":             {},
	"Escondido, California":      {},
	"Fresno, California":         {},
	"La Mesa, California":        {},
	"Las Vegas, Nevada":          {},
	"Los Angeles, California":    {},
	"Oceanside, California":      {},
	"Phoenix, Arizona":           {},
	"Sacramento, California":     {},
	"Salt Lake City, Utah":       {},
	"San Diego, California":      {},
	"Tucson, Arizona":            {},
}

// IsValidLocation is an exact, case-sensitive allow-list check.
func IsValidLocation(loc string) bool {
	_, ok := validLocations[loc]
	return ok
}

// Locations returns the allow-list in sorted order.
func Locations() []string {
	out := make([]string, 0, len(validLocations))
	for l := range validLocations {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
