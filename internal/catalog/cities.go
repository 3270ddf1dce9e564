package catalog

import "strings"

// cityAliases maps common alternate city names to the canonical form used in
// the datasets.
var cityAliases = map[string]string{
	"bangalore":          "bengaluru",
	"bengaluru":          "bengaluru",
	"bombay":             "mumbai",
	"mumbai":             "mumbai",
	"new delhi":          "delhi",
	"delhi":              "delhi",
	"calcutta":           "kolkata",
	"kolkata":            "kolkata",
	"madras":             "chennai",
	"chennai":            "chennai",
	"trivandrum":         "thiruvananthapuram",
	"thiruvananthapuram": "thiruvananthapuram",
	"cochin":             "kochi",
	"kochi":              "kochi",
}

// NormalizeCity lowercases, trims and resolves known aliases. Free-form
// location strings are scanned for a known city before falling back to the
// cleaned input.
func NormalizeCity(city string) string {
	lower := strings.TrimSpace(strings.ToLower(city))
	if canonical, ok := cityAliases[lower]; ok {
		return canonical
	}
	for alias, canonical := range cityAliases {
		if strings.Contains(lower, alias) {
			return canonical
		}
	}
	return lower
}

// SameCity reports whether two city values resolve to the same canonical
// name.
func SameCity(a, b string) bool {
	return NormalizeCity(a) == NormalizeCity(b)
}
