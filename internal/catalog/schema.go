package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// NumericDefaults is the named fallback policy for numeric fields that fail
// to parse. One malformed record must never abort loading the rest, so each
// field recovers to its documented default.
type NumericDefaults struct {
	DurationMinutes int
	Stops           int
	Price           float64
	Rating          float64
	ReviewCount     int
	AmenitiesCount  int
}

// DefaultNumericPolicy mirrors the defaults the estimators assume.
func DefaultNumericPolicy() NumericDefaults {
	return NumericDefaults{
		DurationMinutes: 150,
		Stops:           0,
		Price:           0,
		Rating:          0,
		ReviewCount:     0,
		AmenitiesCount:  0,
	}
}

// stopsVocabulary maps the textual stop counts some datasets use.
var stopsVocabulary = map[string]int{
	"zero":        0,
	"one":         1,
	"two_or_more": 2,
}

// fieldColumns lists, per Listing field, the source column headers seen
// across the datasets. Resolution happens once per file, not per record.
var fieldColumns = map[string][]string{
	"name":        {"name", "hotel_name", "hospital_group", "hospital_name", "center_name", "provider_name", "title"},
	"city":        {"city", "location", "source_city"},
	"category":    {"category", "airline", "specialty", "session_type", "yoga_style", "style", "type"},
	"cluster":     {"cluster_name", "cluster"},
	"origin":      {"origin", "source_city", "source"},
	"destination": {"destination", "destination_city", "dest"},
	"dest_extra":  {"destination_country", "dest_country"},
	"price":       {"price", "hotel_price", "fee", "economy_price_inr", "cost"},
	"rating":      {"rating", "hotel_rating", "rating_5_scale", "stars"},
	"reviews":     {"review_count", "reviews", "num_reviews"},
	"duration":    {"duration", "duration_minutes", "flight_duration"},
	"stops":       {"stops", "num_stops"},
	"amenities":   {"amenities_count", "amenities", "num_amenities"},
	"text":        {"text", "summary", "review_summary", "description", "amenities_text", "topics"},
}

// Adapter normalizes heterogeneous source records into the fixed Listing
// shape. Column resolution is performed once against the header, so the
// ranking core never probes alternative field names per request.
type Adapter struct {
	defaults NumericDefaults
	logger   *logrus.Logger

	resolved map[string]int
}

// NewAdapter binds the adapter to a header row. Unresolvable fields are
// simply absent and yield zero values / defaults.
func NewAdapter(header []string, defaults NumericDefaults, logger *logrus.Logger) *Adapter {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[normalizeHeader(h)] = i
	}

	resolved := make(map[string]int)
	for field, candidates := range fieldColumns {
		for _, c := range candidates {
			if idx, ok := byName[c]; ok {
				resolved[field] = idx
				break
			}
		}
	}

	return &Adapter{
		defaults: defaults,
		logger:   logger,
		resolved: resolved,
	}
}

// ResolvedFields reports which Listing fields found a source column,
// sorted for stable output.
func (a *Adapter) ResolvedFields() []string {
	fields := make([]string, 0, len(a.resolved))
	for field := range a.resolved {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func normalizeHeader(h string) string {
	h = strings.TrimSpace(strings.ToLower(h))
	h = strings.ReplaceAll(h, " ", "_")
	// "international_flights (1)" style suffixes never survive this
	return strings.Trim(h, "_")
}

// Adapt converts one CSV record into a Listing at the given row position.
func (a *Adapter) Adapt(row int, record []string) Listing {
	l := Listing{Row: row}

	l.Name = a.str(record, "name")
	l.City = a.str(record, "city")
	l.Category = a.str(record, "category")
	l.Cluster = a.str(record, "cluster")
	l.Origin = a.str(record, "origin")
	l.Destination = a.str(record, "destination")
	if extra := a.str(record, "dest_extra"); extra != "" && l.Destination != "" {
		l.Destination = l.Destination + ", " + extra
	}
	l.Text = a.str(record, "text")

	l.Price = a.float(record, "price", row, a.defaults.Price)
	l.Rating = a.float(record, "rating", row, a.defaults.Rating)
	l.ReviewCount = a.int(record, "reviews", row, a.defaults.ReviewCount)
	l.AmenitiesCount = a.int(record, "amenities", row, a.defaults.AmenitiesCount)
	l.DurationMinutes = NormalizeDurationMinutes(a.float(record, "duration", row, float64(a.defaults.DurationMinutes)))
	l.Stops = a.stops(record, row)

	return l
}

func (a *Adapter) str(record []string, field string) string {
	idx, ok := a.resolved[field]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func (a *Adapter) float(record []string, field string, row int, def float64) float64 {
	raw := a.str(record, field)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		a.logger.WithFields(logrus.Fields{
			"field": field,
			"row":   row,
			"value": raw,
		}).Warn("Malformed numeric field, using default")
		return def
	}
	return v
}

func (a *Adapter) int(record []string, field string, row int, def int) int {
	return int(a.float(record, field, row, float64(def)))
}

func (a *Adapter) stops(record []string, row int) int {
	raw := strings.ToLower(a.str(record, "stops"))
	if raw == "" {
		return a.defaults.Stops
	}
	if n, ok := stopsVocabulary[raw]; ok {
		return n
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		a.logger.WithFields(logrus.Fields{
			"field": "stops",
			"row":   row,
			"value": raw,
		}).Warn("Malformed stop count, using default")
		return a.defaults.Stops
	}
	return v
}

// NormalizeDurationMinutes converts durations recorded in hours to minutes.
// Small values are hours: no flight in the datasets is shorter than 48
// minutes, and none is longer than 48 hours.
func NormalizeDurationMinutes(v float64) int {
	if v <= 0 {
		return 0
	}
	if v < 48 {
		return int(v * 60)
	}
	return int(v)
}
