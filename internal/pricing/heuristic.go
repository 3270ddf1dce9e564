package pricing

import (
	"strings"

	"github.com/healtrip/backend/internal/catalog"
)

// HaulClass is the long-haul vs short-haul classification driving the rate
// table.
type HaulClass int

const (
	ShortHaul HaulClass = iota
	LongHaul
)

// ClassRates are the per-class pricing constants.
type ClassRates struct {
	BaseFare      float64
	PerMinuteRate float64
	FloorPrice    float64
}

// HeuristicConfig groups every threshold and rate of the estimator. None of
// these are learned; callers may override any of them.
type HeuristicConfig struct {
	// LongHaulMinutes is the duration above which a flight classifies
	// long-haul regardless of keywords. Short connecting itineraries can
	// exceed naive thresholds, so this sits deliberately high.
	LongHaulMinutes int
	// LongHaulKeywords classify a flight long-haul on destination evidence
	// alone, even below the duration cutoff.
	LongHaulKeywords []string

	MinDurationMinutes int

	// PlausiblePriceMin: recorded prices above this are trusted.
	PlausiblePriceMin float64
	// ShortHaulPriceCeiling: recorded short-haul prices above this are
	// treated as misrecorded and re-estimated.
	ShortHaulPriceCeiling float64

	Long  ClassRates
	Short ClassRates

	// StopMultiplierStep grows the price by this fraction per stop.
	StopMultiplierStep float64
	// FloorRowIncrement perturbs floored prices by row index so otherwise
	// identical estimates stay distinct in a result list. Not a pricing
	// signal.
	FloorRowIncrement float64

	// AirlineMultipliers scale the formula price per carrier; unknown
	// carriers use 1.0.
	AirlineMultipliers map[string]float64
}

// DefaultHeuristicConfig returns the production constants.
func DefaultHeuristicConfig() HeuristicConfig {
	return HeuristicConfig{
		LongHaulMinutes: 720,
		LongHaulKeywords: []string{
			"dubai", "london", "york", "paris", "tokyo", "canada", "usa",
			"uk", "thailand", "singapore", "germany", "france", "australia",
			"switzerland",
		},
		MinDurationMinutes:    60,
		PlausiblePriceMin:     2000,
		ShortHaulPriceCeiling: 15000,
		Long: ClassRates{
			BaseFare:      15000,
			PerMinuteRate: 100,
			FloorPrice:    10000,
		},
		Short: ClassRates{
			BaseFare:      1800,
			PerMinuteRate: 12,
			FloorPrice:    2500,
		},
		StopMultiplierStep: 0.1,
		FloorRowIncrement:  50,
		AirlineMultipliers: map[string]float64{
			"air india":          1.0,
			"indigo":             0.9,
			"vistara":            1.2,
			"spicejet":           0.85,
			"goair":              0.85,
			"air asia":           0.85,
			"emirates":           1.5,
			"lufthansa":          1.4,
			"british airways":    1.45,
			"singapore airlines": 1.5,
			"thai airways":       1.2,
			"etihad":             1.4,
			"qatar airways":      1.5,
		},
	}
}

// Estimator synthesizes a price whenever the recorded one is missing or
// implausible. It is a decision procedure over configuration constants, not
// a trained model.
type Estimator struct {
	cfg HeuristicConfig
}

// NewEstimator builds an estimator; zero-value fields in cfg are not
// defaulted, callers wanting the production constants start from
// DefaultHeuristicConfig.
func NewEstimator(cfg HeuristicConfig) *Estimator {
	return &Estimator{cfg: cfg}
}

// EstimateInput is one flight to price.
type EstimateInput struct {
	DurationMinutes float64 // may still be expressed in hours
	Stops           int
	Airline         string
	Destination     string
	RecordedPrice   float64
	Row             int
}

// Classify applies the combined rule: duration above the cutoff OR a
// long-haul destination keyword. Keyword evidence is authoritative for
// shorter flights; very long durations classify long-haul without keywords.
func (e *Estimator) Classify(durationMinutes int, destination string) HaulClass {
	if durationMinutes > e.cfg.LongHaulMinutes {
		return LongHaul
	}
	dest := strings.ToLower(destination)
	for _, kw := range e.cfg.LongHaulKeywords {
		if strings.Contains(dest, kw) {
			return LongHaul
		}
	}
	return ShortHaul
}

// Estimate produces the reported price for one flight.
func (e *Estimator) Estimate(in EstimateInput) float64 {
	duration := catalog.NormalizeDurationMinutes(in.DurationMinutes)
	class := e.Classify(duration, in.Destination)

	rates := e.cfg.Short
	if class == LongHaul {
		rates = e.cfg.Long
	}

	var price float64
	recordedUsable := in.RecordedPrice > e.cfg.PlausiblePriceMin
	if recordedUsable && class == ShortHaul && in.RecordedPrice > e.cfg.ShortHaulPriceCeiling {
		// Misrecorded short-haul price, re-estimate.
		recordedUsable = false
	}

	if recordedUsable {
		price = in.RecordedPrice
	} else {
		if duration < e.cfg.MinDurationMinutes {
			duration = e.cfg.MinDurationMinutes
		}
		price = rates.BaseFare + float64(duration)*rates.PerMinuteRate

		multiplier := 1.0
		if m, ok := e.cfg.AirlineMultipliers[strings.ToLower(strings.TrimSpace(in.Airline))]; ok {
			multiplier = m
		}
		price *= multiplier
		price *= 1 + e.cfg.StopMultiplierStep*float64(in.Stops)
	}

	if price < rates.FloorPrice {
		price = rates.FloorPrice + float64(in.Row)*e.cfg.FloorRowIncrement
	}
	return price
}
