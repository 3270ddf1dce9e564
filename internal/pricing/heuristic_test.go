package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimator_Classify(t *testing.T) {
	e := NewEstimator(DefaultHeuristicConfig())

	// Duration alone.
	assert.Equal(t, LongHaul, e.Classify(800, "Ranchi"))
	assert.Equal(t, ShortHaul, e.Classify(120, "Ranchi"))

	// The 720-minute cutoff is exclusive.
	assert.Equal(t, ShortHaul, e.Classify(720, "Ranchi"))
	assert.Equal(t, LongHaul, e.Classify(721, "Ranchi"))

	// Destination keywords override short durations.
	assert.Equal(t, LongHaul, e.Classify(120, "Dubai"))
	assert.Equal(t, LongHaul, e.Classify(120, "New York, USA"))
	assert.Equal(t, LongHaul, e.Classify(120, "LONDON"))
}

func TestEstimator_TrustsPlausibleRecordedPrice(t *testing.T) {
	e := NewEstimator(DefaultHeuristicConfig())

	price := e.Estimate(EstimateInput{
		DurationMinutes: 150,
		Airline:         "IndiGo",
		Destination:     "Ranchi",
		RecordedPrice:   4500,
	})
	assert.Equal(t, 4500.0, price)
}

func TestEstimator_DiscardsImplausibleShortHaulPrice(t *testing.T) {
	e := NewEstimator(DefaultHeuristicConfig())

	// A 90-minute domestic hop at 99999 is a data error; the formula price
	// takes over: (1800 + 90*12) * 0.9 = 2592.
	price := e.Estimate(EstimateInput{
		DurationMinutes: 90,
		Airline:         "IndiGo",
		Destination:     "Ranchi",
		RecordedPrice:   99999,
	})
	assert.InDelta(t, 2592.0, price, 1e-9)
}

func TestEstimator_KeepsHighLongHaulPrice(t *testing.T) {
	e := NewEstimator(DefaultHeuristicConfig())

	price := e.Estimate(EstimateInput{
		DurationMinutes: 900,
		Airline:         "Emirates",
		Destination:     "Dubai",
		RecordedPrice:   48000,
	})
	assert.Equal(t, 48000.0, price)
}

func TestEstimator_FormulaPrice(t *testing.T) {
	e := NewEstimator(DefaultHeuristicConfig())

	// Long-haul, no usable recorded price:
	// (15000 + 800*100) * 1.5 * (1 + 0.1*1) = 156750.
	price := e.Estimate(EstimateInput{
		DurationMinutes: 800,
		Stops:           1,
		Airline:         "Emirates",
		Destination:     "Dubai",
	})
	assert.InDelta(t, 156750.0, price, 1e-9)
}

func TestEstimator_UnknownAirlineUsesUnitMultiplier(t *testing.T) {
	e := NewEstimator(DefaultHeuristicConfig())

	// (1800 + 120*12) = 3240 with no multiplier adjustment.
	price := e.Estimate(EstimateInput{
		DurationMinutes: 120,
		Airline:         "Fly Nowhere",
		Destination:     "Ranchi",
	})
	assert.InDelta(t, 3240.0, price, 1e-9)
}

func TestEstimator_ClampsTinyDurations(t *testing.T) {
	e := NewEstimator(DefaultHeuristicConfig())

	// 49 minutes clamps to 60: (1800 + 60*12) * 1.2 = 3024.
	price := e.Estimate(EstimateInput{
		DurationMinutes: 49,
		Airline:         "Vistara",
		Destination:     "Ranchi",
	})
	assert.InDelta(t, 3024.0, price, 1e-9)
}

func TestEstimator_HourNormalization(t *testing.T) {
	e := NewEstimator(DefaultHeuristicConfig())

	// 2.5 reads as hours and becomes 150 minutes:
	// (1800 + 150*12) = 3600.
	price := e.Estimate(EstimateInput{
		DurationMinutes: 2.5,
		Airline:         "Unknown Air",
		Destination:     "Ranchi",
	})
	assert.InDelta(t, 3600.0, price, 1e-9)
}

func TestEstimator_FloorWithRowPerturbation(t *testing.T) {
	e := NewEstimator(DefaultHeuristicConfig())

	// SpiceJet at 0.85: (1800 + 60*12)*0.85 = 2142, below the 2500 floor.
	in := EstimateInput{
		DurationMinutes: 60,
		Airline:         "SpiceJet",
		Destination:     "Ranchi",
	}

	in.Row = 0
	assert.InDelta(t, 2500.0, e.Estimate(in), 1e-9)

	in.Row = 3
	assert.InDelta(t, 2650.0, e.Estimate(in), 1e-9)
}

func TestEstimator_LongHaulFloor(t *testing.T) {
	cfg := DefaultHeuristicConfig()
	e := NewEstimator(cfg)

	// Every long-haul estimate sits at or above the long-haul floor.
	for _, airline := range []string{"IndiGo", "SpiceJet", "Emirates", "Nobody"} {
		price := e.Estimate(EstimateInput{
			DurationMinutes: 721,
			Airline:         airline,
			Destination:     "Ranchi",
		})
		assert.GreaterOrEqual(t, price, cfg.Long.FloorPrice)
	}
}

func TestEstimator_MoreStopsCostMore(t *testing.T) {
	e := NewEstimator(DefaultHeuristicConfig())

	base := EstimateInput{DurationMinutes: 300, Airline: "Air India", Destination: "Ranchi"}
	nonstop := e.Estimate(base)

	base.Stops = 2
	twoStops := e.Estimate(base)
	assert.Greater(t, twoStops, nonstop)
}
