package ranking

import (
	"fmt"
	"math"

	"github.com/healtrip/backend/internal/catalog"
)

// Weights are the fixed per-domain blend of the composite score. They must
// sum to 1 so the final score stays in [0,1].
type Weights struct {
	Quality    float64 // normalized rating
	Popularity float64 // normalized review volume
	Similarity float64 // text similarity, already in [0,1]
}

// HospitalWeights is the blend used for hospital ranking.
var HospitalWeights = Weights{Quality: 0.5, Popularity: 0.3, Similarity: 0.2}

// Validate checks the weights form a convex combination.
func (w Weights) Validate() error {
	if w.Quality < 0 || w.Popularity < 0 || w.Similarity < 0 {
		return fmt.Errorf("weights must be non-negative: %+v", w)
	}
	if sum := w.Quality + w.Popularity + w.Similarity; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("weights must sum to 1, got %v", sum)
	}
	return nil
}

// CompositeScorer combines independently normalized signals into one score
// per candidate. Normalizers are taken from the full catalog at construction
// so scores remain comparable across differently filtered queries.
type CompositeScorer struct {
	weights    Weights
	maxRating  float64
	maxReviews float64
}

// MaxRatingScale is the rating ceiling of the source datasets.
const MaxRatingScale = 5.0

// NewCompositeScorer builds a scorer for one catalog.
func NewCompositeScorer(cat *catalog.Catalog, weights Weights) (*CompositeScorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	maxReviews := float64(cat.MaxReviewCount())
	if maxReviews == 0 {
		maxReviews = 1
	}

	return &CompositeScorer{
		weights:    weights,
		maxRating:  MaxRatingScale,
		maxReviews: maxReviews,
	}, nil
}

// Score returns the weighted composite in [0,1] for one listing and its
// similarity signal.
func (s *CompositeScorer) Score(l catalog.Listing, similarity float64) float64 {
	quality := clamp01(l.Rating / s.maxRating)
	popularity := clamp01(float64(l.ReviewCount) / s.maxReviews)
	sim := clamp01(similarity)

	return s.weights.Quality*quality + s.weights.Popularity*popularity + s.weights.Similarity*sim
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
