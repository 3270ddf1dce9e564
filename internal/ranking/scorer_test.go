package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healtrip/backend/internal/catalog"
)

func hospitalCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.NewCatalog(catalog.DomainHospitals, []catalog.Listing{
		{Row: 0, Name: "Apex Heart Institute", Rating: 4.8, ReviewCount: 1000},
		{Row: 1, Name: "City Cardiac Center", Rating: 4.0, ReviewCount: 500},
		{Row: 2, Name: "Suburban Clinic", Rating: 3.0, ReviewCount: 10},
	})
	require.NoError(t, err)
	return cat
}

func TestWeights_Validate(t *testing.T) {
	assert.NoError(t, HospitalWeights.Validate())
	assert.NoError(t, Weights{Quality: 1}.Validate())

	assert.Error(t, Weights{Quality: 0.5, Popularity: 0.2, Similarity: 0.2}.Validate())
	assert.Error(t, Weights{Quality: 1.5, Popularity: -0.5}.Validate())
}

func TestCompositeScorer_Score(t *testing.T) {
	scorer, err := NewCompositeScorer(hospitalCatalog(t), HospitalWeights)
	require.NoError(t, err)

	cat := hospitalCatalog(t)

	// 0.5*(4.8/5) + 0.3*(1000/1000) + 0.2*0.5 = 0.88
	assert.InDelta(t, 0.88, scorer.Score(cat.Listings[0], 0.5), 1e-9)
	// 0.5*(4.0/5) + 0.3*(500/1000) + 0.2*0 = 0.55
	assert.InDelta(t, 0.55, scorer.Score(cat.Listings[1], 0), 1e-9)
	// 0.5*(3.0/5) + 0.3*(10/1000) + 0.2*1 = 0.503
	assert.InDelta(t, 0.503, scorer.Score(cat.Listings[2], 1), 1e-9)
}

func TestCompositeScorer_OrdersByBlendedSignals(t *testing.T) {
	cat, err := catalog.NewCatalog(catalog.DomainHospitals, []catalog.Listing{
		{Row: 0, Name: "Top Rated", Rating: 5.0, ReviewCount: 100},
		{Row: 1, Name: "Well Reviewed", Rating: 4.0, ReviewCount: 50},
		{Row: 2, Name: "Quiet Clinic", Rating: 3.0, ReviewCount: 10},
	})
	require.NoError(t, err)

	scorer, err := NewCompositeScorer(cat, HospitalWeights)
	require.NoError(t, err)

	sims := []float64{0.2, 0.9, 0.0}
	want := []float64{0.84, 0.73, 0.33}
	for i, l := range cat.Listings {
		assert.InDelta(t, want[i], scorer.Score(l, sims[i]), 1e-9)
	}
}

func TestCompositeScorer_ClampsOutOfRangeSignals(t *testing.T) {
	scorer, err := NewCompositeScorer(hospitalCatalog(t), HospitalWeights)
	require.NoError(t, err)

	overRated := catalog.Listing{Rating: 9.9, ReviewCount: 5000}
	score := scorer.Score(overRated, 1.7)
	assert.LessOrEqual(t, score, 1.0)
}

func TestNewCompositeScorer_EmptyReviewCounts(t *testing.T) {
	cat, err := catalog.NewCatalog(catalog.DomainHospitals, []catalog.Listing{
		{Row: 0, Name: "No Reviews Yet", Rating: 4.0},
	})
	require.NoError(t, err)

	scorer, err := NewCompositeScorer(cat, HospitalWeights)
	require.NoError(t, err)

	// Zero max reviews must not divide by zero.
	assert.InDelta(t, 0.4, scorer.Score(cat.Listings[0], 0), 1e-9)
}

func TestNewCompositeScorer_RejectsBadWeights(t *testing.T) {
	_, err := NewCompositeScorer(hospitalCatalog(t), Weights{Quality: 2})
	assert.Error(t, err)
}
