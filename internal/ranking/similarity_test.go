package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fitTestIndex(t *testing.T, documents []string) *SimilarityIndex {
	t.Helper()
	vocabulary, idf, rows := FitSimilarityIndex(documents)
	index, err := NewSimilarityIndex(vocabulary, idf, rows, len(documents))
	require.NoError(t, err)
	return index
}

func TestSimilarityIndex_ScoreBounds(t *testing.T) {
	index := fitTestIndex(t, []string{
		"cardiac surgery and heart care",
		"orthopedic joint replacement clinic",
		"general medicine and family care",
	})

	scores := index.Score("heart surgery cardiac", []int{0, 1, 2})
	require.Len(t, scores, 3)

	for _, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}

	// The cardiac document should win for a cardiac query.
	assert.Greater(t, scores[0], scores[1])
	assert.Greater(t, scores[0], scores[2])
}

func TestSimilarityIndex_IdenticalTextScoresOne(t *testing.T) {
	doc := "luxury beach resort with pool and spa"
	index := fitTestIndex(t, []string{doc, "budget city hostel"})

	scores := index.Score(doc, []int{0, 1})
	assert.InDelta(t, 1.0, scores[0], 1e-9)
}

func TestSimilarityIndex_NoOverlapScoresZero(t *testing.T) {
	index := fitTestIndex(t, []string{
		"yoga meditation retreat",
		"vinyasa flow studio",
	})

	scores := index.Score("completely unrelated query terms", []int{0, 1})
	assert.Equal(t, []float64{0, 0}, scores)
}

func TestSimilarityIndex_Deterministic(t *testing.T) {
	index := fitTestIndex(t, []string{
		"anxiety therapy session",
		"depression counseling group",
		"stress management workshop",
	})

	first := index.Score("anxiety and stress", []int{0, 1, 2})
	second := index.Score("anxiety and stress", []int{0, 1, 2})
	assert.Equal(t, first, second)
}

func TestSimilarityIndex_SubsetKeepsRowAlignment(t *testing.T) {
	index := fitTestIndex(t, []string{
		"cardiac care",
		"joint replacement",
		"cardiac rehabilitation",
		"skin clinic",
	})

	full := index.Score("cardiac", []int{0, 1, 2, 3})
	subset := index.Score("cardiac", []int{2, 0})

	assert.Equal(t, full[2], subset[0])
	assert.Equal(t, full[0], subset[1])
}

func TestNewSimilarityIndex_RowCountMismatch(t *testing.T) {
	vocabulary, idf, rows := FitSimilarityIndex([]string{"one doc", "two doc"})

	_, err := NewSimilarityIndex(vocabulary, idf, rows, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rows")
}

func TestNewSimilarityIndex_IDFLengthMismatch(t *testing.T) {
	vocabulary, idf, rows := FitSimilarityIndex([]string{"one doc", "two doc"})

	_, err := NewSimilarityIndex(vocabulary, idf[:1], rows, 2)
	require.Error(t, err)
}

func TestTokenize(t *testing.T) {
	terms := Tokenize("Heart-Attack in 37, ICU!")
	assert.Equal(t, []string{"heart", "attack", "in", "37", "icu"}, terms)

	assert.Empty(t, Tokenize("a b c"))
}
