package ranking

import (
	"sort"
	"strings"

	"github.com/healtrip/backend/internal/catalog"
)

// Query carries the free text and hard filters of one ranking request.
// Nil optional filters mean "no constraint", never zero.
type Query struct {
	Text      string
	Budget    *float64
	MinRating *float64
	Category  string // required category/specialty, case-insensitive
	City      string // city filter, alias-aware
}

// SortMode selects how candidates are ordered after scoring.
type SortMode int

const (
	// SortComposite orders by the weighted composite score.
	SortComposite SortMode = iota
	// SortSimilarityThenPrice orders by text similarity, cheapest first on
	// ties.
	SortSimilarityThenPrice
	// SortRatingThenPrice orders by rating, cheapest first on ties.
	SortRatingThenPrice
	// SortNone keeps catalog row order.
	SortNone
)

// PriceFunc resolves the price reported for a listing. Domains with a
// heuristic estimator synthesize one here; others report the recorded price.
type PriceFunc func(l catalog.Listing) float64

// ScoredResult is one ranked candidate.
type ScoredResult struct {
	Listing    catalog.Listing
	Score      float64
	Similarity float64
	Price      float64
}

// Ranker filters the catalog, attaches
// similarity and composite signals, sorts and truncates. It is a pure
// computation over the immutable catalog and artifacts.
type Ranker struct {
	cat    *catalog.Catalog
	index  *SimilarityIndex
	scorer *CompositeScorer
	price  PriceFunc
}

// NewRanker wires a ranker for one domain. scorer may be nil for domains
// that never use the composite mode; price may be nil to report recorded
// prices.
func NewRanker(cat *catalog.Catalog, index *SimilarityIndex, scorer *CompositeScorer, price PriceFunc) *Ranker {
	return &Ranker{cat: cat, index: index, scorer: scorer, price: price}
}

// Rank runs the full pipeline and returns at most k results. An empty
// candidate set is an empty result, not an error.
func (r *Ranker) Rank(q Query, mode SortMode, k int) []ScoredResult {
	rows := r.filter(q)
	if len(rows) == 0 {
		return []ScoredResult{}
	}

	sims := make([]float64, len(rows))
	if q.Text != "" && r.index != nil {
		sims = r.index.Score(q.Text, rows)
	}

	results := make([]ScoredResult, len(rows))
	for i, row := range rows {
		l := r.cat.Listings[row]

		price := l.Price
		if r.price != nil {
			price = r.price(l)
		}

		res := ScoredResult{
			Listing:    l,
			Similarity: sims[i],
			Price:      price,
		}

		switch mode {
		case SortComposite:
			if r.scorer != nil {
				res.Score = r.scorer.Score(l, sims[i])
			}
		case SortSimilarityThenPrice:
			res.Score = sims[i]
		case SortRatingThenPrice:
			res.Score = l.Rating
		}
		results[i] = res
	}

	// Stable sort keeps catalog row order on ties.
	switch mode {
	case SortComposite:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Score > results[j].Score
		})
	case SortSimilarityThenPrice, SortRatingThenPrice:
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].Score != results[j].Score {
				return results[i].Score > results[j].Score
			}
			return results[i].Price < results[j].Price
		})
	}

	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results
}

// filter applies the hard constraints and returns the surviving catalog row
// indices in catalog order.
func (r *Ranker) filter(q Query) []int {
	category := strings.ToLower(strings.TrimSpace(q.Category))

	var rows []int
	for _, l := range r.cat.Listings {
		if category != "" && strings.ToLower(l.Category) != category {
			continue
		}
		if q.City != "" && !catalog.SameCity(l.City, q.City) {
			continue
		}
		if q.Budget != nil && l.Price > *q.Budget {
			continue
		}
		if q.MinRating != nil && l.Rating < *q.MinRating {
			continue
		}
		rows = append(rows, l.Row)
	}
	return rows
}
