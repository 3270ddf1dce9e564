package ranking

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// tokenPattern matches terms of two or more word characters, the same shape
// the fitted vocabulary was built from.
var tokenPattern = regexp.MustCompile(`[a-z0-9]{2,}`)

// SparseVector is one row of the term-weighted document matrix. Indices are
// vocabulary columns, values the corresponding weights.
type SparseVector struct {
	Indices []int     `json:"indices"`
	Values  []float64 `json:"values"`
}

// SimilarityIndex holds a fitted term-weighting transform together with the
// precomputed document matrix for one catalog. It is immutable after
// construction: queries are projected into the fitted space and unknown
// terms are ignored, never added.
type SimilarityIndex struct {
	vocabulary map[string]int
	idf        []float64
	rows       []SparseVector
	norms      []float64
}

// NewSimilarityIndex builds the index and enforces the row-alignment
// invariant: the matrix must have exactly one row per catalog listing.
func NewSimilarityIndex(vocabulary map[string]int, idf []float64, rows []SparseVector, catalogLen int) (*SimilarityIndex, error) {
	if len(rows) != catalogLen {
		return nil, fmt.Errorf("similarity matrix has %d rows, catalog has %d listings", len(rows), catalogLen)
	}
	if len(idf) != len(vocabulary) {
		return nil, fmt.Errorf("idf vector has %d weights, vocabulary has %d terms", len(idf), len(vocabulary))
	}
	for term, col := range vocabulary {
		if col < 0 || col >= len(idf) {
			return nil, fmt.Errorf("vocabulary term %q maps to column %d outside [0,%d)", term, col, len(idf))
		}
	}

	norms := make([]float64, len(rows))
	for i, row := range rows {
		var sum float64
		for _, v := range row.Values {
			sum += v * v
		}
		norms[i] = math.Sqrt(sum)
	}

	return &SimilarityIndex{
		vocabulary: vocabulary,
		idf:        idf,
		rows:       rows,
		norms:      norms,
	}, nil
}

// Rows returns the number of document rows in the matrix.
func (ix *SimilarityIndex) Rows() int {
	return len(ix.rows)
}

// Tokenize lowercases text and extracts vocabulary-shaped terms.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Score computes the cosine similarity between the query text and each of
// the given catalog rows. The result is aligned positionally with rows, so
// similarity values can be re-attached to listings after filtering. The
// precomputed matrix is sliced by index, never recomputed: it is only valid
// in catalog row order.
func (ix *SimilarityIndex) Score(queryText string, rows []int) []float64 {
	scores := make([]float64, len(rows))

	query := ix.project(queryText)
	if len(query) == 0 {
		return scores
	}

	var queryNorm float64
	for _, w := range query {
		queryNorm += w * w
	}
	queryNorm = math.Sqrt(queryNorm)

	for i, row := range rows {
		if row < 0 || row >= len(ix.rows) {
			continue
		}
		if ix.norms[row] == 0 {
			continue
		}

		var dot float64
		doc := ix.rows[row]
		for j, col := range doc.Indices {
			if w, ok := query[col]; ok {
				dot += w * doc.Values[j]
			}
		}

		s := dot / (queryNorm * ix.norms[row])
		// Guard against float drift past the cosine bound.
		if s > 1 {
			s = 1
		}
		scores[i] = s
	}

	return scores
}

// project maps query text into the fitted vector space: term frequency times
// inverse document frequency, restricted to the fitted vocabulary.
func (ix *SimilarityIndex) project(queryText string) map[int]float64 {
	counts := make(map[int]int)
	for _, term := range Tokenize(queryText) {
		if col, ok := ix.vocabulary[term]; ok {
			counts[col]++
		}
	}

	weights := make(map[int]float64, len(counts))
	for col, tf := range counts {
		weights[col] = float64(tf) * ix.idf[col]
	}
	return weights
}
