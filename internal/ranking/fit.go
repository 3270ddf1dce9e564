package ranking

import (
	"math"
	"sort"
)

// FitSimilarityIndex builds the term-weighting transform and document matrix
// from raw catalog texts. This is the offline collaborator side of the
// contract: the server only ever loads the fitted artifact.
//
// Weights follow the standard smoothed scheme: idf = ln((1+n)/(1+df)) + 1,
// rows l2-normalized.
func FitSimilarityIndex(documents []string) (map[string]int, []float64, []SparseVector) {
	// Document frequency per term.
	df := make(map[string]int)
	tokenized := make([][]string, len(documents))
	for i, doc := range documents {
		terms := Tokenize(doc)
		tokenized[i] = terms

		seen := make(map[string]bool, len(terms))
		for _, t := range terms {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	// Stable vocabulary ordering.
	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(documents))
	for col, t := range terms {
		vocabulary[t] = col
		idf[col] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	rows := make([]SparseVector, len(documents))
	for i, docTerms := range tokenized {
		counts := make(map[int]int)
		for _, t := range docTerms {
			counts[vocabulary[t]]++
		}

		cols := make([]int, 0, len(counts))
		for col := range counts {
			cols = append(cols, col)
		}
		sort.Ints(cols)

		row := SparseVector{
			Indices: cols,
			Values:  make([]float64, len(cols)),
		}
		var norm float64
		for j, col := range cols {
			w := float64(counts[col]) * idf[col]
			row.Values[j] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range row.Values {
				row.Values[j] /= norm
			}
		}
		rows[i] = row
	}

	return vocabulary, idf, rows
}
