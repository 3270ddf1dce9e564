package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceModel_Predict(t *testing.T) {
	model := PriceModel{
		Features:     []string{"rating", "amenities_count", "city"},
		Coefficients: []float64{1200, 150, -80},
		Intercept:    2000,
	}
	require.NoError(t, model.Validate())

	// 2000 + 4.5*1200 + 6*150 + 2*(-80) = 8140.
	price, err := model.Predict([]float64{4.5, 6, 2})
	require.NoError(t, err)
	assert.InDelta(t, 8140.0, price, 1e-9)
}

func TestPriceModel_PredictRejectsWrongArity(t *testing.T) {
	model := PriceModel{
		Features:     []string{"rating", "city"},
		Coefficients: []float64{1, 2},
	}

	_, err := model.Predict([]float64{4.5})
	assert.Error(t, err)
}

func TestPriceModel_Validate(t *testing.T) {
	assert.Error(t, (&PriceModel{}).Validate())
	assert.Error(t, (&PriceModel{
		Features:     []string{"a", "b"},
		Coefficients: []float64{1},
	}).Validate())
}
