package pricing

import "fmt"

// PriceModel is a trained regression artifact: a linear model over encoder
// indices concatenated with numeric features. Features documents the fixed
// input order; the model is fitted offline and only applied here.
type PriceModel struct {
	Features     []string  `json:"features"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// Validate checks the coefficient vector matches the declared feature order.
func (m *PriceModel) Validate() error {
	if len(m.Features) == 0 {
		return fmt.Errorf("price model declares no features")
	}
	if len(m.Coefficients) != len(m.Features) {
		return fmt.Errorf("price model has %d coefficients for %d features", len(m.Coefficients), len(m.Features))
	}
	return nil
}

// Predict applies the model to a feature vector assembled in the declared
// order.
func (m *PriceModel) Predict(features []float64) (float64, error) {
	if len(features) != len(m.Coefficients) {
		return 0, fmt.Errorf("expected %d features (%v), got %d", len(m.Coefficients), m.Features, len(features))
	}

	price := m.Intercept
	for i, f := range features {
		price += m.Coefficients[i] * f
	}
	return price, nil
}
