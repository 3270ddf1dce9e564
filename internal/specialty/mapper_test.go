package specialty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapper_ExactMatch(t *testing.T) {
	m := NewMapper()

	entry := m.Map("heart attack")
	assert.Equal(t, "Cardiology", entry.Specialty)
	assert.Equal(t, 320000.0, entry.TypicalCost)

	// Case and surrounding whitespace are irrelevant.
	assert.Equal(t, "Neurology", m.Map("  STROKE ").Specialty)
	assert.Equal(t, "Oncology", m.Map("Lung Cancer").Specialty)
}

func TestMapper_FuzzyMatch(t *testing.T) {
	m := NewMapper()

	// One edit away from "heart attack".
	assert.Equal(t, "Cardiology", m.Map("hart attack").Specialty)
	// One substitution away from "diabetes".
	assert.Equal(t, "Endocrinology", m.Map("diabetis").Specialty)
}

func TestMapper_UnknownFallsBackToGeneral(t *testing.T) {
	m := NewMapper()

	entry := m.Map("xyzzy")
	assert.Equal(t, DefaultSpecialty, entry.Specialty)
	assert.Equal(t, 50000.0, entry.TypicalCost)

	assert.Equal(t, DefaultSpecialty, m.Map("").Specialty)
}

func TestMapper_KnownLabelsLongestFirst(t *testing.T) {
	m := NewMapper()

	labels := m.KnownLabels()
	for i := 1; i < len(labels); i++ {
		assert.GreaterOrEqual(t, len(labels[i-1]), len(labels[i]))
	}
}

func TestMapperWith_CustomThreshold(t *testing.T) {
	entries := map[string]Entry{
		"asthma": {Specialty: "Pediatrics", TypicalCost: 30000},
	}

	strict := NewMapperWith(entries, 0.95)
	assert.Equal(t, DefaultSpecialty, strict.Map("astma").Specialty)

	loose := NewMapperWith(entries, 0.6)
	assert.Equal(t, "Pediatrics", loose.Map("astma").Specialty)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("gerd", "gerd"))
	assert.InDelta(t, 0.75, similarity("gerd", "ger"), 1e-9)
}
