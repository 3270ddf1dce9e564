package specialty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractor_AnchoredPattern(t *testing.T) {
	e := NewExtractor(NewMapper())

	for _, text := range []string{
		"Diagnosis: acute bronchitis. Prescribed rest.",
		"Clinical impression: acute bronchitis",
		"Condition - acute bronchitis",
		"Patient has been suffering from acute bronchitis. Follow up in a week.",
	} {
		got := e.Extract(text)
		assert.Equal(t, "Acute Bronchitis", got.Disease, text)
		assert.Equal(t, 0.95, got.Confidence, text)
	}
}

func TestExtractor_DictionaryContainment(t *testing.T) {
	e := NewExtractor(NewMapper())

	got := e.Extract("Patient reports chest pain consistent with heart attack, stable now.")
	assert.Equal(t, "Heart Attack", got.Disease)
	assert.Equal(t, 0.85, got.Confidence)
}

func TestExtractor_LongestLabelWins(t *testing.T) {
	e := NewExtractor(NewMapper())

	// "chronic kidney disease" contains no shorter label that should
	// shadow it.
	got := e.Extract("History of chronic kidney disease since 2019")
	assert.Equal(t, "Chronic Kidney Disease", got.Disease)
}

func TestExtractor_NoMatch(t *testing.T) {
	e := NewExtractor(NewMapper())

	got := e.Extract("Annual checkup, all vitals normal.")
	assert.Equal(t, UnknownDisease, got.Disease)
	assert.Equal(t, 0.0, got.Confidence)
}

func TestExtractor_ShortAnchoredCaptureFallsThrough(t *testing.T) {
	e := NewExtractor(NewMapper())

	// A capture of three characters or fewer is noise; the dictionary
	// pass still finds the real label.
	got := e.Extract("Diagnosis: na. Also treating patient's migraine episodes.")
	assert.Equal(t, "Migraine", got.Disease)
	assert.Equal(t, 0.85, got.Confidence)
}
