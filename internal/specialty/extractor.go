package specialty

import (
	"regexp"
	"strings"
)

// Extraction is the classifier output: a disease label and a confidence
// tier. 0.95 means an explicit pattern-anchored phrase, 0.85 a dictionary
// hit inside the text, 0.0 no match.
type Extraction struct {
	Disease    string
	Confidence float64
}

// UnknownDisease is reported when nothing in the text matches.
const UnknownDisease = "Unknown"

const (
	confidencePattern    = 0.95
	confidenceDictionary = 0.85
)

// anchoredPatterns capture an explicitly stated condition, e.g.
// "Diagnosis: acute bronchitis".
var anchoredPatterns = []*regexp.Regexp{
	regexp.MustCompile(`diagnosis\s*[:\-]\s*([a-z\s]+)`),
	regexp.MustCompile(`impression\s*[:\-]\s*([a-z\s]+)`),
	regexp.MustCompile(`condition\s*[:\-]\s*([a-z\s]+)`),
	regexp.MustCompile(`suffering from\s*([a-z\s]+)`),
}

var punctuation = regexp.MustCompile(`[.,]`)

// Extractor pulls a disease label out of free medical text.
type Extractor struct {
	mapper *Mapper
}

// NewExtractor builds an extractor sharing the mapper's dictionary.
func NewExtractor(mapper *Mapper) *Extractor {
	return &Extractor{mapper: mapper}
}

// Extract scans the text: anchored phrases first, then dictionary
// containment with the longest labels tried first so partial labels never
// shadow full ones.
func (e *Extractor) Extract(text string) Extraction {
	lower := strings.ToLower(text)

	for _, p := range anchoredPatterns {
		match := p.FindStringSubmatch(lower)
		if match == nil {
			continue
		}

		extracted := strings.TrimSpace(match[1])
		if i := strings.IndexByte(extracted, '\n'); i >= 0 {
			extracted = strings.TrimSpace(extracted[:i])
		}
		extracted = strings.TrimSpace(punctuation.ReplaceAllString(extracted, ""))

		if len(extracted) > 3 {
			return Extraction{Disease: titleCase(extracted), Confidence: confidencePattern}
		}
	}

	for _, label := range e.mapper.KnownLabels() {
		if strings.Contains(lower, label) {
			return Extraction{Disease: titleCase(label), Confidence: confidenceDictionary}
		}
	}

	return Extraction{Disease: UnknownDisease, Confidence: 0}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
