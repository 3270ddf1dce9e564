package pricing

import "strings"

// FallbackIndex is the index returned for category values that were not in
// the fitted vocabulary. Unknown categories must never abort a request.
const FallbackIndex = 0

// CategoricalEncoder maps category values to the stable integer indices the
// trained estimators were fitted with. It is loaded read-only from the
// encoder artifact and has no side effects.
type CategoricalEncoder struct {
	classes map[string]map[string]int
}

// NewCategoricalEncoder builds an encoder from fitted value→index maps,
// keyed by attribute name. Values are matched case-insensitively.
func NewCategoricalEncoder(classes map[string]map[string]int) *CategoricalEncoder {
	normalized := make(map[string]map[string]int, len(classes))
	for attr, values := range classes {
		m := make(map[string]int, len(values))
		for v, idx := range values {
			m[strings.TrimSpace(strings.ToLower(v))] = idx
		}
		normalized[strings.ToLower(attr)] = m
	}
	return &CategoricalEncoder{classes: normalized}
}

// Encode returns the fitted index for value under attribute, or
// FallbackIndex when either the attribute or the value is unknown.
func (e *CategoricalEncoder) Encode(attribute, value string) int {
	values, ok := e.classes[strings.ToLower(attribute)]
	if !ok {
		return FallbackIndex
	}
	idx, ok := values[strings.TrimSpace(strings.ToLower(value))]
	if !ok {
		return FallbackIndex
	}
	return idx
}

// Attributes returns the attribute names the encoder was fitted for.
func (e *CategoricalEncoder) Attributes() []string {
	attrs := make([]string, 0, len(e.classes))
	for a := range e.classes {
		attrs = append(attrs, a)
	}
	return attrs
}
