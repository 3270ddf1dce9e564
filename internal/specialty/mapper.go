package specialty

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultSpecialty is returned when no dictionary entry clears the fuzzy
// threshold.
const DefaultSpecialty = "General"

// FuzzyThreshold is the minimum normalized similarity for accepting a fuzzy
// dictionary match.
const FuzzyThreshold = 0.6

// Entry pairs a specialty with the typical treatment cost carried alongside
// it for downstream budget defaults.
type Entry struct {
	Specialty   string
	TypicalCost float64
}

// defaultEntry is what unmapped labels resolve to.
var defaultEntry = Entry{Specialty: DefaultSpecialty, TypicalCost: 50000}

// diseaseEntries is the fitted label→specialty dictionary.
var diseaseEntries = map[string]Entry{
	// Cardiology
	"coronary artery disease":     {Specialty: "Cardiology", TypicalCost: 280000},
	"myocardial infarction":       {Specialty: "Cardiology", TypicalCost: 320000},
	"heart attack":                {Specialty: "Cardiology", TypicalCost: 320000},
	"arrhythmia":                  {Specialty: "Cardiology", TypicalCost: 180000},
	"heart failure":               {Specialty: "Cardiology", TypicalCost: 300000},
	"atrial fibrillation":         {Specialty: "Cardiology", TypicalCost: 220000},
	"hypertension":                {Specialty: "Cardiology", TypicalCost: 40000},
	"hypertrophic cardiomyopathy": {Specialty: "Cardiology", TypicalCost: 350000},

	// Neurology
	"stroke":              {Specialty: "Neurology", TypicalCost: 270000},
	"epilepsy":            {Specialty: "Neurology", TypicalCost: 90000},
	"migraine":            {Specialty: "Neurology", TypicalCost: 25000},
	"parkinson's disease": {Specialty: "Neurology", TypicalCost: 150000},
	"alzheimer's disease": {Specialty: "Neurology", TypicalCost: 160000},
	"multiple sclerosis":  {Specialty: "Neurology", TypicalCost: 240000},
	"brain tumor":         {Specialty: "Neurology", TypicalCost: 450000},

	// Oncology
	"breast cancer":     {Specialty: "Oncology", TypicalCost: 400000},
	"lung cancer":       {Specialty: "Oncology", TypicalCost: 450000},
	"leukemia":          {Specialty: "Oncology", TypicalCost: 500000},
	"lymphoma":          {Specialty: "Oncology", TypicalCost: 420000},
	"prostate cancer":   {Specialty: "Oncology", TypicalCost: 380000},
	"colorectal cancer": {Specialty: "Oncology", TypicalCost: 390000},
	"skin cancer":       {Specialty: "Oncology", TypicalCost: 200000},

	// Gastroenterology
	"gerd":                     {Specialty: "Gastroenterology", TypicalCost: 35000},
	"acid reflux":              {Specialty: "Gastroenterology", TypicalCost: 30000},
	"ibs":                      {Specialty: "Gastroenterology", TypicalCost: 40000},
	"irritable bowel syndrome": {Specialty: "Gastroenterology", TypicalCost: 40000},
	"crohn's disease":          {Specialty: "Gastroenterology", TypicalCost: 180000},
	"ulcerative colitis":       {Specialty: "Gastroenterology", TypicalCost: 170000},
	"liver cirrhosis":          {Specialty: "Gastroenterology", TypicalCost: 350000},
	"hepatitis":                {Specialty: "Gastroenterology", TypicalCost: 120000},

	// Orthopedics
	"osteoarthritis":       {Specialty: "Orthopedics", TypicalCost: 150000},
	"rheumatoid arthritis": {Specialty: "Orthopedics", TypicalCost: 130000},
	"fracture":             {Specialty: "Orthopedics", TypicalCost: 80000},
	"scoliosis":            {Specialty: "Orthopedics", TypicalCost: 400000},
	"herniated disc":       {Specialty: "Orthopedics", TypicalCost: 250000},
	"acl tear":             {Specialty: "Orthopedics", TypicalCost: 180000},
	"osteoporosis":         {Specialty: "Orthopedics", TypicalCost: 60000},

	// Nephrology
	"kidney failure":         {Specialty: "Nephrology", TypicalCost: 350000},
	"chronic kidney disease": {Specialty: "Nephrology", TypicalCost: 300000},
	"kidney stones":          {Specialty: "Nephrology", TypicalCost: 90000},
	"renal failure":          {Specialty: "Nephrology", TypicalCost: 350000},
	"glomerulonephritis":     {Specialty: "Nephrology", TypicalCost: 200000},

	// Endocrinology
	"diabetes":           {Specialty: "Endocrinology", TypicalCost: 50000},
	"hypothyroidism":     {Specialty: "Endocrinology", TypicalCost: 25000},
	"hyperthyroidism":    {Specialty: "Endocrinology", TypicalCost: 35000},
	"pcos":               {Specialty: "Endocrinology", TypicalCost: 45000},
	"pcod":               {Specialty: "Endocrinology", TypicalCost: 45000},
	"addison's disease":  {Specialty: "Endocrinology", TypicalCost: 80000},
	"cushing's syndrome": {Specialty: "Endocrinology", TypicalCost: 150000},

	// Pediatrics
	"chickenpox": {Specialty: "Pediatrics", TypicalCost: 15000},
	"measles":    {Specialty: "Pediatrics", TypicalCost: 18000},
	"mumps":      {Specialty: "Pediatrics", TypicalCost: 15000},
	"asthma":     {Specialty: "Pediatrics", TypicalCost: 30000},
	"pneumonia":  {Specialty: "Pediatrics", TypicalCost: 70000},
	"adhd":       {Specialty: "Pediatrics", TypicalCost: 40000},
}

// Mapper resolves free-text disease labels to a canonical specialty: exact
// match first, then fuzzy, else DefaultSpecialty.
type Mapper struct {
	entries   map[string]Entry
	threshold float64

	// keys sorted by descending length so containment checks prefer the
	// longest label ("lung cancer" before "cancer"-like partials).
	keysByLength []string
}

// NewMapper builds the mapper over the built-in dictionary.
func NewMapper() *Mapper {
	return NewMapperWith(diseaseEntries, FuzzyThreshold)
}

// NewMapperWith builds a mapper over a caller-provided dictionary.
func NewMapperWith(entries map[string]Entry, threshold float64) *Mapper {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	return &Mapper{
		entries:      entries,
		threshold:    threshold,
		keysByLength: keys,
	}
}

// Map resolves a label. Step 1 is a case-insensitive exact lookup; step 2
// the best fuzzy candidate, accepted only above the threshold. Longer keys
// win similarity ties.
func (m *Mapper) Map(label string) Entry {
	lower := strings.TrimSpace(strings.ToLower(label))
	if lower == "" {
		return defaultEntry
	}

	if e, ok := m.entries[lower]; ok {
		return e
	}

	bestKey := ""
	bestScore := 0.0
	for _, key := range m.keysByLength {
		s := similarity(lower, key)
		if s > bestScore {
			bestScore = s
			bestKey = key
		}
	}

	if bestKey != "" && bestScore >= m.threshold {
		return m.entries[bestKey]
	}
	return defaultEntry
}

// KnownLabels returns dictionary keys by descending length, the order used
// for substring containment during extraction.
func (m *Mapper) KnownLabels() []string {
	return m.keysByLength
}

// similarity is a normalized edit-distance score in [0,1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if lb := len([]rune(b)); lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 0
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}
