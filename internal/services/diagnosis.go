package services

import (
	"github.com/healtrip/backend/internal/models"
)

// Classify extracts the most likely disease from a diagnosis note and maps
// it to a hospital specialty with its typical treatment cost.
func (s *RecommendationService) Classify(text string) models.ClassifyResponse {
	extraction := s.extractor.Extract(text)
	entry := s.mapper.Map(extraction.Disease)

	return models.ClassifyResponse{
		Disease:     extraction.Disease,
		Specialty:   entry.Specialty,
		TypicalCost: entry.TypicalCost,
		Confidence:  extraction.Confidence,
	}
}

// PredictAll chains extraction, specialty mapping and hospital ranking into
// one call: diagnosis text in, the specialty's top hospitals out.
func (s *RecommendationService) PredictAll(text string, k int) (*models.PredictAllResponse, error) {
	extraction := s.extractor.Extract(text)

	specialty, hospitals, err := s.TopHospitals(extraction.Disease, k)
	if err != nil {
		return nil, err
	}

	return &models.PredictAllResponse{
		Disease:      extraction.Disease,
		Specialty:    specialty,
		Confidence:   extraction.Confidence,
		TopHospitals: hospitals,
	}, nil
}
