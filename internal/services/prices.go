package services

import (
	"fmt"

	"github.com/healtrip/backend/internal/catalog"
	"github.com/healtrip/backend/internal/models"
	"github.com/healtrip/backend/pkg/utils"
)

// PriceCurrency is reported with every price prediction.
const PriceCurrency = "INR"

// PredictHotelPrice estimates a nightly rate from the rating, amenities and
// encoded city of a hypothetical hotel.
func (s *RecommendationService) PredictHotelPrice(req models.HotelPriceRequest) (*models.PricePredictionResponse, error) {
	price, err := s.predictPrice(catalog.DomainHotels, map[string]float64{
		"rating":          req.HotelRating,
		"amenities_count": float64(req.AmenitiesCount),
	}, map[string]string{
		"city": req.City,
	})
	if err != nil {
		return nil, err
	}

	return &models.PricePredictionResponse{
		PredictedPrice: price,
		Currency:       PriceCurrency,
		Metadata: map[string]interface{}{
			"city":            catalog.NormalizeCity(req.City),
			"hotel_rating":    req.HotelRating,
			"amenities_count": req.AmenitiesCount,
		},
	}, nil
}

// PredictMentalPrice estimates a session fee for a mental-health session.
func (s *RecommendationService) PredictMentalPrice(req models.MentalPriceRequest) (*models.PricePredictionResponse, error) {
	price, err := s.predictPrice(catalog.DomainMental, map[string]float64{
		"amenities_count": float64(req.AmenitiesCount),
		"topics_count":    float64(req.TopicsCount),
	}, map[string]string{
		"city": req.City,
		"type": req.SessionType,
	})
	if err != nil {
		return nil, err
	}

	return &models.PricePredictionResponse{
		PredictedPrice: price,
		Currency:       PriceCurrency,
		Metadata: map[string]interface{}{
			"city":         catalog.NormalizeCity(req.City),
			"session_type": req.SessionType,
		},
	}, nil
}

// PredictYogaPrice estimates a class fee for a yoga session.
func (s *RecommendationService) PredictYogaPrice(req models.YogaPriceRequest) (*models.PricePredictionResponse, error) {
	price, err := s.predictPrice(catalog.DomainYoga, map[string]float64{
		"amenities_count": float64(req.AmenitiesCount),
	}, map[string]string{
		"city":  req.City,
		"style": req.YogaStyle,
	})
	if err != nil {
		return nil, err
	}

	return &models.PricePredictionResponse{
		PredictedPrice: price,
		Currency:       PriceCurrency,
		Metadata: map[string]interface{}{
			"city":       catalog.NormalizeCity(req.City),
			"yoga_style": req.YogaStyle,
		},
	}, nil
}

// predictPrice assembles the feature vector in the order the fitted model
// declares. Numeric inputs are passed through; categorical inputs go through
// the domain's encoder first. Unknown category values encode to the
// fallback index rather than failing, unknown feature NAMES are a model vs
// service mismatch and do fail.
func (s *RecommendationService) predictPrice(domain string, numeric map[string]float64, categorical map[string]string) (float64, error) {
	bundle, err := s.store.Bundle(domain)
	if err != nil {
		return 0, err
	}
	model, err := bundle.RequirePriceModel()
	if err != nil {
		return 0, err
	}
	encoder, err := bundle.RequireEncoder()
	if err != nil {
		return 0, err
	}

	features := make([]float64, 0, len(model.Features))
	for _, name := range model.Features {
		if v, ok := numeric[name]; ok {
			features = append(features, v)
			continue
		}
		if raw, ok := categorical[name]; ok {
			features = append(features, float64(encoder.Encode(name, raw)))
			continue
		}
		return 0, fmt.Errorf("%s price model wants feature %q which this endpoint does not supply", domain, name)
	}

	price, err := model.Predict(features)
	if err != nil {
		return 0, err
	}
	if price < 0 {
		price = 0
	}
	return utils.Round2(price), nil
}
