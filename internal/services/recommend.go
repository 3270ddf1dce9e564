package services

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/healtrip/backend/internal/artifacts"
	"github.com/healtrip/backend/internal/catalog"
	"github.com/healtrip/backend/internal/models"
	"github.com/healtrip/backend/internal/pricing"
	"github.com/healtrip/backend/internal/ranking"
	"github.com/healtrip/backend/internal/specialty"
	"github.com/healtrip/backend/pkg/utils"
)

// Default result counts per domain.
const (
	DefaultFlightResults   = 10
	DefaultHotelResults    = 20
	DefaultHospitalResults = 5
	DefaultWellnessResults = 10
	CityListingResults     = 20
)

// RecommendationService hosts every catalog domain over the shared ranking
// and pricing core. All state is read-only after construction.
type RecommendationService struct {
	store     *artifacts.Store
	estimator *pricing.Estimator
	mapper    *specialty.Mapper
	extractor *specialty.Extractor
	logger    *logrus.Logger

	// rankers and scorers are built once per loaded domain at startup.
	rankers map[string]*ranking.Ranker
}

// NewRecommendationService builds the rankers for every loaded domain.
// Domains without artifacts simply have no ranker and answer unavailable.
func NewRecommendationService(store *artifacts.Store, logger *logrus.Logger) (*RecommendationService, error) {
	mapper := specialty.NewMapper()

	s := &RecommendationService{
		store:     store,
		estimator: pricing.NewEstimator(pricing.DefaultHeuristicConfig()),
		mapper:    mapper,
		extractor: specialty.NewExtractor(mapper),
		logger:    logger,
		rankers:   make(map[string]*ranking.Ranker),
	}

	for _, domain := range store.Domains() {
		bundle, err := store.Bundle(domain)
		if err != nil {
			return nil, err
		}

		var scorer *ranking.CompositeScorer
		if domain == catalog.DomainHospitals {
			scorer, err = ranking.NewCompositeScorer(bundle.Catalog, ranking.HospitalWeights)
			if err != nil {
				return nil, fmt.Errorf("building %s scorer: %w", domain, err)
			}
		}

		var price ranking.PriceFunc
		if domain == catalog.DomainFlights {
			price = s.estimateFlightPrice
		}

		s.rankers[domain] = ranking.NewRanker(bundle.Catalog, bundle.Index, scorer, price)
	}

	return s, nil
}

func (s *RecommendationService) ranker(domain string) (*ranking.Ranker, error) {
	r, ok := s.rankers[domain]
	if !ok {
		return nil, fmt.Errorf("%w: %s", artifacts.ErrArtifactUnavailable, domain)
	}
	return r, nil
}

func (s *RecommendationService) estimateFlightPrice(l catalog.Listing) float64 {
	return s.estimator.Estimate(pricing.EstimateInput{
		DurationMinutes: float64(l.DurationMinutes),
		Stops:           l.Stops,
		Airline:         l.Category,
		Destination:     l.Destination,
		RecordedPrice:   l.Price,
		Row:             l.Row,
	})
}

// RecommendFlights prices and returns flights, filtered to the requested
// route when the catalog rows carry one.
func (s *RecommendationService) RecommendFlights(origin, destination string) ([]models.FlightResult, error) {
	r, err := s.ranker(catalog.DomainFlights)
	if err != nil {
		return nil, err
	}

	results := r.Rank(ranking.Query{}, ranking.SortNone, 0)

	// Flights carry the route in Origin/Destination, not City, so the
	// route filter lives here instead of the generic query filter.
	// Destination is matched as a substring: catalog rows carry
	// "City, Country" while requests usually name just the city.
	destLower := strings.ToLower(strings.TrimSpace(destination))
	out := make([]models.FlightResult, 0, DefaultFlightResults)
	for _, res := range results {
		if origin != "" && res.Listing.Origin != "" && !catalog.SameCity(res.Listing.Origin, origin) {
			continue
		}
		if destLower != "" && res.Listing.Destination != "" && !strings.Contains(strings.ToLower(res.Listing.Destination), destLower) {
			continue
		}

		flightOrigin := res.Listing.Origin
		if flightOrigin == "" {
			flightOrigin = origin
		}
		flightDest := res.Listing.Destination
		if flightDest == "" {
			flightDest = destination
		}

		out = append(out, models.FlightResult{
			Airline:         res.Listing.Category,
			Origin:          flightOrigin,
			Destination:     flightDest,
			Duration:        formatDuration(res.Listing.DurationMinutes),
			DurationMinutes: res.Listing.DurationMinutes,
			Stops:           res.Listing.Stops,
			Price:           utils.Round2(res.Price),
		})
		if len(out) == DefaultFlightResults {
			break
		}
	}

	// Route filters that match nothing fall back to the unfiltered catalog
	// so the caller always sees priced options.
	if len(out) == 0 {
		for _, res := range r.Rank(ranking.Query{}, ranking.SortNone, DefaultFlightResults) {
			out = append(out, models.FlightResult{
				Airline:         res.Listing.Category,
				Origin:          orDefault(res.Listing.Origin, origin),
				Destination:     orDefault(res.Listing.Destination, destination),
				Duration:        formatDuration(res.Listing.DurationMinutes),
				DurationMinutes: res.Listing.DurationMinutes,
				Stops:           res.Listing.Stops,
				Price:           utils.Round2(res.Price),
			})
		}
	}

	return out, nil
}

// RecommendHotels filters by location, budget and stars, then sorts by text
// similarity when a free-text query is present, otherwise by rating then
// price.
func (s *RecommendationService) RecommendHotels(location string, budget, stars *float64, query string) ([]models.HotelResult, error) {
	r, err := s.ranker(catalog.DomainHotels)
	if err != nil {
		return nil, err
	}

	mode := ranking.SortRatingThenPrice
	text := ""
	if query != "" {
		mode = ranking.SortSimilarityThenPrice
		text = query + " " + catalog.NormalizeCity(location)
	}

	q := ranking.Query{
		Text:      text,
		City:      location,
		Budget:    budget,
		MinRating: stars,
	}

	results := r.Rank(q, mode, DefaultHotelResults)
	out := make([]models.HotelResult, len(results))
	for i, res := range results {
		out[i] = models.HotelResult{
			Name:           res.Listing.Name,
			City:           res.Listing.City,
			Price:          utils.Round2(res.Price),
			Rating:         res.Listing.Rating,
			AmenitiesCount: res.Listing.AmenitiesCount,
			Similarity:     utils.Round2(res.Similarity),
		}
	}
	return out, nil
}

// TopHospitals maps the disease to a specialty and ranks the specialty's
// hospitals by the weighted composite score.
func (s *RecommendationService) TopHospitals(disease string, k int) (string, []models.HospitalResult, error) {
	r, err := s.ranker(catalog.DomainHospitals)
	if err != nil {
		return "", nil, err
	}

	entry := s.mapper.Map(disease)
	if k <= 0 {
		k = DefaultHospitalResults
	}

	q := ranking.Query{
		Text:     disease,
		Category: entry.Specialty,
	}

	results := r.Rank(q, ranking.SortComposite, k)
	out := make([]models.HospitalResult, len(results))
	for i, res := range results {
		out[i] = models.HospitalResult{
			Name:       res.Listing.Name,
			Rating:     res.Listing.Rating,
			City:       res.Listing.City,
			Summary:    res.Listing.Text,
			MatchScore: utils.Round2(res.Score),
		}
	}
	return entry.Specialty, out, nil
}

// HospitalsByCity lists a city's hospitals sorted by rating. The reported
// score is the normalized rating.
func (s *RecommendationService) HospitalsByCity(city string) ([]models.HospitalResult, error) {
	r, err := s.ranker(catalog.DomainHospitals)
	if err != nil {
		return nil, err
	}

	q := ranking.Query{City: city}
	results := r.Rank(q, ranking.SortRatingThenPrice, CityListingResults)

	out := make([]models.HospitalResult, len(results))
	for i, res := range results {
		out[i] = models.HospitalResult{
			Name:       res.Listing.Name,
			Rating:     res.Listing.Rating,
			City:       res.Listing.City,
			Summary:    res.Listing.Text,
			MatchScore: utils.Round2(res.Listing.Rating / ranking.MaxRatingScale),
		}
	}
	return out, nil
}

// RecommendWellness ranks mental-health or yoga sessions by similarity to
// "{city} {focus}", cheapest first on ties, within budget.
func (s *RecommendationService) RecommendWellness(domain, city, focus string, budget *float64) ([]models.WellnessResult, error) {
	if domain != catalog.DomainMental && domain != catalog.DomainYoga {
		return nil, fmt.Errorf("unknown wellness domain: %s", domain)
	}

	r, err := s.ranker(domain)
	if err != nil {
		return nil, err
	}

	q := ranking.Query{
		Text:   city + " " + focus,
		Budget: budget,
	}

	results := r.Rank(q, ranking.SortSimilarityThenPrice, DefaultWellnessResults)
	out := make([]models.WellnessResult, len(results))
	for i, res := range results {
		out[i] = models.WellnessResult{
			Name:       res.Listing.Name,
			City:       res.Listing.City,
			Category:   res.Listing.Category,
			Cluster:    res.Listing.Cluster,
			Price:      utils.Round2(res.Price),
			Similarity: utils.Round2(res.Similarity),
		}
	}
	return out, nil
}

// YogaClusterInfo resolves a yoga center to its training cluster.
func (s *RecommendationService) YogaClusterInfo(center string) (*models.ClusterInfoResponse, error) {
	bundle, err := s.store.Bundle(catalog.DomainYoga)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(center))
	for _, l := range bundle.Catalog.Listings {
		if strings.Contains(strings.ToLower(l.Name), needle) {
			return &models.ClusterInfoResponse{Center: l.Name, Cluster: l.Cluster}, nil
		}
	}
	return nil, nil
}

func formatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
