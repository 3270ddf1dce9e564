package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/healtrip/backend/internal/artifacts"
	"github.com/healtrip/backend/internal/catalog"
	"github.com/healtrip/backend/internal/database"
	"github.com/healtrip/backend/internal/models"
	"github.com/healtrip/backend/internal/repository"
	"github.com/healtrip/backend/internal/services"
	"github.com/healtrip/backend/pkg/utils"
)

const recommendCacheTTL = 5 * time.Minute

type RecommendHandler struct {
	service     *services.RecommendationService
	repoManager *repository.RepositoryManager
	cache       *database.Cache
	logger      *logrus.Logger
}

func NewRecommendHandler(
	service *services.RecommendationService,
	repoManager *repository.RepositoryManager,
	cache *database.Cache,
	logger *logrus.Logger,
) *RecommendHandler {
	return &RecommendHandler{
		service:     service,
		repoManager: repoManager,
		cache:       cache,
		logger:      logger,
	}
}

// HandleFlights prices and returns flights for a route.
func (h *RecommendHandler) HandleFlights(c *gin.Context) {
	startTime := time.Now()

	origin := strings.TrimSpace(c.DefaultQuery("origin", "Delhi"))
	destination := strings.TrimSpace(c.DefaultQuery("destination", "Mumbai"))
	queryText := origin + " -> " + destination

	if resp, ok := h.fromCache(c, catalog.DomainFlights, queryText); ok {
		h.respond(c, catalog.DomainFlights, queryText, resp, startTime, true)
		return
	}

	flights, err := h.service.RecommendFlights(origin, destination)
	if err != nil {
		h.serviceError(c, "Flight recommendation failed", err)
		return
	}

	resp := &models.RecommendResponse{Count: len(flights), Results: flights}
	h.respond(c, catalog.DomainFlights, queryText, resp, startTime, false)
}

// HandleHotels filters hotels by location, budget and stars, ranked by
// text similarity when a free-text query is given.
func (h *RecommendHandler) HandleHotels(c *gin.Context) {
	startTime := time.Now()

	location := strings.TrimSpace(c.Query("location"))
	if location == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Query parameter 'location' is required", nil)
		return
	}

	budget, err := optionalFloat(c, "budget")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid budget", err)
		return
	}
	stars, err := optionalFloat(c, "stars")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid stars", err)
		return
	}

	query := strings.TrimSpace(c.Query("query"))
	queryText := strings.Join([]string{location, query, c.Query("budget"), c.Query("stars")}, "|")

	if resp, ok := h.fromCache(c, catalog.DomainHotels, queryText); ok {
		h.respond(c, catalog.DomainHotels, queryText, resp, startTime, true)
		return
	}

	hotels, err := h.service.RecommendHotels(location, budget, stars, query)
	if err != nil {
		h.serviceError(c, "Hotel recommendation failed", err)
		return
	}

	resp := &models.RecommendResponse{Count: len(hotels), Results: hotels}
	if len(hotels) == 0 {
		resp.Message = "No hotels matched the given filters"
	}
	h.respond(c, catalog.DomainHotels, queryText, resp, startTime, false)
}

// HandleHospitals maps a disease to its specialty and returns that
// specialty's top hospitals.
func (h *RecommendHandler) HandleHospitals(c *gin.Context) {
	startTime := time.Now()

	disease := strings.TrimSpace(c.Query("disease"))
	if disease == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Query parameter 'disease' is required", nil)
		return
	}

	topK, _ := strconv.Atoi(c.DefaultQuery("top_k", "5"))
	if topK > 20 {
		topK = 20
	}
	queryText := disease + "|" + strconv.Itoa(topK)

	if resp, ok := h.fromCache(c, catalog.DomainHospitals, queryText); ok {
		h.respond(c, catalog.DomainHospitals, queryText, resp, startTime, true)
		return
	}

	specialty, hospitals, err := h.service.TopHospitals(disease, topK)
	if err != nil {
		h.serviceError(c, "Hospital recommendation failed", err)
		return
	}

	resp := &models.RecommendResponse{
		Count:   len(hospitals),
		Results: hospitals,
		Message: "Specialty: " + specialty,
	}
	h.respond(c, catalog.DomainHospitals, queryText, resp, startTime, false)
}

// HandleHospitalsByCity lists a city's hospitals sorted by rating.
func (h *RecommendHandler) HandleHospitalsByCity(c *gin.Context) {
	startTime := time.Now()

	city := strings.TrimSpace(c.Query("city"))
	if city == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Query parameter 'city' is required", nil)
		return
	}
	queryText := "city:" + city

	if resp, ok := h.fromCache(c, catalog.DomainHospitals, queryText); ok {
		h.respond(c, catalog.DomainHospitals, queryText, resp, startTime, true)
		return
	}

	hospitals, err := h.service.HospitalsByCity(city)
	if err != nil {
		h.serviceError(c, "Hospital lookup failed", err)
		return
	}

	resp := &models.RecommendResponse{Count: len(hospitals), Results: hospitals}
	h.respond(c, catalog.DomainHospitals, queryText, resp, startTime, false)
}

// HandleWellness serves both the mental-health and yoga domains; the domain
// comes from the route.
func (h *RecommendHandler) HandleWellness(domain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		city := strings.TrimSpace(c.Query("city"))
		focus := strings.TrimSpace(c.Query("focus"))
		budget, err := optionalFloat(c, "budget")
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid budget", err)
			return
		}
		queryText := strings.Join([]string{city, focus, c.Query("budget")}, "|")

		if resp, ok := h.fromCache(c, domain, queryText); ok {
			h.respond(c, domain, queryText, resp, startTime, true)
			return
		}

		sessions, err := h.service.RecommendWellness(domain, city, focus, budget)
		if err != nil {
			h.serviceError(c, "Wellness recommendation failed", err)
			return
		}

		resp := &models.RecommendResponse{Count: len(sessions), Results: sessions}
		h.respond(c, domain, queryText, resp, startTime, false)
	}
}

// HandleClusterInfo resolves a yoga center name to its cluster.
func (h *RecommendHandler) HandleClusterInfo(c *gin.Context) {
	center := strings.TrimSpace(c.Query("center"))
	if center == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Query parameter 'center' is required", nil)
		return
	}

	info, err := h.service.YogaClusterInfo(center)
	if err != nil {
		h.serviceError(c, "Cluster lookup failed", err)
		return
	}
	if info == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Center not found", nil)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cluster info retrieved", info)
}

// Helper methods

func (h *RecommendHandler) fromCache(c *gin.Context, domain, queryText string) (*models.RecommendResponse, bool) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	cached := &models.RecommendResponse{}
	if err := h.cache.GetCachedRecommendations(ctx, domain, cacheKey(queryText), cached); err != nil {
		return nil, false
	}
	h.logger.WithField("domain", domain).Debug("Recommendations served from cache")
	return cached, true
}

// respond caches fresh results, fires analytics in the background and
// writes the envelope.
func (h *RecommendHandler) respond(c *gin.Context, domain, queryText string, resp *models.RecommendResponse, startTime time.Time, fromCache bool) {
	responseTime := time.Since(startTime)

	if !fromCache {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.cache.CacheRecommendations(ctx, domain, cacheKey(queryText), resp, recommendCacheTTL); err != nil {
			h.logger.WithError(err).Warn("Failed to cache recommendations")
		}
	}

	go h.trackQuery(domain, queryText, resp.Count, responseTime, c.GetHeader("User-Agent"), c.ClientIP(), userSession(c))
	go h.updatePopularQueries(domain, queryText, resp.Count, responseTime)

	h.logger.WithFields(logrus.Fields{
		"domain":        domain,
		"results_count": resp.Count,
		"response_time": responseTime.Milliseconds(),
		"cache_hit":     fromCache,
	}).Info("Recommendation completed")

	utils.SuccessResponse(c, http.StatusOK, "Recommendations retrieved", resp)
}

func (h *RecommendHandler) serviceError(c *gin.Context, message string, err error) {
	respondServiceError(c, h.logger, message, err)
}

// respondServiceError maps missing-artifact errors to 503 so callers can
// tell an unseeded domain apart from a real failure.
func respondServiceError(c *gin.Context, logger *logrus.Logger, message string, err error) {
	logger.WithError(err).Error(message)
	if errors.Is(err, artifacts.ErrArtifactUnavailable) {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "Domain artifacts not loaded", err)
		return
	}
	utils.ErrorResponse(c, http.StatusInternalServerError, message, err)
}

func (h *RecommendHandler) trackQuery(domain, queryText string, resultsCount int, responseTime time.Duration, userAgent, ipAddress, userSession string) {
	query := &models.RecommendationQuery{
		Domain:         domain,
		QueryText:      queryText,
		UserSession:    userSession,
		ResultsCount:   resultsCount,
		QueryTimestamp: time.Now(),
		ResponseTimeMs: int(responseTime.Milliseconds()),
		UserAgent:      userAgent,
		IPAddress:      ipAddress,
	}

	if err := h.repoManager.RecommendationQuery.Create(query); err != nil {
		h.logger.WithError(err).Error("Failed to track recommendation query")
	}
}

func (h *RecommendHandler) updatePopularQueries(domain, queryText string, resultsCount int, responseTime time.Duration) {
	if err := h.repoManager.PopularQuery.IncrementCount(domain, queryText); err != nil {
		h.logger.WithError(err).Error("Failed to update popular queries")
		return
	}

	if err := h.repoManager.PopularQuery.UpdateStats(queryText, float64(resultsCount), int(responseTime.Milliseconds())); err != nil {
		h.logger.WithError(err).Error("Failed to update query stats")
	}
}

func cacheKey(queryText string) string {
	return utils.MD5Hash(strings.ToLower(strings.TrimSpace(queryText)))
}

func optionalFloat(c *gin.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
