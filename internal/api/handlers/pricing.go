package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/healtrip/backend/internal/models"
	"github.com/healtrip/backend/internal/services"
	"github.com/healtrip/backend/pkg/utils"
)

type PricingHandler struct {
	service *services.RecommendationService
	logger  *logrus.Logger
}

func NewPricingHandler(service *services.RecommendationService, logger *logrus.Logger) *PricingHandler {
	return &PricingHandler{service: service, logger: logger}
}

// HandleHotelPrice predicts a nightly rate from hotel attributes.
func (h *PricingHandler) HandleHotelPrice(c *gin.Context) {
	var req models.HotelPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	result, err := h.service.PredictHotelPrice(req)
	if err != nil {
		respondServiceError(c, h.logger, "Hotel price prediction failed", err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"domain": "hotels",
		"price":  result.PredictedPrice,
	}).Info("Price predicted")

	utils.SuccessResponse(c, http.StatusOK, "Price predicted", result)
}

// HandleMentalPrice predicts a session fee for a mental-health session.
func (h *PricingHandler) HandleMentalPrice(c *gin.Context) {
	var req models.MentalPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	result, err := h.service.PredictMentalPrice(req)
	if err != nil {
		respondServiceError(c, h.logger, "Session price prediction failed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Price predicted", result)
}

// HandleYogaPrice predicts a class fee for a yoga session.
func (h *PricingHandler) HandleYogaPrice(c *gin.Context) {
	var req models.YogaPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	result, err := h.service.PredictYogaPrice(req)
	if err != nil {
		respondServiceError(c, h.logger, "Class price prediction failed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Price predicted", result)
}
