package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/healtrip/backend/internal/models"
	"github.com/healtrip/backend/internal/services"
	"github.com/healtrip/backend/pkg/utils"
)

type DiagnosisHandler struct {
	service *services.RecommendationService
	logger  *logrus.Logger
}

func NewDiagnosisHandler(service *services.RecommendationService, logger *logrus.Logger) *DiagnosisHandler {
	return &DiagnosisHandler{service: service, logger: logger}
}

// HandleClassify extracts a disease from free-text diagnosis notes and maps
// it to a specialty.
func (h *DiagnosisHandler) HandleClassify(c *gin.Context) {
	var req models.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if len(req.Text) > 5000 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Text too long (max 5000 characters)", nil)
		return
	}

	result := h.service.Classify(req.Text)

	h.logger.WithFields(logrus.Fields{
		"disease":    result.Disease,
		"specialty":  result.Specialty,
		"confidence": result.Confidence,
	}).Info("Diagnosis classified")

	utils.SuccessResponse(c, http.StatusOK, "Diagnosis classified", result)
}

// HandlePredictAll chains classification and hospital ranking in one call.
func (h *DiagnosisHandler) HandlePredictAll(c *gin.Context) {
	var req models.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	topK, _ := strconv.Atoi(c.DefaultQuery("top_k", "5"))
	if topK > 20 {
		topK = 20
	}

	result, err := h.service.PredictAll(req.Text, topK)
	if err != nil {
		respondServiceError(c, h.logger, "Prediction failed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Prediction completed", result)
}
