package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healtrip/backend/internal/artifacts"
	"github.com/healtrip/backend/internal/catalog"
	"github.com/healtrip/backend/internal/ranking"
	"github.com/healtrip/backend/internal/services"
	"github.com/healtrip/backend/pkg/utils"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	dir := t.TempDir()
	listings := []catalog.Listing{
		{Row: 0, Name: "Apex Heart", City: "Chennai", Category: "Cardiology", Rating: 4.8, ReviewCount: 900, Text: "cardiac surgery heart care"},
		{Row: 1, Name: "Bone and Joint", City: "Delhi", Category: "Orthopedics", Rating: 4.5, ReviewCount: 700, Text: "joint replacement care"},
	}
	require.NoError(t, artifacts.WriteCatalog(dir, catalog.DomainHospitals, listings))

	documents := make([]string, len(listings))
	for i, l := range listings {
		documents[i] = l.Text
	}
	vocabulary, idf, rows := ranking.FitSimilarityIndex(documents)
	require.NoError(t, artifacts.WriteSimilarity(dir, catalog.DomainHospitals, artifacts.SimilarityArtifact{
		Vocabulary: vocabulary,
		IDF:        idf,
		Rows:       rows,
	}))

	store, err := artifacts.Load(dir, catalog.Domains, logger)
	require.NoError(t, err)

	service, err := services.NewRecommendationService(store, logger)
	require.NoError(t, err)

	diagnosis := NewDiagnosisHandler(service, logger)
	pricing := NewPricingHandler(service, logger)

	router := gin.New()
	router.POST("/diagnosis/classify", diagnosis.HandleClassify)
	router.POST("/diagnosis/predict-all", diagnosis.HandlePredictAll)
	router.POST("/predict-price/hotels", pricing.HandleHotelPrice)
	return router
}

func TestHandleClassify(t *testing.T) {
	router := testRouter(t)

	body := `{"text": "Diagnosis: heart attack. Patient stable."}`
	req := httptest.NewRequest("POST", "/diagnosis/classify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Heart Attack", data["disease"])
	assert.Equal(t, "Cardiology", data["specialty"])
	assert.Equal(t, 0.95, data["confidence"])
}

func TestHandleClassify_RejectsMissingText(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest("POST", "/diagnosis/classify", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePredictAll(t *testing.T) {
	router := testRouter(t)

	body := `{"text": "Patient suffering from heart attack. Stable now."}`
	req := httptest.NewRequest("POST", "/diagnosis/predict-all", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Cardiology", data["specialty"])

	hospitals := data["top_hospitals"].([]interface{})
	require.Len(t, hospitals, 1)
	first := hospitals[0].(map[string]interface{})
	assert.Equal(t, "Apex Heart", first["name"])
}

func TestHandleHotelPrice_UnloadedDomainAnswers503(t *testing.T) {
	router := testRouter(t)

	body := `{"hotel_rating": 4.2, "amenities_count": 5, "city": "Mumbai"}`
	req := httptest.NewRequest("POST", "/predict-price/hotels", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
