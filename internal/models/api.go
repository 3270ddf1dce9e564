package models

// Request/response shapes for the recommendation API.

type RecommendResponse struct {
	Count   int         `json:"count"`
	Results interface{} `json:"results"`
	Message string      `json:"message,omitempty"`
}

type FlightResult struct {
	Airline         string  `json:"airline"`
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	Duration        string  `json:"duration"`
	DurationMinutes int     `json:"duration_minutes"`
	Stops           int     `json:"stops"`
	Price           float64 `json:"price"`
}

type HotelResult struct {
	Name           string  `json:"name"`
	City           string  `json:"city"`
	Price          float64 `json:"price"`
	Rating         float64 `json:"rating"`
	AmenitiesCount int     `json:"amenities_count"`
	Similarity     float64 `json:"similarity,omitempty"`
}

type HospitalResult struct {
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	City       string  `json:"city"`
	Summary    string  `json:"summary"`
	MatchScore float64 `json:"match_score"`
}

type WellnessResult struct {
	Name       string  `json:"name"`
	City       string  `json:"city"`
	Category   string  `json:"category"`
	Cluster    string  `json:"cluster,omitempty"`
	Price      float64 `json:"price"`
	Similarity float64 `json:"similarity"`
}

type ClassifyRequest struct {
	Text string `json:"text" binding:"required"`
}

type ClassifyResponse struct {
	Disease     string  `json:"disease"`
	Specialty   string  `json:"specialty"`
	TypicalCost float64 `json:"typical_cost"`
	Confidence  float64 `json:"confidence"`
}

type PredictAllResponse struct {
	Disease      string           `json:"disease"`
	Specialty    string           `json:"specialty"`
	Confidence   float64          `json:"confidence"`
	TopHospitals []HospitalResult `json:"top_hospitals"`
}

type HotelPriceRequest struct {
	HotelRating    float64 `json:"hotel_rating" binding:"required"`
	AmenitiesCount int     `json:"amenities_count"`
	City           string  `json:"city" binding:"required"`
}

type MentalPriceRequest struct {
	City           string `json:"city" binding:"required"`
	SessionType    string `json:"session_type" binding:"required"`
	AmenitiesCount int    `json:"amenities_count"`
	TopicsCount    int    `json:"topics_count"`
}

type YogaPriceRequest struct {
	City           string `json:"city" binding:"required"`
	YogaStyle      string `json:"yoga_style" binding:"required"`
	AmenitiesCount int    `json:"amenities_count"`
}

type PricePredictionResponse struct {
	PredictedPrice float64     `json:"predicted_price"`
	Currency       string      `json:"currency"`
	Metadata       interface{} `json:"metadata,omitempty"`
}

type ClusterInfoResponse struct {
	Center  string `json:"center"`
	Cluster string `json:"cluster"`
}

type FeedbackRequest struct {
	QueryID      uint   `json:"query_id" binding:"required"`
	FeedbackType string `json:"feedback_type" binding:"required"`
	FeedbackText string `json:"feedback_text"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}
