package models

// GORM models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// StringArray for PostgreSQL array support
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "{}", nil
	}
	return fmt.Sprintf("{%s}", strings.Join(s, ",")), nil
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}

	switch v := value.(type) {
	case string:
		if v == "{}" {
			*s = StringArray{}
			return nil
		}
		v = strings.Trim(v, "{}")
		if v == "" {
			*s = StringArray{}
			return nil
		}
		*s = StringArray(strings.Split(v, ","))
	case []byte:
		return s.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into StringArray", value)
	}
	return nil
}

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecommendationQuery represents recommendation request analytics
type RecommendationQuery struct {
	BaseModel
	Domain         string    `json:"domain" gorm:"not null;index"`
	QueryText      string    `json:"query_text"`
	UserSession    string    `json:"user_session"`
	ResultsCount   int       `json:"results_count" gorm:"default:0"`
	QueryTimestamp time.Time `json:"query_timestamp" gorm:"default:NOW()"`
	ResponseTimeMs int       `json:"response_time_ms"`
	UserAgent      string    `json:"user_agent"`
	IPAddress      string    `json:"ip_address" gorm:"type:inet"`

	// Associations
	Feedback []UserFeedback `json:"feedback" gorm:"foreignKey:QueryID"`
}

// UserFeedback represents user feedback on recommendation results
type UserFeedback struct {
	BaseModel
	QueryID      uint   `json:"query_id" gorm:"not null"`
	FeedbackType string `json:"feedback_type" gorm:"not null;check:feedback_type IN ('helpful','not_helpful','partially_helpful')"`
	FeedbackText string `json:"feedback_text"`
	UserSession  string `json:"user_session"`

	// Associations
	Query RecommendationQuery `json:"query" gorm:"foreignKey:QueryID"`
}

// CatalogMetadata tracks the artifact bundles the seeder produced per domain
type CatalogMetadata struct {
	BaseModel
	Domain          string      `json:"domain" gorm:"unique;not null"`
	SourceFile      string      `json:"source_file"`
	ContentHash     string      `json:"content_hash"`
	RowCount        int         `json:"row_count"`
	VocabularySize  int         `json:"vocabulary_size"`
	ResolvedColumns StringArray `json:"resolved_columns" gorm:"type:text[]"`
	HasPriceModel   bool        `json:"has_price_model" gorm:"default:false"`
	SeededAt        *time.Time  `json:"seeded_at"`
	SeedStatus      string      `json:"seed_status" gorm:"default:'pending';check:seed_status IN ('pending','seeding','completed','failed')"`
}

// PopularQuery represents frequently requested recommendations
type PopularQuery struct {
	BaseModel
	QueryText         string    `json:"query_text" gorm:"unique;not null"`
	Domain            string    `json:"domain"`
	SearchCount       int       `json:"search_count" gorm:"default:1"`
	AvgResultsCount   float64   `json:"avg_results_count" gorm:"type:decimal(5,2);default:0"`
	AvgResponseTimeMs int       `json:"avg_response_time_ms" gorm:"default:0"`
	LastSearched      time.Time `json:"last_searched" gorm:"default:NOW()"`
}

// SystemHealth represents service health monitoring
type SystemHealth struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ServiceName    string    `json:"service_name" gorm:"not null"`
	Status         string    `json:"status" gorm:"not null;check:status IN ('healthy','degraded','unhealthy')"`
	ResponseTimeMs int       `json:"response_time_ms"`
	ErrorMessage   string    `json:"error_message"`
	CheckedAt      time.Time `json:"checked_at" gorm:"default:NOW()"`
}

// Database interfaces for repository pattern
type RecommendationQueryRepository interface {
	Create(query *RecommendationQuery) error
	GetByID(id uint) (*RecommendationQuery, error)
	GetBySession(session string) ([]RecommendationQuery, error)
	GetRecent(limit int) ([]RecommendationQuery, error)
}

type UserFeedbackRepository interface {
	Create(feedback *UserFeedback) error
	GetByQueryID(queryID uint) ([]UserFeedback, error)
	GetByType(feedbackType string) ([]UserFeedback, error)
	GetRecent(limit int) ([]UserFeedback, error)
}

type CatalogMetadataRepository interface {
	Create(meta *CatalogMetadata) error
	GetByDomain(domain string) (*CatalogMetadata, error)
	GetAll() ([]CatalogMetadata, error)
	Update(meta *CatalogMetadata) error
	UpdateSeedStatus(id uint, status string) error
}

type PopularQueryRepository interface {
	IncrementCount(domain, queryText string) error
	GetTop(limit int) ([]PopularQuery, error)
	UpdateStats(queryText string, resultsCount float64, responseTime int) error
}

type SystemHealthRepository interface {
	UpdateServiceHealth(serviceName, status string, responseTime int, errorMsg string) error
	GetServiceHealth(serviceName string) (*SystemHealth, error)
	GetAllServicesHealth() ([]SystemHealth, error)
	GetUnhealthyServices() ([]SystemHealth, error)
}

// TableName methods for custom table names
func (RecommendationQuery) TableName() string { return "recommendation_queries" }
func (UserFeedback) TableName() string        { return "user_feedback" }
func (CatalogMetadata) TableName() string     { return "catalog_metadata" }
func (PopularQuery) TableName() string        { return "popular_queries" }
func (SystemHealth) TableName() string        { return "system_health" }

// Model validation methods
func (rq *RecommendationQuery) Validate() error {
	if rq.Domain == "" {
		return fmt.Errorf("domain is required")
	}
	if rq.ResponseTimeMs < 0 {
		return fmt.Errorf("response time cannot be negative")
	}
	return nil
}

func (uf *UserFeedback) Validate() error {
	if uf.QueryID == 0 {
		return fmt.Errorf("query ID is required")
	}
	validTypes := map[string]bool{
		"helpful":           true,
		"not_helpful":       true,
		"partially_helpful": true,
	}
	if !validTypes[uf.FeedbackType] {
		return fmt.Errorf("invalid feedback type: %s", uf.FeedbackType)
	}
	return nil
}

func (cm *CatalogMetadata) Validate() error {
	if cm.Domain == "" {
		return fmt.Errorf("domain is required")
	}
	validStatuses := map[string]bool{
		"pending":   true,
		"seeding":   true,
		"completed": true,
		"failed":    true,
	}
	if !validStatuses[cm.SeedStatus] {
		return fmt.Errorf("invalid seed status: %s", cm.SeedStatus)
	}
	return nil
}

// GORM hooks
func (rq *RecommendationQuery) BeforeCreate(tx *gorm.DB) error {
	return rq.Validate()
}

func (uf *UserFeedback) BeforeCreate(tx *gorm.DB) error {
	return uf.Validate()
}

func (cm *CatalogMetadata) BeforeCreate(tx *gorm.DB) error {
	return cm.Validate()
}

func (cm *CatalogMetadata) BeforeUpdate(tx *gorm.DB) error {
	return cm.Validate()
}
