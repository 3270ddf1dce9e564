package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/healtrip/backend/internal/models"
)

// RecommendationQueryRepositoryImpl implements RecommendationQueryRepository
type RecommendationQueryRepositoryImpl struct {
	db *gorm.DB
}

func NewRecommendationQueryRepository(db *gorm.DB) models.RecommendationQueryRepository {
	return &RecommendationQueryRepositoryImpl{db: db}
}

func (r *RecommendationQueryRepositoryImpl) Create(query *models.RecommendationQuery) error {
	return r.db.Create(query).Error
}

func (r *RecommendationQueryRepositoryImpl) GetByID(id uint) (*models.RecommendationQuery, error) {
	var query models.RecommendationQuery
	err := r.db.Preload("Feedback").First(&query, id).Error
	if err != nil {
		return nil, err
	}
	return &query, nil
}

func (r *RecommendationQueryRepositoryImpl) GetBySession(session string) ([]models.RecommendationQuery, error) {
	var queries []models.RecommendationQuery
	err := r.db.Where("user_session = ?", session).
		Order("query_timestamp DESC").
		Find(&queries).Error
	return queries, err
}

func (r *RecommendationQueryRepositoryImpl) GetRecent(limit int) ([]models.RecommendationQuery, error) {
	var queries []models.RecommendationQuery
	err := r.db.Order("query_timestamp DESC").
		Limit(limit).
		Find(&queries).Error
	return queries, err
}

// UserFeedbackRepositoryImpl implements UserFeedbackRepository
type UserFeedbackRepositoryImpl struct {
	db *gorm.DB
}

func NewUserFeedbackRepository(db *gorm.DB) models.UserFeedbackRepository {
	return &UserFeedbackRepositoryImpl{db: db}
}

func (r *UserFeedbackRepositoryImpl) Create(feedback *models.UserFeedback) error {
	return r.db.Create(feedback).Error
}

func (r *UserFeedbackRepositoryImpl) GetByQueryID(queryID uint) ([]models.UserFeedback, error) {
	var feedback []models.UserFeedback
	err := r.db.Where("query_id = ?", queryID).Find(&feedback).Error
	return feedback, err
}

func (r *UserFeedbackRepositoryImpl) GetByType(feedbackType string) ([]models.UserFeedback, error) {
	var feedback []models.UserFeedback
	err := r.db.Where("feedback_type = ?", feedbackType).Find(&feedback).Error
	return feedback, err
}

func (r *UserFeedbackRepositoryImpl) GetRecent(limit int) ([]models.UserFeedback, error) {
	var feedback []models.UserFeedback
	err := r.db.Order("created_at DESC").Limit(limit).Find(&feedback).Error
	return feedback, err
}

// CatalogMetadataRepositoryImpl implements CatalogMetadataRepository
type CatalogMetadataRepositoryImpl struct {
	db *gorm.DB
}

func NewCatalogMetadataRepository(db *gorm.DB) models.CatalogMetadataRepository {
	return &CatalogMetadataRepositoryImpl{db: db}
}

func (r *CatalogMetadataRepositoryImpl) Create(meta *models.CatalogMetadata) error {
	return r.db.Create(meta).Error
}

func (r *CatalogMetadataRepositoryImpl) GetByDomain(domain string) (*models.CatalogMetadata, error) {
	var meta models.CatalogMetadata
	err := r.db.Where("domain = ?", domain).First(&meta).Error
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

func (r *CatalogMetadataRepositoryImpl) GetAll() ([]models.CatalogMetadata, error) {
	var metas []models.CatalogMetadata
	err := r.db.Order("domain").Find(&metas).Error
	return metas, err
}

func (r *CatalogMetadataRepositoryImpl) Update(meta *models.CatalogMetadata) error {
	return r.db.Save(meta).Error
}

func (r *CatalogMetadataRepositoryImpl) UpdateSeedStatus(id uint, status string) error {
	return r.db.Model(&models.CatalogMetadata{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"seed_status": status,
			"seeded_at":   time.Now(),
		}).Error
}

// PopularQueryRepositoryImpl implements PopularQueryRepository
type PopularQueryRepositoryImpl struct {
	db *gorm.DB
}

func NewPopularQueryRepository(db *gorm.DB) models.PopularQueryRepository {
	return &PopularQueryRepositoryImpl{db: db}
}

func (r *PopularQueryRepositoryImpl) IncrementCount(domain, queryText string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "query_text"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"search_count":  gorm.Expr("popular_queries.search_count + 1"),
			"last_searched": time.Now(),
		}),
	}).Create(&models.PopularQuery{
		QueryText:    queryText,
		Domain:       domain,
		SearchCount:  1,
		LastSearched: time.Now(),
	}).Error
}

func (r *PopularQueryRepositoryImpl) GetTop(limit int) ([]models.PopularQuery, error) {
	var queries []models.PopularQuery
	err := r.db.Order("search_count DESC").
		Limit(limit).
		Find(&queries).Error
	return queries, err
}

func (r *PopularQueryRepositoryImpl) UpdateStats(queryText string, resultsCount float64, responseTime int) error {
	return r.db.Model(&models.PopularQuery{}).
		Where("query_text = ?", queryText).
		Updates(map[string]interface{}{
			"avg_results_count":    resultsCount,
			"avg_response_time_ms": responseTime,
		}).Error
}

// SystemHealthRepositoryImpl implements SystemHealthRepository
type SystemHealthRepositoryImpl struct {
	db *gorm.DB
}

func NewSystemHealthRepository(db *gorm.DB) models.SystemHealthRepository {
	return &SystemHealthRepositoryImpl{db: db}
}

func (r *SystemHealthRepositoryImpl) UpdateServiceHealth(serviceName, status string, responseTime int, errorMsg string) error {
	health := models.SystemHealth{
		ServiceName:    serviceName,
		Status:         status,
		ResponseTimeMs: responseTime,
		ErrorMessage:   errorMsg,
		CheckedAt:      time.Now(),
	}
	return r.db.Create(&health).Error
}

func (r *SystemHealthRepositoryImpl) GetServiceHealth(serviceName string) (*models.SystemHealth, error) {
	var health models.SystemHealth
	err := r.db.Where("service_name = ?", serviceName).
		Order("checked_at DESC").
		First(&health).Error
	if err != nil {
		return nil, err
	}
	return &health, nil
}

func (r *SystemHealthRepositoryImpl) GetAllServicesHealth() ([]models.SystemHealth, error) {
	var health []models.SystemHealth
	err := r.db.Raw(`
		SELECT DISTINCT ON (service_name) *
		FROM system_health
		ORDER BY service_name, checked_at DESC
	`).Scan(&health).Error
	return health, err
}

func (r *SystemHealthRepositoryImpl) GetUnhealthyServices() ([]models.SystemHealth, error) {
	var health []models.SystemHealth
	err := r.db.Raw(`
		SELECT DISTINCT ON (service_name) *
		FROM system_health
		WHERE status != 'healthy'
		ORDER BY service_name, checked_at DESC
	`).Scan(&health).Error
	return health, err
}

// RepositoryManager aggregates all repositories
type RepositoryManager struct {
	RecommendationQuery models.RecommendationQueryRepository
	UserFeedback        models.UserFeedbackRepository
	CatalogMetadata     models.CatalogMetadataRepository
	PopularQuery        models.PopularQueryRepository
	SystemHealth        models.SystemHealthRepository
}

func NewRepositoryManager(db *gorm.DB) *RepositoryManager {
	return &RepositoryManager{
		RecommendationQuery: NewRecommendationQueryRepository(db),
		UserFeedback:        NewUserFeedbackRepository(db),
		CatalogMetadata:     NewCatalogMetadataRepository(db),
		PopularQuery:        NewPopularQueryRepository(db),
		SystemHealth:        NewSystemHealthRepository(db),
	}
}
