package repository

import (
	"errors"

	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/models"

	"gorm.io/gorm"
)

// FeedbackRepository 评价数据访问接口
type FeedbackRepository interface {
	List(filter FeedbackListFilter) ([]models.Feedback, int64, error)
	GetByID(id uint) (*models.Feedback, error)
	Create(feedback *models.Feedback) error
	Delete(id uint) error
	GetResponseByFeedback(feedbackID uint) (*models.FeedbackResponse, error)
	GetResponseByID(responseID uint) (*models.FeedbackResponse, error)
	CreateResponse(response *models.FeedbackResponse) error
	UpdateResponse(response *models.FeedbackResponse) error
	DeleteResponse(responseID uint) error
	DeleteResponseByFeedback(feedbackID uint) error
	DeleteByVariant(variantID uint) error
	CountResponsesByManager(managerID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormFeedbackRepository
}

// GormFeedbackRepository GORM 实现
type GormFeedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository 创建评价仓库
func NewFeedbackRepository(db *gorm.DB) *GormFeedbackRepository {
	return &GormFeedbackRepository{db: db}
}

// WithTx 绑定事务
func (r *GormFeedbackRepository) WithTx(tx *gorm.DB) *GormFeedbackRepository {
	if tx == nil {
		return r
	}
	return &GormFeedbackRepository{db: tx}
}

// List 评价列表
func (r *GormFeedbackRepository) List(filter FeedbackListFilter) ([]models.Feedback, int64, error) {
	query := r.db.Model(&models.Feedback{})
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.ProductVariantID > 0 {
		query = query.Where("product_variant_id = ?", filter.ProductVariantID)
	}
	if filter.CustomerID > 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Rating > 0 {
		query = query.Where("rating = ?", filter.Rating)
	}
	if filter.Search != "" {
		query = query.Where("comment LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var feedbacks []models.Feedback
	query = applySort(query.Preload("Response"), filter.SortBy, filter.SortOrder, constants.FeedbackSortFields)
	if err := applyPagination(query, filter.Page, filter.PageSize).Find(&feedbacks).Error; err != nil {
		return nil, 0, err
	}
	return feedbacks, total, nil
}

// GetByID 根据 ID 获取评价（含回复）
func (r *GormFeedbackRepository) GetByID(id uint) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.Preload("Response").Preload("Customer").First(&feedback, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &feedback, nil
}

// Create 创建评价
func (r *GormFeedbackRepository) Create(feedback *models.Feedback) error {
	return r.db.Create(feedback).Error
}

// Delete 删除评价
func (r *GormFeedbackRepository) Delete(id uint) error {
	return r.db.Delete(&models.Feedback{}, id).Error
}

// GetResponseByFeedback 获取某评价的回复
func (r *GormFeedbackRepository) GetResponseByFeedback(feedbackID uint) (*models.FeedbackResponse, error) {
	var response models.FeedbackResponse
	if err := r.db.Where("feedback_id = ?", feedbackID).First(&response).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &response, nil
}

// GetResponseByID 根据 ID 获取回复
func (r *GormFeedbackRepository) GetResponseByID(responseID uint) (*models.FeedbackResponse, error) {
	var response models.FeedbackResponse
	if err := r.db.First(&response, responseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &response, nil
}

// CreateResponse 创建回复
func (r *GormFeedbackRepository) CreateResponse(response *models.FeedbackResponse) error {
	return r.db.Create(response).Error
}

// UpdateResponse 更新回复
func (r *GormFeedbackRepository) UpdateResponse(response *models.FeedbackResponse) error {
	return r.db.Save(response).Error
}

// DeleteResponse 删除回复
func (r *GormFeedbackRepository) DeleteResponse(responseID uint) error {
	return r.db.Delete(&models.FeedbackResponse{}, responseID).Error
}

// DeleteResponseByFeedback 删除某评价的回复
func (r *GormFeedbackRepository) DeleteResponseByFeedback(feedbackID uint) error {
	return r.db.Where("feedback_id = ?", feedbackID).Delete(&models.FeedbackResponse{}).Error
}

// DeleteByVariant 删除变体下全部评价及其回复
func (r *GormFeedbackRepository) DeleteByVariant(variantID uint) error {
	sub := r.db.Model(&models.Feedback{}).Select("id").Where("product_variant_id = ?", variantID)
	if err := r.db.Where("feedback_id IN (?)", sub).Delete(&models.FeedbackResponse{}).Error; err != nil {
		return err
	}
	return r.db.Where("product_variant_id = ?", variantID).Delete(&models.Feedback{}).Error
}

// CountResponsesByManager 统计店长的回复数
func (r *GormFeedbackRepository) CountResponsesByManager(managerID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.FeedbackResponse{}).Where("manager_id = ?", managerID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
