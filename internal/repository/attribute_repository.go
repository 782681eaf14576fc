package repository

import (
	"errors"

	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/models"

	"gorm.io/gorm"
)

// AttributeRepository 属性数据访问接口
type AttributeRepository interface {
	List(filter AttributeListFilter) ([]models.Attribute, int64, error)
	GetByID(id uint) (*models.Attribute, error)
	GetByName(name string) (*models.Attribute, error)
	Create(attribute *models.Attribute) error
	Update(attribute *models.Attribute) error
	Delete(id uint) error
	GetValueByID(valueID uint) (*models.AttributeValue, error)
	CreateValue(value *models.AttributeValue) error
	DeleteValue(valueID uint) error
	ListValues(attributeID uint) ([]models.AttributeValue, error)
	CountValues(attributeID uint) (int64, error)
	CountValueLinks(valueID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormAttributeRepository
}

// GormAttributeRepository GORM 实现
type GormAttributeRepository struct {
	db *gorm.DB
}

// NewAttributeRepository 创建属性仓库
func NewAttributeRepository(db *gorm.DB) *GormAttributeRepository {
	return &GormAttributeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAttributeRepository) WithTx(tx *gorm.DB) *GormAttributeRepository {
	if tx == nil {
		return r
	}
	return &GormAttributeRepository{db: tx}
}

// List 属性列表（含取值）
func (r *GormAttributeRepository) List(filter AttributeListFilter) ([]models.Attribute, int64, error) {
	query := r.db.Model(&models.Attribute{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var attributes []models.Attribute
	query = applySort(query.Preload("Values"), filter.SortBy, filter.SortOrder, constants.AttributeSortFields)
	if err := applyPagination(query, filter.Page, filter.PageSize).Find(&attributes).Error; err != nil {
		return nil, 0, err
	}
	return attributes, total, nil
}

// GetByID 根据 ID 获取属性（含取值）
func (r *GormAttributeRepository) GetByID(id uint) (*models.Attribute, error) {
	var attribute models.Attribute
	if err := r.db.Preload("Values").First(&attribute, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attribute, nil
}

// GetByName 根据名称获取属性
func (r *GormAttributeRepository) GetByName(name string) (*models.Attribute, error) {
	var attribute models.Attribute
	if err := r.db.Where("name = ?", name).First(&attribute).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attribute, nil
}

// Create 创建属性
func (r *GormAttributeRepository) Create(attribute *models.Attribute) error {
	return r.db.Create(attribute).Error
}

// Update 更新属性
func (r *GormAttributeRepository) Update(attribute *models.Attribute) error {
	return r.db.Save(attribute).Error
}

// Delete 删除属性
func (r *GormAttributeRepository) Delete(id uint) error {
	return r.db.Delete(&models.Attribute{}, id).Error
}

// GetValueByID 根据 ID 获取属性取值
func (r *GormAttributeRepository) GetValueByID(valueID uint) (*models.AttributeValue, error) {
	var value models.AttributeValue
	if err := r.db.First(&value, valueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &value, nil
}

// CreateValue 新增属性取值
func (r *GormAttributeRepository) CreateValue(value *models.AttributeValue) error {
	return r.db.Create(value).Error
}

// DeleteValue 删除属性取值
func (r *GormAttributeRepository) DeleteValue(valueID uint) error {
	return r.db.Delete(&models.AttributeValue{}, valueID).Error
}

// ListValues 属性下全部取值
func (r *GormAttributeRepository) ListValues(attributeID uint) ([]models.AttributeValue, error) {
	var values []models.AttributeValue
	if err := r.db.Where("attribute_id = ?", attributeID).Order("id ASC").Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// CountValues 统计属性下的取值数
func (r *GormAttributeRepository) CountValues(attributeID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.AttributeValue{}).Where("attribute_id = ?", attributeID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountValueLinks 统计引用该取值的变体关联数
func (r *GormAttributeRepository) CountValueLinks(valueID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.AttributeVariant{}).Where("attribute_value_id = ?", valueID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
