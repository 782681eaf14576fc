package repository

import (
	"errors"

	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	ListBrands() ([]string, error)
	ListByCategory(categoryID uint) ([]models.Product, error)
	ListVariantIDs(productID uint) ([]uint, error)
	WithTx(tx *gorm.DB) *GormProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Brand != "" {
		query = query.Where("brand = ?", filter.Brand)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR brand LIKE ? OR description LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	query = applySort(query.Preload("Category"), filter.SortBy, filter.SortOrder, constants.ProductSortFields)
	if err := applyPagination(query, filter.Page, filter.PageSize).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID 根据 ID 获取商品（含分类与变体）
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	query := r.db.Preload("Category").
		Preload("Variants").
		Preload("Variants.Attributes").
		Preload("Variants.Attributes.Attribute").
		Preload("Variants.Attributes.AttributeValue")
	if err := query.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 删除商品
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// ListBrands 去重后的品牌列表
func (r *GormProductRepository) ListBrands() ([]string, error) {
	var brands []string
	err := r.db.Model(&models.Product{}).
		Where("brand IS NOT NULL AND brand != ''").
		Distinct("brand").
		Order("brand ASC").
		Pluck("brand", &brands).Error
	if err != nil {
		return nil, err
	}
	return brands, nil
}

// ListByCategory 分类下全部商品
func (r *GormProductRepository) ListByCategory(categoryID uint) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("category_id = ?", categoryID).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListVariantIDs 商品下全部变体 ID
func (r *GormProductRepository) ListVariantIDs(productID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&models.ProductVariant{}).Where("product_id = ?", productID).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
