package repository

import (
	"errors"

	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/models"

	"gorm.io/gorm"
)

// VariantRepository 变体数据访问接口
type VariantRepository interface {
	List(filter VariantListFilter) ([]models.ProductVariant, int64, error)
	Search(filter VariantListFilter) ([]models.ProductVariant, int64, error)
	GetByID(id uint) (*models.ProductVariant, error)
	GetBySKU(sku string) (*models.ProductVariant, error)
	Create(variant *models.ProductVariant) error
	Update(variant *models.ProductVariant) error
	Delete(id uint) error
	CreateAttributeLink(link *models.AttributeVariant) error
	DeleteAttributeLink(variantID, attributeID uint) error
	GetAttributeLink(variantID, attributeID uint) (*models.AttributeVariant, error)
	ListAttributeLinks(variantID uint) ([]models.AttributeVariant, error)
	DeleteAttributeLinksByVariant(variantID uint) error
	DeleteCartItemsByVariant(variantID uint) error
	DeleteDiscountsByVariant(variantID uint) error
	CountOrderItems(variantID uint) (int64, error)
	AdjustStock(variantID uint, quantity int) (bool, error)
	WithTx(tx *gorm.DB) *GormVariantRepository
}

// GormVariantRepository GORM 实现
type GormVariantRepository struct {
	db *gorm.DB
}

// NewVariantRepository 创建变体仓库
func NewVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVariantRepository) WithTx(tx *gorm.DB) *GormVariantRepository {
	if tx == nil {
		return r
	}
	return &GormVariantRepository{db: tx}
}

func (r *GormVariantRepository) withAttributes(query *gorm.DB) *gorm.DB {
	return query.Preload("Attributes").
		Preload("Attributes.Attribute").
		Preload("Attributes.AttributeValue")
}

// List 变体列表
func (r *GormVariantRepository) List(filter VariantListFilter) ([]models.ProductVariant, int64, error) {
	query := r.db.Model(&models.ProductVariant{})
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.InStock != nil {
		if *filter.InStock {
			query = query.Where("stock_quantity > 0")
		} else {
			query = query.Where("stock_quantity <= 0")
		}
	}
	if filter.Search != "" {
		query = query.Where("sku LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var variants []models.ProductVariant
	query = applySort(r.withAttributes(query).Preload("Product"), filter.SortBy, filter.SortOrder, constants.VariantSortFields)
	if err := applyPagination(query, filter.Page, filter.PageSize).Find(&variants).Error; err != nil {
		return nil, 0, err
	}
	return variants, total, nil
}

// Search 按 SKU 或商品名模糊搜索
func (r *GormVariantRepository) Search(filter VariantListFilter) ([]models.ProductVariant, int64, error) {
	query := r.db.Model(&models.ProductVariant{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.
			Joins("JOIN products ON products.id = product_variants.product_id").
			Where("product_variants.sku LIKE ? OR products.name LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var variants []models.ProductVariant
	query = applySort(r.withAttributes(query).Preload("Product"), filter.SortBy, filter.SortOrder, constants.VariantSortFields)
	if err := applyPagination(query, filter.Page, filter.PageSize).Find(&variants).Error; err != nil {
		return nil, 0, err
	}
	return variants, total, nil
}

// GetByID 根据 ID 获取变体（含属性组合）
func (r *GormVariantRepository) GetByID(id uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.withAttributes(r.db.Preload("Product")).First(&variant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// GetBySKU 根据 SKU 获取变体
func (r *GormVariantRepository) GetBySKU(sku string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.Where("sku = ?", sku).First(&variant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// Create 创建变体
func (r *GormVariantRepository) Create(variant *models.ProductVariant) error {
	return r.db.Create(variant).Error
}

// Update 更新变体
func (r *GormVariantRepository) Update(variant *models.ProductVariant) error {
	return r.db.Save(variant).Error
}

// Delete 删除变体
func (r *GormVariantRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductVariant{}, id).Error
}

// CreateAttributeLink 新增变体-属性关联
func (r *GormVariantRepository) CreateAttributeLink(link *models.AttributeVariant) error {
	return r.db.Create(link).Error
}

// DeleteAttributeLink 删除变体-属性关联
func (r *GormVariantRepository) DeleteAttributeLink(variantID, attributeID uint) error {
	return r.db.Where("product_variant_id = ? AND attribute_id = ?", variantID, attributeID).
		Delete(&models.AttributeVariant{}).Error
}

// GetAttributeLink 获取变体在某属性轴上的关联
func (r *GormVariantRepository) GetAttributeLink(variantID, attributeID uint) (*models.AttributeVariant, error) {
	var link models.AttributeVariant
	err := r.db.Where("product_variant_id = ? AND attribute_id = ?", variantID, attributeID).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// ListAttributeLinks 变体全部属性关联
func (r *GormVariantRepository) ListAttributeLinks(variantID uint) ([]models.AttributeVariant, error) {
	var links []models.AttributeVariant
	err := r.db.Preload("Attribute").Preload("AttributeValue").
		Where("product_variant_id = ?", variantID).Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

// DeleteAttributeLinksByVariant 清空变体的属性关联
func (r *GormVariantRepository) DeleteAttributeLinksByVariant(variantID uint) error {
	return r.db.Where("product_variant_id = ?", variantID).Delete(&models.AttributeVariant{}).Error
}

// DeleteCartItemsByVariant 清空引用该变体的购物车项
func (r *GormVariantRepository) DeleteCartItemsByVariant(variantID uint) error {
	return r.db.Where("product_variant_id = ?", variantID).Delete(&models.CartItem{}).Error
}

// DeleteDiscountsByVariant 清空该变体的折扣
func (r *GormVariantRepository) DeleteDiscountsByVariant(variantID uint) error {
	return r.db.Where("product_variant_id = ?", variantID).Delete(&models.Discount{}).Error
}

// CountOrderItems 统计引用该变体的订单项数
func (r *GormVariantRepository) CountOrderItems(variantID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.OrderItem{}).Where("product_variant_id = ?", variantID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AdjustStock 扣减库存并累加已售数量，库存不足时返回 false
func (r *GormVariantRepository) AdjustStock(variantID uint, quantity int) (bool, error) {
	result := r.db.Model(&models.ProductVariant{}).
		Where("id = ? AND stock_quantity >= ?", variantID, quantity).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity - ?", quantity),
			"sold_quantity":  gorm.Expr("sold_quantity + ?", quantity),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
