package repository

import (
	"errors"

	"github.com/storeadmin/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByCustomer(customerID uint) ([]models.CartItem, error)
	GetItem(customerID, variantID uint) (*models.CartItem, error)
	Upsert(item *models.CartItem) error
	Remove(customerID, variantID uint) error
	ClearByCustomer(customerID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByCustomer 顾客购物车列表
func (r *GormCartRepository) ListByCustomer(customerID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Preload("ProductVariant").Preload("ProductVariant.Product").
		Where("customer_id = ?", customerID).Order("id ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem 获取购物车项
func (r *GormCartRepository) GetItem(customerID, variantID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("customer_id = ? AND product_variant_id = ?", customerID, variantID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Upsert 新增或覆盖购物车项
func (r *GormCartRepository) Upsert(item *models.CartItem) error {
	return r.db.Save(item).Error
}

// Remove 移除购物车项
func (r *GormCartRepository) Remove(customerID, variantID uint) error {
	return r.db.Where("customer_id = ? AND product_variant_id = ?", customerID, variantID).
		Delete(&models.CartItem{}).Error
}

// ClearByCustomer 清空顾客购物车
func (r *GormCartRepository) ClearByCustomer(customerID uint) error {
	return r.db.Where("customer_id = ?", customerID).Delete(&models.CartItem{}).Error
}
