package models

import (
	"time"
)

// CartItem 购物车项（同一顾客同一变体唯一，重复加入覆盖数量）
type CartItem struct {
	ID               uint      `gorm:"primarykey" json:"id"`                                                     // 主键
	CustomerID       uint      `gorm:"not null;uniqueIndex:idx_cart_customer_variant" json:"customer_id"`        // 顾客ID
	ProductVariantID uint      `gorm:"not null;uniqueIndex:idx_cart_customer_variant" json:"product_variant_id"` // 变体ID
	Quantity         int       `gorm:"not null" json:"quantity"`                                                 // 数量
	CreatedAt        time.Time `gorm:"index" json:"created_at"`                                                  // 创建时间
	UpdatedAt        time.Time `gorm:"index" json:"updated_at"`                                                  // 更新时间

	ProductVariant *ProductVariant `gorm:"foreignKey:ProductVariantID" json:"product_variant,omitempty"` // 关联变体
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
