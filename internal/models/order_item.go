package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表（unit_price 为下单时价格快照）
type OrderItem struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                    // 主键
	OrderID          uint           `gorm:"index;not null" json:"order_id"`                          // 订单ID
	ProductVariantID uint           `gorm:"index;not null" json:"product_variant_id"`                // 变体ID
	Quantity         int            `gorm:"not null" json:"quantity"`                                // 数量
	UnitPrice        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"` // 单价快照
	Note             string         `gorm:"type:varchar(500)" json:"note,omitempty"`                 // 备注
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`                                 // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间

	ProductVariant *ProductVariant `gorm:"foreignKey:ProductVariantID" json:"product_variant,omitempty"` // 关联变体
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
