package models

import (
	"time"

	"gorm.io/gorm"
)

// Discount 折扣表（仅登记与校验，不参与订单计价）
type Discount struct {
	ID               uint           `gorm:"primarykey" json:"id"`                               // 主键
	ProductVariantID uint           `gorm:"index;not null" json:"product_variant_id"`           // 变体ID
	Code             string         `gorm:"uniqueIndex;not null" json:"code"`                   // 折扣码
	Type             string         `gorm:"type:varchar(20);not null" json:"type"`              // 类型（percentage/fixed_amount）
	Value            Money          `gorm:"type:decimal(20,2);not null;default:0" json:"value"` // 折扣值
	Status           string         `gorm:"index;not null;default:active" json:"status"`        // 状态
	StartDate        *time.Time     `gorm:"index" json:"start_date"`                            // 生效时间
	EndDate          *time.Time     `gorm:"index" json:"end_date"`                              // 失效时间
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt        time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间

	ProductVariant *ProductVariant `gorm:"foreignKey:ProductVariantID" json:"product_variant,omitempty"` // 关联变体
}

// TableName 指定表名
func (Discount) TableName() string {
	return "discounts"
}
