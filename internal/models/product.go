package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                         // 主键
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`            // 分类ID
	Name          string         `gorm:"not null;index" json:"name"`                   // 商品名
	Brand         string         `gorm:"index" json:"brand,omitempty"`                 // 品牌
	Description   string         `gorm:"type:text" json:"description,omitempty"`       // 描述
	Specification string         `gorm:"type:text" json:"specification,omitempty"`     // 规格说明
	ImageURL      string         `gorm:"type:varchar(500)" json:"image_url,omitempty"` // 主图地址
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                   // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间

	// 关联
	Category Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`  // 变体列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
