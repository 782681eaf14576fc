package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 商品分类表
type Category struct {
	ID          uint           `gorm:"primarykey" json:"id"`                           // 主键
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`               // 分类名
	Description string         `gorm:"type:varchar(500)" json:"description,omitempty"` // 描述
	CreatedAt   time.Time      `json:"created_at"`                                     // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                     // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                 // 软删除时间

	// 关联
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"` // 分类下商品
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
