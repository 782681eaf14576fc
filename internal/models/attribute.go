package models

import (
	"time"

	"gorm.io/gorm"
)

// Attribute 商品属性轴表（如颜色、尺码）
type Attribute struct {
	ID        uint           `gorm:"primarykey" json:"id"`             // 主键
	Name      string         `gorm:"uniqueIndex;not null" json:"name"` // 属性名
	CreatedAt time.Time      `json:"created_at"`                       // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                       // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                   // 软删除时间

	// 关联
	Values []AttributeValue `gorm:"foreignKey:AttributeID" json:"values,omitempty"` // 属性取值
}

// TableName 指定表名
func (Attribute) TableName() string {
	return "attributes"
}

// AttributeValue 属性取值表（同一属性下取值唯一）
type AttributeValue struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                         // 主键
	AttributeID uint           `gorm:"uniqueIndex:idx_attribute_value;not null" json:"attribute_id"` // 属性ID
	Value       string         `gorm:"uniqueIndex:idx_attribute_value;not null" json:"value"`        // 取值
	CreatedAt   time.Time      `json:"created_at"`                                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                   // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间
}

// TableName 指定表名
func (AttributeValue) TableName() string {
	return "attribute_values"
}
