package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariant 商品变体表（可售单元）
type ProductVariant struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                        // 主键
	ProductID     uint           `gorm:"not null;index" json:"product_id"`                            // 商品ID
	SKU           string         `gorm:"uniqueIndex;not null" json:"sku"`                             // SKU 编码
	Price         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`          // 售价
	OriginalPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"original_price"` // 原价
	StockQuantity int            `gorm:"not null;default:0" json:"stock_quantity"`                    // 库存数量
	SoldQuantity  int            `gorm:"not null;default:0" json:"sold_quantity"`                     // 已售数量
	ImageURL      string         `gorm:"type:varchar(500)" json:"image_url,omitempty"`                // 变体图片
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	// 关联
	Product    Product            `gorm:"foreignKey:ProductID" json:"product,omitempty"`           // 商品信息
	Attributes []AttributeVariant `gorm:"foreignKey:ProductVariantID" json:"attributes,omitempty"` // 属性组合
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}

// AttributeVariant 变体-属性取值关联表（每个属性轴至多一个取值）
type AttributeVariant struct {
	ID               uint      `gorm:"primarykey" json:"id"`                                                 // 主键
	ProductVariantID uint      `gorm:"uniqueIndex:idx_variant_attribute;not null" json:"product_variant_id"` // 变体ID
	AttributeID      uint      `gorm:"uniqueIndex:idx_variant_attribute;not null" json:"attribute_id"`       // 属性ID
	AttributeValueID uint      `gorm:"not null;index" json:"attribute_value_id"`                             // 属性取值ID
	CreatedAt        time.Time `json:"created_at"`                                                           // 创建时间
	UpdatedAt        time.Time `json:"updated_at"`                                                           // 更新时间

	// 关联
	Attribute      Attribute      `gorm:"foreignKey:AttributeID" json:"attribute,omitempty"`            // 属性轴
	AttributeValue AttributeValue `gorm:"foreignKey:AttributeValueID" json:"attribute_value,omitempty"` // 属性取值
}

// TableName 指定表名
func (AttributeVariant) TableName() string {
	return "attribute_variants"
}
