package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                        // 主键
	CustomerID      uint           `gorm:"index;not null" json:"customer_id"`                           // 顾客ID
	Status          string         `gorm:"index;not null" json:"status"`                                // 订单状态
	PaymentStatus   string         `gorm:"index;not null" json:"payment_status"`                        // 支付状态
	PaymentMethod   string         `gorm:"type:varchar(50);not null" json:"payment_method"`             // 支付方式
	PaymentAmount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"payment_amount"` // 应付金额
	PaymentDate     *time.Time     `gorm:"index" json:"payment_date"`                                   // 支付时间
	ShippingAddress string         `gorm:"type:varchar(500);not null" json:"shipping_address"`          // 收货地址
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                     // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	// 关联
	Customer *Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"` // 顾客信息
	Items    []OrderItem    `gorm:"foreignKey:OrderID" json:"items,omitempty"`       // 订单项
	History  []OrderHistory `gorm:"foreignKey:OrderID" json:"history,omitempty"`     // 状态流转记录
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// IsTerminal 是否处于终态
func (o Order) IsTerminal() bool {
	switch o.Status {
	case "completed", "cancelled", "rejected":
		return true
	default:
		return false
	}
}
