package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderHistory 订单状态流转记录（只追加，不修改）
// ManagerID 为空表示顾客侧动作（下单 / 本人取消 / 本人支付）
type OrderHistory struct {
	ID             uint           `gorm:"primarykey" json:"id"`                        // 主键
	OrderID        uint           `gorm:"index;not null" json:"order_id"`              // 订单ID
	ManagerID      *uint          `gorm:"index" json:"manager_id,omitempty"`           // 操作店长ID
	ProcessingTime time.Time      `gorm:"index;not null" json:"processing_time"`       // 处理时间
	PreviousStatus *string        `gorm:"type:varchar(20)" json:"previous_status"`     // 先前状态（创建时为空）
	NewStatus      string         `gorm:"type:varchar(20);not null" json:"new_status"` // 新状态
	CreatedAt      time.Time      `json:"created_at"`                                  // 创建时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                              // 软删除时间

	Manager *Manager `gorm:"foreignKey:ManagerID" json:"manager,omitempty"` // 操作店长
}

// TableName 指定表名
func (OrderHistory) TableName() string {
	return "order_histories"
}
