package models

import (
	"time"

	"gorm.io/gorm"
)

// Feedback 商品评价表
type Feedback struct {
	ID               uint           `gorm:"primarykey" json:"id"`                     // 主键
	ProductID        uint           `gorm:"index;not null" json:"product_id"`         // 商品ID
	ProductVariantID uint           `gorm:"index;not null" json:"product_variant_id"` // 变体ID
	CustomerID       uint           `gorm:"index;not null" json:"customer_id"`        // 顾客ID
	Rating           int            `gorm:"not null" json:"rating"`                   // 评分（1-5）
	Comment          string         `gorm:"type:text;not null" json:"comment"`        // 评价内容
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt        time.Time      `json:"updated_at"`                               // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                           // 软删除时间

	// 关联
	Customer *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"` // 评价顾客
	Response *FeedbackResponse `gorm:"foreignKey:FeedbackID" json:"response,omitempty"` // 店长回复
}

// TableName 指定表名
func (Feedback) TableName() string {
	return "feedbacks"
}

// FeedbackResponse 店长回复表（每条评价至多一条回复）
type FeedbackResponse struct {
	ID         uint      `gorm:"primarykey" json:"id"`                    // 主键
	FeedbackID uint      `gorm:"uniqueIndex;not null" json:"feedback_id"` // 评价ID
	ManagerID  uint      `gorm:"index;not null" json:"manager_id"`        // 回复店长ID
	Content    string    `gorm:"type:text;not null" json:"content"`       // 回复内容
	CreatedAt  time.Time `json:"created_at"`                              // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                              // 更新时间

	Manager *Manager `gorm:"foreignKey:ManagerID" json:"manager,omitempty"` // 回复店长
}

// TableName 指定表名
func (FeedbackResponse) TableName() string {
	return "feedback_responses"
}
