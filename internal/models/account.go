package models

import (
	"time"

	"gorm.io/gorm"
)

// Account 账号表（管理员 / 店长 / 顾客共用）
type Account struct {
	ID           uint           `gorm:"primarykey" json:"id"`                        // 主键
	Username     string         `gorm:"type:varchar(50)" json:"username,omitempty"`  // 用户名（展示用，登录走邮箱）
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`           // 登录邮箱
	PasswordHash string         `gorm:"type:varchar(200);not null" json:"-"`         // 密码哈希
	FullName     string         `gorm:"type:varchar(100);not null" json:"full_name"` // 姓名
	Status       string         `gorm:"index;not null;default:active" json:"status"` // 账号状态
	TokenVersion int            `gorm:"not null;default:0" json:"-"`                 // 令牌版本，改密/登出后旧令牌失效
	CreatedAt    time.Time      `json:"created_at"`                                  // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                  // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                              // 软删除时间

	// 关联
	Manager  *Manager  `gorm:"foreignKey:AccountID" json:"manager,omitempty"`  // 店长身份
	Customer *Customer `gorm:"foreignKey:AccountID" json:"customer,omitempty"` // 顾客身份
}

// TableName 指定表名
func (Account) TableName() string {
	return "accounts"
}

// Manager 店长表
type Manager struct {
	ID        uint           `gorm:"primarykey" json:"id"`                   // 主键
	AccountID uint           `gorm:"uniqueIndex;not null" json:"account_id"` // 账号ID
	RoleID    uint           `gorm:"index;not null" json:"role_id"`          // 角色ID
	CreatedAt time.Time      `json:"created_at"`                             // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                             // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间

	// 关联
	Role *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"` // 角色
}

// TableName 指定表名
func (Manager) TableName() string {
	return "managers"
}

// Customer 顾客表
type Customer struct {
	ID        uint           `gorm:"primarykey" json:"id"`                       // 主键
	AccountID uint           `gorm:"uniqueIndex;not null" json:"account_id"`     // 账号ID
	Phone     string         `gorm:"type:varchar(30)" json:"phone,omitempty"`    // 电话
	Address   string         `gorm:"type:varchar(500)" json:"address,omitempty"` // 默认收货地址
	CreatedAt time.Time      `json:"created_at"`                                 // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                 // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                             // 软删除时间
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}
