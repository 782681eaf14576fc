package models

import (
	"time"

	"gorm.io/gorm"
)

// Role 角色表
type Role struct {
	ID          uint           `gorm:"primarykey" json:"id"`                           // 主键
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`               // 角色名
	Description string         `gorm:"type:varchar(500)" json:"description,omitempty"` // 描述
	CreatedAt   time.Time      `json:"created_at"`                                     // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                     // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                 // 软删除时间

	// 关联
	Permissions []Permission `gorm:"many2many:role_permissions" json:"permissions,omitempty"` // 权限集合
}

// TableName 指定表名
func (Role) TableName() string {
	return "roles"
}

// Permission 权限表
type Permission struct {
	ID          uint           `gorm:"primarykey" json:"id"`                           // 主键
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`               // 权限名
	Description string         `gorm:"type:varchar(500)" json:"description,omitempty"` // 描述
	CreatedAt   time.Time      `json:"created_at"`                                     // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                     // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                 // 软删除时间
}

// TableName 指定表名
func (Permission) TableName() string {
	return "permissions"
}

// RolePermission 角色-权限关联表
type RolePermission struct {
	RoleID       uint      `gorm:"primaryKey" json:"role_id"`       // 角色ID
	PermissionID uint      `gorm:"primaryKey" json:"permission_id"` // 权限ID
	CreatedAt    time.Time `json:"created_at"`                      // 创建时间
}

// TableName 指定表名
func (RolePermission) TableName() string {
	return "role_permissions"
}
