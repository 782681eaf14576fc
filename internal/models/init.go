package models

import (
	"github.com/storeadmin/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 内置权限目录
var defaultPermissions = []Permission{
	{Name: "catalog.manage", Description: "维护分类、属性、商品与变体"},
	{Name: "orders.manage", Description: "处理订单状态流转"},
	{Name: "feedback.respond", Description: "回复商品评价"},
	{Name: "discounts.manage", Description: "维护折扣"},
	{Name: "accounts.manage", Description: "管理账号与角色"},
}

// InitDefaults 初始化内置角色、权限目录与默认管理员账号
func InitDefaults(adminEmail, adminPassword string) error {
	if adminEmail == "" {
		adminEmail = "admin@store.local"
	}
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		for _, name := range []string{"admin", "manager", "user"} {
			role := Role{Name: name}
			if err := tx.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
				return err
			}
		}

		for _, perm := range defaultPermissions {
			existing := Permission{}
			err := tx.Where("name = ?", perm.Name).First(&existing).Error
			if err == gorm.ErrRecordNotFound {
				if err := tx.Create(&perm).Error; err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}
		}

		var count int64
		if err := tx.Model(&Account{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		account := Account{
			Email:        adminEmail,
			PasswordHash: string(hash),
			FullName:     "Administrator",
			Status:       "active",
		}
		if err := tx.Create(&account).Error; err != nil {
			return err
		}

		var adminRole Role
		if err := tx.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
			return err
		}
		manager := Manager{AccountID: account.ID, RoleID: adminRole.ID}
		if err := tx.Create(&manager).Error; err != nil {
			return err
		}

		var permissions []Permission
		if err := tx.Find(&permissions).Error; err != nil {
			return err
		}
		for _, perm := range permissions {
			link := RolePermission{RoleID: adminRole.ID, PermissionID: perm.ID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return err
			}
		}

		if adminPassword == "admin123" {
			logger.Warnw("default_admin_created_with_default_password", "email", adminEmail)
			logger.Warnw("default_admin_password_change_required", "email", adminEmail)
		} else {
			logger.Warnw("default_admin_created", "email", adminEmail, "password_hidden", true)
		}
		return nil
	})
}
