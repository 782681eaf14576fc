package repository

import (
	"errors"

	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/models"

	"gorm.io/gorm"
)

// RoleRepository 角色与权限数据访问接口
type RoleRepository interface {
	List(filter RoleListFilter) ([]models.Role, int64, error)
	GetByID(id uint) (*models.Role, error)
	GetByName(name string) (*models.Role, error)
	Create(role *models.Role) error
	Update(role *models.Role) error
	Delete(id uint) error
	ListPermissions() ([]models.Permission, error)
	CountPermissionsByIDs(ids []uint) (int64, error)
	ReplacePermissions(roleID uint, permissionIDs []uint) error
	ClearPermissions(roleID uint) error
	WithTx(tx *gorm.DB) *GormRoleRepository
}

// GormRoleRepository GORM 实现
type GormRoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository 创建角色仓库
func NewRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRoleRepository) WithTx(tx *gorm.DB) *GormRoleRepository {
	if tx == nil {
		return r
	}
	return &GormRoleRepository{db: tx}
}

// List 角色列表（含权限）
func (r *GormRoleRepository) List(filter RoleListFilter) ([]models.Role, int64, error) {
	query := r.db.Model(&models.Role{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var roles []models.Role
	query = applySort(query.Preload("Permissions"), filter.SortBy, filter.SortOrder, constants.RoleSortFields)
	if err := applyPagination(query, filter.Page, filter.PageSize).Find(&roles).Error; err != nil {
		return nil, 0, err
	}
	return roles, total, nil
}

// GetByID 根据 ID 获取角色（含权限）
func (r *GormRoleRepository) GetByID(id uint) (*models.Role, error) {
	var role models.Role
	if err := r.db.Preload("Permissions").First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

// GetByName 根据名称获取角色
func (r *GormRoleRepository) GetByName(name string) (*models.Role, error) {
	var role models.Role
	if err := r.db.Preload("Permissions").Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

// Create 创建角色
func (r *GormRoleRepository) Create(role *models.Role) error {
	return r.db.Create(role).Error
}

// Update 更新角色
func (r *GormRoleRepository) Update(role *models.Role) error {
	return r.db.Save(role).Error
}

// Delete 删除角色
func (r *GormRoleRepository) Delete(id uint) error {
	return r.db.Delete(&models.Role{}, id).Error
}

// ListPermissions 权限目录
func (r *GormRoleRepository) ListPermissions() ([]models.Permission, error) {
	var permissions []models.Permission
	if err := r.db.Order("id ASC").Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

// CountPermissionsByIDs 统计存在的权限数，用于校验 permissionIds
func (r *GormRoleRepository) CountPermissionsByIDs(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.Model(&models.Permission{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ReplacePermissions 整体替换角色的权限集合
func (r *GormRoleRepository) ReplacePermissions(roleID uint, permissionIDs []uint) error {
	if err := r.ClearPermissions(roleID); err != nil {
		return err
	}
	if len(permissionIDs) == 0 {
		return nil
	}
	links := make([]models.RolePermission, 0, len(permissionIDs))
	for _, permissionID := range permissionIDs {
		links = append(links, models.RolePermission{RoleID: roleID, PermissionID: permissionID})
	}
	return r.db.Create(&links).Error
}

// ClearPermissions 清空角色的权限集合
func (r *GormRoleRepository) ClearPermissions(roleID uint) error {
	return r.db.Where("role_id = ?", roleID).Delete(&models.RolePermission{}).Error
}
