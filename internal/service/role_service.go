package service

import (
	"errors"
	"strings"

	"github.com/storeadmin/internal/models"
	"github.com/storeadmin/internal/repository"

	"gorm.io/gorm"
)

// RoleService 角色与权限服务
type RoleService struct {
	roleRepo    repository.RoleRepository
	accountRepo repository.AccountRepository
}

// NewRoleService 创建角色服务实例
func NewRoleService(roleRepo repository.RoleRepository, accountRepo repository.AccountRepository) *RoleService {
	return &RoleService{
		roleRepo:    roleRepo,
		accountRepo: accountRepo,
	}
}

// List 角色列表
func (s *RoleService) List(filter repository.RoleListFilter) ([]models.Role, int64, error) {
	return s.roleRepo.List(filter)
}

// Get 角色详情
func (s *RoleService) Get(id uint) (*models.Role, error) {
	role, err := s.roleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrNotFound
	}
	return role, nil
}

// ListPermissions 权限目录
func (s *RoleService) ListPermissions() ([]models.Permission, error) {
	return s.roleRepo.ListPermissions()
}

// RoleInput 角色参数
type RoleInput struct {
	Name          string
	Description   string
	PermissionIDs []uint
}

func (s *RoleService) validatePermissionIDs(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint]bool, len(ids))
	distinct := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			distinct = append(distinct, id)
		}
	}
	repo := s.roleRepo
	if tx != nil {
		repo = s.roleRepo.WithTx(tx)
	}
	count, err := repo.CountPermissionsByIDs(distinct)
	if err != nil {
		return err
	}
	if count != int64(len(distinct)) {
		return ErrNotFound
	}
	return nil
}

// Create 创建角色并绑定权限集合（同一事务）
func (s *RoleService) Create(input RoleInput) (*models.Role, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrValidation
	}

	role := &models.Role{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	}
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.roleRepo.WithTx(tx)
		if err := s.validatePermissionIDs(tx, input.PermissionIDs); err != nil {
			return err
		}
		if err := repo.Create(role); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateName
			}
			return err
		}
		return repo.ReplacePermissions(role.ID, dedupeIDs(input.PermissionIDs))
	})
	if err != nil {
		return nil, err
	}
	return s.roleRepo.GetByID(role.ID)
}

// UpdateRoleInput 更新角色参数
type UpdateRoleInput struct {
	Name        *string
	Description *string
	// PermissionIDs 非空时整体替换角色的权限集合
	PermissionIDs *[]uint
}

// Update 更新角色，权限集合整体替换（同一事务）
func (s *RoleService) Update(id uint, input UpdateRoleInput) (*models.Role, error) {
	role, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.roleRepo.WithTx(tx)
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return ErrValidation
			}
			role.Name = name
		}
		if input.Description != nil {
			role.Description = strings.TrimSpace(*input.Description)
		}
		if err := repo.Update(role); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateName
			}
			return err
		}
		if input.PermissionIDs != nil {
			if err := s.validatePermissionIDs(tx, *input.PermissionIDs); err != nil {
				return err
			}
			return repo.ReplacePermissions(id, dedupeIDs(*input.PermissionIDs))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.roleRepo.GetByID(id)
}

// Delete 删除角色。仍有店长绑定时拒绝，否则权限关联与角色一并删除。
// 校验与删除在同一事务内执行。
func (s *RoleService) Delete(id uint) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.roleRepo.WithTx(tx)
		role, err := repo.GetByID(id)
		if err != nil {
			return err
		}
		if role == nil {
			return ErrNotFound
		}
		managers, err := s.accountRepo.WithTx(tx).CountManagersByRole(id)
		if err != nil {
			return err
		}
		if managers > 0 {
			return ErrRoleInUse
		}
		if err := repo.ClearPermissions(id); err != nil {
			return err
		}
		return repo.Delete(id)
	})
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
