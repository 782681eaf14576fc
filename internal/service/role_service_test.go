package service

import (
	"errors"
	"testing"

	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/models"
	"github.com/storeadmin/internal/repository"

	"gorm.io/gorm"
)

func newRoleService(db *gorm.DB) *RoleService {
	return NewRoleService(
		repository.NewRoleRepository(db),
		repository.NewAccountRepository(db),
	)
}

func createTestPermission(t *testing.T, db *gorm.DB, name string) models.Permission {
	t.Helper()

	permission := models.Permission{Name: name}
	if err := db.Create(&permission).Error; err != nil {
		t.Fatalf("create permission %s failed: %v", name, err)
	}
	return permission
}

func permissionIDs(role *models.Role) map[uint]bool {
	ids := make(map[uint]bool, len(role.Permissions))
	for _, p := range role.Permissions {
		ids[p.ID] = true
	}
	return ids
}

func TestRoleCreateWithPermissions(t *testing.T) {
	db := setupServiceDB(t)
	svc := newRoleService(db)

	read := createTestPermission(t, db, "orders.read")
	write := createTestPermission(t, db, "orders.write")

	role, err := svc.Create(RoleInput{
		Name:          "客服",
		Description:   "处理订单与评价",
		PermissionIDs: []uint{read.ID, write.ID, read.ID},
	})
	if err != nil {
		t.Fatalf("create role failed: %v", err)
	}
	if len(role.Permissions) != 2 {
		t.Fatalf("expected two permissions after dedupe, got %d", len(role.Permissions))
	}

	if _, err := svc.Create(RoleInput{Name: "客服"}); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if _, err := svc.Create(RoleInput{Name: "幽灵", PermissionIDs: []uint{999}}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing permission, got %v", err)
	}

	// 绑定失败时角色不应落库
	if _, err := svc.Get(role.ID + 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected rolled-back role absent, got %v", err)
	}
}

func TestRoleUpdateReplacesPermissionSet(t *testing.T) {
	db := setupServiceDB(t)
	svc := newRoleService(db)

	read := createTestPermission(t, db, "orders.read")
	write := createTestPermission(t, db, "orders.write")
	admin := createTestPermission(t, db, "accounts.admin")

	role, err := svc.Create(RoleInput{Name: "客服", PermissionIDs: []uint{read.ID, write.ID}})
	if err != nil {
		t.Fatalf("create role failed: %v", err)
	}

	newSet := []uint{admin.ID}
	updated, err := svc.Update(role.ID, UpdateRoleInput{PermissionIDs: &newSet})
	if err != nil {
		t.Fatalf("update role failed: %v", err)
	}
	ids := permissionIDs(updated)
	if len(ids) != 1 || !ids[admin.ID] {
		t.Fatalf("expected permission set replaced, got %v", ids)
	}

	// 空集合清空权限
	empty := []uint{}
	updated, err = svc.Update(role.ID, UpdateRoleInput{PermissionIDs: &empty})
	if err != nil {
		t.Fatalf("clear permissions failed: %v", err)
	}
	if len(updated.Permissions) != 0 {
		t.Fatalf("expected no permissions, got %d", len(updated.Permissions))
	}
}

func TestRoleDeleteBlockedByManagers(t *testing.T) {
	db := setupServiceDB(t)
	svc := newRoleService(db)

	_, manager := createTestStaff(t, db, "manager@example.com", constants.RoleManager)

	if err := svc.Delete(manager.RoleID); !errors.Is(err, ErrRoleInUse) {
		t.Fatalf("expected ErrRoleInUse, got %v", err)
	}

	read := createTestPermission(t, db, "orders.read")
	role, err := svc.Create(RoleInput{Name: "闲置角色", PermissionIDs: []uint{read.ID}})
	if err != nil {
		t.Fatalf("create role failed: %v", err)
	}
	if err := svc.Delete(role.ID); err != nil {
		t.Fatalf("delete role failed: %v", err)
	}
	var links int64
	db.Model(&models.RolePermission{}).Where("role_id = ?", role.ID).Count(&links)
	if links != 0 {
		t.Fatalf("expected permission links cleared, got %d", links)
	}
}
