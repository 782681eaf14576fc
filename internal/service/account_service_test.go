package service

import (
	"errors"
	"testing"

	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/models"
	"github.com/storeadmin/internal/repository"

	"gorm.io/gorm"
)

func newAccountService(db *gorm.DB) *AccountService {
	return NewAccountService(
		repository.NewAccountRepository(db),
		repository.NewRoleRepository(db),
		repository.NewOrderRepository(db),
		repository.NewFeedbackRepository(db),
		repository.NewCartRepository(db),
	)
}

func TestAccountCreateManagerAndCustomer(t *testing.T) {
	db := setupServiceDB(t)
	svc := newAccountService(db)

	role := createTestRole(t, db, constants.RoleManager)

	staff, err := svc.Create(CreateAccountInput{
		Email:    "staff@example.com",
		Password: "password",
		FullName: "新店长",
		RoleID:   &role.ID,
	})
	if err != nil {
		t.Fatalf("create staff failed: %v", err)
	}
	if staff.Manager == nil || staff.Manager.RoleID != role.ID {
		t.Fatalf("expected manager identity with role, got %+v", staff.Manager)
	}

	customer, err := svc.Create(CreateAccountInput{
		Email:    "shopper@example.com",
		Password: "password",
		FullName: "新顾客",
		Phone:    "13700000000",
	})
	if err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	if customer.Customer == nil {
		t.Fatalf("expected customer identity created")
	}

	missing := uint(999)
	if _, err := svc.Create(CreateAccountInput{
		Email:    "ghost@example.com",
		Password: "password",
		FullName: "ghost",
		RoleID:   &missing,
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing role, got %v", err)
	}

	if _, err := svc.Create(CreateAccountInput{
		Email:    "staff@example.com",
		Password: "password",
		FullName: "重复",
	}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAccountUpdateStatusValidation(t *testing.T) {
	db := setupServiceDB(t)
	svc := newAccountService(db)

	account := createTestAccount(t, db, "status@example.com", "password")

	bad := "suspended"
	if _, err := svc.Update(account.ID, UpdateAccountInput{Status: &bad}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown status, got %v", err)
	}

	disabled := constants.AccountStatusDisabled
	updated, err := svc.Update(account.ID, UpdateAccountInput{Status: &disabled})
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.AccountStatusDisabled {
		t.Fatalf("expected disabled, got %s", updated.Status)
	}
}

func TestAccountDeleteGuards(t *testing.T) {
	db := setupServiceDB(t)
	svc := newAccountService(db)
	orderSvc := newOrderService(db)

	admin, _ := createTestStaff(t, db, "admin@example.com", constants.RoleAdmin)
	adminActor := actorFor(admin, constants.RoleAdmin)

	// 不可删除本人
	if err := svc.Delete(adminActor, admin.ID); !errors.Is(err, ErrSelfDelete) {
		t.Fatalf("expected ErrSelfDelete, got %v", err)
	}

	// 有订单的顾客不可删除
	buyer, _ := createTestCustomer(t, db, "buyer@example.com")
	_, variant := createTestVariant(t, db, "ACC-SKU-1", "10.00", 5)
	if _, err := orderSvc.Create(actorFor(buyer, constants.RoleUser), CreateOrderInput{
		Items: []OrderItemInput{{VariantID: variant.ID, Quantity: 1}},
	}); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if err := svc.Delete(adminActor, buyer.ID); !errors.Is(err, ErrAccountInUse) {
		t.Fatalf("expected ErrAccountInUse, got %v", err)
	}

	// 无订单顾客删除后身份行与购物车一并清理
	idle, idleCustomer := createTestCustomer(t, db, "idle@example.com")
	if err := db.Create(&models.CartItem{CustomerID: idleCustomer.ID, ProductVariantID: variant.ID, Quantity: 2}).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
	if err := svc.Delete(adminActor, idle.ID); err != nil {
		t.Fatalf("delete account failed: %v", err)
	}
	if account, err := svc.Get(idle.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected account gone, got %v %v", account, err)
	}
	var carts int64
	db.Model(&models.CartItem{}).Where("customer_id = ?", idleCustomer.ID).Count(&carts)
	if carts != 0 {
		t.Fatalf("expected cart cleared, got %d", carts)
	}
}
