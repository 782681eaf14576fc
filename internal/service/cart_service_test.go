package service

import (
	"errors"
	"testing"

	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/repository"

	"gorm.io/gorm"
)

func newCartService(db *gorm.DB) *CartService {
	return NewCartService(
		repository.NewCartRepository(db),
		repository.NewVariantRepository(db),
		repository.NewAccountRepository(db),
	)
}

func TestCartUpsertOverwritesQuantity(t *testing.T) {
	db := setupServiceDB(t)
	svc := newCartService(db)

	account, _ := createTestCustomer(t, db, "cart@example.com")
	_, variant := createTestVariant(t, db, "CART-SKU-1", "10.00", 5)
	actor := actorFor(account, constants.RoleUser)

	if _, err := svc.AddItem(actor, variant.ID, 2); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	// 重复加入同一变体覆盖数量而非累加
	item, err := svc.AddItem(actor, variant.ID, 5)
	if err != nil {
		t.Fatalf("re-add item failed: %v", err)
	}
	if item.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", item.Quantity)
	}

	items, err := svc.List(actor)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 5 {
		t.Fatalf("expected single item with quantity 5, got %+v", items)
	}
}

func TestCartValidation(t *testing.T) {
	db := setupServiceDB(t)
	svc := newCartService(db)

	account, _ := createTestCustomer(t, db, "cart@example.com")
	_, variant := createTestVariant(t, db, "CART-SKU-2", "10.00", 5)
	actor := actorFor(account, constants.RoleUser)

	if _, err := svc.AddItem(actor, variant.ID, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for zero quantity, got %v", err)
	}
	if _, err := svc.AddItem(actor, 999, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing variant, got %v", err)
	}
	if err := svc.RemoveItem(actor, variant.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing item, got %v", err)
	}
}

func TestCartRequiresCustomerIdentity(t *testing.T) {
	db := setupServiceDB(t)
	svc := newCartService(db)

	staff, _ := createTestStaff(t, db, "manager@example.com", constants.RoleManager)
	_, variant := createTestVariant(t, db, "CART-SKU-3", "10.00", 5)

	if _, err := svc.AddItem(actorFor(staff, constants.RoleManager), variant.ID, 1); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for staff without customer identity, got %v", err)
	}
}

func TestCartRemoveItem(t *testing.T) {
	db := setupServiceDB(t)
	svc := newCartService(db)

	account, _ := createTestCustomer(t, db, "cart@example.com")
	_, variant := createTestVariant(t, db, "CART-SKU-4", "10.00", 5)
	actor := actorFor(account, constants.RoleUser)

	if _, err := svc.AddItem(actor, variant.ID, 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if err := svc.RemoveItem(actor, variant.ID); err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	items, err := svc.List(actor)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(items))
	}
}
