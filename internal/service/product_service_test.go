package service

import (
	"errors"
	"testing"

	"github.com/storeadmin/internal/models"
	"github.com/storeadmin/internal/repository"

	"gorm.io/gorm"
)

func newProductService(db *gorm.DB) *ProductService {
	return NewProductService(
		repository.NewProductRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewVariantRepository(db),
		repository.NewFeedbackRepository(db),
	)
}

func TestProductCreateRequiresCategory(t *testing.T) {
	db := setupServiceDB(t)
	svc := newProductService(db)

	if _, err := svc.Create(ProductInput{CategoryID: 999, Name: "幽灵商品"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing category, got %v", err)
	}
	if _, err := svc.Create(ProductInput{Name: "无分类"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for zero category, got %v", err)
	}

	category := models.Category{Name: "上装"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product, err := svc.Create(ProductInput{CategoryID: category.ID, Name: " 基础款 ", Brand: "Plainwear"})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if product.Name != "基础款" {
		t.Fatalf("expected trimmed name, got %q", product.Name)
	}
}

func TestProductListByCategory(t *testing.T) {
	db := setupServiceDB(t)
	svc := newProductService(db)

	product, _ := createTestVariant(t, db, "PROD-SKU-1", "10.00", 5)

	products, err := svc.ListByCategory(product.CategoryID)
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if len(products) != 1 || products[0].ID != product.ID {
		t.Fatalf("expected the category product, got %+v", products)
	}
	if _, err := svc.ListByCategory(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing category, got %v", err)
	}
}

func TestProductDeleteBlockedByOrderedVariant(t *testing.T) {
	db := setupServiceDB(t)
	svc := newProductService(db)
	orderSvc := newOrderService(db)

	account, _ := createTestCustomer(t, db, "buyer@example.com")
	product, variant := createTestVariant(t, db, "PROD-SKU-2", "10.00", 5)

	if _, err := orderSvc.Create(actorFor(account, "user"), CreateOrderInput{
		Items: []OrderItemInput{{VariantID: variant.ID, Quantity: 1}},
	}); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if err := svc.Delete(product.ID); !errors.Is(err, ErrProductInUse) {
		t.Fatalf("expected ErrProductInUse, got %v", err)
	}
}

func TestProductDeleteCascadesVariants(t *testing.T) {
	db := setupServiceDB(t)
	svc := newProductService(db)

	product, variant := createTestVariant(t, db, "PROD-SKU-3", "10.00", 5)
	_, customer := createTestCustomer(t, db, "cart@example.com")
	if err := db.Create(&models.CartItem{CustomerID: customer.ID, ProductVariantID: variant.ID, Quantity: 1}).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}

	if err := svc.Delete(product.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if _, err := svc.Get(product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected product gone, got %v", err)
	}

	var variants, carts int64
	db.Model(&models.ProductVariant{}).Where("product_id = ?", product.ID).Count(&variants)
	db.Model(&models.CartItem{}).Where("product_variant_id = ?", variant.ID).Count(&carts)
	if variants != 0 || carts != 0 {
		t.Fatalf("expected cascade delete, got variants=%d carts=%d", variants, carts)
	}
}
