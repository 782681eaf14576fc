package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/storeadmin/internal/config"
	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// setupServiceDB 以独立的内存库初始化 models.DB
func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	models.DB = db
	if err := models.AutoMigrate(); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "service-test-secret",
			ExpiresIn:        "1h",
			RefreshExpiresIn: "24h",
		},
	}
}

func createTestRole(t *testing.T, db *gorm.DB, name string) models.Role {
	t.Helper()

	role := models.Role{Name: name}
	if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
		t.Fatalf("create role %s failed: %v", name, err)
	}
	return role
}

func createTestAccount(t *testing.T, db *gorm.DB, email, password string) models.Account {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	account := models.Account{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "tester",
		Status:       constants.AccountStatusActive,
	}
	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("create account %s failed: %v", email, err)
	}
	return account
}

// createTestStaff 创建后台账号及其店长身份
func createTestStaff(t *testing.T, db *gorm.DB, email, roleName string) (models.Account, models.Manager) {
	t.Helper()

	role := createTestRole(t, db, roleName)
	account := createTestAccount(t, db, email, "password")
	manager := models.Manager{AccountID: account.ID, RoleID: role.ID}
	if err := db.Create(&manager).Error; err != nil {
		t.Fatalf("create manager failed: %v", err)
	}
	return account, manager
}

// createTestCustomer 创建顾客账号及其顾客身份
func createTestCustomer(t *testing.T, db *gorm.DB, email string) (models.Account, models.Customer) {
	t.Helper()

	account := createTestAccount(t, db, email, "password")
	customer := models.Customer{
		AccountID: account.ID,
		Phone:     "13800000000",
		Address:   "默认收货地址",
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	return account, customer
}

func actorFor(account models.Account, role string) Actor {
	return Actor{
		ID:       account.ID,
		Email:    account.Email,
		FullName: account.FullName,
		Role:     role,
	}
}

// createTestVariant 创建分类、商品与一个变体
func createTestVariant(t *testing.T, db *gorm.DB, sku string, price string, stock int) (models.Product, models.ProductVariant) {
	t.Helper()

	category := models.Category{Name: "分类-" + sku}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{CategoryID: category.ID, Name: "商品-" + sku}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	amount, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("bad price %s: %v", price, err)
	}
	variant := models.ProductVariant{
		ProductID:     product.ID,
		SKU:           sku,
		Price:         models.NewMoneyFromDecimal(amount),
		OriginalPrice: models.NewMoneyFromDecimal(amount),
		StockQuantity: stock,
	}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	return product, variant
}
