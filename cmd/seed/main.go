package main

import (
	"time"

	"github.com/storeadmin/internal/config"
	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/logger"
	"github.com/storeadmin/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// 演示数据填充工具，可重复执行
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Env, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}
	if err := models.InitDefaults("", ""); err != nil {
		stdLog.Fatalf("Failed to init defaults: %v", err)
	}

	// 分类
	categories := []models.Category{
		{Name: "T 恤", Description: "短袖与长袖 T 恤"},
		{Name: "卫衣", Description: "连帽与圆领卫衣"},
		{Name: "配件", Description: "帽子、袜子等配件"},
	}
	categoryIDs := map[string]uint{}
	for _, category := range categories {
		existing := models.Category{}
		if err := models.DB.Where("name = ?", category.Name).FirstOrCreate(&existing, category).Error; err != nil {
			stdLog.Fatalf("Failed to seed category %s: %v", category.Name, err)
		}
		categoryIDs[existing.Name] = existing.ID
	}

	// 属性轴与取值
	attributeValues := map[string][]string{
		"颜色": {"黑色", "白色", "藏青"},
		"尺码": {"S", "M", "L", "XL"},
	}
	valueIDs := map[string]map[string]uint{}
	attributeIDs := map[string]uint{}
	for name, values := range attributeValues {
		attribute := models.Attribute{Name: name}
		if err := models.DB.Where("name = ?", name).FirstOrCreate(&attribute).Error; err != nil {
			stdLog.Fatalf("Failed to seed attribute %s: %v", name, err)
		}
		attributeIDs[name] = attribute.ID
		valueIDs[name] = map[string]uint{}
		for _, v := range values {
			value := models.AttributeValue{AttributeID: attribute.ID, Value: v}
			if err := models.DB.Where("attribute_id = ? AND value = ?", attribute.ID, v).
				FirstOrCreate(&value).Error; err != nil {
				stdLog.Fatalf("Failed to seed attribute value %s/%s: %v", name, v, err)
			}
			valueIDs[name][v] = value.ID
		}
	}

	// 商品与变体
	type variantSeed struct {
		SKU    string
		Price  string
		Stock  int
		Values map[string]string // 属性轴 -> 取值
	}
	type productSeed struct {
		Category string
		Name     string
		Brand    string
		Variants []variantSeed
	}
	products := []productSeed{
		{
			Category: "T 恤",
			Name:     "基础棉 T 恤",
			Brand:    "Plainwear",
			Variants: []variantSeed{
				{SKU: "TEE-BLK-M", Price: "59.00", Stock: 120, Values: map[string]string{"颜色": "黑色", "尺码": "M"}},
				{SKU: "TEE-BLK-L", Price: "59.00", Stock: 80, Values: map[string]string{"颜色": "黑色", "尺码": "L"}},
				{SKU: "TEE-WHT-M", Price: "55.00", Stock: 60, Values: map[string]string{"颜色": "白色", "尺码": "M"}},
			},
		},
		{
			Category: "卫衣",
			Name:     "重磅连帽卫衣",
			Brand:    "Plainwear",
			Variants: []variantSeed{
				{SKU: "HOO-NVY-L", Price: "199.00", Stock: 40, Values: map[string]string{"颜色": "藏青", "尺码": "L"}},
				{SKU: "HOO-BLK-XL", Price: "199.00", Stock: 25, Values: map[string]string{"颜色": "黑色", "尺码": "XL"}},
			},
		},
	}
	var firstVariantID uint
	for _, seed := range products {
		product := models.Product{
			CategoryID: categoryIDs[seed.Category],
			Name:       seed.Name,
			Brand:      seed.Brand,
		}
		if err := models.DB.Where("name = ?", seed.Name).FirstOrCreate(&product).Error; err != nil {
			stdLog.Fatalf("Failed to seed product %s: %v", seed.Name, err)
		}
		for _, vs := range seed.Variants {
			price, err := decimal.NewFromString(vs.Price)
			if err != nil {
				stdLog.Fatalf("Bad price for %s: %v", vs.SKU, err)
			}
			variant := models.ProductVariant{
				ProductID:     product.ID,
				SKU:           vs.SKU,
				Price:         models.NewMoneyFromDecimal(price),
				OriginalPrice: models.NewMoneyFromDecimal(price),
				StockQuantity: vs.Stock,
			}
			if err := models.DB.Where("sku = ?", vs.SKU).FirstOrCreate(&variant).Error; err != nil {
				stdLog.Fatalf("Failed to seed variant %s: %v", vs.SKU, err)
			}
			if firstVariantID == 0 {
				firstVariantID = variant.ID
			}
			for axis, value := range vs.Values {
				link := models.AttributeVariant{
					ProductVariantID: variant.ID,
					AttributeID:      attributeIDs[axis],
					AttributeValueID: valueIDs[axis][value],
				}
				if err := models.DB.Where(
					"product_variant_id = ? AND attribute_id = ?", variant.ID, link.AttributeID,
				).FirstOrCreate(&link).Error; err != nil {
					stdLog.Fatalf("Failed to seed variant attribute %s/%s: %v", vs.SKU, axis, err)
				}
			}
		}
	}

	// 演示顾客账号
	hash, err := bcrypt.GenerateFromPassword([]byte("customer123"), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("Failed to hash password: %v", err)
	}
	account := models.Account{
		Email:        "customer@store.local",
		PasswordHash: string(hash),
		FullName:     "演示顾客",
		Status:       constants.AccountStatusActive,
	}
	if err := models.DB.Where("email = ?", account.Email).FirstOrCreate(&account).Error; err != nil {
		stdLog.Fatalf("Failed to seed customer account: %v", err)
	}
	customer := models.Customer{
		AccountID: account.ID,
		Phone:     "13800000000",
		Address:   "演示市演示区演示路 1 号",
	}
	if err := models.DB.Where("account_id = ?", account.ID).FirstOrCreate(&customer).Error; err != nil {
		stdLog.Fatalf("Failed to seed customer: %v", err)
	}

	// 演示折扣
	if firstVariantID != 0 {
		start := time.Now()
		end := start.AddDate(0, 1, 0)
		discount := models.Discount{
			ProductVariantID: firstVariantID,
			Code:             "WELCOME10",
			Type:             constants.DiscountTypePercentage,
			Value:            models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			Status:           constants.DiscountStatusActive,
			StartDate:        &start,
			EndDate:          &end,
		}
		if err := models.DB.Where("code = ?", discount.Code).FirstOrCreate(&discount).Error; err != nil {
			stdLog.Fatalf("Failed to seed discount: %v", err)
		}
	}

	stdLog.Printf("Seed finished")
}
