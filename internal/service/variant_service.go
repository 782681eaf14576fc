package service

import (
	"errors"
	"strings"

	"github.com/storeadmin/internal/logger"
	"github.com/storeadmin/internal/models"
	"github.com/storeadmin/internal/repository"

	"gorm.io/gorm"
)

// VariantService 变体服务
type VariantService struct {
	variantRepo   repository.VariantRepository
	productRepo   repository.ProductRepository
	attributeRepo repository.AttributeRepository
	feedbackRepo  repository.FeedbackRepository
}

// NewVariantService 创建变体服务实例
func NewVariantService(
	variantRepo repository.VariantRepository,
	productRepo repository.ProductRepository,
	attributeRepo repository.AttributeRepository,
	feedbackRepo repository.FeedbackRepository,
) *VariantService {
	return &VariantService{
		variantRepo:   variantRepo,
		productRepo:   productRepo,
		attributeRepo: attributeRepo,
		feedbackRepo:  feedbackRepo,
	}
}

// List 变体列表
func (s *VariantService) List(filter repository.VariantListFilter) ([]models.ProductVariant, int64, error) {
	return s.variantRepo.List(filter)
}

// Search 按 SKU 或商品名搜索变体
func (s *VariantService) Search(filter repository.VariantListFilter) ([]models.ProductVariant, int64, error) {
	return s.variantRepo.Search(filter)
}

// Get 变体详情
func (s *VariantService) Get(id uint) (*models.ProductVariant, error) {
	variant, err := s.variantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrNotFound
	}
	return variant, nil
}

// VariantAttributeInput 变体属性取值参数
type VariantAttributeInput struct {
	AttributeValueID uint
}

// CreateVariantInput 创建变体参数
type CreateVariantInput struct {
	ProductID     uint
	SKU           string
	Price         models.Money
	OriginalPrice models.Money
	StockQuantity int
	ImageURL      string
	Attributes    []VariantAttributeInput
}

// Create 创建变体。属性取值必须存在且属性轴互不重复，
// 变体与属性组合在同一事务内落库。
func (s *VariantService) Create(input CreateVariantInput) (*models.ProductVariant, error) {
	sku := strings.TrimSpace(input.SKU)
	if sku == "" || input.ProductID == 0 {
		return nil, ErrValidation
	}
	if input.Price.Decimal.IsNegative() || input.OriginalPrice.Decimal.IsNegative() || input.StockQuantity < 0 {
		return nil, ErrValidation
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	// 解析属性取值并校验属性轴互斥
	values := make([]models.AttributeValue, 0, len(input.Attributes))
	seenAxes := make(map[uint]bool, len(input.Attributes))
	for _, attr := range input.Attributes {
		value, err := s.attributeRepo.GetValueByID(attr.AttributeValueID)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, ErrNotFound
		}
		if seenAxes[value.AttributeID] {
			return nil, ErrDuplicateAttribute
		}
		seenAxes[value.AttributeID] = true
		values = append(values, *value)
	}

	variant := &models.ProductVariant{
		ProductID:     input.ProductID,
		SKU:           sku,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		StockQuantity: input.StockQuantity,
		ImageURL:      strings.TrimSpace(input.ImageURL),
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		variantRepo := s.variantRepo.WithTx(tx)
		if err := variantRepo.Create(variant); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateSKU
			}
			return err
		}
		for _, value := range values {
			link := &models.AttributeVariant{
				ProductVariantID: variant.ID,
				AttributeID:      value.AttributeID,
				AttributeValueID: value.ID,
			}
			if err := variantRepo.CreateAttributeLink(link); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.variantRepo.GetByID(variant.ID)
}

// UpdateVariantInput 更新变体参数
type UpdateVariantInput struct {
	SKU           *string
	Price         *models.Money
	OriginalPrice *models.Money
	StockQuantity *int
	ImageURL      *string
}

// Update 更新变体
func (s *VariantService) Update(id uint, input UpdateVariantInput) (*models.ProductVariant, error) {
	variant, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku == "" {
			return nil, ErrValidation
		}
		variant.SKU = sku
	}
	if input.Price != nil {
		if input.Price.Decimal.IsNegative() {
			return nil, ErrValidation
		}
		variant.Price = *input.Price
	}
	if input.OriginalPrice != nil {
		if input.OriginalPrice.Decimal.IsNegative() {
			return nil, ErrValidation
		}
		variant.OriginalPrice = *input.OriginalPrice
	}
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return nil, ErrValidation
		}
		variant.StockQuantity = *input.StockQuantity
	}
	if input.ImageURL != nil {
		variant.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if err := s.variantRepo.Update(variant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSKU
		}
		return nil, err
	}
	return s.variantRepo.GetByID(id)
}

// Delete 删除变体。已被订单引用时拒绝，
// 否则属性组合、购物车项、折扣与评价级联删除。校验与删除在同一事务内执行。
func (s *VariantService) Delete(id uint) error {
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		variantRepo := s.variantRepo.WithTx(tx)
		variant, err := variantRepo.GetByID(id)
		if err != nil {
			return err
		}
		if variant == nil {
			return ErrNotFound
		}
		count, err := variantRepo.CountOrderItems(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrVariantInUse
		}
		if err := variantRepo.DeleteAttributeLinksByVariant(id); err != nil {
			return err
		}
		if err := variantRepo.DeleteCartItemsByVariant(id); err != nil {
			return err
		}
		if err := variantRepo.DeleteDiscountsByVariant(id); err != nil {
			return err
		}
		if err := s.feedbackRepo.WithTx(tx).DeleteByVariant(id); err != nil {
			return err
		}
		return variantRepo.Delete(id)
	})
	if err != nil {
		return err
	}

	logger.Infow("variant_deleted", "variant_id", id)
	return nil
}

// AssignAttribute 为变体绑定属性取值。
// 同一取值重复绑定、或属性轴上已有其他取值时拒绝。
func (s *VariantService) AssignAttribute(variantID uint, attributeValueID uint) (*models.AttributeVariant, error) {
	if _, err := s.Get(variantID); err != nil {
		return nil, err
	}
	value, err := s.attributeRepo.GetValueByID(attributeValueID)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, ErrNotFound
	}
	existing, err := s.variantRepo.GetAttributeLink(variantID, value.AttributeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateAttribute
	}

	link := &models.AttributeVariant{
		ProductVariantID: variantID,
		AttributeID:      value.AttributeID,
		AttributeValueID: value.ID,
	}
	if err := s.variantRepo.CreateAttributeLink(link); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateAttribute
		}
		return nil, err
	}
	return link, nil
}

// UnassignAttribute 解绑变体在某属性轴上的取值，取值与属性轴不匹配时拒绝
func (s *VariantService) UnassignAttribute(variantID, attributeID, valueID uint) error {
	if _, err := s.Get(variantID); err != nil {
		return err
	}
	link, err := s.variantRepo.GetAttributeLink(variantID, attributeID)
	if err != nil {
		return err
	}
	if link == nil {
		return ErrNotFound
	}
	if link.AttributeValueID != valueID {
		return ErrValueMismatch
	}
	return s.variantRepo.DeleteAttributeLink(variantID, attributeID)
}
