package service

import (
	"errors"
	"strings"
	"time"

	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/models"
	"github.com/storeadmin/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DiscountService 折扣服务
// 折扣仅做登记与参数校验，不参与订单计价
type DiscountService struct {
	discountRepo repository.DiscountRepository
	variantRepo  repository.VariantRepository
}

// NewDiscountService 创建折扣服务实例
func NewDiscountService(discountRepo repository.DiscountRepository, variantRepo repository.VariantRepository) *DiscountService {
	return &DiscountService{
		discountRepo: discountRepo,
		variantRepo:  variantRepo,
	}
}

// List 折扣列表
func (s *DiscountService) List(filter repository.DiscountListFilter) ([]models.Discount, int64, error) {
	return s.discountRepo.List(filter)
}

// Get 折扣详情
func (s *DiscountService) Get(id uint) (*models.Discount, error) {
	discount, err := s.discountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, ErrNotFound
	}
	return discount, nil
}

// DiscountInput 折扣参数
type DiscountInput struct {
	ProductVariantID uint
	Code             string
	Type             string
	Value            models.Money
	Status           string
	StartDate        *time.Time
	EndDate          *time.Time
}

func validateDiscountInput(input DiscountInput) error {
	switch input.Type {
	case constants.DiscountTypePercentage:
		// 百分比折扣取值范围 [0, 100]
		if input.Value.Decimal.IsNegative() || input.Value.Decimal.GreaterThan(decimal.NewFromInt(100)) {
			return ErrValidation
		}
	case constants.DiscountTypeFixedAmount:
		if input.Value.Decimal.IsNegative() {
			return ErrValidation
		}
	default:
		return ErrValidation
	}
	if input.StartDate != nil && input.EndDate != nil && !input.StartDate.Before(*input.EndDate) {
		return ErrValidation
	}
	switch input.Status {
	case "", constants.DiscountStatusActive, constants.DiscountStatusInactive, constants.DiscountStatusExpired:
	default:
		return ErrValidation
	}
	return nil
}

// Create 创建折扣
func (s *DiscountService) Create(input DiscountInput) (*models.Discount, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" || input.ProductVariantID == 0 {
		return nil, ErrValidation
	}
	if err := validateDiscountInput(input); err != nil {
		return nil, err
	}
	variant, err := s.variantRepo.GetByID(input.ProductVariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrNotFound
	}

	status := input.Status
	if status == "" {
		status = constants.DiscountStatusActive
	}
	discount := &models.Discount{
		ProductVariantID: input.ProductVariantID,
		Code:             code,
		Type:             input.Type,
		Value:            input.Value,
		Status:           status,
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
	}
	if err := s.discountRepo.Create(discount); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCode
		}
		return nil, err
	}
	return discount, nil
}

// Update 更新折扣
func (s *DiscountService) Update(id uint, input DiscountInput) (*models.Discount, error) {
	discount, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := validateDiscountInput(input); err != nil {
		return nil, err
	}
	if input.ProductVariantID != 0 && input.ProductVariantID != discount.ProductVariantID {
		variant, err := s.variantRepo.GetByID(input.ProductVariantID)
		if err != nil {
			return nil, err
		}
		if variant == nil {
			return nil, ErrNotFound
		}
		discount.ProductVariantID = input.ProductVariantID
	}
	if code := strings.TrimSpace(input.Code); code != "" {
		discount.Code = code
	}
	discount.Type = input.Type
	discount.Value = input.Value
	if input.Status != "" {
		discount.Status = input.Status
	}
	discount.StartDate = input.StartDate
	discount.EndDate = input.EndDate

	if err := s.discountRepo.Update(discount); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCode
		}
		return nil, err
	}
	return discount, nil
}

// Delete 删除折扣
func (s *DiscountService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.discountRepo.Delete(id)
}
