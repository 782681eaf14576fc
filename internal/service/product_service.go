package service

import (
	"strings"

	"github.com/storeadmin/internal/logger"
	"github.com/storeadmin/internal/models"
	"github.com/storeadmin/internal/repository"

	"gorm.io/gorm"
)

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	variantRepo  repository.VariantRepository
	feedbackRepo repository.FeedbackRepository
}

// NewProductService 创建商品服务实例
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	variantRepo repository.VariantRepository,
	feedbackRepo repository.FeedbackRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		variantRepo:  variantRepo,
		feedbackRepo: feedbackRepo,
	}
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// Get 商品详情
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// ListBrands 品牌列表
func (s *ProductService) ListBrands() ([]string, error) {
	return s.productRepo.ListBrands()
}

// ListByCategory 分类下商品列表
func (s *ProductService) ListByCategory(categoryID uint) ([]models.Product, error) {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return s.productRepo.ListByCategory(categoryID)
}

// ProductInput 商品参数
type ProductInput struct {
	CategoryID    uint
	Name          string
	Brand         string
	Description   string
	Specification string
	ImageURL      string
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.CategoryID == 0 {
		return nil, ErrValidation
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}

	product := &models.Product{
		CategoryID:    input.CategoryID,
		Name:          name,
		Brand:         strings.TrimSpace(input.Brand),
		Description:   input.Description,
		Specification: input.Specification,
		ImageURL:      strings.TrimSpace(input.ImageURL),
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(product.ID)
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if input.CategoryID != 0 && input.CategoryID != product.CategoryID {
		category, err := s.categoryRepo.GetByID(input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrNotFound
		}
		product.CategoryID = input.CategoryID
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		product.Name = name
	}
	product.Brand = strings.TrimSpace(input.Brand)
	product.Description = input.Description
	product.Specification = input.Specification
	product.ImageURL = strings.TrimSpace(input.ImageURL)

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(product.ID)
}

// Delete 删除商品。任一变体已被订单引用则整体拒绝，
// 否则商品及其变体、变体的关联（属性组合 / 购物车项 / 折扣 / 评价）级联删除。
// 校验与删除在同一事务内执行。
func (s *ProductService) Delete(id uint) error {
	var variantIDs []uint
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		variantRepo := s.variantRepo.WithTx(tx)
		feedbackRepo := s.feedbackRepo.WithTx(tx)

		product, err := productRepo.GetByID(id)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrNotFound
		}
		variantIDs, err = productRepo.ListVariantIDs(id)
		if err != nil {
			return err
		}
		for _, variantID := range variantIDs {
			count, err := variantRepo.CountOrderItems(variantID)
			if err != nil {
				return err
			}
			if count > 0 {
				return ErrProductInUse
			}
		}

		for _, variantID := range variantIDs {
			if err := variantRepo.DeleteAttributeLinksByVariant(variantID); err != nil {
				return err
			}
			if err := variantRepo.DeleteCartItemsByVariant(variantID); err != nil {
				return err
			}
			if err := variantRepo.DeleteDiscountsByVariant(variantID); err != nil {
				return err
			}
			if err := feedbackRepo.DeleteByVariant(variantID); err != nil {
				return err
			}
			if err := variantRepo.Delete(variantID); err != nil {
				return err
			}
		}
		return productRepo.Delete(id)
	})
	if err != nil {
		return err
	}

	logger.Infow("product_deleted", "product_id", id, "variants", len(variantIDs))
	return nil
}
