package service

import (
	"errors"
	"strings"

	"github.com/storeadmin/internal/models"
	"github.com/storeadmin/internal/repository"

	"gorm.io/gorm"
)

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService 创建分类服务实例
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List 分类列表
func (s *CategoryService) List(filter repository.CategoryListFilter) ([]models.Category, int64, error) {
	return s.categoryRepo.List(filter)
}

// Get 分类详情
func (s *CategoryService) Get(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// CategoryInput 分类参数
type CategoryInput struct {
	Name        string
	Description string
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrValidation
	}
	category := &models.Category{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		category.Name = name
	}
	category.Description = strings.TrimSpace(input.Description)
	if err := s.categoryRepo.Update(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return category, nil
}

// Delete 删除分类，分类下仍有商品时拒绝。校验与删除在同一事务内执行。
func (s *CategoryService) Delete(id uint) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.categoryRepo.WithTx(tx)
		category, err := repo.GetByID(id)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrNotFound
		}
		count, err := repo.CountProducts(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrCategoryInUse
		}
		return repo.Delete(id)
	})
}
