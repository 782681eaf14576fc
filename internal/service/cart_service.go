package service

import (
	"github.com/storeadmin/internal/models"
	"github.com/storeadmin/internal/repository"
)

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	variantRepo repository.VariantRepository
	accountRepo repository.AccountRepository
}

// NewCartService 创建购物车服务实例
func NewCartService(
	cartRepo repository.CartRepository,
	variantRepo repository.VariantRepository,
	accountRepo repository.AccountRepository,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		variantRepo: variantRepo,
		accountRepo: accountRepo,
	}
}

func (s *CartService) resolveCustomer(actor Actor) (*models.Customer, error) {
	customer, err := s.accountRepo.GetCustomerByAccount(actor.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrForbidden
	}
	return customer, nil
}

// List 顾客购物车
func (s *CartService) List(actor Actor) ([]models.CartItem, error) {
	customer, err := s.resolveCustomer(actor)
	if err != nil {
		return nil, err
	}
	return s.cartRepo.ListByCustomer(customer.ID)
}

// AddItem 加入购物车，重复变体覆盖数量
func (s *CartService) AddItem(actor Actor, variantID uint, quantity int) (*models.CartItem, error) {
	customer, err := s.resolveCustomer(actor)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, ErrValidation
	}
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrNotFound
	}

	item, err := s.cartRepo.GetItem(customer.ID, variantID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		item = &models.CartItem{
			CustomerID:       customer.ID,
			ProductVariantID: variantID,
		}
	}
	item.Quantity = quantity
	if err := s.cartRepo.Upsert(item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem 移除购物车项
func (s *CartService) RemoveItem(actor Actor, variantID uint) error {
	customer, err := s.resolveCustomer(actor)
	if err != nil {
		return err
	}
	item, err := s.cartRepo.GetItem(customer.ID, variantID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}
	return s.cartRepo.Remove(customer.ID, variantID)
}
