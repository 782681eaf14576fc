package service

import (
	"context"
	"errors"
	"strings"

	"github.com/storeadmin/internal/cache"
	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/logger"
	"github.com/storeadmin/internal/models"
	"github.com/storeadmin/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountService 账号管理服务（管理员入口）
type AccountService struct {
	accountRepo  repository.AccountRepository
	roleRepo     repository.RoleRepository
	orderRepo    repository.OrderRepository
	feedbackRepo repository.FeedbackRepository
	cartRepo     repository.CartRepository
}

// NewAccountService 创建账号管理服务实例
func NewAccountService(
	accountRepo repository.AccountRepository,
	roleRepo repository.RoleRepository,
	orderRepo repository.OrderRepository,
	feedbackRepo repository.FeedbackRepository,
	cartRepo repository.CartRepository,
) *AccountService {
	return &AccountService{
		accountRepo:  accountRepo,
		roleRepo:     roleRepo,
		orderRepo:    orderRepo,
		feedbackRepo: feedbackRepo,
		cartRepo:     cartRepo,
	}
}

// List 账号列表
func (s *AccountService) List(filter repository.AccountListFilter) ([]models.Account, int64, error) {
	return s.accountRepo.List(filter)
}

// Get 账号详情
func (s *AccountService) Get(id uint) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrNotFound
	}
	return account, nil
}

// CreateAccountInput 创建账号参数
type CreateAccountInput struct {
	Username string
	Email    string
	Password string
	FullName string
	// RoleID 非空时创建店长身份，否则创建顾客身份
	RoleID  *uint
	Phone   string
	Address string
}

// Create 管理员创建账号。店长需指定角色，顾客身份与账号同事务创建。
func (s *AccountService) Create(input CreateAccountInput) (*models.Account, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	fullName := strings.TrimSpace(input.FullName)
	if email == "" || input.Password == "" || fullName == "" {
		return nil, ErrValidation
	}
	if input.RoleID != nil {
		role, err := s.roleRepo.GetByID(*input.RoleID)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, ErrNotFound
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	account := &models.Account{
		Username:     strings.TrimSpace(input.Username),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Status:       constants.AccountStatusActive,
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.accountRepo.WithTx(tx)
		if err := repo.Create(account); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return err
		}
		if input.RoleID != nil {
			return repo.CreateManager(&models.Manager{
				AccountID: account.ID,
				RoleID:    *input.RoleID,
			})
		}
		return repo.CreateCustomer(&models.Customer{
			AccountID: account.ID,
			Phone:     strings.TrimSpace(input.Phone),
			Address:   strings.TrimSpace(input.Address),
		})
	})
	if err != nil {
		return nil, err
	}
	return s.accountRepo.GetByID(account.ID)
}

// UpdateAccountInput 更新账号参数
type UpdateAccountInput struct {
	FullName *string
	Status   *string
	RoleID   *uint
	Phone    *string
	Address  *string
}

// Update 管理员更新账号
func (s *AccountService) Update(id uint, input UpdateAccountInput) (*models.Account, error) {
	account, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.accountRepo.WithTx(tx)
		if input.FullName != nil {
			name := strings.TrimSpace(*input.FullName)
			if name == "" {
				return ErrValidation
			}
			account.FullName = name
		}
		if input.Status != nil {
			switch *input.Status {
			case constants.AccountStatusActive, constants.AccountStatusDisabled:
				account.Status = *input.Status
			default:
				return ErrValidation
			}
		}
		if err := repo.Update(account); err != nil {
			return err
		}

		if input.RoleID != nil {
			role, err := s.roleRepo.WithTx(tx).GetByID(*input.RoleID)
			if err != nil {
				return err
			}
			if role == nil {
				return ErrNotFound
			}
			manager, err := repo.GetManagerByAccount(id)
			if err != nil {
				return err
			}
			if manager == nil {
				return ErrValidation
			}
			manager.RoleID = *input.RoleID
			if err := repo.UpdateManager(manager); err != nil {
				return err
			}
		}

		if input.Phone != nil || input.Address != nil {
			customer, err := repo.GetCustomerByAccount(id)
			if err != nil {
				return err
			}
			if customer != nil {
				if input.Phone != nil {
					customer.Phone = strings.TrimSpace(*input.Phone)
				}
				if input.Address != nil {
					customer.Address = strings.TrimSpace(*input.Address)
				}
				if err := repo.UpdateCustomer(customer); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	_ = cache.DelAccountAuthState(context.Background(), id)
	return s.accountRepo.GetByID(id)
}

// Delete 管理员删除账号。
// 不可删除本人；顾客有订单或店长有评价回复时拒绝，
// 否则账号与身份行级联删除。校验与删除在同一事务内执行。
func (s *AccountService) Delete(actor Actor, id uint) error {
	if actor.ID == id {
		return ErrSelfDelete
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.accountRepo.WithTx(tx)
		account, err := repo.GetByID(id)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrNotFound
		}

		if account.Customer != nil {
			orders, err := s.orderRepo.WithTx(tx).CountByCustomer(account.Customer.ID)
			if err != nil {
				return err
			}
			if orders > 0 {
				return ErrAccountInUse
			}
		}
		if account.Manager != nil {
			responses, err := s.feedbackRepo.WithTx(tx).CountResponsesByManager(account.Manager.ID)
			if err != nil {
				return err
			}
			if responses > 0 {
				return ErrAccountInUse
			}
		}

		if account.Customer != nil {
			if err := s.cartRepo.WithTx(tx).ClearByCustomer(account.Customer.ID); err != nil {
				return err
			}
			if err := repo.DeleteCustomerByAccount(id); err != nil {
				return err
			}
		}
		if account.Manager != nil {
			if err := repo.DeleteManagerByAccount(id); err != nil {
				return err
			}
		}
		return repo.Delete(id)
	})
	if err != nil {
		return err
	}

	_ = cache.DelAccountAuthState(context.Background(), id)
	logger.Infow("account_deleted", "account_id", id, "operator_id", actor.ID)
	return nil
}
