package repository

import (
	"errors"

	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/models"

	"gorm.io/gorm"
)

// AccountRepository 账号数据访问接口
type AccountRepository interface {
	List(filter AccountListFilter) ([]models.Account, int64, error)
	GetByID(id uint) (*models.Account, error)
	GetByEmail(email string) (*models.Account, error)
	Create(account *models.Account) error
	Update(account *models.Account) error
	Delete(id uint) error
	BumpTokenVersion(id uint) error
	GetManagerByAccount(accountID uint) (*models.Manager, error)
	GetManagerByID(managerID uint) (*models.Manager, error)
	CreateManager(manager *models.Manager) error
	UpdateManager(manager *models.Manager) error
	DeleteManagerByAccount(accountID uint) error
	CountManagersByRole(roleID uint) (int64, error)
	GetCustomerByAccount(accountID uint) (*models.Customer, error)
	CreateCustomer(customer *models.Customer) error
	UpdateCustomer(customer *models.Customer) error
	DeleteCustomerByAccount(accountID uint) error
	WithTx(tx *gorm.DB) *GormAccountRepository
}

// GormAccountRepository GORM 实现
type GormAccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository 创建账号仓库
func NewAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAccountRepository) WithTx(tx *gorm.DB) *GormAccountRepository {
	if tx == nil {
		return r
	}
	return &GormAccountRepository{db: tx}
}

func (r *GormAccountRepository) withIdentities(query *gorm.DB) *gorm.DB {
	return query.Preload("Manager").Preload("Manager.Role").Preload("Customer")
}

// List 账号列表
func (r *GormAccountRepository) List(filter AccountListFilter) ([]models.Account, int64, error) {
	query := r.db.Model(&models.Account{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("email LIKE ? OR full_name LIKE ?", pattern, pattern)
	}
	if filter.Role != "" {
		query = query.
			Joins("LEFT JOIN managers ON managers.account_id = accounts.id AND managers.deleted_at IS NULL").
			Joins("LEFT JOIN roles ON roles.id = managers.role_id")
		if filter.Role == "user" {
			query = query.Where("managers.id IS NULL")
		} else {
			query = query.Where("roles.name = ?", filter.Role)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accounts []models.Account
	query = applySort(r.withIdentities(query), filter.SortBy, filter.SortOrder, constants.AccountSortFields)
	if err := applyPagination(query, filter.Page, filter.PageSize).Find(&accounts).Error; err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// GetByID 根据 ID 获取账号（含身份）
func (r *GormAccountRepository) GetByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := r.withIdentities(r.db).First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// GetByEmail 根据邮箱获取账号（含身份）
func (r *GormAccountRepository) GetByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := r.withIdentities(r.db).Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// Create 创建账号
func (r *GormAccountRepository) Create(account *models.Account) error {
	return r.db.Create(account).Error
}

// Update 更新账号
func (r *GormAccountRepository) Update(account *models.Account) error {
	return r.db.Save(account).Error
}

// Delete 删除账号
func (r *GormAccountRepository) Delete(id uint) error {
	return r.db.Delete(&models.Account{}, id).Error
}

// BumpTokenVersion 令旧令牌失效
func (r *GormAccountRepository) BumpTokenVersion(id uint) error {
	return r.db.Model(&models.Account{}).Where("id = ?", id).
		Update("token_version", gorm.Expr("token_version + 1")).Error
}

// GetManagerByAccount 根据账号获取店长身份
func (r *GormAccountRepository) GetManagerByAccount(accountID uint) (*models.Manager, error) {
	var manager models.Manager
	err := r.db.Preload("Role").Where("account_id = ?", accountID).First(&manager).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &manager, nil
}

// GetManagerByID 根据 ID 获取店长
func (r *GormAccountRepository) GetManagerByID(managerID uint) (*models.Manager, error) {
	var manager models.Manager
	if err := r.db.Preload("Role").First(&manager, managerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &manager, nil
}

// CreateManager 创建店长身份
func (r *GormAccountRepository) CreateManager(manager *models.Manager) error {
	return r.db.Create(manager).Error
}

// UpdateManager 更新店长身份
func (r *GormAccountRepository) UpdateManager(manager *models.Manager) error {
	return r.db.Save(manager).Error
}

// DeleteManagerByAccount 删除账号的店长身份
func (r *GormAccountRepository) DeleteManagerByAccount(accountID uint) error {
	return r.db.Where("account_id = ?", accountID).Delete(&models.Manager{}).Error
}

// CountManagersByRole 统计某角色下店长数
func (r *GormAccountRepository) CountManagersByRole(roleID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Manager{}).Where("role_id = ?", roleID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetCustomerByAccount 根据账号获取顾客身份
func (r *GormAccountRepository) GetCustomerByAccount(accountID uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Where("account_id = ?", accountID).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// CreateCustomer 创建顾客身份
func (r *GormAccountRepository) CreateCustomer(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// UpdateCustomer 更新顾客身份
func (r *GormAccountRepository) UpdateCustomer(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// DeleteCustomerByAccount 删除账号的顾客身份
func (r *GormAccountRepository) DeleteCustomerByAccount(accountID uint) error {
	return r.db.Where("account_id = ?", accountID).Delete(&models.Customer{}).Error
}
