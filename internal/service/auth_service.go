package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/storeadmin/internal/cache"
	"github.com/storeadmin/internal/config"
	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/models"
	"github.com/storeadmin/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService 认证服务
type AuthService struct {
	cfg         *config.Config
	accountRepo repository.AccountRepository
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, accountRepo repository.AccountRepository) *AuthService {
	return &AuthService{
		cfg:         cfg,
		accountRepo: accountRepo,
	}
}

// Actor 当前请求的操作者
type Actor struct {
	ID       uint
	Email    string
	FullName string
	Role     string
}

// IsAdmin 是否为管理员
func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

// IsStaff 是否为后台身份（admin / manager）
func (a Actor) IsStaff() bool {
	return a.Role == constants.RoleAdmin || a.Role == constants.RoleManager
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// AccessClaims 访问令牌声明
type AccessClaims struct {
	AccountID    uint   `json:"account_id"`
	Role         string `json:"role"`
	TokenVersion int    `json:"token_version"`
	jwt.RegisteredClaims
}

// RefreshClaims 刷新令牌声明
type RefreshClaims struct {
	AccountID    uint `json:"account_id"`
	TokenVersion int  `json:"token_version"`
	jwt.RegisteredClaims
}

// ResolveRole 解析账号角色，未绑定店长身份时回退为 user
func ResolveRole(account *models.Account) string {
	if account == nil || account.Manager == nil || account.Manager.Role == nil {
		return constants.RoleUser
	}
	switch account.Manager.Role.Name {
	case constants.RoleAdmin:
		return constants.RoleAdmin
	case constants.RoleManager:
		return constants.RoleManager
	default:
		return constants.RoleUser
	}
}

// GenerateAccessToken 生成访问令牌
func (s *AuthService) GenerateAccessToken(account *models.Account) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.JWT.AccessTTL())

	claims := AccessClaims{
		AccountID:    account.ID,
		Role:         ResolveRole(account),
		TokenVersion: account.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// GenerateRefreshToken 生成刷新令牌
func (s *AuthService) GenerateRefreshToken(account *models.Account) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.JWT.RefreshTTL())

	claims := RefreshClaims{
		AccountID:    account.ID,
		TokenVersion: account.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.RefreshSigningKey()))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseAccessToken 解析访问令牌
func (s *AuthService) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims, ok := token.Claims.(*AccessClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// ParseRefreshToken 解析刷新令牌
func (s *AuthService) ParseRefreshToken(tokenString string) (*RefreshClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &RefreshClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.RefreshSigningKey()), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims, ok := token.Claims.(*RefreshClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// LoginResult 登录结果
type LoginResult struct {
	Account          *models.Account
	Role             string
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Login 账号登录
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	account, err := s.accountRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}
	if account.Status == constants.AccountStatusDisabled {
		return nil, ErrAccountDisabled
	}
	if err := s.VerifyPassword(account.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(account)
}

// Refresh 用刷新令牌换发新的访问令牌
func (s *AuthService) Refresh(refreshToken string) (*LoginResult, error) {
	claims, err := s.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	account, err := s.accountRepo.GetByID(claims.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidToken
	}
	if account.Status == constants.AccountStatusDisabled {
		return nil, ErrAccountDisabled
	}
	if account.TokenVersion != claims.TokenVersion {
		return nil, ErrInvalidToken
	}
	return s.issueTokens(account)
}

func (s *AuthService) issueTokens(account *models.Account) (*LoginResult, error) {
	accessToken, accessExpiresAt, err := s.GenerateAccessToken(account)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExpiresAt, err := s.GenerateRefreshToken(account)
	if err != nil {
		return nil, err
	}
	role := ResolveRole(account)
	_ = cache.SetAccountAuthState(context.Background(), cache.BuildAccountAuthState(account, role))
	return &LoginResult{
		Account:          account,
		Role:             role,
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpiresAt,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

// RegisterInput 注册参数
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Phone    string
	Address  string
}

// Register 注册顾客账号，账号与顾客身份在同一事务内创建
func (s *AuthService) Register(input RegisterInput) (*models.Account, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	hash, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Username:     strings.TrimSpace(input.Username),
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
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
		customer := &models.Customer{
			AccountID: account.ID,
			Phone:     strings.TrimSpace(input.Phone),
			Address:   strings.TrimSpace(input.Address),
		}
		return repo.CreateCustomer(customer)
	})
	if err != nil {
		return nil, err
	}
	return s.accountRepo.GetByID(account.ID)
}

// GetProfile 获取账号资料
func (s *AuthService) GetProfile(accountID uint) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrNotFound
	}
	return account, nil
}

// UpdateProfileInput 更新资料参数
type UpdateProfileInput struct {
	FullName *string
	Phone    *string
	Address  *string
}

// UpdateProfile 更新账号资料
func (s *AuthService) UpdateProfile(accountID uint, input UpdateProfileInput) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrNotFound
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.accountRepo.WithTx(tx)
		if input.FullName != nil {
			name := strings.TrimSpace(*input.FullName)
			if name == "" {
				return ErrValidation
			}
			account.FullName = name
			if err := repo.Update(account); err != nil {
				return err
			}
		}
		if input.Phone == nil && input.Address == nil {
			return nil
		}
		customer, err := repo.GetCustomerByAccount(accountID)
		if err != nil {
			return err
		}
		if customer == nil {
			return nil
		}
		if input.Phone != nil {
			customer.Phone = strings.TrimSpace(*input.Phone)
		}
		if input.Address != nil {
			customer.Address = strings.TrimSpace(*input.Address)
		}
		return repo.UpdateCustomer(customer)
	})
	if err != nil {
		return nil, err
	}
	_ = cache.DelAccountAuthState(context.Background(), accountID)
	return s.accountRepo.GetByID(accountID)
}

// ChangePassword 修改密码，旧令牌全部失效
func (s *AuthService) ChangePassword(accountID uint, currentPassword, newPassword string) error {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrNotFound
	}
	if err := s.VerifyPassword(account.PasswordHash, currentPassword); err != nil {
		return ErrInvalidPassword
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	account.TokenVersion++
	if err := s.accountRepo.Update(account); err != nil {
		return err
	}
	_ = cache.DelAccountAuthState(context.Background(), accountID)
	return nil
}

// Logout 登出，令已签发令牌失效
func (s *AuthService) Logout(accountID uint) error {
	if err := s.accountRepo.BumpTokenVersion(accountID); err != nil {
		return err
	}
	_ = cache.DelAccountAuthState(context.Background(), accountID)
	return nil
}

// ResolveActor 根据访问令牌声明解析操作者，缓存命中时不回表
func (s *AuthService) ResolveActor(ctx context.Context, claims *AccessClaims) (*Actor, error) {
	if claims == nil {
		return nil, ErrInvalidToken
	}

	if state, hit, err := cache.GetAccountAuthState(ctx, claims.AccountID); err == nil && hit {
		if state.Status == constants.AccountStatusDisabled {
			return nil, ErrAccountDisabled
		}
		if state.TokenVersion != claims.TokenVersion {
			return nil, ErrInvalidToken
		}
		return &Actor{
			ID:       state.AccountID,
			Email:    state.Email,
			FullName: state.FullName,
			Role:     state.Role,
		}, nil
	}

	account, err := s.accountRepo.GetByID(claims.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidToken
	}
	if account.Status == constants.AccountStatusDisabled {
		return nil, ErrAccountDisabled
	}
	if account.TokenVersion != claims.TokenVersion {
		return nil, ErrInvalidToken
	}
	role := ResolveRole(account)
	_ = cache.SetAccountAuthState(ctx, cache.BuildAccountAuthState(account, role))
	return &Actor{
		ID:       account.ID,
		Email:    account.Email,
		FullName: account.FullName,
		Role:     role,
	}, nil
}
