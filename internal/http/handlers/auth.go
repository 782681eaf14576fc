package handlers

import (
	"github.com/storeadmin/internal/http/response"
	"github.com/storeadmin/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login 账号登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("account_login", "account_id", result.Account.ID, "role", result.Role)
	response.Success(c, loginPayload(result))
}

// RefreshRequest 刷新令牌请求
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Refresh 刷新访问令牌
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.AuthService.Refresh(req.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, loginPayload(result))
}

func loginPayload(result *service.LoginResult) gin.H {
	return gin.H{
		"account":          result.Account,
		"role":             result.Role,
		"accessToken":      result.AccessToken,
		"accessExpiresAt":  result.AccessExpiresAt,
		"refreshToken":     result.RefreshToken,
		"refreshExpiresAt": result.RefreshExpiresAt,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Register 注册顾客账号
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.AuthService.Register(service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("account_registered", "account_id", account.ID)
	response.Created(c, account)
}

// Me 当前登录账号
func (h *Handler) Me(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	account, err := h.AuthService.GetProfile(actor.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"account": account,
		"role":    actor.Role,
	})
}

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// UpdateProfile 更新当前账号资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.AuthService.UpdateProfile(actor.ID, service.UpdateProfileInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, account)
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// ChangePassword 修改当前账号密码，成功后旧令牌全部失效
func (h *Handler) ChangePassword(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.AuthService.ChangePassword(actor.ID, req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("account_password_changed", "account_id", actor.ID)
	response.NoContent(c)
}

// Logout 登出，使当前账号的全部令牌失效
func (h *Handler) Logout(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.AuthService.Logout(actor.ID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}
