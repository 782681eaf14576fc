package handlers

import (
	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/http/response"
	"github.com/storeadmin/internal/repository"
	"github.com/storeadmin/internal/service"

	"github.com/gin-gonic/gin"
)

// GetUsers 账号列表（管理员）
func (h *Handler) GetUsers(c *gin.Context) {
	opts, ok := bindListOptions(c, constants.AccountSortFields)
	if !ok {
		return
	}

	accounts, total, err := h.AccountService.List(repository.AccountListFilter{
		ListOptions: opts,
		Status:      c.Query("status"),
		Role:        c.Query("role"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithList(c, accounts, total, opts.Page, opts.PageSize)
}

// GetUser 账号详情
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	account, err := h.AccountService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, account)
}

// CreateUserRequest 创建账号请求。指定 roleId 时创建店长，否则创建顾客。
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"required"`
	RoleID   *uint  `json:"roleId"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// CreateUser 管理员创建账号
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.AccountService.Create(service.CreateAccountInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		RoleID:   req.RoleID,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("account_created", "account_id", account.ID)
	response.Created(c, account)
}

// UpdateUserRequest 更新账号请求，缺省字段不变更
type UpdateUserRequest struct {
	FullName *string `json:"fullName"`
	Status   *string `json:"status"`
	RoleID   *uint   `json:"roleId"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// UpdateUser 管理员更新账号
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.AccountService.Update(id, service.UpdateAccountInput{
		FullName: req.FullName,
		Status:   req.Status,
		RoleID:   req.RoleID,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, account)
}

// DeleteUser 管理员删除账号，不可删除本人
func (h *Handler) DeleteUser(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.AccountService.Delete(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}
