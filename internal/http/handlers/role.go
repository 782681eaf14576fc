package handlers

import (
	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/http/response"
	"github.com/storeadmin/internal/repository"
	"github.com/storeadmin/internal/service"

	"github.com/gin-gonic/gin"
)

// GetRoles 角色列表
func (h *Handler) GetRoles(c *gin.Context) {
	opts, ok := bindListOptions(c, constants.RoleSortFields)
	if !ok {
		return
	}

	roles, total, err := h.RoleService.List(repository.RoleListFilter{ListOptions: opts})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithList(c, roles, total, opts.Page, opts.PageSize)
}

// GetRole 角色详情（含权限集合）
func (h *Handler) GetRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	role, err := h.RoleService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, role)
}

// CreateRoleRequest 创建角色请求
type CreateRoleRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	PermissionIDs []uint `json:"permissionIds"`
}

// CreateRole 创建角色并绑定权限集合
func (h *Handler) CreateRole(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	role, err := h.RoleService.Create(service.RoleInput{
		Name:          req.Name,
		Description:   req.Description,
		PermissionIDs: req.PermissionIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, role)
}

// UpdateRoleRequest 更新角色请求。permissionIds 出现时整体替换权限集合。
type UpdateRoleRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	PermissionIDs *[]uint `json:"permissionIds"`
}

// UpdateRole 更新角色
func (h *Handler) UpdateRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	role, err := h.RoleService.Update(id, service.UpdateRoleInput{
		Name:          req.Name,
		Description:   req.Description,
		PermissionIDs: req.PermissionIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, role)
}

// DeleteRole 删除角色，仍被店长绑定时拒绝
func (h *Handler) DeleteRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.RoleService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// GetPermissions 权限目录
func (h *Handler) GetPermissions(c *gin.Context) {
	permissions, err := h.RoleService.ListPermissions()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, permissions)
}
