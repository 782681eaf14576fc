package handlers

import (
	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/http/response"
	"github.com/storeadmin/internal/repository"
	"github.com/storeadmin/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCategories 分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	opts, ok := bindListOptions(c, constants.CategorySortFields)
	if !ok {
		return
	}

	categories, total, err := h.CategoryService.List(repository.CategoryListFilter{ListOptions: opts})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithList(c, categories, total, opts.Page, opts.PageSize)
}

// GetCategory 分类详情
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	category, err := h.CategoryService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.CategoryService.Create(service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.CategoryService.Update(id, service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类，分类下仍有商品时拒绝
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}
