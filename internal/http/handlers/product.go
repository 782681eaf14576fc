package handlers

import (
	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/http/response"
	"github.com/storeadmin/internal/repository"
	"github.com/storeadmin/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts 商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	opts, ok := bindListOptions(c, constants.ProductSortFields)
	if !ok {
		return
	}
	categoryID, ok := parseUintQuery(c, "categoryId")
	if !ok {
		return
	}

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		ListOptions: opts,
		CategoryID:  categoryID,
		Brand:       c.Query("brand"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithList(c, products, total, opts.Page, opts.PageSize)
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// GetProductBrands 去重后的品牌清单
func (h *Handler) GetProductBrands(c *gin.Context) {
	brands, err := h.ProductService.ListBrands()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, brands)
}

// GetProductsByCategory 某分类下的商品
func (h *Handler) GetProductsByCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}
	products, err := h.ProductService.ListByCategory(categoryID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, products)
}

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	CategoryID    uint   `json:"categoryId" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Brand         string `json:"brand"`
	Description   string `json:"description"`
	Specification string `json:"specification"`
	ImageURL      string `json:"imageUrl"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		CategoryID:    r.CategoryID,
		Name:          r.Name,
		Brand:         r.Brand,
		Description:   r.Description,
		Specification: r.Specification,
		ImageURL:      r.ImageURL,
	}
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品及其全部变体，存在被订单引用的变体时拒绝
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}
