package handlers

import (
	"net/http"
	"strconv"

	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/http/response"
	"github.com/storeadmin/internal/models"
	"github.com/storeadmin/internal/repository"
	"github.com/storeadmin/internal/service"

	"github.com/gin-gonic/gin"
)

func bindVariantFilter(c *gin.Context) (repository.VariantListFilter, bool) {
	opts, ok := bindListOptions(c, constants.VariantSortFields)
	if !ok {
		return repository.VariantListFilter{}, false
	}
	productID, ok := parseUintQuery(c, "productId")
	if !ok {
		return repository.VariantListFilter{}, false
	}

	var inStock *bool
	if raw := c.Query("inStock"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "inStock 仅支持 true / false")
			return repository.VariantListFilter{}, false
		}
		inStock = &parsed
	}

	return repository.VariantListFilter{
		ListOptions: opts,
		ProductID:   productID,
		InStock:     inStock,
	}, true
}

// GetVariants 变体列表
func (h *Handler) GetVariants(c *gin.Context) {
	filter, ok := bindVariantFilter(c)
	if !ok {
		return
	}

	variants, total, err := h.VariantService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithList(c, variants, total, filter.Page, filter.PageSize)
}

// SearchVariants 按 SKU 或商品名搜索变体
func (h *Handler) SearchVariants(c *gin.Context) {
	filter, ok := bindVariantFilter(c)
	if !ok {
		return
	}

	variants, total, err := h.VariantService.Search(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithList(c, variants, total, filter.Page, filter.PageSize)
}

// GetVariant 变体详情
func (h *Handler) GetVariant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	variant, err := h.VariantService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, variant)
}

// VariantAttributeEntry 创建变体时的属性取值
type VariantAttributeEntry struct {
	AttributeValueID uint `json:"attributeValueId" binding:"required"`
}

// CreateVariantRequest 创建变体请求
type CreateVariantRequest struct {
	ProductID     uint                    `json:"productId" binding:"required"`
	SKU           string                  `json:"sku" binding:"required"`
	Price         models.Money            `json:"price"`
	OriginalPrice models.Money            `json:"originalPrice"`
	StockQuantity int                     `json:"stockQuantity"`
	ImageURL      string                  `json:"imageUrl"`
	Attributes    []VariantAttributeEntry `json:"attributes"`
}

// CreateVariant 创建变体及其属性组合
func (h *Handler) CreateVariant(c *gin.Context) {
	var req CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	attributes := make([]service.VariantAttributeInput, 0, len(req.Attributes))
	for _, attr := range req.Attributes {
		attributes = append(attributes, service.VariantAttributeInput{AttributeValueID: attr.AttributeValueID})
	}

	variant, err := h.VariantService.Create(service.CreateVariantInput{
		ProductID:     req.ProductID,
		SKU:           req.SKU,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
		Attributes:    attributes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, variant)
}

// UpdateVariantRequest 更新变体请求，缺省字段不变更
type UpdateVariantRequest struct {
	SKU           *string       `json:"sku"`
	Price         *models.Money `json:"price"`
	OriginalPrice *models.Money `json:"originalPrice"`
	StockQuantity *int          `json:"stockQuantity"`
	ImageURL      *string       `json:"imageUrl"`
}

// UpdateVariant 更新变体
func (h *Handler) UpdateVariant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	variant, err := h.VariantService.Update(id, service.UpdateVariantInput{
		SKU:           req.SKU,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, variant)
}

// DeleteVariant 删除变体，已有订单引用时拒绝
func (h *Handler) DeleteVariant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.VariantService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// AssignAttributeRequest 绑定属性取值请求
type AssignAttributeRequest struct {
	AttributeValueID uint `json:"attributeValueId" binding:"required"`
}

// AssignVariantAttribute 为变体绑定属性取值
func (h *Handler) AssignVariantAttribute(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req AssignAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	link, err := h.VariantService.AssignAttribute(id, req.AttributeValueID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, link)
}

// UnassignVariantAttribute 解绑变体在某属性轴上的取值
func (h *Handler) UnassignVariantAttribute(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	attributeID, ok := parseIDParam(c, "attributeId")
	if !ok {
		return
	}
	valueID, ok := parseIDParam(c, "valueId")
	if !ok {
		return
	}
	if err := h.VariantService.UnassignAttribute(id, attributeID, valueID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}
