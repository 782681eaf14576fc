package handlers

import (
	"net/http"
	"time"

	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/http/response"
	"github.com/storeadmin/internal/models"
	"github.com/storeadmin/internal/repository"
	"github.com/storeadmin/internal/service"

	"github.com/gin-gonic/gin"
)

// GetDiscounts 折扣列表
func (h *Handler) GetDiscounts(c *gin.Context) {
	opts, ok := bindListOptions(c, constants.DiscountSortFields)
	if !ok {
		return
	}
	variantID, ok := parseUintQuery(c, "variantId")
	if !ok {
		return
	}

	discounts, total, err := h.DiscountService.List(repository.DiscountListFilter{
		ListOptions:      opts,
		ProductVariantID: variantID,
		Type:             c.Query("type"),
		Status:           c.Query("status"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithList(c, discounts, total, opts.Page, opts.PageSize)
}

// GetDiscount 折扣详情
func (h *Handler) GetDiscount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	discount, err := h.DiscountService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, discount)
}

// DiscountRequest 折扣创建/更新请求
type DiscountRequest struct {
	VariantID uint         `json:"variantId"`
	Code      string       `json:"code"`
	Type      string       `json:"type" binding:"required"`
	Value     models.Money `json:"value"`
	Status    string       `json:"status"`
	StartDate string       `json:"startDate"`
	EndDate   string       `json:"endDate"`
}

func (r DiscountRequest) toInput(c *gin.Context) (service.DiscountInput, bool) {
	startDate, ok := parseTimeField(c, "startDate", r.StartDate)
	if !ok {
		return service.DiscountInput{}, false
	}
	endDate, ok := parseTimeField(c, "endDate", r.EndDate)
	if !ok {
		return service.DiscountInput{}, false
	}
	return service.DiscountInput{
		ProductVariantID: r.VariantID,
		Code:             r.Code,
		Type:             r.Type,
		Value:            r.Value,
		Status:           r.Status,
		StartDate:        startDate,
		EndDate:          endDate,
	}, true
}

func parseTimeField(c *gin.Context, name, raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, name+" 需为 RFC3339 时间格式")
		return nil, false
	}
	return &parsed, true
}

// CreateDiscount 创建折扣
func (h *Handler) CreateDiscount(c *gin.Context) {
	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	input, ok := req.toInput(c)
	if !ok {
		return
	}

	discount, err := h.DiscountService.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, discount)
}

// UpdateDiscount 更新折扣
func (h *Handler) UpdateDiscount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	input, ok := req.toInput(c)
	if !ok {
		return
	}

	discount, err := h.DiscountService.Update(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, discount)
}

// DeleteDiscount 删除折扣
func (h *Handler) DeleteDiscount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.DiscountService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}
