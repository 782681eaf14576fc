package handlers

import (
	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/http/response"
	"github.com/storeadmin/internal/repository"
	"github.com/storeadmin/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAttributes 属性列表
func (h *Handler) GetAttributes(c *gin.Context) {
	opts, ok := bindListOptions(c, constants.AttributeSortFields)
	if !ok {
		return
	}

	attributes, total, err := h.AttributeService.List(repository.AttributeListFilter{ListOptions: opts})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithList(c, attributes, total, opts.Page, opts.PageSize)
}

// GetAttribute 属性详情（含取值）
func (h *Handler) GetAttribute(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	attribute, err := h.AttributeService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, attribute)
}

// AttributeRequest 属性创建/更新请求
type AttributeRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateAttribute 创建属性
func (h *Handler) CreateAttribute(c *gin.Context) {
	var req AttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	attribute, err := h.AttributeService.Create(service.AttributeInput{Name: req.Name})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, attribute)
}

// UpdateAttribute 更新属性
func (h *Handler) UpdateAttribute(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req AttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	attribute, err := h.AttributeService.Update(id, service.AttributeInput{Name: req.Name})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, attribute)
}

// DeleteAttribute 删除属性，取值随属性级联删除，被变体引用时拒绝
func (h *Handler) DeleteAttribute(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.AttributeService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// AttributeValueRequest 属性取值请求
type AttributeValueRequest struct {
	Value string `json:"value" binding:"required"`
}

// AddAttributeValue 新增属性取值
func (h *Handler) AddAttributeValue(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req AttributeValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	value, err := h.AttributeService.AddValue(id, req.Value)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, value)
}

// RemoveAttributeValue 删除属性取值，被变体引用时拒绝
func (h *Handler) RemoveAttributeValue(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	valueID, ok := parseIDParam(c, "valueId")
	if !ok {
		return
	}
	if err := h.AttributeService.RemoveValue(id, valueID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}
