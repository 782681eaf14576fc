package handlers

import (
	"github.com/storeadmin/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCart 当前顾客购物车
func (h *Handler) GetCart(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	items, err := h.CartService.List(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, items)
}

// CartItemRequest 购物车项请求
type CartItemRequest struct {
	VariantID uint `json:"variantId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// UpsertCartItem 加入购物车，重复变体覆盖数量
func (h *Handler) UpsertCartItem(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.CartService.AddItem(actor, req.VariantID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, item)
}

// RemoveCartItem 移除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	variantID, ok := parseIDParam(c, "variantId")
	if !ok {
		return
	}
	if err := h.CartService.RemoveItem(actor, variantID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}
