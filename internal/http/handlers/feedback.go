package handlers

import (
	"net/http"
	"strconv"

	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/http/response"
	"github.com/storeadmin/internal/repository"
	"github.com/storeadmin/internal/service"

	"github.com/gin-gonic/gin"
)

// GetFeedbackList 评价列表
func (h *Handler) GetFeedbackList(c *gin.Context) {
	opts, ok := bindListOptions(c, constants.FeedbackSortFields)
	if !ok {
		return
	}
	productID, ok := parseUintQuery(c, "productId")
	if !ok {
		return
	}
	variantID, ok := parseUintQuery(c, "variantId")
	if !ok {
		return
	}

	rating := 0
	if raw := c.Query("rating"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 5 {
			response.Fail(c, http.StatusBadRequest, "rating 取值范围为 1-5")
			return
		}
		rating = parsed
	}

	feedbacks, total, err := h.FeedbackService.List(repository.FeedbackListFilter{
		ListOptions:      opts,
		ProductID:        productID,
		ProductVariantID: variantID,
		Rating:           rating,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithList(c, feedbacks, total, opts.Page, opts.PageSize)
}

// GetFeedback 评价详情
func (h *Handler) GetFeedback(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	feedback, err := h.FeedbackService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, feedback)
}

// CreateFeedbackRequest 评价创建请求
type CreateFeedbackRequest struct {
	VariantID uint   `json:"variantId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment" binding:"required"`
}

// CreateFeedback 顾客创建评价
func (h *Handler) CreateFeedback(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	feedback, err := h.FeedbackService.Create(actor, service.CreateFeedbackInput{
		ProductVariantID: req.VariantID,
		Rating:           req.Rating,
		Comment:          req.Comment,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, feedback)
}

// DeleteFeedback 删除评价及其回复
func (h *Handler) DeleteFeedback(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.FeedbackService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// FeedbackResponseRequest 评价回复请求
type FeedbackResponseRequest struct {
	Content string `json:"content" binding:"required"`
}

// RespondFeedback 店长回复评价
func (h *Handler) RespondFeedback(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req FeedbackResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	feedbackResponse, err := h.FeedbackService.Respond(actor, id, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, feedbackResponse)
}

// UpdateFeedbackResponse 更新回复，仅限回复作者
func (h *Handler) UpdateFeedbackResponse(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req FeedbackResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	feedbackResponse, err := h.FeedbackService.UpdateResponse(actor, id, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, feedbackResponse)
}

// DeleteFeedbackResponse 删除回复，仅限回复作者
func (h *Handler) DeleteFeedbackResponse(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.FeedbackService.DeleteResponse(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}
