package handlers

import (
	"net/http"
	"time"

	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/http/response"
	"github.com/storeadmin/internal/repository"
	"github.com/storeadmin/internal/service"

	"github.com/gin-gonic/gin"
)

// GetOrders 订单列表。顾客只能看到自己的订单，后台身份可按条件过滤。
func (h *Handler) GetOrders(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	opts, ok := bindListOptions(c, constants.OrderSortFields)
	if !ok {
		return
	}
	customerID, ok := parseUintQuery(c, "customerId")
	if !ok {
		return
	}

	filter := repository.OrderListFilter{
		ListOptions:   opts,
		CustomerID:    customerID,
		Status:        c.Query("status"),
		PaymentStatus: c.Query("paymentStatus"),
	}
	from, ok := parseTimeQuery(c, "createdFrom")
	if !ok {
		return
	}
	to, ok := parseTimeQuery(c, "createdTo")
	if !ok {
		return
	}
	filter.CreatedFrom = from
	filter.CreatedTo = to

	orders, total, err := h.OrderService.List(actor, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithList(c, orders, total, opts.Page, opts.PageSize)
}

func parseTimeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
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

// GetOrder 订单详情，顾客仅可查看本人订单
func (h *Handler) GetOrder(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.Get(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// GetOrderHistory 订单流转记录
func (h *Handler) GetOrderHistory(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	history, err := h.OrderService.History(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, history)
}

// OrderItemRequest 订单项请求
type OrderItemRequest struct {
	VariantID uint   `json:"variantId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Note      string `json:"note"`
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required"`
	ShippingAddress string             `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
}

// CreateOrder 顾客下单
func (h *Handler) CreateOrder(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderItemInput{
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			Note:      item.Note,
		})
	}

	order, err := h.OrderService.Create(actor, service.CreateOrderInput{
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, order)
}

// PayOrder 支付订单，扣减库存并推进到 processing
func (h *Handler) PayOrder(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.Pay(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// DeliverOrder 发货完成订单，要求已支付
func (h *Handler) DeliverOrder(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.Deliver(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// CancelOrder 取消订单，仅限订单归属顾客或管理员
func (h *Handler) CancelOrder(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.Cancel(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatusRequest 订单状态调整请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus 后台调整订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.OrderService.UpdateStatus(actor, id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}
