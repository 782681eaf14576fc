package service

import (
	"strings"
	"time"

	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/logger"
	"github.com/storeadmin/internal/models"
	"github.com/storeadmin/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	variantRepo repository.VariantRepository
	accountRepo repository.AccountRepository
}

// NewOrderService 创建订单服务实例
func NewOrderService(
	orderRepo repository.OrderRepository,
	variantRepo repository.VariantRepository,
	accountRepo repository.AccountRepository,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		variantRepo: variantRepo,
		accountRepo: accountRepo,
	}
}

// OrderItemInput 下单订单项参数
type OrderItemInput struct {
	VariantID uint
	Quantity  int
	Note      string
}

// CreateOrderInput 下单参数
type CreateOrderInput struct {
	Items           []OrderItemInput
	ShippingAddress string
	PaymentMethod   string
}

// Create 顾客下单。订单、订单项与首条流转记录在同一事务内落库。
func (s *OrderService) Create(actor Actor, input CreateOrderInput) (*models.Order, error) {
	customer, err := s.accountRepo.GetCustomerByAccount(actor.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrForbidden
	}
	if len(input.Items) == 0 {
		return nil, ErrOrderEmptyItems
	}

	shippingAddress := strings.TrimSpace(input.ShippingAddress)
	if shippingAddress == "" {
		shippingAddress = customer.Address
	}
	if shippingAddress == "" {
		return nil, ErrValidation
	}
	paymentMethod := strings.TrimSpace(input.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = constants.PaymentMethodDefault
	}

	var order *models.Order
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		variantRepo := s.variantRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(input.Items))
		for _, item := range input.Items {
			if item.Quantity <= 0 {
				return ErrValidation
			}
			variant, err := variantRepo.GetByID(item.VariantID)
			if err != nil {
				return err
			}
			if variant == nil {
				return ErrNotFound
			}
			// 价格快照：下单时的变体价格
			items = append(items, models.OrderItem{
				ProductVariantID: variant.ID,
				Quantity:         item.Quantity,
				UnitPrice:        variant.Price,
				Note:             strings.TrimSpace(item.Note),
			})
			total = total.Add(variant.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		order = &models.Order{
			CustomerID:      customer.ID,
			Status:          constants.OrderStatusPending,
			PaymentStatus:   constants.PaymentStatusPending,
			PaymentMethod:   paymentMethod,
			PaymentAmount:   models.NewMoneyFromDecimal(total),
			ShippingAddress: shippingAddress,
		}
		if err := orderRepo.Create(order, items); err != nil {
			return err
		}

		// 创建即写首条流转记录：空 -> pending
		entry := &models.OrderHistory{
			OrderID:        order.ID,
			ProcessingTime: time.Now(),
			PreviousStatus: nil,
			NewStatus:      constants.OrderStatusPending,
		}
		return orderRepo.CreateHistory(entry)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_created",
		"order_id", order.ID,
		"customer_id", customer.ID,
		"amount", order.PaymentAmount.String(),
	)
	return s.orderRepo.GetByID(order.ID)
}

// Get 获取订单详情，顾客仅可见本人订单
func (s *OrderService) Get(actor Actor, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if !actor.IsStaff() {
		customer, err := s.accountRepo.GetCustomerByAccount(actor.ID)
		if err != nil {
			return nil, err
		}
		if customer == nil || customer.ID != order.CustomerID {
			return nil, ErrForbidden
		}
	}
	return order, nil
}

// List 订单列表，顾客仅可见本人订单
func (s *OrderService) List(actor Actor, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if !actor.IsStaff() {
		customer, err := s.accountRepo.GetCustomerByAccount(actor.ID)
		if err != nil {
			return nil, 0, err
		}
		if customer == nil {
			return nil, 0, ErrForbidden
		}
		filter.CustomerID = customer.ID
	}
	return s.orderRepo.List(filter)
}

// History 订单流转记录
func (s *OrderService) History(actor Actor, orderID uint) ([]models.OrderHistory, error) {
	if _, err := s.Get(actor, orderID); err != nil {
		return nil, err
	}
	return s.orderRepo.ListHistory(orderID)
}

// Pay 支付订单：置已支付、扣减库存并推进到处理中
func (s *OrderService) Pay(actor Actor, id uint) (*models.Order, error) {
	order, err := s.Get(actor, id)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == constants.PaymentStatusPaid {
		return nil, ErrOrderAlreadyPaid
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		variantRepo := s.variantRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		// 支付时才占用库存，未支付订单不消耗库存
		for _, item := range order.Items {
			ok, err := variantRepo.AdjustStock(item.ProductVariantID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return ErrInsufficientStock
			}
		}

		now := time.Now()
		if err := orderRepo.UpdateStatus(order.ID, map[string]interface{}{
			"payment_status": constants.PaymentStatusPaid,
			"payment_date":   now,
			"updated_at":     now,
		}); err != nil {
			return err
		}
		return s.transition(tx, order, constants.OrderEventPay, actor)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_paid", "order_id", order.ID, "actor_id", actor.ID)
	return s.orderRepo.GetByID(order.ID)
}

// Deliver 交付订单：要求已支付，处理中 -> 已完成
func (s *OrderService) Deliver(actor Actor, id uint) (*models.Order, error) {
	if !actor.IsStaff() {
		return nil, ErrForbidden
	}
	order, err := s.Get(actor, id)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus != constants.PaymentStatusPaid {
		return nil, ErrOrderNotPaid
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return s.transition(tx, order, constants.OrderEventDeliver, actor)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_delivered", "order_id", order.ID, "actor_id", actor.ID)
	return s.orderRepo.GetByID(order.ID)
}

// Cancel 取消订单：本人或管理员，仅限非终态
func (s *OrderService) Cancel(actor Actor, id uint) (*models.Order, error) {
	if actor.Role == constants.RoleManager {
		return nil, ErrForbidden
	}
	order, err := s.Get(actor, id)
	if err != nil {
		return nil, err
	}
	if order.IsTerminal() {
		return nil, ErrOrderTerminal
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return s.transition(tx, order, constants.OrderEventCancel, actor)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_cancelled", "order_id", order.ID, "actor_id", actor.ID)
	return s.orderRepo.GetByID(order.ID)
}

// UpdateStatus 后台状态流转入口，按状态机推进
func (s *OrderService) UpdateStatus(actor Actor, id uint, target string) (*models.Order, error) {
	if !actor.IsStaff() {
		return nil, ErrForbidden
	}
	target = strings.TrimSpace(target)
	if !isKnownOrderStatus(target) {
		return nil, ErrValidation
	}

	order, err := s.Get(actor, id)
	if err != nil {
		return nil, err
	}
	if order.Status == target {
		return nil, ErrInvalidTransition
	}

	event, ok := eventForTarget(target)
	if !ok {
		return nil, ErrInvalidTransition
	}
	// 终态流转仅管理员可执行
	if (target == constants.OrderStatusCancelled || target == constants.OrderStatusRejected) && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	// 非管理员不得将未支付订单置为已完成
	if target == constants.OrderStatusCompleted && !actor.IsAdmin() &&
		order.PaymentStatus != constants.PaymentStatusPaid {
		return nil, ErrOrderNotPaid
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return s.transition(tx, order, event, actor)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_status_updated",
		"order_id", order.ID,
		"target", target,
		"actor_id", actor.ID,
	)
	return s.orderRepo.GetByID(order.ID)
}

// transition 执行一次状态流转：查表校验后写状态并追加恰好一条流转记录。
// 后台身份要求已解析的店长记录，顾客侧动作记录空的 manager_id。
func (s *OrderService) transition(tx *gorm.DB, order *models.Order, event string, actor Actor) error {
	to, ok := nextStatus(order.Status, event, actor.Role)
	if !ok {
		return ErrInvalidTransition
	}

	var managerID *uint
	if actor.IsStaff() {
		manager, err := s.accountRepo.WithTx(tx).GetManagerByAccount(actor.ID)
		if err != nil {
			return err
		}
		if manager == nil {
			return ErrManagerRequired
		}
		managerID = &manager.ID
	}

	orderRepo := s.orderRepo.WithTx(tx)
	now := time.Now()
	if err := orderRepo.UpdateStatus(order.ID, map[string]interface{}{
		"status":     to,
		"updated_at": now,
	}); err != nil {
		return err
	}

	previous := order.Status
	entry := &models.OrderHistory{
		OrderID:        order.ID,
		ManagerID:      managerID,
		ProcessingTime: now,
		PreviousStatus: &previous,
		NewStatus:      to,
	}
	if err := orderRepo.CreateHistory(entry); err != nil {
		return err
	}
	order.Status = to
	return nil
}
