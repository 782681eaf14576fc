package service

import (
	"errors"
	"testing"

	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/models"
	"github.com/storeadmin/internal/repository"

	"gorm.io/gorm"
)

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewVariantRepository(db),
		repository.NewAccountRepository(db),
	)
}

func TestOrderCreateSnapshotsPriceAndWritesHistory(t *testing.T) {
	db := setupServiceDB(t)
	svc := newOrderService(db)

	account, _ := createTestCustomer(t, db, "buyer@example.com")
	_, variant := createTestVariant(t, db, "ORD-SKU-1", "59.00", 10)
	actor := actorFor(account, constants.RoleUser)

	order, err := svc.Create(actor, CreateOrderInput{
		Items: []OrderItemInput{{VariantID: variant.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected status pending, got %s", order.Status)
	}
	if order.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("expected payment pending, got %s", order.PaymentStatus)
	}
	if order.PaymentMethod != constants.PaymentMethodDefault {
		t.Fatalf("expected default payment method, got %s", order.PaymentMethod)
	}
	if order.ShippingAddress == "" {
		t.Fatalf("expected shipping address defaulted from customer")
	}
	if got := order.PaymentAmount.String(); got != "118.00" {
		t.Fatalf("expected amount 118.00, got %s", got)
	}
	if len(order.Items) != 1 || order.Items[0].UnitPrice.String() != "59.00" {
		t.Fatalf("expected unit price snapshot 59.00, got %+v", order.Items)
	}

	history, err := svc.History(actor, order.ID)
	if err != nil {
		t.Fatalf("list history failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected one history entry, got %d", len(history))
	}
	if history[0].PreviousStatus != nil {
		t.Fatalf("expected nil previous status on first entry")
	}
	if history[0].NewStatus != constants.OrderStatusPending {
		t.Fatalf("expected new status pending, got %s", history[0].NewStatus)
	}
	if history[0].ManagerID != nil {
		t.Fatalf("expected nil manager on customer action")
	}
}

func TestOrderCreateRejectsEmptyItems(t *testing.T) {
	db := setupServiceDB(t)
	svc := newOrderService(db)

	account, _ := createTestCustomer(t, db, "buyer@example.com")
	actor := actorFor(account, constants.RoleUser)

	if _, err := svc.Create(actor, CreateOrderInput{}); !errors.Is(err, ErrOrderEmptyItems) {
		t.Fatalf("expected ErrOrderEmptyItems, got %v", err)
	}
}

func TestOrderPayDecrementsStockAndAdvances(t *testing.T) {
	db := setupServiceDB(t)
	svc := newOrderService(db)

	account, _ := createTestCustomer(t, db, "buyer@example.com")
	_, variant := createTestVariant(t, db, "ORD-SKU-2", "10.00", 5)
	actor := actorFor(account, constants.RoleUser)

	order, err := svc.Create(actor, CreateOrderInput{
		Items: []OrderItemInput{{VariantID: variant.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	paid, err := svc.Pay(actor, order.ID)
	if err != nil {
		t.Fatalf("pay order failed: %v", err)
	}
	if paid.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("expected payment paid, got %s", paid.PaymentStatus)
	}
	if paid.PaymentDate == nil {
		t.Fatalf("expected payment date set")
	}
	if paid.Status != constants.OrderStatusProcessing {
		t.Fatalf("expected status processing, got %s", paid.Status)
	}

	reloaded := models.ProductVariant{}
	if err := db.First(&reloaded, variant.ID).Error; err != nil {
		t.Fatalf("reload variant failed: %v", err)
	}
	if reloaded.StockQuantity != 2 {
		t.Fatalf("expected stock 2, got %d", reloaded.StockQuantity)
	}
	if reloaded.SoldQuantity != 3 {
		t.Fatalf("expected sold 3, got %d", reloaded.SoldQuantity)
	}

	if _, err := svc.Pay(actor, order.ID); !errors.Is(err, ErrOrderAlreadyPaid) {
		t.Fatalf("expected ErrOrderAlreadyPaid, got %v", err)
	}
}

func TestOrderPayInsufficientStockRollsBack(t *testing.T) {
	db := setupServiceDB(t)
	svc := newOrderService(db)

	account, _ := createTestCustomer(t, db, "buyer@example.com")
	_, variant := createTestVariant(t, db, "ORD-SKU-3", "10.00", 1)
	actor := actorFor(account, constants.RoleUser)

	order, err := svc.Create(actor, CreateOrderInput{
		Items: []OrderItemInput{{VariantID: variant.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := svc.Pay(actor, order.ID); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	reloadedOrder, err := svc.Get(actor, order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloadedOrder.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("expected payment still pending after rollback, got %s", reloadedOrder.PaymentStatus)
	}
	reloaded := models.ProductVariant{}
	if err := db.First(&reloaded, variant.ID).Error; err != nil {
		t.Fatalf("reload variant failed: %v", err)
	}
	if reloaded.StockQuantity != 1 {
		t.Fatalf("expected stock untouched, got %d", reloaded.StockQuantity)
	}
}

func TestOrderPayAfterStaffAdvance(t *testing.T) {
	db := setupServiceDB(t)
	svc := newOrderService(db)

	account, _ := createTestCustomer(t, db, "buyer@example.com")
	admin, _ := createTestStaff(t, db, "admin@example.com", constants.RoleAdmin)
	_, variant := createTestVariant(t, db, "ORD-SKU-8", "10.00", 5)
	buyer := actorFor(account, constants.RoleUser)
	adminActor := actorFor(admin, constants.RoleAdmin)

	order, err := svc.Create(buyer, CreateOrderInput{
		Items: []OrderItemInput{{VariantID: variant.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := svc.UpdateStatus(adminActor, order.ID, constants.OrderStatusProcessing); err != nil {
		t.Fatalf("advance order failed: %v", err)
	}

	// 后台先行推进后顾客仍可支付，状态保持处理中
	paid, err := svc.Pay(buyer, order.ID)
	if err != nil {
		t.Fatalf("pay advanced order failed: %v", err)
	}
	if paid.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("expected payment paid, got %s", paid.PaymentStatus)
	}
	if paid.Status != constants.OrderStatusProcessing {
		t.Fatalf("expected status processing, got %s", paid.Status)
	}

	history, err := svc.History(buyer, order.ID)
	if err != nil {
		t.Fatalf("list history failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected three history entries, got %d", len(history))
	}
	last := history[len(history)-1]
	if last.PreviousStatus == nil || *last.PreviousStatus != constants.OrderStatusProcessing {
		t.Fatalf("expected previous status processing on pay entry")
	}
	if last.NewStatus != constants.OrderStatusProcessing {
		t.Fatalf("expected new status processing on pay entry, got %s", last.NewStatus)
	}
}

func TestOrderDeliverRequiresPayment(t *testing.T) {
	db := setupServiceDB(t)
	svc := newOrderService(db)

	account, _ := createTestCustomer(t, db, "buyer@example.com")
	staff, manager := createTestStaff(t, db, "manager@example.com", constants.RoleManager)
	_, variant := createTestVariant(t, db, "ORD-SKU-4", "10.00", 5)
	buyer := actorFor(account, constants.RoleUser)
	staffActor := actorFor(staff, constants.RoleManager)

	order, err := svc.Create(buyer, CreateOrderInput{
		Items: []OrderItemInput{{VariantID: variant.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := svc.Deliver(staffActor, order.ID); !errors.Is(err, ErrOrderNotPaid) {
		t.Fatalf("expected ErrOrderNotPaid, got %v", err)
	}
	if _, err := svc.Deliver(buyer, order.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for customer deliver, got %v", err)
	}

	if _, err := svc.Pay(buyer, order.ID); err != nil {
		t.Fatalf("pay order failed: %v", err)
	}
	delivered, err := svc.Deliver(staffActor, order.ID)
	if err != nil {
		t.Fatalf("deliver order failed: %v", err)
	}
	if delivered.Status != constants.OrderStatusCompleted {
		t.Fatalf("expected status completed, got %s", delivered.Status)
	}

	history, err := svc.History(staffActor, order.ID)
	if err != nil {
		t.Fatalf("list history failed: %v", err)
	}
	// 创建、支付、交付各一条
	if len(history) != 3 {
		t.Fatalf("expected three history entries, got %d", len(history))
	}
	last := history[len(history)-1]
	if last.ManagerID == nil || *last.ManagerID != manager.ID {
		t.Fatalf("expected manager recorded on staff transition")
	}
	if last.PreviousStatus == nil || *last.PreviousStatus != constants.OrderStatusProcessing {
		t.Fatalf("expected previous status processing")
	}
}

func TestOrderCancelRules(t *testing.T) {
	db := setupServiceDB(t)
	svc := newOrderService(db)

	account, _ := createTestCustomer(t, db, "buyer@example.com")
	staff, _ := createTestStaff(t, db, "manager@example.com", constants.RoleManager)
	_, variant := createTestVariant(t, db, "ORD-SKU-5", "10.00", 5)
	buyer := actorFor(account, constants.RoleUser)

	order, err := svc.Create(buyer, CreateOrderInput{
		Items: []OrderItemInput{{VariantID: variant.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// 店长不可走取消入口
	if _, err := svc.Cancel(actorFor(staff, constants.RoleManager), order.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for manager cancel, got %v", err)
	}

	cancelled, err := svc.Cancel(buyer, order.ID)
	if err != nil {
		t.Fatalf("cancel order failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected status cancelled, got %s", cancelled.Status)
	}

	// 终态不可再取消
	if _, err := svc.Cancel(buyer, order.ID); !errors.Is(err, ErrOrderTerminal) {
		t.Fatalf("expected ErrOrderTerminal, got %v", err)
	}
}

func TestOrderUpdateStatusGates(t *testing.T) {
	db := setupServiceDB(t)
	svc := newOrderService(db)

	account, _ := createTestCustomer(t, db, "buyer@example.com")
	admin, _ := createTestStaff(t, db, "admin@example.com", constants.RoleAdmin)
	manager, _ := createTestStaff(t, db, "manager@example.com", constants.RoleManager)
	_, variant := createTestVariant(t, db, "ORD-SKU-6", "10.00", 5)
	buyer := actorFor(account, constants.RoleUser)
	adminActor := actorFor(admin, constants.RoleAdmin)
	managerActor := actorFor(manager, constants.RoleManager)

	order, err := svc.Create(buyer, CreateOrderInput{
		Items: []OrderItemInput{{VariantID: variant.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// 顾客不可走后台入口
	if _, err := svc.UpdateStatus(buyer, order.ID, constants.OrderStatusProcessing); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for customer, got %v", err)
	}
	// 未知状态
	if _, err := svc.UpdateStatus(adminActor, order.ID, "shipped"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown status, got %v", err)
	}
	// 同状态拒绝
	if _, err := svc.UpdateStatus(adminActor, order.ID, constants.OrderStatusPending); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for same status, got %v", err)
	}
	// 终态流转仅管理员
	if _, err := svc.UpdateStatus(managerActor, order.ID, constants.OrderStatusRejected); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for manager terminal transition, got %v", err)
	}
	// 非管理员不可将未支付订单置为已完成
	updated, err := svc.UpdateStatus(managerActor, order.ID, constants.OrderStatusProcessing)
	if err != nil {
		t.Fatalf("manager advance failed: %v", err)
	}
	if updated.Status != constants.OrderStatusProcessing {
		t.Fatalf("expected status processing, got %s", updated.Status)
	}
	if _, err := svc.UpdateStatus(managerActor, order.ID, constants.OrderStatusCompleted); !errors.Is(err, ErrOrderNotPaid) {
		t.Fatalf("expected ErrOrderNotPaid, got %v", err)
	}
	// 管理员可强制完成
	completed, err := svc.UpdateStatus(adminActor, order.ID, constants.OrderStatusCompleted)
	if err != nil {
		t.Fatalf("admin complete failed: %v", err)
	}
	if completed.Status != constants.OrderStatusCompleted {
		t.Fatalf("expected status completed, got %s", completed.Status)
	}
}

func TestOrderOwnershipScoping(t *testing.T) {
	db := setupServiceDB(t)
	svc := newOrderService(db)

	first, _ := createTestCustomer(t, db, "first@example.com")
	second, _ := createTestCustomer(t, db, "second@example.com")
	_, variant := createTestVariant(t, db, "ORD-SKU-7", "10.00", 5)
	firstActor := actorFor(first, constants.RoleUser)
	secondActor := actorFor(second, constants.RoleUser)

	order, err := svc.Create(firstActor, CreateOrderInput{
		Items: []OrderItemInput{{VariantID: variant.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := svc.Get(secondActor, order.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other customer, got %v", err)
	}

	orders, total, err := svc.List(secondActor, repository.OrderListFilter{})
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 0 || len(orders) != 0 {
		t.Fatalf("expected no visible orders for other customer, got %d", total)
	}
}

func TestNextStatusTable(t *testing.T) {
	cases := []struct {
		from, event, role string
		want              string
		ok                bool
	}{
		{constants.OrderStatusPending, constants.OrderEventPay, constants.RoleUser, constants.OrderStatusProcessing, true},
		{constants.OrderStatusProcessing, constants.OrderEventPay, constants.RoleUser, constants.OrderStatusProcessing, true},
		{constants.OrderStatusPending, constants.OrderEventProcess, constants.RoleManager, constants.OrderStatusProcessing, true},
		{constants.OrderStatusProcessing, constants.OrderEventDeliver, constants.RoleAdmin, constants.OrderStatusCompleted, true},
		{constants.OrderStatusProcessing, constants.OrderEventCancel, constants.RoleManager, "", false},
		{constants.OrderStatusCompleted, constants.OrderEventCancel, constants.RoleAdmin, "", false},
		{constants.OrderStatusPending, constants.OrderEventDeliver, constants.RoleAdmin, "", false},
	}
	for _, tc := range cases {
		got, ok := nextStatus(tc.from, tc.event, tc.role)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("nextStatus(%s,%s,%s) = (%s,%v), want (%s,%v)",
				tc.from, tc.event, tc.role, got, ok, tc.want, tc.ok)
		}
	}
}
