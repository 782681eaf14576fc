package constants

// 角色常量
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// AssignableRoles 可在角色管理中出现的角色集合
var AssignableRoles = []string{RoleAdmin, RoleManager, RoleUser}

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
	OrderStatusRejected   = "rejected"
)

// OrderStatuses 订单状态全集
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusCompleted,
	OrderStatusCancelled,
	OrderStatusRejected,
}

// 支付状态常量
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// 默认支付方式
const (
	PaymentMethodDefault = "Credit Card"
)

// 订单状态事件常量
const (
	OrderEventPay     = "pay"
	OrderEventProcess = "process"
	OrderEventDeliver = "deliver"
	OrderEventCancel  = "cancel"
	OrderEventReject  = "reject"
)

// 折扣类型常量
const (
	DiscountTypePercentage  = "percentage"
	DiscountTypeFixedAmount = "fixed_amount"
)

// 折扣状态常量
const (
	DiscountStatusActive   = "active"
	DiscountStatusInactive = "inactive"
	DiscountStatusExpired  = "expired"
)

// 账号状态常量
const (
	AccountStatusActive   = "active"
	AccountStatusDisabled = "disabled"
)

// 评分范围常量
const (
	FeedbackRatingMin = 1
	FeedbackRatingMax = 5
)

// 分页常量
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// 排序方向常量
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// 各列表接口允许的排序字段白名单
var (
	CategorySortFields  = []string{"id", "name", "created_at", "updated_at"}
	AttributeSortFields = []string{"id", "name", "created_at", "updated_at"}
	ProductSortFields   = []string{"id", "name", "brand", "created_at", "updated_at"}
	VariantSortFields   = []string{"id", "sku", "price", "stock_quantity", "sold_quantity", "created_at", "updated_at"}
	OrderSortFields     = []string{"id", "status", "payment_status", "payment_amount", "created_at", "updated_at"}
	FeedbackSortFields  = []string{"id", "rating", "created_at", "updated_at"}
	DiscountSortFields  = []string{"id", "code", "value", "start_date", "end_date", "created_at", "updated_at"}
	AccountSortFields   = []string{"id", "email", "full_name", "created_at", "updated_at"}
	RoleSortFields      = []string{"id", "name", "created_at", "updated_at"}
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "sa"
)
