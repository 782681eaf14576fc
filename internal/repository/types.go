package repository

import "time"

// ListOptions 所有列表接口共享的分页与排序参数
type ListOptions struct {
	Page      int
	PageSize  int
	Search    string
	SortBy    string
	SortOrder string
}

// CategoryListFilter 查询分类列表的过滤条件
type CategoryListFilter struct {
	ListOptions
}

// AttributeListFilter 查询属性列表的过滤条件
type AttributeListFilter struct {
	ListOptions
}

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	ListOptions
	CategoryID uint
	Brand      string
}

// VariantListFilter 查询变体列表的过滤条件
type VariantListFilter struct {
	ListOptions
	ProductID uint
	InStock   *bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	ListOptions
	CustomerID    uint
	Status        string
	PaymentStatus string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// FeedbackListFilter 查询评价列表的过滤条件
type FeedbackListFilter struct {
	ListOptions
	ProductID        uint
	ProductVariantID uint
	CustomerID       uint
	Rating           int
}

// DiscountListFilter 查询折扣列表的过滤条件
type DiscountListFilter struct {
	ListOptions
	ProductVariantID uint
	Type             string
	Status           string
}

// AccountListFilter 查询账号列表的过滤条件
type AccountListFilter struct {
	ListOptions
	Status string
	Role   string
}

// RoleListFilter 查询角色列表的过滤条件
type RoleListFilter struct {
	ListOptions
}
