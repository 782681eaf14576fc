package service

import "errors"

// 服务层错误，handler 按错误映射响应码
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrInvalidPassword    = errors.New("当前密码不正确")
	ErrInvalidToken       = errors.New("无效的 token")
	ErrAccountDisabled    = errors.New("账号已被禁用")
	ErrEmailTaken         = errors.New("邮箱已被占用")
	ErrForbidden          = errors.New("无权执行该操作")
	ErrValidation         = errors.New("参数不合法")

	ErrCategoryInUse       = errors.New("分类下仍有商品，无法删除")
	ErrAttributeInUse      = errors.New("属性下仍有取值，无法删除")
	ErrAttributeValueInUse = errors.New("属性取值仍被变体引用，无法删除")
	ErrDuplicateName       = errors.New("名称已存在")
	ErrDuplicateSKU        = errors.New("SKU 已存在")
	ErrDuplicateCode       = errors.New("折扣码已存在")
	ErrDuplicateAttribute  = errors.New("该属性轴已有取值")
	ErrValueMismatch       = errors.New("取值不属于该属性")
	ErrVariantInUse        = errors.New("变体已有订单引用，无法删除")
	ErrProductInUse        = errors.New("商品下存在被订单引用的变体，无法删除")

	ErrOrderEmptyItems   = errors.New("订单至少包含一个订单项")
	ErrInvalidTransition = errors.New("当前状态不允许该流转")
	ErrOrderNotPaid      = errors.New("订单尚未支付")
	ErrOrderAlreadyPaid  = errors.New("订单已支付")
	ErrOrderTerminal     = errors.New("订单已处于终态")
	ErrInsufficientStock = errors.New("库存不足")
	ErrManagerRequired   = errors.New("该操作需要店长身份")

	ErrFeedbackResponded = errors.New("该评价已有回复")
	ErrRoleInUse         = errors.New("角色仍被店长使用，无法删除")
	ErrAccountInUse      = errors.New("账号存在关联数据，无法删除")
	ErrSelfDelete        = errors.New("不能删除当前登录账号")
)
