package service

import (
	"github.com/storeadmin/internal/constants"
)

// transitionKey 状态机键：当前状态 + 事件 + 操作者角色
type transitionKey struct {
	From  string
	Event string
	Role  string
}

// orderTransitions 订单状态机。未出现在表中的组合一律拒绝。
var orderTransitions = map[transitionKey]string{
	// 支付：待处理 -> 处理中
	{constants.OrderStatusPending, constants.OrderEventPay, constants.RoleUser}:    constants.OrderStatusProcessing,
	{constants.OrderStatusPending, constants.OrderEventPay, constants.RoleManager}: constants.OrderStatusProcessing,
	{constants.OrderStatusPending, constants.OrderEventPay, constants.RoleAdmin}:   constants.OrderStatusProcessing,

	// 支付：后台已先行推进到处理中的订单仍可支付，状态保持处理中
	{constants.OrderStatusProcessing, constants.OrderEventPay, constants.RoleUser}:    constants.OrderStatusProcessing,
	{constants.OrderStatusProcessing, constants.OrderEventPay, constants.RoleManager}: constants.OrderStatusProcessing,
	{constants.OrderStatusProcessing, constants.OrderEventPay, constants.RoleAdmin}:   constants.OrderStatusProcessing,

	// 后台推进：待处理 -> 处理中
	{constants.OrderStatusPending, constants.OrderEventProcess, constants.RoleManager}: constants.OrderStatusProcessing,
	{constants.OrderStatusPending, constants.OrderEventProcess, constants.RoleAdmin}:   constants.OrderStatusProcessing,

	// 交付：处理中 -> 已完成
	{constants.OrderStatusProcessing, constants.OrderEventDeliver, constants.RoleManager}: constants.OrderStatusCompleted,
	{constants.OrderStatusProcessing, constants.OrderEventDeliver, constants.RoleAdmin}:   constants.OrderStatusCompleted,

	// 取消：非终态 -> 已取消（本人或管理员）
	{constants.OrderStatusPending, constants.OrderEventCancel, constants.RoleUser}:     constants.OrderStatusCancelled,
	{constants.OrderStatusPending, constants.OrderEventCancel, constants.RoleAdmin}:    constants.OrderStatusCancelled,
	{constants.OrderStatusProcessing, constants.OrderEventCancel, constants.RoleUser}:  constants.OrderStatusCancelled,
	{constants.OrderStatusProcessing, constants.OrderEventCancel, constants.RoleAdmin}: constants.OrderStatusCancelled,

	// 拒绝：非终态 -> 已拒绝（后台）
	{constants.OrderStatusPending, constants.OrderEventReject, constants.RoleManager}:    constants.OrderStatusRejected,
	{constants.OrderStatusPending, constants.OrderEventReject, constants.RoleAdmin}:      constants.OrderStatusRejected,
	{constants.OrderStatusProcessing, constants.OrderEventReject, constants.RoleManager}: constants.OrderStatusRejected,
	{constants.OrderStatusProcessing, constants.OrderEventReject, constants.RoleAdmin}:   constants.OrderStatusRejected,
}

// nextStatus 查表求目标状态
func nextStatus(from, event, role string) (string, bool) {
	to, ok := orderTransitions[transitionKey{From: from, Event: event, Role: role}]
	return to, ok
}

// eventForTarget 将目标状态换算为状态机事件，用于 update-status 入口
func eventForTarget(target string) (string, bool) {
	switch target {
	case constants.OrderStatusProcessing:
		return constants.OrderEventProcess, true
	case constants.OrderStatusCompleted:
		return constants.OrderEventDeliver, true
	case constants.OrderStatusCancelled:
		return constants.OrderEventCancel, true
	case constants.OrderStatusRejected:
		return constants.OrderEventReject, true
	default:
		return "", false
	}
}

// isKnownOrderStatus 目标状态是否在闭集内
func isKnownOrderStatus(status string) bool {
	for _, candidate := range constants.OrderStatuses {
		if status == candidate {
			return true
		}
	}
	return false
}
