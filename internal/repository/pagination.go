package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// applyPagination 应用分页参数，统一处理非法页码与偏移量。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	return query.Limit(pageSize).Offset(offset)
}

// applySort 应用排序参数，sortBy 仅接受白名单字段，方向仅接受 asc/desc。
func applySort(query *gorm.DB, sortBy, sortOrder string, allowed []string) *gorm.DB {
	if query == nil {
		return query
	}
	field := strings.TrimSpace(sortBy)
	matched := ""
	for _, candidate := range allowed {
		if field == candidate {
			matched = candidate
			break
		}
	}
	if matched == "" {
		return query.Order("id ASC")
	}
	direction := "ASC"
	if strings.EqualFold(strings.TrimSpace(sortOrder), "desc") {
		direction = "DESC"
	}
	return query.Order(fmt.Sprintf("%s %s", matched, direction))
}
