package handlers

import (
	"net/http"
	"strconv"

	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/http/response"
	"github.com/storeadmin/internal/repository"

	"github.com/gin-gonic/gin"
)

// bindListOptions 解析列表通用参数。
// page 至少为 1，pageSize 超过上限时收敛到上限，非法取值直接拒绝；
// sortBy 仅接受各端点声明的白名单字段。
func bindListOptions(c *gin.Context, sortFields []string) (repository.ListOptions, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.DefaultPage)))
	if err != nil || page < 1 {
		response.Fail(c, http.StatusBadRequest, "page 必须是不小于 1 的整数")
		return repository.ListOptions{}, false
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(constants.DefaultPageSize)))
	if err != nil || pageSize <= 0 {
		response.Fail(c, http.StatusBadRequest, "pageSize 必须是正整数")
		return repository.ListOptions{}, false
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	sortBy := c.Query("sortBy")
	if sortBy != "" && !containsField(sortFields, sortBy) {
		response.Fail(c, http.StatusBadRequest, "sortBy 不在可排序字段内")
		return repository.ListOptions{}, false
	}

	sortOrder := c.Query("sortOrder")
	switch sortOrder {
	case "", constants.SortOrderAsc, constants.SortOrderDesc:
	default:
		response.Fail(c, http.StatusBadRequest, "sortOrder 仅支持 asc / desc")
		return repository.ListOptions{}, false
	}

	return repository.ListOptions{
		Page:      page,
		PageSize:  pageSize,
		Search:    c.Query("search"),
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}, true
}

func containsField(fields []string, field string) bool {
	for _, candidate := range fields {
		if field == candidate {
			return true
		}
	}
	return false
}
