package handlers

import (
	"net/http"
	"strconv"

	"github.com/storeadmin/internal/http/response"
	"github.com/storeadmin/internal/service"

	"github.com/gin-gonic/gin"
)

// ActorContextKey 鉴权中间件写入操作者的上下文键
const ActorContextKey = "actor"

// currentActor 读取鉴权中间件解析出的操作者
func currentActor(c *gin.Context) (service.Actor, bool) {
	value, exists := c.Get(ActorContextKey)
	if !exists {
		response.Fail(c, http.StatusUnauthorized, "未登录或登录已失效")
		return service.Actor{}, false
	}
	actor, ok := value.(service.Actor)
	if !ok {
		response.Error(c, "操作者上下文类型错误")
		return service.Actor{}, false
	}
	return actor, true
}

// parseIDParam 解析路径中的数字 ID
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.Fail(c, http.StatusBadRequest, "非法的 ID 参数")
		return 0, false
	}
	return uint(id), true
}

// parseUintQuery 解析查询串中的数字参数，空值返回 0
func parseUintQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "非法的查询参数: "+name)
		return 0, false
	}
	return uint(value), true
}
