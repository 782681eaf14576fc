package handlers

import (
	"errors"
	"net/http"

	"github.com/storeadmin/internal/http/response"
	"github.com/storeadmin/internal/logger"
	"github.com/storeadmin/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requestLog 提供携带 request_id 的日志实例
func requestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// respondServiceError 将服务层错误映射为响应码。
// 未识别的错误按 500 处理并记录日志。
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrValueMismatch),
		errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrOrderEmptyItems),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrOrderNotPaid),
		errors.Is(err, service.ErrOrderAlreadyPaid),
		errors.Is(err, service.ErrOrderTerminal):
		response.Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrAccountDisabled):
		response.Fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrManagerRequired),
		errors.Is(err, service.ErrSelfDelete):
		response.Fail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrDuplicateName),
		errors.Is(err, service.ErrDuplicateSKU),
		errors.Is(err, service.ErrDuplicateCode),
		errors.Is(err, service.ErrDuplicateAttribute),
		errors.Is(err, service.ErrCategoryInUse),
		errors.Is(err, service.ErrAttributeInUse),
		errors.Is(err, service.ErrAttributeValueInUse),
		errors.Is(err, service.ErrVariantInUse),
		errors.Is(err, service.ErrProductInUse),
		errors.Is(err, service.ErrRoleInUse),
		errors.Is(err, service.ErrAccountInUse),
		errors.Is(err, service.ErrFeedbackResponded),
		errors.Is(err, service.ErrInsufficientStock):
		response.Fail(c, http.StatusConflict, err.Error())
	default:
		requestLog(c).Errorw("handler_error",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		response.Error(c, "服务器内部错误")
	}
}

// respondBindError 请求体解析失败
func respondBindError(c *gin.Context, err error) {
	requestLog(c).Debugw("request_bind_failed", "error", err)
	response.Fail(c, http.StatusBadRequest, "请求参数格式不正确")
}
