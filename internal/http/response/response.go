package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 响应状态取值：4xx 为 fail，5xx 为 error
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Envelope 统一响应结构
type Envelope struct {
	Status    string      `json:"status"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ListData 列表响应数据
type ListData struct {
	Items       interface{} `json:"items"`
	TotalCount  int64       `json:"totalCount"`
	CurrentPage int         `json:"currentPage"`
	PageSize    int         `json:"pageSize"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Status: StatusSuccess,
		Data:   data,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{
		Status: StatusSuccess,
		Data:   data,
	})
}

// NoContent 无内容响应
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SuccessWithList 列表成功响应
func SuccessWithList(c *gin.Context, items interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, Envelope{
		Status: StatusSuccess,
		Data: ListData{
			Items:       items,
			TotalCount:  total,
			CurrentPage: page,
			PageSize:    pageSize,
		},
	})
}

// Fail 客户端错误响应（4xx）
func Fail(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, Envelope{
		Status:    StatusFail,
		Message:   msg,
		RequestID: requestID(c),
	})
}

// Error 服务端错误响应（500）
func Error(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, Envelope{
		Status:    StatusError,
		Message:   msg,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
