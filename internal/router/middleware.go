package router

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/storeadmin/internal/config"
	"github.com/storeadmin/internal/http/handlers"
	"github.com/storeadmin/internal/http/response"
	"github.com/storeadmin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

// CORSMiddleware 跨域中间件，放行配置的前端地址
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	frontendURL := strings.TrimSpace(cfg.FrontendURL)
	if frontendURL == "" {
		frontendURL = "*"
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, frontendURL, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin, frontendURL string, allowCredentials bool) string {
	if frontendURL == "*" {
		if allowCredentials && origin != "" {
			return origin
		}
		return "*"
	}
	if origin == "" {
		return frontendURL
	}
	if strings.EqualFold(strings.TrimRight(frontendURL, "/"), strings.TrimRight(origin, "/")) {
		return origin
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// Protect Bearer 鉴权中间件。
// 解析访问令牌并加载操作者，失败一律 401。
func Protect(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authService == nil {
			response.Fail(c, http.StatusUnauthorized, "鉴权服务未初始化")
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Fail(c, http.StatusUnauthorized, "缺少 Authorization 请求头")
			c.Abort()
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			response.Fail(c, http.StatusUnauthorized, "Authorization 请求头格式不正确")
			c.Abort()
			return
		}

		claims, err := authService.ParseAccessToken(parts[1])
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, service.ErrInvalidToken.Error())
			c.Abort()
			return
		}

		actor, err := authService.ResolveActor(c.Request.Context(), claims)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, err.Error())
			c.Abort()
			return
		}

		c.Set(handlers.ActorContextKey, *actor)
		c.Set("account_id", actor.ID)
		c.Next()
	}
}

// Restrict 角色限制中间件，操作者角色不在集合内时返回 403
func Restrict(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(c *gin.Context) {
		value, exists := c.Get(handlers.ActorContextKey)
		if !exists {
			response.Fail(c, http.StatusUnauthorized, "未登录或登录已失效")
			c.Abort()
			return
		}
		actor, ok := value.(service.Actor)
		if !ok || !allowed[actor.Role] {
			response.Fail(c, http.StatusForbidden, service.ErrForbidden.Error())
			c.Abort()
			return
		}
		c.Next()
	}
}
