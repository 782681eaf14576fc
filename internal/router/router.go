package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/storeadmin/internal/cache"
	"github.com/storeadmin/internal/config"
	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/http/handlers"
	"github.com/storeadmin/internal/logger"
	"github.com/storeadmin/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.Z()
	r := gin.New()

	h := handlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sa"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}
	redisClient := cache.Client()

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// 认证接口
		auth := api.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), h.Login)
			auth.POST("/refresh", h.Refresh)
			auth.POST("/register", h.Register)

			authed := auth.Group("")
			authed.Use(Protect(c.AuthService))
			{
				authed.GET("/me", h.Me)
				authed.PUT("/profile", h.UpdateProfile)
				authed.PUT("/change-password", h.ChangePassword)
				authed.POST("/logout", h.Logout)
			}
		}

		// 需登录的接口
		protected := api.Group("")
		protected.Use(Protect(c.AuthService))
		{
			staffOnly := Restrict(constants.RoleAdmin, constants.RoleManager)
			adminOnly := Restrict(constants.RoleAdmin)

			// 目录管理（后台身份）
			categories := protected.Group("/categories")
			{
				categories.GET("", h.GetCategories)
				categories.GET("/:id", h.GetCategory)
				categories.POST("", staffOnly, h.CreateCategory)
				categories.PUT("/:id", staffOnly, h.UpdateCategory)
				categories.DELETE("/:id", staffOnly, h.DeleteCategory)
			}

			attributes := protected.Group("/attributes")
			{
				attributes.GET("", h.GetAttributes)
				attributes.GET("/:id", h.GetAttribute)
				attributes.POST("", staffOnly, h.CreateAttribute)
				attributes.PUT("/:id", staffOnly, h.UpdateAttribute)
				attributes.DELETE("/:id", staffOnly, h.DeleteAttribute)
				attributes.POST("/:id/values", staffOnly, h.AddAttributeValue)
				attributes.DELETE("/:id/values/:valueId", staffOnly, h.RemoveAttributeValue)
			}

			products := protected.Group("/products")
			{
				products.GET("", h.GetProducts)
				products.GET("/brands", h.GetProductBrands)
				products.GET("/category/:categoryId", h.GetProductsByCategory)
				products.GET("/:id", h.GetProduct)
				products.POST("", staffOnly, h.CreateProduct)
				products.PUT("/:id", staffOnly, h.UpdateProduct)
				products.DELETE("/:id", staffOnly, h.DeleteProduct)
			}

			variants := protected.Group("/variants")
			{
				variants.GET("", h.GetVariants)
				variants.GET("/search", h.SearchVariants)
				variants.GET("/:id", h.GetVariant)
				variants.POST("", staffOnly, h.CreateVariant)
				variants.PUT("/:id", staffOnly, h.UpdateVariant)
				variants.DELETE("/:id", staffOnly, h.DeleteVariant)
				variants.POST("/:id/attributes", staffOnly, h.AssignVariantAttribute)
				variants.DELETE("/:id/attributes/:attributeId/:valueId", staffOnly, h.UnassignVariantAttribute)
			}

			// 订单
			orders := protected.Group("/orders")
			{
				orders.GET("", h.GetOrders)
				orders.GET("/:id", h.GetOrder)
				orders.GET("/:id/history", h.GetOrderHistory)
				orders.POST("", h.CreateOrder)
				orders.PUT("/:id/pay", h.PayOrder)
				orders.PUT("/:id/deliver", staffOnly, h.DeliverOrder)
				orders.PUT("/:id/cancel", h.CancelOrder)
				orders.PUT("/:id/update-status", staffOnly, h.UpdateOrderStatus)
			}

			// 折扣（后台身份）
			discounts := protected.Group("/discounts")
			{
				discounts.GET("", h.GetDiscounts)
				discounts.GET("/:id", h.GetDiscount)
				discounts.POST("", staffOnly, h.CreateDiscount)
				discounts.PUT("/:id", staffOnly, h.UpdateDiscount)
				discounts.DELETE("/:id", staffOnly, h.DeleteDiscount)
			}

			// 评价
			feedback := protected.Group("/feedback")
			{
				feedback.GET("", h.GetFeedbackList)
				feedback.GET("/:id", h.GetFeedback)
				feedback.POST("", h.CreateFeedback)
				feedback.DELETE("/:id", adminOnly, h.DeleteFeedback)
				feedback.POST("/:id/responses", staffOnly, h.RespondFeedback)
				feedback.PUT("/responses/:id", staffOnly, h.UpdateFeedbackResponse)
				feedback.DELETE("/responses/:id", staffOnly, h.DeleteFeedbackResponse)
			}

			// 账号与角色管理（管理员）
			users := protected.Group("/users", adminOnly)
			{
				users.GET("", h.GetUsers)
				users.GET("/:id", h.GetUser)
				users.POST("", h.CreateUser)
				users.PUT("/:id", h.UpdateUser)
				users.DELETE("/:id", h.DeleteUser)
			}

			roles := protected.Group("/roles", adminOnly)
			{
				roles.GET("", h.GetRoles)
				roles.GET("/:id", h.GetRole)
				roles.POST("", h.CreateRole)
				roles.PUT("/:id", h.UpdateRole)
				roles.DELETE("/:id", h.DeleteRole)
			}

			protected.GET("/permissions", adminOnly, h.GetPermissions)

			// 购物车（顾客）
			cart := protected.Group("/cart")
			{
				cart.GET("", h.GetCart)
				cart.POST("/items", h.UpsertCartItem)
				cart.DELETE("/items/:variantId", h.RemoveCartItem)
			}
		}
	}

	return r
}
