package provider

import (
	"github.com/storeadmin/internal/cache"
	"github.com/storeadmin/internal/config"
	"github.com/storeadmin/internal/logger"
	"github.com/storeadmin/internal/models"
	"github.com/storeadmin/internal/repository"
	"github.com/storeadmin/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Repositories
	AccountRepo   repository.AccountRepository
	RoleRepo      repository.RoleRepository
	CategoryRepo  repository.CategoryRepository
	AttributeRepo repository.AttributeRepository
	ProductRepo   repository.ProductRepository
	VariantRepo   repository.VariantRepository
	CartRepo      repository.CartRepository
	OrderRepo     repository.OrderRepository
	FeedbackRepo  repository.FeedbackRepository
	DiscountRepo  repository.DiscountRepository

	// Services
	AuthService      *service.AuthService
	AccountService   *service.AccountService
	RoleService      *service.RoleService
	CategoryService  *service.CategoryService
	AttributeService *service.AttributeService
	ProductService   *service.ProductService
	VariantService   *service.VariantService
	CartService      *service.CartService
	OrderService     *service.OrderService
	FeedbackService  *service.FeedbackService
	DiscountService  *service.DiscountService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{Config: cfg}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AccountRepo = repository.NewAccountRepository(db)
	c.RoleRepo = repository.NewRoleRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.AttributeRepo = repository.NewAttributeRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.VariantRepo = repository.NewVariantRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.FeedbackRepo = repository.NewFeedbackRepository(db)
	c.DiscountRepo = repository.NewDiscountRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.AccountRepo)
	c.AccountService = service.NewAccountService(c.AccountRepo, c.RoleRepo, c.OrderRepo, c.FeedbackRepo, c.CartRepo)
	c.RoleService = service.NewRoleService(c.RoleRepo, c.AccountRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.AttributeService = service.NewAttributeService(c.AttributeRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.VariantRepo, c.FeedbackRepo)
	c.VariantService = service.NewVariantService(c.VariantRepo, c.ProductRepo, c.AttributeRepo, c.FeedbackRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.VariantRepo, c.AccountRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.VariantRepo, c.AccountRepo)
	c.FeedbackService = service.NewFeedbackService(c.FeedbackRepo, c.VariantRepo, c.AccountRepo)
	c.DiscountService = service.NewDiscountService(c.DiscountRepo, c.VariantRepo)
}
