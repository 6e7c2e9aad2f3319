package router

import (
	"time"

	"fruitwarehouse/internal/config"
	"fruitwarehouse/internal/handler"
	"fruitwarehouse/internal/middleware"
	"fruitwarehouse/internal/report"
	"fruitwarehouse/internal/repository"
	"fruitwarehouse/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services groups the business services the HTTP layer depends on.
type Services struct {
	Suppliers  service.SupplierService
	Products   service.ProductService
	Lookups    service.LookupService
	Prices     service.PriceService
	Deliveries service.DeliveryService
	Reports    service.ReportService
}

// NewServices wires repositories into services.
// Dependency graph: Service ← Repository ← DB
func NewServices(db *gorm.DB) *Services {
	// ── Repositories ─────────────────────────────────────────────────────────
	supplierRepo := repository.NewSupplierRepository(db)
	productRepo := repository.NewProductRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	return &Services{
		Suppliers:  service.NewSupplierService(supplierRepo),
		Products:   service.NewProductService(productRepo, lookupRepo),
		Lookups:    service.NewLookupService(lookupRepo),
		Prices:     service.NewPriceService(priceRepo, supplierRepo, productRepo),
		Deliveries: service.NewDeliveryService(deliveryRepo, supplierRepo, productRepo, priceRepo, lookupRepo),
		Reports:    service.NewReportService(reportRepo, report.DefaultRegistry()),
	}
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	r := Engine(cfg, NewServices(db), rdb)
	r.GET("/health", handler.Health(db, rdb))
	return r
}

// Engine builds the middleware chain and the /api/v1 routes on top of svcs.
func Engine(cfg *config.Config, svcs *Services, rdb *redis.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	// gzip must stay outside Recovery and ErrorHandler: its deferred Close commits the response.
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(rdb, cfg.RateLimitPerMinute, time.Minute))

	// ── Handlers ─────────────────────────────────────────────────────────────
	suppliersH := handler.NewSuppliersHandler(svcs.Suppliers)
	productsH := handler.NewProductsHandler(svcs.Products)
	lookupsH := handler.NewLookupsHandler(svcs.Lookups)
	pricesH := handler.NewPricesHandler(svcs.Prices)
	deliveriesH := handler.NewDeliveriesHandler(svcs.Deliveries)
	reportsH := handler.NewReportsHandler(svcs.Reports)

	// ── Routes ───────────────────────────────────────────────────────────────
	v1 := r.Group("/api/v1")
	{
		deliveries := v1.Group("/deliveries")
		{
			deliveries.POST("", deliveriesH.Create)
			deliveries.GET("", deliveriesH.List)
			deliveries.GET("/:id", deliveriesH.GetByID)
			deliveries.GET("/supplier/:supplierId", deliveriesH.ListBySupplier)
		}

		suppliers := v1.Group("/suppliers")
		{
			suppliers.POST("", suppliersH.Create)
			suppliers.GET("", suppliersH.List)
			suppliers.GET("/:supplierId", suppliersH.GetByID)

			suppliers.POST("/:supplierId/prices", pricesH.Add)
			suppliers.GET("/:supplierId/prices", pricesH.List)
			suppliers.GET("/:supplierId/prices/active", pricesH.ListActive)
			suppliers.DELETE("/:supplierId/prices/:priceId", pricesH.Delete)
		}

		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.GetByID)
		}

		v1.GET("/product-types", lookupsH.ProductTypes)
		v1.GET("/delivery-statuses", lookupsH.DeliveryStatuses)
		v1.GET("/reports", reportsH.Get)
	}

	// Swagger UI, only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
