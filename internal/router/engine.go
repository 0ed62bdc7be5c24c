package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"julianmorley.ca/con-plar/storefront/pkg/global"
)

// Dependencies are the collaborators the HTTP layer is built from.
// Limiter may be nil, which disables rate limiting.
type Dependencies struct {
	Catalog  Catalog
	Carts    Carts
	Database Pinger
	Limiter  Limiter
}

// NewEngine builds the gin engine with every middleware and route mounted.
func NewEngine(cfg *global.Config, logger *logrus.Logger, deps Dependencies) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	registerValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(Logger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-API-Key", HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", HeaderRequestID, "X-Cache", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(Timeout(cfg.RequestTimeout))

	h := NewHandler(deps.Catalog, deps.Carts, deps.Database, logger)

	router.GET("/", h.Index)
	router.GET("/health", h.HealthCheck)

	api := router.Group("/api")
	if deps.Limiter != nil {
		api.Use(RateLimit(deps.Limiter, logger))
	}
	{
		admin := AdminKey(cfg.AdminAPIKeyHash)

		products := api.Group("/products")
		{
			products.GET("", h.GetAllProducts)
			products.GET("/:id", h.GetProduct)
			products.POST("", admin, h.CreateProduct)
			products.PUT("/:id", admin, h.UpdateProduct)
			products.DELETE("/:id", admin, h.DeleteProduct)
		}

		cart := api.Group("/cart")
		{
			cart.GET("/:sessionId", h.GetCart)
			cart.POST("", h.AddToCart)
			cart.PUT("/:itemId", h.UpdateCartItem)
			cart.DELETE("/clear/:sessionId", h.ClearCart)
			cart.DELETE("/:itemId", h.RemoveFromCart)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Not Found - "+c.Request.URL.RequestURI(), nil))
	})

	return router
}
