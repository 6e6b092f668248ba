package handler

import (
	"flowermart-be/internal/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every route behind the shared middleware chain.
// Catalog reads are public, checkout accepts guests, and the admin
// surface sits behind Auth + RequireAdmin.
func NewRouter(
	auth *AuthHandler,
	categories *CategoryHandler,
	products *ProductHandler,
	customers *CustomerHandler,
	orders *OrderHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RateLimit(),
	)

	r.POST("/auth/register", auth.Register)
	r.POST("/auth/login", auth.Login)

	admin := middleware.RequireAdmin()

	cat := r.Group("/categories")
	{
		cat.GET("", categories.List)
		cat.GET("/:id", categories.Get)

		protected := cat.Group("", middleware.Auth(true), admin)
		protected.POST("", categories.Create)
		protected.PUT("/:id", categories.Update)
		protected.DELETE("/:id", categories.Delete)
	}

	prod := r.Group("/products")
	{
		prod.GET("", products.List)
		prod.GET("/featured", products.Featured)
		prod.GET("/:id", products.Get)

		protected := prod.Group("", middleware.Auth(true), admin)
		protected.GET("/stats", products.Stats)
		protected.POST("", products.Create)
		protected.PUT("/:id", products.Update)
		protected.DELETE("/:id", products.Delete)
	}

	cust := r.Group("/customers", middleware.Auth(true), admin)
	{
		cust.GET("", customers.List)
		cust.GET("/stats", customers.Stats)
		cust.GET("/:id", customers.Get)
		cust.GET("/:id/orders", customers.Orders)
		cust.PUT("/:id", customers.Update)
	}

	ord := r.Group("/orders")
	{
		ord.POST("", middleware.Auth(false), orders.Create)
		ord.GET("/my", middleware.Auth(true), orders.ListMine)

		protected := ord.Group("", middleware.Auth(true), admin)
		protected.GET("", orders.ListAll)
		protected.GET("/stats", orders.Stats)
		protected.PUT("/:id/status", orders.UpdateStatus)
	}

	return r
}
