package rest

import (
	"shopcore-be/internal/cart"
	"shopcore-be/internal/category"
	"shopcore-be/internal/order"
	"shopcore-be/internal/product"
	"shopcore-be/internal/user"

	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	JWTSecret   string
	UserSvc     user.Service
	CategorySvc category.Service
	ProductSvc  product.Service
	CartSvc     cart.Service
	OrderSvc    order.Service
}

// NewRouter wires the whole HTTP surface. Catalog reads and auth are public;
// everything else needs a bearer token, admin routes additionally ADMIN role.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(), RateLimit())

	authH := NewAuthHandler(cfg.UserSvc)
	categoryH := NewCategoryHandler(cfg.CategorySvc)
	productH := NewProductHandler(cfg.ProductSvc)
	cartH := NewCartHandler(cfg.CartSvc)
	orderH := NewOrderHandler(cfg.OrderSvc)

	r.POST("/auth/register", authH.Register)
	r.POST("/auth/login", authH.Login)

	r.GET("/categories", categoryH.List)
	r.GET("/categories/:id", categoryH.Get)

	r.GET("/products", productH.List)
	r.GET("/products/search", productH.Search)
	r.GET("/products/category/:id", productH.ListByCategory)
	r.GET("/products/:id", productH.Get)

	authed := r.Group("", Auth(cfg.JWTSecret))
	{
		authed.GET("/cart", cartH.Get)
		authed.POST("/cart/add", cartH.Add)
		authed.PUT("/cart/items/:id", cartH.UpdateItem)
		authed.DELETE("/cart/items/:id", cartH.RemoveItem)
		authed.DELETE("/cart/clear", cartH.Clear)

		authed.POST("/orders", orderH.Create)
		authed.GET("/orders", orderH.List)
		authed.GET("/orders/:id", orderH.Get)
		authed.PUT("/orders/:id/cancel", orderH.Cancel)
	}

	admin := authed.Group("", RequireAdmin())
	{
		admin.POST("/admin/categories", categoryH.Create)
		admin.PUT("/admin/categories/:id", categoryH.Update)
		admin.DELETE("/admin/categories/:id", categoryH.Delete)

		admin.GET("/admin/products/all", productH.ListAll)
		admin.POST("/admin/products", productH.Create)
		admin.PUT("/admin/products/:id", productH.Update)
		admin.DELETE("/admin/products/:id", productH.Delete)
		admin.PUT("/admin/products/:id/stock", productH.AdjustStock)

		admin.GET("/orders/admin/all", orderH.ListAll)
		admin.PUT("/orders/admin/:id/status", orderH.UpdateStatus)

		admin.GET("/admin/stats", Stats)
	}

	return r
}
