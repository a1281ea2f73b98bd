package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/hdr13/ecommerce-api/internal/handlers"
)

type Deps struct {
	DB             *gorm.DB
	UserHandler    *handlers.UserHandler
	ProductHandler *handlers.ProductHandler
	OrderHandler   *handlers.OrderHandler
	SearchHandler  *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	users := v1.Group("/users")
	users.GET("", d.UserHandler.GetUsers)
	users.GET("/:id", d.UserHandler.GetUser)
	users.POST("", d.UserHandler.CreateUser)
	users.PUT("/:id", d.UserHandler.UpdateUser)
	users.DELETE("/:id", d.UserHandler.DeleteUser)
	users.GET("/:id/orders", d.OrderHandler.GetUserOrders)

	products := v1.Group("/products")
	if d.SearchHandler != nil {
		products.GET("/search", d.SearchHandler.Search)
	}
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct)
	products.PUT("/:id", d.ProductHandler.UpdateProduct)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct)

	orders := v1.Group("/orders")
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.DELETE("/:id", d.OrderHandler.DeleteOrder)
	orders.GET("/:id/products", d.OrderHandler.GetOrderProducts)
	orders.PUT("/:id/products/:product_id", d.OrderHandler.AddProduct)
	orders.DELETE("/:id/products/:product_id", d.OrderHandler.RemoveProduct)
}
