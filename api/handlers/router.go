package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ahinestrog/bookorders/internal/auth"
)

// NewRouter wires every endpoint. The caller wraps the returned engine with
// CORS and owns the http.Server.
func NewRouter(provider auth.Provider, users *UserHandler, books *CatalogHandler, carts *CartHandler, orders *OrderHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(Identify(provider))

	api := r.Group("/api")
	{
		api.POST("/register", users.Register)
		api.POST("/login", users.Login)
		api.GET("/books", books.Search)
		api.POST("/cart/items", carts.AddItem)
		api.GET("/cart", carts.GetCart)
		api.POST("/checkout", orders.Checkout)
		api.GET("/orders/:id", orders.GetOrder)
	}
	return r
}
