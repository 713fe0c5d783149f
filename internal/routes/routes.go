package routes

import (
	"net/http"
	"os"

	"github.com/farhank0/grocerylink-golang/internal/handlers"
	"github.com/farhank0/grocerylink-golang/internal/middleware"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware tells the browser the dashboard frontend is allowed to
// talk to us. The allowed origin comes from FRONTEND_ORIGIN so staging and
// production deployments can point it at their own hosts.
func CORSMiddleware() gin.HandlerFunc {
	origin := os.Getenv("FRONTEND_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight OPTIONS requests get an empty 204 reply.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	// CORS must be the very first thing the router uses.
	router.Use(CORSMiddleware())

	api := router.Group("/api")
	{
		// --- Ping Route (Public) ---
		api.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)

		// --- Protected Routes (Login Required) ---
		auth := api.Group("/")
		auth.Use(middleware.AuthMiddleware(h.Verifier))
		{
			auth.GET("/auth/me", h.Me)

			// --- Catalog Routes ---
			auth.GET("/auth/items", h.GetProviderItems)
			auth.GET("/items/:id", h.GetItem)
			auth.GET("/general-items", h.GetGeneralItems)

			// --- Order Routes ---
			auth.GET("/orders", h.GetOrders)
			auth.POST("/orders", h.CreateOrder)
			auth.GET("/orders/:id", h.GetOrder)

			// --- Shopping List Routes ---
			auth.POST("/lists", h.CreateShoppingList)
			auth.GET("/lists", h.GetShoppingLists)
			auth.GET("/lists/:id", h.GetShoppingList)
			auth.PUT("/lists/:id", h.UpdateShoppingList)

			// --- Assistant Chat Route ---
			auth.POST("/chat", h.Chat)
		}

		// --- Provider-Only Routes ---
		provider := api.Group("/")
		provider.Use(middleware.AuthMiddleware(h.Verifier))
		provider.Use(middleware.ProviderMiddleware(h.DB))
		{
			provider.POST("/items", h.CreateItem)
			provider.PUT("/items/:id", h.UpdateItem)
			provider.POST("/general-items", h.CreateGeneralItem)
			provider.PATCH("/orders/:id/status", h.UpdateOrderStatus)
			provider.GET("/provider/dashboard", h.GetProviderDashboard)
		}
	}

	return router
}
