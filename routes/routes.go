package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"taskit-backend/config"
	"taskit-backend/controllers"
	middlewares "taskit-backend/middleware"
)

// SetupRoutes wires CORS and every route group onto the engine.
func SetupRoutes(r *gin.Engine, cfg *config.Config, orders *controllers.OrderController) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSURL1, cfg.CORSURL2},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "This is Taskit backend")
	})

	authRequired := middlewares.AuthMiddleware(cfg.AuthSecret)

	SetupAuthRoutes(r)
	SetupProductRoutes(r)
	SetupCartRoutes(r, authRequired)
	SetupWishlistRoutes(r, authRequired)
	SetupAddressRoutes(r, authRequired)
	SetupOrderRoutes(r, authRequired, orders)
}
