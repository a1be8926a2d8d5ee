package routes

import (
	"github.com/gin-gonic/gin"

	"taskit-backend/controllers"
)

func SetupAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", controllers.Signup)
		authGroup.POST("/login", controllers.Login)
		authGroup.POST("/google-signin", controllers.GoogleSignin)
	}
}

func SetupProductRoutes(r *gin.Engine) {
	productGroup := r.Group("/product")
	{
		productGroup.GET("/fetch-products", controllers.FetchProducts)
		productGroup.GET("/fetch-product-details/:productId", controllers.GetProductDetail)
		productGroup.POST("/add-product", controllers.AddProduct)
		productGroup.POST("/edit-product", controllers.UpdateProduct)
		productGroup.POST("/delete-product/:productId", controllers.DeleteProduct)
	}
}

func SetupCartRoutes(r *gin.Engine, authRequired gin.HandlerFunc) {
	cartGroup := r.Group("/cart", authRequired)
	{
		cartGroup.POST("/add-to-cart/:productId", controllers.AddToCart)
		cartGroup.POST("/remove-from-cart/:productId", controllers.RemoveFromCart)
		cartGroup.POST("/is-in-cart/:productId", controllers.IsInCart)
		cartGroup.GET("/user-cart", controllers.GetUserCart)
	}
}

func SetupWishlistRoutes(r *gin.Engine, authRequired gin.HandlerFunc) {
	wishlistGroup := r.Group("/wishlist", authRequired)
	{
		wishlistGroup.POST("/add-to-wishlist", controllers.AddToWishlist)
		wishlistGroup.POST("/remove-from-wishlist", controllers.RemoveFromWishlist)
	}
}

// Address routes are mounted at the root, matching the storefront's paths.
func SetupAddressRoutes(r *gin.Engine, authRequired gin.HandlerFunc) {
	r.POST("/add-address", authRequired, controllers.AddAddress)
	r.POST("/edit-address", authRequired, controllers.EditAddress)
	r.POST("/delete-address", authRequired, controllers.DeleteAddress)
	r.POST("/default-address/:addressId", authRequired, controllers.UpdateDefaultAddress)
	r.GET("/addresses", authRequired, controllers.FetchUserAddresses)
}

func SetupOrderRoutes(r *gin.Engine, authRequired gin.HandlerFunc, orders *controllers.OrderController) {
	orderGroup := r.Group("/order", authRequired)
	{
		orderGroup.POST("/create-order", orders.CreateOrder)
		orderGroup.POST("/callback", orders.HandleCallback)
		orderGroup.GET("/orders", orders.GetUserOrders)
	}
}
