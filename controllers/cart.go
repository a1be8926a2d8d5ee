package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"taskit-backend/models"
)

// requestIdentity pulls the authenticated user's object id out of the
// context the auth middleware populated.
func requestIdentity(c *gin.Context) (primitive.ObjectID, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return primitive.NilObjectID, false
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return objID, true
}

// AddToCart is idempotent at the product level: a product already in the
// cart is acknowledged without creating a duplicate line.
func AddToCart(c *gin.Context) {
	userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	already, err := models.AddToCart(userID, productID)
	if err != nil {
		log.Println("add to cart failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		return
	}

	if already {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product already added in cart"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Item added to cart successfully"})
}

func RemoveFromCart(c *gin.Context) {
	userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	err = models.RemoveFromCart(userID, productID)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found in cart"})
		return
	}
	if err != nil {
		log.Println("remove from cart failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item from cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item removed from cart successfully"})
}

// IsInCart answers false rather than erroring when the user has no cart yet.
func IsInCart(c *gin.Context) {
	userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	cart, err := models.FindCartByUser(userID)
	if err != nil {
		log.Println("cart lookup failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check cart"})
		return
	}
	if cart == nil {
		c.JSON(http.StatusOK, gin.H{"data": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": models.HasProduct(cart.Products, productID)})
}

// GetUserCart returns the cart lines joined with full product data.
func GetUserCart(c *gin.Context) {
	userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	lines, err := models.GetCartLines(userID)
	if err != nil {
		log.Println("fetch cart failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": lines})
}
