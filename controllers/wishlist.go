package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"taskit-backend/models"
)

type wishlistInput struct {
	ProductID string `json:"productId" binding:"required"`
}

func AddToWishlist(c *gin.Context) {
	userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var input wishlistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	already, err := models.AddToWishlist(userID, productID)
	if err != nil {
		log.Println("add to wishlist failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to wishlist"})
		return
	}

	if already {
		c.JSON(http.StatusOK, gin.H{"message": "Product already added in wishlist"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Item added to wishlist successfully"})
}

func RemoveFromWishlist(c *gin.Context) {
	userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var input wishlistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	err = models.RemoveFromWishlist(userID, productID)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found in wishlist"})
		return
	}
	if err != nil {
		log.Println("remove from wishlist failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item from wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from wishlist successfully"})
}
