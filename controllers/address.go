package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"taskit-backend/models"
)

type addressInput struct {
	ID           string `json:"_id"`
	FullName     string `json:"fullName" binding:"required"`
	Mobile       string `json:"mobile" binding:"required"`
	AddressLine1 string `json:"addressLine1" binding:"required"`
	AddressLine2 string `json:"addressLine2"`
	HouseName    string `json:"houseName"`
	Landmark     string `json:"landmark"`
	Country      string `json:"country" binding:"required"`
	Pincode      string `json:"pincode" binding:"required"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	AddressType  string `json:"addressType"`
}

func (in addressInput) toAddress() models.Address {
	return models.Address{
		FullName:     in.FullName,
		Mobile:       in.Mobile,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		HouseName:    in.HouseName,
		Landmark:     in.Landmark,
		Country:      in.Country,
		Pincode:      in.Pincode,
		City:         in.City,
		State:        in.State,
		AddressType:  in.AddressType,
	}
}

// AddAddress creates a shipping address; the user's first address becomes
// the default automatically.
func AddAddress(c *gin.Context) {
	userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var input addressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	address := input.toAddress()
	address.UserID = userID

	saved, err := models.AddAddress(address)
	if err != nil {
		log.Println("add address failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while adding address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Address added successfully",
		"data":    saved,
	})
}

func FetchUserAddresses(c *gin.Context) {
	userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	addresses, err := models.FindAddressesByUser(userID)
	if err != nil {
		log.Println("fetch addresses failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while fetching addresses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Addresses fetched successfully",
		"data":    addresses,
	})
}

// EditAddress replaces the fields of an address the caller owns. An id
// belonging to someone else is indistinguishable from an unknown one.
func EditAddress(c *gin.Context) {
	userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var input addressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}
	addressID, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid address ID"})
		return
	}

	updated, err := models.UpdateAddress(userID, addressID, input.toAddress())
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Address not found"})
		return
	}
	if err != nil {
		log.Println("edit address failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while updating address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Address updated successfully",
		"data":    updated,
	})
}

// DeleteAddress removes an owned address; deleting the default promotes the
// oldest remaining one.
func DeleteAddress(c *gin.Context) {
	userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var input struct {
		ID string `json:"_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}
	addressID, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid address ID"})
		return
	}

	deleted, err := models.DeleteAddress(userID, addressID)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Address not found"})
		return
	}
	if err != nil {
		log.Println("delete address failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while deleting address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Address deleted successfully",
		"data":    deleted,
	})
}

// UpdateDefaultAddress makes the named address the single default.
func UpdateDefaultAddress(c *gin.Context) {
	userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	addressID, err := primitive.ObjectIDFromHex(c.Param("addressId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid address ID"})
		return
	}

	updated, err := models.SetDefaultAddress(userID, addressID)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Address not found"})
		return
	}
	if err != nil {
		log.Println("set default address failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while updating default address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Default address updated successfully",
		"data":    updated,
	})
}
