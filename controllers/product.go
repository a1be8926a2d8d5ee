package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"taskit-backend/imagehost"
	"taskit-backend/models"
)

// FetchProducts serves the catalog browse query: conjunctive filters plus
// skip/limit pagination. limit absent or non-positive returns everything.
func FetchProducts(c *gin.Context) {
	filter := models.ProductFilter{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Size:     c.Query("size"),
		Search:   c.Query("search"),
	}
	if v := c.Query("condition"); v != "" {
		filter.Condition, _ = strconv.Atoi(v)
	}
	if v := c.Query("priceRange"); v != "" {
		filter.MaxPrice, _ = strconv.ParseFloat(v, 64)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	products, count, err := models.FetchProducts(filter, page, limit)
	if err != nil {
		log.Println("fetch products failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while fetching products"})
		return
	}

	if len(products) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"message":     "No products found.",
			"data":        []models.Product{},
			"count":       0,
			"currentPage": page,
			"totalPages":  0,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Products fetched successfully",
		"data":        products,
		"count":       count,
		"currentPage": page,
		"totalPages":  models.TotalPages(count, limit),
	})
}

func GetProductDetail(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	product, err := models.GetProductByID(productID)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found."})
		return
	}
	if err != nil {
		log.Println("fetch product detail failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while fetching product details."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product details fetched successfully.",
		"data":    product,
	})
}

type productInput struct {
	ID           string   `json:"_id"`
	ProductName  string   `json:"productName"`
	Description  string   `json:"description"`
	Brand        string   `json:"brand"`
	ActualPrice  float64  `json:"actualPrice"`
	SellingPrice float64  `json:"sellingPrice"`
	Size         string   `json:"size"`
	Waist        string   `json:"waist"`
	Length       string   `json:"length"`
	Images       []string `json:"images"` // base64 payloads on create/update
	Category     string   `json:"category"`
	Stock        int      `json:"stock"`
	Condition    int      `json:"condition"`
	IsListed     bool     `json:"is_listed"`
}

func (in productInput) toProduct() models.Product {
	return models.Product{
		ProductName:  in.ProductName,
		Description:  in.Description,
		Brand:        in.Brand,
		ActualPrice:  in.ActualPrice,
		SellingPrice: in.SellingPrice,
		Size:         in.Size,
		Waist:        in.Waist,
		Length:       in.Length,
		Category:     in.Category,
		Stock:        in.Stock,
		Condition:    in.Condition,
		IsListed:     in.IsListed,
	}
}

// AddProduct creates a catalog item. Image payloads are handed to the image
// host and replaced by the returned URLs before anything is persisted.
func AddProduct(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	if input.ProductName == "" || input.ActualPrice == 0 || input.SellingPrice == 0 ||
		input.Category == "" || input.Condition == 0 || len(input.Images) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide all required fields"})
		return
	}

	urls, err := imagehost.UploadAll(input.Images, "product_images")
	if err != nil {
		log.Println("image upload failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while creating product"})
		return
	}

	product := input.toProduct()
	product.Images = urls

	created, err := models.AddProduct(product)
	if err != nil {
		log.Println("create product failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while creating product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product created successfully",
		"data":    created,
	})
}

// UpdateProduct replaces a product's fields by id. Images are re-uploaded
// only when a new list is supplied.
func UpdateProduct(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	updated := input.toProduct()
	if len(input.Images) > 0 {
		urls, err := imagehost.UploadAll(input.Images, "product_images")
		if err != nil {
			log.Println("image upload failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while updating product"})
			return
		}
		updated.Images = urls
	}

	product, err := models.UpdateProduct(productID, updated)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if err != nil {
		log.Println("update product failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while updating product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product updated successfully",
		"data":    product,
	})
}

func DeleteProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	err = models.DeleteProduct(productID)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if err != nil {
		log.Println("delete product failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while deleting product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
}
