package models

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	db "taskit-backend/database"
)

type Rating struct {
	UserID primitive.ObjectID `json:"userId" bson:"userId"`
	Rating int                `json:"rating" bson:"rating"` // 1-5
	Review string             `json:"review,omitempty" bson:"review,omitempty"`
}

type Product struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ProductName  string             `json:"productName" bson:"productName"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	Brand        string             `json:"brand,omitempty" bson:"brand,omitempty"`
	ActualPrice  float64            `json:"actualPrice" bson:"actualPrice"`
	SellingPrice float64            `json:"sellingPrice" bson:"sellingPrice"`
	Size         string             `json:"size,omitempty" bson:"size,omitempty"`
	Waist        string             `json:"waist,omitempty" bson:"waist,omitempty"`
	Length       string             `json:"length,omitempty" bson:"length,omitempty"`
	Images       []string           `json:"images" bson:"images"`
	Category     string             `json:"category" bson:"category"`
	Ratings      []Rating           `json:"ratings" bson:"ratings"`
	Stock        int                `json:"stock" bson:"stock"`
	IsListed     bool               `json:"is_listed" bson:"is_listed"`
	Condition    int                `json:"condition" bson:"condition"` // 1-10
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProductFilter carries the browse filters; zero values mean "no filter".
// Filters compose conjunctively.
type ProductFilter struct {
	Category  string
	Brand     string
	Size      string
	Search    string
	Condition int
	MaxPrice  float64
}

// BuildProductQuery translates a filter into a mongo query document.
func BuildProductQuery(f ProductFilter) bson.M {
	query := bson.M{}

	if f.Category != "" && f.Category != "all" {
		query["category"] = f.Category
	}
	if f.Brand != "" {
		query["brand"] = f.Brand
	}
	if f.Size != "" {
		query["$or"] = []bson.M{
			{"waist": bson.M{"$regex": f.Size, "$options": "i"}},
			{"length": bson.M{"$regex": f.Size, "$options": "i"}},
		}
	}
	if f.Condition != 0 {
		query["condition"] = f.Condition
	}
	if f.Search != "" {
		// Search and size both use $or; search wins when both are present,
		// matching the original filter precedence.
		query["$or"] = []bson.M{
			{"productName": bson.M{"$regex": f.Search, "$options": "i"}},
			{"description": bson.M{"$regex": f.Search, "$options": "i"}},
		}
	}
	if f.MaxPrice > 0 {
		query["sellingPrice"] = bson.M{"$lte": f.MaxPrice}
	}

	return query
}

// TotalPages is ceil(count/limit); zero when unpaginated.
func TotalPages(count int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(count) / float64(limit)))
}

// FetchProducts runs a filtered, paginated catalog query and returns the
// page plus the total filtered count. limit <= 0 returns the full set.
func FetchProducts(f ProductFilter, page, limit int) ([]Product, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := BuildProductQuery(f)
	col := db.OpenCollection("products")

	count, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	findOpts := options.Find()
	if limit > 0 {
		findOpts.SetSkip(int64((page - 1) * limit)).SetLimit(int64(limit))
	}

	cursor, err := col.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := []Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func GetProductByID(id primitive.ObjectID) (Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product Product
	err := db.OpenCollection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	return product, err
}

func AddProduct(product Product) (Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	product.ID = primitive.NewObjectID()
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Ratings == nil {
		product.Ratings = []Rating{}
	}

	_, err := db.OpenCollection("products").InsertOne(ctx, product)
	if err != nil {
		return Product{}, err
	}
	return product, nil
}

// UpdateProduct replaces the editable fields of a product. Images are only
// touched when a new list is supplied.
func UpdateProduct(id primitive.ObjectID, updated Product) (Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	set := bson.M{
		"productName":  updated.ProductName,
		"description":  updated.Description,
		"brand":        updated.Brand,
		"actualPrice":  updated.ActualPrice,
		"sellingPrice": updated.SellingPrice,
		"size":         updated.Size,
		"waist":        updated.Waist,
		"length":       updated.Length,
		"category":     updated.Category,
		"stock":        updated.Stock,
		"condition":    updated.Condition,
		"is_listed":    updated.IsListed,
		"updatedAt":    time.Now(),
	}
	if len(updated.Images) > 0 {
		set["images"] = updated.Images
	}

	result := db.OpenCollection("products").FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var product Product
	if err := result.Decode(&product); err != nil {
		return Product{}, err
	}
	return product, nil
}

func DeleteProduct(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.OpenCollection("products").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
