package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	db "taskit-backend/database"
)

type CartProduct struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Quantity  int                `json:"quantity" bson:"quantity"` // 1-10
}

// Cart is the single cart document of a user. Lines embed the product
// reference and quantity; product data is joined in at read time.
type Cart struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Products  []CartProduct      `json:"products" bson:"products"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CartLine is a cart line joined with its product record for display.
type CartLine struct {
	Product  Product `json:"productId"` // field name kept for storefront compatibility
	Quantity int     `json:"quantity"`
}

// HasProduct reports whether a product is already a line item.
func HasProduct(products []CartProduct, productID primitive.ObjectID) bool {
	for _, p := range products {
		if p.ProductID == productID {
			return true
		}
	}
	return false
}

// ClampQuantity bounds a requested quantity to the allowed 1-10 range.
func ClampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	if q > 10 {
		return 10
	}
	return q
}

// FindCartByUser returns (nil, nil) when the user has no cart.
func FindCartByUser(userID primitive.ObjectID) (*Cart, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cart Cart
	err := db.OpenCollection("carts").FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart appends a quantity-1 line for the product, creating the cart if
// the user has none. Adding a product that is already a line item is a no-op;
// the bool reports whether the line already existed.
func AddToCart(userID, productID primitive.ObjectID) (bool, error) {
	cart, err := FindCartByUser(userID)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if cart == nil {
		now := time.Now()
		newCart := Cart{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			Products:  []CartProduct{{ProductID: productID, Quantity: 1}},
			CreatedAt: now,
			UpdatedAt: now,
		}
		_, err := db.OpenCollection("carts").InsertOne(ctx, newCart)
		return false, err
	}

	if HasProduct(cart.Products, productID) {
		return true, nil
	}

	_, err = db.OpenCollection("carts").UpdateOne(
		ctx,
		bson.M{"_id": cart.ID},
		bson.M{
			"$push": bson.M{"products": CartProduct{ProductID: productID, Quantity: 1}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	return false, err
}

// RemoveFromCart deletes the matching line. Missing cart or missing line is
// mongo.ErrNoDocuments.
func RemoveFromCart(userID, productID primitive.ObjectID) error {
	cart, err := FindCartByUser(userID)
	if err != nil {
		return err
	}
	if cart == nil || !HasProduct(cart.Products, productID) {
		return mongo.ErrNoDocuments
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = db.OpenCollection("carts").UpdateOne(
		ctx,
		bson.M{"_id": cart.ID},
		bson.M{
			"$pull": bson.M{"products": bson.M{"productId": productID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	return err
}

// GetCartLines resolves every line's product reference to full product data.
// No cart means an empty list.
func GetCartLines(userID primitive.ObjectID) ([]CartLine, error) {
	cart, err := FindCartByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Products) == 0 {
		return []CartLine{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ids := make([]primitive.ObjectID, 0, len(cart.Products))
	for _, p := range cart.Products {
		ids = append(ids, p.ProductID)
	}

	cursor, err := db.OpenCollection("products").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	productMap := make(map[primitive.ObjectID]Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	lines := []CartLine{}
	for _, item := range cart.Products {
		if p, ok := productMap[item.ProductID]; ok {
			lines = append(lines, CartLine{Product: p, Quantity: item.Quantity})
		}
	}
	return lines, nil
}

// DeleteCart removes the user's cart document wholesale.
func DeleteCart(userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.OpenCollection("carts").DeleteOne(ctx, bson.M{"userId": userID})
	return err
}
