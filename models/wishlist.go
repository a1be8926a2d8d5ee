package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	db "taskit-backend/database"
)

type WishlistItem struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	AddedAt   time.Time          `json:"addedAt" bson:"addedAt"`
}

type Wishlist struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Products  []WishlistItem     `json:"products" bson:"products"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func findWishlistByUser(userID primitive.ObjectID) (*Wishlist, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wishlist Wishlist
	err := db.OpenCollection("wishlists").FindOne(ctx, bson.M{"userId": userID}).Decode(&wishlist)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wishlist, nil
}

// AddToWishlist appends an item, creating the wishlist if the user has none.
// The bool reports whether the product was already present.
func AddToWishlist(userID, productID primitive.ObjectID) (bool, error) {
	wishlist, err := findWishlistByUser(userID)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if wishlist == nil {
		now := time.Now()
		newList := Wishlist{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			Products:  []WishlistItem{{ProductID: productID, AddedAt: now}},
			CreatedAt: now,
			UpdatedAt: now,
		}
		_, err := db.OpenCollection("wishlists").InsertOne(ctx, newList)
		return false, err
	}

	for _, item := range wishlist.Products {
		if item.ProductID == productID {
			return true, nil
		}
	}

	_, err = db.OpenCollection("wishlists").UpdateOne(
		ctx,
		bson.M{"_id": wishlist.ID},
		bson.M{
			"$push": bson.M{"products": WishlistItem{ProductID: productID, AddedAt: time.Now()}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	return false, err
}

// RemoveFromWishlist deletes the matching item; missing wishlist or missing
// item is mongo.ErrNoDocuments.
func RemoveFromWishlist(userID, productID primitive.ObjectID) error {
	wishlist, err := findWishlistByUser(userID)
	if err != nil {
		return err
	}
	if wishlist == nil {
		return mongo.ErrNoDocuments
	}

	found := false
	for _, item := range wishlist.Products {
		if item.ProductID == productID {
			found = true
			break
		}
	}
	if !found {
		return mongo.ErrNoDocuments
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = db.OpenCollection("wishlists").UpdateOne(
		ctx,
		bson.M{"_id": wishlist.ID},
		bson.M{
			"$pull": bson.M{"products": bson.M{"productId": productID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	return err
}
