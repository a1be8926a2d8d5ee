package models

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	db "taskit-backend/database"
)

type Address struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID       primitive.ObjectID `json:"userId" bson:"userId"`
	FullName     string             `json:"fullName" bson:"fullName"`
	Mobile       string             `json:"mobile" bson:"mobile"`
	AddressLine1 string             `json:"addressLine1" bson:"addressLine1"`
	AddressLine2 string             `json:"addressLine2,omitempty" bson:"addressLine2,omitempty"`
	HouseName    string             `json:"houseName,omitempty" bson:"houseName,omitempty"`
	Landmark     string             `json:"landmark,omitempty" bson:"landmark,omitempty"`
	Country      string             `json:"country" bson:"country"`
	Pincode      string             `json:"pincode" bson:"pincode"`
	City         string             `json:"city" bson:"city"`
	State        string             `json:"state" bson:"state"`
	IsDefault    bool               `json:"isDefault" bson:"isDefault"`
	AddressType  string             `json:"addressType" bson:"addressType"` // home | work | other
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// NextDefault picks the replacement default after the old default is gone:
// the oldest remaining address, so promotion is deterministic.
func NextDefault(remaining []Address) *Address {
	var oldest *Address
	for i := range remaining {
		if oldest == nil || remaining[i].CreatedAt.Before(oldest.CreatedAt) {
			oldest = &remaining[i]
		}
	}
	return oldest
}

func FindAddressesByUser(userID primitive.ObjectID) ([]Address, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := db.OpenCollection("addresses").Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	addresses := []Address{}
	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// FindDefaultAddress returns (nil, nil) when the user has no default address.
func FindDefaultAddress(userID primitive.ObjectID) (*Address, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var address Address
	err := db.OpenCollection("addresses").FindOne(ctx, bson.M{"userId": userID, "isDefault": true}).Decode(&address)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// AddAddress inserts a new address; the user's first address becomes the
// default automatically.
func AddAddress(address Address) (Address, error) {
	existing, err := FindAddressesByUser(address.UserID)
	if err != nil {
		return Address{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	address.ID = primitive.NewObjectID()
	address.IsDefault = len(existing) == 0
	now := time.Now()
	address.CreatedAt = now
	address.UpdatedAt = now
	if address.AddressType == "" {
		address.AddressType = "home"
	}

	_, err = db.OpenCollection("addresses").InsertOne(ctx, address)
	return address, err
}

// UpdateAddress replaces the shipping fields of an address. The query is
// scoped by owner; an address the caller does not own is just not found.
func UpdateAddress(userID, addressID primitive.ObjectID, fields Address) (Address, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result := db.OpenCollection("addresses").FindOneAndUpdate(
		ctx,
		bson.M{"_id": addressID, "userId": userID},
		bson.M{"$set": bson.M{
			"fullName":     fields.FullName,
			"mobile":       fields.Mobile,
			"addressLine1": fields.AddressLine1,
			"addressLine2": fields.AddressLine2,
			"houseName":    fields.HouseName,
			"landmark":     fields.Landmark,
			"country":      fields.Country,
			"pincode":      fields.Pincode,
			"city":         fields.City,
			"state":        fields.State,
			"addressType":  fields.AddressType,
			"updatedAt":    time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var address Address
	if err := result.Decode(&address); err != nil {
		return Address{}, err
	}
	return address, nil
}

// DeleteAddress removes an owned address. When the deleted address was the
// default, the oldest remaining address is promoted.
func DeleteAddress(userID, addressID primitive.ObjectID) (Address, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result := db.OpenCollection("addresses").FindOneAndDelete(ctx, bson.M{"_id": addressID, "userId": userID})

	var deleted Address
	if err := result.Decode(&deleted); err != nil {
		return Address{}, err
	}

	if deleted.IsDefault {
		// A failed promotion leaves the user with no default address, which
		// blocks checkout until another address is chosen. Surface it.
		remaining, err := FindAddressesByUser(userID)
		if err != nil {
			log.Println("list addresses for default promotion failed:", err)
		} else if next := NextDefault(remaining); next != nil {
			if _, err := db.OpenCollection("addresses").UpdateOne(
				ctx,
				bson.M{"_id": next.ID},
				bson.M{"$set": bson.M{"isDefault": true}},
			); err != nil {
				log.Println("promote default address failed:", err)
			}
		}
	}

	return deleted, nil
}

// SetDefaultAddress clears isDefault on all of the user's addresses, then
// sets it on the named one.
func SetDefaultAddress(userID, addressID primitive.ObjectID) (Address, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	col := db.OpenCollection("addresses")

	if _, err := col.UpdateMany(
		ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"isDefault": false}},
	); err != nil {
		return Address{}, err
	}

	result := col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": addressID, "userId": userID},
		bson.M{"$set": bson.M{"isDefault": true, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var address Address
	if err := result.Decode(&address); err != nil {
		return Address{}, err
	}
	return address, nil
}
