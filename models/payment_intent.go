package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	db "taskit-backend/database"
)

// Payment-intent states. Each transition is persisted so a crashed callback
// can be replayed instead of leaving payment captured with no order.
const (
	IntentCreated  = "created"
	IntentVerified = "verified"
	IntentPlaced   = "placed"
)

type PaymentIntent struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	OrderID   string             `json:"orderId" bson:"orderId"` // gateway order id
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Amount    float64            `json:"amount" bson:"amount"` // major units
	Currency  string             `json:"currency" bson:"currency"`
	Receipt   string             `json:"receipt" bson:"receipt"`
	Status    string             `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func SavePaymentIntent(intent PaymentIntent) (PaymentIntent, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	intent.ID = primitive.NewObjectID()
	intent.Status = IntentCreated
	now := time.Now()
	intent.CreatedAt = now
	intent.UpdatedAt = now

	_, err := db.OpenCollection("payment_intents").InsertOne(ctx, intent)
	return intent, err
}

// AdvanceIntent records a state transition for the intent holding the given
// gateway order id. Unknown ids are ignored; the callback may arrive for an
// intent created before this collection existed.
func AdvanceIntent(gatewayOrderID, status string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.OpenCollection("payment_intents").UpdateOne(
		ctx,
		bson.M{"orderId": gatewayOrderID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	return err
}

// DeleteStaleIntents removes intents that never progressed past "created"
// within the cutoff. Returns how many were swept.
func DeleteStaleIntents(olderThan time.Duration) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := db.OpenCollection("payment_intents").DeleteMany(ctx, bson.M{
		"status":    IntentCreated,
		"createdAt": bson.M{"$lt": time.Now().Add(-olderThan)},
	})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
