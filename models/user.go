package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	db "taskit-backend/database"
)

type WalletEntry struct {
	Type   string    `json:"type" bson:"type"` // credit | debit
	Amount float64   `json:"amount" bson:"amount"`
	Date   time.Time `json:"date" bson:"date"`
	Reason string    `json:"reason" bson:"reason"`
}

type Wallet struct {
	Balance float64       `json:"balance" bson:"balance"`
	History []WalletEntry `json:"history" bson:"history"`
}

type User struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name"`
	Email           string             `json:"email" bson:"email"`
	Mobile          string             `json:"mobile" bson:"mobile"`
	Password        string             `json:"password,omitempty" bson:"password"`
	IsAdmin         bool               `json:"is_admin" bson:"is_admin"`
	IsEmailVerified bool               `json:"is_email_verified" bson:"is_email_verified"`
	IsBlocked       bool               `json:"isBlocked" bson:"isBlocked"`
	Wallet          Wallet             `json:"wallet" bson:"wallet"`
	RefCode         string             `json:"refCode,omitempty" bson:"refCode,omitempty"`
	IsGoogle        bool               `json:"isGoogle" bson:"isGoogle"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Scrub clears fields that must never leave the server.
func (u User) Scrub() User {
	u.Password = ""
	return u
}

// FindUserByEmail returns (nil, nil) when no account uses the email.
func FindUserByEmail(email string) (*User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user User
	err := db.OpenCollection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByID returns (nil, nil) when the account no longer exists.
func FindUserByID(id primitive.ObjectID) (*User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user User
	err := db.OpenCollection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(user User) (User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user.ID = primitive.NewObjectID()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Wallet.History == nil {
		user.Wallet.History = []WalletEntry{}
	}

	_, err := db.OpenCollection("users").InsertOne(ctx, user)
	return user, err
}
