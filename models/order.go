package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	db "taskit-backend/database"
)

var ErrEmptyCart = errors.New("cart is empty")

type OrderProduct struct {
	ProductID          primitive.ObjectID `json:"productId" bson:"productId"`
	Quantity           int                `json:"quantity" bson:"quantity"`
	SellingPrice       float64            `json:"sellingPrice" bson:"sellingPrice"`
	ProductOrderStatus string             `json:"ProductOrderStatus" bson:"ProductOrderStatus"`
}

// Order is an immutable snapshot of a cart at payment time. After creation
// only the fulfillment-status fields change.
type Order struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID          primitive.ObjectID `json:"userId" bson:"userId"`
	ShippingAddress primitive.ObjectID `json:"shippingAddress" bson:"shippingAddress"`
	Products        []OrderProduct     `json:"products" bson:"products"`
	OrderStatus     string             `json:"OrderStatus" bson:"OrderStatus"`
	StatusLevel     int                `json:"StatusLevel" bson:"StatusLevel"`
	PaymentStatus   string             `json:"paymentStatus" bson:"paymentStatus"`
	OrderDate       time.Time          `json:"orderDate" bson:"orderDate"`
	TotalAmount     float64            `json:"totalAmount" bson:"totalAmount"`
	PaymentMethod   string             `json:"paymentMethod" bson:"paymentMethod"`
	TrackID         string             `json:"trackId" bson:"trackId"`
	DeliveredAt     *time.Time         `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	CancelledAt     *time.Time         `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
	RefundStatus    string             `json:"refundStatus,omitempty" bson:"refundStatus,omitempty"`
	Notes           string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// BuildOrder snapshots cart lines into an order. Every line carries its own
// product's current selling price and starts as "Pending"; the total is the
// sum over lines of price times quantity.
func BuildOrder(userID, addressID primitive.ObjectID, lines []CartLine, paymentID string) (Order, error) {
	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}

	products := make([]OrderProduct, 0, len(lines))
	var total float64
	for _, line := range lines {
		qty := ClampQuantity(line.Quantity)
		products = append(products, OrderProduct{
			ProductID:          line.Product.ID,
			Quantity:           qty,
			SellingPrice:       line.Product.SellingPrice,
			ProductOrderStatus: "Pending",
		})
		total += line.Product.SellingPrice * float64(qty)
	}

	now := time.Now()
	return Order{
		UserID:          userID,
		ShippingAddress: addressID,
		Products:        products,
		OrderStatus:     "Placed",
		StatusLevel:     1,
		PaymentStatus:   "Paid",
		OrderDate:       now,
		TotalAmount:     total,
		PaymentMethod:   "Razorpay",
		TrackID:         paymentID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func InsertOrder(order Order) (Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	order.ID = primitive.NewObjectID()
	_, err := db.OpenCollection("orders").InsertOne(ctx, order)
	return order, err
}

// FindOrderByTrackID looks an order up by its gateway payment id. Returns
// (nil, nil) when none exists; used as the idempotency check before insert.
func FindOrderByTrackID(trackID string) (*Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order Order
	err := db.OpenCollection("orders").FindOne(ctx, bson.M{"trackId": trackID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func FindOrdersByUser(userID primitive.ObjectID) ([]Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := db.OpenCollection("orders").Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
