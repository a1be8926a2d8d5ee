package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLines() []CartLine {
	return []CartLine{
		{Product: Product{ID: primitive.NewObjectID(), SellingPrice: 499}, Quantity: 2},
		{Product: Product{ID: primitive.NewObjectID(), SellingPrice: 1250}, Quantity: 1},
	}
}

func TestBuildOrderEmptyCart(t *testing.T) {
	_, err := BuildOrder(primitive.NewObjectID(), primitive.NewObjectID(), nil, "pay_123")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestBuildOrderSnapshot(t *testing.T) {
	userID := primitive.NewObjectID()
	addressID := primitive.NewObjectID()
	lines := testLines()

	order, err := BuildOrder(userID, addressID, lines, "pay_123")
	require.NoError(t, err)

	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, addressID, order.ShippingAddress)
	assert.Equal(t, "pay_123", order.TrackID)
	assert.Equal(t, "Placed", order.OrderStatus)
	assert.Equal(t, 1, order.StatusLevel)
	assert.Equal(t, "Paid", order.PaymentStatus)
	assert.Equal(t, "Razorpay", order.PaymentMethod)

	require.Len(t, order.Products, len(lines))
	for i, p := range order.Products {
		assert.Equal(t, lines[i].Product.ID, p.ProductID)
		assert.Equal(t, "Pending", p.ProductOrderStatus)
	}
}

// Each line must carry its own product's price, not the first product's.
func TestBuildOrderPerLinePricing(t *testing.T) {
	lines := testLines()
	order, err := BuildOrder(primitive.NewObjectID(), primitive.NewObjectID(), lines, "pay_123")
	require.NoError(t, err)

	assert.Equal(t, 499.0, order.Products[0].SellingPrice)
	assert.Equal(t, 1250.0, order.Products[1].SellingPrice)
	assert.Equal(t, 499.0*2+1250.0, order.TotalAmount)
}

func TestBuildOrderClampsQuantity(t *testing.T) {
	lines := []CartLine{
		{Product: Product{ID: primitive.NewObjectID(), SellingPrice: 100}, Quantity: 0},
		{Product: Product{ID: primitive.NewObjectID(), SellingPrice: 100}, Quantity: 99},
	}
	order, err := BuildOrder(primitive.NewObjectID(), primitive.NewObjectID(), lines, "pay_123")
	require.NoError(t, err)

	assert.Equal(t, 1, order.Products[0].Quantity)
	assert.Equal(t, 10, order.Products[1].Quantity)
	assert.Equal(t, 100.0*1+100.0*10, order.TotalAmount)
}
