package controllers

import (
	"log"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskit-backend/models"
	"taskit-backend/payment"
)

// OrderController drives the order workflow. The payment gateway is injected
// so tests can run the callback path against a fake.
type OrderController struct {
	gateway payment.Gateway
}

func NewOrderController(gateway payment.Gateway) *OrderController {
	return &OrderController{gateway: gateway}
}

// Store calls go through these variables so tests can swap in fakes.
var (
	savePaymentIntent  = models.SavePaymentIntent
	findOrderByTrackID = models.FindOrderByTrackID
	advanceIntent      = models.AdvanceIntent
	getCartLines       = models.GetCartLines
	findDefaultAddress = models.FindDefaultAddress
	insertOrder        = models.InsertOrder
	deleteCart         = models.DeleteCart
)

// toPaise converts a major-unit amount to paise. Rounding, not truncation:
// float64 representations of cent values often sit just below the integer
// (1.15*100 == 114.999...).
func toPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateOrder opens a payment intent with the gateway. The amount arrives in
// major units and is scaled to paise for the remote call; the intent is
// persisted in state "created" so later transitions are observable.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var input struct {
		Amount   float64                `json:"amount"`
		Currency string                 `json:"currency"`
		Receipt  string                 `json:"receipt"`
		Notes    map[string]interface{} `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}
	if input.Amount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Amount is required"})
		return
	}
	if input.Currency == "" {
		input.Currency = "INR"
	}
	if input.Receipt == "" {
		input.Receipt = "receipt#1"
	}

	order, err := oc.gateway.CreateOrder(toPaise(input.Amount), input.Currency, input.Receipt, input.Notes)
	if err != nil {
		log.Println("gateway create order failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while creating payment order"})
		return
	}

	gatewayOrderID, _ := order["id"].(string)
	if _, err := savePaymentIntent(models.PaymentIntent{
		OrderID:  gatewayOrderID,
		UserID:   userID,
		Amount:   input.Amount,
		Currency: input.Currency,
		Receipt:  input.Receipt,
	}); err != nil {
		// The remote order exists either way; the stale-intent sweeper only
		// loses visibility, not money.
		log.Println("persist payment intent failed:", err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// HandleCallback verifies the gateway's payment callback and, on a genuine
// signature, materializes the order: snapshot the cart against the default
// address, insert the order keyed by the payment id, drain the cart.
func (oc *OrderController) HandleCallback(c *gin.Context) {
	userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var input struct {
		OrderID   string  `json:"razorpay_order_id" binding:"required"`
		PaymentID string  `json:"razorpay_payment_id" binding:"required"`
		Signature string  `json:"razorpay_signature" binding:"required"`
		Amount    float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	// Fail closed, but never silently: a mismatch is an explicit 400.
	if !oc.gateway.VerifySignature(input.OrderID, input.PaymentID, input.Signature) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Payment signature verification failed"})
		return
	}

	// Idempotency: a redelivered callback for an already-placed order must
	// not create a second order or touch the (already deleted) cart. A
	// failed lookup cannot prove the payment is unseen, so it must not fall
	// through to order creation.
	existing, err := findOrderByTrackID(input.PaymentID)
	if err != nil {
		log.Println("order lookup by payment id failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while placing order"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order already placed", "data": existing})
		return
	}

	lines, err := getCartLines(userID)
	if err != nil {
		log.Println("load cart failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while placing order"})
		return
	}
	if len(lines) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart is empty"})
		return
	}

	address, err := findDefaultAddress(userID)
	if err != nil {
		log.Println("load default address failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while placing order"})
		return
	}
	if address == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No default address set"})
		return
	}

	// Advance only once the order is actually going to be placed; a
	// rejected callback would otherwise strand the intent in a state the
	// sweeper never reclaims.
	if err := advanceIntent(input.OrderID, models.IntentVerified); err != nil {
		log.Println("advance intent failed:", err)
	}

	order, err := models.BuildOrder(userID, address.ID, lines, input.PaymentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart is empty"})
		return
	}

	placed, err := insertOrder(order)
	if err != nil {
		log.Println("insert order failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while placing order"})
		return
	}

	if err := deleteCart(userID); err != nil {
		// The order exists; a leftover cart is recoverable, a lost order is
		// not. Log and answer success.
		log.Println("delete cart failed:", err)
	}

	if err := advanceIntent(input.OrderID, models.IntentPlaced); err != nil {
		log.Println("advance intent failed:", err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order placed successfully", "data": placed})
}

// GetUserOrders lists the caller's orders.
func (oc *OrderController) GetUserOrders(c *gin.Context) {
	userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	orders, err := models.FindOrdersByUser(userID)
	if err != nil {
		log.Println("fetch orders failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while fetching orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
}
