package payment

import (
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// Gateway is the slice of the payment provider the order flow needs.
// Controllers hold a Gateway, never a concrete client, so tests can
// substitute a fake.
type Gateway interface {
	// CreateOrder opens a payment intent with the gateway. amount is in the
	// gateway's minor unit (paise).
	CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (map[string]interface{}, error)
	// VerifySignature checks a callback's authenticity.
	VerifySignature(orderID, paymentID, signature string) bool
}

type RazorpayGateway struct {
	client *razorpay.Client
	secret string
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
		secret: keySecret,
	}
}

func (g *RazorpayGateway) CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (map[string]interface{}, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	if notes != nil {
		data["notes"] = notes
	}
	return g.client.Order.Create(data, nil)
}

// VerifySignature checks the callback signature, which the gateway computes
// as HMAC-SHA256(orderID + "|" + paymentID) keyed by the account secret.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(orderID, paymentID, signature, g.secret)
}

func VerifySignature(orderID, paymentID, signature, secret string) bool {
	return utils.VerifyPaymentSignature(map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}, signature, secret)
}
