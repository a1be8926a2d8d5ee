package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Known-answer vector: HMAC-SHA256("order_9A33XWu170gUtm|pay_29QQoUBi66xm2f",
// "test_key_secret"), hex encoded.
const (
	testOrderID   = "order_9A33XWu170gUtm"
	testPaymentID = "pay_29QQoUBi66xm2f"
	testSecret    = "test_key_secret"
	testSignature = "05a90d99a226250bdd07dcbec806d936d0ac974af71513b19a36466e7f5eb3a3"
)

func TestVerifySignatureMatch(t *testing.T) {
	assert.True(t, VerifySignature(testOrderID, testPaymentID, testSignature, testSecret))
}

func TestVerifySignatureMismatch(t *testing.T) {
	assert.False(t, VerifySignature(testOrderID, testPaymentID, "deadbeef", testSecret))
	assert.False(t, VerifySignature(testOrderID, "pay_other", testSignature, testSecret))
	assert.False(t, VerifySignature("order_other", testPaymentID, testSignature, testSecret))
	assert.False(t, VerifySignature(testOrderID, testPaymentID, testSignature, "wrong_secret"))
}

func TestVerifySignatureEmpty(t *testing.T) {
	assert.False(t, VerifySignature(testOrderID, testPaymentID, "", testSecret))
}

func TestGatewayVerifyUsesSecret(t *testing.T) {
	g := NewRazorpayGateway("rzp_test_key", testSecret)
	assert.True(t, g.VerifySignature(testOrderID, testPaymentID, testSignature))
	assert.False(t, g.VerifySignature(testOrderID, testPaymentID, "deadbeef"))
}
