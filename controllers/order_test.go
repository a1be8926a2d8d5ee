package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskit-backend/models"
)

type fakeGateway struct {
	verifyResult bool
	createCalls  int
	lastAmount   int64
}

func (f *fakeGateway) CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (map[string]interface{}, error) {
	f.createCalls++
	f.lastAmount = amount
	return map[string]interface{}{"id": "order_test"}, nil
}

func (f *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return f.verifyResult
}

func orderTestRouter(gw *fakeGateway, authed bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if authed {
		r.Use(func(c *gin.Context) {
			c.Set("user_id", primitive.NewObjectID().Hex())
			c.Next()
		})
	}
	oc := NewOrderController(gw)
	r.POST("/order/create-order", oc.CreateOrder)
	r.POST("/order/callback", oc.HandleCallback)
	return r
}

func TestCreateOrderRequiresAuth(t *testing.T) {
	r := orderTestRouter(&fakeGateway{}, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order/create-order", strings.NewReader(`{"amount":100}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateOrderRequiresAmount(t *testing.T) {
	gw := &fakeGateway{}
	r := orderTestRouter(gw, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order/create-order", strings.NewReader(`{"currency":"INR"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Amount is required")
	assert.Zero(t, gw.createCalls)
}

// A mismatched signature must answer explicitly and must not reach the
// store: the handler has no database wired up here, so any attempt to
// create an order or touch the cart would blow the test up.
func TestCallbackSignatureMismatch(t *testing.T) {
	gw := &fakeGateway{verifyResult: false}
	r := orderTestRouter(gw, true)

	body := `{"razorpay_order_id":"order_x","razorpay_payment_id":"pay_x","razorpay_signature":"bad","amount":100}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order/callback", strings.NewReader(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "signature verification failed")
}

func TestCallbackRejectsMissingFields(t *testing.T) {
	gw := &fakeGateway{verifyResult: true}
	r := orderTestRouter(gw, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order/callback", strings.NewReader(`{"razorpay_order_id":"order_x"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type fakeStore struct {
	orderByTrack   *models.Order
	orderLookupErr error
	lines          []models.CartLine
	address        *models.Address
	inserted       []models.Order
	intentSaves    int
	advancedStates []string
	cartDeleted    bool
}

// install points the store seams at the fake for the duration of the test.
func (s *fakeStore) install(t *testing.T) {
	t.Helper()

	origSave, origFind, origAdvance := savePaymentIntent, findOrderByTrackID, advanceIntent
	origLines, origAddress, origInsert, origDelete := getCartLines, findDefaultAddress, insertOrder, deleteCart
	t.Cleanup(func() {
		savePaymentIntent, findOrderByTrackID, advanceIntent = origSave, origFind, origAdvance
		getCartLines, findDefaultAddress, insertOrder, deleteCart = origLines, origAddress, origInsert, origDelete
	})

	savePaymentIntent = func(intent models.PaymentIntent) (models.PaymentIntent, error) {
		s.intentSaves++
		return intent, nil
	}
	findOrderByTrackID = func(trackID string) (*models.Order, error) {
		return s.orderByTrack, s.orderLookupErr
	}
	advanceIntent = func(gatewayOrderID, status string) error {
		s.advancedStates = append(s.advancedStates, status)
		return nil
	}
	getCartLines = func(userID primitive.ObjectID) ([]models.CartLine, error) {
		return s.lines, nil
	}
	findDefaultAddress = func(userID primitive.ObjectID) (*models.Address, error) {
		return s.address, nil
	}
	insertOrder = func(order models.Order) (models.Order, error) {
		s.inserted = append(s.inserted, order)
		return order, nil
	}
	deleteCart = func(userID primitive.ObjectID) error {
		s.cartDeleted = true
		return nil
	}
}

func storeLines() []models.CartLine {
	return []models.CartLine{
		{Product: models.Product{ID: primitive.NewObjectID(), SellingPrice: 499}, Quantity: 2},
	}
}

func TestToPaiseRounds(t *testing.T) {
	// 1.15*100 lands at 114.999... in float64; truncation would short the
	// gateway by one paisa.
	assert.Equal(t, int64(115), toPaise(1.15))
	assert.Equal(t, int64(29), toPaise(0.29))
	assert.Equal(t, int64(10000), toPaise(100))
	assert.Equal(t, int64(259999), toPaise(2599.99))

	for i := 0; i < 100000; i++ {
		assert.Equal(t, int64(i), toPaise(float64(i)/100))
	}
}

func TestCreateOrderConvertsToPaise(t *testing.T) {
	s := &fakeStore{}
	s.install(t)
	gw := &fakeGateway{}
	r := orderTestRouter(gw, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order/create-order", strings.NewReader(`{"amount":1.15}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(115), gw.lastAmount)
	assert.Equal(t, 1, s.intentSaves)
}

// A failed idempotency lookup cannot prove the payment is unseen; placing the
// order anyway would duplicate it on redelivery.
func TestCallbackLookupFailureDoesNotPlaceOrder(t *testing.T) {
	s := &fakeStore{orderLookupErr: errors.New("server selection timeout"), lines: storeLines()}
	s.install(t)
	r := orderTestRouter(&fakeGateway{verifyResult: true}, true)

	body := `{"razorpay_order_id":"order_x","razorpay_payment_id":"pay_x","razorpay_signature":"sig"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order/callback", strings.NewReader(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, s.inserted)
	assert.False(t, s.cartDeleted)
}

func TestCallbackRedeliveryIsIdempotent(t *testing.T) {
	placed := models.Order{ID: primitive.NewObjectID(), TrackID: "pay_x"}
	s := &fakeStore{orderByTrack: &placed, lines: storeLines()}
	s.install(t)
	r := orderTestRouter(&fakeGateway{verifyResult: true}, true)

	body := `{"razorpay_order_id":"order_x","razorpay_payment_id":"pay_x","razorpay_signature":"sig"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order/callback", strings.NewReader(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already placed")
	assert.Empty(t, s.inserted)
	assert.False(t, s.cartDeleted)
}

// A rejected callback must leave the intent where the stale sweeper can still
// reclaim it.
func TestCallbackEmptyCartLeavesIntentUntouched(t *testing.T) {
	s := &fakeStore{}
	s.install(t)
	r := orderTestRouter(&fakeGateway{verifyResult: true}, true)

	body := `{"razorpay_order_id":"order_x","razorpay_payment_id":"pay_x","razorpay_signature":"sig"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order/callback", strings.NewReader(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, s.advancedStates)
	assert.Empty(t, s.inserted)
}

func TestCallbackNoDefaultAddressLeavesIntentUntouched(t *testing.T) {
	s := &fakeStore{lines: storeLines()}
	s.install(t)
	r := orderTestRouter(&fakeGateway{verifyResult: true}, true)

	body := `{"razorpay_order_id":"order_x","razorpay_payment_id":"pay_x","razorpay_signature":"sig"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order/callback", strings.NewReader(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, s.advancedStates)
	assert.Empty(t, s.inserted)
}

func TestCallbackPlacesOrder(t *testing.T) {
	s := &fakeStore{
		lines:   storeLines(),
		address: &models.Address{ID: primitive.NewObjectID()},
	}
	s.install(t)
	r := orderTestRouter(&fakeGateway{verifyResult: true}, true)

	body := `{"razorpay_order_id":"order_x","razorpay_payment_id":"pay_x","razorpay_signature":"sig"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order/callback", strings.NewReader(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, s.inserted, 1)
	assert.Equal(t, "pay_x", s.inserted[0].TrackID)
	assert.Equal(t, float64(998), s.inserted[0].TotalAmount)
	assert.True(t, s.cartDeleted)
	assert.Equal(t, []string{models.IntentVerified, models.IntentPlaced}, s.advancedStates)
}
