package paymentControllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfboppong-code/joeythebrand/cart"
	"github.com/tfboppong-code/joeythebrand/checkout"
	"github.com/tfboppong-code/joeythebrand/models"
)

type stubGateway struct {
	result checkout.VerifyResult
}

func (g *stubGateway) Open(_ context.Context, _ checkout.PaymentParams) (string, string, error) {
	return "https://checkout.paystack.com/abc", "ref_1", nil
}

func (g *stubGateway) Verify(_ context.Context, _ string) (checkout.VerifyResult, error) {
	return g.result, nil
}

type memOrders struct {
	created []models.Order
}

func (m *memOrders) Create(_ context.Context, o models.Order) error {
	m.created = append(m.created, o)
	return nil
}

func paymentRouter(orch *checkout.Orchestrator, mgr *cart.Manager, uid string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("user_id", uid) })
	router.POST("/payment/checkout", PlaceOrder(orch, mgr))
	router.GET("/payment/callback", PaymentCallback(orch))
	router.POST("/payment/close", ClosePayment(orch))
	return router
}

func seedCart(t *testing.T, mgr *cart.Manager, uid string) *cart.Store {
	t.Helper()
	store, err := mgr.ForScope(context.Background(), uid)
	require.NoError(t, err)
	require.NoError(t, store.Add(context.Background(), models.Product{
		ID: "p1", Name: "Linen Shirt", Price: 150, Gender: models.GenderMen,
	}))
	return store
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPlaceOrderReturnsPaymentPage(t *testing.T) {
	mgr := cart.NewManager(cart.NewMemoryStorage())
	orch := checkout.New("pk_test", &stubGateway{}, &stubGateway{}, &memOrders{})
	router := paymentRouter(orch, mgr, "cust1")
	seedCart(t, mgr, "cust1")

	w := postJSON(router, "/payment/checkout", `{"email":"a@b.com","name":"Ama"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://checkout.paystack.com/abc")
	assert.Contains(t, w.Body.String(), "ref_1")
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	mgr := cart.NewManager(cart.NewMemoryStorage())
	orch := checkout.New("pk_test", &stubGateway{}, &stubGateway{}, &memOrders{})
	router := paymentRouter(orch, mgr, "cust1")

	w := postJSON(router, "/payment/checkout", `{"email":"a@b.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cart is empty")
}

func TestCallbackVerifiedPaymentPlacesOrderAndClearsCart(t *testing.T) {
	mgr := cart.NewManager(cart.NewMemoryStorage())
	orders := &memOrders{}
	gw := &stubGateway{result: checkout.VerifyResult{Success: true}}
	orch := checkout.New("pk_test", gw, gw, orders)
	router := paymentRouter(orch, mgr, "cust1")
	store := seedCart(t, mgr, "cust1")

	w := postJSON(router, "/payment/checkout", `{"email":"a@b.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest("GET", "/payment/callback?reference=ref_1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order placed successfully")
	require.Len(t, orders.created, 1)
	assert.Equal(t, "ref_1", orders.created[0].Reference)
	assert.Zero(t, store.Count())
}

func TestCallbackFailedPaymentKeepsCart(t *testing.T) {
	mgr := cart.NewManager(cart.NewMemoryStorage())
	orders := &memOrders{}
	gw := &stubGateway{result: checkout.VerifyResult{Success: false}}
	orch := checkout.New("pk_test", gw, gw, orders)
	router := paymentRouter(orch, mgr, "cust1")
	store := seedCart(t, mgr, "cust1")

	w := postJSON(router, "/payment/checkout", `{"email":"a@b.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest("GET", "/payment/callback?reference=ref_1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Payment not successful")
	assert.Empty(t, orders.created)
	assert.Equal(t, 1, store.Count())
}

func TestCallbackUnknownReference(t *testing.T) {
	mgr := cart.NewManager(cart.NewMemoryStorage())
	orch := checkout.New("pk_test", &stubGateway{}, &stubGateway{}, &memOrders{})
	router := paymentRouter(orch, mgr, "cust1")

	req := httptest.NewRequest("GET", "/payment/callback?reference=nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClosePaymentLeavesCartIntact(t *testing.T) {
	mgr := cart.NewManager(cart.NewMemoryStorage())
	orders := &memOrders{}
	orch := checkout.New("pk_test", &stubGateway{}, &stubGateway{}, orders)
	router := paymentRouter(orch, mgr, "cust1")
	store := seedCart(t, mgr, "cust1")

	w := postJSON(router, "/payment/checkout", `{"email":"a@b.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(router, "/payment/close", `{"reference":"ref_1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, store.Count())
	assert.Empty(t, orders.created)

	req := httptest.NewRequest("GET", "/payment/callback?reference=ref_1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
