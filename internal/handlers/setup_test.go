package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/cache"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/catalog"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/checkout"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/middleware"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testPaystackSecret = "sk_test_paystack"
	testStripeSecret   = "whsec_test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	t        *testing.T
	router   *gin.Engine
	handler  *Handler
	gateway  *fakeGateway
	orders   *fakeOrders
	mailer   *fakeMailer
	sessions *cache.SessionStore
	redis    *miniredis.Miniredis
	cookies  []*http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	gateway := &fakeGateway{result: models.PaymentResult{Status: models.PaymentStatusSuccess, Channel: "card"}}
	orderSvc := newFakeOrders()
	mailer := &fakeMailer{}
	sessions := cache.NewSessionStore(client, 0)

	orch := checkout.New(gateway, orderSvc, mailer, checkout.WithPricing(checkout.Pricing{
		Currency:    "NGN",
		ShippingFee: decimal.NewFromInt(1500),
	}))

	h := New(Deps{
		Catalog:             catalog.New(),
		Sessions:            sessions,
		Checkout:            orch,
		Orders:              orderSvc,
		Payments:            gateway,
		Inquiries:           mailer,
		Currency:            "NGN",
		PaystackSecret:      testPaystackSecret,
		StripeWebhookSecret: testStripeSecret,
		Logger:              zap.NewNop(),
	})

	r := gin.New()
	r.POST("/api/payments/paystack/webhook", h.PaystackWebhook)
	r.POST("/api/payments/stripe/webhook", h.StripeWebhook)

	api := r.Group("/api")
	api.Use(middleware.Session(middleware.NewSessionStore("handler-test-secret-0123456789", false), zap.NewNop()))
	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)
	api.GET("/categories/:category/products", h.ListCategory)
	api.GET("/cart", h.GetCart)
	api.GET("/cart/ws", h.CartWebSocket)
	api.POST("/cart/items", h.AddCartItem)
	api.PATCH("/cart/items/:productId", h.UpdateCartItem)
	api.DELETE("/cart/items/:productId", h.RemoveCartItem)
	api.DELETE("/cart", h.ClearCart)
	api.GET("/shipping", h.GetShipping)
	api.PUT("/shipping/fields", h.UpdateShippingField)
	api.POST("/shipping/saved", h.SaveShippingAddress)
	api.POST("/shipping/select", h.SelectShippingAddress)
	api.POST("/shipping/new-form", h.ToggleNewAddressForm)
	api.POST("/shipping/validate", h.ValidateShipping)
	api.POST("/payments/prepare", h.PreparePayment)
	api.POST("/checkout", h.Checkout)
	api.GET("/checkout/status", h.CheckoutStatus)
	api.GET("/orders", h.ListOrders)
	api.GET("/orders/:id", h.GetOrder)
	api.POST("/orders/:id/confirmation", h.ResendConfirmation)
	api.POST("/contact", h.Contact)
	api.POST("/export-inquiry", h.ExportInquiry)
	api.POST("/distributor-inquiry", h.DistributorInquiry)

	return &testEnv{
		t: t, router: r, handler: h, gateway: gateway, orders: orderSvc,
		mailer: mailer, sessions: sessions, redis: mr,
	}
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// do envoie une requête dans la session navigateur de l'env.
func (e *testEnv) do(method, path string, body any, headers ...string) (*httptest.ResponseRecorder, apiResponse) {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case []byte:
			buf.Write(b)
		default:
			require.NoError(e.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	for _, ck := range e.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		e.cookies = set
	}

	var resp apiResponse
	if w.Body.Len() > 0 {
		require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

// fillAddress remplit l'adresse de livraison active.
func (e *testEnv) fillAddress() {
	e.t.Helper()
	for field, value := range map[string]string{
		"full_name":      "Ada Obi",
		"phone":          "+2348012345678",
		"address_line_1": "12 Admiralty Way",
		"city":           "Lekki",
		"state":          "Lagos",
	} {
		w, _ := e.do(http.MethodPut, "/api/shipping/fields", gin.H{"field": field, "value": value})
		require.Equal(e.t, http.StatusOK, w.Code)
	}
}
