package zapupi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClient(gatewayURL string) *Client {
	return New(gatewayURL, "test-token", "test-secret")
}

func TestCreateOrderSendsCredentialsAndFields(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/create-order", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		r.ParseForm()
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}

		json.NewEncoder(w).Encode(map[string]string{
			"status":       "success",
			"message":      "Order created",
			"payment_data": "upi://pay?pa=merchant@bank&am=199",
			"order_id":     r.PostForm.Get("order_id"),
		})
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).CreateOrder(context.Background(), CreateOrderParams{
		Amount:         199,
		OrderID:        "ORD123",
		CustomerMobile: "9876543210",
	})

	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, "upi://pay?pa=merchant@bank&am=199", res.PaymentData)
	assert.Equal(t, "ORD123", res.OrderID)

	assert.Equal(t, "test-token", gotForm["token_key"])
	assert.Equal(t, "test-secret", gotForm["secret_key"])
	assert.Equal(t, "199", gotForm["amount"])
	assert.Equal(t, "ORD123", gotForm["order_id"])
	// The gateway spells the field this way.
	assert.Equal(t, "9876543210", gotForm["custumer_mobile"])
	// Empty optionals stay off the wire.
	_, hasRedirect := gotForm["redirect_url"]
	assert.False(t, hasRedirect)
	_, hasRemark := gotForm["remark"]
	assert.False(t, hasRemark)
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "error",
			"message": "insufficient funds",
		})
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).CreateOrder(context.Background(), CreateOrderParams{
		Amount: 199, OrderID: "ORD123", CustomerMobile: "9876543210",
	})

	assert.Equal(t, StatusError, res.Status)
	assert.Equal(t, "insufficient funds", res.Message)
	assert.Empty(t, res.PaymentURL)
	assert.Empty(t, res.PaymentData)
}

func TestCreateOrderUnreachableGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	res := newTestClient(srv.URL).CreateOrder(context.Background(), CreateOrderParams{
		Amount: 199, OrderID: "ORD123", CustomerMobile: "9876543210",
	})

	assert.Equal(t, StatusError, res.Status)
	assert.Equal(t, "Unable to reach payment gateway. Please try again later.", res.Message)
}

func TestCreateOrderNonJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>502 Bad Gateway</html>"))
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).CreateOrder(context.Background(), CreateOrderParams{
		Amount: 199, OrderID: "ORD123", CustomerMobile: "9876543210",
	})

	assert.Equal(t, StatusError, res.Status)
	assert.Equal(t, "Unexpected response from payment gateway", res.Message)
}

func TestOrderStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/order-status", r.URL.Path)
		r.ParseForm()
		assert.Equal(t, "ORD123", r.PostForm.Get("order_id"))

		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data": map[string]string{
				"order_id": "ORD123",
				"status":   "PENDING",
				"amount":   "199",
			},
		})
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).OrderStatus(context.Background(), "ORD123")

	assert.Equal(t, StatusSuccess, res.Status)
	if assert.NotNil(t, res.Data) {
		assert.Equal(t, "PENDING", res.Data.Status)
		assert.Equal(t, "ORD123", res.Data.OrderID)
	}
}

func TestOrderStatusMissingData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).OrderStatus(context.Background(), "ORD123")
	assert.Nil(t, res.Data)
	assert.Equal(t, "Payment status is not available yet. Please try again in a moment.", StatusMessage(res))
}

func TestConfigured(t *testing.T) {
	assert.True(t, New("", "tk", "sk").Configured())
	assert.False(t, New("", "", "sk").Configured())
	assert.False(t, New("", "tk", "").Configured())
}
