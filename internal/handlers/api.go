package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Hunter28-lucky/Ecom-stores/internal/checkout"
	"github.com/Hunter28-lucky/Ecom-stores/internal/zapupi"
)

// APIHandler exposes the thin JSON proxy in front of the payment gateway.
// Credentials stay server-side; the browser only ever sees these two routes.
type APIHandler struct {
	Gateway *zapupi.Client
}

type createOrderRequest struct {
	Amount         float64 `json:"amount"`
	OrderID        string  `json:"orderId"`
	CustomerMobile string  `json:"customerMobile"`
	RedirectURL    string  `json:"redirectUrl"`
	Remark         string  `json:"remark"`
}

type orderStatusRequest struct {
	OrderID string `json:"orderId"`
}

// CreateOrder handles POST /api/create-order.
func (h *APIHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	json.NewDecoder(r.Body).Decode(&req) // a bad body falls out as missing fields below

	if !h.Gateway.Configured() {
		writeJSONError(w, http.StatusInternalServerError, "Payment gateway credentials are not configured on the server.")
		return
	}
	if req.Amount <= 0 || req.OrderID == "" || req.CustomerMobile == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing required fields: amount, orderId, and customerMobile are required.")
		return
	}
	if !checkout.ValidMobile(req.CustomerMobile) {
		writeJSONError(w, http.StatusBadRequest, "A valid 10-digit mobile number is required.")
		return
	}

	status, body := h.Gateway.CreateOrderRaw(r.Context(), zapupi.CreateOrderParams{
		Amount:         int(req.Amount),
		OrderID:        req.OrderID,
		CustomerMobile: req.CustomerMobile,
		RedirectURL:    req.RedirectURL,
		Remark:         req.Remark,
	})
	writeGatewayResponse(w, status, body)
}

// OrderStatus handles POST /api/order-status.
func (h *APIHandler) OrderStatus(w http.ResponseWriter, r *http.Request) {
	var req orderStatusRequest
	json.NewDecoder(r.Body).Decode(&req)

	if !h.Gateway.Configured() {
		writeJSONError(w, http.StatusInternalServerError, "Payment gateway credentials are not configured on the server.")
		return
	}
	if req.OrderID == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing required field: orderId")
		return
	}

	status, body := h.Gateway.OrderStatusRaw(r.Context(), req.OrderID)
	writeGatewayResponse(w, status, body)
}

// writeGatewayResponse passes the gateway's JSON body through, flattening any
// 2xx to a plain 200.
func writeGatewayResponse(w http.ResponseWriter, status int, body json.RawMessage) {
	if status >= 200 && status < 300 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  zapupi.StatusError,
		"message": message,
	})
}
