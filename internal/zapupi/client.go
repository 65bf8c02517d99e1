// Package zapupi speaks the ZapUPI payment gateway's form-encoded HTTP API.
// The gateway has no SDK; every call is a POST of url-encoded fields with the
// merchant credentials attached, answered with a JSON body.
package zapupi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.zapupi.com"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type Client struct {
	BaseURL    string
	TokenKey   string
	SecretKey  string
	HTTPClient *http.Client
}

func New(baseURL, tokenKey, secretKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		TokenKey:   tokenKey,
		SecretKey:  secretKey,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether both merchant credentials are present.
// Callers must fail closed when it returns false.
func (c *Client) Configured() bool {
	return c.TokenKey != "" && c.SecretKey != ""
}

type CreateOrderParams struct {
	Amount         int
	OrderID        string
	CustomerMobile string
	RedirectURL    string
	Remark         string
}

// CreateOrderResult mirrors the gateway's create-order response body.
// On success at least one of PaymentURL and PaymentData is set.
type CreateOrderResult struct {
	Status             string `json:"status"`
	Message            string `json:"message"`
	PaymentURL         string `json:"payment_url,omitempty"`
	OrderID            string `json:"order_id,omitempty"`
	PaymentData        string `json:"payment_data,omitempty"`
	AutoCheckEvery2Sec string `json:"auto_check_every_2_sec,omitempty"`
	UTRCheck           string `json:"utr_check,omitempty"`
}

type OrderStatusResult struct {
	Status  string           `json:"status"`
	Message string           `json:"message,omitempty"`
	Data    *OrderStatusData `json:"data,omitempty"`
}

// OrderStatusData keeps the gateway's own field spellings, typos included.
type OrderStatusData struct {
	CustomerMobile string `json:"custumer_mobile"`
	UTR            string `json:"utr"`
	Remark         string `json:"remark"`
	TxnID          string `json:"txn_id"`
	CreatedAt      string `json:"create_at"`
	OrderID        string `json:"order_id"`
	Status         string `json:"status"`
	Amount         string `json:"amount"`
}

// CreateOrder asks the gateway for a new payment order. Transport failures,
// non-JSON bodies and gateway-side errors are all normalized into a result
// with Status "error"; the method itself never fails.
func (c *Client) CreateOrder(ctx context.Context, p CreateOrderParams) CreateOrderResult {
	_, body := c.CreateOrderRaw(ctx, p)
	var out CreateOrderResult
	if err := json.Unmarshal(body, &out); err != nil {
		return CreateOrderResult{Status: StatusError, Message: "Unexpected response from payment gateway"}
	}
	return out
}

// OrderStatus fetches the current state of a previously created order.
// Same normalization contract as CreateOrder.
func (c *Client) OrderStatus(ctx context.Context, orderID string) OrderStatusResult {
	_, body := c.OrderStatusRaw(ctx, orderID)
	var out OrderStatusResult
	if err := json.Unmarshal(body, &out); err != nil {
		return OrderStatusResult{Status: StatusError, Message: "Unexpected response from payment gateway"}
	}
	return out
}

// CreateOrderRaw returns the gateway's HTTP status code and JSON body verbatim
// so the proxy endpoints can pass both through to their own callers.
func (c *Client) CreateOrderRaw(ctx context.Context, p CreateOrderParams) (int, json.RawMessage) {
	form := url.Values{}
	setIfPresent(form, "amount", strconv.Itoa(p.Amount))
	setIfPresent(form, "order_id", p.OrderID)
	setIfPresent(form, "custumer_mobile", p.CustomerMobile) // gateway's spelling
	setIfPresent(form, "redirect_url", p.RedirectURL)
	setIfPresent(form, "remark", p.Remark)
	return c.forward(ctx, "/api/create-order", form)
}

func (c *Client) OrderStatusRaw(ctx context.Context, orderID string) (int, json.RawMessage) {
	form := url.Values{}
	setIfPresent(form, "order_id", orderID)
	return c.forward(ctx, "/api/order-status", form)
}

func setIfPresent(form url.Values, key, value string) {
	if value != "" && value != "0" {
		form.Set(key, value)
	}
}

func (c *Client) forward(ctx context.Context, endpoint string, form url.Values) (int, json.RawMessage) {
	form.Set("token_key", c.TokenKey)
	form.Set("secret_key", c.SecretKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return http.StatusInternalServerError, errorBody("Unable to reach payment gateway. Please try again later.")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		slog.Error("Gateway request failed", "endpoint", endpoint, "error", err)
		return http.StatusInternalServerError, errorBody("Unable to reach payment gateway. Please try again later.")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || !json.Valid(body) {
		slog.Error("Gateway returned non-JSON body", "endpoint", endpoint, "status", resp.StatusCode)
		return resp.StatusCode, errorBody("Unexpected response from payment gateway")
	}
	return resp.StatusCode, body
}

func errorBody(message string) json.RawMessage {
	body, _ := json.Marshal(map[string]string{"status": StatusError, "message": message})
	return body
}
