// Package recorder forwards submitted orders to the external order log (a
// spreadsheet webhook) and triggers confirmation emails. Everything here is
// best effort by contract: the customer has already seen the success screen
// before any of these requests leave the box, and a lost row is an operator
// problem, never a checkout failure.
package recorder

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Hunter28-lucky/Ecom-stores/internal/models"
)

// OrderRow is the JSON shape the order-log webhook accepts. Field names match
// the spreadsheet script's column mapping.
type OrderRow struct {
	OrderID       string `json:"orderId"`
	Name          string `json:"name"`
	Mobile        string `json:"mobile"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`
	Product       string `json:"product"`
	Price         string `json:"price"`
	Timestamp     string `json:"timestamp"`
	PaymentMethod string `json:"paymentMethod"`

	// Set only for the confirmation-email variant.
	Action       string `json:"action,omitempty"`
	EmailSubject string `json:"emailSubject,omitempty"`
	EmailMessage string `json:"emailMessage,omitempty"`
}

// Recorder is a one-way dispatcher: Enqueue-style methods hand a row to the
// worker goroutine and return immediately. The webhook's responses are opaque
// by design, so delivery is never confirmed, only attempted and logged.
type Recorder struct {
	url    string
	client *http.Client

	queue chan OrderRow
	once  sync.Once
	done  chan struct{}
}

const queueDepth = 64

func New(url string) *Recorder {
	r := &Recorder{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
		queue:  make(chan OrderRow, queueDepth),
		done:   make(chan struct{}),
	}
	go r.run()
	return r
}

// RecordOrder queues one order-log row. Never blocks the caller: when the
// queue is full the row is dropped and logged.
func (r *Recorder) RecordOrder(row OrderRow) {
	if row.PaymentMethod == "" {
		row.PaymentMethod = models.PaymentOnline
	}
	r.enqueue(row)
}

// SendConfirmationEmail queues the email-trigger variant for the same order.
func (r *Recorder) SendConfirmationEmail(row OrderRow) {
	if row.PaymentMethod == "" {
		row.PaymentMethod = models.PaymentOnline
	}
	row.Action = "sendEmail"
	row.EmailSubject = "Order Confirmation - " + row.OrderID
	row.EmailMessage = confirmationBody(row)
	r.enqueue(row)
}

// Close stops the worker after draining queued rows. Call during shutdown.
func (r *Recorder) Close() {
	r.once.Do(func() {
		close(r.queue)
	})
	<-r.done
}

func (r *Recorder) enqueue(row OrderRow) {
	if r.url == "" {
		slog.Debug("Order log disabled, dropping row", "order_id", row.OrderID)
		return
	}
	select {
	case r.queue <- row:
	default:
		slog.Warn("Order log queue full, dropping row", "order_id", row.OrderID)
	}
}

func (r *Recorder) run() {
	defer close(r.done)
	for row := range r.queue {
		r.post(row)
	}
}

func (r *Recorder) post(row OrderRow) {
	body, err := json.Marshal(row)
	if err != nil {
		slog.Error("Order log row marshal failed", "order_id", row.OrderID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		slog.Error("Order log request build failed", "order_id", row.OrderID, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		slog.Warn("Order log post failed", "order_id", row.OrderID, "action", row.Action, "error", err)
		return
	}
	// The webhook's body carries nothing useful; drain it so the
	// connection can be reused.
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	slog.Info("Order log row sent", "order_id", row.OrderID, "action", row.Action, "status", resp.StatusCode)
}

// FormatTimestamp renders the order-log timestamp column: DD/MM/YYYY HH:MM:SS.
func FormatTimestamp(t time.Time) string {
	return t.Format("02/01/2006 15:04:05")
}

func confirmationBody(row OrderRow) string {
	arrival := "Your product will be shipped soon."
	if row.PaymentMethod == models.PaymentCOD {
		arrival = "Your product will arrive in 5-7 working days."
	}
	return "Dear " + row.Name + ",\n\n" +
		"Thank you for your order! Your order has been confirmed.\n\n" +
		"Order Details:\n" +
		"- Order ID: " + row.OrderID + "\n" +
		"- Product: " + row.Product + "\n" +
		"- Amount: " + row.Price + "\n" +
		"- Payment Method: " + row.PaymentMethod + "\n\n" +
		"Delivery Address:\n" +
		row.Address + "\n" +
		row.City + ", " + row.State + " - " + row.Pincode + "\n\n" +
		arrival + "\n\n" +
		"Thank you for shopping with us!"
}
