package recorder

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Hunter28-lucky/Ecom-stores/internal/models"
)

func sampleRow() OrderRow {
	return OrderRow{
		OrderID:       "ORD-20240115-A3B2C1",
		Name:          "Asha Verma",
		Mobile:        "9876543210",
		Email:         "asha@example.com",
		Address:       "12 MG Road",
		City:          "Pune",
		State:         "Maharashtra",
		Pincode:       "411001",
		Product:       "Wireless Earbuds",
		Price:         "199",
		Timestamp:     "15/01/2024 10:30:00",
		PaymentMethod: models.PaymentOnline,
	}
}

func TestRecordOrderPostsRow(t *testing.T) {
	var mu sync.Mutex
	var received []OrderRow

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var row OrderRow
		if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
			t.Errorf("bad body: %v", err)
		}
		mu.Lock()
		received = append(received, row)
		mu.Unlock()
	}))
	defer srv.Close()

	rec := New(srv.URL)
	rec.RecordOrder(sampleRow())
	rec.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 1 {
		t.Fatalf("expected 1 row, got %d", len(received))
	}
	if received[0].OrderID != "ORD-20240115-A3B2C1" {
		t.Errorf("unexpected order id %q", received[0].OrderID)
	}
	if received[0].Action != "" {
		t.Errorf("plain row must not carry an action, got %q", received[0].Action)
	}
	if received[0].PaymentMethod != models.PaymentOnline {
		t.Errorf("unexpected payment method %q", received[0].PaymentMethod)
	}
}

func TestSendConfirmationEmailVariant(t *testing.T) {
	var mu sync.Mutex
	var received []OrderRow

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var row OrderRow
		json.NewDecoder(r.Body).Decode(&row)
		mu.Lock()
		received = append(received, row)
		mu.Unlock()
	}))
	defer srv.Close()

	rec := New(srv.URL)
	row := sampleRow()
	row.PaymentMethod = models.PaymentCOD
	rec.SendConfirmationEmail(row)
	rec.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 1 {
		t.Fatalf("expected 1 row, got %d", len(received))
	}
	got := received[0]
	if got.Action != "sendEmail" {
		t.Errorf("expected action sendEmail, got %q", got.Action)
	}
	if got.EmailSubject != "Order Confirmation - ORD-20240115-A3B2C1" {
		t.Errorf("unexpected subject %q", got.EmailSubject)
	}
	if !strings.Contains(got.EmailMessage, "5-7 working days") {
		t.Errorf("COD email should mention the delivery window, got %q", got.EmailMessage)
	}
	if !strings.Contains(got.EmailMessage, "Dear Asha Verma") {
		t.Errorf("email should address the customer, got %q", got.EmailMessage)
	}
}

func TestRecordOrderSwallowsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // unreachable from here on

	rec := New(srv.URL)
	rec.RecordOrder(sampleRow()) // must not panic or block
	rec.Close()
}

func TestRecordOrderDisabledWithoutURL(t *testing.T) {
	rec := New("")
	rec.RecordOrder(sampleRow())
	rec.Close()
}

func TestRecordOrderNeverBlocksCaller(t *testing.T) {
	// A hanging endpoint must not stall callers: rows beyond the queue
	// depth are dropped, not waited on.
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	rec := New(srv.URL)
	done := make(chan struct{})
	go func() {
		for i := 0; i < queueDepth*2; i++ {
			rec.RecordOrder(sampleRow())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RecordOrder blocked the caller")
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 1, 15, 9, 5, 7, 0, time.UTC)
	if got := FormatTimestamp(ts); got != "15/01/2024 09:05:07" {
		t.Errorf("unexpected timestamp format %q", got)
	}
}
