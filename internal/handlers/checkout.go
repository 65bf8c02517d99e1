package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Hunter28-lucky/Ecom-stores/internal/checkout"
	"github.com/Hunter28-lucky/Ecom-stores/internal/models"
	"github.com/Hunter28-lucky/Ecom-stores/internal/recorder"
	"github.com/Hunter28-lucky/Ecom-stores/internal/store"
	"github.com/Hunter28-lucky/Ecom-stores/internal/zapupi"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

// CheckoutHandler drives the whole payment flow: product page, order
// creation against the gateway, the QR/countdown payment page, manual status
// checks and the cash-on-delivery path.
type CheckoutHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	Gateway      *zapupi.Client
	Recorder     *recorder.Recorder
	Sessions     *checkout.Sessions
}

// ProductPage renders the product detail page with the checkout form.
func (h *CheckoutHandler) ProductPage(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid Product ID", http.StatusBadRequest)
		return
	}

	product, err := h.Store.GetProductByID(id)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	h.renderProduct(w, r, product, nil, nil, "")
}

// SubmitCheckout handles POST /checkout: validates the form, then either
// creates a gateway payment order (Online) or confirms directly (COD).
func (h *CheckoutHandler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	productID, err := strconv.Atoi(r.FormValue("product_id"))
	if err != nil {
		http.Error(w, "Invalid Product ID", http.StatusBadRequest)
		return
	}
	product, err := h.Store.GetProductByID(productID)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	quantity := 1
	if q, err := strconv.Atoi(r.FormValue("quantity")); err == nil && q > 0 {
		quantity = q
	}

	details := checkout.CustomerDetails{
		Name:    r.FormValue("name"),
		Mobile:  r.FormValue("mobile"),
		Email:   r.FormValue("email"),
		Street:  r.FormValue("address"),
		City:    r.FormValue("city"),
		State:   r.FormValue("state"),
		Pincode: r.FormValue("pincode"),
	}

	// Validation happens before any network call; a bad mobile number never
	// reaches the gateway.
	if fieldErrors := details.Validate(); len(fieldErrors) > 0 {
		h.renderProduct(w, r, product, fieldErrors, r.Form, "")
		return
	}

	paymentMethod := r.FormValue("payment_method")
	if paymentMethod != models.PaymentCOD {
		paymentMethod = models.PaymentOnline
	}

	session := checkout.NewSession(checkout.NewOrderID(), product.ID, product.Name, quantity, product.Price, details)

	if paymentMethod == models.PaymentCOD {
		h.recordOrder(session, models.PaymentCOD)
		h.renderConfirmation(w, r, session)
		return
	}

	epoch := session.Epoch()
	result := h.Gateway.CreateOrder(r.Context(), zapupi.CreateOrderParams{
		Amount:         session.TotalAmount,
		OrderID:        session.OrderID,
		CustomerMobile: details.Mobile,
	})

	if !session.Confirm(result, epoch) {
		message := result.Message
		if message == "" {
			message = "Failed to create payment order. Please try again."
		}
		h.renderProduct(w, r, product, nil, r.Form, message)
		return
	}

	h.Sessions.Put(session)

	// Fire and forget: the customer sees the payment page regardless of
	// whether the log row lands.
	h.recordOrder(session, models.PaymentOnline)

	http.Redirect(w, r, "/checkout/pay?order="+session.OrderID, http.StatusSeeOther)
}

// PaymentPage renders the QR code, countdown and status controls for an
// active checkout session.
func (h *CheckoutHandler) PaymentPage(w http.ResponseWriter, r *http.Request) {
	session := h.Sessions.Get(r.URL.Query().Get("order"))
	if session == nil || !session.Confirmed() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	tmpl := h.Templates.Get("payment.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	remaining := session.RemainingSeconds()
	expired := session.Expired()
	statusMessage := session.StatusMessage()
	if expired && statusMessage == "" {
		statusMessage = "Your payment link expired. Start a new order to generate a fresh QR code."
	}

	result := session.Result()
	data := map[string]interface{}{
		"OrderID":       session.OrderID,
		"ProductName":   session.ProductName,
		"Quantity":      session.Quantity,
		"TotalAmount":   session.TotalAmount,
		"QRImage":       session.QRImage(),
		"UPILink":       session.UPIDeepLink(),
		"PaymentURL":    result.PaymentURL,
		"Remaining":     remaining,
		"RemainingText": checkout.FormatRemaining(remaining),
		"Expired":       expired,
		"StatusMessage": statusMessage,
		"CsrfField":     csrf.TemplateField(r),
	}
	tmpl.Execute(w, data)
}

// CheckStatus handles the manual "Check Payment Status" button. One request
// per click; clicks while a check is in flight or after expiry are ignored.
func (h *CheckoutHandler) CheckStatus(w http.ResponseWriter, r *http.Request) {
	orderID := r.FormValue("order_id")
	session := h.Sessions.Get(orderID)
	if session == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if session.BeginStatusCheck() {
		res := h.Gateway.OrderStatus(r.Context(), orderID)
		session.EndStatusCheck(zapupi.StatusMessage(res))
	}

	http.Redirect(w, r, "/checkout/pay?order="+orderID, http.StatusSeeOther)
}

// ResetCheckout abandons the active payment attempt and returns the customer
// to the product page.
func (h *CheckoutHandler) ResetCheckout(w http.ResponseWriter, r *http.Request) {
	orderID := r.FormValue("order_id")
	if session := h.Sessions.Get(orderID); session != nil {
		productID := session.ProductID
		session.Reset()
		h.Sessions.Remove(orderID)
		http.Redirect(w, r, "/product?id="+strconv.Itoa(productID), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *CheckoutHandler) recordOrder(session *checkout.Session, paymentMethod string) {
	row := recorder.OrderRow{
		OrderID:       session.OrderID,
		Name:          session.Details.Name,
		Mobile:        session.Details.Mobile,
		Email:         session.Details.Email,
		Address:       session.Details.Street,
		City:          session.Details.City,
		State:         session.Details.State,
		Pincode:       session.Details.Pincode,
		Product:       session.ProductName,
		Price:         strconv.Itoa(session.TotalAmount),
		Timestamp:     recorder.FormatTimestamp(time.Now()),
		PaymentMethod: paymentMethod,
	}
	h.Recorder.RecordOrder(row)
	h.Recorder.SendConfirmationEmail(row)

	// Local mirror for the admin screens only; the spreadsheet stays the
	// source of truth.
	order := &models.Order{
		OrderID:        session.OrderID,
		ProductID:      session.ProductID,
		ProductName:    session.ProductName,
		Quantity:       session.Quantity,
		UnitPrice:      session.UnitPrice,
		TotalAmount:    session.TotalAmount,
		CustomerName:   session.Details.Name,
		CustomerMobile: session.Details.Mobile,
		CustomerEmail:  session.Details.Email,
		Street:         session.Details.Street,
		City:           session.Details.City,
		State:          session.Details.State,
		Pincode:        session.Details.Pincode,
		PaymentMethod:  paymentMethod,
	}
	if err := h.Store.MirrorOrder(order); err != nil {
		slog.Warn("Failed to mirror order locally", "order_id", session.OrderID, "error", err)
	}
}

func (h *CheckoutHandler) renderProduct(w http.ResponseWriter, r *http.Request, product *models.Product, fieldErrors map[string]string, values map[string][]string, banner string) {
	tmpl := h.Templates.Get("product.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Product":     product,
		"FieldErrors": fieldErrors,
		"Values":      values,
		"Error":       banner,
		"CsrfField":   csrf.TemplateField(r),
	}
	tmpl.Execute(w, data)
}

func (h *CheckoutHandler) renderConfirmation(w http.ResponseWriter, r *http.Request, session *checkout.Session) {
	tmpl := h.Templates.Get("confirmation.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"OrderID":     session.OrderID,
		"ProductName": session.ProductName,
		"Quantity":    session.Quantity,
		"TotalAmount": session.TotalAmount,
		"Name":        session.Details.Name,
	}
	tmpl.Execute(w, data)
}
