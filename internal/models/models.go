package models

import (
	"time"
)

type Product struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         int       `json:"price"`          // rupees, whole units only
	OriginalPrice int       `json:"original_price"` // strike-through price, 0 if none
	ImageURL      string    `json:"image_url"`
	Images        []string  `json:"images"`
	Category      string    `json:"category"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	Features      []string  `json:"features"`
	Status        string    `json:"status"` // "available", "out_of_stock", "archived"
	CreatedAt     time.Time `json:"created_at"`
}

// Order is the locally mirrored copy of a row sent to the external order log.
// The log (a spreadsheet edited by the operator) stays the source of truth for
// fulfilment status; this mirror only feeds the admin screens.
type Order struct {
	ID             int       `json:"id"`
	OrderID        string    `json:"order_id"` // public "ORD-20240115-A3B2C1" id
	ProductID      int       `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Quantity       int       `json:"quantity"`
	UnitPrice      int       `json:"unit_price"`
	TotalAmount    int       `json:"total_amount"`
	CustomerName   string    `json:"customer_name"`
	CustomerMobile string    `json:"customer_mobile"`
	CustomerEmail  string    `json:"customer_email"`
	Street         string    `json:"street"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	Pincode        string    `json:"pincode"`
	PaymentMethod  string    `json:"payment_method"` // PaymentOnline or PaymentCOD
	CreatedAt      time.Time `json:"created_at"`
}

const (
	PaymentOnline = "Online"
	PaymentCOD    = "COD"
)

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // Store hashed password
}
