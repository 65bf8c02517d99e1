package store

import (
	"github.com/Hunter28-lucky/Ecom-stores/internal/models"
)

// MirrorOrder appends a local copy of a row that was dispatched to the
// external order log. Best effort like the dispatch itself: callers log and
// move on when it fails.
func (s *Store) MirrorOrder(order *models.Order) error {
	query := `
		INSERT INTO orders (order_id, product_id, product_name, quantity, unit_price, total_amount,
			customer_name, customer_mobile, customer_email, street, city, state, pincode, payment_method, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	_, err := s.DB.Exec(query, order.OrderID, order.ProductID, order.ProductName, order.Quantity,
		order.UnitPrice, order.TotalAmount, order.CustomerName, order.CustomerMobile, order.CustomerEmail,
		order.Street, order.City, order.State, order.Pincode, order.PaymentMethod)
	return err
}

func (s *Store) GetAllOrders(limit, offset int) ([]models.Order, error) {
	query := `
		SELECT id, order_id, product_id, COALESCE(product_name, ''), COALESCE(quantity, 1),
			unit_price, total_amount, customer_name, customer_mobile, customer_email,
			street, city, state, pincode, payment_method, created_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := s.DB.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.OrderID, &o.ProductID, &o.ProductName, &o.Quantity,
			&o.UnitPrice, &o.TotalAmount, &o.CustomerName, &o.CustomerMobile, &o.CustomerEmail,
			&o.Street, &o.City, &o.State, &o.Pincode, &o.PaymentMethod, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *Store) GetTotalOrdersCount() (int, error) {
	var count int
	err := s.DB.QueryRow("SELECT COUNT(*) FROM orders").Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
