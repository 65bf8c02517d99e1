package store

import "database/sql"

type DashboardStats struct {
	TotalProducts   int
	TotalOrders     int
	TotalRevenue    int
	OrdersByMethod  map[string]int
	ProductOrderCounts []ProductOrderCount
}

type ProductOrderCount struct {
	ProductID  int
	Name       string
	OrderCount int
}

func (s *Store) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		OrdersByMethod: make(map[string]int),
	}

	err := s.DB.QueryRow("SELECT COUNT(*) FROM products").Scan(&stats.TotalProducts)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	err = s.DB.QueryRow("SELECT COUNT(*) FROM orders").Scan(&stats.TotalOrders)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	err = s.DB.QueryRow("SELECT COALESCE(SUM(total_amount), 0) FROM orders").Scan(&stats.TotalRevenue)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	rows, err := s.DB.Query("SELECT payment_method, COUNT(*) FROM orders GROUP BY payment_method")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var method string
		var count int
		if err := rows.Scan(&method, &count); err != nil {
			return nil, err
		}
		stats.OrdersByMethod[method] = count
	}

	productRows, err := s.DB.Query(`
		SELECT p.id, p.name, COUNT(o.id) as order_count
		FROM products p
		LEFT JOIN orders o ON p.id = o.product_id
		GROUP BY p.id
		ORDER BY order_count DESC
	`)
	if err != nil {
		return nil, err
	}
	defer productRows.Close()
	for productRows.Next() {
		var poc ProductOrderCount
		if err := productRows.Scan(&poc.ProductID, &poc.Name, &poc.OrderCount); err != nil {
			return nil, err
		}
		stats.ProductOrderCounts = append(stats.ProductOrderCounts, poc)
	}

	return stats, nil
}
