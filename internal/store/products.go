package store

import (
	"encoding/json"

	"github.com/Hunter28-lucky/Ecom-stores/internal/models"
)

const productColumns = `id, name, description, price, COALESCE(original_price, 0), image_url,
	COALESCE(images, '[]'), category, rating, review_count, COALESCE(features, '[]'),
	COALESCE(status, 'available') as status, created_at`

func (s *Store) CreateProduct(p *models.Product) error {
	images, features := encodeLists(p)
	query := `
		INSERT INTO products (name, description, price, original_price, image_url, images, category, rating, review_count, features, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	_, err := s.DB.Exec(query, p.Name, p.Description, p.Price, p.OriginalPrice, p.ImageURL, images, p.Category, p.Rating, p.ReviewCount, features, p.Status)
	return err
}

func (s *Store) GetAllProducts() ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	return s.queryProducts(query)
}

// GetPublicProducts excludes archived products from the storefront.
func (s *Store) GetPublicProducts() ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
	          WHERE status != 'archived' OR status IS NULL
	          ORDER BY created_at DESC`
	return s.queryProducts(query)
}

func (s *Store) GetProductByID(id int) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	row := s.DB.QueryRow(query, id)

	p, err := scanProduct(row.Scan)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) UpdateProduct(p *models.Product) error {
	images, features := encodeLists(p)
	query := `
		UPDATE products
		SET name = ?, description = ?, price = ?, original_price = ?, images = ?, category = ?, rating = ?, review_count = ?, features = ?, status = ?
		WHERE id = ?
	`
	_, err := s.DB.Exec(query, p.Name, p.Description, p.Price, p.OriginalPrice, images, p.Category, p.Rating, p.ReviewCount, features, p.Status, p.ID)
	return err
}

func (s *Store) UpdateProductImage(id int, imageURL string) error {
	query := `UPDATE products SET image_url = ? WHERE id = ?`
	_, err := s.DB.Exec(query, imageURL, id)
	return err
}

func (s *Store) DeleteProduct(id int) error {
	query := `DELETE FROM products WHERE id = ?`
	_, err := s.DB.Exec(query, id)
	return err
}

func (s *Store) queryProducts(query string, args ...any) ([]models.Product, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func scanProduct(scan func(...any) error) (*models.Product, error) {
	var p models.Product
	var images, features string
	if err := scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.OriginalPrice, &p.ImageURL,
		&images, &p.Category, &p.Rating, &p.ReviewCount, &features, &p.Status, &p.CreatedAt); err != nil {
		return nil, err
	}
	// Gallery and feature lists live as JSON text columns; bad rows degrade
	// to empty lists instead of failing the page.
	if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
		p.Images = nil
	}
	if err := json.Unmarshal([]byte(features), &p.Features); err != nil {
		p.Features = nil
	}
	return &p, nil
}

func encodeLists(p *models.Product) (images, features string) {
	ib, err := json.Marshal(p.Images)
	if err != nil || p.Images == nil {
		ib = []byte("[]")
	}
	fb, err := json.Marshal(p.Features)
	if err != nil || p.Features == nil {
		fb = []byte("[]")
	}
	return string(ib), string(fb)
}
