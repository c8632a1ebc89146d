package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopfront/models"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) GetAllCategories() ([]models.Category, error) {
	query := `SELECT id, name, is_active, created_at FROM categories ORDER BY name`

	rows, err := models.DB.Query(context.Background(), query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.IsActive, &cat.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, nil
}

func (r *ProductRepository) GetAllProducts(page, limit int, search string, categoryID int) ([]models.Product, int, error) {
	offset := (page - 1) * limit

	where := []string{"is_active = true"}
	args := []interface{}{}
	argIndex := 1

	if search != "" {
		where = append(where, fmt.Sprintf("name ILIKE $%d", argIndex))
		args = append(args, "%"+search+"%")
		argIndex++
	}
	if categoryID > 0 {
		where = append(where, fmt.Sprintf("category_id = $%d", argIndex))
		args = append(args, categoryID)
		argIndex++
	}

	whereClause := " WHERE " + strings.Join(where, " AND ")

	var total int
	err := models.DB.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM products"+whereClause, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT id, name, description, category_id, price, stock, COALESCE(image_url,''), is_active, created_at, updated_at
	          FROM products%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := models.DB.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.Price,
			&p.Stock, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, nil
}

func (r *ProductRepository) GetProductByID(id int) (*models.Product, error) {
	query := `SELECT id, name, description, category_id, price, stock, COALESCE(image_url,''), is_active, created_at, updated_at
	          FROM products WHERE id = $1`

	var p models.Product
	err := models.DB.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.Price,
		&p.Stock, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) CreateProduct(product *models.Product) error {
	query := `
		INSERT INTO products (name, description, category_id, price, stock, image_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, true, $7, $8)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return models.DB.QueryRow(context.Background(), query,
		product.Name, product.Description, product.CategoryID, product.Price,
		product.Stock, product.ImageURL, now, now,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *ProductRepository) UpdateProduct(product *models.Product) error {
	query := `UPDATE products SET name = $1, description = $2, category_id = $3, price = $4,
	          stock = $5, image_url = $6, is_active = $7, updated_at = $8 WHERE id = $9`
	_, err := models.DB.Exec(context.Background(), query,
		product.Name, product.Description, product.CategoryID, product.Price,
		product.Stock, product.ImageURL, product.IsActive, time.Now(), product.ID,
	)
	return err
}

func (r *ProductRepository) DeleteProduct(id int) error {
	query := `UPDATE products SET is_active = false WHERE id = $1`
	_, err := models.DB.Exec(context.Background(), query, id)
	return err
}
