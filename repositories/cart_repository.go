package repositories

import (
	"context"
	"errors"
	"time"

	"shopfront/models"

	"github.com/jackc/pgx/v5"
)

var ErrCartItemNotFound = errors.New("cart item not found")

type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// ItemsForUser returns the user's cart joined with live product data, so
// prices reflect the catalog at read time rather than at add-to-cart time.
func (r *CartRepository) ItemsForUser(ctx context.Context, userID int) ([]models.CartItem, error) {
	query := `
		SELECT ci.id, ci.product_id, p.name, COALESCE(p.image_url,''), p.price, ci.quantity
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.user_id = $1 AND p.is_active = true
		ORDER BY ci.created_at
	`
	rows, err := models.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var i models.CartItem
		if err := rows.Scan(&i.ID, &i.ProductID, &i.Name, &i.Image, &i.Price, &i.Quantity); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, nil
}

// AddItem inserts a cart line or bumps the quantity when the product is
// already in the cart.
func (r *CartRepository) AddItem(ctx context.Context, userID, productID, quantity int) error {
	now := time.Now()
	query := `
		INSERT INTO cart_items (user_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = $4
	`
	_, err := models.DB.Exec(ctx, query, userID, productID, quantity, now)
	return err
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, itemID, quantity int) error {
	tag, err := models.DB.Exec(ctx,
		`UPDATE cart_items SET quantity = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`,
		quantity, time.Now(), itemID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepository) RemoveItem(ctx context.Context, userID, itemID int) error {
	tag, err := models.DB.Exec(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID int) error {
	_, err := models.DB.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}

// ProductExists reports whether an active product with the given id exists.
func (r *CartRepository) ProductExists(ctx context.Context, productID int) (bool, error) {
	var id int
	err := models.DB.QueryRow(ctx,
		`SELECT id FROM products WHERE id = $1 AND is_active = true`, productID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
