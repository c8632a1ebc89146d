package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopfront/models"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// CreateFromCheckout records a pending order and its item snapshot in one
// transaction. Called right before the redirect to the payment link.
func (r *OrderRepository) CreateFromCheckout(ctx context.Context, userID int, form *models.ShippingForm,
	items []models.CartItem, pricing models.PricingBreakdown) (*models.Order, error) {

	tx, err := models.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	order := &models.Order{
		OrderNumber: fmt.Sprintf("ORD-%d", now.UnixNano()),
		UserID:      userID,
		Status:      "pending",
		Subtotal:    pricing.Subtotal,
		Shipping:    pricing.Shipping,
		Tax:         pricing.Tax,
		Total:       pricing.Total,
		Email:       form.Email,
		FullName:    strings.TrimSpace(form.FirstName + " " + form.LastName),
		Phone:       form.Phone,
		Address:     formatAddress(form),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (order_number, user_id, status, subtotal, shipping, tax, total,
		                    email, full_name, phone, address, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$12) RETURNING id`,
		order.OrderNumber, order.UserID, order.Status, order.Subtotal, order.Shipping,
		order.Tax, order.Total, order.Email, order.FullName, order.Phone, order.Address, now,
	).Scan(&order.ID)
	if err != nil {
		return nil, err
	}

	order.Items = orderItemsFromCart(items)
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		item := order.Items[i]
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, name, quantity, price, created_at)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			order.ID, item.ProductID, item.ProductName, item.Quantity, item.Price, now)
		if err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return order, nil
}

// orderItemsFromCart snapshots cart lines into order items. Name and price
// are copied, not referenced: the order keeps what the customer saw even if
// the catalog changes later.
func orderItemsFromCart(items []models.CartItem) []models.OrderItem {
	out := make([]models.OrderItem, len(items))
	for i, item := range items {
		out[i] = models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}
	return out
}

func formatAddress(form *models.ShippingForm) string {
	parts := []string{form.Address1}
	if strings.TrimSpace(form.Address2) != "" {
		parts = append(parts, form.Address2)
	}
	parts = append(parts, form.City, form.State, form.PostalCode, form.Country)
	return strings.Join(parts, ", ")
}

func (r *OrderRepository) ListForUser(ctx context.Context, userID, page, limit int) ([]models.Order, int, error) {
	offset := (page - 1) * limit

	var total int
	err := models.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := models.DB.Query(ctx, `
		SELECT id, order_number, user_id, status, subtotal, shipping, tax, total,
		       email, full_name, phone, address, created_at, updated_at
		FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	return scanOrders(rows, total)
}

func (r *OrderRepository) ListAll(ctx context.Context, page, limit int, status string) ([]models.Order, int, error) {
	offset := (page - 1) * limit

	where := ""
	args := []interface{}{}
	if status != "" && status != "All" {
		where = " WHERE status = $1"
		args = append(args, status)
	}

	var total int
	err := models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM orders"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, order_number, user_id, status, subtotal, shipping, tax, total,
		       email, full_name, phone, address, created_at, updated_at
		FROM orders%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := models.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	return scanOrders(rows, total)
}

func (r *OrderRepository) GetByID(ctx context.Context, id int) (*models.Order, error) {
	var o models.Order
	err := models.DB.QueryRow(ctx, `
		SELECT id, order_number, user_id, status, subtotal, shipping, tax, total,
		       email, full_name, phone, address, created_at, updated_at
		FROM orders WHERE id = $1`, id).Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.Subtotal, &o.Shipping, &o.Tax,
		&o.Total, &o.Email, &o.FullName, &o.Phone, &o.Address, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := models.DB.Query(ctx, `
		SELECT id, order_id, product_id, name, quantity, price
		FROM order_items WHERE order_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.ProductName, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	return &o, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	tag, err := models.DB.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d not found", id)
	}
	return nil
}

type orderRows interface {
	Next() bool
	Scan(dest ...interface{}) error
}

func scanOrders(rows orderRows, total int) ([]models.Order, int, error) {
	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.Subtotal,
			&o.Shipping, &o.Tax, &o.Total, &o.Email, &o.FullName, &o.Phone,
			&o.Address, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, nil
}
