package models

// CartItem is the storefront view of one cart line: what the summary page
// shows and what gets snapshotted into a payment-link request. Quantity is
// always >= 1; zero-quantity lines are removed, never stored.
type CartItem struct {
	ID        int     `json:"id"`
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// LineTotal is the per-item subtotal (unit price times quantity).
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}
