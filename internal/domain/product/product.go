package product

import "time"

// Product is a menu item. It belongs to exactly one category.
type Product struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"category_id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	HalfPrice  *float64  `json:"half_price,omitempty"`
	Quantity   string    `json:"quantity,omitempty"`
	Images     []string  `json:"images"`
	Veg        bool      `json:"veg"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
