package models

// All lists every table in migration order.
func All() []any {
	return []any{
		&Book{},
		&User{},
		&RefreshToken{},
		&CartItem{},
		&WishlistItem{},
		&Order{},
		&OrderItem{},
	}
}
