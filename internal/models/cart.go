package models

import (
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	ID        uint      `gorm:"primaryKey"                                   json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_line" json:"-"`
	BookID    uint      `gorm:"not null;uniqueIndex:idx_cart_line"           json:"bookId"`
	Quantity  uint      `gorm:"not null;default:1"                           json:"quantity"`
	Book      Book      `gorm:"foreignKey:BookID"                            json:"book"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type WishlistItem struct {
	ID             uint      `gorm:"primaryKey"                                       json:"-"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_line" json:"-"`
	BookID         uint      `gorm:"not null;uniqueIndex:idx_wishlist_line"           json:"bookId"`
	AddedAt        time.Time `gorm:"not null"                                         json:"addedAt"`
	PriceWhenAdded float64   `gorm:"not null"                                         json:"priceWhenAdded"`
	Book           Book      `gorm:"foreignKey:BookID"                                json:"book"`

	// PriceDrop is computed on read, nil when the price did not go down.
	PriceDrop *float64 `gorm:"-" json:"priceDrop"`
}
