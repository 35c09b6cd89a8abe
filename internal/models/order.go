package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const OrderStatusConfirmed = "confirmed"

type ShippingAddress struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName"  validate:"required,max=100"`
	Email     string `json:"email"     validate:"required,email"`
	Phone     string `json:"phone"     validate:"required,max=32"`
	Address   string `json:"address"   validate:"required,max=200"`
	City      string `json:"city"      validate:"required,max=100"`
	State     string `json:"state"     validate:"required,max=100"`
	ZipCode   string `json:"zipCode"   validate:"required,max=16"`
	Country   string `json:"country"   validate:"required,max=100"`
}

type Order struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"              json:"id"`
	Number    string          `gorm:"not null;uniqueIndex"              json:"orderNumber"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"          json:"-"`
	Status    string          `gorm:"not null"                          json:"status"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(10,2);not null"       json:"subtotal"`
	Shipping  decimal.Decimal `gorm:"type:numeric(10,2);not null"       json:"shipping"`
	Tax       decimal.Decimal `gorm:"type:numeric(10,2);not null"       json:"tax"`
	Total     decimal.Decimal `gorm:"type:numeric(10,2);not null"       json:"total"`
	ShipTo    ShippingAddress `gorm:"embedded;embeddedPrefix:ship_"     json:"shippingAddress"`
	CardLast4 string          `gorm:"size:4"                            json:"cardLast4"`
	Items     []OrderItem     `gorm:"foreignKey:OrderID"                json:"items"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey"                  json:"-"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"    json:"-"`
	BookID    uint            `gorm:"not null"                    json:"bookId"`
	Title     string          `gorm:"not null"                    json:"title"`
	Author    string          `gorm:"not null"                    json:"author"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unitPrice"`
	Quantity  uint            `gorm:"not null"                    json:"quantity"`
	LineTotal decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"lineTotal"`
}
