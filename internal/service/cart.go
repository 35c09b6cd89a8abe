package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/biblion/internal/checkout"
	"github.com/Skotchmaster/biblion/internal/models"
	"github.com/Skotchmaster/biblion/internal/mykafka"
	"github.com/Skotchmaster/biblion/internal/repo"
	"github.com/Skotchmaster/biblion/pkg/logging"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events Publisher
}

type Cart struct {
	Items []models.CartItem `json:"items"`
	Count uint              `json:"count"`
	Total decimal.Decimal   `json:"total"`
}

func newCart(items []models.CartItem) *Cart {
	c := &Cart{Items: items, Total: decimal.Zero}
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}
	for _, it := range items {
		c.Count += it.Quantity
		c.Total = c.Total.Add(checkout.LineTotal(it.Book.Price, it.Quantity))
	}
	return c
}

func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return newCart(items), nil
}

func (s *CartService) cartEvent(ctx context.Context, userID uuid.UUID, eventType string, bookID uint, qty uint) {
	publish(ctx, s.Events, mykafka.TopicCartEvents, userID.String(), eventType, map[string]any{
		"user_id": userID, "book_id": bookID, "quantity": qty,
	})
}

// Add puts one more copy of the book in the cart.
func (s *CartService) Add(ctx context.Context, userID uuid.UUID, bookID uint) (*models.CartItem, error) {
	return s.AddQuantity(ctx, userID, bookID, 1)
}

func (s *CartService) AddQuantity(ctx context.Context, userID uuid.UUID, bookID uint, qty uint) (*models.CartItem, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add", "user_id", userID, "book_id", bookID)

	if bookID == 0 {
		return nil, fmt.Errorf("book id is required: %w", ErrValidation)
	}
	if qty == 0 {
		return nil, fmt.Errorf("quantity must be more than zero: %w", ErrValidation)
	}
	if _, err := s.Repo.GetBook(ctx, bookID); err != nil {
		return nil, lookupErr(err, "book")
	}

	item, err := s.Repo.AddToCart(ctx, userID, bookID, qty)
	if err != nil {
		l.Error("cart_add_failed", "error", err)
		return nil, lookupErr(err, "cart item")
	}
	s.cartEvent(ctx, userID, mykafka.EventCartItemAdded, bookID, item.Quantity)
	return item, nil
}

// UpdateQuantity sets the line quantity. A quantity of zero or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, bookID uint, qty int) (*models.CartItem, error) {
	if qty <= 0 {
		return nil, s.Remove(ctx, userID, bookID)
	}
	item, err := s.Repo.SetCartQuantity(ctx, userID, bookID, uint(qty))
	if err != nil {
		return nil, lookupErr(err, "cart item")
	}
	s.cartEvent(ctx, userID, mykafka.EventCartItemUpdated, bookID, item.Quantity)
	return item, nil
}

func (s *CartService) Remove(ctx context.Context, userID uuid.UUID, bookID uint) error {
	if err := s.Repo.RemoveFromCart(ctx, userID, bookID); err != nil {
		return lookupErr(err, "cart item")
	}
	s.cartEvent(ctx, userID, mykafka.EventCartItemRemoved, bookID, 0)
	return nil
}

func (s *CartService) DecrementOne(ctx context.Context, userID uuid.UUID, bookID uint) (bool, *models.CartItem, error) {
	deleted, item, err := s.Repo.DecrementCartItem(ctx, userID, bookID)
	if err != nil {
		return false, nil, lookupErr(err, "cart item")
	}
	if deleted {
		s.cartEvent(ctx, userID, mykafka.EventCartItemRemoved, bookID, 0)
	} else {
		s.cartEvent(ctx, userID, mykafka.EventCartItemUpdated, bookID, item.Quantity)
	}
	return deleted, item, nil
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.Repo.ClearCart(ctx, userID); err != nil {
		return err
	}
	publish(ctx, s.Events, mykafka.TopicCartEvents, userID.String(), mykafka.EventCartCleared, map[string]any{
		"user_id": userID,
	})
	return nil
}
