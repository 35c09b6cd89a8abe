package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/biblion/internal/models"
	"github.com/Skotchmaster/biblion/internal/mykafka"
	"github.com/Skotchmaster/biblion/internal/repo"
)

type WishlistService struct {
	Repo   *repo.GormRepo
	Events Publisher
	Now    func() time.Time
}

// PriceDrop is the saving since the item was added, rounded to cents.
// It is nil unless the current price is strictly lower.
func PriceDrop(priceWhenAdded, currentPrice float64) *float64 {
	drop := decimal.NewFromFloat(priceWhenAdded).Sub(decimal.NewFromFloat(currentPrice)).Round(2)
	if !drop.IsPositive() {
		return nil
	}
	f := drop.InexactFloat64()
	return &f
}

func withDrop(it models.WishlistItem) models.WishlistItem {
	it.PriceDrop = PriceDrop(it.PriceWhenAdded, it.Book.Price)
	return it
}

func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	items, err := s.Repo.ListWishlist(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.WishlistItem, 0, len(items))
	for _, it := range items {
		out = append(out, withDrop(it))
	}
	return out, nil
}

func (s *WishlistService) event(ctx context.Context, userID uuid.UUID, eventType string, bookID uint) {
	publish(ctx, s.Events, mykafka.TopicWishlistEvents, userID.String(), eventType, map[string]any{
		"user_id": userID, "book_id": bookID,
	})
}

// Add records the book at its current price. An existing entry is kept as is.
func (s *WishlistService) Add(ctx context.Context, userID uuid.UUID, bookID uint) (*models.WishlistItem, bool, error) {
	if bookID == 0 {
		return nil, false, fmt.Errorf("book id is required: %w", ErrValidation)
	}
	book, err := s.Repo.GetBook(ctx, bookID)
	if err != nil {
		return nil, false, lookupErr(err, "book")
	}

	item := &models.WishlistItem{
		UserID:         userID,
		BookID:         bookID,
		AddedAt:        nowOr(s.Now).UTC(),
		PriceWhenAdded: book.Price,
	}
	created, err := s.Repo.AddToWishlist(ctx, item)
	if err != nil {
		return nil, false, lookupErr(err, "wishlist item")
	}
	item.Book = *book
	if created {
		s.event(ctx, userID, mykafka.EventWishlistAdded, bookID)
	}
	out := withDrop(*item)
	return &out, created, nil
}

func (s *WishlistService) Remove(ctx context.Context, userID uuid.UUID, bookID uint) error {
	if err := s.Repo.RemoveFromWishlist(ctx, userID, bookID); err != nil {
		return lookupErr(err, "wishlist item")
	}
	s.event(ctx, userID, mykafka.EventWishlistRemoved, bookID)
	return nil
}

func (s *WishlistService) Contains(ctx context.Context, userID uuid.UUID, bookID uint) (bool, error) {
	return s.Repo.WishlistContains(ctx, userID, bookID)
}

func (s *WishlistService) Toggle(ctx context.Context, userID uuid.UUID, bookID uint) (bool, error) {
	book, err := s.Repo.GetBook(ctx, bookID)
	if err != nil {
		return false, lookupErr(err, "book")
	}
	added, err := s.Repo.ToggleWishlist(ctx, userID, bookID, book.Price, nowOr(s.Now).UTC())
	if err != nil {
		return false, lookupErr(err, "wishlist item")
	}
	if added {
		s.event(ctx, userID, mykafka.EventWishlistAdded, bookID)
	} else {
		s.event(ctx, userID, mykafka.EventWishlistRemoved, bookID)
	}
	return added, nil
}
