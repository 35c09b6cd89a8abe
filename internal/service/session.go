package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/biblion/internal/models"
	"github.com/Skotchmaster/biblion/internal/mykafka"
	"github.com/Skotchmaster/biblion/internal/repo"
	"github.com/Skotchmaster/biblion/internal/session"
	"github.com/Skotchmaster/biblion/pkg/logging"
)

type ImportService struct {
	Repo   *repo.GormRepo
	Recent *SearchHistoryService
	Events Publisher
	Now    func() time.Time
}

type ImportResult struct {
	CartLines     int `json:"cartLines"`
	WishlistItems int `json:"wishlistItems"`
	RecentQueries int `json:"recentQueries"`
	Skipped       int `json:"skipped"`
}

// Import merges browser storage values into the user's account. Values that
// do not parse are ignored and unknown books are skipped.
func (s *ImportService) Import(ctx context.Context, userID uuid.UUID, values map[string]string) (*ImportResult, error) {
	l := logging.FromContext(ctx).With("svc", "session.import", "user_id", userID)
	snap := session.Parse(values, nowOr(s.Now).UTC())
	res := &ImportResult{}

	for _, line := range snap.Cart {
		if _, err := s.Repo.GetBook(ctx, line.BookID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				res.Skipped++
				continue
			}
			return nil, err
		}
		if _, err := s.Repo.AddToCart(ctx, userID, line.BookID, line.Quantity); err != nil {
			return nil, err
		}
		res.CartLines++
	}

	for _, w := range snap.Wishlist {
		if _, err := s.Repo.GetBook(ctx, w.BookID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				res.Skipped++
				continue
			}
			return nil, err
		}
		item := &models.WishlistItem{UserID: userID, BookID: w.BookID, AddedAt: w.AddedAt, PriceWhenAdded: w.PriceWhenAdded}
		if _, err := s.Repo.AddToWishlist(ctx, item); err != nil {
			return nil, err
		}
		res.WishlistItems++
	}

	if s.Recent != nil {
		// oldest first so the newest ends up on top
		for i := len(snap.Recent) - 1; i >= 0; i-- {
			if _, err := s.Recent.Record(ctx, userID, snap.Recent[i]); err != nil {
				if errors.Is(err, ErrValidation) {
					res.Skipped++
					continue
				}
				l.Warn("recent_import_failed", "error", err)
				break
			}
			res.RecentQueries++
		}
	}

	l.Info("session_imported", "cart_lines", res.CartLines, "wishlist_items", res.WishlistItems, "skipped", res.Skipped)
	if !snap.Empty() {
		publish(ctx, s.Events, mykafka.TopicCartEvents, userID.String(), mykafka.EventSessionImported, res)
	}
	return res, nil
}
