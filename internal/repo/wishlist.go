package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/biblion/internal/models"
)

func (r *GormRepo) ListWishlist(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.DB.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("added_at ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetWishlistItem(ctx context.Context, userID uuid.UUID, bookID uint) (*models.WishlistItem, error) {
	var item models.WishlistItem
	if err := r.DB.WithContext(ctx).
		Preload("Book").
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// AddToWishlist keeps an existing entry untouched. created reports whether a row was inserted.
func (r *GormRepo) AddToWishlist(ctx context.Context, item *models.WishlistItem) (bool, error) {
	tx := r.DB.WithContext(ctx).
		Omit("Book").
		Where("user_id = ? AND book_id = ?", item.UserID, item.BookID).
		Attrs(models.WishlistItem{AddedAt: item.AddedAt, PriceWhenAdded: item.PriceWhenAdded}).
		FirstOrCreate(item)
	if tx.Error != nil {
		return false, translate(tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

func (r *GormRepo) RemoveFromWishlist(ctx context.Context, userID uuid.UUID, bookID uint) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) WishlistContains(ctx context.Context, userID uuid.UUID, bookID uint) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.WishlistItem{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// ToggleWishlist removes the entry when present, otherwise adds it at price.
func (r *GormRepo) ToggleWishlist(ctx context.Context, userID uuid.UUID, bookID uint, price float64, now time.Time) (bool, error) {
	added := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.WishlistItem
		err := tx.Where("user_id = ? AND book_id = ?", userID, bookID).First(&existing).Error
		switch {
		case err == nil:
			return tx.Delete(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			added = true
			item := models.WishlistItem{UserID: userID, BookID: bookID, AddedAt: now, PriceWhenAdded: price}
			return translate(tx.Omit("Book").Create(&item).Error)
		default:
			return err
		}
	})
	return added, err
}
