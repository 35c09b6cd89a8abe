package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/biblion/internal/models"
)

func (r *GormRepo) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) getLine(tx *gorm.DB, userID uuid.UUID, bookID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := tx.Preload("Book").
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// AddToCart increases an existing line by qty or creates it in one upsert.
func (r *GormRepo) AddToCart(ctx context.Context, userID uuid.UUID, bookID uint, qty uint) (*models.CartItem, error) {
	var out *models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item := models.CartItem{UserID: userID, BookID: bookID, Quantity: qty}
		err := tx.Omit("Book").Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
				"updated_at": gorm.Expr("excluded.updated_at"),
			}),
		}).Create(&item).Error
		if err != nil {
			return translate(err)
		}
		out, err = r.getLine(tx, userID, bookID)
		return err
	})
	return out, err
}

func (r *GormRepo) SetCartQuantity(ctx context.Context, userID uuid.UUID, bookID uint, qty uint) (*models.CartItem, error) {
	var out *models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND book_id = ?", userID, bookID).
			Update("quantity", qty)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		var err error
		out, err = r.getLine(tx, userID, bookID)
		return err
	})
	return out, err
}

// DecrementCartItem removes one unit. The line is deleted when its last unit goes.
func (r *GormRepo) DecrementCartItem(ctx context.Context, userID uuid.UUID, bookID uint) (bool, *models.CartItem, error) {
	var item models.CartItem
	deleted := false

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND book_id = ?", userID, bookID).
			First(&item).Error; err != nil {
			return err
		}
		if item.Quantity > 1 {
			if err := tx.Model(&item).Update("quantity", gorm.Expr("quantity - 1")).Error; err != nil {
				return err
			}
			line, err := r.getLine(tx, userID, bookID)
			if err != nil {
				return err
			}
			item = *line
			return nil
		}
		deleted = true
		return tx.Delete(&item).Error
	})
	if err != nil {
		return false, nil, err
	}
	return deleted, &item, nil
}

func (r *GormRepo) RemoveFromCart(ctx context.Context, userID uuid.UUID, bookID uint) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
